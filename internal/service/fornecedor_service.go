package service

import (
	"context"
	"errors"

	"bomboniere/internal/apierror"
	"bomboniere/internal/dto"
	"bomboniere/internal/model"
	"bomboniere/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FornecedorService interface {
	Criar(ctx context.Context, req dto.CriarPessoaRequest) (*dto.PessoaResponse, error)
	Listar(ctx context.Context, filter dto.PessoaFilter) ([]dto.PessoaResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.PessoaResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarPessoaRequest) (*dto.PessoaResponse, error)
	Remover(ctx context.Context, id uuid.UUID) error
	Reativar(ctx context.Context, id uuid.UUID) (*dto.PessoaResponse, error)
}

type fornecedorService struct {
	repo repository.FornecedorRepository
}

func NewFornecedorService(repo repository.FornecedorRepository) FornecedorService {
	return &fornecedorService{repo: repo}
}

func (s *fornecedorService) Criar(ctx context.Context, req dto.CriarPessoaRequest) (*dto.PessoaResponse, error) {
	if req.Documento != nil && *req.Documento != "" {
		exists, err := s.repo.ExistsDocumento(ctx, *req.Documento, nil)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apierror.Conflict("documento já cadastrado")
		}
	}

	f := &model.Fornecedor{
		Nome:      req.Nome,
		Documento: req.Documento,
		Telefone:  req.Telefone,
		Email:     req.Email,
		Endereco:  req.Endereco,
		Ativo:     true,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return fornecedorToResponse(f), nil
}

func (s *fornecedorService) Listar(ctx context.Context, filter dto.PessoaFilter) ([]dto.PessoaResponse, error) {
	fornecedores, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PessoaResponse, 0, len(fornecedores))
	for i := range fornecedores {
		resp = append(resp, *fornecedorToResponse(&fornecedores[i]))
	}
	return resp, nil
}

func (s *fornecedorService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.PessoaResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("fornecedor não encontrado")
		}
		return nil, err
	}
	return fornecedorToResponse(f), nil
}

func (s *fornecedorService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarPessoaRequest) (*dto.PessoaResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("fornecedor não encontrado")
		}
		return nil, err
	}

	if req.Documento != nil && *req.Documento != "" {
		exists, err := s.repo.ExistsDocumento(ctx, *req.Documento, &id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apierror.Conflict("documento já cadastrado")
		}
		f.Documento = req.Documento
	}
	if req.Nome != nil {
		f.Nome = *req.Nome
	}
	if req.Telefone != nil {
		f.Telefone = req.Telefone
	}
	if req.Email != nil {
		f.Email = req.Email
	}
	if req.Endereco != nil {
		f.Endereco = req.Endereco
	}

	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return fornecedorToResponse(f), nil
}

func (s *fornecedorService) Remover(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("fornecedor não encontrado")
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *fornecedorService) Reativar(ctx context.Context, id uuid.UUID) (*dto.PessoaResponse, error) {
	if err := s.repo.Reactivate(ctx, id); err != nil {
		return nil, err
	}
	return s.ObterPorID(ctx, id)
}

func fornecedorToResponse(f *model.Fornecedor) *dto.PessoaResponse {
	return &dto.PessoaResponse{
		ID:        f.ID.String(),
		Nome:      f.Nome,
		Documento: f.Documento,
		Telefone:  f.Telefone,
		Email:     f.Email,
		Endereco:  f.Endereco,
		Ativo:     f.Ativo,
	}
}
