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

type ClienteService interface {
	Criar(ctx context.Context, req dto.CriarPessoaRequest) (*dto.PessoaResponse, error)
	Listar(ctx context.Context, filter dto.PessoaFilter) ([]dto.PessoaResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.PessoaResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarPessoaRequest) (*dto.PessoaResponse, error)
	Remover(ctx context.Context, id uuid.UUID) error
	Reativar(ctx context.Context, id uuid.UUID) (*dto.PessoaResponse, error)
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Criar(ctx context.Context, req dto.CriarPessoaRequest) (*dto.PessoaResponse, error) {
	if req.Documento != nil && *req.Documento != "" {
		exists, err := s.repo.ExistsDocumento(ctx, *req.Documento, nil)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apierror.Conflict("documento já cadastrado")
		}
	}

	c := &model.Cliente{
		Nome:      req.Nome,
		Documento: req.Documento,
		Telefone:  req.Telefone,
		Email:     req.Email,
		Endereco:  req.Endereco,
		Ativo:     true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Listar(ctx context.Context, filter dto.PessoaFilter) ([]dto.PessoaResponse, error) {
	clientes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PessoaResponse, 0, len(clientes))
	for i := range clientes {
		resp = append(resp, *clienteToResponse(&clientes[i]))
	}
	return resp, nil
}

func (s *clienteService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.PessoaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("cliente não encontrado")
		}
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarPessoaRequest) (*dto.PessoaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("cliente não encontrado")
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
		c.Documento = req.Documento
	}
	if req.Nome != nil {
		c.Nome = *req.Nome
	}
	if req.Telefone != nil {
		c.Telefone = req.Telefone
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Endereco != nil {
		c.Endereco = req.Endereco
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Remover(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("cliente não encontrado")
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *clienteService) Reativar(ctx context.Context, id uuid.UUID) (*dto.PessoaResponse, error) {
	if err := s.repo.Reactivate(ctx, id); err != nil {
		return nil, err
	}
	return s.ObterPorID(ctx, id)
}

func clienteToResponse(c *model.Cliente) *dto.PessoaResponse {
	return &dto.PessoaResponse{
		ID:        c.ID.String(),
		Nome:      c.Nome,
		Documento: c.Documento,
		Telefone:  c.Telefone,
		Email:     c.Email,
		Endereco:  c.Endereco,
		Ativo:     c.Ativo,
	}
}
