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

type CategoriaService interface {
	Criar(ctx context.Context, req dto.CriarCategoriaRequest) (*dto.CategoriaResponse, error)
	Listar(ctx context.Context, incluirInativas bool) ([]dto.CategoriaResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.CategoriaResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.CriarCategoriaRequest) (*dto.CategoriaResponse, error)
	Remover(ctx context.Context, id uuid.UUID) error
}

type categoriaService struct {
	repo repository.CategoriaRepository
}

func NewCategoriaService(repo repository.CategoriaRepository) CategoriaService {
	return &categoriaService{repo: repo}
}

func (s *categoriaService) Criar(ctx context.Context, req dto.CriarCategoriaRequest) (*dto.CategoriaResponse, error) {
	if _, err := s.repo.FindByNome(ctx, req.Nome); err == nil {
		return nil, apierror.Conflict("categoria já existe")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c := &model.Categoria{Nome: req.Nome, Descricao: req.Descricao, Ativo: true}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return categoriaToResponse(c), nil
}

func (s *categoriaService) Listar(ctx context.Context, incluirInativas bool) ([]dto.CategoriaResponse, error) {
	categorias, err := s.repo.List(ctx, incluirInativas)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoriaResponse, 0, len(categorias))
	for i := range categorias {
		resp = append(resp, *categoriaToResponse(&categorias[i]))
	}
	return resp, nil
}

func (s *categoriaService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.CategoriaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("categoria não encontrada")
		}
		return nil, err
	}
	return categoriaToResponse(c), nil
}

func (s *categoriaService) Atualizar(ctx context.Context, id uuid.UUID, req dto.CriarCategoriaRequest) (*dto.CategoriaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("categoria não encontrada")
		}
		return nil, err
	}

	if req.Nome != c.Nome {
		if existente, err := s.repo.FindByNome(ctx, req.Nome); err == nil && existente.ID != id {
			return nil, apierror.Conflict("categoria já existe")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		c.Nome = req.Nome
	}
	if req.Descricao != nil {
		c.Descricao = req.Descricao
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return categoriaToResponse(c), nil
}

func (s *categoriaService) Remover(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("categoria não encontrada")
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func categoriaToResponse(c *model.Categoria) *dto.CategoriaResponse {
	return &dto.CategoriaResponse{
		ID:        c.ID.String(),
		Nome:      c.Nome,
		Descricao: c.Descricao,
		Ativo:     c.Ativo,
	}
}
