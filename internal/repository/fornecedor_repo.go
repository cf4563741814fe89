package repository

import (
	"context"

	"bomboniere/internal/dto"
	"bomboniere/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FornecedorRepository interface {
	Create(ctx context.Context, f *model.Fornecedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Fornecedor, error)
	List(ctx context.Context, filter dto.PessoaFilter) ([]model.Fornecedor, error)
	Update(ctx context.Context, f *model.Fornecedor) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	ExistsDocumento(ctx context.Context, documento string, excludeID *uuid.UUID) (bool, error)
}

type fornecedorRepo struct{ db *gorm.DB }

func NewFornecedorRepository(db *gorm.DB) FornecedorRepository { return &fornecedorRepo{db: db} }

func (r *fornecedorRepo) Create(ctx context.Context, f *model.Fornecedor) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fornecedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Fornecedor, error) {
	var f model.Fornecedor
	err := r.db.WithContext(ctx).First(&f, id).Error
	return &f, err
}

func (r *fornecedorRepo) List(ctx context.Context, filter dto.PessoaFilter) ([]model.Fornecedor, error) {
	q := r.db.WithContext(ctx).Model(&model.Fornecedor{})
	if !filter.IncluirInativos {
		q = q.Where("ativo = true")
	}
	if filter.Busca != "" {
		like := "%" + filter.Busca + "%"
		q = q.Where("nome ILIKE ? OR documento LIKE ?", like, like)
	}
	var fornecedores []model.Fornecedor
	err := q.Order("nome ASC").Find(&fornecedores).Error
	return fornecedores, err
}

func (r *fornecedorRepo) Update(ctx context.Context, f *model.Fornecedor) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *fornecedorRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Fornecedor{}).Where("id = ?", id).Update("ativo", false).Error
}

func (r *fornecedorRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Fornecedor{}).Where("id = ?", id).Update("ativo", true).Error
}

func (r *fornecedorRepo) ExistsDocumento(ctx context.Context, documento string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.Fornecedor{}).Where("documento = ?", documento)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}
