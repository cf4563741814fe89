package repository

import (
	"context"

	"bomboniere/internal/dto"
	"bomboniere/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	List(ctx context.Context, filter dto.PessoaFilter) ([]model.Cliente, error)
	Update(ctx context.Context, c *model.Cliente) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	// ExistsDocumento checks tax-id uniqueness, excluding excludeID when non-nil
	// so a record can be updated to its own unchanged documento.
	ExistsDocumento(ctx context.Context, documento string, excludeID *uuid.UUID) (bool, error)
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *clienteRepo) List(ctx context.Context, filter dto.PessoaFilter) ([]model.Cliente, error) {
	q := r.db.WithContext(ctx).Model(&model.Cliente{})
	if !filter.IncluirInativos {
		q = q.Where("ativo = true")
	}
	if filter.Busca != "" {
		like := "%" + filter.Busca + "%"
		q = q.Where("nome ILIKE ? OR documento LIKE ?", like, like)
	}
	var clientes []model.Cliente
	err := q.Order("nome ASC").Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Cliente{}).Where("id = ?", id).Update("ativo", false).Error
}

func (r *clienteRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Cliente{}).Where("id = ?", id).Update("ativo", true).Error
}

func (r *clienteRepo) ExistsDocumento(ctx context.Context, documento string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.Cliente{}).Where("documento = ?", documento)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}
