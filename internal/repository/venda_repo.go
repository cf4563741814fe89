package repository

import (
	"context"
	"time"

	"bomboniere/internal/dto"
	"bomboniere/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VendaRepository interface {
	// Create persists the sale with its items and payments inside tx.
	Create(ctx context.Context, tx *gorm.DB, v *model.Venda) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error)
	List(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error)
	// ListSince returns all sales created at or after the cutoff, oldest first —
	// feeds the dashboard aggregation.
	ListSince(ctx context.Context, cutoff time.Time) ([]model.Venda, error)
	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type vendaRepo struct{ db *gorm.DB }

func NewVendaRepository(db *gorm.DB) VendaRepository { return &vendaRepo{db: db} }

func (r *vendaRepo) DB() *gorm.DB { return r.db }

func (r *vendaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venda) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *vendaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error) {
	var v model.Venda
	err := r.db.WithContext(ctx).Preload("Itens").Preload("Pagamentos").First(&v, id).Error
	return &v, err
}

func (r *vendaRepo) List(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error) {
	var vendas []model.Venda
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Venda{})
	if filter.Data != "" {
		q = q.Where("DATE(created_at) = ?", filter.Data)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Itens").Preload("Pagamentos").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&vendas).Error

	return vendas, total, err
}

func (r *vendaRepo) ListSince(ctx context.Context, cutoff time.Time) ([]model.Venda, error) {
	var vendas []model.Venda
	err := r.db.WithContext(ctx).
		Where("created_at >= ?", cutoff).
		Order("created_at ASC").
		Find(&vendas).Error
	return vendas, err
}
