package repository

import (
	"context"

	"bomboniere/internal/dto"
	"bomboniere/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProdutoRepository interface {
	Create(ctx context.Context, p *model.Produto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error)
	FindByBarcode(ctx context.Context, codigoBarras string) (*model.Produto, error)
	// FindByBarcodeTx resolves a product inside the sale-finalization transaction.
	FindByBarcodeTx(tx *gorm.DB, codigoBarras string) (*model.Produto, error)
	List(ctx context.Context, filter dto.ProdutoFilter) ([]model.Produto, error)
	ListAtivos(ctx context.Context) ([]model.Produto, error)
	Update(ctx context.Context, p *model.Produto) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	// ExistsBarcode checks barcode uniqueness, excluding excludeID when non-nil.
	ExistsBarcode(ctx context.Context, codigoBarras string, excludeID *uuid.UUID) (bool, error)
	// DecrementEstoqueTx runs UPDATE ... SET estoque = estoque - ? so the row
	// lock covers the decrement itself.
	DecrementEstoqueTx(tx *gorm.DB, id uuid.UUID, quantidade int) error
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

func (r *produtoRepo) Create(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produtoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *produtoRepo) FindByBarcode(ctx context.Context, codigoBarras string) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).Where("codigo_barras = ?", codigoBarras).First(&p).Error
	return &p, err
}

func (r *produtoRepo) FindByBarcodeTx(tx *gorm.DB, codigoBarras string) (*model.Produto, error) {
	var p model.Produto
	err := tx.Where("codigo_barras = ?", codigoBarras).First(&p).Error
	return &p, err
}

func (r *produtoRepo) List(ctx context.Context, filter dto.ProdutoFilter) ([]model.Produto, error) {
	q := r.db.WithContext(ctx).Model(&model.Produto{})
	if !filter.IncluirInativos {
		q = q.Where("ativo = true")
	}
	if filter.Busca != "" {
		like := "%" + filter.Busca + "%"
		q = q.Where("nome ILIKE ? OR codigo_barras LIKE ?", like, like)
	}
	if filter.CategoriaID != "" {
		q = q.Where("categoria_id = ?", filter.CategoriaID)
	}
	if filter.EstoqueBaixo {
		q = q.Where("estoque = 0 OR (estoque_minimo > 0 AND estoque <= estoque_minimo)")
	}
	var produtos []model.Produto
	err := q.Order("nome ASC").Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) ListAtivos(ctx context.Context) ([]model.Produto, error) {
	var produtos []model.Produto
	err := r.db.WithContext(ctx).Where("ativo = true").Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) Update(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *produtoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Produto{}).Where("id = ?", id).Update("ativo", false).Error
}

func (r *produtoRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Produto{}).Where("id = ?", id).Update("ativo", true).Error
}

func (r *produtoRepo) ExistsBarcode(ctx context.Context, codigoBarras string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.Produto{}).Where("codigo_barras = ?", codigoBarras)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *produtoRepo) DecrementEstoqueTx(tx *gorm.DB, id uuid.UUID, quantidade int) error {
	return tx.Model(&model.Produto{}).Where("id = ?", id).
		Update("estoque", gorm.Expr("estoque - ?", quantidade)).Error
}
