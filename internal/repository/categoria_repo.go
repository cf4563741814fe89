package repository

import (
	"context"

	"bomboniere/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoriaRepository interface {
	Create(ctx context.Context, c *model.Categoria) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Categoria, error)
	FindByNome(ctx context.Context, nome string) (*model.Categoria, error)
	List(ctx context.Context, incluirInativas bool) ([]model.Categoria, error)
	Update(ctx context.Context, c *model.Categoria) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type categoriaRepo struct{ db *gorm.DB }

func NewCategoriaRepository(db *gorm.DB) CategoriaRepository { return &categoriaRepo{db: db} }

func (r *categoriaRepo) Create(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoriaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *categoriaRepo) FindByNome(ctx context.Context, nome string) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).Where("nome = ?", nome).First(&c).Error
	return &c, err
}

func (r *categoriaRepo) List(ctx context.Context, incluirInativas bool) ([]model.Categoria, error) {
	q := r.db.WithContext(ctx).Model(&model.Categoria{})
	if !incluirInativas {
		q = q.Where("ativo = true")
	}
	var categorias []model.Categoria
	err := q.Order("nome ASC").Find(&categorias).Error
	return categorias, err
}

func (r *categoriaRepo) Update(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoriaRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Categoria{}).Where("id = ?", id).Update("ativo", false).Error
}
