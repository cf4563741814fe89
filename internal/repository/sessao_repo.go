package repository

import (
	"context"
	"time"

	"bomboniere/internal/model"

	"gorm.io/gorm"
)

type SessaoRepository interface {
	Create(ctx context.Context, s *model.Sessao) error
	FindByToken(ctx context.Context, token string) (*model.Sessao, error)
	UpdateExpiry(ctx context.Context, token string, expiraEm time.Time) error
	DeleteByToken(ctx context.Context, token string) error
	// DeleteExpired removes sessions past their expiry; returns the row count.
	// Called lazily by the auth middleware and hourly by the sweeper.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type sessaoRepo struct{ db *gorm.DB }

func NewSessaoRepository(db *gorm.DB) SessaoRepository { return &sessaoRepo{db: db} }

func (r *sessaoRepo) Create(ctx context.Context, s *model.Sessao) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sessaoRepo) FindByToken(ctx context.Context, token string) (*model.Sessao, error) {
	var s model.Sessao
	err := r.db.WithContext(ctx).Preload("Usuario").Where("token = ?", token).First(&s).Error
	return &s, err
}

func (r *sessaoRepo) UpdateExpiry(ctx context.Context, token string, expiraEm time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Sessao{}).
		Where("token = ?", token).Update("expira_em", expiraEm).Error
}

func (r *sessaoRepo) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&model.Sessao{}).Error
}

func (r *sessaoRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expira_em < ?", now).Delete(&model.Sessao{})
	return res.RowsAffected, res.Error
}
