package repository

import (
	"context"

	"bomboniere/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CaixaRepository interface {
	// FindAberto returns the singleton open session, or gorm.ErrRecordNotFound.
	FindAberto(ctx context.Context) (*model.Caixa, error)
	Create(ctx context.Context, c *model.Caixa) error
	Update(ctx context.Context, c *model.Caixa) error
	CreateMovimentacao(ctx context.Context, m *model.MovimentacaoCaixa) error
	ListMovimentacoes(ctx context.Context, caixaID uuid.UUID) ([]model.MovimentacaoCaixa, error)

	// Transactional pieces of sale finalization and session closing.
	FindAbertoTx(tx *gorm.DB) (*model.Caixa, error)
	UpdateTotaisTx(tx *gorm.DB, c *model.Caixa) error
	// IncrementTotalVendasTx adds valor to total_vendas in place, so two
	// concurrent finalizations can't overwrite each other's bump.
	IncrementTotalVendasTx(tx *gorm.DB, id uuid.UUID, valor decimal.Decimal) error
	CreateMovimentacaoTx(tx *gorm.DB, m *model.MovimentacaoCaixa) error
	DeleteMovimentacoesTx(tx *gorm.DB, caixaID uuid.UUID) error
	CreateFechamentoTx(tx *gorm.DB, f *model.FechamentoCaixa) error
	// ReparentMovimentacoesTx moves the session's ledger under the closure record.
	ReparentMovimentacoesTx(tx *gorm.DB, caixaID, fechamentoID uuid.UUID) error
	DeleteCaixaTx(tx *gorm.DB, id uuid.UUID) error

	ListFechamentos(ctx context.Context) ([]model.FechamentoCaixa, error)
	FindFechamentoByID(ctx context.Context, id uuid.UUID) (*model.FechamentoCaixa, error)
	DeleteFechamentos(ctx context.Context) error
	DB() *gorm.DB
}

type caixaRepo struct{ db *gorm.DB }

func NewCaixaRepository(db *gorm.DB) CaixaRepository { return &caixaRepo{db: db} }

func (r *caixaRepo) DB() *gorm.DB { return r.db }

func (r *caixaRepo) FindAberto(ctx context.Context) (*model.Caixa, error) {
	var c model.Caixa
	err := r.db.WithContext(ctx).Preload("Movimentacoes", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Where("ativo = true").First(&c).Error
	return &c, err
}

func (r *caixaRepo) Create(ctx context.Context, c *model.Caixa) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *caixaRepo) Update(ctx context.Context, c *model.Caixa) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *caixaRepo) CreateMovimentacao(ctx context.Context, m *model.MovimentacaoCaixa) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *caixaRepo) ListMovimentacoes(ctx context.Context, caixaID uuid.UUID) ([]model.MovimentacaoCaixa, error) {
	var movs []model.MovimentacaoCaixa
	err := r.db.WithContext(ctx).Where("caixa_id = ?", caixaID).Order("created_at ASC").Find(&movs).Error
	return movs, err
}

func (r *caixaRepo) FindAbertoTx(tx *gorm.DB) (*model.Caixa, error) {
	var c model.Caixa
	err := tx.Where("ativo = true").First(&c).Error
	return &c, err
}

func (r *caixaRepo) UpdateTotaisTx(tx *gorm.DB, c *model.Caixa) error {
	return tx.Model(&model.Caixa{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"total_vendas":   c.TotalVendas,
		"total_reforcos": c.TotalReforcos,
		"total_sangrias": c.TotalSangrias,
	}).Error
}

func (r *caixaRepo) IncrementTotalVendasTx(tx *gorm.DB, id uuid.UUID, valor decimal.Decimal) error {
	return tx.Model(&model.Caixa{}).Where("id = ?", id).
		Update("total_vendas", gorm.Expr("total_vendas + ?", valor)).Error
}

func (r *caixaRepo) CreateMovimentacaoTx(tx *gorm.DB, m *model.MovimentacaoCaixa) error {
	return tx.Create(m).Error
}

func (r *caixaRepo) DeleteMovimentacoesTx(tx *gorm.DB, caixaID uuid.UUID) error {
	return tx.Where("caixa_id = ?", caixaID).Delete(&model.MovimentacaoCaixa{}).Error
}

func (r *caixaRepo) CreateFechamentoTx(tx *gorm.DB, f *model.FechamentoCaixa) error {
	return tx.Create(f).Error
}

func (r *caixaRepo) ReparentMovimentacoesTx(tx *gorm.DB, caixaID, fechamentoID uuid.UUID) error {
	return tx.Model(&model.MovimentacaoCaixa{}).
		Where("caixa_id = ?", caixaID).
		Updates(map[string]interface{}{"caixa_id": nil, "fechamento_id": fechamentoID}).Error
}

func (r *caixaRepo) DeleteCaixaTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Caixa{}, id).Error
}

func (r *caixaRepo) ListFechamentos(ctx context.Context) ([]model.FechamentoCaixa, error) {
	var fechamentos []model.FechamentoCaixa
	err := r.db.WithContext(ctx).Preload("Movimentacoes").
		Order("data_fechamento DESC").Find(&fechamentos).Error
	return fechamentos, err
}

func (r *caixaRepo) FindFechamentoByID(ctx context.Context, id uuid.UUID) (*model.FechamentoCaixa, error) {
	var f model.FechamentoCaixa
	err := r.db.WithContext(ctx).Preload("Movimentacoes").First(&f, id).Error
	return &f, err
}

func (r *caixaRepo) DeleteFechamentos(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.FechamentoCaixa{}).Error
}
