package service

import (
	"context"
	"testing"

	"bomboniere/internal/apierror"
	"bomboniere/internal/dto"
	"bomboniere/internal/model"
	"bomboniere/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory CaixaRepository ────────────────────────────────────────────────

type memCaixaRepo struct {
	caixa         *model.Caixa
	movimentacoes []model.MovimentacaoCaixa
	fechamentos   map[uuid.UUID]*model.FechamentoCaixa
}

func newMemCaixaRepo() *memCaixaRepo {
	return &memCaixaRepo{fechamentos: make(map[uuid.UUID]*model.FechamentoCaixa)}
}

func (r *memCaixaRepo) DB() *gorm.DB { return nil }

func (r *memCaixaRepo) FindAberto(context.Context) (*model.Caixa, error) {
	if r.caixa == nil {
		return nil, gorm.ErrRecordNotFound
	}
	c := *r.caixa
	c.Movimentacoes = nil
	for _, m := range r.movimentacoes {
		if m.CaixaID != nil && *m.CaixaID == c.ID {
			c.Movimentacoes = append(c.Movimentacoes, m)
		}
	}
	return &c, nil
}

func (r *memCaixaRepo) Create(_ context.Context, c *model.Caixa) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.caixa = c
	return nil
}

func (r *memCaixaRepo) Update(_ context.Context, c *model.Caixa) error {
	r.caixa = c
	return nil
}

func (r *memCaixaRepo) CreateMovimentacao(_ context.Context, m *model.MovimentacaoCaixa) error {
	return r.CreateMovimentacaoTx(nil, m)
}

func (r *memCaixaRepo) ListMovimentacoes(_ context.Context, caixaID uuid.UUID) ([]model.MovimentacaoCaixa, error) {
	var out []model.MovimentacaoCaixa
	for _, m := range r.movimentacoes {
		if m.CaixaID != nil && *m.CaixaID == caixaID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memCaixaRepo) FindAbertoTx(*gorm.DB) (*model.Caixa, error) {
	if r.caixa == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.caixa, nil
}

func (r *memCaixaRepo) UpdateTotaisTx(_ *gorm.DB, c *model.Caixa) error {
	r.caixa.TotalVendas = c.TotalVendas
	r.caixa.TotalReforcos = c.TotalReforcos
	r.caixa.TotalSangrias = c.TotalSangrias
	return nil
}

func (r *memCaixaRepo) IncrementTotalVendasTx(_ *gorm.DB, id uuid.UUID, valor decimal.Decimal) error {
	if r.caixa != nil && r.caixa.ID == id {
		r.caixa.TotalVendas = r.caixa.TotalVendas.Add(valor)
	}
	return nil
}

func (r *memCaixaRepo) CreateMovimentacaoTx(_ *gorm.DB, m *model.MovimentacaoCaixa) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimentacoes = append(r.movimentacoes, *m)
	return nil
}

func (r *memCaixaRepo) DeleteMovimentacoesTx(_ *gorm.DB, caixaID uuid.UUID) error {
	var kept []model.MovimentacaoCaixa
	for _, m := range r.movimentacoes {
		if m.CaixaID == nil || *m.CaixaID != caixaID {
			kept = append(kept, m)
		}
	}
	r.movimentacoes = kept
	return nil
}

func (r *memCaixaRepo) CreateFechamentoTx(_ *gorm.DB, f *model.FechamentoCaixa) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	r.fechamentos[f.ID] = f
	return nil
}

func (r *memCaixaRepo) ReparentMovimentacoesTx(_ *gorm.DB, caixaID, fechamentoID uuid.UUID) error {
	for i := range r.movimentacoes {
		if r.movimentacoes[i].CaixaID != nil && *r.movimentacoes[i].CaixaID == caixaID {
			r.movimentacoes[i].CaixaID = nil
			r.movimentacoes[i].FechamentoID = &fechamentoID
		}
	}
	return nil
}

func (r *memCaixaRepo) DeleteCaixaTx(_ *gorm.DB, id uuid.UUID) error {
	if r.caixa != nil && r.caixa.ID == id {
		r.caixa = nil
	}
	return nil
}

func (r *memCaixaRepo) ListFechamentos(context.Context) ([]model.FechamentoCaixa, error) {
	var out []model.FechamentoCaixa
	for _, f := range r.fechamentos {
		out = append(out, *f)
	}
	return out, nil
}

func (r *memCaixaRepo) FindFechamentoByID(_ context.Context, id uuid.UUID) (*model.FechamentoCaixa, error) {
	f, ok := r.fechamentos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *f
	for _, m := range r.movimentacoes {
		if m.FechamentoID != nil && *m.FechamentoID == id {
			c.Movimentacoes = append(c.Movimentacoes, m)
		}
	}
	return &c, nil
}

func (r *memCaixaRepo) DeleteFechamentos(context.Context) error {
	r.fechamentos = make(map[uuid.UUID]*model.FechamentoCaixa)
	return nil
}

// ── Tests ────────────────────────────────────────────────────────────────────

func abrirCaixa(t *testing.T, svc CaixaService, valor string) *dto.CaixaResponse {
	t.Helper()
	resp, err := svc.Abrir(context.Background(), dto.AbrirCaixaRequest{
		Operador:      "Maria",
		ValorAbertura: decimal.RequireFromString(valor),
	})
	require.NoError(t, err)
	return resp
}

func TestAbrirCaixaSegundaVezConflito(t *testing.T) {
	repo := newMemCaixaRepo()
	svc := NewCaixaService(repo, worker.NoopNotificador{})

	primeiro := abrirCaixa(t, svc, "100.00")

	_, err := svc.Abrir(context.Background(), dto.AbrirCaixaRequest{
		Operador:      "João",
		ValorAbertura: decimal.RequireFromString("50.00"),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))

	// First session untouched
	assert.Equal(t, "Maria", repo.caixa.Operador)
	assert.Equal(t, primeiro.ID, repo.caixa.ID.String())
}

func TestSaldoCaixaFormula(t *testing.T) {
	repo := newMemCaixaRepo()
	svc := NewCaixaService(repo, worker.NoopNotificador{})

	abrirCaixa(t, svc, "100.00")

	_, err := svc.RegistrarMovimentacao(context.Background(), dto.MovimentacaoRequest{
		Tipo:  "reforco",
		Valor: decimal.RequireFromString("50.00"),
	})
	require.NoError(t, err)

	resp, err := svc.RegistrarMovimentacao(context.Background(), dto.MovimentacaoRequest{
		Tipo:  "sangria",
		Valor: decimal.RequireFromString("30.00"),
	})
	require.NoError(t, err)

	// 100 + 0 + 50 − 30
	assert.True(t, resp.Saldo.Equal(decimal.RequireFromString("120.00")), "saldo = %s", resp.Saldo)
	assert.Len(t, resp.Movimentacoes, 2)
}

func TestSangriaMaiorQueSaldoPermitida(t *testing.T) {
	repo := newMemCaixaRepo()
	svc := NewCaixaService(repo, worker.NoopNotificador{})

	abrirCaixa(t, svc, "10.00")

	resp, err := svc.RegistrarMovimentacao(context.Background(), dto.MovimentacaoRequest{
		Tipo:  "sangria",
		Valor: decimal.RequireFromString("200.00"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Saldo.Equal(decimal.RequireFromString("-190.00")))
}

func TestMovimentacaoSemCaixaAberto(t *testing.T) {
	svc := NewCaixaService(newMemCaixaRepo(), worker.NoopNotificador{})

	_, err := svc.RegistrarMovimentacao(context.Background(), dto.MovimentacaoRequest{
		Tipo:  "reforco",
		Valor: decimal.RequireFromString("10.00"),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}

func TestFecharCaixaCalculaDiferenca(t *testing.T) {
	repo := newMemCaixaRepo()
	svc := NewCaixaService(repo, worker.NoopNotificador{})

	abrirCaixa(t, svc, "100.00")
	_, err := svc.RegistrarMovimentacao(context.Background(), dto.MovimentacaoRequest{
		Tipo:  "reforco",
		Valor: decimal.RequireFromString("20.00"),
	})
	require.NoError(t, err)

	resp, err := svc.Fechar(context.Background(), dto.FecharCaixaRequest{
		SaldoReal: decimal.RequireFromString("115.00"),
	})
	require.NoError(t, err)

	assert.True(t, resp.SaldoEsperado.Equal(decimal.RequireFromString("120.00")))
	assert.True(t, resp.Diferenca.Equal(decimal.RequireFromString("-5.00")))

	// Session gone, ledger re-parented onto the closure
	assert.Nil(t, repo.caixa)
	assert.Len(t, resp.Movimentacoes, 1)

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Aberto)
}

func TestFecharSemCaixaAberto(t *testing.T) {
	svc := NewCaixaService(newMemCaixaRepo(), worker.NoopNotificador{})

	_, err := svc.Fechar(context.Background(), dto.FecharCaixaRequest{
		SaldoReal: decimal.RequireFromString("0.00"),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}

func TestLimparFechamentos(t *testing.T) {
	repo := newMemCaixaRepo()
	svc := NewCaixaService(repo, worker.NoopNotificador{})

	abrirCaixa(t, svc, "100.00")
	_, err := svc.Fechar(context.Background(), dto.FecharCaixaRequest{
		SaldoReal: decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err)

	lista, err := svc.ListarFechamentos(context.Background())
	require.NoError(t, err)
	require.Len(t, lista, 1)

	require.NoError(t, svc.LimparFechamentos(context.Background()))

	lista, err = svc.ListarFechamentos(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lista)
}
