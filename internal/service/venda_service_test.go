package service

import (
	"context"
	"testing"
	"time"

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

// ── In-memory VendaRepository ────────────────────────────────────────────────

type memVendaRepo struct {
	vendas []*model.Venda
}

func (r *memVendaRepo) DB() *gorm.DB { return nil }

func (r *memVendaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venda) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now()
	r.vendas = append(r.vendas, v)
	return nil
}

func (r *memVendaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venda, error) {
	for _, v := range r.vendas {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memVendaRepo) List(_ context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error) {
	var out []model.Venda
	for _, v := range r.vendas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *memVendaRepo) ListSince(_ context.Context, cutoff time.Time) ([]model.Venda, error) {
	var out []model.Venda
	for _, v := range r.vendas {
		if !v.CreatedAt.Before(cutoff) {
			out = append(out, *v)
		}
	}
	return out, nil
}

// ── In-memory ProdutoRepository ──────────────────────────────────────────────

type memProdutoRepo struct {
	produtos map[uuid.UUID]*model.Produto
}

func newMemProdutoRepo(produtos ...*model.Produto) *memProdutoRepo {
	r := &memProdutoRepo{produtos: make(map[uuid.UUID]*model.Produto)}
	for _, p := range produtos {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.produtos[p.ID] = p
	}
	return r
}

func (r *memProdutoRepo) Create(_ context.Context, p *model.Produto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.produtos[p.ID] = p
	return nil
}

func (r *memProdutoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Produto, error) {
	p, ok := r.produtos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *memProdutoRepo) FindByBarcode(_ context.Context, codigo string) (*model.Produto, error) {
	return r.FindByBarcodeTx(nil, codigo)
}

func (r *memProdutoRepo) FindByBarcodeTx(_ *gorm.DB, codigo string) (*model.Produto, error) {
	for _, p := range r.produtos {
		if p.CodigoBarras == codigo {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memProdutoRepo) List(_ context.Context, _ dto.ProdutoFilter) ([]model.Produto, error) {
	var out []model.Produto
	for _, p := range r.produtos {
		out = append(out, *p)
	}
	return out, nil
}

func (r *memProdutoRepo) ListAtivos(ctx context.Context) ([]model.Produto, error) {
	var out []model.Produto
	for _, p := range r.produtos {
		if p.Ativo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProdutoRepo) Update(_ context.Context, p *model.Produto) error {
	r.produtos[p.ID] = p
	return nil
}

func (r *memProdutoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.produtos[id]; ok {
		p.Ativo = false
	}
	return nil
}

func (r *memProdutoRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if p, ok := r.produtos[id]; ok {
		p.Ativo = true
	}
	return nil
}

func (r *memProdutoRepo) ExistsBarcode(_ context.Context, codigo string, excludeID *uuid.UUID) (bool, error) {
	for _, p := range r.produtos {
		if p.CodigoBarras == codigo && (excludeID == nil || p.ID != *excludeID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memProdutoRepo) DecrementEstoqueTx(_ *gorm.DB, id uuid.UUID, quantidade int) error {
	r.produtos[id].Estoque -= quantidade
	return nil
}

// ── Recording Notificador ────────────────────────────────────────────────────

type recordNotificador struct {
	vendas  []worker.VendaFinalizadaEvent
	estoque []worker.EstoqueBaixoEvent
	caixas  []worker.CaixaFechadoEvent
}

func (n *recordNotificador) VendaFinalizada(_ context.Context, ev worker.VendaFinalizadaEvent) {
	n.vendas = append(n.vendas, ev)
}

func (n *recordNotificador) EstoqueBaixo(_ context.Context, ev worker.EstoqueBaixoEvent) {
	n.estoque = append(n.estoque, ev)
}

func (n *recordNotificador) CaixaFechado(_ context.Context, ev worker.CaixaFechadoEvent) {
	n.caixas = append(n.caixas, ev)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func produtoDeTeste(codigo, nome string, venda, custo string, estoque, minimo int) *model.Produto {
	return &model.Produto{
		ID:            uuid.New(),
		CodigoBarras:  codigo,
		Nome:          nome,
		PrecoVenda:    decimal.RequireFromString(venda),
		PrecoCusto:    decimal.RequireFromString(custo),
		Estoque:       estoque,
		EstoqueMinimo: minimo,
		Ativo:         true,
	}
}

func dinheiro(valor string) []dto.PagamentoRequest {
	return []dto.PagamentoRequest{{Forma: "dinheiro", Valor: decimal.RequireFromString(valor)}}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestFinalizarVendaTrocoEEstoque(t *testing.T) {
	chocolate := produtoDeTeste("7891000100103", "Chocolate", "8.50", "5.00", 10, 2)
	produtos := newMemProdutoRepo(chocolate)
	vendas := &memVendaRepo{}
	notif := &recordNotificador{}
	svc := NewVendaService(vendas, produtos, newMemCaixaRepo(), notif, t.TempDir())

	resp, err := svc.Finalizar(context.Background(), dto.FinalizarVendaRequest{
		Itens: []dto.ItemVendaRequest{
			{CodigoBarras: "7891000100103", Quantidade: 2},
		},
		FormasPagamento: dinheiro("20.00"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	require.Len(t, vendas.vendas, 1)
	v := vendas.vendas[0]
	assert.True(t, v.Total.Equal(decimal.RequireFromString("17.00")))
	assert.True(t, v.Troco.Equal(decimal.RequireFromString("3.00")))
	assert.Equal(t, 2, v.QuantidadeItens)

	// Stock decremented and cost snapshotted
	assert.Equal(t, 8, chocolate.Estoque)
	require.Len(t, v.Itens, 1)
	assert.True(t, v.Itens[0].CustoUnitario.Equal(decimal.RequireFromString("5.00")))

	require.Len(t, notif.vendas, 1)
	assert.Equal(t, v.ID.String(), notif.vendas[0].VendaID)
	assert.Empty(t, notif.estoque)
}

func TestFinalizarVendaPagamentoInsuficiente(t *testing.T) {
	produtos := newMemProdutoRepo(produtoDeTeste("111", "Bala", "2.00", "1.00", 50, 0))
	svc := NewVendaService(&memVendaRepo{}, produtos, newMemCaixaRepo(), &recordNotificador{}, t.TempDir())

	_, err := svc.Finalizar(context.Background(), dto.FinalizarVendaRequest{
		Itens:           []dto.ItemVendaRequest{{CodigoBarras: "111", Quantidade: 3}},
		FormasPagamento: dinheiro("5.00"),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestFinalizarVendaCodigoDesconhecido(t *testing.T) {
	vendas := &memVendaRepo{}
	produtos := newMemProdutoRepo(produtoDeTeste("111", "Bala", "2.00", "1.00", 50, 0))
	svc := NewVendaService(vendas, produtos, newMemCaixaRepo(), &recordNotificador{}, t.TempDir())

	_, err := svc.Finalizar(context.Background(), dto.FinalizarVendaRequest{
		Itens:           []dto.ItemVendaRequest{{CodigoBarras: "999", Quantidade: 1}},
		FormasPagamento: dinheiro("10.00"),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
	assert.Empty(t, vendas.vendas)
}

func TestFinalizarVendaEstoqueInsuficiente(t *testing.T) {
	produtos := newMemProdutoRepo(produtoDeTeste("111", "Bala", "2.00", "1.00", 1, 0))
	svc := NewVendaService(&memVendaRepo{}, produtos, newMemCaixaRepo(), &recordNotificador{}, t.TempDir())

	_, err := svc.Finalizar(context.Background(), dto.FinalizarVendaRequest{
		Itens:           []dto.ItemVendaRequest{{CodigoBarras: "111", Quantidade: 2}},
		FormasPagamento: dinheiro("10.00"),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestFinalizarVendaAtualizaCaixaAberto(t *testing.T) {
	caixas := newMemCaixaRepo()
	caixaSvc := NewCaixaService(caixas, worker.NoopNotificador{})
	abrirCaixa(t, caixaSvc, "100.00")

	produtos := newMemProdutoRepo(produtoDeTeste("111", "Bala", "2.00", "1.00", 50, 0))
	svc := NewVendaService(&memVendaRepo{}, produtos, caixas, &recordNotificador{}, t.TempDir())

	_, err := svc.Finalizar(context.Background(), dto.FinalizarVendaRequest{
		Itens:           []dto.ItemVendaRequest{{CodigoBarras: "111", Quantidade: 5}},
		FormasPagamento: dinheiro("10.00"),
	})
	require.NoError(t, err)

	assert.True(t, caixas.caixa.TotalVendas.Equal(decimal.RequireFromString("10.00")))

	movs, err := caixas.ListMovimentacoes(context.Background(), caixas.caixa.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "venda", movs[0].Tipo)
}

func TestFinalizarVendaCodigoRepetidoSomaLinhas(t *testing.T) {
	bala := produtoDeTeste("111", "Bala", "2.00", "1.00", 10, 0)
	produtos := newMemProdutoRepo(bala)
	vendas := &memVendaRepo{}
	notif := &recordNotificador{}
	svc := NewVendaService(vendas, produtos, newMemCaixaRepo(), notif, t.TempDir())

	// Same barcode scanned as two separate lines of 5
	resp, err := svc.Finalizar(context.Background(), dto.FinalizarVendaRequest{
		Itens: []dto.ItemVendaRequest{
			{CodigoBarras: "111", Quantidade: 5},
			{CodigoBarras: "111", Quantidade: 5},
		},
		FormasPagamento: dinheiro("20.00"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	require.Len(t, vendas.vendas, 1)
	assert.True(t, vendas.vendas[0].Total.Equal(decimal.RequireFromString("20.00")))
	assert.Equal(t, 0, bala.Estoque)

	// One alert for the product, reflecting the stock after both lines
	require.Len(t, notif.estoque, 1)
	assert.Equal(t, 0, notif.estoque[0].Estoque)
}

func TestFinalizarVendaCodigoRepetidoEstoqueInsuficiente(t *testing.T) {
	produtos := newMemProdutoRepo(produtoDeTeste("111", "Bala", "2.00", "1.00", 8, 0))
	vendas := &memVendaRepo{}
	svc := NewVendaService(vendas, produtos, newMemCaixaRepo(), &recordNotificador{}, t.TempDir())

	_, err := svc.Finalizar(context.Background(), dto.FinalizarVendaRequest{
		Itens: []dto.ItemVendaRequest{
			{CodigoBarras: "111", Quantidade: 5},
			{CodigoBarras: "111", Quantidade: 5},
		},
		FormasPagamento: dinheiro("20.00"),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
	assert.Empty(t, vendas.vendas)
}

func TestFinalizarVendaSemItens(t *testing.T) {
	svc := NewVendaService(&memVendaRepo{}, newMemProdutoRepo(), newMemCaixaRepo(), &recordNotificador{}, t.TempDir())

	_, err := svc.Finalizar(context.Background(), dto.FinalizarVendaRequest{
		FormasPagamento: dinheiro("10.00"),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestFinalizarVendaSemPagamento(t *testing.T) {
	produtos := newMemProdutoRepo(produtoDeTeste("111", "Bala", "2.00", "1.00", 50, 0))
	svc := NewVendaService(&memVendaRepo{}, produtos, newMemCaixaRepo(), &recordNotificador{}, t.TempDir())

	_, err := svc.Finalizar(context.Background(), dto.FinalizarVendaRequest{
		Itens: []dto.ItemVendaRequest{{CodigoBarras: "111", Quantidade: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestFinalizarVendasSucessivasAcumulamNoCaixa(t *testing.T) {
	caixas := newMemCaixaRepo()
	caixaSvc := NewCaixaService(caixas, worker.NoopNotificador{})
	abrirCaixa(t, caixaSvc, "100.00")

	produtos := newMemProdutoRepo(produtoDeTeste("111", "Bala", "2.00", "1.00", 50, 0))
	svc := NewVendaService(&memVendaRepo{}, produtos, caixas, &recordNotificador{}, t.TempDir())

	for i := 0; i < 2; i++ {
		_, err := svc.Finalizar(context.Background(), dto.FinalizarVendaRequest{
			Itens:           []dto.ItemVendaRequest{{CodigoBarras: "111", Quantidade: 5}},
			FormasPagamento: dinheiro("10.00"),
		})
		require.NoError(t, err)
	}

	// Each bump adds to total_vendas instead of rewriting it
	assert.True(t, caixas.caixa.TotalVendas.Equal(decimal.RequireFromString("20.00")))

	movs, err := caixas.ListMovimentacoes(context.Background(), caixas.caixa.ID)
	require.NoError(t, err)
	assert.Len(t, movs, 2)
}

func TestFinalizarVendaAlertaEstoqueBaixo(t *testing.T) {
	p := produtoDeTeste("111", "Bala", "2.00", "1.00", 6, 5)
	produtos := newMemProdutoRepo(p)
	notif := &recordNotificador{}
	svc := NewVendaService(&memVendaRepo{}, produtos, newMemCaixaRepo(), notif, t.TempDir())

	_, err := svc.Finalizar(context.Background(), dto.FinalizarVendaRequest{
		Itens:           []dto.ItemVendaRequest{{CodigoBarras: "111", Quantidade: 2}},
		FormasPagamento: dinheiro("4.00"),
	})
	require.NoError(t, err)

	require.Len(t, notif.estoque, 1)
	assert.Equal(t, 4, notif.estoque[0].Estoque)
	assert.Equal(t, 5, notif.estoque[0].EstoqueMinimo)
}

func TestFinalizarVendaDescontoMaiorQueTotal(t *testing.T) {
	produtos := newMemProdutoRepo(produtoDeTeste("111", "Bala", "2.00", "1.00", 50, 0))
	svc := NewVendaService(&memVendaRepo{}, produtos, newMemCaixaRepo(), &recordNotificador{}, t.TempDir())

	_, err := svc.Finalizar(context.Background(), dto.FinalizarVendaRequest{
		Itens:           []dto.ItemVendaRequest{{CodigoBarras: "111", Quantidade: 1}},
		Desconto:        decimal.RequireFromString("10.00"),
		FormasPagamento: dinheiro("10.00"),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestResumoVendasDoDia(t *testing.T) {
	vendas := &memVendaRepo{}
	produtos := newMemProdutoRepo(produtoDeTeste("111", "Bala", "2.00", "1.00", 50, 0))
	svc := NewVendaService(vendas, produtos, newMemCaixaRepo(), &recordNotificador{}, t.TempDir())

	for i := 0; i < 3; i++ {
		_, err := svc.Finalizar(context.Background(), dto.FinalizarVendaRequest{
			Itens:           []dto.ItemVendaRequest{{CodigoBarras: "111", Quantidade: 1}},
			FormasPagamento: dinheiro("2.00"),
		})
		require.NoError(t, err)
	}

	resumo, err := svc.Resumo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, resumo.VendasHoje)
	assert.True(t, resumo.ReceitaHoje.Equal(decimal.RequireFromString("6.00")))
	assert.True(t, resumo.TicketMedio.Equal(decimal.RequireFromString("2.00")))
}
