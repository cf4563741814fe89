package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"bomboniere/internal/dto"
	"bomboniere/internal/model"
	"bomboniere/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardService interface {
	Resumo(ctx context.Context) (*dto.ResumoDashboardResponse, error)
	// Grafico builds the revenue trend ending today: dias daily buckets, or
	// ceil(dias/7) weekly buckets when dias >= 90.
	Grafico(ctx context.Context, dias int, metaMensal decimal.Decimal) (*dto.GraficoReceitaResponse, error)
}

type dashboardService struct {
	vendas   repository.VendaRepository
	produtos repository.ProdutoRepository
	caixas   repository.CaixaRepository
}

func NewDashboardService(
	vendas repository.VendaRepository,
	produtos repository.ProdutoRepository,
	caixas repository.CaixaRepository,
) DashboardService {
	return &dashboardService{vendas: vendas, produtos: produtos, caixas: caixas}
}

const (
	diasGraficoPadrao = 30
	diasGraficoMax    = 365
	// A window of 90+ days switches the chart to weekly buckets.
	limiarSemanal = 90

	janelaMediaDiaria  = 7
	janelaMediaSemanal = 4
)

func (s *dashboardService) Resumo(ctx context.Context) (*dto.ResumoDashboardResponse, error) {
	now := time.Now()
	inicioHoje := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	vendasHoje, err := s.vendas.ListSince(ctx, inicioHoje)
	if err != nil {
		return nil, err
	}
	receita := decimal.Zero
	for i := range vendasHoje {
		receita = receita.Add(vendasHoje[i].Total)
	}

	produtos, err := s.produtos.ListAtivos(ctx)
	if err != nil {
		return nil, err
	}
	baixo := filtrarEstoqueBaixo(produtos)

	widget := make([]dto.ProdutoResponse, 0, 5)
	for i := range baixo {
		if i == 5 {
			break
		}
		widget = append(widget, *produtoToResponse(&baixo[i]))
	}

	resp := &dto.ResumoDashboardResponse{
		VendasHoje:     len(vendasHoje),
		ReceitaHoje:    receita,
		TotalProdutos:  len(produtos),
		AlertasEstoque: len(baixo),
		EstoqueBaixo:   widget,
	}

	caixa, err := s.caixas.FindAberto(ctx)
	if err == nil {
		saldo := caixa.Saldo()
		resp.CaixaAberto = true
		resp.SaldoCaixa = &saldo
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return resp, nil
}

func (s *dashboardService) Grafico(ctx context.Context, dias int, metaMensal decimal.Decimal) (*dto.GraficoReceitaResponse, error) {
	if dias < 1 {
		dias = diasGraficoPadrao
	}
	if dias > diasGraficoMax {
		dias = diasGraficoMax
	}

	now := time.Now()
	hoje := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	inicio := hoje.AddDate(0, 0, -(dias - 1))

	vendas, err := s.vendas.ListSince(ctx, inicio)
	if err != nil {
		return nil, err
	}

	return montarGrafico(vendas, dias, inicio, metaMensal, hoje), nil
}

// ─── Pure aggregation ────────────────────────────────────────────────────────

// filtrarEstoqueBaixo returns the active products in alert, zero-stock first,
// then ascending stock.
func filtrarEstoqueBaixo(produtos []model.Produto) []model.Produto {
	var baixo []model.Produto
	for i := range produtos {
		if produtos[i].EstoqueBaixo() {
			baixo = append(baixo, produtos[i])
		}
	}
	sort.SliceStable(baixo, func(i, j int) bool {
		if (baixo[i].Estoque == 0) != (baixo[j].Estoque == 0) {
			return baixo[i].Estoque == 0
		}
		return baixo[i].Estoque < baixo[j].Estoque
	})
	return baixo
}

// montarGrafico buckets sales into the window [inicio, inicio+dias) and
// derives the moving average and proportional goal line.
func montarGrafico(vendas []model.Venda, dias int, inicio time.Time, metaMensal decimal.Decimal, hoje time.Time) *dto.GraficoReceitaResponse {
	semanal := dias >= limiarSemanal

	numBuckets := dias
	passoDias := 1
	if semanal {
		numBuckets = (dias + 6) / 7
		passoDias = 7
	}

	receitas := make([]decimal.Decimal, numBuckets)
	for i := range receitas {
		receitas[i] = decimal.Zero
	}

	// Assignment goes through civil dates: around a clock change a day is 23
	// or 25 hours long and dividing wall-clock hours by 24 lands sales in the
	// neighboring bucket.
	indicePorDia := make(map[string]int, dias)
	for d, dia := 0, inicio; d < dias; d, dia = d+1, dia.AddDate(0, 0, 1) {
		indicePorDia[dia.Format("2006-01-02")] = d
	}

	for i := range vendas {
		offset, ok := indicePorDia[vendas[i].CreatedAt.Format("2006-01-02")]
		if !ok {
			continue
		}
		idx := offset / passoDias
		receitas[idx] = receitas[idx].Add(vendas[i].Total)
	}

	janela := janelaMediaDiaria
	if semanal {
		janela = janelaMediaSemanal
	}
	medias := mediaMovel(receitas, janela)

	semDados := true
	pontos := make([]dto.PontoGrafico, numBuckets)
	for i := range receitas {
		if !receitas[i].IsZero() {
			semDados = false
		}
		pontos[i] = dto.PontoGrafico{
			Rotulo:     inicio.AddDate(0, 0, i*passoDias).Format("2006-01-02"),
			Receita:    receitas[i],
			MediaMovel: medias[i],
		}
	}

	modo := "diario"
	if semanal {
		modo = "semanal"
	}

	return &dto.GraficoReceitaResponse{
		Modo:      modo,
		Pontos:    pontos,
		MetaLinha: metaLinha(metaMensal, hoje, semanal),
		SemDados:  semDados,
	}
}

// mediaMovel computes a trailing moving average clipped at the start: each
// point divides by the number of buckets actually inside the window.
func mediaMovel(valores []decimal.Decimal, janela int) []decimal.Decimal {
	medias := make([]decimal.Decimal, len(valores))
	soma := decimal.Zero
	for i := range valores {
		soma = soma.Add(valores[i])
		if i >= janela {
			soma = soma.Sub(valores[i-janela])
		}
		tamanho := i + 1
		if tamanho > janela {
			tamanho = janela
		}
		medias[i] = soma.Div(decimal.NewFromInt(int64(tamanho))).Round(2)
	}
	return medias
}

// metaLinha splits the monthly goal over the days of the current month; in
// weekly mode one bucket covers seven days.
func metaLinha(metaMensal decimal.Decimal, hoje time.Time, semanal bool) decimal.Decimal {
	diasNoMes := time.Date(hoje.Year(), hoje.Month()+1, 0, 0, 0, 0, 0, hoje.Location()).Day()
	linha := metaMensal.Div(decimal.NewFromInt(int64(diasNoMes)))
	if semanal {
		linha = linha.Mul(decimal.NewFromInt(7))
	}
	return linha.Round(2)
}
