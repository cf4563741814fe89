package service

import (
	"context"
	"testing"
	"time"

	"bomboniere/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func produtoEstoque(nome string, estoque, minimo int) model.Produto {
	return model.Produto{Nome: nome, Estoque: estoque, EstoqueMinimo: minimo, Ativo: true}
}

func TestFiltrarEstoqueBaixo(t *testing.T) {
	casos := []struct {
		nome    string
		estoque int
		minimo  int
		alerta  bool
	}{
		{"zerado com minimo", 0, 5, true},
		{"no limite", 5, 5, true},
		{"acima do limite", 6, 5, false},
		{"zerado sem minimo", 0, 0, true},
		{"com estoque sem minimo", 3, 0, false},
	}

	var produtos []model.Produto
	for _, c := range casos {
		produtos = append(produtos, produtoEstoque(c.nome, c.estoque, c.minimo))
	}

	baixo := filtrarEstoqueBaixo(produtos)

	nomes := make(map[string]bool)
	for _, p := range baixo {
		nomes[p.Nome] = true
	}
	for _, c := range casos {
		assert.Equal(t, c.alerta, nomes[c.nome], c.nome)
	}
}

func TestFiltrarEstoqueBaixoOrdenacao(t *testing.T) {
	produtos := []model.Produto{
		produtoEstoque("quase", 4, 5),
		produtoEstoque("zerado", 0, 5),
		produtoEstoque("critico", 1, 5),
	}

	baixo := filtrarEstoqueBaixo(produtos)
	require.Len(t, baixo, 3)
	assert.Equal(t, "zerado", baixo[0].Nome)
	assert.Equal(t, "critico", baixo[1].Nome)
	assert.Equal(t, "quase", baixo[2].Nome)
}

func vendaEm(dia time.Time, total string) model.Venda {
	return model.Venda{Total: decimal.RequireFromString(total), CreatedAt: dia.Add(14 * time.Hour)}
}

func TestMontarGraficoBucketsDiarios(t *testing.T) {
	hoje := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)
	dias := 7
	inicio := hoje.AddDate(0, 0, -(dias - 1))

	terceiroDia := inicio.AddDate(0, 0, 2)
	vendas := []model.Venda{
		vendaEm(terceiroDia, "50.00"),
		vendaEm(terceiroDia, "60.00"),
		vendaEm(terceiroDia, "40.00"),
	}

	g := montarGrafico(vendas, dias, inicio, decimal.RequireFromString("3100.00"), hoje)

	assert.Equal(t, "diario", g.Modo)
	require.Len(t, g.Pontos, 7)
	assert.False(t, g.SemDados)

	for i, p := range g.Pontos {
		if i == 2 {
			assert.True(t, p.Receita.Equal(decimal.RequireFromString("150.00")))
		} else {
			assert.True(t, p.Receita.IsZero(), "bucket %d", i)
		}
	}
	assert.Equal(t, terceiroDia.Format("2006-01-02"), g.Pontos[2].Rotulo)
}

func TestMontarGraficoForaDaJanelaDescartada(t *testing.T) {
	hoje := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)
	inicio := hoje.AddDate(0, 0, -6)

	vendas := []model.Venda{vendaEm(inicio.AddDate(0, 0, -1), "99.00")}
	g := montarGrafico(vendas, 7, inicio, decimal.Zero, hoje)

	assert.True(t, g.SemDados)
	for _, p := range g.Pontos {
		assert.True(t, p.Receita.IsZero())
	}
}

func TestMontarGraficoBucketPorDataCivil(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// The window spans the spring-forward clock change (2026-03-08 is a
	// 23-hour day); buckets must still follow the calendar date.
	inicio := time.Date(2026, 3, 1, 0, 0, 0, 0, loc)
	hoje := inicio.AddDate(0, 0, 13)

	vendas := []model.Venda{vendaEm(time.Date(2026, 3, 10, 0, 0, 0, 0, loc), "50.00")}
	g := montarGrafico(vendas, 14, inicio, decimal.Zero, hoje)

	require.Len(t, g.Pontos, 14)
	assert.Equal(t, "2026-03-10", g.Pontos[9].Rotulo)
	assert.True(t, g.Pontos[9].Receita.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, g.Pontos[8].Receita.IsZero())
}

func TestMediaMovelRecortadaNoInicio(t *testing.T) {
	valores := make([]decimal.Decimal, 10)
	for i := range valores {
		valores[i] = decimal.NewFromInt(int64((i + 1) * 10)) // 10, 20, ..., 100
	}

	medias := mediaMovel(valores, 7)

	// Index 0: window of length 1 — the bucket itself
	assert.True(t, medias[0].Equal(decimal.RequireFromString("10")))
	// Index 2: mean of 10,20,30
	assert.True(t, medias[2].Equal(decimal.RequireFromString("20")))
	// Index 6: mean of the trailing 7 buckets (10..70) = 40
	assert.True(t, medias[6].Equal(decimal.RequireFromString("40")))
	// Index 9: mean of 40..100 = 70
	assert.True(t, medias[9].Equal(decimal.RequireFromString("70")))
}

func TestMontarGraficoModoSemanal(t *testing.T) {
	hoje := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)
	dias := 90
	inicio := hoje.AddDate(0, 0, -(dias - 1))

	// Two sales in the first week, one in the second
	vendas := []model.Venda{
		vendaEm(inicio, "10.00"),
		vendaEm(inicio.AddDate(0, 0, 6), "20.00"),
		vendaEm(inicio.AddDate(0, 0, 7), "5.00"),
	}

	g := montarGrafico(vendas, dias, inicio, decimal.Zero, hoje)

	assert.Equal(t, "semanal", g.Modo)
	require.Len(t, g.Pontos, 13) // ceil(90/7)
	assert.True(t, g.Pontos[0].Receita.Equal(decimal.RequireFromString("30.00")))
	assert.True(t, g.Pontos[1].Receita.Equal(decimal.RequireFromString("5.00")))
}

func TestMetaLinha(t *testing.T) {
	// August has 31 days
	hoje := time.Date(2026, 8, 15, 0, 0, 0, 0, time.Local)
	meta := decimal.RequireFromString("3100.00")

	assert.True(t, metaLinha(meta, hoje, false).Equal(decimal.RequireFromString("100.00")))
	assert.True(t, metaLinha(meta, hoje, true).Equal(decimal.RequireFromString("700.00")))
}

func TestResumoDashboard(t *testing.T) {
	vendas := &memVendaRepo{}
	hoje := time.Now()
	vendas.vendas = append(vendas.vendas, &model.Venda{Total: decimal.RequireFromString("30.00"), CreatedAt: hoje})

	produtos := newMemProdutoRepo(
		produtoDeTeste("111", "Bala", "2.00", "1.00", 0, 5),
		produtoDeTeste("222", "Pipoca", "4.00", "2.00", 20, 5),
	)
	caixas := newMemCaixaRepo()

	svc := NewDashboardService(vendas, produtos, caixas)

	resumo, err := svc.Resumo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resumo.VendasHoje)
	assert.True(t, resumo.ReceitaHoje.Equal(decimal.RequireFromString("30.00")))
	assert.Equal(t, 2, resumo.TotalProdutos)
	assert.Equal(t, 1, resumo.AlertasEstoque)
	require.Len(t, resumo.EstoqueBaixo, 1)
	assert.Equal(t, "Bala", resumo.EstoqueBaixo[0].Nome)
	assert.False(t, resumo.CaixaAberto)
	assert.Nil(t, resumo.SaldoCaixa)
}
