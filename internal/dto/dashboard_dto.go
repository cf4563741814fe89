package dto

import "github.com/shopspring/decimal"

// ResumoDashboardResponse backs GET /v1/dashboard/resumo.
type ResumoDashboardResponse struct {
	VendasHoje     int               `json:"vendas_hoje"`
	ReceitaHoje    decimal.Decimal   `json:"receita_hoje"`
	TotalProdutos  int               `json:"total_produtos"`
	AlertasEstoque int               `json:"alertas_estoque"`
	EstoqueBaixo   []ProdutoResponse `json:"estoque_baixo"` // top 5 widget
	CaixaAberto    bool              `json:"caixa_aberto"`
	SaldoCaixa     *decimal.Decimal  `json:"saldo_caixa,omitempty"`
}

// PontoGrafico is one bucket of the revenue trend chart.
type PontoGrafico struct {
	Rotulo     string          `json:"rotulo"` // YYYY-MM-DD (daily) or week start date (weekly)
	Receita    decimal.Decimal `json:"receita"`
	MediaMovel decimal.Decimal `json:"media_movel"`
}

// GraficoReceitaResponse backs GET /v1/dashboard/grafico.
type GraficoReceitaResponse struct {
	Modo      string          `json:"modo"` // diario | semanal
	Pontos    []PontoGrafico  `json:"pontos"`
	MetaLinha decimal.Decimal `json:"meta_linha"` // proportional goal per bucket (×7 in weekly mode)
	SemDados  bool            `json:"sem_dados"`
}
