package dto

import "github.com/shopspring/decimal"

// JSON field names follow the original PDV front-end contract (snake_case).

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVendaRequest struct {
	CodigoBarras  string          `json:"codigo_barras"  validate:"required"`
	Nome          string          `json:"nome"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario" validate:"min=0"`
	Quantidade    int             `json:"quantidade"     validate:"required,min=1"`
}

type PagamentoRequest struct {
	Forma string          `json:"forma" validate:"required,oneof=dinheiro debito credito pix"`
	Valor decimal.Decimal `json:"valor" validate:"required"`
}

type FinalizarVendaRequest struct {
	Itens           []ItemVendaRequest `json:"itens"            validate:"required,min=1,dive"`
	Desconto        decimal.Decimal    `json:"desconto"         validate:"min=0"`
	FormasPagamento []PagamentoRequest `json:"formas_pagamento" validate:"required,min=1,dive"`
}

// ─── Filter / List ───────────────────────────────────────────────────────────

// VendaFilter is bound from the query string of GET /v1/vendas.
type VendaFilter struct {
	Data  string `form:"data"` // YYYY-MM-DD; empty = all
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVendaResponse struct {
	ProdutoID     string          `json:"produto_id"`
	Nome          string          `json:"nome"`
	CodigoBarras  string          `json:"codigo_barras"`
	Quantidade    int             `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

type VendaResponse struct {
	ID              string              `json:"id"`
	Total           decimal.Decimal     `json:"total"`
	ValorPago       decimal.Decimal     `json:"valor_pago"`
	Troco           decimal.Decimal     `json:"troco"`
	Desconto        decimal.Decimal     `json:"desconto"`
	QuantidadeItens int                 `json:"quantidade_itens"`
	Itens           []ItemVendaResponse `json:"itens"`
	FormasPagamento []PagamentoRequest  `json:"formas_pagamento"`
	CreatedAt       string              `json:"created_at"`
}

type FinalizarVendaResponse struct {
	Success bool   `json:"success"`
	VendaID string `json:"vendaId"`
}

type VendaListResponse struct {
	Data  []VendaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ResumoVendasResponse backs GET /v1/vendas/stats/resumo.
type ResumoVendasResponse struct {
	VendasHoje  int             `json:"vendas_hoje"`
	ReceitaHoje decimal.Decimal `json:"receita_hoje"`
	TicketMedio decimal.Decimal `json:"ticket_medio"`
}
