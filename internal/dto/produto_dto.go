package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarProdutoRequest struct {
	CodigoBarras  string          `json:"codigo_barras"  validate:"required,min=3"`
	Nome          string          `json:"nome"           validate:"required,min=2"`
	Descricao     *string         `json:"descricao"`
	PrecoVenda    decimal.Decimal `json:"preco_venda"    validate:"required"`
	PrecoCusto    decimal.Decimal `json:"preco_custo"    validate:"min=0"`
	DescontoPct   decimal.Decimal `json:"desconto_pct"   validate:"min=0,max=100"`
	Estoque       int             `json:"estoque"        validate:"min=0"`
	EstoqueMinimo int             `json:"estoque_minimo" validate:"min=0"`
	CategoriaID   *string         `json:"categoria_id"   validate:"omitempty,uuid"`
	FornecedorID  *string         `json:"fornecedor_id"  validate:"omitempty,uuid"`
}

// AtualizarProdutoRequest uses pointers so absent fields are left untouched.
type AtualizarProdutoRequest struct {
	CodigoBarras  *string          `json:"codigo_barras"  validate:"omitempty,min=3"`
	Nome          *string          `json:"nome"           validate:"omitempty,min=2"`
	Descricao     *string          `json:"descricao"`
	PrecoVenda    *decimal.Decimal `json:"preco_venda"`
	PrecoCusto    *decimal.Decimal `json:"preco_custo"`
	DescontoPct   *decimal.Decimal `json:"desconto_pct"`
	Estoque       *int             `json:"estoque"`
	EstoqueMinimo *int             `json:"estoque_minimo"`
	CategoriaID   *string          `json:"categoria_id"   validate:"omitempty,uuid"`
	FornecedorID  *string          `json:"fornecedor_id"  validate:"omitempty,uuid"`
}

// ProdutoFilter is bound from the query string of GET /v1/produtos.
type ProdutoFilter struct {
	Busca           string `form:"busca"`
	CategoriaID     string `form:"categoria_id"`
	IncluirInativos bool   `form:"incluir_inativos"`
	EstoqueBaixo    bool   `form:"estoque_baixo"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProdutoResponse struct {
	ID            string          `json:"id"`
	CodigoBarras  string          `json:"codigo_barras"`
	Nome          string          `json:"nome"`
	Descricao     *string         `json:"descricao"`
	PrecoVenda    decimal.Decimal `json:"preco_venda"`
	PrecoCusto    decimal.Decimal `json:"preco_custo"`
	DescontoPct   decimal.Decimal `json:"desconto_pct"`
	Estoque       int             `json:"estoque"`
	EstoqueMinimo int             `json:"estoque_minimo"`
	EstoqueBaixo  bool            `json:"estoque_baixo"`
	CategoriaID   *string         `json:"categoria_id"`
	FornecedorID  *string         `json:"fornecedor_id"`
	Ativo         bool            `json:"ativo"`
}
