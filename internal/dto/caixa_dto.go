package dto

import "github.com/shopspring/decimal"

// JSON field names follow the original PDV front-end contract (camelCase).

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCaixaRequest struct {
	Operador         string          `json:"operador"         validate:"required,min=2"`
	ValorAbertura    decimal.Decimal `json:"valorAbertura"    validate:"min=0"`
	DataHoraAbertura string          `json:"dataHoraAbertura" validate:"omitempty"`
}

type MovimentacaoRequest struct {
	Tipo       string          `json:"tipo"       validate:"required,oneof=reforco sangria"`
	Valor      decimal.Decimal `json:"valor"      validate:"required,gt=0"`
	Observacao *string         `json:"observacao"`
}

// AtualizarCaixaRequest overwrites the running totals of the open session.
// Kept for the legacy PUT /caixa/atualizar contract; new code should prefer
// POST /caixa/movimentacoes.
type AtualizarCaixaRequest struct {
	TotalVendas   decimal.Decimal       `json:"totalVendas"   validate:"min=0"`
	TotalReforcos decimal.Decimal       `json:"totalReforcos" validate:"min=0"`
	TotalSangrias decimal.Decimal       `json:"totalSangrias" validate:"min=0"`
	Movimentacoes []MovimentacaoRecorde `json:"movimentacoes" validate:"dive"`
}

// MovimentacaoRecorde is a ledger entry as exchanged with the front-end.
type MovimentacaoRecorde struct {
	Tipo       string          `json:"tipo"       validate:"required,oneof=venda reforco sangria"`
	Valor      decimal.Decimal `json:"valor"      validate:"required"`
	DataHora   string          `json:"dataHora"`
	Observacao *string         `json:"observacao"`
}

type FecharCaixaRequest struct {
	SaldoReal          decimal.Decimal `json:"saldoReal"          validate:"min=0"`
	DataHoraFechamento string          `json:"dataHoraFechamento" validate:"omitempty"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CaixaResponse struct {
	ID               string                `json:"id"`
	Operador         string                `json:"operador"`
	DataHoraAbertura string                `json:"dataHoraAbertura"`
	ValorAbertura    decimal.Decimal       `json:"valorAbertura"`
	TotalVendas      decimal.Decimal       `json:"totalVendas"`
	TotalReforcos    decimal.Decimal       `json:"totalReforcos"`
	TotalSangrias    decimal.Decimal       `json:"totalSangrias"`
	Saldo            decimal.Decimal       `json:"saldo"`
	Movimentacoes    []MovimentacaoRecorde `json:"movimentacoes"`
}

type StatusCaixaResponse struct {
	Aberto bool           `json:"aberto"`
	Caixa  *CaixaResponse `json:"caixa,omitempty"`
}

type FechamentoResponse struct {
	ID                 string                `json:"id"`
	Operador           string                `json:"operador"`
	DataHoraAbertura   string                `json:"dataHoraAbertura"`
	DataHoraFechamento string                `json:"dataHoraFechamento"`
	ValorAbertura      decimal.Decimal       `json:"valorAbertura"`
	TotalVendas        decimal.Decimal       `json:"totalVendas"`
	TotalReforcos      decimal.Decimal       `json:"totalReforcos"`
	TotalSangrias      decimal.Decimal       `json:"totalSangrias"`
	SaldoEsperado      decimal.Decimal       `json:"saldoEsperado"`
	SaldoReal          decimal.Decimal       `json:"saldoReal"`
	Diferenca          decimal.Decimal       `json:"diferenca"`
	Movimentacoes      []MovimentacaoRecorde `json:"movimentacoes"`
}
