package worker

import (
	"context"

	"github.com/shopspring/decimal"
)

// Notificador is the outbound notification boundary. Services call it after a
// successful commit; implementations must never block the request path.
// The default is a no-op so the rest of the system needs no capability checks.
type Notificador interface {
	VendaFinalizada(ctx context.Context, ev VendaFinalizadaEvent)
	EstoqueBaixo(ctx context.Context, ev EstoqueBaixoEvent)
	CaixaFechado(ctx context.Context, ev CaixaFechadoEvent)
}

type VendaFinalizadaEvent struct {
	VendaID         string          `json:"venda_id"`
	Total           decimal.Decimal `json:"total"`
	QuantidadeItens int             `json:"quantidade_itens"`
	Formas          []string        `json:"formas"`
}

type EstoqueBaixoEvent struct {
	ProdutoID     string `json:"produto_id"`
	Nome          string `json:"nome"`
	Estoque       int    `json:"estoque"`
	EstoqueMinimo int    `json:"estoque_minimo"`
}

type CaixaFechadoEvent struct {
	Operador      string          `json:"operador"`
	SaldoEsperado decimal.Decimal `json:"saldo_esperado"`
	SaldoContado  decimal.Decimal `json:"saldo_contado"`
	Diferenca     decimal.Decimal `json:"diferenca"`
}

// NoopNotificador drops every event. Used when no Telegram token is configured
// and as the default in tests.
type NoopNotificador struct{}

func (NoopNotificador) VendaFinalizada(context.Context, VendaFinalizadaEvent) {}

func (NoopNotificador) EstoqueBaixo(context.Context, EstoqueBaixoEvent) {}

func (NoopNotificador) CaixaFechado(context.Context, CaixaFechadoEvent) {}
