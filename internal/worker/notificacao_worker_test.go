package worker

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMessageVendaFinalizada(t *testing.T) {
	payload, err := json.Marshal(VendaFinalizadaEvent{
		VendaID:         "abc",
		Total:           decimal.RequireFromString("17.50"),
		QuantidadeItens: 3,
		Formas:          []string{"dinheiro", "pix"},
	})
	require.NoError(t, err)

	w := NewNotificacaoWorker(nil)
	msg, err := w.formatMessage(Job{Type: JobVendaFinalizada, Payload: payload})
	require.NoError(t, err)
	assert.Contains(t, msg, "R$ 17.50")
	assert.Contains(t, msg, "dinheiro, pix")
}

func TestFormatMessageEstoqueZerado(t *testing.T) {
	payload, err := json.Marshal(EstoqueBaixoEvent{Nome: "Chocolate", Estoque: 0, EstoqueMinimo: 5})
	require.NoError(t, err)

	w := NewNotificacaoWorker(nil)
	msg, err := w.formatMessage(Job{Type: JobEstoqueBaixo, Payload: payload})
	require.NoError(t, err)
	assert.Contains(t, msg, "Estoque zerado")
	assert.Contains(t, msg, "Chocolate")
}

func TestFormatMessageTipoDesconhecido(t *testing.T) {
	w := NewNotificacaoWorker(nil)
	_, err := w.formatMessage(Job{Type: "x"})
	assert.Error(t, err)
}
