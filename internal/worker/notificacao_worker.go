package worker

// notificacao_worker.go
// Formats Portuguese notification messages for finalized sales, low-stock
// alerts and register closings, and pushes them to the Telegram chat.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bomboniere/internal/infra"

	"github.com/rs/zerolog/log"
)

// NotificacaoWorker turns queued events into Telegram messages.
type NotificacaoWorker struct {
	telegram *infra.TelegramClient
}

func NewNotificacaoWorker(telegram *infra.TelegramClient) *NotificacaoWorker {
	return &NotificacaoWorker{telegram: telegram}
}

// Process handles one job from the queue. Returning an error re-enqueues the
// job (up to the pool's retry budget).
func (w *NotificacaoWorker) Process(ctx context.Context, job Job) error {
	if !w.telegram.Configured() {
		// Token not set — drop silently, same behavior as the no-op notifier.
		return nil
	}

	text, err := w.formatMessage(job)
	if err != nil {
		// Malformed payloads are unrecoverable; log and consume.
		log.Error().Err(err).Str("type", job.Type).Msg("notificacao: invalid payload")
		return nil
	}

	return w.telegram.SendMessage(ctx, text)
}

func (w *NotificacaoWorker) formatMessage(job Job) (string, error) {
	switch job.Type {
	case JobVendaFinalizada:
		var ev VendaFinalizadaEvent
		if err := json.Unmarshal(job.Payload, &ev); err != nil {
			return "", err
		}
		return fmt.Sprintf(
			"🛒 *Venda finalizada*\nTotal: R$ %s\nItens: %d\nPagamento: %s",
			ev.Total.StringFixed(2), ev.QuantidadeItens, strings.Join(ev.Formas, ", "),
		), nil

	case JobEstoqueBaixo:
		var ev EstoqueBaixoEvent
		if err := json.Unmarshal(job.Payload, &ev); err != nil {
			return "", err
		}
		if ev.Estoque == 0 {
			return fmt.Sprintf("🚨 *Estoque zerado*\n%s está sem estoque!", ev.Nome), nil
		}
		return fmt.Sprintf(
			"⚠️ *Estoque baixo*\n%s: %d unidade(s) (mínimo %d)",
			ev.Nome, ev.Estoque, ev.EstoqueMinimo,
		), nil

	case JobCaixaFechado:
		var ev CaixaFechadoEvent
		if err := json.Unmarshal(job.Payload, &ev); err != nil {
			return "", err
		}
		return fmt.Sprintf(
			"🧾 *Caixa fechado*\nOperador: %s\nEsperado: R$ %s\nContado: R$ %s\nDiferença: R$ %s",
			ev.Operador, ev.SaldoEsperado.StringFixed(2),
			ev.SaldoContado.StringFixed(2), ev.Diferenca.StringFixed(2),
		), nil

	default:
		return "", fmt.Errorf("tipo de job desconhecido: %s", job.Type)
	}
}
