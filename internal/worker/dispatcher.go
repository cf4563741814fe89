package worker

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueNotificacoes = "jobs:notificacoes"

// Job types consumed by the notification worker.
const (
	JobVendaFinalizada = "venda_finalizada"
	JobEstoqueBaixo    = "estoque_baixo"
	JobCaixaFechado    = "caixa_fechado"
)

// Job is the generic envelope for all async tasks. Attempts is incremented by
// the pool on each failed delivery; jobs past the retry budget land in the DLQ.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Dispatcher enqueues notification jobs into a Redis list; the worker pool
// dequeues them via BRPOP. Enqueue failures are logged, never surfaced — a
// lost notification must not fail a committed sale.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

var _ Notificador = (*Dispatcher)(nil)

func (d *Dispatcher) VendaFinalizada(ctx context.Context, ev VendaFinalizadaEvent) {
	d.enqueue(ctx, JobVendaFinalizada, ev)
}

func (d *Dispatcher) EstoqueBaixo(ctx context.Context, ev EstoqueBaixoEvent) {
	d.enqueue(ctx, JobEstoqueBaixo, ev)
}

func (d *Dispatcher) CaixaFechado(ctx context.Context, ev CaixaFechadoEvent) {
	d.enqueue(ctx, JobCaixaFechado, ev)
}

func (d *Dispatcher) enqueue(ctx context.Context, jobType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("type", jobType).Msg("dispatcher: marshal payload")
		return
	}
	encoded, err := json.Marshal(Job{Type: jobType, Payload: data})
	if err != nil {
		log.Error().Err(err).Str("type", jobType).Msg("dispatcher: marshal job")
		return
	}
	if err := d.rdb.LPush(ctx, QueueNotificacoes, encoded).Err(); err != nil {
		log.Error().Err(err).Str("type", jobType).Msg("dispatcher: enqueue failed")
	}
}
