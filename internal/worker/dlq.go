package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Notification jobs that burn through their retry budget land in this list.
// The server never reads it back; an operator inspects or replays entries
// with redis-cli after, say, a revoked bot token or a long Telegram outage.
const dlqNotificacoes = "dlq:" + QueueNotificacoes

// dlqEntry keeps the original payload next to the failure reason so a
// parked notification can be re-enqueued by hand without guesswork.
type dlqEntry struct {
	JobType  string          `json:"job_type"`
	Payload  json.RawMessage `json:"payload"`
	Reason   string          `json:"reason"`
	FailedAt time.Time       `json:"failed_at"`
	Attempts int             `json:"attempts"`
}

func sendToDLQ(ctx context.Context, rdb *redis.Client, job Job, reason string) {
	entry := dlqEntry{
		JobType:  job.Type,
		Payload:  job.Payload,
		Reason:   reason,
		FailedAt: time.Now().UTC(),
		Attempts: job.Attempts,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("type", job.Type).Msg("dlq: marshal entry")
		return
	}
	if err := rdb.LPush(ctx, dlqNotificacoes, data).Err(); err != nil {
		log.Error().Err(err).Str("type", job.Type).Msg("dlq: push failed")
		return
	}

	log.Warn().
		Str("type", job.Type).
		Str("reason", reason).
		Int("attempts", job.Attempts).
		Msg("dlq: notification parked after exhausting retries")
}
