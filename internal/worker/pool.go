package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxJobAttempts = 3

// StartWorkerPool launches numWorkers goroutines consuming the notification
// queue. Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, notif *NotificacaoWorker, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, notif, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, notif *NotificacaoWorker, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueNotificacoes).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, notif, result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, notif *NotificacaoWorker, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal job")
		return
	}

	if err := notif.Process(ctx, job); err != nil {
		job.Attempts++
		if job.Attempts >= maxJobAttempts {
			sendToDLQ(ctx, rdb, job, err.Error())
			return
		}
		log.Warn().
			Str("type", job.Type).
			Int("attempts", job.Attempts).
			Err(err).
			Msg("job failed, re-enqueueing")
		if encoded, mErr := json.Marshal(job); mErr == nil {
			_ = rdb.LPush(ctx, QueueNotificacoes, encoded).Err()
		}
	}
}
