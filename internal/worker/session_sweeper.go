package worker

// session_sweeper.go
// Background goroutine that deletes expired auth sessions. The auth middleware
// already deletes an expired session when its token is presented; the sweeper
// covers tokens that are simply never used again.

import (
	"context"
	"time"

	"bomboniere/internal/repository"

	"github.com/rs/zerolog/log"
)

const sweepInterval = time.Hour

// StartSessionSweeper launches a goroutine that ticks hourly and removes
// expired sessions. It respects the context for graceful shutdown.
func StartSessionSweeper(ctx context.Context, sessoes repository.SessaoRepository) {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		log.Info().Msg("session_sweeper: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("session_sweeper: shutting down")
				return
			case <-ticker.C:
				n, err := sessoes.DeleteExpired(ctx, time.Now())
				if err != nil {
					log.Error().Err(err).Msg("session_sweeper: delete expired failed")
					continue
				}
				if n > 0 {
					log.Info().Int64("count", n).Msg("session_sweeper: expired sessions removed")
				}
			}
		}
	}()
}
