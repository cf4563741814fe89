package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bomboniere/internal/config"
	"bomboniere/internal/infra"
	"bomboniere/internal/repository"
	"bomboniere/internal/router"
	"bomboniere/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if rdb == nil {
		log.Info().Msg("redis not configured, price cache and notification queue disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Notifications: the dispatcher enqueues jobs that the worker pool pushes
	// to Telegram. Without a bot token everything stays a no-op.
	telegram := infra.NewTelegramClient(cfg.TelegramBotToken, cfg.TelegramChatID)
	var notif worker.Notificador = worker.NoopNotificador{}
	if telegram.Configured() && rdb != nil {
		notif = worker.NewDispatcher(rdb)
		worker.StartWorkerPool(ctx, rdb, worker.NewNotificacaoWorker(telegram), cfg.WorkerPoolSize)
	} else {
		log.Info().Msg("telegram token not configured, notifications disabled")
	}

	// Hourly cleanup of expired auth sessions.
	worker.StartSessionSweeper(ctx, repository.NewSessaoRepository(db))

	r := router.New(cfg, db, rdb, notif)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("bomboniere backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
