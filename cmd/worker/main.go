package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clinicore/records-api/internal/config"
	"github.com/clinicore/records-api/internal/repository/postgres"
	"github.com/clinicore/records-api/internal/worker"
	"github.com/clinicore/records-api/pkg/logger"
	"github.com/clinicore/records-api/pkg/messaging/redis"
	"github.com/clinicore/records-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadWorkerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load worker configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&logger.Config{
		Level: logger.ParseLevel(cfg.LogLevel),
	})

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewBroker(redis.Config{URL: cfg.RedisURL}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer broker.Close()

	m := metrics.New("records_worker")

	processor := worker.NewOutboxProcessor(
		postgres.NewOutboxRepository(db),
		broker,
		worker.OutboxProcessorConfig{
			Channel:      cfg.Channel,
			BatchSize:    cfg.BatchSize,
			PollInterval: time.Duration(cfg.PollSeconds) * time.Second,
			MaxRetries:   cfg.MaxRetries,
			RetainFor:    time.Duration(cfg.RetainDays) * 24 * time.Hour,
		},
		log,
		m,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf(":%d", cfg.MetricsPort)
		log.Info().Str("addr", addr).Msg("serving worker metrics")
		if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()

	go processor.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()
}
