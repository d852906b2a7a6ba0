package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"autoparts/internal/config"
	"autoparts/internal/infra"
	"autoparts/internal/repository"
	"autoparts/internal/router"
	"autoparts/internal/seed"
	"autoparts/internal/service"
	"autoparts/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb, err := infra.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	// ── Stores ───────────────────────────────────────────────────────────────
	local := repository.NewLocalStore(rdb, cfg.FallbackKeyPrefix)

	var remote repository.Store
	if cfg.LocalOnly() {
		log.Warn().Msg("DATABASE_URL not set, serving from the fallback store only")
	} else {
		db, err := infra.NewDatabase(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid DATABASE_URL")
		}
		remote = repository.NewRemoteStore(db)
	}

	breaker := infra.NewBreaker(infra.BreakerConfig{
		FailureThreshold: cfg.BreakerFailureThreshold,
		SuccessThreshold: 1,
		OpenTimeout:      cfg.BreakerOpenTimeout(),
	})
	store := repository.NewFallbackStore(remote, local, breaker, cfg.RemoteTimeout())

	if cfg.SeedOnStart {
		seeded, err := local.Init(ctx, func() seed.Dataset { return seed.Generate(seed.NewRand(), time.Now()) })
		if err != nil {
			log.Fatal().Err(err).Msg("failed to seed fallback store")
		}
		if seeded {
			log.Info().Msg("fallback store seeded with sample data")
		}
	}

	// ── Workers ──────────────────────────────────────────────────────────────
	dispatcher := worker.NewDispatcher(rdb)
	alertSvc := service.NewAlertService(store)

	var mailer worker.Sender
	if cfg.MailEnabled() {
		mailer = infra.NewMailer(cfg)
	}

	pool := worker.NewPool(rdb)
	pool.Register(worker.JobStockCheck, worker.NewStockCheckWorker(alertSvc))
	pool.Register(worker.JobPurchaseOrder, worker.NewEmailWorker(mailer, store))
	pool.Start(ctx, cfg.WorkerPoolSize)
	worker.StartAlertSweep(ctx, alertSvc, cfg.AlertSweepInterval())

	r := router.New(ctx, cfg, store, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("autoparts backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}

// setupLogger installs a pretty console writer in development and plain
// JSON in production.
func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
