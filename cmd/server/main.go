package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salelog/internal/config"
	"salelog/internal/handler"
	"salelog/internal/infra"
	"salelog/internal/router"
	"salelog/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title           salelog API
// @version         1.0
// @description     Sales log and reporting backend for a single-counter shop.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: pretty in development, JSON in production
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	reg := infra.NewRegistry()
	svcs := router.NewServices(cfg, db, rdb, reg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if n, err := svcs.Items.SeedDefaults(ctx); err != nil {
		log.Error().Err(err).Msg("failed to seed default items")
	} else if n > 0 {
		log.Info().Int("items", n).Msg("seeded default catalog")
	}

	// Handover jobs are wired here so the pool sees the mailer's breaker.
	mailCB := infra.NewCircuitBreaker(infra.DefaultCBConfig("smtp"))
	mailer := infra.NewMailer(cfg, mailCB)
	renderer := infra.NewPDFRenderer(cfg.PDFStoragePath, cfg.PDFFontPath)
	handover := worker.NewHandoverWorker(svcs.Handover, renderer, mailer)

	retry := worker.NewRetryScheduler(rdb, mailCB)
	retry.Start(ctx, worker.QueueHandover)
	worker.NewPool(rdb, retry, map[string]worker.Processor{
		worker.JobTypeHandover: handover,
	}).Start(ctx, cfg.WorkerPoolSize)

	r := router.New(cfg, svcs, handler.Health(handler.DBPinger(db), rdb, mailCB), reg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("salelog listening on :%d", cfg.Port)
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
	if err := rdb.Close(); err != nil {
		log.Warn().Err(err).Msg("redis close")
	}
	log.Info().Msg("server exited")
}
