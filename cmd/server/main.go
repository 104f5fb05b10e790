package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crewbooks/internal/config"
	"crewbooks/internal/infra"
	"crewbooks/internal/repository"
	"crewbooks/internal/router"
	"crewbooks/internal/worker"

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

	// Start goroutine worker pool for async tasks (PDF generation, email,
	// HR gateway notifications). Worker handlers are wired here (composition
	// root) so that the pool has full access to all infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hrCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	hrGateway := infra.NewHRGatewayClient(cfg.HRGatewayURL, hrCB)
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	invoiceRepo := repository.NewInvoiceRepository(db)
	documentRepo := repository.NewInvoiceDocumentRepository(db)

	workerHandlers := &worker.WorkerHandlers{
		Document: worker.NewDocumentWorker(invoiceRepo, documentRepo, dispatcher, rdb,
			cfg.PDFStoragePath, cfg.BusinessName, cfg.Locale, cfg.CurrencyCode),
		Email:  worker.NewEmailWorker(mailer),
		Notify: worker.NewNotifyWorker(hrGateway, rdb),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)

	// Re-enqueue failed PDF generations on a schedule.
	worker.StartRetryCron(ctx, worker.RetryCronConfig{
		DocumentRepo: documentRepo,
		InvoiceRepo:  invoiceRepo,
		Dispatcher:   dispatcher,
	})

	r := router.New(cfg, db, rdb, hrCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("CrewBooks backend listening on :%d", cfg.Port)
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
