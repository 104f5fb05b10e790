package worker

// retry_cron.go
// Background goroutine that periodically re-enqueues document jobs for
// invoices whose PDF generation failed and whose next_retry_at has passed.
// The document worker owns the retry counting and DLQ cutoff.

import (
	"context"
	"time"

	"crewbooks/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	DocumentRepo repository.InvoiceDocumentRepository
	InvoiceRepo  repository.InvoiceRepository
	Dispatcher   *Dispatcher
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries failed documents due for retry, and re-enqueues their jobs.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	docs, err := cfg.DocumentRepo.ListPendingRetries(ctx, time.Now(), retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}
	if len(docs) == 0 {
		return
	}

	log.Info().Int("count", len(docs)).Msg("retry_cron: re-enqueueing failed documents")

	for i := range docs {
		doc := &docs[i]

		invoice, err := cfg.InvoiceRepo.FindByID(ctx, doc.InvoiceID)
		if err != nil {
			log.Error().Err(err).Str("invoice_id", doc.InvoiceID.String()).
				Msg("retry_cron: invoice vanished, skipping")
			continue
		}

		payload := DocumentJobPayload{InvoiceID: invoice.ID.String(), ClientEmail: invoice.ClientEmail}
		if err := cfg.Dispatcher.EnqueueDocument(ctx, payload); err != nil {
			log.Error().Err(err).Str("invoice_id", doc.InvoiceID.String()).
				Msg("retry_cron: failed to enqueue")
			continue
		}

		// Push next_retry_at forward so the next tick does not double-enqueue
		// while the job sits in the queue.
		next := time.Now().Add(retryTickInterval * 2)
		doc.NextRetryAt = &next
		if err := cfg.DocumentRepo.Update(ctx, doc); err != nil {
			log.Error().Err(err).Str("invoice_id", doc.InvoiceID.String()).
				Msg("retry_cron: failed to bump next_retry_at")
		}
	}
}
