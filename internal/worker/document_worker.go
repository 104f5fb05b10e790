package worker

// document_worker.go
// Generates invoice PDFs from QueueDocuments jobs and records the result on
// the invoice's document row. Generation failures are scheduled for the
// retry cron; jobs that keep failing end up in the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"crewbooks/internal/infra"
	"crewbooks/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// maxDocumentRetries is the total number of cron-driven re-attempts before a
// document job is abandoned to the DLQ.
const maxDocumentRetries = 5

// DocumentJobPayload is the job envelope sent to QueueDocuments.
type DocumentJobPayload struct {
	InvoiceID   string  `json:"invoice_id"`
	ClientEmail *string `json:"client_email,omitempty"`
}

// DocumentWorker renders invoice PDFs and optionally chains an email job.
type DocumentWorker struct {
	invoiceRepo  repository.InvoiceRepository
	documentRepo repository.InvoiceDocumentRepository
	dispatcher   *Dispatcher
	rdb          *redis.Client
	storagePath  string
	businessName string
	locale       string
	currencyCode string
}

func NewDocumentWorker(
	invoiceRepo repository.InvoiceRepository,
	documentRepo repository.InvoiceDocumentRepository,
	dispatcher *Dispatcher,
	rdb *redis.Client,
	storagePath, businessName, locale, currencyCode string,
) *DocumentWorker {
	return &DocumentWorker{
		invoiceRepo:  invoiceRepo,
		documentRepo: documentRepo,
		dispatcher:   dispatcher,
		rdb:          rdb,
		storagePath:  storagePath,
		businessName: businessName,
		locale:       locale,
		currencyCode: currencyCode,
	}
}

// Process handles a single document job:
//  1. Fetch the invoice (with items) and its document row
//  2. Render the PDF with up to 3 in-process attempts
//  3. On success: status "ready", enqueue email when a client address exists
//  4. On failure: status "failed", schedule the retry cron or give up to DLQ
func (w *DocumentWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload DocumentJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("document_worker: invalid payload")
		return
	}

	invoiceID, err := uuid.Parse(payload.InvoiceID)
	if err != nil {
		log.Error().Str("invoice_id", payload.InvoiceID).Msg("document_worker: invalid invoice_id")
		return
	}

	invoice, err := w.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		log.Error().Err(err).Str("invoice_id", payload.InvoiceID).Msg("document_worker: invoice not found")
		return
	}
	doc, err := w.documentRepo.FindByInvoiceID(ctx, invoiceID)
	if err != nil {
		log.Error().Err(err).Str("invoice_id", payload.InvoiceID).Msg("document_worker: document row not found")
		return
	}

	var pdfPath string
	genErr := withRetry(ctx, 3, func(attempt int) error {
		path, err := infra.GenerateInvoicePDF(invoice, w.storagePath, w.businessName, w.locale, w.currencyCode)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).
				Str("invoice_id", payload.InvoiceID).
				Msg("document_worker: PDF attempt failed, retrying")
			return err
		}
		pdfPath = path
		return nil
	})

	if genErr != nil {
		doc.Status = "failed"
		doc.RetryCount++
		msg := genErr.Error()
		doc.LastError = &msg

		if doc.RetryCount >= maxDocumentRetries {
			doc.NextRetryAt = nil
			SendToDLQ(ctx, w.rdb, QueueDocuments, "document", raw,
				fmt.Sprintf("PDF generation failed after %d retries: %v", doc.RetryCount, genErr), doc.RetryCount)
		} else {
			// Linear backoff for the cron: 1m, 2m, 3m …
			next := time.Now().Add(time.Duration(doc.RetryCount) * time.Minute)
			doc.NextRetryAt = &next
		}
		if err := w.documentRepo.Update(ctx, doc); err != nil {
			log.Error().Err(err).Str("invoice_id", payload.InvoiceID).Msg("document_worker: failed to record failure")
		}
		return
	}

	doc.Status = "ready"
	doc.PDFPath = &pdfPath
	doc.NextRetryAt = nil
	doc.LastError = nil
	if err := w.documentRepo.Update(ctx, doc); err != nil {
		log.Error().Err(err).Str("invoice_id", payload.InvoiceID).Msg("document_worker: failed to record result")
		return
	}
	log.Info().Str("pdf", pdfPath).Str("invoice_id", payload.InvoiceID).Msg("document_worker: PDF generated")

	if payload.ClientEmail != nil && *payload.ClientEmail != "" {
		emailJob := EmailJobPayload{
			ToEmail: *payload.ClientEmail,
			Subject: fmt.Sprintf("%s — Invoice #%d", w.businessName, invoice.Number),
			Body:    fmt.Sprintf("Please find attached invoice #%d.", invoice.Number),
			PDFPath: filepath.Join(w.storagePath, pdfPath),
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.ClientEmail).Msg("document_worker: failed to enqueue email")
		}
	}
}
