package worker

// email_worker.go
// Processes email jobs from QueueEmail: delivers generated invoice PDFs to
// client addresses via SMTP.

import (
	"context"
	"encoding/json"

	"crewbooks/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

// EmailWorker sends invoice PDFs to client emails via SMTP.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends an email with the PDF attached.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}

	if err := w.mailer.SendInvoice(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		return
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: invoice sent")
}
