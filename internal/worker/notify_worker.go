package worker

// notify_worker.go
// Processes HR gateway notification jobs from QueueNotify. Submission of a
// leave request is reported to the external HR backend, which owns the
// approval workflow; this service never transitions request status itself.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"crewbooks/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NotifyWorker delivers leave submissions to the HR gateway through its
// circuit breaker.
type NotifyWorker struct {
	gateway *infra.HRGatewayClient
	rdb     *redis.Client
}

func NewNotifyWorker(gateway *infra.HRGatewayClient, rdb *redis.Client) *NotifyWorker {
	return &NotifyWorker{gateway: gateway, rdb: rdb}
}

// Process posts one submission with up to 3 attempts. When the breaker is
// open there is no point retrying in-process: the job goes straight to the
// DLQ for later replay.
func (w *NotifyWorker) Process(ctx context.Context, raw json.RawMessage) {
	var sub infra.LeaveSubmission
	if err := json.Unmarshal(raw, &sub); err != nil {
		log.Error().Err(err).Msg("notify_worker: invalid payload")
		return
	}

	err := withRetry(ctx, 3, func(attempt int) error {
		err := w.gateway.NotifyLeaveSubmitted(ctx, sub)
		if errors.Is(err, infra.ErrCircuitOpen) {
			return err
		}
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).
				Str("request_id", sub.RequestID).
				Msg("notify_worker: gateway attempt failed, retrying")
		}
		return err
	})
	if err != nil {
		SendToDLQ(ctx, w.rdb, QueueNotify, "notify", raw,
			fmt.Sprintf("HR gateway notification failed: %v", err), 3)
		return
	}
	log.Info().Str("request_id", sub.RequestID).Msg("notify_worker: leave submission delivered")
}
