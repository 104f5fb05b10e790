package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueDocuments = "jobs:documents"
	QueueEmail     = "jobs:email"
	QueueNotify    = "jobs:notify"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueDocument pushes an invoice PDF generation job.
func (d *Dispatcher) EnqueueDocument(ctx context.Context, payload interface{}) error {
	return d.enqueue(ctx, QueueDocuments, "document", payload)
}

// EnqueueEmail pushes an email delivery job.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload interface{}) error {
	return d.enqueue(ctx, QueueEmail, "email", payload)
}

// EnqueueNotify pushes an HR gateway notification job.
func (d *Dispatcher) EnqueueNotify(ctx context.Context, payload interface{}) error {
	return d.enqueue(ctx, QueueNotify, "notify", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// WorkerHandlers groups the per-queue processors, wired at the composition
// root so they have full access to infrastructure dependencies.
type WorkerHandlers struct {
	Document *DocumentWorker
	Email    *EmailWorker
	Notify   *NotifyWorker
}

// StartWorkerPool launches numWorkers goroutines consuming all queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, id int) {
	queues := []string{QueueDocuments, QueueEmail, QueueNotify}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, handlers *WorkerHandlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	switch queue {
	case QueueDocuments:
		if handlers.Document != nil {
			handlers.Document.Process(ctx, job.Payload)
		}
	case QueueEmail:
		if handlers.Email != nil {
			handlers.Email.Process(ctx, job.Payload)
		}
	case QueueNotify:
		if handlers.Notify != nil {
			handlers.Notify.Process(ctx, job.Payload)
		}
	default:
		log.Warn().Str("queue", queue).Str("type", job.Type).Msg("job from unknown queue dropped")
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
