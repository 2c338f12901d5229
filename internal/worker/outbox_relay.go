package worker

import (
	"context"
	"log/slog"
	"time"

	"staybook/internal/infra/messaging"
	"staybook/internal/pkg/clock"
	"staybook/internal/usecase/shared"
)

const (
	ResultPublished = "published"
	ResultRetried   = "retried"
	ResultDead      = "dead"
)

type OutboxObserver interface {
	ObserveOutbox(result string)
}

// OutboxRelay publishes pending outbox events. Delivery is at-least-once:
// an event is marked published only after the broker acknowledged it.
type OutboxRelay struct {
	UoW         shared.UnitOfWork
	Publisher   messaging.Publisher
	Clock       clock.Clock
	Observer    OutboxObserver
	Logger      *slog.Logger
	Interval    time.Duration
	BatchSize   int
	MaxAttempts int
	Backoff     []time.Duration
}

func (r *OutboxRelay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.ProcessOnce(ctx); err != nil && ctx.Err() == nil {
				r.Logger.Error("outbox relay iteration failed", "error", err)
			}
		}
	}
}

// ProcessOnce claims one batch and returns how many events were published.
func (r *OutboxRelay) ProcessOnce(ctx context.Context) (int, error) {
	published := 0
	err := r.UoW.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		published = 0
		now := r.Clock.Now()
		events, err := tx.Outbox().ClaimPending(ctx, now, r.batchSize())
		if err != nil {
			return err
		}

		for _, evt := range events {
			headers := map[string]string{
				"event-type":   evt.EventType,
				"event-id":     evt.ID.String(),
				"content-type": "application/json",
			}
			perr := r.Publisher.Publish(ctx, evt.Topic, evt.AggregateID.String(), evt.Payload, headers)
			if perr == nil {
				if err := tx.Outbox().MarkPublished(ctx, evt.ID, now); err != nil {
					return err
				}
				published++
				r.observe(ResultPublished)
				continue
			}

			dead := evt.Attempts+1 >= r.maxAttempts()
			if err := tx.Outbox().MarkFailed(ctx, evt.ID, perr.Error(), now.Add(r.nextRetry(evt.Attempts)), dead); err != nil {
				return err
			}
			if dead {
				r.observe(ResultDead)
				r.Logger.Error("outbox event gave up", "event_id", evt.ID, "event_type", evt.EventType, "attempts", evt.Attempts+1, "error", perr)
			} else {
				r.observe(ResultRetried)
				r.Logger.Warn("outbox publish failed, will retry", "event_id", evt.ID, "attempt", evt.Attempts+1, "error", perr)
			}
		}
		return nil
	})
	return published, err
}

func (r *OutboxRelay) interval() time.Duration {
	if r.Interval <= 0 {
		return time.Second
	}
	return r.Interval
}

func (r *OutboxRelay) batchSize() int {
	if r.BatchSize <= 0 {
		return 50
	}
	return r.BatchSize
}

func (r *OutboxRelay) maxAttempts() int {
	if r.MaxAttempts <= 0 {
		return 10
	}
	return r.MaxAttempts
}

func (r *OutboxRelay) nextRetry(attempts int) time.Duration {
	if attempts < len(r.Backoff) {
		return r.Backoff[attempts]
	}
	if len(r.Backoff) > 0 {
		return r.Backoff[len(r.Backoff)-1]
	}
	return 5 * time.Second
}

func (r *OutboxRelay) observe(result string) {
	if r.Observer != nil {
		r.Observer.ObserveOutbox(result)
	}
}
