package worker

import (
	"context"
	"log/slog"
	"time"

	"staybook/internal/pkg/clock"
	"staybook/internal/usecase/commands"
	"staybook/internal/usecase/shared"
)

// Maintenance completes finished stays and purges expired idempotency keys.
type Maintenance struct {
	Bookings  commands.BookingCommands
	UoW       shared.UnitOfWork
	Clock     clock.Clock
	Logger    *slog.Logger
	Interval  time.Duration
	BatchSize int
}

func (m *Maintenance) Run(ctx context.Context) error {
	interval := m.Interval
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := m.RunOnce(ctx); err != nil && ctx.Err() == nil {
				m.Logger.Error("maintenance iteration failed", "error", err)
			}
		}
	}
}

func (m *Maintenance) RunOnce(ctx context.Context) error {
	completed, err := m.Bookings.CompleteFinishedStays(ctx, m.BatchSize)
	if err != nil {
		return err
	}

	var purged int64
	err = m.UoW.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Idempotency().DeleteExpired(ctx, m.Clock.Now())
		purged = n
		return err
	})
	if err != nil {
		return err
	}

	if completed > 0 || purged > 0 {
		m.Logger.Info("maintenance finished", "completed_bookings", completed, "purged_idempotency_keys", purged)
	}
	return nil
}
