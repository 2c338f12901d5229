package components

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"staybook/internal/infra/messaging"
	"staybook/internal/pkg/clock"
	"staybook/internal/pkg/config"
	"staybook/internal/usecase/commands"
	"staybook/internal/usecase/shared"
	"staybook/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Invoke(StartWorkers),
)

// StartWorkers runs the outbox relay and the maintenance loop for the
// lifetime of the application.
func StartWorkers(
	lc fx.Lifecycle,
	cfg config.Config,
	uow shared.UnitOfWork,
	pub messaging.Publisher,
	bookings commands.BookingCommands,
	observer worker.OutboxObserver,
	clk clock.Clock,
	logger *slog.Logger,
) {
	relay := &worker.OutboxRelay{
		UoW:         uow,
		Publisher:   pub,
		Clock:       clk,
		Observer:    observer,
		Logger:      logger.With("worker", "outbox"),
		Interval:    cfg.Worker.OutboxInterval,
		BatchSize:   cfg.Worker.OutboxBatchSize,
		MaxAttempts: cfg.Worker.OutboxMaxAttempts,
	}
	maintenance := &worker.Maintenance{
		Bookings:  bookings,
		UoW:       uow,
		Clock:     clk,
		Logger:    logger.With("worker", "maintenance"),
		Interval:  cfg.Worker.MaintenanceInterval,
		BatchSize: cfg.Worker.MaintenanceBatch,
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	run := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("worker stopped", "worker", name, "error", err)
			}
		}()
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			run("outbox", relay.Run)
			run("maintenance", maintenance.Run)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
