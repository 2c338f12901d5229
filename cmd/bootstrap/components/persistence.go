package components

import (
	"context"
	"log/slog"

	"staybook/internal/infra/db"
	"staybook/internal/infra/memory"
	"staybook/internal/infra/readstore"
	"staybook/internal/infra/uow"
	"staybook/internal/pkg/clock"
	"staybook/internal/pkg/config"
	"staybook/internal/usecase/queries"
	"staybook/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		clock.NewRealClock,
		NewPersistence,
	),
)

// Persistence is the storage seen by the use cases. Both drivers provide
// the same set.
type Persistence struct {
	fx.Out

	UoW        shared.UnitOfWork
	Bookings   queries.BookingReadStore
	Pricing    queries.PricingReadStore
	PriceRules queries.PriceRuleReadStore
}

func NewPersistence(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (Persistence, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		return newMemoryPersistence(cfg, clk, logger)
	}
	return newPostgresPersistence(lc, cfg, logger)
}

func newMemoryPersistence(cfg config.Config, clk clock.Clock, logger *slog.Logger) (Persistence, error) {
	store := memory.NewStore(clk, logger)
	n, err := store.Seed(cfg.Store.SeedRooms)
	if err != nil {
		return Persistence{}, err
	}
	logger.Info("in-memory store ready", "seeded_rooms", n)

	reads := store.Reads()
	return Persistence{
		UoW:        memory.NewUnitOfWork(store),
		Bookings:   reads,
		Pricing:    reads,
		PriceRules: reads,
	}, nil
}

func newPostgresPersistence(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (Persistence, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return Persistence{}, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return Persistence{
		UoW:        uow.NewPostgresUoW(pool, logger),
		Bookings:   readstore.NewBookingReadStore(pool, logger),
		Pricing:    readstore.NewPricingReadStore(pool, logger),
		PriceRules: readstore.NewPriceRuleReadStore(pool, logger),
	}, nil
}
