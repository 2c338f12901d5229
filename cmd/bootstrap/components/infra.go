package components

import (
	"context"
	"log/slog"
	"time"

	"staybook/internal/infra/cache"
	"staybook/internal/infra/messaging"
	"staybook/internal/infra/metrics"
	"staybook/internal/pkg/config"
	"staybook/internal/usecase/commands"
	"staybook/internal/usecase/queries"
	"staybook/internal/usecase/shared"
	"staybook/internal/worker"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var InfraModule = fx.Module("infra",
	fx.Provide(
		fx.Annotate(
			metrics.New,
			fx.As(fx.Self()),
			fx.As(new(commands.BookingMetrics)),
			fx.As(new(cache.Observer)),
			fx.As(new(worker.OutboxObserver)),
		),
		NewCalendarCache,
		NewPublisher,
	),
)

type CalendarCacheResult struct {
	fx.Out

	Cache       queries.CalendarCache
	Invalidator shared.CalendarInvalidator
}

// NewCalendarCache falls back to a no-op cache when REDIS_ADDR is unset.
func NewCalendarCache(lc fx.Lifecycle, cfg config.Config, observer cache.Observer, logger *slog.Logger) CalendarCacheResult {
	if !cfg.Redis.Enabled() {
		logger.Info("calendar cache disabled")
		return CalendarCacheResult{Cache: cache.Noop{}, Invalidator: cache.Noop{}}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			// the cache is optional; a dead Redis only costs hit rate
			if err := client.Ping(pingCtx).Err(); err != nil {
				logger.Warn("redis unreachable, calendar cache will miss", "addr", cfg.Redis.Addr, "error", err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	c := cache.NewCalendarCache(client, cfg.Redis.CalendarTTL, observer)
	return CalendarCacheResult{Cache: c, Invalidator: c}
}

// NewPublisher logs events instead of sending them when KAFKA_BROKERS is unset.
func NewPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (messaging.Publisher, error) {
	var pub messaging.Publisher
	if cfg.Kafka.Enabled() {
		p, err := messaging.NewKafkaProducer(cfg.Kafka)
		if err != nil {
			return nil, err
		}
		pub = p
	} else {
		logger.Info("kafka disabled, booking events are logged only")
		pub = messaging.NewLogPublisher(logger)
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub, nil
}
