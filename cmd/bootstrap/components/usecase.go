package components

import (
	"log/slog"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/pricing"
	"staybook/internal/pkg/clock"
	"staybook/internal/pkg/config"
	"staybook/internal/usecase"
	"staybook/internal/usecase/commands"
	"staybook/internal/usecase/queries"
	"staybook/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	fx.Annotate(
		pricing.NewRangePricer,
		fx.As(new(pricing.Calculator)),
	),
	func(clk clock.Clock, pricer pricing.Calculator, cfg config.Config) *booking.Factory {
		return booking.NewFactory(clk, pricer, cfg.Booking.MaxNights)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewBookingCommands,
		commands.NewPriceRuleUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewPriceRuleQueries,
		func(store queries.PricingReadStore, pricer pricing.Calculator, c queries.CalendarCache, cfg config.Config) queries.PricingQueries {
			return queries.NewPricingQueries(store, pricer, c, cfg.Booking.MaxNights)
		},
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewBookingCommands(
	uow shared.UnitOfWork,
	factory *booking.Factory,
	bookingQueries queries.BookingQueries,
	invalidator shared.CalendarInvalidator,
	m commands.BookingMetrics,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) commands.BookingCommands {
	settings := commands.BookingSettings{
		IdempotencyTTL: cfg.Booking.IdempotencyTTL,
		EventsTopic:    cfg.Booking.EventsTopic,
	}
	return commands.NewBookingUseCase(uow, factory, bookingQueries, invalidator, m, clk, settings, logger)
}
