package components

import (
	"staybook/internal/handler"
	"staybook/internal/handler/api"
	"staybook/internal/handler/middleware"
	"staybook/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewPricingHandler,
		api.NewPriceRuleHandler,
		middleware.NewAuthMiddleware,
		func(cfg config.Config) *middleware.RateLimiter {
			return middleware.NewRateLimiter(cfg.RateLimit)
		},
		func(b *api.BookingHandler, p *api.PricingHandler, r *api.PriceRuleHandler) handler.Handlers {
			return handler.Handlers{Booking: b, Pricing: p, PriceRule: r}
		},
	),
	fx.Invoke(handler.NewRouter),
)
