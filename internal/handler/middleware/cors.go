package middleware

import (
	"log/slog"
	"slices"
	"strings"

	"staybook/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Booking clients send Idempotency-Key and read the replay marker and the
// Location of a created booking, so these survive any configured override.
var (
	bookingAllowHeaders  = []string{"Authorization", "Content-Type", "Idempotency-Key"}
	bookingExposeHeaders = []string{"Location", "Idempotent-Replayed", "Retry-After"}
)

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     mergeHeaders(cfg.AllowHeaders, bookingAllowHeaders),
		ExposeHeaders:    mergeHeaders(cfg.ExposeHeaders, bookingExposeHeaders),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("cors configured", "allow_origins", corsCfg.AllowOrigins, "allow_headers", corsCfg.AllowHeaders)
	return cors.New(corsCfg)
}

func mergeHeaders(configured, required []string) []string {
	out := slices.Clone(configured)
	for _, h := range required {
		if !slices.ContainsFunc(out, func(c string) bool { return strings.EqualFold(c, h) }) {
			out = append(out, h)
		}
	}
	return out
}
