//go:build unit

package config_test

import (
	"testing"
	"time"

	"staybook/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("memory store with defaults", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("STORE_DRIVER", "memory")

		cfg, err := config.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 365, cfg.Booking.MaxNights)
		assert.Equal(t, 24*time.Hour, cfg.Booking.IdempotencyTTL)
		assert.False(t, cfg.Redis.Enabled())
		assert.False(t, cfg.Kafka.Enabled())
		assert.Contains(t, cfg.CORS.AllowHeaders, "Idempotency-Key")
	})

	t.Run("postgres requires credentials", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("STORE_DRIVER", "postgres")
		t.Setenv("DB_USER", "")
		t.Setenv("DB_NAME", "")

		_, err := config.LoadConfig()
		assert.ErrorContains(t, err, "DB_USER")
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("STORE_DRIVER", "sqlite")

		_, err := config.LoadConfig()
		assert.ErrorContains(t, err, "STORE_DRIVER")
	})

	t.Run("kafka brokers list", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("STORE_DRIVER", "memory")
		t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

		cfg, err := config.LoadConfig()
		require.NoError(t, err)
		assert.True(t, cfg.Kafka.Enabled())
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	})
}
