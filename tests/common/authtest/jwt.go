//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"staybook/internal/domain/booking"
	"staybook/internal/pkg/config"
	"staybook/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens the way the identity service would.
type JWTHelper struct {
	service *jwt.Service
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{service: jwt.NewService(cfg.Secret, cfg.Issuer)}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role booking.Role) string {
	t.Helper()
	token, err := h.service.GenerateToken(userID, string(role), time.Hour)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) Guest(t *testing.T) (uuid.UUID, string) {
	t.Helper()
	id := uuid.New()
	return id, h.GenerateToken(t, id, booking.RoleGuest)
}

func (h *JWTHelper) Tenant(t *testing.T) (uuid.UUID, string) {
	t.Helper()
	id := uuid.New()
	return id, h.GenerateToken(t, id, booking.RoleTenant)
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role booking.Role) string {
	t.Helper()
	token, err := h.service.GenerateToken(userID, string(role), -time.Minute)
	require.NoError(t, err)
	return token
}
