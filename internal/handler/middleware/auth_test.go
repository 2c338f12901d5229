//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"staybook/internal/domain/booking"
	"staybook/internal/handler/middleware"
	"staybook/internal/pkg/jwt"
	"staybook/internal/usecase"
	"staybook/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(svc *jwt.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(svc))

	whoami := func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "role": string(role)})
	}
	r.GET("/me", auth.RequireAuth(), whoami)
	r.GET("/tenant", auth.RequireAuth(), auth.RequireRole(booking.RoleTenant), whoami)
	return r
}

func TestRequireAuth(t *testing.T) {
	svc := jwt.NewService("test-secret", "staybook")
	router := newAuthRouter(svc)
	userID := uuid.New()

	valid, err := svc.GenerateToken(userID, "guest", time.Hour)
	require.NoError(t, err)
	expired, err := svc.GenerateToken(userID, "guest", -time.Minute)
	require.NoError(t, err)
	badRole, err := svc.GenerateToken(userID, "admin", time.Hour)
	require.NoError(t, err)
	foreign, err := jwt.NewService("other-secret", "staybook").GenerateToken(userID, "guest", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantMsg    string
	}{
		{name: "valid token", token: valid, wantStatus: http.StatusOK},
		{name: "no token", token: "", wantStatus: http.StatusUnauthorized, wantMsg: "Access token required"},
		{name: "expired token", token: expired, wantStatus: http.StatusUnauthorized, wantMsg: "Invalid or expired token"},
		{name: "unknown role", token: badRole, wantStatus: http.StatusUnauthorized, wantMsg: "Invalid or expired token"},
		{name: "signed with another key", token: foreign, wantStatus: http.StatusUnauthorized, wantMsg: "Invalid or expired token"},
		{name: "garbage", token: "abc.def.ghi", wantStatus: http.StatusUnauthorized, wantMsg: "Invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, tt.token)
			if tt.wantStatus != http.StatusOK {
				httptest.AssertErrorResponse(t, rec, tt.wantStatus, tt.wantMsg)
				return
			}
			var body map[string]string
			httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
			assert.Equal(t, userID.String(), body["id"])
			assert.Equal(t, "guest", body["role"])
		})
	}
}

func TestRequireRole(t *testing.T) {
	svc := jwt.NewService("test-secret", "")
	router := newAuthRouter(svc)

	guest, err := svc.GenerateToken(uuid.New(), "guest", time.Hour)
	require.NoError(t, err)
	tenant, err := svc.GenerateToken(uuid.New(), "tenant", time.Hour)
	require.NoError(t, err)

	rec := httptest.PerformRequest(t, router, http.MethodGet, "/tenant", nil, guest)
	httptest.AssertErrorResponse(t, rec, http.StatusForbidden, "Insufficient permissions")

	rec = httptest.PerformRequest(t, router, http.MethodGet, "/tenant", nil, tenant)
	assert.Equal(t, http.StatusOK, rec.Code)
}
