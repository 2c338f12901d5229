//go:build unit

package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"staybook/internal/infra/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsHandler(t *testing.T) {
	m := metrics.New()
	m.ObserveHTTP("/api/bookings", http.MethodPost, http.StatusCreated, 12*time.Millisecond)
	m.ObserveBookingCreate("conflict")
	m.ObserveCache("hit")
	m.ObserveOutbox("published")

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	out := string(body)
	assert.Contains(t, out, "staybook_http_requests_total")
	assert.Contains(t, out, `staybook_booking_create_total{outcome="conflict"} 1`)
	assert.Contains(t, out, `staybook_calendar_cache_events_total{event="hit"} 1`)
	assert.Contains(t, out, `staybook_outbox_events_total{result="published"} 1`)
}

func TestMetricsInstancesAreIndependent(t *testing.T) {
	a := metrics.New()
	b := metrics.New()
	a.ObserveBookingCreate("created")

	countA, err := testutil.GatherAndCount(a.Registry(), "staybook_booking_create_total")
	require.NoError(t, err)
	countB, err := testutil.GatherAndCount(b.Registry(), "staybook_booking_create_total")
	require.NoError(t, err)
	assert.Equal(t, 1, countA)
	assert.Equal(t, 0, countB)
}
