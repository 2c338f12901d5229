package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "staybook"

type Metrics struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpLatency    *prometheus.HistogramVec
	bookingCreates *prometheus.CounterVec
	cacheEvents    *prometheus.CounterVec
	outboxEvents   *prometheus.CounterVec
}

// New builds the collectors on a private registry so tests can create as
// many instances as they like.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
			[]string{"route", "method", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "http_request_duration_seconds",
				Help:    "HTTP request duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		bookingCreates: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "booking_create_total", Help: "Booking creation attempts by outcome."},
			[]string{"outcome"}, // created|replayed|conflict|rejected|failed
		),
		cacheEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "calendar_cache_events_total", Help: "Calendar cache hits/misses/sets/invalidations."},
			[]string{"event"},
		),
		outboxEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "outbox_events_total", Help: "Outbox relay results."},
			[]string{"result"}, // published|retried|dead
		),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpLatency, m.bookingCreates, m.cacheEvents, m.outboxEvents,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) ObserveHTTP(route, method string, status int, dur time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func (m *Metrics) ObserveBookingCreate(outcome string) {
	m.bookingCreates.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveCache(event string) {
	m.cacheEvents.WithLabelValues(event).Inc()
}

func (m *Metrics) ObserveOutbox(result string) {
	m.outboxEvents.WithLabelValues(result).Inc()
}
