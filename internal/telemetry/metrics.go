package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequests counts handled requests by route template and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "snapgram",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPDuration observes request latency by route template
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "snapgram",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// AuthEvents counts authentication outcomes (login, login_failed, refresh, ...)
	AuthEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "snapgram",
			Name:      "auth_events_total",
			Help:      "Total number of authentication events",
		},
		[]string{"event"},
	)

	// Uploads counts stored files by kind
	Uploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "snapgram",
			Name:      "uploads_total",
			Help:      "Total number of stored uploads",
		},
		[]string{"kind"},
	)

	// JanitorPurged counts rows removed by the janitor
	JanitorPurged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "snapgram",
			Name:      "janitor_purged_total",
			Help:      "Total number of expired rows purged",
		},
		[]string{"kind"},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry
// This function is idempotent and can be called multiple times safely
func InitMetrics() {
	once.Do(func() {
		prometheus.DefaultRegisterer.Register(HTTPRequests)
		prometheus.DefaultRegisterer.Register(HTTPDuration)
		prometheus.DefaultRegisterer.Register(AuthEvents)
		prometheus.DefaultRegisterer.Register(Uploads)
		prometheus.DefaultRegisterer.Register(JanitorPurged)
	})
}
