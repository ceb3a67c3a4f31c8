package backend

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricsOnce     sync.Once                //nolint:gochecknoglobals
	requestsTotal   *prometheus.CounterVec   //nolint:gochecknoglobals
	requestDuration *prometheus.HistogramVec //nolint:gochecknoglobals
)

func initMetrics() {
	metricsOnce.Do(func() {
		requestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "subdns",
				Subsystem: "backend",
				Name:      "requests_total",
				Help:      "Number of subdns REST API calls by endpoint and result status.",
			},
			[]string{"endpoint", "status"},
		)

		requestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "subdns",
				Subsystem: "backend",
				Name:      "request_duration_seconds",
				Help:      "Latency of subdns REST API calls.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		)
	})
}

// observe records one finished call. status is "error" for transport failures.
func observe(endpoint, status string, elapsed time.Duration) {
	requestsTotal.WithLabelValues(endpoint, status).Inc()
	requestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}
