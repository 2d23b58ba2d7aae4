package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusCollector holds the service's metric instruments. It implements
// ports.MetricsRecorder for the domain-level counters.
type PrometheusCollector struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	mutationsTotal       *prometheus.CounterVec
	uploadFailuresTotal  prometheus.Counter
	sessionsCreatedTotal prometheus.Counter
	feedClients          prometheus.Gauge
}

func NewPrometheusCollector() *PrometheusCollector {
	return &PrometheusCollector{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stockroom_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stockroom_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),

		mutationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stockroom_inventory_mutations_total",
			Help: "Total number of committed inventory mutations",
		}, []string{"op"}),

		uploadFailuresTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stockroom_upload_failures_total",
			Help: "Total number of failed image uploads",
		}),

		sessionsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stockroom_sessions_created_total",
			Help: "Total number of sessions created",
		}),

		feedClients: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "stockroom_feed_clients",
			Help: "Number of connected live-feed clients",
		}),
	}
}

func (c *PrometheusCollector) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	c.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	c.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (c *PrometheusCollector) RecordMutation(op string) {
	c.mutationsTotal.WithLabelValues(op).Inc()
}

func (c *PrometheusCollector) RecordUploadFailure() {
	c.uploadFailuresTotal.Inc()
}

func (c *PrometheusCollector) RecordSessionCreated() {
	c.sessionsCreatedTotal.Inc()
}

func (c *PrometheusCollector) SetFeedClients(n int) {
	c.feedClients.Set(float64(n))
}
