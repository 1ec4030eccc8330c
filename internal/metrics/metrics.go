// Package metrics holds the Prometheus collectors of the pricing service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/guttosm/bsgreeks/internal/logger"
)

const namespace = "bsgreeks"

// Outcome and status label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"

	StatusOK          = "ok"
	StatusSchemaError = "schema_error"
	StatusChunkError  = "chunk_error"
	StatusCanceled    = "canceled"
)

// Metrics groups every collector exposed on /metrics.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	RowsPriced    *prometheus.CounterVec
	BatchesTotal  *prometheus.CounterVec
	BatchDuration prometheus.Histogram
	ChunkDuration prometheus.Histogram

	registry *prometheus.Registry
}

// New builds the collectors. Call Register before serving them.
func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),

		RowsPriced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_priced_total",
			Help:      "Rows processed by the pricing engine by outcome",
		}, []string{"outcome"}),
		BatchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Batches processed by status",
		}, []string{"status"}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Wall time of a whole batch",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}),
		ChunkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chunk_duration_seconds",
			Help:      "Time spent pricing one chunk",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
	}
}

// Register adds every collector to reg, or to a fresh registry when reg is
// nil. The default Prometheus registry is never touched.
func (m *Metrics) Register(reg *prometheus.Registry) error {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	collectors := []prometheus.Collector{
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.RowsPriced,
		m.BatchesTotal,
		m.BatchDuration,
		m.ChunkDuration,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			logger.L().Error().Err(err).Msg("failed to register metric")
			return err
		}
	}
	m.registry = reg
	logger.L().Debug().Int("collectors", len(collectors)).Msg("metrics registered")
	return nil
}

// Handler serves the registered collectors in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m.registry == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveChunk records the duration of one priced chunk.
func (m *Metrics) ObserveChunk(_ int, elapsed time.Duration) {
	m.ChunkDuration.Observe(elapsed.Seconds())
}

// ObserveBatch records a finished batch under status. Row counts are only
// meaningful, and only added, for StatusOK.
func (m *Metrics) ObserveBatch(status string, successful, failed int, elapsed time.Duration) {
	m.BatchDuration.Observe(elapsed.Seconds())
	m.BatchesTotal.WithLabelValues(status).Inc()
	if status != StatusOK {
		return
	}
	m.RowsPriced.WithLabelValues(OutcomeSuccess).Add(float64(successful))
	m.RowsPriced.WithLabelValues(OutcomeFailed).Add(float64(failed))
}

// ObserveHTTP records one served request. path is the route template, not
// the raw URL.
func (m *Metrics) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}
