// Package metrics exposes Prometheus metrics for record operations.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes of a record operation.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Metrics holds the record metrics and the registry they live in. Each
// instance has its own registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	RecordOperations  *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	RecordsCreated    prometheus.Counter
}

// New creates a registry with Go and process collectors plus the record metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RecordOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "emp_records_operations_total",
			Help: "Record operations by operation and outcome",
		}, []string{"operation", "outcome"}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "emp_records_operation_duration_seconds",
			Help:    "Duration of record operations including the store round trip",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
		RecordsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "emp_records_created_total",
			Help: "Total number of employee records created",
		}),
	}
}

// Observe records one finished operation.
// Call with time.Now() taken at the start of the operation.
func (m *Metrics) Observe(operation, outcome string, start time.Time) {
	m.RecordOperations.WithLabelValues(operation, outcome).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// IncrementRecordsCreated records a successful insert.
func (m *Metrics) IncrementRecordsCreated() {
	m.RecordsCreated.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
