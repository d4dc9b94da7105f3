// Package metrics exposes Prometheus instrumentation for GraphQL
// operations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the operation-level collectors.
type Metrics struct {
	Registry *prometheus.Registry

	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
}

// New creates a metrics set backed by its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registerer := prometheus.WrapRegistererWith(prometheus.Labels{"service": "tasklist"}, registry)

	return &Metrics{
		Registry: registry,
		OperationsTotal: promauto.With(registerer).NewCounterVec(
			prometheus.CounterOpts{
				Name: "tasklist_graphql_operations_total",
				Help: "Total number of resolved GraphQL operations",
			},
			[]string{"operation", "status"},
		),
		OperationDuration: promauto.With(registerer).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tasklist_graphql_operation_duration_seconds",
				Help:    "GraphQL operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordOperation records one finished operation.
func (m *Metrics) RecordOperation(operation string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.OperationsTotal.WithLabelValues(operation, status).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
