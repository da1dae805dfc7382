// Package metrics defines the operation metrics contract shared by all
// judging modules, with a Prometheus implementation for production and a
// no-op for tests.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operations records the lifecycle of service operations.
type Operations interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
}

type prometheusOperations struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

// NewPrometheusOperations registers and returns operation metrics for one
// module. Metric names follow judging_<module>_operation_*.
func NewPrometheusOperations(reg prometheus.Registerer, module string) Operations {
	factory := promauto.With(reg)
	return &prometheusOperations{
		attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "judging_" + module + "_operation_attempts_total",
			Help: "Number of attempted operations.",
		}, []string{"operation"}),
		successes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "judging_" + module + "_operation_successes_total",
			Help: "Number of operations that completed successfully.",
		}, []string{"operation"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "judging_" + module + "_operation_failures_total",
			Help: "Number of operations that failed.",
		}, []string{"operation"}),
		durations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "judging_" + module + "_operation_duration_seconds",
			Help:    "Operation duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

func (m *prometheusOperations) RecordOperationAttempt(_ context.Context, operation string) {
	m.attempts.WithLabelValues(operation).Inc()
}

func (m *prometheusOperations) RecordOperationSuccess(_ context.Context, operation string) {
	m.successes.WithLabelValues(operation).Inc()
}

func (m *prometheusOperations) RecordOperationFailure(_ context.Context, operation string) {
	m.failures.WithLabelValues(operation).Inc()
}

func (m *prometheusOperations) RecordOperationDuration(_ context.Context, operation string, duration time.Duration) {
	m.durations.WithLabelValues(operation).Observe(duration.Seconds())
}

// NoopOperations is used in tests and wherever metrics are not wired.
type NoopOperations struct{}

var _ Operations = NoopOperations{}

func (NoopOperations) RecordOperationAttempt(context.Context, string)                 {}
func (NoopOperations) RecordOperationSuccess(context.Context, string)                 {}
func (NoopOperations) RecordOperationFailure(context.Context, string)                 {}
func (NoopOperations) RecordOperationDuration(context.Context, string, time.Duration) {}
