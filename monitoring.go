package fieldx

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hengadev/fieldx/internal/monitoring"
)

// Type aliases for the monitoring interfaces
type (
	MetricsCollector  = monitoring.MetricsCollector
	ObservabilityHook = monitoring.ObservabilityHook
)

// NewLoggingHook returns an ObservabilityHook that logs every Dump and
// DumpMany call through logger.
func NewLoggingHook(logger *slog.Logger) ObservabilityHook {
	return monitoring.NewLoggingObservabilityHook(logger)
}

// NewMetricsHook returns an ObservabilityHook that reports counters and
// timings to collector.
//
// Metrics:
//   - fieldx.process.started, fieldx.process.succeeded, fieldx.process.failed
//   - fieldx.records.dumped
//   - fieldx.process.duration
//   - fieldx.errors
func NewMetricsHook(collector MetricsCollector) ObservabilityHook {
	return monitoring.NewMetricsObservabilityHook(collector)
}

// CombineHooks fans every notification out to hooks in order.
func CombineHooks(hooks ...ObservabilityHook) ObservabilityHook {
	return monitoring.NewCompositeObservabilityHook(hooks...)
}

// NewPrometheusCollector returns a MetricsCollector registering into reg
// under namespace. A nil reg uses the Prometheus default registerer.
func NewPrometheusCollector(namespace string, reg prometheus.Registerer) MetricsCollector {
	return monitoring.NewPrometheusMetricsCollector(namespace, reg)
}

// NewInMemoryCollector returns a collector that keeps metrics in memory,
// for tests.
func NewInMemoryCollector() *monitoring.InMemoryMetricsCollector {
	return monitoring.NewInMemoryMetricsCollector()
}

// WithStandardMonitoring installs a logging hook and a metrics hook
// reporting to collector.
func WithStandardMonitoring(logger *slog.Logger, collector MetricsCollector) Option {
	return WithObservability(CombineHooks(NewLoggingHook(logger), NewMetricsHook(collector)))
}
