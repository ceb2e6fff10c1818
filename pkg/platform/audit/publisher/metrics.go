package publisher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for audit publishing.
type Metrics struct {
	Emitted         *prometheus.CounterVec
	Dropped         prometheus.Counter
	PersistFailures prometheus.Counter
	SinkFailures    prometheus.Counter
	SinkSkipped     prometheus.Counter
}

// NewMetrics registers the audit publisher metrics with the default registry.
// Call it once per process.
func NewMetrics() *Metrics {
	return &Metrics{
		Emitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_audit_events_total",
			Help: "Total number of audit events persisted, by category",
		}, []string{"category"}),
		Dropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registry_audit_dropped_total",
			Help: "Total number of audit events dropped because the async buffer was full",
		}),
		PersistFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registry_audit_persist_failures_total",
			Help: "Total number of audit events the store failed to persist",
		}),
		SinkFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registry_audit_sink_failures_total",
			Help: "Total number of best-effort sink publish failures",
		}),
		SinkSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registry_audit_sink_skipped_total",
			Help: "Total number of sink publishes skipped while the sink circuit was open",
		}),
	}
}
