package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the contribution registry.
type Metrics struct {
	Submitted         prometheus.Counter
	Updated           prometheus.Counter
	Approved          prometheus.Counter
	Rejected          *prometheus.CounterVec
	FeesCollected     prometheus.Counter
	OperationDuration *prometheus.HistogramVec
}

// New registers the registry metrics with the default registry. Call it once
// per process.
func New() *Metrics {
	return &Metrics{
		Submitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registry_contributions_submitted_total",
			Help: "Total number of contributions accepted",
		}),
		Updated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registry_contributions_updated_total",
			Help: "Total number of contribution edits",
		}),
		Approved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registry_contributions_approved_total",
			Help: "Total number of contributions approved by the authority",
		}),
		Rejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_operations_rejected_total",
			Help: "Registry operations that failed, by operation and reason",
		}, []string{"operation", "reason"}),
		FeesCollected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registry_submission_fees_collected_total",
			Help: "Sum of submission fees transferred to the authority",
		}),
		OperationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "registry_operation_duration_seconds",
			Help:    "Duration of registry operations",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

// ObserveOperation records the duration of op. Call with time.Now() at the
// start of the operation.
func (m *Metrics) ObserveOperation(op string, start time.Time) {
	m.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// IncrementRejected records a failed operation.
func (m *Metrics) IncrementRejected(op, reason string) {
	m.Rejected.WithLabelValues(op, reason).Inc()
}
