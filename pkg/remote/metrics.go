package remote

import "github.com/prometheus/client_golang/prometheus"

const (
	resultOK      = "ok"
	resultFailed  = "failed"
	resultSkipped = "skipped"
)

type Metrics struct {
	operationsTotal *prometheus.CounterVec
}

// NewMetrics registers the controller counters on the given registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		operationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "postsync",
			Subsystem: "remote",
			Name:      "operations_total",
			Help:      "Settled remote operations partitioned by operation and result.",
		}, []string{"operation", "result"}),
	}
	registry.MustRegister(m.operationsTotal)
	return m
}

func (m *Metrics) observe(operation, result string) {
	if m == nil {
		return
	}
	m.operationsTotal.WithLabelValues(operation, result).Inc()
}
