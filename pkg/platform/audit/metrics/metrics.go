package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the audit log.
// Tracks appended events by type and chain verification outcomes.
type Metrics struct {
	EventsAppended *prometheus.CounterVec
	ChainVerified  prometheus.Counter
	ChainBroken    prometheus.Counter
}

// New creates a new Metrics instance with all audit log metrics registered.
func New() *Metrics {
	return &Metrics{
		EventsAppended: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "custos_audit_events_appended_total",
			Help: "Total number of events appended to the audit log",
		}, []string{"event_type"}),
		ChainVerified: promauto.NewCounter(prometheus.CounterOpts{
			Name: "custos_audit_chain_verifications_total",
			Help: "Total number of successful hash chain verifications",
		}),
		ChainBroken: promauto.NewCounter(prometheus.CounterOpts{
			Name: "custos_audit_chain_breaks_total",
			Help: "Total number of chain verifications that detected tampering",
		}),
	}
}

// IncAppended records a committed audit event.
func (m *Metrics) IncAppended(eventType string) {
	m.EventsAppended.WithLabelValues(eventType).Inc()
}

// ObserveVerification records a chain verification outcome.
func (m *Metrics) ObserveVerification(ok bool) {
	if ok {
		m.ChainVerified.Inc()
		return
	}
	m.ChainBroken.Inc()
}
