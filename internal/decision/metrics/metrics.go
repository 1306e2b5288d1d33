package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the decision module.
// Tracks frame creation by action class, lifecycle transitions by target
// status, and governance check violations.
type Metrics struct {
	FramesCreated        *prometheus.CounterVec
	Transitions          *prometheus.CounterVec
	GovernanceViolations prometheus.Counter
}

// New creates a new Metrics instance with all decision module metrics registered.
func New() *Metrics {
	return &Metrics{
		FramesCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "custos_decision_frames_created_total",
			Help: "Total number of decision frames created, by action class",
		}, []string{"action_class"}),
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "custos_decision_transitions_total",
			Help: "Total number of frame lifecycle transitions, by target status",
		}, []string{"status"}),
		GovernanceViolations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "custos_governance_violations_total",
			Help: "Total number of governance check violations observed",
		}),
	}
}

// IncFrameCreated records a successful frame creation.
func (m *Metrics) IncFrameCreated(actionClass string) {
	m.FramesCreated.WithLabelValues(actionClass).Inc()
}

// IncTransition records a committed lifecycle transition.
func (m *Metrics) IncTransition(status string) {
	m.Transitions.WithLabelValues(status).Inc()
}

// AddGovernanceViolations records observed governance check violations.
func (m *Metrics) AddGovernanceViolations(n int) {
	m.GovernanceViolations.Add(float64(n))
}
