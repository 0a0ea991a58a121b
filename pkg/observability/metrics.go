package observability

import (
	"math"

	"github.com/aretw0/reorder/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts engine activity.
type Metrics struct {
	Transitions *prometheus.CounterVec
	Intents     *prometheus.CounterVec
	Aborts      *prometheus.CounterVec
	Distance    prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg skips registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reorder_state_transitions_total",
				Help: "Total number of gesture state transitions",
			},
			[]string{"from", "to"},
		),
		Intents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reorder_intents_total",
				Help: "Intents dispatched to listeners",
			},
			[]string{"intent", "prevented"},
		),
		Aborts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reorder_aborts_total",
				Help: "Gestures forced back to idle",
			},
			[]string{"reason"},
		),
		Distance: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "reorder_splice_distance",
			Help:    "Positions an item moved on drop",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Transitions, m.Intents, m.Aborts, m.Distance)
	}
	return m
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateEnter: func(e *domain.StateEvent) {
			m.Transitions.WithLabelValues(e.From.String(), e.To.String()).Inc()
		},
		OnIntent: func(e *domain.IntentEvent) {
			prevented := "false"
			if e.Prevented {
				prevented = "true"
			}
			m.Intents.WithLabelValues(string(e.Intent), prevented).Inc()
			if e.Detail != nil {
				m.Distance.Observe(Distance(*e.Detail))
			}
		},
		OnAbort: func(e *domain.AbortEvent) {
			m.Aborts.WithLabelValues(string(e.Reason)).Inc()
		},
	}
}

// Distance is how many positions a drop moved the item. A splice index past
// the original counts the dragged item's own slot, so it is corrected by one.
func Distance(d domain.ReorderDetail) float64 {
	moved := d.SpliceIndex - d.OriginalIndex
	if moved > 0 {
		moved--
	}
	return math.Abs(float64(moved))
}
