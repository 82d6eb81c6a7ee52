package machine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric definitions with appropriate labels. Labeled by machine definition
// name and state id; instance ids are deliberately excluded to keep label
// cardinality bounded.
var (
	// transitionsFired counts transitions that fired (start hook accepted).
	transitionsFired = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "machine_transitions_fired_total",
		Help: "Total number of transitions fired by machine and end state",
	}, []string{"machine", "to_state"})

	// ticksTotal counts Update calls.
	ticksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "machine_ticks_total",
		Help: "Total number of machine Update ticks by machine",
	}, []string{"machine"})

	// activeStates tracks how many states were active at the end of a tick.
	activeStates = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "machine_active_states",
		Help: "Number of active states at the end of the last tick by machine",
	}, []string{"machine"})

	// tickDuration tracks Update durations.
	tickDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "machine_tick_duration_seconds",
		Help:    "Duration of machine Update ticks by machine",
		Buckets: []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1},
	}, []string{"machine"})
)

// observeTransition records a fired transition.
func observeTransition(machine, to string) {
	transitionsFired.WithLabelValues(sanitizeMachine(machine), to).Inc()
}

// observeTick records the per-tick metrics.
func observeTick(machine string, active int, elapsed time.Duration) {
	name := sanitizeMachine(machine)
	ticksTotal.WithLabelValues(name).Inc()
	activeStates.WithLabelValues(name).Set(float64(active))
	tickDuration.WithLabelValues(name).Observe(elapsed.Seconds())
}

// sanitizeMachine avoids an empty label for unnamed definitions.
func sanitizeMachine(machine string) string {
	if machine == "" {
		return "unnamed"
	}

	return machine
}
