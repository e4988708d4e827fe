package sweep

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels of the trial counter.
const (
	outcomeIncrease = "increase"
	outcomeDecrease = "decrease"
	outcomeError    = "error"
)

type metrics struct {
	trials   *prometheus.CounterVec
	duration prometheus.Histogram
}

// newMetrics registers the run's collectors. The run ID is a constant label,
// so several runs can share one registry.
func newMetrics(reg prometheus.Registerer, runID string) (*metrics, error) {
	labels := prometheus.Labels{"run_id": runID}
	m := &metrics{
		trials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "chipletcost",
			Subsystem:   "sweep",
			Name:        "trials_total",
			Help:        "Sensitivity trials by outcome.",
			ConstLabels: labels,
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "chipletcost",
			Subsystem:   "sweep",
			Name:        "trial_duration_seconds",
			Help:        "Wall time of one sensitivity trial, retries included.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
	}
	for _, c := range []prometheus.Collector{m.trials, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("sweep: register metrics: %w", err)
		}
	}
	return m, nil
}
