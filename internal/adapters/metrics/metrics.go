package metrics

import (
	"time"

	"clipbot/internal/core/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "clipbot"

// Dispatch records one counter sample and one latency sample per dispatched
// interaction.
type Dispatch struct {
	registry *prometheus.Registry
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewDispatch() *Dispatch {
	d := &Dispatch{
		registry: prometheus.NewRegistry(),
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interactions_total",
			Help:      "Dispatched interactions by command and outcome.",
		}, []string{"command", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "interaction_duration_seconds",
			Help:      "Time from dispatch to handler completion.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2, 3, 5, 10, 30},
		}, []string{"command"}),
	}

	d.registry.MustRegister(
		d.total,
		d.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return d
}

func (d *Dispatch) ObserveDispatch(command string, outcome domain.DispatchOutcome, elapsed time.Duration) {
	// unknown names come from outside the registry and would grow the label set
	if outcome == domain.OutcomeUnknownCommand {
		command = "unknown"
	}

	d.total.WithLabelValues(command, string(outcome)).Inc()
	d.duration.WithLabelValues(command).Observe(elapsed.Seconds())
}

func (d *Dispatch) Registry() *prometheus.Registry {
	return d.registry
}
