// Package observability turns engine lifecycle events into Prometheus metrics.
package observability

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aretw0/dicejourney/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dicejourney"

// Outcome labels for die evaluations.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeRange   = "range"
	OutcomeNoRange = "no_range"
)

// Metrics holds the collectors fed by LifecycleHooks.
type Metrics struct {
	registry *prometheus.Registry

	rolls       *prometheus.CounterVec
	dieOutcomes *prometheus.CounterVec
	dieTotals   *prometheus.HistogramVec
	branches    prometheus.Counter
}

// NewMetrics registers the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rolls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rolls_total",
				Help:      "Total number of executed rolls",
			},
			[]string{"journey_id"},
		),
		dieOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "die_outcomes_total",
				Help:      "Die evaluations by outcome",
			},
			[]string{"mode", "outcome"},
		),
		dieTotals: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "die_total",
				Help:      "Distribution of die totals",
				Buckets:   []float64{1, 2, 4, 6, 8, 10, 12, 20, 50, 100},
			},
			[]string{"mode"},
		),
		branches: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "branches_total",
				Help:      "Total number of next rolls suggested by executed rolls",
			},
		),
	}
	m.registry.MustRegister(m.rolls, m.dieOutcomes, m.dieTotals, m.branches)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that record metrics and, when logger is not nil,
// log every event at debug level.
func (m *Metrics) Hooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDieEvaluated: func(ctx context.Context, e *domain.DieEvent) {
			mode := string(e.Result.Mode)
			if mode == "" {
				mode = string(domain.ModeThreshold)
			}
			m.dieOutcomes.WithLabelValues(mode, DieOutcome(e.Result)).Inc()
			m.dieTotals.WithLabelValues(mode).Observe(float64(e.Result.Total))
			if logger != nil {
				logger.Debug("die evaluated", "roll_id", e.RollID, "die_id", e.Result.ID, "total", e.Result.Total)
			}
		},
		OnRollEvaluated: func(ctx context.Context, e *domain.RollEvent) {
			m.rolls.WithLabelValues(e.JourneyID).Inc()
			m.branches.Add(float64(len(e.Next)))
			if logger != nil {
				logger.Debug("roll evaluated", "roll_id", e.Result.RollID, "next", e.Next)
			}
		},
	}
}

// DieOutcome classifies a die result for the outcome label.
func DieOutcome(r domain.DieResult) string {
	switch {
	case r.IsSuccess == nil && r.RangeID != "":
		return OutcomeRange
	case r.IsSuccess == nil:
		return OutcomeNoRange
	case *r.IsSuccess:
		return OutcomeSuccess
	default:
		return OutcomeFailure
	}
}
