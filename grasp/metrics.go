// SPDX-License-Identifier: MIT

package grasp

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the run counters. All fields are safe for concurrent use, so
// one Metrics may be shared by parallel runs.
type Metrics struct {
	Iterations   prometheus.Counter
	Failures     prometheus.Counter
	Solutions    prometheus.Counter
	Improvements prometheus.Counter
	IterationSec prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg. Collectors
// already registered on reg are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "modiv",
			Subsystem: "grasp",
			Name:      "iterations_total",
			Help:      "Completed construct-then-improve iterations.",
		}),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "modiv",
			Subsystem: "grasp",
			Name:      "infeasible_constructions_total",
			Help:      "Iterations whose construction never reached a feasible state.",
		}),
		Solutions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "modiv",
			Subsystem: "grasp",
			Name:      "solutions_total",
			Help:      "Solutions appended to the archive.",
		}),
		Improvements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "modiv",
			Subsystem: "localsearch",
			Name:      "improvements_total",
			Help:      "Exchange moves committed by local search.",
		}),
		IterationSec: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "modiv",
			Subsystem: "grasp",
			Name:      "iteration_duration_seconds",
			Help:      "Wall time of one iteration.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
	}

	var err error
	if m.Iterations, err = register(reg, m.Iterations); err != nil {
		return nil, err
	}
	if m.Failures, err = register(reg, m.Failures); err != nil {
		return nil, err
	}
	if m.Solutions, err = register(reg, m.Solutions); err != nil {
		return nil, err
	}
	if m.Improvements, err = register(reg, m.Improvements); err != nil {
		return nil, err
	}
	if m.IterationSec, err = register(reg, m.IterationSec); err != nil {
		return nil, err
	}

	return m, nil
}

// register adds c to reg, returning the existing collector on a duplicate.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}

		return c, err
	}

	return c, nil
}

func (m *Metrics) observe(sec float64, failed bool, solutions, improvements int) {
	if m == nil {
		return
	}
	m.Iterations.Inc()
	if failed {
		m.Failures.Inc()
	}
	m.Solutions.Add(float64(solutions))
	m.Improvements.Add(float64(improvements))
	m.IterationSec.Observe(sec)
}
