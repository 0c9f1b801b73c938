// SPDX-License-Identifier: MIT

package localsearch

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/modiv/pareto"
	"github.com/katalvlaran/modiv/solution"
)

// ErrNilSolution is returned by Run when s is nil.
var ErrNilSolution = errors.New("localsearch: nil solution")

// timeBounded is implemented by improvers with a per-call budget.
type timeBounded interface {
	TimedOut() bool
}

// descent carries the shared state of both drivers.
type descent struct {
	s        *solution.Solution
	imp      Improver
	approach Approach
	maxIter  int
	start    pareto.Objective
	stats    Stats
}

func newDescent(s *solution.Solution, imp Improver, opts Options) *descent {
	return &descent{s: s, imp: imp, approach: opts.Approach, maxIter: opts.MaxIterations, start: pareto.MaxSum}
}

func (d *descent) exhausted() bool {
	return d.stats.TimedOut || (d.maxIter > 0 && d.stats.Attempts >= d.maxIter)
}

func (d *descent) attempt(nb Neighborhood, crit Criterion) bool {
	d.stats.Attempts++
	ok := d.imp.TryImprove(d.s, nb, crit)
	if ok {
		d.stats.Improvements++
	}
	if tb, isTB := d.imp.(timeBounded); isTB && tb.TimedOut() {
		d.stats.TimedOut = true
	}

	return ok
}

// step tries nb once under the approach and reports whether a move was made.
func (d *descent) step(nb Neighborhood) bool {
	switch d.approach {
	case MaxSumOnly:
		return d.attempt(nb, ByMaxSum)
	case MaxMinOnly:
		return d.attempt(nb, ByMaxMin)
	case Dominance:
		return d.attempt(nb, ByDominance)
	}

	// Alternate: the neighborhood fails only after both objectives fail.
	if d.attempt(nb, CriterionFor(d.start)) ||
		(!d.exhausted() && d.attempt(nb, CriterionFor(d.start.Other()))) {
		d.start = d.start.Other()
		return true
	}

	return false
}

// RunStandard repeats the first neighborhood of opts until it fails, the
// iteration cap is hit or a time budget runs out.
func RunStandard(s *solution.Solution, imp Improver, opts Options) Stats {
	nbs := neighborhoods(opts)
	d := newDescent(s, imp, opts)
	for !d.exhausted() && d.step(nbs[0]) {
	}

	return d.stats
}

// RunVND runs Variable Neighborhood Descent over opts.Neighborhoods.
// An improvement restarts from the first neighborhood; a failure advances;
// failing the last one ends the descent at a local optimum of all of them.
func RunVND(s *solution.Solution, imp Improver, opts Options) Stats {
	nbs := neighborhoods(opts)
	d := newDescent(s, imp, opts)
	for k := 0; k < len(nbs) && !d.exhausted(); {
		if d.step(nbs[k]) {
			k = 0
		} else {
			k++
		}
	}

	return d.stats
}

// NewImprover builds the improver named by opts.Scheme.
func NewImprover(opts Options) (Improver, error) {
	switch opts.Scheme {
	case Best:
		return NewBestImprove(), nil
	case First:
		return NewFirstImprove(opts.Seed, opts.TimeLimit), nil
	}

	return nil, fmt.Errorf("%w: scheme %d", ErrInvalidOptions, int(opts.Scheme))
}

// Run validates opts, builds the improver and runs the selected driver on s
// in place.
func Run(s *solution.Solution, opts Options) (Stats, error) {
	if s == nil {
		return Stats{}, ErrNilSolution
	}
	if err := validateOptions(opts); err != nil {
		return Stats{}, err
	}
	imp, err := NewImprover(opts)
	if err != nil {
		return Stats{}, err
	}
	if opts.Strategy == VND {
		return RunVND(s, imp, opts), nil
	}

	return RunStandard(s, imp, opts), nil
}

func validateOptions(opts Options) error {
	if opts.TimeLimit < 0 || opts.MaxIterations < 0 {
		return fmt.Errorf("%w: negative limit", ErrInvalidOptions)
	}
	if opts.Approach < Alternate || opts.Approach > Dominance {
		return fmt.Errorf("%w: approach %d", ErrInvalidOptions, int(opts.Approach))
	}
	if opts.Strategy != Standard && opts.Strategy != VND {
		return fmt.Errorf("%w: strategy %d", ErrInvalidOptions, int(opts.Strategy))
	}
	if opts.Neighborhoods != nil && len(opts.Neighborhoods) == 0 {
		return fmt.Errorf("%w: empty list", ErrInvalidNeighborhood)
	}
	for _, nb := range opts.Neighborhoods {
		if nb.Out < 1 || nb.In < 1 {
			return fmt.Errorf("%w: %s", ErrInvalidNeighborhood, nb)
		}
	}

	return nil
}

func neighborhoods(opts Options) []Neighborhood {
	if len(opts.Neighborhoods) == 0 {
		return DefaultNeighborhoods()
	}

	return opts.Neighborhoods
}
