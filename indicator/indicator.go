// SPDX-License-Identifier: MIT

// Package indicator compares an evaluated front A against a reference front B
// in (MaxSum, MaxMin) space, maximization on both axes.
//
// Indicators:
//   - SetCoverage(A, B): share of B weakly dominated by some point of A, in [0,1].
//   - Epsilon(A, B): max over b of min over a of max_i (b_i - a_i)/a_i.
//     Zero coordinates in A divide by zero; the result is then ±Inf or NaN
//     and never a panic.
//   - Hypervolume(A, ref): area dominated by A and bounded by ref. This equals
//     the minimization hypervolume of the negated front against the negated
//     reference point.
//
// Aggregation:
//
//	Mean and Summarize skip NaN and ±Inf, so degenerate epsilon values count
//	as missing rather than poisoning an average.
package indicator

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/modiv/pareto"
)

// Values groups the three indicators for one evaluated front.
type Values struct {
	Hypervolume float64 `json:"hv"`
	SetCoverage float64 `json:"sc"`
	Epsilon     float64 `json:"eps"`
}

// Origin is the usual hypervolume reference point.
var Origin = pareto.Point{}

// SetCoverage returns |{b ∈ B : ∃a ∈ A, a ≥ b on both axes}| / |B|.
// An empty B yields NaN.
func SetCoverage(a, b []pareto.Point) float64 {
	if len(b) == 0 {
		return math.NaN()
	}

	var covered int
	for _, pb := range b {
		for _, pa := range a {
			if pareto.WeaklyDominates(pa, pb) {
				covered++
				break
			}
		}
	}

	return float64(covered) / float64(len(b))
}

// Epsilon returns the multiplicative epsilon indicator of A with respect to B.
// Empty B yields -Inf; empty A yields +Inf.
func Epsilon(a, b []pareto.Point) float64 {
	eps := math.Inf(-1)
	for _, pb := range b {
		best := math.Inf(1)
		for _, pa := range a {
			best = math.Min(best, ratio(pa, pb))
		}
		eps = math.Max(eps, best)
	}

	return eps
}

// ratio is the largest relative shortfall of a against b.
func ratio(a, b pareto.Point) float64 {
	return math.Max((b.MaxSum-a.MaxSum)/a.MaxSum, (b.MaxMin-a.MaxMin)/a.MaxMin)
}

// Hypervolume returns the area jointly dominated by the front and bounded
// below by ref. Points that are not strictly better than ref on both axes, or
// that carry non-finite coordinates, contribute nothing.
//
// Complexity: O(m²) for the non-dominated filter plus O(m log m) for the sweep.
func Hypervolume(front []pareto.Point, ref pareto.Point) float64 {
	pts := make([]pareto.Point, 0, len(front))
	for _, p := range front {
		if finite(p) && p.MaxSum > ref.MaxSum && p.MaxMin > ref.MaxMin {
			pts = append(pts, p)
		}
	}
	pts = pareto.Filter(pts)

	// Non-dominated and sorted by MaxSum descending ⇒ MaxMin ascending.
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].MaxSum != pts[j].MaxSum {
			return pts[i].MaxSum > pts[j].MaxSum
		}

		return pts[i].MaxMin < pts[j].MaxMin
	})

	var (
		area  float64
		floor = ref.MaxMin
	)
	for _, p := range pts {
		if p.MaxMin > floor {
			area += (p.MaxSum - ref.MaxSum) * (p.MaxMin - floor)
			floor = p.MaxMin
		}
	}

	return area
}

// Evaluate computes all three indicators of front against reference, using
// ref as the hypervolume reference point.
func Evaluate(front, reference []pareto.Point, ref pareto.Point) Values {
	return Values{
		Hypervolume: Hypervolume(front, ref),
		SetCoverage: SetCoverage(front, reference),
		Epsilon:     Epsilon(front, reference),
	}
}

// ReferenceFront returns the non-dominated union of fronts with exact
// duplicates collapsed, in first-seen order.
func ReferenceFront(fronts ...[]pareto.Point) []pareto.Point {
	var all []pareto.Point
	seen := make(map[pareto.Point]struct{})
	for _, f := range fronts {
		for _, p := range f {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			all = append(all, p)
		}
	}

	return pareto.Filter(all)
}

// Mean averages the finite entries of values; NaN when none is finite.
func Mean(values []float64) float64 {
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			xs = append(xs, v)
		}
	}
	if len(xs) == 0 {
		return math.NaN()
	}

	return stat.Mean(xs, nil)
}

// Summarize averages each indicator across runs with Mean.
func Summarize(runs []Values) Values {
	hv := make([]float64, len(runs))
	sc := make([]float64, len(runs))
	eps := make([]float64, len(runs))
	for i, v := range runs {
		hv[i], sc[i], eps[i] = v.Hypervolume, v.SetCoverage, v.Epsilon
	}

	return Values{Hypervolume: Mean(hv), SetCoverage: Mean(sc), Epsilon: Mean(eps)}
}

func finite(p pareto.Point) bool {
	return !math.IsNaN(p.MaxSum) && !math.IsInf(p.MaxSum, 0) &&
		!math.IsNaN(p.MaxMin) && !math.IsInf(p.MaxMin, 0)
}
