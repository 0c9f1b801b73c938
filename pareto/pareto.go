// SPDX-License-Identifier: MIT

// Package pareto provides bi-objective dominance for maximization on both
// axes (MaxSum, MaxMin), an O(m²) non-dominated filter and an
// insertion-ordered archive filtered on demand.
//
// Conventions:
//   - a dominates b iff a is no worse on both objectives and strictly better
//     on at least one.
//   - Points equal on both objectives never dominate each other, so the
//     filter keeps every copy.
//   - Comparisons involving NaN are false; a NaN point neither dominates nor
//     is dominated.
//
// Complexity:
//
//	Dominates O(1); NonDominated/Filter/Archive.Front O(m²) for m entries.
package pareto

import "math"

// Point is a solution projected onto objective space.
type Point struct {
	MaxSum float64
	MaxMin float64
}

// Dominates reports whether a Pareto-dominates b (maximization).
func Dominates(a, b Point) bool {
	if a.MaxSum < b.MaxSum || a.MaxMin < b.MaxMin {
		return false
	}
	if math.IsNaN(a.MaxSum) || math.IsNaN(a.MaxMin) || math.IsNaN(b.MaxSum) || math.IsNaN(b.MaxMin) {
		return false
	}

	return a.MaxSum > b.MaxSum || a.MaxMin > b.MaxMin
}

// WeaklyDominates reports whether a is at least as good as b on both objectives.
func WeaklyDominates(a, b Point) bool {
	return a.MaxSum >= b.MaxSum && a.MaxMin >= b.MaxMin
}

// NonDominated marks, for every index, whether no other point dominates it.
func NonDominated(points []Point) []bool {
	keep := make([]bool, len(points))

	var i, j int
	for i = range points {
		keep[i] = true
		for j = range points {
			if i != j && Dominates(points[j], points[i]) {
				keep[i] = false
				break
			}
		}
	}

	return keep
}

// Filter returns the non-dominated subset of points in input order.
func Filter(points []Point) []Point {
	keep := NonDominated(points)
	out := make([]Point, 0, len(points))
	for i, k := range keep {
		if k {
			out = append(out, points[i])
		}
	}

	return out
}
