// SPDX-License-Identifier: MIT

package pareto

// Objective selects one of the two maximized criteria.
type Objective int

const (
	// MaxSum is the sum of pairwise distances.
	MaxSum Objective = iota
	// MaxMin is the minimum pairwise distance.
	MaxMin
)

// Other returns the opposite objective.
func (o Objective) Other() Objective {
	if o == MaxSum {
		return MaxMin
	}

	return MaxSum
}

func (o Objective) String() string {
	if o == MaxMin {
		return "MaxMin"
	}

	return "MaxSum"
}

// Value returns the coordinate of p selected by o.
func (p Point) Value(o Objective) float64 {
	if o == MaxMin {
		return p.MaxMin
	}

	return p.MaxSum
}
