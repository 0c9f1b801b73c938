// SPDX-License-Identifier: MIT

package solution

import (
	"strconv"
	"strings"

	"github.com/katalvlaran/modiv/pareto"
)

// Record is the immutable projection of a Solution kept in archives and
// written to result tables.
type Record struct {
	Selected []int // ascending
	MaxSum   float64
	MaxMin   float64
	Cost     int
	Capacity int
}

// Record snapshots the current state.
func (s *Solution) Record() Record {
	return Record{
		Selected: s.Selected(),
		MaxSum:   s.maxSum,
		MaxMin:   s.maxMin,
		Cost:     s.cost,
		Capacity: s.capacity,
	}
}

// Point projects the record onto objective space.
func (r Record) Point() pareto.Point {
	return pareto.Point{MaxSum: r.MaxSum, MaxMin: r.MaxMin}
}

// Key renders the selected nodes as "a - b - c", the form used in result tables.
func (r Record) Key() string {
	var b strings.Builder
	for i, u := range r.Selected {
		if i > 0 {
			b.WriteString(" - ")
		}
		b.WriteString(strconv.Itoa(u))
	}

	return b.String()
}

var _ pareto.Pointer = Record{}
