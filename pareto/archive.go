// SPDX-License-Identifier: MIT

package pareto

// Pointer is implemented by anything that projects onto objective space,
// typically solution.Record.
type Pointer interface {
	Point() Point
}

// Archive is an insertion-ordered pool of entries. It never drops anything
// on Add; Front filters on demand. Not safe for concurrent use.
type Archive[T Pointer] struct {
	items []T
}

// NewArchive returns an empty archive with room for capacity entries.
func NewArchive[T Pointer](capacity int) *Archive[T] {
	if capacity < 0 {
		capacity = 0
	}

	return &Archive[T]{items: make([]T, 0, capacity)}
}

// Add appends entries in order.
func (a *Archive[T]) Add(items ...T) { a.items = append(a.items, items...) }

// Len returns the number of stored entries, dominated ones included.
func (a *Archive[T]) Len() int { return len(a.items) }

// All returns a copy of every entry in insertion order.
func (a *Archive[T]) All() []T {
	out := make([]T, len(a.items))
	copy(out, a.items)

	return out
}

// Front returns the non-dominated entries in insertion order.
func (a *Archive[T]) Front() []T {
	keep := NonDominated(a.points())
	out := make([]T, 0, len(a.items))
	for i, k := range keep {
		if k {
			out = append(out, a.items[i])
		}
	}

	return out
}

// Points returns the objective points of the non-dominated entries.
func (a *Archive[T]) Points() []Point {
	return Filter(a.points())
}

func (a *Archive[T]) points() []Point {
	pts := make([]Point, len(a.items))
	for i := range a.items {
		pts[i] = a.items[i].Point()
	}

	return pts
}
