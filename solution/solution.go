// SPDX-License-Identifier: MIT

package solution

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/modiv/instance"
)

// ErrDrift is returned by Verify when incremental state disagrees with a
// from-scratch recomputation.
var ErrDrift = errors.New("solution: incremental state drifted from recomputation")

// driftTol is the relative tolerance Verify accepts on objective values.
const driftTol = 1e-6

// Contribution is the cached effect of inserting one node: its distance sum
// and minimum distance to the current members.
type Contribution struct {
	Sum float64
	Min float64
}

// Solution is a subset of an Instance's nodes with incrementally maintained
// objectives. Create it with New; the zero value is not usable.
type Solution struct {
	inst     *instance.Instance
	in       []bool // membership bitmap
	pos      []int  // index into members, -1 when absent
	members  []int
	maxSum   float64
	maxMin   float64
	cost     int
	capacity int
}

// New returns an empty Solution over inst.
func New(inst *instance.Instance) *Solution {
	n := inst.N()
	s := &Solution{
		inst:    inst,
		in:      make([]bool, n),
		pos:     make([]int, n),
		members: make([]int, 0, n),
		maxMin:  math.Inf(1),
	}
	for i := range s.pos {
		s.pos[i] = -1
	}

	return s
}

// Instance returns the problem the solution belongs to.
func (s *Solution) Instance() *instance.Instance { return s.inst }

// MaxSum returns the sum of pairwise distances among members.
func (s *Solution) MaxSum() float64 { return s.maxSum }

// MaxMin returns the minimum pairwise distance, +Inf with fewer than two members.
func (s *Solution) MaxMin() float64 { return s.maxMin }

// TotalCost returns the summed cost of the members.
func (s *Solution) TotalCost() int { return s.cost }

// TotalCapacity returns the summed capacity of the members.
func (s *Solution) TotalCapacity() int { return s.capacity }

// Size returns the number of members.
func (s *Solution) Size() int { return len(s.members) }

// Contains reports membership of u. Out-of-range nodes are never members.
func (s *Solution) Contains(u int) bool {
	return u >= 0 && u < len(s.in) && s.in[u]
}

// Members returns a copy of the member list in internal order.
func (s *Solution) Members() []int {
	out := make([]int, len(s.members))
	copy(out, s.members)

	return out
}

// Selected returns the members in ascending order.
func (s *Solution) Selected() []int {
	out := s.Members()
	sort.Ints(out)

	return out
}

// Unselected returns the non-members in ascending order.
func (s *Solution) Unselected() []int {
	out := make([]int, 0, len(s.in)-len(s.members))
	for u, ok := range s.in {
		if !ok {
			out = append(out, u)
		}
	}

	return out
}

func (s *Solution) checkNode(u int) {
	if u < 0 || u >= len(s.in) {
		panic(fmt.Sprintf("solution: node %d out of range [0,%d)", u, len(s.in)))
	}
}

// Add inserts u, scanning the current members for its contribution.
// Panics if u is out of range or already selected.
func (s *Solution) Add(u int) {
	s.checkNode(u)
	s.AddHinted(u, Contribution{Sum: s.DistanceSumTo(u), Min: s.DistanceMinTo(u)})
}

// AddHinted inserts u using a precomputed contribution. The caller guarantees
// c matches DistanceSumTo(u) and DistanceMinTo(u); Verify detects misuse.
// Panics if u is out of range or already selected.
func (s *Solution) AddHinted(u int, c Contribution) {
	s.checkNode(u)
	if s.in[u] {
		panic(fmt.Sprintf("solution: node %d already selected", u))
	}

	s.maxSum += c.Sum
	if c.Min < s.maxMin {
		s.maxMin = c.Min
	}
	s.cost += s.inst.Cost(u)
	s.capacity += s.inst.Capacity(u)

	s.in[u] = true
	s.pos[u] = len(s.members)
	s.members = append(s.members, u)
}

// Remove deletes u, scanning the remaining members for its contribution.
// Panics if u is out of range or not selected.
func (s *Solution) Remove(u int) {
	s.checkNode(u)
	if !s.in[u] {
		panic(fmt.Sprintf("solution: node %d not selected", u))
	}
	s.RemoveHinted(u, s.DistanceSumTo(u))
}

// RemoveHinted deletes u subtracting the given distance sum. MaxMin is kept
// exact, which still costs one O(k) scan and, when u realised the minimum, an
// O(k²) recomputation.
// Panics if u is out of range or not selected.
func (s *Solution) RemoveHinted(u int, sum float64) {
	s.checkNode(u)
	if !s.in[u] {
		panic(fmt.Sprintf("solution: node %d not selected", u))
	}

	nearest := s.DistanceMinTo(u)

	// swap-delete from the dense member list
	i, last := s.pos[u], len(s.members)-1
	moved := s.members[last]
	s.members[i] = moved
	s.pos[moved] = i
	s.members = s.members[:last]
	s.pos[u] = -1
	s.in[u] = false

	s.maxSum -= sum
	s.cost -= s.inst.Cost(u)
	s.capacity -= s.inst.Capacity(u)

	switch {
	case len(s.members) < 2:
		s.maxMin = math.Inf(1)
		s.maxSum = 0
	case nearest <= s.maxMin:
		s.maxMin = s.pairMin(s.members)
	}
}

// pairMin returns the minimum pairwise distance among nodes, +Inf for fewer than two.
func (s *Solution) pairMin(nodes []int) float64 {
	m := math.Inf(1)

	var (
		i, j int
		row  []float64
	)
	for i = 0; i < len(nodes); i++ {
		row = s.inst.Row(nodes[i])
		for j = i + 1; j < len(nodes); j++ {
			if row[nodes[j]] < m {
				m = row[nodes[j]]
			}
		}
	}

	return m
}

// excluded reports whether v is listed in ex; ex is tiny (neighborhood size).
func excluded(v int, ex []int) bool {
	for _, e := range ex {
		if e == v {
			return true
		}
	}

	return false
}

// DistanceSumTo returns the summed distance from u to every member other than
// u itself and the nodes in excluding. Read-only.
func (s *Solution) DistanceSumTo(u int, excluding ...int) float64 {
	row := s.inst.Row(u)

	var sum float64
	for _, v := range s.members {
		if v != u && !excluded(v, excluding) {
			sum += row[v]
		}
	}

	return sum
}

// DistanceMinTo returns the minimum distance from u to every member other than
// u itself and the nodes in excluding; +Inf when no member qualifies. Read-only.
func (s *Solution) DistanceMinTo(u int, excluding ...int) float64 {
	row := s.inst.Row(u)

	m := math.Inf(1)
	for _, v := range s.members {
		if v != u && !excluded(v, excluding) && row[v] < m {
			m = row[v]
		}
	}

	return m
}

// SatisfiesCost reports whether the total cost after adding and removing the
// given nodes stays strictly below the budget. Non-mutating.
func (s *Solution) SatisfiesCost(adding, removing []int) bool {
	c := s.cost
	for _, u := range removing {
		c -= s.inst.Cost(u)
	}
	for _, u := range adding {
		c += s.inst.Cost(u)
	}

	return c < s.inst.Budget()
}

// SatisfiesCapacity reports whether the total capacity after adding and
// removing the given nodes stays strictly above the floor. Non-mutating.
func (s *Solution) SatisfiesCapacity(adding, removing []int) bool {
	c := s.capacity
	for _, u := range removing {
		c -= s.inst.Capacity(u)
	}
	for _, u := range adding {
		c += s.inst.Capacity(u)
	}

	return c > s.inst.MinCapacity()
}

// Feasible reports whether the current subset respects both bounds and has
// at least two members, so that MaxMin is defined.
func (s *Solution) Feasible() bool {
	return len(s.members) >= 2 && s.SatisfiesCost(nil, nil) && s.SatisfiesCapacity(nil, nil)
}

// Clone returns an independent deep copy sharing the Instance.
func (s *Solution) Clone() *Solution {
	c := &Solution{
		inst:     s.inst,
		in:       append([]bool(nil), s.in...),
		pos:      append([]int(nil), s.pos...),
		members:  make([]int, len(s.members), cap(s.members)),
		maxSum:   s.maxSum,
		maxMin:   s.maxMin,
		cost:     s.cost,
		capacity: s.capacity,
	}
	copy(c.members, s.members)

	return c
}

// Verify recomputes objectives and totals from the member set and compares
// them with the incremental values.
func (s *Solution) Verify() error {
	var (
		sum      float64
		cost     int
		capacity int
		i, j     int
		row      []float64
	)
	for i = 0; i < len(s.members); i++ {
		row = s.inst.Row(s.members[i])
		for j = i + 1; j < len(s.members); j++ {
			sum += row[s.members[j]]
		}
		cost += s.inst.Cost(s.members[i])
		capacity += s.inst.Capacity(s.members[i])
	}
	minD := s.pairMin(s.members)

	if !nearlyEqual(sum, s.maxSum) {
		return fmt.Errorf("%w: MaxSum %g, recomputed %g", ErrDrift, s.maxSum, sum)
	}
	if !nearlyEqual(minD, s.maxMin) {
		return fmt.Errorf("%w: MaxMin %g, recomputed %g", ErrDrift, s.maxMin, minD)
	}
	if cost != s.cost || capacity != s.capacity {
		return fmt.Errorf("%w: cost %d/%d capacity %d/%d", ErrDrift, s.cost, cost, s.capacity, capacity)
	}

	return nil
}

func nearlyEqual(a, b float64) bool {
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}

	return math.Abs(a-b) <= driftTol*math.Max(1, math.Abs(b))
}

// String renders the sorted members and objective values.
func (s *Solution) String() string {
	return fmt.Sprintf("%v MaxSum=%g MaxMin=%g cost=%d capacity=%d",
		s.Selected(), s.maxSum, s.maxMin, s.cost, s.capacity)
}
