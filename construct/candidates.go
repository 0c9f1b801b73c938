// SPDX-License-Identifier: MIT

package construct

import (
	"math"
	"sort"

	"github.com/katalvlaran/modiv/instance"
	"github.com/katalvlaran/modiv/pareto"
	"github.com/katalvlaran/modiv/solution"
)

// Candidate is an unselected node with its cached scores against the
// current partial solution. Min is +Inf while the solution is empty.
type Candidate struct {
	Node int
	Sum  float64
	Min  float64
}

// Score returns the candidate's value under objective o.
func (c Candidate) Score(o pareto.Objective) float64 {
	if o == pareto.MaxMin {
		return c.Min
	}

	return c.Sum
}

// Contribution converts the cached scores into an insertion hint.
func (c Candidate) Contribution() solution.Contribution {
	return solution.Contribution{Sum: c.Sum, Min: c.Min}
}

// CandidateList tracks every node outside one partial solution. It is owned
// by a single construction run.
type CandidateList struct {
	inst  *instance.Instance
	items []Candidate
}

// NewCandidateList scores every non-member of s against its members.
// Complexity: O(n·k).
func NewCandidateList(s *solution.Solution) *CandidateList {
	inst := s.Instance()
	cl := &CandidateList{inst: inst, items: make([]Candidate, 0, inst.N()-s.Size())}
	for _, u := range s.Unselected() {
		cl.items = append(cl.items, Candidate{Node: u, Sum: s.DistanceSumTo(u), Min: s.DistanceMinTo(u)})
	}

	return cl
}

// Len returns the number of candidates.
func (cl *CandidateList) Len() int { return len(cl.items) }

// At returns the i-th candidate in the current order.
func (cl *CandidateList) At(i int) Candidate { return cl.items[i] }

// Items returns a copy of the candidates in the current order.
func (cl *CandidateList) Items() []Candidate {
	out := make([]Candidate, len(cl.items))
	copy(out, cl.items)

	return out
}

// Retain keeps only the candidates for which keep returns true, preserving order.
func (cl *CandidateList) Retain(keep func(Candidate) bool) {
	w := 0
	for _, c := range cl.items {
		if keep(c) {
			cl.items[w] = c
			w++
		}
	}
	cl.items = cl.items[:w]
}

// Sort orders candidates best first under o: descending score, ties broken
// by the other objective's score (descending), then by ascending node id.
func (cl *CandidateList) Sort(o pareto.Objective) {
	other := o.Other()
	sort.Slice(cl.items, func(i, j int) bool {
		a, b := cl.items[i], cl.items[j]
		if sa, sb := a.Score(o), b.Score(o); sa != sb {
			return sa > sb
		}
		if sa, sb := a.Score(other), b.Score(other); sa != sb {
			return sa > sb
		}

		return a.Node < b.Node
	})
}

// Take removes and returns the i-th candidate, keeping the order of the rest.
func (cl *CandidateList) Take(i int) Candidate {
	c := cl.items[i]
	cl.items = append(cl.items[:i], cl.items[i+1:]...)

	return c
}

// Update folds a newly inserted node into every remaining entry.
// Complexity: O(|list|).
func (cl *CandidateList) Update(added int) {
	row := cl.inst.Row(added)

	var (
		i int
		d float64
	)
	for i = range cl.items {
		d = row[cl.items[i].Node]
		cl.items[i].Sum += d
		cl.items[i].Min = math.Min(cl.items[i].Min, d)
	}
}
