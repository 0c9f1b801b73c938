// SPDX-License-Identifier: MIT

package solution

import (
	"fmt"
	"math"
)

// Preview returns the exact (MaxSum, MaxMin) the solution would have after
// removing out and inserting in, without mutating anything.
//
// Preconditions (panic otherwise): every out node is a member, every in node
// is not, and neither list repeats a node.
//
// Complexity: O(k·(|out|+|in|)) typically; O(k²) when an out node realises the
// current MaxMin and the remaining minimum has to be recomputed.
func (s *Solution) Preview(out, in []int) (sum, minD float64) {
	s.checkMove(out, in)

	sum = s.maxSum
	var (
		i, j  int
		o     int
		near  float64
		dirty bool
	)

	// removal: subtract each out node's links to all members, then add back
	// the out-out pairs that were subtracted twice.
	for i = 0; i < len(out); i++ {
		o = out[i]
		sum -= s.DistanceSumTo(o)
		for j = i + 1; j < len(out); j++ {
			sum += s.inst.Distance(o, out[j])
		}
		if near = s.DistanceMinTo(o); near <= s.maxMin {
			dirty = true
		}
	}

	minD = s.maxMin
	if len(out) > 0 && dirty {
		minD = s.pairMinExcluding(out)
	}
	if len(s.members)-len(out) < 2 {
		minD = math.Inf(1)
	}

	// insertion: links to the remaining members plus the in-in pairs.
	for i = 0; i < len(in); i++ {
		sum += s.DistanceSumTo(in[i], out...)
		if near = s.DistanceMinTo(in[i], out...); near < minD {
			minD = near
		}
		for j = i + 1; j < len(in); j++ {
			near = s.inst.Distance(in[i], in[j])
			sum += near
			if near < minD {
				minD = near
			}
		}
	}
	if len(s.members)-len(out)+len(in) < 2 {
		sum, minD = 0, math.Inf(1)
	}

	return sum, minD
}

// Exchange removes out and inserts in, committing the move.
// Preconditions match Preview.
func (s *Solution) Exchange(out, in []int) {
	s.checkMove(out, in)
	for _, o := range out {
		s.Remove(o)
	}
	for _, u := range in {
		s.Add(u)
	}
}

// pairMinExcluding is pairMin over members not listed in ex.
func (s *Solution) pairMinExcluding(ex []int) float64 {
	rest := make([]int, 0, len(s.members))
	for _, v := range s.members {
		if !excluded(v, ex) {
			rest = append(rest, v)
		}
	}

	return s.pairMin(rest)
}

func (s *Solution) checkMove(out, in []int) {
	var i, j int
	for i = range out {
		s.checkNode(out[i])
		if !s.in[out[i]] {
			panic(fmt.Sprintf("solution: exchange removes non-member %d", out[i]))
		}
		for j = i + 1; j < len(out); j++ {
			if out[i] == out[j] {
				panic(fmt.Sprintf("solution: exchange removes %d twice", out[i]))
			}
		}
	}
	for i = range in {
		s.checkNode(in[i])
		if s.in[in[i]] {
			panic(fmt.Sprintf("solution: exchange inserts member %d", in[i]))
		}
		for j = i + 1; j < len(in); j++ {
			if in[i] == in[j] {
				panic(fmt.Sprintf("solution: exchange inserts %d twice", in[i]))
			}
		}
	}
}
