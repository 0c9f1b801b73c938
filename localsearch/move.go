// SPDX-License-Identifier: MIT

package localsearch

import (
	"math"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/katalvlaran/modiv/solution"
)

// improveTol is the relative margin a criterion objective must beat.
const improveTol = 1e-9

// score is the (sum, min) contribution of a group of nodes.
type score struct {
	sum float64
	min float64
}

// lower orders scores for crit: MaxMin compares min first, the others sum first.
func lower(crit Criterion, a, b score) bool {
	if crit == ByMaxMin {
		return a.min < b.min || (a.min == b.min && a.sum < b.sum)
	}

	return a.sum < b.sum || (a.sum == b.sum && a.min < b.min)
}

// outScore measures what removing out takes away: the summed links of the
// group to the rest of the selection and the nearest member distance.
func outScore(s *solution.Solution, out []int) score {
	sc := score{min: math.Inf(1)}
	inst := s.Instance()

	var i, j int
	for i = 0; i < len(out); i++ {
		sc.sum += s.DistanceSumTo(out[i])
		for j = i + 1; j < len(out); j++ {
			sc.sum -= inst.Distance(out[i], out[j])
		}
		sc.min = math.Min(sc.min, s.DistanceMinTo(out[i]))
	}

	return sc
}

// inScore measures what inserting in adds once out has left.
func inScore(s *solution.Solution, in, out []int) score {
	sc := score{min: math.Inf(1)}
	inst := s.Instance()

	var (
		i, j int
		d    float64
	)
	for i = 0; i < len(in); i++ {
		sc.sum += s.DistanceSumTo(in[i], out...)
		sc.min = math.Min(sc.min, s.DistanceMinTo(in[i], out...))
		for j = i + 1; j < len(in); j++ {
			d = inst.Distance(in[i], in[j])
			sc.sum += d
			sc.min = math.Min(sc.min, d)
		}
	}

	return sc
}

// improves reports a > b by more than the relative tolerance.
func improves(a, b float64) bool {
	return a > b+improveTol*math.Max(1, math.Abs(b))
}

// accepts applies the acceptance rule to exact before/after objectives.
func accepts(crit Criterion, oldSum, oldMin, newSum, newMin float64) bool {
	if newSum < oldSum || newMin < oldMin {
		return false
	}
	switch crit {
	case ByMaxSum:
		return improves(newSum, oldSum)
	case ByMaxMin:
		return improves(newMin, oldMin)
	default:
		return improves(newSum, oldSum) || improves(newMin, oldMin)
	}
}

// admissible reports the structural preconditions shared by every improver.
func admissible(s *solution.Solution, nb Neighborhood) bool {
	if nb.Out < 1 || nb.In < 1 {
		return false
	}
	k := s.Size()

	return k >= nb.Out && k-nb.Out+nb.In >= 2 && s.Instance().N()-k >= nb.In
}

// eachCombination calls fn with every k-subset of items, in ascending
// lexicographic order of positions. fn must not retain combo; returning false
// stops the scan.
func eachCombination(items []int, k int, fn func(combo []int) bool) {
	if k < 1 || k > len(items) {
		return
	}
	gen := combin.NewCombinationGenerator(len(items), k)
	idx := make([]int, k)
	combo := make([]int, k)

	var i int
	for gen.Next() {
		gen.Combination(idx)
		for i = range idx {
			combo[i] = items[idx[i]]
		}
		if !fn(combo) {
			return
		}
	}
}
