// SPDX-License-Identifier: MIT

package localsearch

import "github.com/katalvlaran/modiv/solution"

// BestImprove is the deterministic improver: it pairs the weakest
// out-combination with the strongest feasible in-combination.
type BestImprove struct{}

// NewBestImprove returns a BestImprove. It holds no state.
func NewBestImprove() *BestImprove { return &BestImprove{} }

// TryImprove performs at most one exchange of shape nb.
//
// Steps:
//  1. Scan out-combinations of the sorted selection; keep the first one with
//     the lowest score under crit.
//  2. Scan in-combinations of the sorted complement, measured without that
//     out-combination; skip those breaking the budget or the capacity floor;
//     keep the first one with the highest score.
//  3. Reject unless the in-score is at least the out-score on both sums and
//     minima, then reject unless the exact preview passes acceptance.
//
// Complexity: O(C(k,out)·out·k + C(n-k,in)·in·k) per call.
func (b *BestImprove) TryImprove(s *solution.Solution, nb Neighborhood, crit Criterion) bool {
	if !admissible(s, nb) {
		return false
	}

	var (
		worst   = make([]int, 0, nb.Out)
		worstSc score
		found   bool
	)
	eachCombination(s.Selected(), nb.Out, func(combo []int) bool {
		sc := outScore(s, combo)
		if !found || lower(crit, sc, worstSc) {
			worst = append(worst[:0], combo...)
			worstSc, found = sc, true
		}

		return true
	})
	if !found {
		return false
	}

	var (
		best   = make([]int, 0, nb.In)
		bestSc score
	)
	found = false
	eachCombination(s.Unselected(), nb.In, func(combo []int) bool {
		if !s.SatisfiesCost(combo, worst) || !s.SatisfiesCapacity(combo, worst) {
			return true
		}
		sc := inScore(s, combo, worst)
		if !found || lower(crit, bestSc, sc) {
			best = append(best[:0], combo...)
			bestSc, found = sc, true
		}

		return true
	})
	if !found || worstSc.sum > bestSc.sum || worstSc.min > bestSc.min {
		return false
	}

	sum, minD := s.Preview(worst, best)
	if !accepts(crit, s.MaxSum(), s.MaxMin(), sum, minD) {
		return false
	}
	s.Exchange(worst, best)

	return true
}
