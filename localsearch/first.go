// SPDX-License-Identifier: MIT

package localsearch

import (
	"math/rand"
	"time"

	"github.com/katalvlaran/modiv/solution"
)

// deadlineMask sets how often the wall clock is consulted (every 64 moves).
const deadlineMask = 63

// FirstImprove commits the first accepted move found in a randomized scan.
// Not safe for concurrent use: it owns its RNG stream.
type FirstImprove struct {
	rng      *rand.Rand
	limit    time.Duration
	timedOut bool
}

// NewFirstImprove returns a FirstImprove seeded with seed (0 ⇒ default stream)
// and bounded by limit per call (0 ⇒ unbounded).
func NewFirstImprove(seed int64, limit time.Duration) *FirstImprove {
	return &FirstImprove{rng: rngFromSeed(seed), limit: limit}
}

// TimedOut reports whether the previous TryImprove ran out of time.
func (f *FirstImprove) TimedOut() bool { return f.timedOut }

// TryImprove shuffles members and non-members, then walks out-combinations
// and, for each, in-combinations until a feasible move passes acceptance.
// Running out of time reports false and leaves s untouched.
func (f *FirstImprove) TryImprove(s *solution.Solution, nb Neighborhood, crit Criterion) bool {
	f.timedOut = false
	if !admissible(s, nb) {
		return false
	}

	members := s.Members()
	outside := s.Unselected()
	shuffleIntsInPlace(members, f.rng)
	shuffleIntsInPlace(outside, f.rng)

	var deadline time.Time
	if f.limit > 0 {
		deadline = time.Now().Add(f.limit)
	}

	var (
		oldSum, oldMin = s.MaxSum(), s.MaxMin()
		out, in        []int
		steps          int
		done           bool
	)
	eachCombination(members, nb.Out, func(oc []int) bool {
		eachCombination(outside, nb.In, func(ic []int) bool {
			if !deadline.IsZero() && steps&deadlineMask == 0 && time.Now().After(deadline) {
				f.timedOut, done = true, true
				return false
			}
			steps++
			if !s.SatisfiesCost(ic, oc) || !s.SatisfiesCapacity(ic, oc) {
				return true
			}
			sum, minD := s.Preview(oc, ic)
			if !accepts(crit, oldSum, oldMin, sum, minD) {
				return true
			}
			out = append([]int(nil), oc...)
			in = append([]int(nil), ic...)
			done = true

			return false
		})

		return !done
	})
	if out == nil {
		return false
	}
	s.Exchange(out, in)

	return true
}
