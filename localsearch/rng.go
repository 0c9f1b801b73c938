// SPDX-License-Identifier: MIT

// Package localsearch - RNG utilities for randomized scan orders.
//
// Goals:
//   - Determinism: same seed ⇒ identical scan orders and identical results.
//   - Encapsulation: a single RNG factory; no time-based sources hidden anywhere.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Each FirstImprove owns its stream.

package localsearch

import "math/rand"

// defaultRNGSeed is the fixed seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use defaultRNGSeed; otherwise use the provided seed verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// shuffleIntsInPlace performs an in-place Fisher–Yates shuffle of a using rng.
// Complexity: O(n) time, O(1) extra space.
func shuffleIntsInPlace(a []int, rng *rand.Rand) {
	var i, j int
	for i = len(a) - 1; i > 0; i-- {
		j = rng.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}
