// SPDX-License-Identifier: MIT

package construct

import (
	"math"
	"math/rand"
)

// unitOpen draws U in (0,1]; ln(U) is then always finite.
func unitOpen(rng *rand.Rand) float64 { return 1 - rng.Float64() }

// geometricIndex returns floor(ln U / ln(1-beta)) mod n.
//   - beta <= 0 (or so small that 1-beta rounds to 1): uniform index.
//   - beta >= 1: index 0.
//
// The modulo runs in float64 so very small betas never overflow int.
func geometricIndex(n int, beta float64, rng *rand.Rand) int {
	if n <= 1 || beta >= 1 {
		return 0
	}
	lg := math.Log1p(-beta)
	if beta <= 0 || lg == 0 {
		return rng.Intn(n)
	}
	k := math.Floor(math.Log(unitOpen(rng)) / lg)
	if math.IsInf(k, 0) {
		return rng.Intn(n)
	}

	return int(math.Mod(k, float64(n)))
}

// triangularIndex returns floor(n * (1 - sqrt U)), clamped to [0, n-1].
func triangularIndex(n int, rng *rand.Rand) int {
	if n <= 1 {
		return 0
	}
	idx := int(float64(n) * (1 - math.Sqrt(unitOpen(rng))))
	if idx >= n {
		idx = n - 1
	}

	return idx
}

// resolveBeta returns beta, or a fresh draw in [0,1) when beta is negative.
func resolveBeta(beta float64, rng *rand.Rand) float64 {
	if beta < 0 {
		return rng.Float64()
	}

	return beta
}
