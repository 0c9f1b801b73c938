// SPDX-License-Identifier: MIT

package grasp

import "math/rand"

// defaultRNGSeed is the fixed seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// deriveSeed mixes a parent seed and a stream id into a child seed
// (SplitMix64 finalizer). Distinct streams give decorrelated children.
func deriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// iterationRNG returns the private stream of iteration i. Each iteration is
// reproducible on its own, whatever ran before it.
func iterationRNG(seed int64, i int) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(deriveSeed(seed, uint64(i))))
}
