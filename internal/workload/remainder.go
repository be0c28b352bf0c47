// Package workload generates benchmark input patterns.
package workload

import "math/rand/v2"

// Remainder generates n signed 32-bit values bounded by modulus.
// Each value is a full-range draw reduced with Go's remainder operator, so
// -|modulus| < v < |modulus| and the sign of v follows the draw.
// The distribution is not uniform; callers rely on that exact shape.
func Remainder(r *rand.Rand, n int, modulus int32) []int32 {
	vals := make([]int32, n)
	for i := range n {
		vals[i] = int32(r.Uint32()) % modulus //nolint:gosec // wraparound is the point
	}
	return vals
}

// NewSource returns a generator seeded from process entropy.
// Reproducibility comes from the on-disk cache, never from the seed.
func NewSource() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
