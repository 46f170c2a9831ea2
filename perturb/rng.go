// SPDX-License-Identifier: MIT

package perturb

import (
	"fmt"
	"math/rand"
)

// DefaultSeed is used when callers pass seed == 0.
const DefaultSeed int64 = 1

// RandFromSeed returns a deterministic *rand.Rand; seed == 0 means DefaultSeed.
func RandFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// DeriveSeed mixes a parent seed and a stream id into a new seed with a
// SplitMix64 finalizer, so that neighbouring stream ids give unrelated seeds.
func DeriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// DeriveRand creates an independent stream from base and a stream id.
// base.Int63 is consumed once, so repeated derivations differ even for the
// same id. A nil base uses DefaultSeed as the parent.
func DeriveRand(base *rand.Rand, stream uint64) *rand.Rand {
	parent := DefaultSeed
	if base != nil {
		parent = base.Int63()
	}

	return rand.New(rand.NewSource(DeriveSeed(parent, stream)))
}

// Sample picks k distinct elements of population uniformly, in the order drawn.
// The input is not modified.
func Sample(population []string, k int, rng *rand.Rand) ([]string, error) {
	n := len(population)
	if k < 0 || k > n {
		return nil, fmt.Errorf("k=%d of %d: %w", k, n, ErrSampleSize)
	}
	if rng == nil {
		rng = RandFromSeed(0)
	}
	pool := make([]string, n)
	copy(pool, population)
	// Partial Fisher–Yates: the first k slots end up holding the sample.
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return pool[:k], nil
}
