// SPDX-License-Identifier: MIT
package perturb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lh7326/UA-model-sub000/perturb"
)

func TestRandFromSeed_ZeroUsesDefault(t *testing.T) {
	a := perturb.RandFromSeed(0)
	b := perturb.RandFromSeed(perturb.DefaultSeed)
	assert.Equal(t, a.Int63(), b.Int63())
}

func TestDeriveSeed_StreamsDiffer(t *testing.T) {
	seen := make(map[int64]bool)
	for s := uint64(0); s < 64; s++ {
		x := perturb.DeriveSeed(5, s)
		assert.False(t, seen[x], "stream %d collides", s)
		seen[x] = true
	}
	assert.Equal(t, perturb.DeriveSeed(5, 1), perturb.DeriveSeed(5, 1))
}

func TestDeriveRand_ConsumesBase(t *testing.T) {
	base := perturb.RandFromSeed(9)
	a := perturb.DeriveRand(base, 1)
	b := perturb.DeriveRand(base, 1)
	assert.NotEqual(t, a.Int63(), b.Int63())

	c := perturb.DeriveRand(nil, 1)
	d := perturb.DeriveRand(nil, 1)
	assert.Equal(t, c.Int63(), d.Int63())
}

func TestSample(t *testing.T) {
	pop := []string{"a", "b", "c", "d", "e"}
	got, err := perturb.Sample(pop, 3, perturb.RandFromSeed(2))
	require.NoError(t, err)
	require.Len(t, got, 3)
	seen := map[string]bool{}
	for _, x := range got {
		assert.Contains(t, pop, x)
		assert.False(t, seen[x], "duplicate %s", x)
		seen[x] = true
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, pop, "input must not be modified")

	all, err := perturb.Sample(pop, 5, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, pop, all)

	none, err := perturb.Sample(pop, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = perturb.Sample(pop, 6, nil)
	assert.ErrorIs(t, err, perturb.ErrSampleSize)
}

func TestSample_Uniform(t *testing.T) {
	pop := []string{"a", "b", "c", "d"}
	counts := map[string]int{}
	rng := perturb.RandFromSeed(17)
	const draws = 20000
	for i := 0; i < draws; i++ {
		got, err := perturb.Sample(pop, 1, rng)
		require.NoError(t, err)
		counts[got[0]]++
	}
	for _, x := range pop {
		assert.InEpsilon(t, draws/4, counts[x], 0.05, x)
	}
}
