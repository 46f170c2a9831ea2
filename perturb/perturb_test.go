// SPDX-License-Identifier: MIT
package perturb_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lh7326/UA-model-sub000/parameters"
	"github.com/lh7326/UA-model-sub000/perturb"
)

func kaon(t *testing.T) *parameters.Vector {
	t.Helper()
	v, err := parameters.Defaults(parameters.Kaon, parameters.DefaultMasses)
	require.NoError(t, err)

	return v
}

func TestStep_Branches(t *testing.T) {
	b := parameters.Bound{Lower: 0, Upper: 10}
	assert.InDelta(t, 4-0.5*0.5*4, perturb.Step(4, b, 0.5, -0.5), 1e-15)
	assert.InDelta(t, 4+0.5*0.5*6, perturb.Step(4, b, 0.5, 0.5), 1e-15)
	assert.Equal(t, 4.0, perturb.Step(4, b, 0.5, 0))

	// Unbounded sides grow multiplicatively.
	u := parameters.Unbounded
	assert.InDelta(t, -2+0.3*0.5*2*(1+0.3*0.5), perturb.Step(-2, u, 0.3, 0.5), 1e-15)
	assert.InDelta(t, -2+0.3*-0.5*-2*(1+0.3*0.5), perturb.Step(-2, u, 0.3, -0.5), 1e-15)
}

func TestPerturb_EnvelopeForUnboundedCoefficient(t *testing.T) {
	rng := perturb.RandFromSeed(42)
	maxDev := 0.0
	for i := 0; i < 5000; i++ {
		v := kaon(t)
		require.NoError(t, v.Set("a_omega", 0.1))
		v.FixAll()
		require.NoError(t, v.Release("a_omega"))

		require.NoError(t, perturb.Perturb(v, perturb.WithScales(0.3, 0.3), perturb.WithRand(rng)))
		x, err := v.Value("a_omega")
		require.NoError(t, err)
		maxDev = math.Max(maxDev, math.Abs(x-0.1))
	}
	assert.LessOrEqual(t, maxDev, 0.3*math.Max(0.1, 1.3*0.1)+1e-15)
	assert.Greater(t, maxDev, 0.03, "the envelope should be nearly reached over many draws")
}

func TestPerturb_StaysStrictlyInsideBounds(t *testing.T) {
	for _, mode := range []parameters.BoundsMode{parameters.BoundsHandpicked, parameters.BoundsMaximal} {
		v := kaon(t)
		bounds := v.Bounds(mode)
		rng := perturb.RandFromSeed(7)
		for round := 0; round < 50; round++ {
			require.NoError(t, perturb.Perturb(v, perturb.WithRand(rng), perturb.WithBoundsMode(mode), perturb.WithScales(0.3, 0.3)))
			for _, name := range v.FreeNames() {
				x, _ := v.Value(name)
				require.True(t, bounds[name].StrictlyContains(x), "%v round %d: %s=%v not in %+v", mode, round, name, x, bounds[name])
			}
		}
	}
}

func TestPerturb_FixedUntouched(t *testing.T) {
	v := kaon(t)
	require.NoError(t, v.Fix(v.ResonanceNames()...))
	before := v.ToList()

	require.NoError(t, perturb.Perturb(v, perturb.WithSeed(3)))
	after := v.ToList()
	changed := 0
	for i := range before {
		if before[i].Fixed {
			assert.Equal(t, before[i].Value, after[i].Value, before[i].Name)
			continue
		}
		if before[i].Value != after[i].Value {
			changed++
		}
	}
	assert.Positive(t, changed)
}

func TestPerturb_Deterministic(t *testing.T) {
	a, b := kaon(t), kaon(t)
	require.NoError(t, perturb.Perturb(a, perturb.WithSeed(11)))
	require.NoError(t, perturb.Perturb(b, perturb.WithSeed(11)))
	assert.True(t, a.Equal(b))
}

func TestPerturb_Validation(t *testing.T) {
	assert.ErrorIs(t, perturb.Perturb(nil), perturb.ErrNilVector)
	assert.ErrorIs(t, perturb.Perturb(kaon(t), perturb.WithScales(1, 0.1)), perturb.ErrInvalidScale)
	assert.ErrorIs(t, perturb.Perturb(kaon(t), perturb.WithScales(0.1, -0.1)), perturb.ErrInvalidScale)
}
