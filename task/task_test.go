// SPDX-License-Identifier: MIT
package task_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lh7326/UA-model-sub000/crosssection"
	"github.com/lh7326/UA-model-sub000/data"
	"github.com/lh7326/UA-model-sub000/formfactor"
	"github.com/lh7326/UA-model-sub000/parameters"
	"github.com/lh7326/UA-model-sub000/task"
)

var constants = crosssection.Constants{Alpha: 1 / 137.035999084, HCSquared: 0.3893793721e6}

func defaults(t *testing.T, f parameters.Family) *parameters.Vector {
	t.Helper()
	v, err := parameters.Defaults(f, parameters.DefaultMasses)
	require.NoError(t, err)

	return v
}

// synthesize evaluates the vector's own model at points without noise.
func synthesize[P data.Point](t *testing.T, v *parameters.Vector, points []P) data.Dataset[P] {
	t.Helper()
	m, err := v.BuildModel()
	require.NoError(t, err)
	ev := task.Evaluator{Model: m, Family: v.Family(), Constants: constants, Masses: parameters.DefaultMasses}
	ds, err := data.Synthesize(points, func(p P) float64 {
		y, err := task.Observe(ev, p)
		require.NoError(t, err)
		return y
	}, 0, 1)
	require.NoError(t, err)

	return ds
}

func pionPoints() []data.MesonPoint {
	ts := []float64{-1.2, -0.6, -0.3, -0.1, 0.2, 0.35, 0.5, 0.8, 1.2}
	out := make([]data.MesonPoint, len(ts))
	for i, x := range ts {
		out[i] = data.MesonPoint{T: x, Charged: true}
	}

	return out
}

func kaonPoints() []data.MesonPoint {
	var out []data.MesonPoint
	for _, x := range []float64{1.0, 1.02, 1.05, 1.2, 1.6, 2.0} {
		out = append(out,
			data.MesonPoint{T: x, Charged: true, CrossSection: true},
			data.MesonPoint{T: x, CrossSection: true})
	}

	return out
}

// freeOnly fixes every parameter except name.
func freeOnly(t *testing.T, v *parameters.Vector, name string) {
	t.Helper()
	v.FixAll()
	require.NoError(t, v.Release(name))
}

func TestRun_RecoversCoefficient(t *testing.T) {
	cases := []struct {
		family parameters.Family
		points []data.MesonPoint
	}{
		{parameters.Pion, pionPoints()},
		{parameters.Kaon, kaonPoints()},
	}
	for _, tc := range cases {
		t.Run(string(tc.family), func(t *testing.T) {
			truth := defaults(t, tc.family)
			ds := synthesize(t, truth, tc.points)

			name := truth.CoefficientNames()[0]
			want, err := truth.Value(name)
			require.NoError(t, err)

			start := truth.Clone()
			freeOnly(t, start, name)
			require.NoError(t, start.Set(name, want+0.05))

			tk, err := task.New("recover", start, ds, constants, parameters.DefaultMasses)
			require.NoError(t, err)
			require.NoError(t, tk.Run(context.Background()))
			require.False(t, tk.Failed(), tk.Message())

			got, err := tk.Parameters().Value(name)
			require.NoError(t, err)
			assert.InDelta(t, want, got, 1e-6)

			chi2, ok := tk.ChiSquared()
			require.True(t, ok)
			assert.Less(t, chi2, 1e-8)

			// The caller's vector is not touched.
			orig, err := start.Value(name)
			require.NoError(t, err)
			assert.Equal(t, want+0.05, orig)

			r := tk.Report()
			assert.Equal(t, []string{name}, r.Free)
			assert.Equal(t, len(tc.points), r.Points)
			require.Len(t, r.Covariance, 1)
			assert.Contains(t, r.Errors, name)
			assert.Empty(t, r.Error)
		})
	}
}

func TestRun_MaxEvaluationsIsRecorded(t *testing.T) {
	truth := defaults(t, parameters.Pion)
	ds := synthesize(t, truth, pionPoints())
	start := truth.Clone()
	names := start.CoefficientNames()
	start.FixAll()
	require.NoError(t, start.Release(names...))
	for _, n := range names {
		require.NoError(t, start.Set(n, 0.3))
	}

	tk, err := task.New("budget", start, ds, constants, parameters.DefaultMasses, task.WithMaxEvaluations(2))
	require.NoError(t, err)
	require.NoError(t, tk.Run(context.Background()))

	assert.True(t, tk.Failed())
	assert.Contains(t, tk.Message(), "maximum number of function evaluations")
	_, ok := tk.ChiSquared()
	assert.False(t, ok)
	assert.True(t, start.Equal(tk.Parameters()), "a failed fit leaves the values unchanged")

	r := tk.Report()
	assert.Nil(t, r.ChiSquared)
	assert.NotEmpty(t, r.Error)

	assert.ErrorIs(t, tk.Run(context.Background()), task.ErrAlreadyRun)
}

func TestRun_Errors(t *testing.T) {
	v := defaults(t, parameters.Pion)
	ds := synthesize(t, v, pionPoints()[:3])

	tk, err := task.New("few", v, ds, constants, parameters.DefaultMasses)
	require.NoError(t, err)
	assert.ErrorIs(t, tk.Run(context.Background()), task.ErrTooFewPoints)

	fixed := v.Clone()
	fixed.FixAll()
	tk, err = task.New("fixed", fixed, ds, constants, parameters.DefaultMasses)
	require.NoError(t, err)
	assert.ErrorIs(t, tk.Run(context.Background()), task.ErrNoFreeParameters)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tk, err = task.New("cancelled", v, ds, constants, parameters.DefaultMasses)
	require.NoError(t, err)
	assert.ErrorIs(t, tk.Run(ctx), context.Canceled)
}

func TestNew_Validation(t *testing.T) {
	v := defaults(t, parameters.Pion)
	ds := synthesize(t, v, pionPoints())

	_, err := task.New[data.MesonPoint]("nil", nil, ds, constants, parameters.DefaultMasses)
	assert.ErrorIs(t, err, task.ErrNilVector)

	_, err = task.New("consts", v, ds, crosssection.Constants{}, parameters.DefaultMasses)
	assert.ErrorIs(t, err, crosssection.ErrInvalidConstants)

	bad := ds.Clone()
	bad.Sigma[0] = 0
	_, err = task.New("sigma", v, bad, constants, parameters.DefaultMasses)
	assert.ErrorIs(t, err, data.ErrNonPositiveSigma)

	_, err = task.New("family", defaults(t, parameters.Nucleon), ds, constants, parameters.DefaultMasses)
	assert.ErrorIs(t, err, task.ErrFamilyMismatch)
}

func TestNew_MasksAndTemplates(t *testing.T) {
	v := defaults(t, parameters.Kaon)
	ds := synthesize(t, v, append(kaonPoints(), data.MesonPoint{T: -0.5, Charged: true}))

	tk, err := task.New("charged", v, ds, constants, parameters.DefaultMasses, task.WithChargedOnly())
	require.NoError(t, err)
	assert.Equal(t, 7, tk.Dataset().Len())

	tk, err = task.New("spacelike-cut", v, ds, constants, parameters.DefaultMasses,
		task.WithTimelikeOnly(), task.WithBelow(1.5))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1.02, 1.02, 1.05, 1.05, 1.2, 1.2}, tk.Dataset().Abscissas())

	tk, err = task.New("half", v, ds, constants, parameters.DefaultMasses, task.WithRandomHalf(rand.New(rand.NewSource(5))))
	require.NoError(t, err)
	assert.Equal(t, ds.Len()/2, tk.Dataset().Len())
	assert.Equal(t, ds.Len(), 13, "the caller's dataset keeps every point")

	tk, err = task.New("templates", v, ds, constants, parameters.DefaultMasses,
		task.WithFixedResonances(), task.WithFixedCoefficients())
	require.NoError(t, err)
	for _, name := range tk.Parameters().FreeNames() {
		assert.False(t, parameters.IsResonanceName(name), name)
		assert.False(t, parameters.IsCoefficientName(name), name)
	}
	assert.Greater(t, v.NumFree(), tk.Parameters().NumFree(), "templates act on the task's clone")
	assert.Equal(t, task.MesonCrossSection, tk.Kind())
}

func TestObserve(t *testing.T) {
	v := defaults(t, parameters.Kaon)
	m, err := v.BuildModel()
	require.NoError(t, err)
	ev := task.Evaluator{Model: m, Family: v.Family(), Constants: constants, Masses: parameters.DefaultMasses}

	xs, err := crosssection.NewScalarMeson(parameters.DefaultMasses.KaonNeutral, constants,
		crosssection.FormFactorFunc(formfactor.Func(m, formfactor.Neutral)))
	require.NoError(t, err)
	got, err := task.Observe(ev, data.MesonPoint{T: 1.1, CrossSection: true})
	require.NoError(t, err)
	assert.Equal(t, real(xs.At(1.1)), got)

	abs, err := task.Observe(ev, data.MesonPoint{T: -1, Charged: true})
	require.NoError(t, err)
	assert.InDelta(t, math.Abs(real(m.FormFactor(-1, formfactor.Charged))), abs, 1e-12)

	n := defaults(t, parameters.Nucleon)
	nm, err := n.BuildModel()
	require.NoError(t, err)
	nev := task.Evaluator{Model: nm, Family: n.Family(), Constants: constants, Masses: parameters.DefaultMasses}
	ge, err := task.Observe(nev, data.NucleonPoint{T: 0, Proton: true, Electric: true})
	require.NoError(t, err)
	assert.InDelta(t, 1, ge, 1e-12)
	sigma, err := task.Observe(nev, data.NucleonPoint{T: 4.5, Proton: true, CrossSection: true})
	require.NoError(t, err)
	assert.Greater(t, sigma, 0.0)
	assert.Equal(t, task.NucleonFormFactor, task.KindOf[data.NucleonPoint]())
}
