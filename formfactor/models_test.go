// SPDX-License-Identifier: MIT
package formfactor_test

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lh7326/UA-model-sub000/component"
	"github.com/lh7326/UA-model-sub000/formfactor"
)

func TestKaon_Normalization(t *testing.T) {
	for _, widthScale := range []float64{0, 1} {
		k, err := formfactor.NewKaon(kaonSpec(t, widthScale))
		require.NoError(t, err)

		near(t, 1, k.FormFactor(0, formfactor.Charged), 1e-12)
		near(t, 0, k.FormFactor(0, formfactor.Neutral), 1e-12)
		assert.InDelta(t, 0.5, sum(k.Isoscalar(formfactor.Charged).Coefficients()), 1e-14)
		assert.InDelta(t, 0.5, sum(k.Isovector().Coefficients()), 1e-14)
	}
}

func TestKaon_PhiRatioSplitsIsoscalar(t *testing.T) {
	spec := kaonSpec(t, 1)
	spec.NeutralIsoscalarCoefficients = []float64{0.21, 0.05, 0.09, 0.07, 0.12}
	k, err := formfactor.NewKaon(spec)
	require.NoError(t, err)

	near(t, 1, k.FormFactor(0, formfactor.Charged), 1e-12)
	near(t, 0, k.FormFactor(0, formfactor.Neutral), 1e-12)
	assert.InDelta(t, 0.5, sum(k.Isoscalar(formfactor.Neutral).Coefficients()), 1e-14)
	assert.NotEqual(t,
		k.Isoscalar(formfactor.Charged).Coefficients(),
		k.Isoscalar(formfactor.Neutral).Coefficients())

	// Near the φ peak the split breaks F_S(charged) = F_S(neutral).
	phi := complex(1.019461*1.019461, 0)
	fsCharged := k.Isoscalar(formfactor.Charged).AtT(phi)
	fsNeutral := k.Isoscalar(formfactor.Neutral).AtT(phi)
	assert.Greater(t, cmplx.Abs(fsCharged-fsNeutral), 1e-3)

	spec.NeutralIsoscalarCoefficients = []float64{0.1}
	_, err = formfactor.NewKaon(spec)
	assert.ErrorIs(t, err, formfactor.ErrCoefficientCount)
}

func TestKaon_Reality(t *testing.T) {
	k, err := formfactor.NewKaon(kaonSpec(t, 1))
	require.NoError(t, err)
	for _, sel := range []formfactor.Selector{formfactor.Charged, formfactor.Neutral} {
		for _, tt := range offCut {
			near(t, cmplx.Conj(k.FormFactor(tt, sel)), k.FormFactor(cmplx.Conj(tt), sel), 1e-12, "%v t=%v", sel, tt)
		}
	}
}

func TestKaon_RejectsBelowThreshold(t *testing.T) {
	spec := kaonSpec(t, 1)
	spec.Isoscalar.Resonances[0].Mass = 0.3 // 0.09 < 9 m_π²
	_, err := formfactor.NewKaon(spec)
	assert.ErrorIs(t, err, component.ErrBelowThreshold)
}

func TestKaon_Supports(t *testing.T) {
	k, err := formfactor.NewKaon(kaonSpec(t, 1))
	require.NoError(t, err)
	assert.True(t, k.Supports(formfactor.Charged))
	assert.False(t, k.Supports(formfactor.ProtonElectric))
	assert.True(t, cmplx.IsNaN(k.FormFactor(1, formfactor.ProtonElectric)))

	_, err = formfactor.Evaluate(k, 1, formfactor.NeutronMagnetic)
	assert.ErrorIs(t, err, formfactor.ErrUnsupportedSelector)
	v, err := formfactor.Evaluate(k, 0, formfactor.Charged)
	require.NoError(t, err)
	near(t, 1, v, 1e-12)
}

func TestPion_NormalizationAndFactor(t *testing.T) {
	bp := branch(t, isovectorT0, 1.2)
	p, err := formfactor.NewPion(formfactor.PionSpec{
		Isovector: formfactor.ChannelSpec{
			BranchPoints: bp,
			Resonances:   resonances(1, vectorMasses, vectorWidths),
			Coefficients: []float64{1.1, -0.05, 0.02},
		},
		WPole: complex(0.3, 0.9),
		WZero: complex(0.5, -0.7),
	})
	require.NoError(t, err)

	near(t, 1, p.FormFactor(0, formfactor.Charged), 1e-12)
	near(t, 1, p.Factor(bp.Normalization()), 1e-14)
	assert.Equal(t, complex(0, 0), p.Factor(complex(0.5, -0.7)))
	assert.True(t, p.Supports(formfactor.Charged))
	assert.False(t, p.Supports(formfactor.Neutral))
	assert.True(t, cmplx.IsNaN(p.FormFactor(0, formfactor.Neutral)))
}

func TestNucleon_Normalizations(t *testing.T) {
	for _, widthScale := range []float64{0, 1} {
		n, err := formfactor.NewNucleon(nucleonSpec(t, widthScale))
		require.NoError(t, err)

		near(t, 1, n.FormFactor(0, formfactor.ProtonElectric), 1e-12)
		near(t, 0, n.FormFactor(0, formfactor.NeutronElectric), 1e-12)
		near(t, complex(muProton, 0), n.FormFactor(0, formfactor.ProtonMagnetic), 1e-12)
		near(t, complex(muNeutron, 0), n.FormFactor(0, formfactor.NeutronMagnetic), 1e-12)
		near(t, 1, n.FormFactor(0, formfactor.ProtonDirac), 1e-12)
		near(t, complex(muProton-1, 0), n.FormFactor(0, formfactor.ProtonPauli), 1e-12)
	}
}

func TestNucleon_Asymptotics(t *testing.T) {
	cases := []struct {
		sel  formfactor.Selector
		want float64
	}{
		{formfactor.ProtonDirac, 4},
		{formfactor.NeutronDirac, 4},
		{formfactor.ProtonPauli, 8},
		{formfactor.NeutronPauli, 8},
	}
	far := []struct {
		t   complex128
		eps float64
	}{
		{-1e4, 0.01},
		{-1e6, 1e-3},
	}

	for _, widthScale := range []float64{0, 1} {
		n, err := formfactor.NewNucleon(nucleonSpec(t, widthScale))
		require.NoError(t, err)

		for _, f := range far {
			for _, tc := range cases {
				ratio := cmplx.Abs(n.FormFactor(f.t, tc.sel)) / cmplx.Abs(n.FormFactor(2*f.t, tc.sel))
				assert.InEpsilon(t, tc.want, ratio, f.eps, "%v width=%g t=%v", tc.sel, widthScale, f.t)
			}

			f1s, f1v, f2s, f2v := n.Channels()
			for name, ch := range map[string]*formfactor.Channel{"f1s": f1s, "f1v": f1v} {
				assert.InEpsilon(t, 4, cmplx.Abs(ch.AtT(f.t))/cmplx.Abs(ch.AtT(2*f.t)), f.eps, "%s width=%g", name, widthScale)
			}
			for name, ch := range map[string]*formfactor.Channel{"f2s": f2s, "f2v": f2v} {
				assert.InEpsilon(t, 8, cmplx.Abs(ch.AtT(f.t))/cmplx.Abs(ch.AtT(2*f.t)), f.eps, "%s width=%g", name, widthScale)
			}
		}
	}
}

func TestNucleon_RealityAndSachs(t *testing.T) {
	n, err := formfactor.NewNucleon(nucleonSpec(t, 1))
	require.NoError(t, err)
	for sel := formfactor.ProtonElectric; sel <= formfactor.NeutronPauli; sel++ {
		require.True(t, n.Supports(sel))
		for _, tt := range offCut {
			near(t, cmplx.Conj(n.FormFactor(tt, sel)), n.FormFactor(cmplx.Conj(tt), sel), 1e-12, "%v t=%v", sel, tt)
		}
	}
	assert.False(t, n.Supports(formfactor.Charged))

	tt := complex(-0.7, 0)
	f1 := n.FormFactor(tt, formfactor.ProtonDirac)
	f2 := n.FormFactor(tt, formfactor.ProtonPauli)
	near(t, f1+tt/complex(4*protonMass*protonMass, 0)*f2, n.FormFactor(tt, formfactor.ProtonElectric), 1e-14)
	near(t, f1+f2, n.FormFactor(tt, formfactor.ProtonMagnetic), 1e-14)
}

func TestSelector_ParseRoundTrip(t *testing.T) {
	for sel := formfactor.Charged; sel <= formfactor.NeutronPauli; sel++ {
		got, err := formfactor.ParseSelector(sel.String())
		require.NoError(t, err)
		assert.Equal(t, sel, got)
	}
	_, err := formfactor.ParseSelector("strange")
	assert.ErrorIs(t, err, formfactor.ErrUnsupportedSelector)
	assert.Equal(t, "Selector(42)", formfactor.Selector(42).String())
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}

	return s
}
