// SPDX-License-Identifier: MIT
package formfactor_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lh7326/UA-model-sub000/component"
	"github.com/lh7326/UA-model-sub000/conformal"
	"github.com/lh7326/UA-model-sub000/formfactor"
)

const (
	pionMass   = 0.13957039
	protonMass = 0.93827208816
	neutron    = 0.93956542052
	muProton   = 2.792847
	muNeutron  = -1.913043
)

var (
	isoscalarT0 = 9 * pionMass * pionMass
	isovectorT0 = 4 * pionMass * pionMass
)

func near(t *testing.T, want, got complex128, tol float64, msgAndArgs ...interface{}) {
	t.Helper()
	assert.LessOrEqual(t, cmplx.Abs(got-want), tol*math.Max(1, cmplx.Abs(want)), msgAndArgs...)
}

func branch(t testing.TB, t0, tIn float64) conformal.BranchPoints {
	t.Helper()
	bp, err := conformal.NewBranchPoints(t0, tIn)
	require.NoError(t, err)

	return bp
}

// resonances builds a list with the given masses and a common width scale.
func resonances(widthScale float64, masses, widths []float64) []component.Resonance {
	out := make([]component.Resonance, len(masses))
	for i := range masses {
		out[i] = component.Resonance{Mass: masses[i], Width: widthScale * widths[i]}
	}

	return out
}

var (
	// ω, φ, ω′, φ′, ω″, φ″
	kaonScalarMasses = []float64{0.78266, 1.019461, 1.41, 1.68, 1.67, 2.175}
	kaonScalarWidths = []float64{0.00868, 0.004249, 0.29, 0.15, 0.315, 0.061}
	// ρ, ρ′, ρ″, ρ‴
	vectorMasses = []float64{0.77526, 1.465, 1.72, 2.15}
	vectorWidths = []float64{0.1474, 0.4, 0.25, 0.3}
	// ω, φ, ω′, φ′, ω″ (nucleon isoscalar)
	nucleonScalarMasses = []float64{0.78266, 1.019461, 1.41, 1.68, 2.1}
	nucleonScalarWidths = []float64{0.00868, 0.004249, 0.29, 0.15, 0.315}
)

func kaonSpec(t testing.TB, widthScale float64) formfactor.KaonSpec {
	t.Helper()

	return formfactor.KaonSpec{
		Isoscalar: formfactor.ChannelSpec{
			BranchPoints: branch(t, isoscalarT0, 1.6),
			Resonances:   resonances(widthScale, kaonScalarMasses, kaonScalarWidths),
			Coefficients: []float64{0.21, 0.15, 0.09, 0.07, 0.12},
		},
		Isovector: formfactor.ChannelSpec{
			BranchPoints: branch(t, isovectorT0, 1.4),
			Resonances:   resonances(widthScale, vectorMasses, vectorWidths),
			Coefficients: []float64{0.34, 0.03, 0.08},
		},
	}
}

func nucleonSpec(t testing.TB, widthScale float64) formfactor.NucleonSpec {
	t.Helper()

	return formfactor.NucleonSpec{
		DiracIsoscalar: formfactor.ChannelSpec{
			BranchPoints: branch(t, isoscalarT0, 1.5),
			Resonances:   resonances(widthScale, nucleonScalarMasses, nucleonScalarWidths),
			Coefficients: []float64{0.8, -0.3, 0.2},
		},
		DiracIsovector: formfactor.ChannelSpec{
			BranchPoints: branch(t, isovectorT0, 1.2),
			Resonances:   resonances(widthScale, vectorMasses, vectorWidths),
			Coefficients: []float64{1.1, -0.2},
		},
		PauliIsoscalar: formfactor.ChannelSpec{
			BranchPoints: branch(t, isoscalarT0, 2.0),
			Resonances:   resonances(widthScale, nucleonScalarMasses, nucleonScalarWidths),
			Coefficients: []float64{0.1, -0.2},
		},
		PauliIsovector: formfactor.ChannelSpec{
			BranchPoints: branch(t, isovectorT0, 1.4),
			Resonances:   resonances(widthScale, vectorMasses, vectorWidths),
			Coefficients: []float64{2.0},
		},
		ProtonMoment:  muProton,
		NeutronMoment: muNeutron,
		ProtonMass:    protonMass,
		NeutronMass:   neutron,
	}
}

// offCut is a set of t values away from [t₀, ∞).
var offCut = []complex128{-4, -0.3, 0.01, complex(0.5, 0.2), complex(2, -1.5), complex(-10, 3), complex(30, 0.5)}
