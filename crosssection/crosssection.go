// SPDX-License-Identifier: MIT

package crosssection

import (
	"fmt"
	"math"
	"math/cmplx"
)

// FormFactorFunc is a form factor with its selector already bound.
type FormFactorFunc func(t complex128) complex128

// Constants are the physical constants entering the cross sections.
type Constants struct {
	Alpha     float64 // fine-structure constant
	HCSquared float64 // (ℏc)², GeV²·nb for nanobarns
}

// Validate checks that both constants are positive and finite.
func (c Constants) Validate() error {
	if !(c.Alpha > 0) || !(c.HCSquared > 0) || math.IsInf(c.Alpha, 0) || math.IsInf(c.HCSquared, 0) {
		return fmt.Errorf("alpha=%g, hc²=%g: %w", c.Alpha, c.HCSquared, ErrInvalidConstants)
	}

	return nil
}

func validateMass(mass float64) error {
	if !(mass > 0) || math.IsInf(mass, 0) {
		return fmt.Errorf("m=%g: %w", mass, ErrInvalidMass)
	}

	return nil
}

// beta returns √(1 − 4m²/|t|) on the principal branch; it is imaginary below
// threshold.
func beta(t, mass float64) complex128 {
	return cmplx.Sqrt(complex(1-4*mass*mass/math.Abs(t), 0))
}

// ScalarMeson is σ(e⁺e⁻ → M M̄) for a spin-0 meson.
type ScalarMeson struct {
	mass float64
	c    Constants
	ff   FormFactorFunc
}

// NewScalarMeson validates the inputs.
//
// Errors:
//   - ErrInvalidMass, ErrInvalidConstants, ErrNilFormFactor.
func NewScalarMeson(mass float64, c Constants, ff FormFactorFunc) (*ScalarMeson, error) {
	if err := validateMass(mass); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if ff == nil {
		return nil, ErrNilFormFactor
	}

	return &ScalarMeson{mass: mass, c: c, ff: ff}, nil
}

// At returns σ(t). t = 0 yields complex infinity.
func (s *ScalarMeson) At(t float64) complex128 {
	at := math.Abs(t)
	if at == 0 {
		return cmplx.Inf()
	}
	b := beta(t, s.mass)
	f := cmplx.Abs(s.ff(complex(t, 0)))
	pref := s.c.HCSquared * math.Pi * s.c.Alpha * s.c.Alpha / (3 * at) * f * f

	return complex(pref, 0) * b * b * b
}

// Mass returns the meson mass.
func (s *ScalarMeson) Mass() float64 { return s.mass }

// NucleonPair is the Born cross section σ(e⁺e⁻ → N N̄).
type NucleonPair struct {
	mass     float64
	c        Constants
	electric FormFactorFunc
	magnetic FormFactorFunc
}

// NewNucleonPair validates the inputs.
//
// Errors:
//   - ErrInvalidMass, ErrInvalidConstants, ErrNilFormFactor.
func NewNucleonPair(mass float64, c Constants, electric, magnetic FormFactorFunc) (*NucleonPair, error) {
	if err := validateMass(mass); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if electric == nil || magnetic == nil {
		return nil, ErrNilFormFactor
	}

	return &NucleonPair{mass: mass, c: c, electric: electric, magnetic: magnetic}, nil
}

// At returns σ(t). t = 0 yields complex infinity.
func (n *NucleonPair) At(t float64) complex128 {
	at := math.Abs(t)
	if at == 0 {
		return cmplx.Inf()
	}
	tc := complex(t, 0)
	ge := cmplx.Abs(n.electric(tc))
	gm := cmplx.Abs(n.magnetic(tc))
	pref := n.c.HCSquared * 4 * math.Pi * n.c.Alpha * n.c.Alpha / (3 * at)
	shape := gm*gm + 2*n.mass*n.mass/at*ge*ge

	return complex(pref*shape, 0) * beta(t, n.mass)
}

// Mass returns the nucleon mass.
func (n *NucleonPair) Mass() float64 { return n.mass }

// EffectiveFormFactor returns |G_eff| from a measured σ, the quantity usually
// quoted in timelike nucleon analyses:
//
//	|G_eff|² = σ / (σ_pt · (1 + 2m²/|t|)),  σ_pt = (ℏc)²·4πα²β/(3|t|).
//
// Below threshold it returns NaN.
func (n *NucleonPair) EffectiveFormFactor(t, sigma float64) float64 {
	at := math.Abs(t)
	if at <= 4*n.mass*n.mass {
		return math.NaN()
	}
	b := real(beta(t, n.mass))
	pt := n.c.HCSquared * 4 * math.Pi * n.c.Alpha * n.c.Alpha * b / (3 * at)

	return math.Sqrt(sigma / (pt * (1 + 2*n.mass*n.mass/at)))
}
