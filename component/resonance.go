// SPDX-License-Identifier: MIT

package component

import (
	"fmt"
	"math"
)

// Resonance is a vector meson described by its mass and total decay width (GeV).
type Resonance struct {
	Mass  float64
	Width float64
}

// Pole returns t_R = (m − iΓ/2)².
func (r Resonance) Pole() complex128 {
	z := complex(r.Mass, -r.Width/2)

	return z * z
}

// MassSquared returns m².
func (r Resonance) MassSquared() float64 { return r.Mass * r.Mass }

// Validate checks m > 0, Γ ≥ 0 and finiteness.
func (r Resonance) Validate() error {
	if math.IsNaN(r.Mass) || math.IsInf(r.Mass, 0) || math.IsNaN(r.Width) || math.IsInf(r.Width, 0) {
		return fmt.Errorf("m=%g, Γ=%g: %w", r.Mass, r.Width, ErrInvalidResonance)
	}
	if r.Mass <= 0 || r.Width < 0 {
		return fmt.Errorf("m=%g, Γ=%g: %w", r.Mass, r.Width, ErrInvalidResonance)
	}

	return nil
}

// String implements fmt.Stringer.
func (r Resonance) String() string {
	return fmt.Sprintf("Resonance(m=%g, Γ=%g)", r.Mass, r.Width)
}

// VMD is the zero-width vector-meson-dominance propagator m²/(m² − t).
// It serves as an independent reference for the zero-width limit of Component.
func VMD(t complex128, mass float64) complex128 {
	m2 := complex(mass*mass, 0)

	return m2 / (m2 - t)
}
