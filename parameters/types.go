// SPDX-License-Identifier: MIT

package parameters

import (
	"fmt"
	"math"
)

// Parameter is one named value with its fixed flag.
type Parameter struct {
	Name  string  `yaml:"name" json:"name"`
	Value float64 `yaml:"value" json:"value"`
	Fixed bool    `yaml:"fixed" json:"fixed"`
}

// Family tags a parameter layout and the model built from it.
type Family string

// Registered families.
const (
	Kaon              Family = "kaon"
	KaonB             Family = "kaon_b"
	KaonSimplified    Family = "kaon_simplified"
	KaonFixedRhoOmega Family = "kaon_fixed_rho_omega"
	KaonFixedSelected Family = "kaon_fixed_selected"
	KaonPhiRatio      Family = "kaon_phi_ratio"
	Pion              Family = "pion"
	Nucleon           Family = "nucleon"
)

// Families lists every registered family in a stable order.
var Families = []Family{Kaon, KaonB, KaonSimplified, KaonFixedRhoOmega, KaonFixedSelected, KaonPhiRatio, Pion, Nucleon}

// IsKaon reports whether the family builds a kaon model.
func (f Family) IsKaon() bool {
	d, ok := families[f]
	return ok && d.kind == kindKaon
}

// ParseFamily validates a family tag.
func ParseFamily(s string) (Family, error) {
	f := Family(s)
	if _, ok := families[f]; !ok {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownFamily)
	}

	return f, nil
}

// Masses are the particle masses (GeV) the thresholds are derived from.
type Masses struct {
	PionCharged float64 `yaml:"pion_charged"`
	KaonCharged float64 `yaml:"kaon_charged"`
	KaonNeutral float64 `yaml:"kaon_neutral"`
	Proton      float64 `yaml:"proton"`
	Neutron     float64 `yaml:"neutron"`
}

// DefaultMasses are PDG values.
var DefaultMasses = Masses{
	PionCharged: 0.13957039,
	KaonCharged: 0.493677,
	KaonNeutral: 0.497611,
	Proton:      0.93827208816,
	Neutron:     0.93956542052,
}

// Nucleon magnetic moments in nuclear magnetons.
const (
	DefaultProtonMoment  = 2.792847
	DefaultNeutronMoment = -1.913043
)

// IsoscalarThreshold is t₀ = (3m_π)².
func (m Masses) IsoscalarThreshold() float64 { return 9 * m.PionCharged * m.PionCharged }

// IsovectorThreshold is t₀ = (2m_π)².
func (m Masses) IsovectorThreshold() float64 { return 4 * m.PionCharged * m.PionCharged }

// Bound is a closed interval; infinite ends mean unbounded.
type Bound struct {
	Lower float64 `yaml:"lower"`
	Upper float64 `yaml:"upper"`
}

// Unbounded is (−∞, +∞).
var Unbounded = Bound{Lower: math.Inf(-1), Upper: math.Inf(1)}

// Contains reports lower ≤ x ≤ upper.
func (b Bound) Contains(x float64) bool { return x >= b.Lower && x <= b.Upper }

// StrictlyContains reports lower < x < upper, with infinite ends open.
func (b Bound) StrictlyContains(x float64) bool { return x > b.Lower && x < b.Upper }

// BoundsMode selects which bound map is active.
type BoundsMode int

const (
	// BoundsHandpicked intersects the hard constraints with physics windows.
	BoundsHandpicked BoundsMode = iota
	// BoundsMaximal applies only the hard constraints.
	BoundsMaximal
)

// String implements fmt.Stringer.
func (m BoundsMode) String() string {
	switch m {
	case BoundsHandpicked:
		return "handpicked"
	case BoundsMaximal:
		return "maximal"
	default:
		return fmt.Sprintf("BoundsMode(%d)", int(m))
	}
}

// ParseBoundsMode is the inverse of String.
func ParseBoundsMode(s string) (BoundsMode, error) {
	switch s {
	case "handpicked", "":
		return BoundsHandpicked, nil
	case "maximal":
		return BoundsMaximal, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownBoundsMode)
	}
}
