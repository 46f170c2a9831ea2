// SPDX-License-Identifier: MIT

package parameters

import (
	"fmt"
	"math"
	"strings"
)

type modelKind int

const (
	kindKaon modelKind = iota + 1
	kindPion
	kindNucleon
)

// Channel names used in t_0_* / t_in_* parameters.
const (
	isoscalar      = "isoscalar"
	isovector      = "isovector"
	diracIsoscalar = "dirac_isoscalar"
	diracIsovector = "dirac_isovector"
	pauliIsoscalar = "pauli_isoscalar"
	pauliIsovector = "pauli_isovector"
	phiChargedName = "a_phi_charged"
	phiNeutralName = "a_phi_neutral"
)

// Nucleon constants carried by the nucleon family; always fixed.
const (
	ProtonMassName    = "proton_mass"
	NeutronMassName   = "neutron_mass"
	ProtonMomentName  = "proton_magnetic_moment"
	NeutronMomentName = "neutron_magnetic_moment"
)

// Pion pole/zero factor parameters.
const (
	WPoleRe = "w_pole_re"
	WPoleIm = "w_pole_im"
	WZeroRe = "w_zero_re"
	WZeroIm = "w_zero_im"
)

// familyDef is the static layout of one family.
type familyDef struct {
	kind     modelKind
	scalar   []string // isoscalar resonance keys, in channel order
	vector   []string // isovector resonance keys, in channel order
	phiRatio bool
	// pinned lists resonances whose mass and width are always fixed.
	pinned []string
}

var (
	kaonScalar    = []string{Omega, Phi, OmegaPrime, PhiPrime, OmegaDoublePrime, PhiDoublePrime}
	kaonVector    = []string{Rho, RhoPrime, RhoDoublePrime, RhoTriplePrime}
	nucleonScalar = []string{Omega, Phi, OmegaPrime, PhiPrime, OmegaDoublePrime}
)

var families = map[Family]familyDef{
	Kaon: {kind: kindKaon, scalar: kaonScalar, vector: kaonVector},
	KaonB: {
		kind:   kindKaon,
		scalar: []string{Omega, Phi, PhiPrime, OmegaDoublePrime, PhiDoublePrime},
		vector: []string{Rho, RhoPrime, RhoDoublePrime},
	},
	KaonSimplified: {
		kind:   kindKaon,
		scalar: []string{Phi, OmegaPrime, PhiPrime, OmegaDoublePrime, PhiDoublePrime},
		vector: []string{RhoPrime, RhoDoublePrime, RhoTriplePrime},
	},
	KaonFixedRhoOmega: {kind: kindKaon, scalar: kaonScalar, vector: kaonVector, pinned: []string{Rho, Omega}},
	KaonFixedSelected: {kind: kindKaon, scalar: kaonScalar, vector: kaonVector, pinned: []string{Rho, Omega, Phi}},
	KaonPhiRatio:      {kind: kindKaon, scalar: kaonScalar, vector: kaonVector, phiRatio: true},
	Pion:              {kind: kindPion, vector: kaonVector},
	Nucleon:           {kind: kindNucleon, scalar: nucleonScalar, vector: kaonVector},
}

func lookupFamily(f Family) (familyDef, error) {
	d, ok := families[f]
	if !ok {
		return familyDef{}, fmt.Errorf("%q: %w", string(f), ErrUnknownFamily)
	}

	return d, nil
}

// channels returns the (t₀, t_in) channel names of the family.
func (d familyDef) channels() []string {
	switch d.kind {
	case kindKaon:
		return []string{isoscalar, isovector}
	case kindPion:
		return []string{isovector}
	default:
		return []string{diracIsoscalar, diracIsovector, pauliIsoscalar, pauliIsovector}
	}
}

// freeCoefficients returns the a_* names of one channel: every resonance but
// the last `solved` ones.
func freeCoefficients(prefix string, keys []string, solved int, phiRatio bool) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys[:len(keys)-solved] {
		if phiRatio && key == Phi {
			out = append(out, phiChargedName, phiNeutralName)
			continue
		}
		out = append(out, prefix+key)
	}

	return out
}

// layout returns the ordered parameter names and the always-fixed subset.
func (d familyDef) layout() (names, alwaysFixed []string) {
	for _, ch := range d.channels() {
		names = append(names, thresholdPrefix+ch)
		alwaysFixed = append(alwaysFixed, thresholdPrefix+ch)
	}
	for _, ch := range d.channels() {
		names = append(names, inelasticPrefix+ch)
	}

	switch d.kind {
	case kindKaon:
		names = append(names, freeCoefficients(coefficientPrefix, d.scalar, 1, d.phiRatio)...)
		names = append(names, freeCoefficients(coefficientPrefix, d.vector, 1, false)...)
	case kindPion:
		names = append(names, freeCoefficients(coefficientPrefix, d.vector, 1, false)...)
	case kindNucleon:
		names = append(names, freeCoefficients(coefficientPrefix+"dirac_", d.scalar, 2, false)...)
		names = append(names, freeCoefficients(coefficientPrefix+"dirac_", d.vector, 2, false)...)
		names = append(names, freeCoefficients(coefficientPrefix+"pauli_", d.scalar, 3, false)...)
		names = append(names, freeCoefficients(coefficientPrefix+"pauli_", d.vector, 3, false)...)
	}

	for _, key := range append(append([]string{}, d.scalar...), d.vector...) {
		names = append(names, MassName(key), WidthName(key))
	}
	for _, key := range d.pinned {
		alwaysFixed = append(alwaysFixed, MassName(key), WidthName(key))
	}

	switch d.kind {
	case kindPion:
		names = append(names, WPoleRe, WPoleIm, WZeroRe, WZeroIm)
	case kindNucleon:
		constants := []string{ProtonMassName, NeutronMassName, ProtonMomentName, NeutronMomentName}
		names = append(names, constants...)
		alwaysFixed = append(alwaysFixed, constants...)
	}

	return names, alwaysFixed
}

// threshold returns t₀ for a channel name.
func threshold(channel string, m Masses) float64 {
	if strings.HasSuffix(channel, isoscalar) {
		return m.IsoscalarThreshold()
	}

	return m.IsovectorThreshold()
}

// Defaults builds a family with catalog starting values. Thresholds are
// derived from masses; nucleon moments start at the PDG values and can be
// changed with Set. Only always-fixed parameters start fixed.
func Defaults(family Family, masses Masses) (*Vector, error) {
	d, err := lookupFamily(family)
	if err != nil {
		return nil, err
	}
	names, alwaysFixed := d.layout()
	params := make([]Parameter, len(names))
	for i, name := range names {
		params[i] = Parameter{Name: name, Value: d.initialValue(name, masses)}
	}

	return newVector(family, params, alwaysFixed)
}

func (d familyDef) initialValue(name string, m Masses) float64 {
	switch {
	case strings.HasPrefix(name, thresholdPrefix):
		return threshold(strings.TrimPrefix(name, thresholdPrefix), m)
	case strings.HasPrefix(name, massPrefix):
		return catalog[strings.TrimPrefix(name, massPrefix)].mass
	case strings.HasPrefix(name, widthPrefix):
		return catalog[strings.TrimPrefix(name, widthPrefix)].width
	case name == ProtonMassName:
		return m.Proton
	case name == NeutronMassName:
		return m.Neutron
	case name == ProtonMomentName:
		return DefaultProtonMoment
	case name == NeutronMomentName:
		return DefaultNeutronMoment
	}
	if v, ok := initialValues[d.kind][name]; ok {
		return v
	}
	if IsCoefficientName(name) {
		return defaultCoefficient
	}

	return math.NaN()
}

// FromList rebuilds a vector of the given family from an ordered list, e.g.
// one produced by ToList or read from disk. Names must match the family
// layout exactly; always-fixed parameters are fixed regardless of their flag.
//
// Errors:
//   - ErrUnknownFamily, ErrNameMismatch, ErrDuplicateName.
func FromList(family Family, list []Parameter) (*Vector, error) {
	d, err := lookupFamily(family)
	if err != nil {
		return nil, err
	}
	names, alwaysFixed := d.layout()
	if len(names) != len(list) {
		return nil, fmt.Errorf("%s: %d parameters, want %d: %w", family, len(list), len(names), ErrNameMismatch)
	}
	for i, p := range list {
		if p.Name != names[i] {
			return nil, fmt.Errorf("%s: position %d is %q, want %q: %w", family, i, p.Name, names[i], ErrNameMismatch)
		}
	}

	return newVector(family, list, alwaysFixed)
}

// Layout returns the ordered parameter names of a family.
func Layout(family Family) ([]string, error) {
	d, err := lookupFamily(family)
	if err != nil {
		return nil, err
	}
	names, _ := d.layout()

	return names, nil
}
