// SPDX-License-Identifier: MIT

package formfactor

import "math/cmplx"

// NucleonSpec describes the nucleon model. Channel Norm fields are ignored;
// the normalizations follow from the magnetic moments:
//
//	F1s(0) = F1v(0) = ½
//	F2s(0) = (κp + κn)/2,  F2v(0) = (κp − κn)/2,  κp = μp − 1,  κn = μn
type NucleonSpec struct {
	DiracIsoscalar ChannelSpec
	DiracIsovector ChannelSpec
	PauliIsoscalar ChannelSpec
	PauliIsovector ChannelSpec

	ProtonMoment  float64 // μp in nuclear magnetons
	NeutronMoment float64 // μn in nuclear magnetons
	ProtonMass    float64
	NeutronMass   float64
}

// Nucleon is the proton/neutron model. Dirac channels fall off as 1/t²,
// Pauli channels as 1/t³, for any widths.
type Nucleon struct {
	f1s, f1v, f2s, f2v *Channel
	protonMass         float64
	neutronMass        float64
}

var _ Model = (*Nucleon)(nil)

// NewNucleon builds the four channels. Dirac channels carry the
// DiracAsymptotics constraints, Pauli channels PauliAsymptotics.
func NewNucleon(spec NucleonSpec) (*Nucleon, error) {
	kp := spec.ProtonMoment - 1
	kn := spec.NeutronMoment

	build := func(cs ChannelSpec, norm float64, cons []Constraint) (*Channel, error) {
		cs.Norm = norm
		return NewChannel(cs, cons...)
	}

	n := &Nucleon{protonMass: spec.ProtonMass, neutronMass: spec.NeutronMass}
	var err error
	if n.f1s, err = build(spec.DiracIsoscalar, 0.5, DiracAsymptotics); err != nil {
		return nil, err
	}
	if n.f1v, err = build(spec.DiracIsovector, 0.5, DiracAsymptotics); err != nil {
		return nil, err
	}
	if n.f2s, err = build(spec.PauliIsoscalar, (kp+kn)/2, PauliAsymptotics); err != nil {
		return nil, err
	}
	if n.f2v, err = build(spec.PauliIsovector, (kp-kn)/2, PauliAsymptotics); err != nil {
		return nil, err
	}

	return n, nil
}

// FormFactor implements Model for the nucleon selectors.
func (n *Nucleon) FormFactor(t complex128, sel Selector) complex128 {
	switch sel {
	case ProtonDirac:
		return n.f1s.AtT(t) + n.f1v.AtT(t)
	case NeutronDirac:
		return n.f1s.AtT(t) - n.f1v.AtT(t)
	case ProtonPauli:
		return n.f2s.AtT(t) + n.f2v.AtT(t)
	case NeutronPauli:
		return n.f2s.AtT(t) - n.f2v.AtT(t)
	case ProtonElectric:
		return sachsElectric(t, n.protonMass, n.FormFactor(t, ProtonDirac), n.FormFactor(t, ProtonPauli))
	case NeutronElectric:
		return sachsElectric(t, n.neutronMass, n.FormFactor(t, NeutronDirac), n.FormFactor(t, NeutronPauli))
	case ProtonMagnetic:
		return n.FormFactor(t, ProtonDirac) + n.FormFactor(t, ProtonPauli)
	case NeutronMagnetic:
		return n.FormFactor(t, NeutronDirac) + n.FormFactor(t, NeutronPauli)
	default:
		return cmplx.NaN()
	}
}

// sachsElectric returns G_E = F1 + t/(4m²)·F2.
func sachsElectric(t complex128, mass float64, f1, f2 complex128) complex128 {
	return f1 + t/complex(4*mass*mass, 0)*f2
}

// Supports implements Model.
func (n *Nucleon) Supports(sel Selector) bool {
	return sel >= ProtonElectric && sel <= NeutronPauli
}

// Channels returns F1s, F1v, F2s and F2v.
func (n *Nucleon) Channels() (f1s, f1v, f2s, f2v *Channel) {
	return n.f1s, n.f1v, n.f2s, n.f2v
}
