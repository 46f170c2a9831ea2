// SPDX-License-Identifier: MIT

package parameters

import (
	"fmt"

	"github.com/lh7326/UA-model-sub000/component"
	"github.com/lh7326/UA-model-sub000/conformal"
	"github.com/lh7326/UA-model-sub000/formfactor"
)

// BuildModel assembles the form-factor model for the current values.
//
// Errors:
//   - ErrUnknownFamily.
//   - conformal.ErrBranchOrder and friends for inconsistent thresholds.
//   - component.ErrBelowThreshold for a resonance below its channel threshold.
func (v *Vector) BuildModel() (formfactor.Model, error) {
	d, err := lookupFamily(v.family)
	if err != nil {
		return nil, err
	}
	switch d.kind {
	case kindKaon:
		return v.buildKaon(d)
	case kindPion:
		return v.buildPion(d)
	default:
		return v.buildNucleon(d)
	}
}

func (v *Vector) val(name string) float64 { return v.values[v.index[name]] }

func (v *Vector) vals(names []string) []float64 {
	out := make([]float64, len(names))
	for i, name := range names {
		out[i] = v.val(name)
	}

	return out
}

func (v *Vector) branchPoints(channel string) (conformal.BranchPoints, error) {
	bp, err := conformal.NewBranchPoints(v.val(thresholdPrefix+channel), v.val(inelasticPrefix+channel))
	if err != nil {
		return conformal.BranchPoints{}, fmt.Errorf("%s channel: %w", channel, err)
	}

	return bp, nil
}

func (v *Vector) resonances(keys []string) []component.Resonance {
	out := make([]component.Resonance, len(keys))
	for i, key := range keys {
		out[i] = component.Resonance{Mass: v.val(MassName(key)), Width: v.val(WidthName(key))}
	}

	return out
}

func (v *Vector) channelSpec(channel string, keys []string, coefficients []string) (formfactor.ChannelSpec, error) {
	bp, err := v.branchPoints(channel)
	if err != nil {
		return formfactor.ChannelSpec{}, err
	}

	return formfactor.ChannelSpec{
		BranchPoints: bp,
		Resonances:   v.resonances(keys),
		Coefficients: v.vals(coefficients),
	}, nil
}

func replaceName(names []string, from, to string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		if n == from {
			n = to
		}
		out[i] = n
	}

	return out
}

func (v *Vector) buildKaon(d familyDef) (formfactor.Model, error) {
	scalarNames := freeCoefficients(coefficientPrefix, d.scalar, 1, false)
	if d.phiRatio {
		scalarNames = replaceName(scalarNames, coefficientPrefix+Phi, phiChargedName)
	}
	s, err := v.channelSpec(isoscalar, d.scalar, scalarNames)
	if err != nil {
		return nil, err
	}
	vec, err := v.channelSpec(isovector, d.vector, freeCoefficients(coefficientPrefix, d.vector, 1, false))
	if err != nil {
		return nil, err
	}
	spec := formfactor.KaonSpec{Isoscalar: s, Isovector: vec}
	if d.phiRatio {
		spec.NeutralIsoscalarCoefficients = v.vals(replaceName(scalarNames, phiChargedName, phiNeutralName))
	}

	return formfactor.NewKaon(spec)
}

func (v *Vector) buildPion(d familyDef) (formfactor.Model, error) {
	vec, err := v.channelSpec(isovector, d.vector, freeCoefficients(coefficientPrefix, d.vector, 1, false))
	if err != nil {
		return nil, err
	}

	return formfactor.NewPion(formfactor.PionSpec{
		Isovector: vec,
		WPole:     complex(v.val(WPoleRe), v.val(WPoleIm)),
		WZero:     complex(v.val(WZeroRe), v.val(WZeroIm)),
	})
}

func (v *Vector) buildNucleon(d familyDef) (formfactor.Model, error) {
	type chDef struct {
		channel string
		keys    []string
		prefix  string
		solved  int
		out     *formfactor.ChannelSpec
	}
	var spec formfactor.NucleonSpec
	defs := []chDef{
		{diracIsoscalar, d.scalar, "dirac_", 2, &spec.DiracIsoscalar},
		{diracIsovector, d.vector, "dirac_", 2, &spec.DiracIsovector},
		{pauliIsoscalar, d.scalar, "pauli_", 3, &spec.PauliIsoscalar},
		{pauliIsovector, d.vector, "pauli_", 3, &spec.PauliIsovector},
	}
	for _, cd := range defs {
		cs, err := v.channelSpec(cd.channel, cd.keys, freeCoefficients(coefficientPrefix+cd.prefix, cd.keys, cd.solved, false))
		if err != nil {
			return nil, err
		}
		*cd.out = cs
	}
	spec.ProtonMass = v.val(ProtonMassName)
	spec.NeutronMass = v.val(NeutronMassName)
	spec.ProtonMoment = v.val(ProtonMomentName)
	spec.NeutronMoment = v.val(NeutronMomentName)

	return formfactor.NewNucleon(spec)
}
