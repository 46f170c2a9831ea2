// SPDX-License-Identifier: MIT

package task

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/lh7326/UA-model-sub000/crosssection"
	"github.com/lh7326/UA-model-sub000/data"
	"github.com/lh7326/UA-model-sub000/formfactor"
	"github.com/lh7326/UA-model-sub000/parameters"
)

// Kind tells which observables a task predicts.
type Kind int

const (
	// MesonCrossSection predicts σ(e⁺e⁻ → MM̄) or |F| per meson point.
	MesonCrossSection Kind = iota + 1
	// NucleonFormFactor predicts |G_E|, |G_M| or σ(e⁺e⁻ → NN̄) per nucleon point.
	NucleonFormFactor
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case MesonCrossSection:
		return "meson_cross_section"
	case NucleonFormFactor:
		return "nucleon_form_factor"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindOf returns the task kind for point type P.
func KindOf[P data.Point]() Kind {
	var zero P
	if _, ok := any(zero).(data.NucleonPoint); ok {
		return NucleonFormFactor
	}

	return MesonCrossSection
}

// Evaluator predicts the observable of a labeled point from a model.
type Evaluator struct {
	Model     formfactor.Model
	Family    parameters.Family
	Constants crosssection.Constants
	Masses    parameters.Masses
}

// Observe returns the real part of the predicted observable at p:
//   - meson cross-section point: σ with the charged or neutral form factor and
//     the matching meson mass;
//   - meson form-factor point: |F(t)|;
//   - nucleon cross-section point: σ(e⁺e⁻ → pp̄ or nn̄);
//   - nucleon form-factor point: |G_E(t)| or |G_M(t)|.
func Observe[P data.Point](e Evaluator, p P) (float64, error) {
	switch q := any(p).(type) {
	case data.MesonPoint:
		return e.meson(q)
	case data.NucleonPoint:
		return e.nucleon(q)
	default:
		return math.NaN(), fmt.Errorf("point %T: %w", p, ErrFamilyMismatch)
	}
}

func (e Evaluator) meson(p data.MesonPoint) (float64, error) {
	sel, mass := formfactor.Charged, e.Masses.PionCharged
	if e.Family.IsKaon() {
		mass = e.Masses.KaonCharged
		if !p.Charged {
			sel, mass = formfactor.Neutral, e.Masses.KaonNeutral
		}
	} else if !p.Charged {
		sel = formfactor.Neutral
	}
	if !p.CrossSection {
		f, err := formfactor.Evaluate(e.Model, complex(p.T, 0), sel)
		if err != nil {
			return math.NaN(), err
		}

		return cmplx.Abs(f), nil
	}
	if !e.Model.Supports(sel) {
		return math.NaN(), fmt.Errorf("%v: %w", sel, formfactor.ErrUnsupportedSelector)
	}
	xs, err := crosssection.NewScalarMeson(mass, e.Constants, crosssection.FormFactorFunc(formfactor.Func(e.Model, sel)))
	if err != nil {
		return math.NaN(), err
	}

	return real(xs.At(p.T)), nil
}

func (e Evaluator) nucleon(p data.NucleonPoint) (float64, error) {
	electric, magnetic, mass := formfactor.NeutronElectric, formfactor.NeutronMagnetic, e.Masses.Neutron
	if p.Proton {
		electric, magnetic, mass = formfactor.ProtonElectric, formfactor.ProtonMagnetic, e.Masses.Proton
	}
	if !p.CrossSection {
		sel := magnetic
		if p.Electric {
			sel = electric
		}
		f, err := formfactor.Evaluate(e.Model, complex(p.T, 0), sel)
		if err != nil {
			return math.NaN(), err
		}

		return cmplx.Abs(f), nil
	}
	if !e.Model.Supports(electric) {
		return math.NaN(), fmt.Errorf("%v: %w", electric, formfactor.ErrUnsupportedSelector)
	}
	xs, err := crosssection.NewNucleonPair(mass, e.Constants,
		crosssection.FormFactorFunc(formfactor.Func(e.Model, electric)),
		crosssection.FormFactorFunc(formfactor.Func(e.Model, magnetic)))
	if err != nil {
		return math.NaN(), err
	}

	return real(xs.At(p.T)), nil
}

// Cost returns Σ((ŷ_i − y_i)/σ_i)² of v on ds without fitting.
func Cost[P data.Point](v *parameters.Vector, ds data.Dataset[P], c crosssection.Constants, m parameters.Masses) (float64, error) {
	model, err := v.BuildModel()
	if err != nil {
		return math.NaN(), err
	}
	ev := Evaluator{Model: model, Family: v.Family(), Constants: c, Masses: m}
	var sum float64
	for i, p := range ds.Points {
		y, err := Observe(ev, p)
		if err != nil {
			return math.NaN(), fmt.Errorf("point %d: %w", i, err)
		}
		d := (y - ds.Y[i]) / ds.Sigma[i]
		sum += d * d
	}

	return sum, nil
}
