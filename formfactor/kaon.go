// SPDX-License-Identifier: MIT

package formfactor

import "math/cmplx"

// KaonNorm is the value of each kaon channel at t = 0.
const KaonNorm = 0.5

// KaonSpec describes a kaon model. Norm fields of the channel specs are
// ignored; both channels are normalized to KaonNorm.
type KaonSpec struct {
	Isoscalar ChannelSpec
	Isovector ChannelSpec
	// NeutralIsoscalarCoefficients, when non-nil, gives the neutral kaon its own
	// free isoscalar coefficients (same resonances and branch points).
	NeutralIsoscalarCoefficients []float64
}

// Kaon is the charged/neutral kaon model F = F_S ± F_V.
type Kaon struct {
	isoscalar        *Channel
	neutralIsoscalar *Channel
	isovector        *Channel
}

var _ Model = (*Kaon)(nil)

// NewKaon builds both channels, each with a single normalization constraint.
func NewKaon(spec KaonSpec) (*Kaon, error) {
	s := spec.Isoscalar
	s.Norm = KaonNorm
	isoscalar, err := NewChannel(s, NormalizationOnly...)
	if err != nil {
		return nil, err
	}
	v := spec.Isovector
	v.Norm = KaonNorm
	isovector, err := NewChannel(v, NormalizationOnly...)
	if err != nil {
		return nil, err
	}

	k := &Kaon{isoscalar: isoscalar, neutralIsoscalar: isoscalar, isovector: isovector}
	if spec.NeutralIsoscalarCoefficients != nil {
		s.Coefficients = spec.NeutralIsoscalarCoefficients
		if k.neutralIsoscalar, err = NewChannel(s, NormalizationOnly...); err != nil {
			return nil, err
		}
	}

	return k, nil
}

// FormFactor implements Model for Charged and Neutral.
func (k *Kaon) FormFactor(t complex128, sel Selector) complex128 {
	switch sel {
	case Charged:
		return k.isoscalar.AtT(t) + k.isovector.AtT(t)
	case Neutral:
		return k.neutralIsoscalar.AtT(t) - k.isovector.AtT(t)
	default:
		return cmplx.NaN()
	}
}

// Supports implements Model.
func (k *Kaon) Supports(sel Selector) bool { return sel == Charged || sel == Neutral }

// Isoscalar returns the isoscalar channel for the given selector.
func (k *Kaon) Isoscalar(sel Selector) *Channel {
	if sel == Neutral {
		return k.neutralIsoscalar
	}

	return k.isoscalar
}

// Isovector returns the isovector channel.
func (k *Kaon) Isovector() *Channel { return k.isovector }
