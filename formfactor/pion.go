// SPDX-License-Identifier: MIT

package formfactor

import "math/cmplx"

// PionNorm is the isovector channel value at t = 0.
const PionNorm = 1.0

// PionSpec describes the pion model: one isovector channel and an extra
// pole/zero factor in the W-plane.
type PionSpec struct {
	Isovector ChannelSpec
	WPole     complex128
	WZero     complex128
}

// Pion is F(W) = F_V(W) · ((W − W_zero)/(W_N − W_zero)) · ((W_N − W_pole)/(W − W_pole)).
type Pion struct {
	isovector *Channel
	wN        complex128
	wPole     complex128
	wZero     complex128
}

var _ Model = (*Pion)(nil)

// NewPion builds the isovector channel normalized to PionNorm.
func NewPion(spec PionSpec) (*Pion, error) {
	v := spec.Isovector
	v.Norm = PionNorm
	ch, err := NewChannel(v, NormalizationOnly...)
	if err != nil {
		return nil, err
	}

	return &Pion{
		isovector: ch,
		wN:        v.BranchPoints.Normalization(),
		wPole:     spec.WPole,
		wZero:     spec.WZero,
	}, nil
}

// Factor returns the pole/zero factor at W; it equals 1 at W_N.
func (p *Pion) Factor(w complex128) complex128 {
	return (w - p.wZero) / (p.wN - p.wZero) * (p.wN - p.wPole) / (w - p.wPole)
}

// FormFactor implements Model for Charged.
func (p *Pion) FormFactor(t complex128, sel Selector) complex128 {
	if sel != Charged {
		return cmplx.NaN()
	}
	w := p.isovector.W(t)

	return p.isovector.At(w) * p.Factor(w)
}

// Supports implements Model.
func (p *Pion) Supports(sel Selector) bool { return sel == Charged }
