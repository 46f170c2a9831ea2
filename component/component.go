// SPDX-License-Identifier: MIT

package component

import (
	"fmt"
	"math/cmplx"

	"github.com/lh7326/UA-model-sub000/conformal"
)

// Variant tells which unphysical sheets carry the poles of a component.
type Variant int

const (
	// VariantA: t₀ ≤ m² < t_in, poles on sheets 2 and 4.
	VariantA Variant = iota + 1
	// VariantB: m² ≥ t_in, poles on sheets 3 and 4.
	VariantB
)

// String implements fmt.Stringer.
func (v Variant) String() string {
	switch v {
	case VariantA:
		return "A"
	case VariantB:
		return "B"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// thresholdTolerance is the relative slack allowed for m² below t₀, so a mass
// of exactly √t₀ survives rounding.
const thresholdTolerance = 1e-12

// Component is one resonance term of a channel sum, evaluated in the W-plane.
type Component struct {
	bp      conformal.BranchPoints
	res     Resonance
	variant Variant
	wN      complex128
	poles   [4]complex128
	normAsy complex128 // 1 − W_N²
	normPol [4]complex128
}

// New builds the component for r on the channel described by bp.
//
// Errors:
//   - ErrInvalidResonance (m ≤ 0, Γ < 0, non-finite).
//   - ErrBelowThreshold (m² < t₀ beyond rounding).
func New(bp conformal.BranchPoints, r Resonance) (*Component, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	m2 := r.MassSquared()
	if m2 < bp.T0()*(1-thresholdTolerance) {
		return nil, fmt.Errorf("%v with t0=%g: %w", r, bp.T0(), ErrBelowThreshold)
	}

	c := &Component{bp: bp, res: r, wN: bp.Normalization()}
	tR := r.Pole()
	var p complex128
	if m2 < bp.TIn() {
		c.variant = VariantA
		p = bp.FromSheet(tR, conformal.Sheet2)
		c.poles = [4]complex128{p, cmplx.Conj(p), 1 / p, 1 / cmplx.Conj(p)}
	} else {
		c.variant = VariantB
		p = bp.FromSheet(tR, conformal.Sheet3)
		c.poles = [4]complex128{p, cmplx.Conj(p), -p, -cmplx.Conj(p)}
	}
	c.normAsy = 1 - c.wN*c.wN
	for k, pk := range c.poles {
		c.normPol[k] = c.wN - pk
	}

	return c, nil
}

// At evaluates C(W).
func (c *Component) At(w complex128) complex128 {
	out := c.AsymptoticFactor(w)
	for k, pk := range c.poles {
		out *= c.normPol[k] / (w - pk)
	}

	return out
}

// AtT evaluates the component at t on the physical sheet.
func (c *Component) AtT(t complex128) complex128 {
	return c.At(c.bp.FromSheet(t, conformal.Sheet1))
}

// AsymptoticFactor returns [(1 − W²)/(1 − W_N²)]², which vanishes at W = ±1.
func (c *Component) AsymptoticFactor(w complex128) complex128 {
	f := (1 - w*w) / c.normAsy

	return f * f
}

// Variant reports the pole placement chosen at construction.
func (c *Component) Variant() Variant { return c.variant }

// Resonance returns the resonance the component was built from.
func (c *Component) Resonance() Resonance { return c.res }

// BranchPoints returns the channel's branch points.
func (c *Component) BranchPoints() conformal.BranchPoints { return c.bp }

// Poles returns the four W-plane poles.
func (c *Component) Poles() [4]complex128 { return c.poles }
