// SPDX-License-Identifier: MIT

package formfactor

import (
	"fmt"
	"math/cmplx"
)

// Selector picks the form factor a model returns.
type Selector int

const (
	// Charged is the charged meson, F_S + F_V.
	Charged Selector = iota + 1
	// Neutral is the neutral meson, F_S − F_V.
	Neutral
	// ProtonElectric is the proton Sachs G_E = F1 + t/(4m²)·F2.
	ProtonElectric
	// ProtonMagnetic is the proton Sachs G_M = F1 + F2.
	ProtonMagnetic
	// NeutronElectric is the neutron Sachs G_E.
	NeutronElectric
	// NeutronMagnetic is the neutron Sachs G_M.
	NeutronMagnetic
	// ProtonDirac is the proton F1 = F1s + F1v.
	ProtonDirac
	// ProtonPauli is the proton F2 = F2s + F2v.
	ProtonPauli
	// NeutronDirac is the neutron F1 = F1s − F1v.
	NeutronDirac
	// NeutronPauli is the neutron F2 = F2s − F2v.
	NeutronPauli
)

var selectorNames = map[Selector]string{
	Charged:         "charged",
	Neutral:         "neutral",
	ProtonElectric:  "proton_electric",
	ProtonMagnetic:  "proton_magnetic",
	NeutronElectric: "neutron_electric",
	NeutronMagnetic: "neutron_magnetic",
	ProtonDirac:     "proton_dirac",
	ProtonPauli:     "proton_pauli",
	NeutronDirac:    "neutron_dirac",
	NeutronPauli:    "neutron_pauli",
}

// String implements fmt.Stringer.
func (s Selector) String() string {
	if n, ok := selectorNames[s]; ok {
		return n
	}

	return fmt.Sprintf("Selector(%d)", int(s))
}

// ParseSelector is the inverse of String.
func ParseSelector(name string) (Selector, error) {
	for s, n := range selectorNames {
		if n == name {
			return s, nil
		}
	}

	return 0, fmt.Errorf("%q: %w", name, ErrUnsupportedSelector)
}

// Model is a form-factor model. FormFactor must only be called with a
// selector for which Supports is true; other selectors yield NaN.
type Model interface {
	FormFactor(t complex128, sel Selector) complex128
	Supports(sel Selector) bool
}

// Evaluate is FormFactor with the selector checked.
func Evaluate(m Model, t complex128, sel Selector) (complex128, error) {
	if !m.Supports(sel) {
		return cmplx.NaN(), fmt.Errorf("%T does not provide %v: %w", m, sel, ErrUnsupportedSelector)
	}

	return m.FormFactor(t, sel), nil
}

// Func binds a selector, giving the single-argument form used by the
// cross-section evaluators.
func Func(m Model, sel Selector) func(t complex128) complex128 {
	return func(t complex128) complex128 { return m.FormFactor(t, sel) }
}
