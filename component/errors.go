// SPDX-License-Identifier: MIT

package component

import "errors"

var (
	// ErrBelowThreshold is returned when the resonance mass squared lies below t₀.
	ErrBelowThreshold = errors.New("component: resonance below threshold")

	// ErrInvalidResonance is returned for a non-positive mass, a negative
	// width, or non-finite values.
	ErrInvalidResonance = errors.New("component: invalid resonance")
)
