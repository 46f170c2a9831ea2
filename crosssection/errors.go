// SPDX-License-Identifier: MIT

package crosssection

import "errors"

var (
	// ErrInvalidMass is returned for a non-positive or non-finite particle mass.
	ErrInvalidMass = errors.New("crosssection: invalid mass")

	// ErrInvalidConstants is returned when α or (ℏc)² is not positive.
	ErrInvalidConstants = errors.New("crosssection: invalid constants")

	// ErrNilFormFactor is returned when a form-factor function is missing.
	ErrNilFormFactor = errors.New("crosssection: nil form factor")
)
