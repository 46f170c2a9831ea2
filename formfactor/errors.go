// SPDX-License-Identifier: MIT

package formfactor

import "errors"

var (
	// ErrCoefficientCount indicates that the number of free coefficients does
	// not equal len(resonances) − len(constraints).
	ErrCoefficientCount = errors.New("formfactor: wrong number of coefficients")

	// ErrConstraintOrder indicates constraints that are not a prefix of
	// [Normalization, MassSquaredSum, MassQuarticSum].
	ErrConstraintOrder = errors.New("formfactor: constraints out of order")

	// ErrNoResonances indicates an empty channel.
	ErrNoResonances = errors.New("formfactor: channel has no resonances")

	// ErrDegenerateConstraints indicates that the constraint system cannot be
	// solved, typically because two solved resonances share a mass.
	ErrDegenerateConstraints = errors.New("formfactor: degenerate constraint system")

	// ErrUnsupportedSelector is returned by Evaluate for a selector the model
	// does not provide.
	ErrUnsupportedSelector = errors.New("formfactor: unsupported selector")
)
