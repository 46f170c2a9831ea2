// SPDX-License-Identifier: MIT

package lsq

import "errors"

var (
	// ErrMaxEvaluations is returned when the evaluation budget is exhausted.
	ErrMaxEvaluations = errors.New("lsq: maximum number of function evaluations exceeded")

	// ErrDimensionMismatch is returned for inconsistent slice lengths.
	ErrDimensionMismatch = errors.New("lsq: dimension mismatch")

	// ErrEmpty is returned when there are no parameters or no data.
	ErrEmpty = errors.New("lsq: no parameters or no data")

	// ErrInvalidBounds is returned for lower > upper or x0 outside the box.
	ErrInvalidBounds = errors.New("lsq: invalid bounds or x0 outside bounds")

	// ErrInvalidSigma is returned for a non-positive or non-finite uncertainty.
	ErrInvalidSigma = errors.New("lsq: uncertainties must be positive and finite")

	// ErrNonFinite is returned when the model yields NaN or ±Inf.
	ErrNonFinite = errors.New("lsq: model returned a non-finite value")

	// ErrUnknownMethod is returned for a Method outside the defined set.
	ErrUnknownMethod = errors.New("lsq: unknown method")
)
