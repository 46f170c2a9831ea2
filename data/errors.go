// SPDX-License-Identifier: MIT

package data

import "errors"

var (
	// ErrColumnCount is returned for a table row with neither 3 nor 4 columns.
	ErrColumnCount = errors.New("data: table rows need 3 or 4 columns")

	// ErrMalformedNumber is returned when a table cell is not a finite number.
	ErrMalformedNumber = errors.New("data: malformed number")

	// ErrNonPositiveSigma is returned for a zero or negative combined uncertainty.
	ErrNonPositiveSigma = errors.New("data: uncertainty must be positive")

	// ErrLengthMismatch is returned when Points, Y and Sigma differ in length.
	ErrLengthMismatch = errors.New("data: points, values and uncertainties differ in length")

	// ErrInvalidNoise is returned by Synthesize for a negative or non-finite noise level.
	ErrInvalidNoise = errors.New("data: relative noise must be finite and non-negative")
)
