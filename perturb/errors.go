// SPDX-License-Identifier: MIT

package perturb

import "errors"

var (
	// ErrInvalidScale is returned for a scale outside [0, 1).
	ErrInvalidScale = errors.New("perturb: scale must lie in [0, 1)")

	// ErrNilVector is returned when no vector is given.
	ErrNilVector = errors.New("perturb: nil vector")

	// ErrSampleSize is returned by Sample when k is negative or exceeds the population.
	ErrSampleSize = errors.New("perturb: invalid sample size")
)
