// SPDX-License-Identifier: MIT

package conformal

import "errors"

var (
	// ErrNegativeThreshold is returned when t₀ < 0.
	ErrNegativeThreshold = errors.New("conformal: t0 must be non-negative")

	// ErrBranchOrder is returned when t_in ≤ t₀.
	ErrBranchOrder = errors.New("conformal: t_in must exceed t0")

	// ErrNotFinite is returned when a branch point is NaN or infinite.
	ErrNotFinite = errors.New("conformal: branch point is not finite")
)
