// SPDX-License-Identifier: MIT

package task

import "errors"

var (
	// ErrTooFewPoints is returned when the dataset has no more points than
	// free parameters, so the reduced χ² is undefined.
	ErrTooFewPoints = errors.New("task: number of points must exceed number of free parameters")

	// ErrNoFreeParameters is returned when every parameter is fixed.
	ErrNoFreeParameters = errors.New("task: no free parameters")

	// ErrNilVector is returned when no parameter vector is given.
	ErrNilVector = errors.New("task: nil parameter vector")

	// ErrFamilyMismatch is returned for a meson dataset with a nucleon family
	// or the other way around.
	ErrFamilyMismatch = errors.New("task: dataset does not match the parameter family")

	// ErrAlreadyRun is returned when Run is called twice.
	ErrAlreadyRun = errors.New("task: already run")
)
