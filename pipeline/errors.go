// SPDX-License-Identifier: MIT

package pipeline

import "errors"

var (
	// ErrSchedule is returned for an empty or inconsistent schedule.
	ErrSchedule = errors.New("pipeline: NFree and Iterations must be non-empty, equally long and positive")

	// ErrNilVector is returned when no start vector is given.
	ErrNilVector = errors.New("pipeline: nil parameter vector")

	// ErrNoSeeds is returned by RunSeeds for an empty seed list.
	ErrNoSeeds = errors.New("pipeline: no seeds")
)
