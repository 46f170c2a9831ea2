// SPDX-License-Identifier: MIT

package parameters

import "errors"

var (
	// ErrUnknownParameter is returned when a name is not part of the vector.
	ErrUnknownParameter = errors.New("parameters: unknown parameter")

	// ErrAlwaysFixed is returned when releasing a parameter that may never be free.
	ErrAlwaysFixed = errors.New("parameters: parameter is always fixed")

	// ErrLengthMismatch is returned by UpdateFreeValues for a wrong-length input.
	ErrLengthMismatch = errors.New("parameters: length mismatch")

	// ErrDuplicateName is returned when a vector would hold the same name twice.
	ErrDuplicateName = errors.New("parameters: duplicate name")

	// ErrNameMismatch is returned by FromList when the names do not match the
	// family layout.
	ErrNameMismatch = errors.New("parameters: names do not match family")

	// ErrUnknownFamily is returned for an unregistered family tag.
	ErrUnknownFamily = errors.New("parameters: unknown family")

	// ErrUnknownBoundsMode is returned when parsing a bounds mode fails.
	ErrUnknownBoundsMode = errors.New("parameters: unknown bounds mode")
)
