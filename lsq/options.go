// SPDX-License-Identifier: MIT

package lsq

import "fmt"

// Method selects the minimiser.
type Method int

const (
	// MethodLevenbergMarquardt is the bounded Levenberg-Marquardt solver.
	MethodLevenbergMarquardt Method = iota
	// MethodNelderMead is gonum's Nelder-Mead simplex with clipping.
	MethodNelderMead
)

// String implements fmt.Stringer.
func (m Method) String() string {
	switch m {
	case MethodLevenbergMarquardt:
		return "levenberg_marquardt"
	case MethodNelderMead:
		return "nelder_mead"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// ParseMethod is the inverse of Method.String.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "levenberg_marquardt", "lm", "":
		return MethodLevenbergMarquardt, nil
	case "nelder_mead", "nm":
		return MethodNelderMead, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownMethod)
	}
}

// Defaults.
const (
	DefaultMaxEvaluations = 7000
	DefaultTolerance      = 1e-8
)

// Options configures CurveFit.
type Options struct {
	Method         Method
	MaxEvaluations int     // model calls allowed before ErrMaxEvaluations
	FTol           float64 // relative χ² reduction below which the fit stops
	XTol           float64 // relative step size below which the fit stops
	GTol           float64 // gradient norm below which the fit stops
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Method:         MethodLevenbergMarquardt,
		MaxEvaluations: DefaultMaxEvaluations,
		FTol:           DefaultTolerance,
		XTol:           DefaultTolerance,
		GTol:           DefaultTolerance,
	}
}

// WithMethod selects the minimiser.
func WithMethod(m Method) Option { return func(o *Options) { o.Method = m } }

// WithMaxEvaluations sets the evaluation budget; n ≤ 0 keeps the default.
func WithMaxEvaluations(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxEvaluations = n
		}
	}
}

// WithTolerances sets ftol, xtol and gtol at once.
func WithTolerances(ftol, xtol, gtol float64) Option {
	return func(o *Options) {
		o.FTol, o.XTol, o.GTol = ftol, xtol, gtol
	}
}
