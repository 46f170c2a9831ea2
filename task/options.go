// SPDX-License-Identifier: MIT

package task

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/lh7326/UA-model-sub000/lsq"
	"github.com/lh7326/UA-model-sub000/parameters"
)

// Options holds the pre-fit variants and solver settings of a Task.
type Options struct {
	ChargedOnly     bool       // mesons: charged points; nucleons: proton points
	TimelikeOnly    bool       // keep t > 0
	RandomHalf      *rand.Rand // non-nil: keep a random half of the points
	Below           *float64   // non-nil: keep t < *Below
	FixResonances   bool
	FixCoefficients bool
	BoundsMode      parameters.BoundsMode
	MaxEvaluations  int
	Method          lsq.Method
	Logger          *zap.Logger
}

// Option is a functional option for New.
type Option func(*Options)

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		BoundsMode:     parameters.BoundsHandpicked,
		MaxEvaluations: lsq.DefaultMaxEvaluations,
		Method:         lsq.MethodLevenbergMarquardt,
		Logger:         zap.NewNop(),
	}
}

// WithChargedOnly keeps only charged-meson (or proton) points.
func WithChargedOnly() Option { return func(o *Options) { o.ChargedOnly = true } }

// WithTimelikeOnly keeps only points with t > 0.
func WithTimelikeOnly() Option { return func(o *Options) { o.TimelikeOnly = true } }

// WithRandomHalf keeps a random half of the points drawn from rng.
func WithRandomHalf(rng *rand.Rand) Option {
	return func(o *Options) {
		if rng == nil {
			rng = rand.New(rand.NewSource(1))
		}
		o.RandomHalf = rng
	}
}

// WithBelow keeps only points with t < threshold.
func WithBelow(threshold float64) Option {
	return func(o *Options) { o.Below = &threshold }
}

// WithFixedResonances fixes every mass_* and decay_rate_* parameter.
func WithFixedResonances() Option { return func(o *Options) { o.FixResonances = true } }

// WithFixedCoefficients fixes every a_* parameter.
func WithFixedCoefficients() Option { return func(o *Options) { o.FixCoefficients = true } }

// WithBoundsMode selects the active parameter bounds.
func WithBoundsMode(m parameters.BoundsMode) Option {
	return func(o *Options) { o.BoundsMode = m }
}

// WithMaxEvaluations sets the model-evaluation budget of the fit.
func WithMaxEvaluations(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxEvaluations = n
		}
	}
}

// WithMethod selects the minimiser.
func WithMethod(m lsq.Method) Option { return func(o *Options) { o.Method = m } }

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
