// SPDX-License-Identifier: MIT

package perturb

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/lh7326/UA-model-sub000/parameters"
)

// Default scales.
const (
	DefaultResonanceScale = 0.1
	DefaultOtherScale     = 0.3
)

// Options configures Perturb.
type Options struct {
	ResonanceScale float64               // scale for mass_* and decay_rate_*
	OtherScale     float64               // scale for all other parameters
	BoundsMode     parameters.BoundsMode // which bounds are active
	Rand           *rand.Rand            // randomness source; nil means RandFromSeed(0)
}

// Option is a functional option for Perturb.
type Option func(*Options)

// DefaultOptions returns the defaults used when no option is given.
func DefaultOptions() Options {
	return Options{
		ResonanceScale: DefaultResonanceScale,
		OtherScale:     DefaultOtherScale,
		BoundsMode:     parameters.BoundsHandpicked,
	}
}

// WithScales sets the resonance and other scales.
func WithScales(resonance, other float64) Option {
	return func(o *Options) {
		o.ResonanceScale = resonance
		o.OtherScale = other
	}
}

// WithBoundsMode selects the active bounds.
func WithBoundsMode(m parameters.BoundsMode) Option {
	return func(o *Options) { o.BoundsMode = m }
}

// WithRand sets the randomness source.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) { o.Rand = r }
}

// WithSeed is WithRand(RandFromSeed(seed)).
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Rand = RandFromSeed(seed) }
}

func validScale(s float64) bool { return s >= 0 && s < 1 }

// Perturb moves every free parameter of v in place. Fixed parameters are
// untouched and draw no random numbers.
//
// Errors:
//   - ErrNilVector, ErrInvalidScale.
func Perturb(v *parameters.Vector, opts ...Option) error {
	if v == nil {
		return ErrNilVector
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !validScale(o.ResonanceScale) || !validScale(o.OtherScale) {
		return fmt.Errorf("resonance=%g, other=%g: %w", o.ResonanceScale, o.OtherScale, ErrInvalidScale)
	}
	if o.Rand == nil {
		o.Rand = RandFromSeed(0)
	}

	names := v.FreeNames()
	values := v.FreeValues()
	lower, upper := v.FreeBounds(o.BoundsMode)
	for i, name := range names {
		s := o.OtherScale
		if parameters.IsResonanceName(name) {
			s = o.ResonanceScale
		}
		r := 2*o.Rand.Float64() - 1
		values[i] = Step(values[i], parameters.Bound{Lower: lower[i], Upper: upper[i]}, s, r)
	}

	return v.UpdateFreeValues(values)
}

// Step applies one perturbation p + s·r·Δ(r) for a given r ∈ [−1, 1).
func Step(p float64, b parameters.Bound, s, r float64) float64 {
	var delta float64
	switch {
	case r < 0 && !math.IsInf(b.Lower, -1):
		delta = p - b.Lower
	case r < 0:
		delta = -math.Abs(p) * (1 + s*math.Abs(r))
	case r > 0 && !math.IsInf(b.Upper, 1):
		delta = b.Upper - p
	case r > 0:
		delta = math.Abs(p) * (1 + s*math.Abs(r))
	}

	return p + s*r*delta
}
