// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lh7326/UA-model-sub000/lsq"
	"github.com/lh7326/UA-model-sub000/parameters"
	"github.com/lh7326/UA-model-sub000/perturb"
)

// Config is the schedule and the per-round settings of one pipeline run.
type Config struct {
	NFree          []int // free parameters per stage
	Iterations     []int // rounds per stage
	WarmupRounds   int   // first rounds with every resonance fixed
	PartialRounds  int   // first rounds fitted on a random half of the data
	FinalFullFit   bool
	Perturb        bool
	ResonanceScale float64
	OtherScale     float64
	ReportDir      string // empty: no files are written
	Seed           int64
	BoundsMode     parameters.BoundsMode
	MaxEvaluations int
	Method         lsq.Method
}

// DefaultConfig returns a one-stage schedule of three rounds with three free
// parameters, followed by a full fit.
func DefaultConfig() Config {
	return Config{
		NFree:          []int{3},
		Iterations:     []int{3},
		FinalFullFit:   true,
		ResonanceScale: perturb.DefaultResonanceScale,
		OtherScale:     perturb.DefaultOtherScale,
		Seed:           perturb.DefaultSeed,
		BoundsMode:     parameters.BoundsHandpicked,
		MaxEvaluations: lsq.DefaultMaxEvaluations,
		Method:         lsq.MethodLevenbergMarquardt,
	}
}

// Validate checks the schedule.
func (c Config) Validate() error {
	if len(c.NFree) == 0 || len(c.NFree) != len(c.Iterations) {
		return fmt.Errorf("n_free=%v, iterations=%v: %w", c.NFree, c.Iterations, ErrSchedule)
	}
	for i := range c.NFree {
		if c.NFree[i] <= 0 || c.Iterations[i] <= 0 {
			return fmt.Errorf("stage %d: n_free=%d, iterations=%d: %w", i, c.NFree[i], c.Iterations[i], ErrSchedule)
		}
	}
	if c.WarmupRounds < 0 || c.PartialRounds < 0 {
		return fmt.Errorf("warmup=%d, partial=%d: %w", c.WarmupRounds, c.PartialRounds, ErrSchedule)
	}
	if c.Perturb {
		if c.ResonanceScale < 0 || c.ResonanceScale >= 1 || c.OtherScale < 0 || c.OtherScale >= 1 {
			return fmt.Errorf("scales %g, %g: %w", c.ResonanceScale, c.OtherScale, perturb.ErrInvalidScale)
		}
	}

	return nil
}

// Rounds returns the total number of scheduled rounds.
func (c Config) Rounds() int {
	var n int
	for _, it := range c.Iterations {
		n += it
	}

	return n
}

// nFree returns the free-parameter count of round i.
func (c Config) nFree(round int) int {
	for s, it := range c.Iterations {
		if round < it {
			return c.NFree[s]
		}
		round -= it
	}

	return c.NFree[len(c.NFree)-1]
}

// Option configures a Pipeline.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
