// SPDX-License-Identifier: MIT

package task

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/lh7326/UA-model-sub000/crosssection"
	"github.com/lh7326/UA-model-sub000/data"
	"github.com/lh7326/UA-model-sub000/lsq"
	"github.com/lh7326/UA-model-sub000/parameters"
)

// Task is one named fit of a parameter vector to a dataset.
type Task[P data.Point] struct {
	name      string
	params    *parameters.Vector
	data      data.Dataset[P]
	constants crosssection.Constants
	masses    parameters.Masses
	opts      Options

	ran        bool
	failed     bool
	message    string
	chiSquared *float64
	free       []string
	covariance [][]float64
	errors     map[string]float64
	result     *lsq.Result
}

// New validates the inputs, applies the dataset masks and fix templates to a
// clone of v, and returns a task ready to Run.
//
// Errors:
//   - ErrNilVector, ErrFamilyMismatch.
//   - crosssection.ErrInvalidConstants, data.ErrLengthMismatch,
//     data.ErrNonPositiveSigma.
func New[P data.Point](name string, v *parameters.Vector, ds data.Dataset[P],
	c crosssection.Constants, m parameters.Masses, opts ...Option) (*Task[P], error) {
	if v == nil {
		return nil, ErrNilVector
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("task %q: %w", name, err)
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("task %q: %w", name, err)
	}
	if (KindOf[P]() == NucleonFormFactor) != (v.Family() == parameters.Nucleon) {
		return nil, fmt.Errorf("task %q: family %s with %v: %w", name, v.Family(), KindOf[P](), ErrFamilyMismatch)
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	t := &Task[P]{
		name:      name,
		params:    v.Clone(),
		data:      mask(ds, o),
		constants: c,
		masses:    m,
		opts:      o,
	}
	if o.FixResonances {
		if err := t.params.Fix(t.params.ResonanceNames()...); err != nil {
			return nil, err
		}
	}
	if o.FixCoefficients {
		if err := t.params.Fix(t.params.CoefficientNames()...); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func mask[P data.Point](ds data.Dataset[P], o Options) data.Dataset[P] {
	if o.ChargedOnly {
		ds = ds.Filter(func(p P) bool {
			switch q := any(p).(type) {
			case data.MesonPoint:
				return q.Charged
			case data.NucleonPoint:
				return q.Proton
			}

			return true
		})
	}
	if o.TimelikeOnly {
		ds = ds.Timelike()
	}
	if o.Below != nil {
		ds = ds.Below(*o.Below)
	}
	if o.RandomHalf != nil {
		ds = ds.RandomHalf(o.RandomHalf)
	}

	return ds
}

// Name returns the task name.
func (t *Task[P]) Name() string { return t.name }

// Kind returns the observable kind of the task.
func (t *Task[P]) Kind() Kind { return KindOf[P]() }

// Parameters returns the task's vector: fitted after a successful Run,
// otherwise as it was after the fix templates.
func (t *Task[P]) Parameters() *parameters.Vector { return t.params }

// Dataset returns the masked dataset the task fits.
func (t *Task[P]) Dataset() data.Dataset[P] { return t.data }

// Failed reports whether the optimizer failed.
func (t *Task[P]) Failed() bool { return t.failed }

// Message returns the recorded optimizer failure, or "".
func (t *Task[P]) Message() string { return t.message }

// ChiSquared returns the reduced χ² and whether a fit succeeded.
func (t *Task[P]) ChiSquared() (float64, bool) {
	if t.chiSquared == nil {
		return 0, false
	}

	return *t.chiSquared, true
}

func (t *Task[P]) evaluator() Evaluator {
	return Evaluator{Family: t.params.Family(), Constants: t.constants, Masses: t.masses}
}

// Predictor returns the model as an lsq.Func of the free values, in
// FreeValues order. A vector that cannot be built or a point that cannot be
// evaluated yields NaN.
func (t *Task[P]) Predictor() lsq.Func {
	work := t.params.Clone()
	ev := t.evaluator()

	return func(free, out []float64) {
		fill := func() {
			for i := range out {
				out[i] = math.NaN()
			}
		}
		if err := work.UpdateFreeValues(free); err != nil {
			fill()

			return
		}
		model, err := work.BuildModel()
		if err != nil {
			fill()

			return
		}
		ev.Model = model
		for i, p := range t.data.Points {
			y, err := Observe(ev, p)
			if err != nil {
				y = math.NaN()
			}
			out[i] = y
		}
	}
}

// Run performs the fit. ctx is only checked before the fit starts.
//
// Errors:
//   - ctx.Err(), ErrAlreadyRun, ErrNoFreeParameters, ErrTooFewPoints.
//   - lsq input errors.
//
// Optimizer failures are recorded instead (see Failed).
func (t *Task[P]) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.ran {
		return fmt.Errorf("task %q: %w", t.name, ErrAlreadyRun)
	}
	t.ran = true

	k, n := t.params.NumFree(), t.data.Len()
	if k == 0 {
		return fmt.Errorf("task %q: %w", t.name, ErrNoFreeParameters)
	}
	if n <= k {
		return fmt.Errorf("task %q: %d points, %d free: %w", t.name, n, k, ErrTooFewPoints)
	}

	log := t.opts.Logger.With(zap.String("task", t.name))
	t.free = t.params.FreeNames()
	lower, upper := t.params.FreeBounds(t.opts.BoundsMode)
	x0 := t.params.FreeValues()
	for i := range x0 {
		if c := math.Min(math.Max(x0[i], lower[i]), upper[i]); c != x0[i] {
			log.Warn("start value outside bounds, clipped",
				zap.String("parameter", t.free[i]), zap.Float64("value", x0[i]), zap.Float64("clipped", c))
			x0[i] = c
		}
	}
	log.Debug("fit started",
		zap.Int("points", n), zap.Int("free", k),
		zap.Stringer("method", t.opts.Method), zap.Stringer("bounds", t.opts.BoundsMode))

	res, err := lsq.CurveFit(t.Predictor(), x0, lower, upper, t.data.Y, t.data.Sigma,
		lsq.WithMethod(t.opts.Method), lsq.WithMaxEvaluations(t.opts.MaxEvaluations))
	if errors.Is(err, lsq.ErrMaxEvaluations) || errors.Is(err, lsq.ErrNonFinite) {
		t.failed = true
		t.message = err.Error()
		log.Warn("fit failed", zap.Error(err))

		return nil
	}
	if err != nil {
		return fmt.Errorf("task %q: %w", t.name, err)
	}
	if err = t.params.UpdateFreeValues(res.X); err != nil {
		return fmt.Errorf("task %q: %w", t.name, err)
	}

	chi2 := res.Cost / float64(n-k)
	t.chiSquared = &chi2
	t.result = res
	t.covariance = res.Covariance
	t.errors = make(map[string]float64, k)
	for i, e := range res.Errors() {
		t.errors[t.free[i]] = e
	}
	log.Info("fit finished",
		zap.Float64("chi_squared", chi2),
		zap.Int("evaluations", res.Evaluations),
		zap.Int("iterations", res.Iterations),
		zap.Stringer("status", res.Status))

	return nil
}
