// SPDX-License-Identifier: MIT

package lsq

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// simplexStallIterations is how many major iterations without a χ²
// improvement end a Nelder-Mead run.
const simplexStallIterations = 100

// nelderMead minimises χ² with gonum's simplex. Points outside the box are
// clipped before evaluation, so the objective is flat beyond the bounds.
// Non-finite model output counts as +Inf χ².
func (p *problem) nelderMead(x0 []float64, o Options) (*Result, error) {
	r := make([]float64, p.m)
	if _, err := p.residuals(x0, r); err != nil {
		return nil, err
	}
	// gonum enforces the budget itself.
	p.limited = false

	xc := make([]float64, p.n)
	objective := func(x []float64) float64 {
		copy(xc, x)
		p.project(xc)
		chi2, err := p.residuals(xc, r)
		if err != nil {
			return math.Inf(1)
		}

		return chi2
	}

	settings := &optimize.Settings{
		FuncEvaluations: max(1, o.MaxEvaluations-1),
		Converger: &optimize.FunctionConverge{
			Absolute:   o.FTol * o.FTol,
			Relative:   o.FTol,
			Iterations: simplexStallIterations,
		},
	}
	out, err := optimize.Minimize(optimize.Problem{Func: objective}, x0, settings, &optimize.NelderMead{})
	if out != nil && out.Status == optimize.FunctionEvaluationLimit {
		return nil, fmt.Errorf("after %d evaluations: %w", p.nfev, ErrMaxEvaluations)
	}
	if err != nil {
		return nil, fmt.Errorf("nelder-mead: %w", err)
	}
	if math.IsInf(out.Location.F, 1) {
		return nil, errors.Join(ErrNonFinite, fmt.Errorf("nelder-mead status %v", out.Status))
	}

	x := append([]float64(nil), out.Location.X...)
	p.project(x)

	return &Result{
		X:           x,
		Cost:        out.Location.F,
		Evaluations: p.nfev,
		Iterations:  out.Stats.MajorIterations,
		Status:      StatusSimplex,
	}, nil
}
