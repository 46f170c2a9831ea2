// SPDX-License-Identifier: MIT

package lsq

import (
	"errors"
	"fmt"
	"math"

	"github.com/lh7326/UA-model-sub000/matrix"
)

// Func evaluates the model at params and writes one prediction per datapoint
// into out. len(out) always equals the number of datapoints.
type Func func(params []float64, out []float64)

// Status tells why a successful fit stopped.
type Status int

const (
	// StatusFTol means the relative χ² reduction fell below FTol.
	StatusFTol Status = iota + 1
	// StatusXTol means the relative step fell below XTol.
	StatusXTol
	// StatusGTol means the projected gradient fell below GTol.
	StatusGTol
	// StatusStalled means no damped step reduced χ² any more.
	StatusStalled
	// StatusSimplex means the Nelder-Mead run converged.
	StatusSimplex
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusFTol:
		return "ftol"
	case StatusXTol:
		return "xtol"
	case StatusGTol:
		return "gtol"
	case StatusStalled:
		return "stalled"
	case StatusSimplex:
		return "simplex"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the outcome of a successful fit.
type Result struct {
	X           []float64   // best parameters, inside the box
	Cost        float64     // χ² at X (not reduced)
	Covariance  [][]float64 // len(X)×len(X); +Inf entries when the SVD fails
	Evaluations int         // residual evaluations; Jacobian columns are not counted
	Iterations  int
	Status      Status
}

// Errors returns √diag(Covariance).
func (r *Result) Errors() []float64 {
	out := make([]float64, len(r.Covariance))
	for i := range r.Covariance {
		out[i] = math.Sqrt(r.Covariance[i][i])
	}

	return out
}

const (
	initialLambda = 1e-3
	maxLambda     = 1e16
	minLambda     = 1e-15
)

// problem holds the validated inputs of one fit and counts evaluations.
type problem struct {
	f            Func
	y, sigma     []float64
	lower, upper []float64
	m, n         int
	maxfev       int
	nfev         int
	limited      bool
	out          []float64
}

// residuals is eval charged against the evaluation budget.
func (p *problem) residuals(x, r []float64) (float64, error) {
	if p.limited && p.nfev >= p.maxfev {
		return 0, fmt.Errorf("after %d evaluations: %w", p.nfev, ErrMaxEvaluations)
	}
	p.nfev++

	return p.eval(x, r)
}

// eval writes r_i = (f(x)_i − y_i)/σ_i and returns χ².
func (p *problem) eval(x, r []float64) (float64, error) {
	p.f(x, p.out)
	var chi2 float64
	for i := 0; i < p.m; i++ {
		r[i] = (p.out[i] - p.y[i]) / p.sigma[i]
		if math.IsNaN(r[i]) || math.IsInf(r[i], 0) {
			return 0, fmt.Errorf("point %d: %w", i, ErrNonFinite)
		}
		chi2 += r[i] * r[i]
	}

	return chi2, nil
}

// jacobian returns the m×n forward-difference Jacobian of the residuals at x.
// The step is √ε·max(1, |x_j|) and points downwards when x_j + h would leave
// the box through the upper bound.
func (p *problem) jacobian(x, r []float64) (*matrix.Dense, error) {
	rows := make([][]float64, p.m)
	for i := range rows {
		rows[i] = make([]float64, p.n)
	}
	xh := append([]float64(nil), x...)
	rh := make([]float64, p.m)
	sqrtEps := math.Sqrt(epsilon)
	for j := 0; j < p.n; j++ {
		h := sqrtEps * math.Max(1, math.Abs(x[j]))
		if x[j]+h > p.upper[j] {
			h = -h
		}
		xh[j] = x[j] + h
		if _, err := p.eval(xh, rh); err != nil {
			return nil, err
		}
		xh[j] = x[j]
		for i := 0; i < p.m; i++ {
			rows[i][j] = (rh[i] - r[i]) / h
		}
	}

	return matrix.NewDenseFrom(rows)
}

func (p *problem) project(x []float64) {
	for j := range x {
		x[j] = math.Min(math.Max(x[j], p.lower[j]), p.upper[j])
	}
}

// CurveFit fits f to (y, σ) starting from x0 inside [lower, upper].
//
// Errors:
//   - ErrEmpty, ErrDimensionMismatch, ErrInvalidSigma, ErrInvalidBounds for bad input.
//   - ErrNonFinite when the model is not finite at x0.
//   - ErrMaxEvaluations when the budget runs out.
//   - ErrUnknownMethod.
func CurveFit(f Func, x0, lower, upper, y, sigma []float64, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p, err := newProblem(f, x0, lower, upper, y, sigma, o.MaxEvaluations)
	if err != nil {
		return nil, err
	}

	var res *Result
	switch o.Method {
	case MethodLevenbergMarquardt:
		res, err = p.levenbergMarquardt(x0, o)
	case MethodNelderMead:
		res, err = p.nelderMead(x0, o)
	default:
		return nil, fmt.Errorf("%v: %w", o.Method, ErrUnknownMethod)
	}
	if err != nil {
		return nil, err
	}

	r := make([]float64, p.m)
	if _, err = p.eval(res.X, r); err != nil {
		return nil, err
	}
	jac, err := p.jacobian(res.X, r)
	if err != nil {
		return nil, err
	}
	res.Covariance = covariance(jac)

	return res, nil
}

func newProblem(f Func, x0, lower, upper, y, sigma []float64, maxfev int) (*problem, error) {
	n, m := len(x0), len(y)
	if f == nil || n == 0 || m == 0 {
		return nil, ErrEmpty
	}
	if len(lower) != n || len(upper) != n {
		return nil, fmt.Errorf("x0=%d, lower=%d, upper=%d: %w", n, len(lower), len(upper), ErrDimensionMismatch)
	}
	if len(sigma) != m {
		return nil, fmt.Errorf("y=%d, sigma=%d: %w", m, len(sigma), ErrDimensionMismatch)
	}
	for i, s := range sigma {
		if !(s > 0) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("sigma[%d]=%g: %w", i, s, ErrInvalidSigma)
		}
	}
	for j := 0; j < n; j++ {
		if math.IsNaN(lower[j]) || math.IsNaN(upper[j]) || lower[j] > upper[j] ||
			!(x0[j] >= lower[j] && x0[j] <= upper[j]) {
			return nil, fmt.Errorf("x0[%d]=%g not in [%g, %g]: %w", j, x0[j], lower[j], upper[j], ErrInvalidBounds)
		}
	}

	return &problem{
		f: f, y: y, sigma: sigma, lower: lower, upper: upper,
		m: m, n: n, maxfev: maxfev, limited: true,
		out: make([]float64, m),
	}, nil
}

// blocked reports whether a descent step along −g must leave x_j on its bound.
func (p *problem) blocked(x, g []float64, j int) bool {
	return (x[j] <= p.lower[j] && g[j] > 0) || (x[j] >= p.upper[j] && g[j] < 0)
}

// levenbergMarquardt runs the projected, damped Gauss-Newton iteration.
//
// Implementation:
//   - Stage 1: J and g = Jᵀr at the current point; coordinates pinned on a
//     bound with g pointing outwards are frozen for this iteration.
//   - Stage 2: solve (A + λ·diag A)δ = −g on the free coordinates, project
//     x + δ into the box, accept on a χ² decrease (λ/10) or retry (λ·10).
func (p *problem) levenbergMarquardt(x0 []float64, o Options) (*Result, error) {
	x := append([]float64(nil), x0...)
	r := make([]float64, p.m)
	cost, err := p.residuals(x, r)
	if err != nil {
		return nil, err
	}
	xt := make([]float64, p.n)
	rt := make([]float64, p.m)
	lambda := initialLambda
	res := &Result{}

	for {
		res.Iterations++
		jac, err := p.jacobian(x, r)
		if err != nil {
			return nil, err
		}
		a, g, err := normalEquations(jac, r)
		if err != nil {
			return nil, err
		}

		free := make([]int, 0, p.n)
		var gnorm float64
		for j := 0; j < p.n; j++ {
			if p.blocked(x, g, j) {
				continue
			}
			free = append(free, j)
			gnorm = math.Max(gnorm, math.Abs(g[j]))
		}
		if len(free) == 0 || gnorm <= o.GTol {
			res.Status = StatusGTol

			break
		}

		status, accepted := Status(0), false
		for !accepted {
			delta, err := dampedStep(a, g, free, lambda)
			if err != nil && !errors.Is(err, matrix.ErrSingular) {
				return nil, err
			}
			if err == nil {
				copy(xt, x)
				for k, j := range free {
					xt[j] += delta[k]
				}
				p.project(xt)
				costT, err := p.residuals(xt, rt)
				switch {
				case errors.Is(err, ErrMaxEvaluations):
					return nil, err
				case err == nil && costT < cost:
					accepted = true
					step, xn := distance(xt, x), norm(xt)
					if cost-costT <= o.FTol*cost {
						status = StatusFTol
					} else if step <= o.XTol*(o.XTol+xn) {
						status = StatusXTol
					}
					copy(x, xt)
					r, rt = rt, r
					cost = costT
					lambda = math.Max(lambda/10, minLambda)

					continue
				}
			}
			lambda *= 10
			if lambda > maxLambda {
				status = StatusStalled

				break
			}
		}
		if status != 0 {
			res.Status = status

			break
		}
	}

	res.X = x
	res.Cost = cost
	res.Evaluations = p.nfev

	return res, nil
}

// normalEquations returns A = JᵀJ and g = Jᵀr.
func normalEquations(jac *matrix.Dense, r []float64) (*matrix.Dense, []float64, error) {
	a, err := matrix.Gram(jac)
	if err != nil {
		return nil, nil, err
	}
	jt, err := matrix.Transpose(jac)
	if err != nil {
		return nil, nil, err
	}
	g, err := matrix.MatVec(jt, r)
	if err != nil {
		return nil, nil, err
	}

	return a, g, nil
}

// dampedStep solves (A_ff + λ·diag A_ff)δ = −g_f over the free indices.
func dampedStep(a *matrix.Dense, g []float64, free []int, lambda float64) ([]float64, error) {
	k := len(free)
	rows := make([][]float64, k)
	rhs := make([]float64, k)
	for p, i := range free {
		rows[p] = make([]float64, k)
		for q, j := range free {
			v, err := a.At(i, j)
			if err != nil {
				return nil, err
			}
			rows[p][q] = v
		}
		d := rows[p][p]
		if d == 0 {
			d = 1
		}
		rows[p][p] += lambda * d
		rhs[p] = -g[i]
	}
	sys, err := matrix.NewDenseFrom(rows)
	if err != nil {
		return nil, err
	}

	return matrix.Solve(sys, rhs)
}

func norm(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v * v
	}

	return math.Sqrt(s)
}

func distance(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}

	return math.Sqrt(s)
}
