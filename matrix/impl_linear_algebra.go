// SPDX-License-Identifier: MIT
// Package matrix provides the linear-algebra kernels used by the fitter:
// transpose, matrix-vector product, Gram matrix, LU with partial pivoting and
// linear solves.
//
// Notes:
//   - All kernels validate through validators.go and wrap sentinels with an
//     operation tag via matrixErrorf.
//   - Generic Matrix inputs are materialized into *Dense once (asDense), so the
//     inner loops always run on flat slices.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial value for accumulations and substitutions.
const ZeroSum = 0.0

// ZeroPivot is the sentinel for detecting an exactly singular pivot.
const ZeroPivot = 0.0

// Operation name constants for unified error wrapping.
const (
	opTranspose = "Transpose"
	opMatVec    = "MatVec"
	opGram      = "Gram"
	opLU        = "LU"
	opSolve     = "Solve"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// asDense returns m itself when it is a *Dense, or a flat copy otherwise.
// Complexity: O(1) for *Dense, O(r*c) for other implementations.
func asDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	var i, j int
	var v float64
	for i = 0; i < out.r; i++ {
		for j = 0; j < out.c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			out.data[i*out.c+j] = v
		}
	}

	return out, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Complexity: O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(d.c, d.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < d.r; i++ {
		for j = 0; j < d.c; j++ {
			res.data[j*d.r+i] = d.data[i*d.c+j]
		}
	}

	return res, nil
}

// MatVec computes y = m·x.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(x) != Cols()).
//
// Complexity: O(r*c).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, d.r)
	var i, j int
	var sum float64
	for i = 0; i < d.r; i++ {
		sum = ZeroSum
		row := i * d.c
		for j = 0; j < d.c; j++ {
			sum += d.data[row+j] * x[j]
		}
		y[i] = sum
	}

	return y, nil
}

// Gram computes AᵀA without materializing Aᵀ. The result is exactly symmetric.
// Complexity: O(r*c²).
func Gram(a Matrix) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opGram, err)
	}
	d, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opGram, err)
	}
	res, err := NewDense(d.c, d.c)
	if err != nil {
		return nil, matrixErrorf(opGram, err)
	}
	var i, j, k int
	var sum float64
	for i = 0; i < d.c; i++ {
		for j = i; j < d.c; j++ {
			sum = ZeroSum
			for k = 0; k < d.r; k++ {
				sum += d.data[k*d.c+i] * d.data[k*d.c+j]
			}
			res.data[i*d.c+j] = sum
			res.data[j*d.c+i] = sum
		}
	}

	return res, nil
}

// LUFactors holds a packed LU factorization P·A = L·U.
// L has a unit diagonal and is stored below the diagonal of lu; U is stored on
// and above it. perm[i] is the original row placed at position i.
type LUFactors struct {
	n    int
	lu   []float64
	perm []int
}

// LU factorizes a square matrix with partial (row) pivoting.
//
// Implementation:
//   - Stage 1: Validate square; copy A into a packed buffer.
//   - Stage 2: For each column k pick the row with max |a_ik| (i ≥ k), swap,
//     then eliminate below the pivot storing multipliers in place.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrSingular (zero pivot after pivoting),
//     ErrNaNInf (non-finite input).
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func LU(m Matrix) (*LUFactors, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	n := d.r
	f := &LUFactors{n: n, lu: make([]float64, n*n), perm: make([]int, n)}
	copy(f.lu, d.data)
	for i := range f.perm {
		f.perm[i] = i
	}
	for _, v := range f.lu {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, matrixErrorf(opLU, ErrNaNInf)
		}
	}

	var i, j, k, p int
	var maxAbs, pivot, factor float64
	for k = 0; k < n; k++ {
		// Partial pivoting: largest magnitude in column k.
		p = k
		maxAbs = math.Abs(f.lu[k*n+k])
		for i = k + 1; i < n; i++ {
			if v := math.Abs(f.lu[i*n+k]); v > maxAbs {
				maxAbs = v
				p = i
			}
		}
		if maxAbs == ZeroPivot {
			return nil, matrixErrorf(opLU, ErrSingular)
		}
		if p != k {
			for j = 0; j < n; j++ {
				f.lu[k*n+j], f.lu[p*n+j] = f.lu[p*n+j], f.lu[k*n+j]
			}
			f.perm[k], f.perm[p] = f.perm[p], f.perm[k]
		}
		pivot = f.lu[k*n+k]
		for i = k + 1; i < n; i++ {
			factor = f.lu[i*n+k] / pivot
			f.lu[i*n+k] = factor
			if factor == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				f.lu[i*n+j] -= factor * f.lu[k*n+j]
			}
		}
	}

	return f, nil
}

// SolveVec solves A·x = b using the factorization (forward then backward substitution).
//
// Errors:
//   - ErrDimensionMismatch (len(b) != n).
//
// Complexity: O(n^2).
func (f *LUFactors) SolveVec(b []float64) ([]float64, error) {
	if err := ValidateVecLen(b, f.n); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	n := f.n
	x := make([]float64, n)
	var i, k int
	var sum float64
	// Forward: L·y = P·b (unit diagonal).
	for i = 0; i < n; i++ {
		sum = b[f.perm[i]]
		for k = 0; k < i; k++ {
			sum -= f.lu[i*n+k] * x[k]
		}
		x[i] = sum
	}
	// Backward: U·x = y.
	for i = n - 1; i >= 0; i-- {
		sum = x[i]
		for k = i + 1; k < n; k++ {
			sum -= f.lu[i*n+k] * x[k]
		}
		x[i] = sum / f.lu[i*n+i]
	}

	return x, nil
}

// Solve solves the square system A·x = b.
//
// Errors:
//   - everything LU returns, plus ErrDimensionMismatch for a bad right-hand side.
//
// Complexity: O(n^3).
func Solve(a Matrix, b []float64) ([]float64, error) {
	f, err := LU(a)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	return f.SolveVec(b)
}
