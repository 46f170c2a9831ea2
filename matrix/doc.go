// Package matrix offers a small dense linear-algebra kernel for the fitter.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set.
//   - Transpose, MatVec and Gram (AᵀA) kernels with *Dense fast paths.
//   - LU factorization with partial pivoting and Solve.
//
// The sizes seen in practice are small (tens of free parameters, a handful of
// constraint rows), so the kernels favor determinism and clear error surfaces
// over blocking or parallelism.
//
// Every kernel validates its inputs and returns the sentinels from errors.go,
// wrapped with an operation tag. Match them with errors.Is.
package matrix
