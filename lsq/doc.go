// SPDX-License-Identifier: MIT

// Package lsq fits a vector-valued model to data by weighted least squares
// under box constraints.
//
// CurveFit minimises χ²(x) = Σ ((f(x)_i − y_i)/σ_i)² subject to
// lower ≤ x ≤ upper. Two methods are available:
//
//   - MethodLevenbergMarquardt (default): damped Gauss-Newton steps on the
//     normal equations, each trial point projected back into the box. The
//     Jacobian is a forward finite difference whose step turns around at an
//     active upper bound.
//   - MethodNelderMead: gonum's derivative-free simplex on χ² with the
//     parameters clipped into the box before every evaluation.
//
// Both stop with ErrMaxEvaluations once χ² has been evaluated more than
// MaxEvaluations times. Finite-difference Jacobian columns are not charged
// to that budget. The covariance of the estimate is the SVD
// pseudo-inverse of JᵀJ for the σ-weighted Jacobian J at the solution, with
// absolute σ (no rescaling by the reduced χ²).
package lsq
