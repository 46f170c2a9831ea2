// SPDX-License-Identifier: MIT

package lsq

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/lh7326/UA-model-sub000/matrix"
)

// epsilon is the float64 machine epsilon.
const epsilon = 2.220446049250313e-16

// covariance returns (JᵀJ)⁺ through the SVD J = U·S·Vᵀ:
//
//	cov = V·diag(1/s_k²)·Vᵀ  over s_k > ε·max(m, n)·s_0
//
// Discarded directions contribute nothing (pseudo-inverse). If the
// factorization fails every entry is +Inf.
func covariance(jac *matrix.Dense) [][]float64 {
	m, n := jac.Shape()
	flat := make([]float64, 0, m*n)
	for _, row := range jac.ToSlices() {
		flat = append(flat, row...)
	}

	cov := make([][]float64, n)
	for i := range cov {
		cov[i] = make([]float64, n)
	}

	var svd mat.SVD
	if !svd.Factorize(mat.NewDense(m, n, flat), mat.SVDThinV) {
		for i := range cov {
			for j := range cov[i] {
				cov[i][j] = math.Inf(1)
			}
		}

		return cov
	}
	s := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)

	threshold := epsilon * float64(max(m, n)) * s[0]
	for k, sk := range s {
		if sk <= threshold {
			continue
		}
		w := 1 / (sk * sk)
		for i := 0; i < n; i++ {
			vik := v.At(i, k)
			if vik == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				cov[i][j] += w * vik * v.At(j, k)
			}
		}
	}

	return cov
}
