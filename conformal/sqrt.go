// SPDX-License-Identifier: MIT

package conformal

import (
	"math"
	"math/cmplx"
)

// CustomSqrt returns √z with the branch cut on the positive real axis.
// For z = r·e^{iφ} with φ taken in [0, 2π) it returns √r·e^{iφ/2}, so the
// result always lies in the closed upper half plane (excluding the negative
// real axis). Positive reals map to positive reals (the upper lip of the cut).
//
// cmplx.Sqrt puts its cut on the negative real axis and must not be used for
// the W-map.
func CustomSqrt(z complex128) complex128 {
	if z == 0 {
		return 0
	}
	phi := cmplx.Phase(z)
	if phi < 0 {
		phi += 2 * math.Pi
	}

	return cmplx.Rect(math.Sqrt(cmplx.Abs(z)), phi/2)
}
