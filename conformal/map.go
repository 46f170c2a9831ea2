// SPDX-License-Identifier: MIT

package conformal

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Sheet selects one of the four sheets of the Riemann surface of t.
type Sheet int

const (
	// Sheet1 is the physical sheet (left half of the unit disk).
	Sheet1 Sheet = iota + 1
	// Sheet2 is reached through the [t₀, t_in] cut (W → −W).
	Sheet2
	// Sheet3 is reached through the [t_in, ∞) cut (W → 1/W).
	Sheet3
	// Sheet4 is reached through both cuts (W → −1/W).
	Sheet4
)

// Sheets lists all sheets in order; handy for table tests and sweeps.
var Sheets = [...]Sheet{Sheet1, Sheet2, Sheet3, Sheet4}

// String implements fmt.Stringer.
func (s Sheet) String() string { return fmt.Sprintf("sheet%d", int(s)) }

// BranchPoints is the pair (t₀, t_in) defining one conformal map.
// The zero value is not usable; construct with NewBranchPoints.
type BranchPoints struct {
	t0      float64
	tIn     float64
	sqrtGap float64 // √(t_in − t₀), cached
}

// NewBranchPoints validates 0 ≤ t₀ < t_in and caches √(t_in − t₀).
//
// Errors:
//   - ErrNotFinite, ErrNegativeThreshold, ErrBranchOrder.
func NewBranchPoints(t0, tIn float64) (BranchPoints, error) {
	if math.IsNaN(t0) || math.IsInf(t0, 0) || math.IsNaN(tIn) || math.IsInf(tIn, 0) {
		return BranchPoints{}, ErrNotFinite
	}
	if t0 < 0 {
		return BranchPoints{}, fmt.Errorf("t0=%g: %w", t0, ErrNegativeThreshold)
	}
	if tIn <= t0 {
		return BranchPoints{}, fmt.Errorf("t0=%g, t_in=%g: %w", t0, tIn, ErrBranchOrder)
	}

	return BranchPoints{t0: t0, tIn: tIn, sqrtGap: math.Sqrt(tIn - t0)}, nil
}

// T0 returns the lowest branch point.
func (b BranchPoints) T0() float64 { return b.t0 }

// TIn returns the effective inelastic branch point.
func (b BranchPoints) TIn() float64 { return b.tIn }

// ToT maps W to t: t = t₀ − 4(t_in − t₀)/(W − 1/W)².
// W = 0 is the image of t₀; W = ±1 are the images of t = ∞ and yield
// complex infinity. The same t is returned for W, −W, 1/W and −1/W.
func (b BranchPoints) ToT(w complex128) complex128 {
	if w == 0 {
		return complex(b.t0, 0)
	}
	z := w - 1/w
	if z == 0 {
		return cmplx.Inf()
	}

	return complex(b.t0, 0) - complex(4*(b.tIn-b.t0), 0)/(z*z)
}

// FromSheet maps t to its W-image on the requested sheet.
//
// Implementation:
//   - Stage 1: q = √(t − t₀), u = (q + √(t_in−t₀))/(√(t_in−t₀) − q), v = √u,
//     all with CustomSqrt.
//   - Stage 2: W = i(v − 1)/(v + 1) (physical sheet), then apply the sheet
//     transform.
//
// At t = t_in exactly u diverges and the physical image is W = i.
// An unknown sheet is a programmer error and panics.
func (b BranchPoints) FromSheet(t complex128, sheet Sheet) complex128 {
	w := b.physical(t)
	switch sheet {
	case Sheet1:
		return w
	case Sheet2:
		return -w
	case Sheet3:
		return 1 / w
	case Sheet4:
		return -1 / w
	default:
		panic(fmt.Sprintf("conformal: unknown sheet %d", int(sheet)))
	}
}

// Normalization returns W_N, the physical-sheet image of t = 0.
func (b BranchPoints) Normalization() complex128 {
	return b.physical(0)
}

func (b BranchPoints) physical(t complex128) complex128 {
	q := CustomSqrt(t - complex(b.t0, 0))
	s := complex(b.sqrtGap, 0)
	den := s - q
	if den == 0 {
		return complex(0, 1)
	}
	v := CustomSqrt((q + s) / den)

	return complex(0, 1) * (v - 1) / (v + 1)
}
