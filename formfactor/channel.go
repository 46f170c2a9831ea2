// SPDX-License-Identifier: MIT

package formfactor

import (
	"errors"
	"fmt"

	"github.com/lh7326/UA-model-sub000/component"
	"github.com/lh7326/UA-model-sub000/conformal"
	"github.com/lh7326/UA-model-sub000/matrix"
)

// Constraint is one linear condition on the coefficients of a channel.
type Constraint int

const (
	// Normalization fixes Σ a_r to the channel value at t = 0.
	Normalization Constraint = iota + 1
	// MassSquaredSum imposes Σ a_r m_r² = 0.
	MassSquaredSum
	// MassQuarticSum imposes Σ a_r m_r⁴ = 0.
	MassQuarticSum
)

// Preset constraint lists.
var (
	NormalizationOnly = []Constraint{Normalization}
	DiracAsymptotics  = []Constraint{Normalization, MassSquaredSum}
	PauliAsymptotics  = []Constraint{Normalization, MassSquaredSum, MassQuarticSum}
)

func (c Constraint) weight(r component.Resonance) float64 {
	m2 := r.MassSquared()
	switch c {
	case MassSquaredSum:
		return m2
	case MassQuarticSum:
		return m2 * m2
	default:
		return 1
	}
}

// ChannelSpec describes one isospin channel before its constrained
// coefficients are solved.
type ChannelSpec struct {
	BranchPoints conformal.BranchPoints
	Resonances   []component.Resonance
	// Coefficients holds the free coefficients, in resonance order. Its length
	// is len(Resonances) minus the number of constraints.
	Coefficients []float64
	// Norm is the channel value at t = 0.
	Norm float64
}

// Channel is Σ a_r C_r(W) with all coefficients resolved.
//
// A channel with k asymptotic constraints is evaluated in product form
//
//	C_1(W)···C_k(W) · Σ_{r>k} b_r C_r(W),  b_r = a_r Π_{j≤k} (m_j² − m_r²)/m_j²
//
// which equals the plain sum for zero widths and keeps the extra k powers of
// 1/t fall-off for any widths.
type Channel struct {
	bp           conformal.BranchPoints
	components   []*component.Component
	coefficients []float64
	anchors      int
	weights      []float64 // b_r for r ≥ anchors; nil for a plain sum
}

// NewChannel builds the components and solves the trailing coefficients.
//
// Implementation:
//   - Stage 1: validate counts and constraint order; build one component per
//     resonance (ErrBelowThreshold propagates).
//   - Stage 2: for k constraints, solve the k×k system in the last k
//     coefficients with matrix.Solve, moving the free terms to the right side.
//   - Stage 3: with asymptotic constraints, derive the product-form weights.
//
// Errors:
//   - ErrNoResonances, ErrConstraintOrder, ErrCoefficientCount,
//     ErrDegenerateConstraints, component.ErrBelowThreshold,
//     component.ErrInvalidResonance.
func NewChannel(spec ChannelSpec, constraints ...Constraint) (*Channel, error) {
	n := len(spec.Resonances)
	k := len(constraints)
	if n == 0 {
		return nil, ErrNoResonances
	}
	for i, c := range constraints {
		if c != Constraint(i+1) {
			return nil, fmt.Errorf("constraint %d is %d: %w", i, c, ErrConstraintOrder)
		}
	}
	if k > n || len(spec.Coefficients) != n-k {
		return nil, fmt.Errorf("%d resonances, %d constraints, %d coefficients: %w",
			n, k, len(spec.Coefficients), ErrCoefficientCount)
	}

	ch := &Channel{
		bp:           spec.BranchPoints,
		components:   make([]*component.Component, n),
		coefficients: make([]float64, n),
	}
	for i, r := range spec.Resonances {
		c, err := component.New(spec.BranchPoints, r)
		if err != nil {
			return nil, err
		}
		ch.components[i] = c
	}
	copy(ch.coefficients, spec.Coefficients)

	if k == 0 {
		return ch, nil
	}
	solved, err := solveConstraints(spec.Resonances, spec.Coefficients, spec.Norm, constraints)
	if err != nil {
		return nil, err
	}
	copy(ch.coefficients[n-k:], solved)
	ch.productForm(spec.Resonances, k-1)

	return ch, nil
}

// productForm derives the weights b_r of the product representation for
// `anchors` leading resonances.
func (ch *Channel) productForm(res []component.Resonance, anchors int) {
	if anchors < 1 {
		return
	}
	ch.anchors = anchors
	ch.weights = make([]float64, len(res)-anchors)
	var j int
	for r := anchors; r < len(res); r++ {
		b := ch.coefficients[r]
		for j = 0; j < anchors; j++ {
			mj2 := res[j].MassSquared()
			b *= (mj2 - res[r].MassSquared()) / mj2
		}
		ch.weights[r-anchors] = b
	}
}

// solveConstraints returns the last len(constraints) coefficients.
func solveConstraints(res []component.Resonance, free []float64, norm float64, constraints []Constraint) ([]float64, error) {
	k := len(constraints)
	nFree := len(free)
	a, err := matrix.NewDense(k, k)
	if err != nil {
		return nil, err
	}
	rhs := make([]float64, k)
	var row, col int
	for row = 0; row < k; row++ {
		c := constraints[row]
		if c == Normalization {
			rhs[row] = norm
		}
		for col = 0; col < nFree; col++ {
			rhs[row] -= c.weight(res[col]) * free[col]
		}
		for col = 0; col < k; col++ {
			if err = a.Set(row, col, c.weight(res[nFree+col])); err != nil {
				return nil, err
			}
		}
	}

	x, err := matrix.Solve(a, rhs)
	if err != nil {
		if errors.Is(err, matrix.ErrSingular) {
			return nil, fmt.Errorf("%v: %w", err, ErrDegenerateConstraints)
		}

		return nil, err
	}

	return x, nil
}

// At evaluates the channel at W.
func (ch *Channel) At(w complex128) complex128 {
	var sum complex128
	if ch.weights == nil {
		for i, c := range ch.components {
			sum += complex(ch.coefficients[i], 0) * c.At(w)
		}

		return sum
	}

	for i, b := range ch.weights {
		sum += complex(b, 0) * ch.components[ch.anchors+i].At(w)
	}
	for _, c := range ch.components[:ch.anchors] {
		sum *= c.At(w)
	}

	return sum
}

// AtT evaluates the channel at t on the physical sheet.
func (ch *Channel) AtT(t complex128) complex128 {
	return ch.At(ch.bp.FromSheet(t, conformal.Sheet1))
}

// W maps t onto the channel's W-plane (physical sheet).
func (ch *Channel) W(t complex128) complex128 {
	return ch.bp.FromSheet(t, conformal.Sheet1)
}

// Coefficients returns a copy of all coefficients a_r, solved ones included.
func (ch *Channel) Coefficients() []float64 {
	out := make([]float64, len(ch.coefficients))
	copy(out, ch.coefficients)

	return out
}

// BranchPoints returns the channel's branch points.
func (ch *Channel) BranchPoints() conformal.BranchPoints { return ch.bp }

// Len returns the number of resonances.
func (ch *Channel) Len() int { return len(ch.components) }
