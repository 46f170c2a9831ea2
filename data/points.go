// SPDX-License-Identifier: MIT

package data

import "fmt"

// Point is the constraint satisfied by every labeled datapoint.
type Point interface {
	MesonPoint | NucleonPoint
	Abscissa() float64
}

// MesonPoint labels one kaon or pion measurement.
// CrossSection false means the value is |F(t)|.
type MesonPoint struct {
	T            float64 `yaml:"t" json:"t"`
	Charged      bool    `yaml:"charged" json:"charged"`
	CrossSection bool    `yaml:"cross_section" json:"cross_section"`
}

// Abscissa returns t.
func (p MesonPoint) Abscissa() float64 { return p.T }

// String implements fmt.Stringer.
func (p MesonPoint) String() string {
	return fmt.Sprintf("MesonPoint(t=%g, charged=%t, xsec=%t)", p.T, p.Charged, p.CrossSection)
}

// NucleonPoint labels one nucleon measurement.
// With CrossSection set the point is σ(e⁺e⁻ → NN̄) and Electric is ignored;
// otherwise the value is |G_E| or |G_M| of the proton or neutron.
type NucleonPoint struct {
	T            float64 `yaml:"t" json:"t"`
	Proton       bool    `yaml:"proton" json:"proton"`
	Electric     bool    `yaml:"electric" json:"electric"`
	CrossSection bool    `yaml:"cross_section" json:"cross_section"`
}

// Abscissa returns t.
func (p NucleonPoint) Abscissa() float64 { return p.T }

// String implements fmt.Stringer.
func (p NucleonPoint) String() string {
	return fmt.Sprintf("NucleonPoint(t=%g, proton=%t, electric=%t, xsec=%t)",
		p.T, p.Proton, p.Electric, p.CrossSection)
}

// Dataset is an ordered set of labeled points with their values and
// uncertainties. Index i of Points, Y and Sigma describes the same measurement.
type Dataset[P Point] struct {
	Points []P
	Y      []float64
	Sigma  []float64
}

// Len returns the number of points.
func (d Dataset[P]) Len() int { return len(d.Points) }

// Validate checks that the three slices line up and every σ is positive.
func (d Dataset[P]) Validate() error {
	if len(d.Y) != len(d.Points) || len(d.Sigma) != len(d.Points) {
		return fmt.Errorf("points=%d, y=%d, sigma=%d: %w", len(d.Points), len(d.Y), len(d.Sigma), ErrLengthMismatch)
	}
	for i, s := range d.Sigma {
		if !(s > 0) {
			return fmt.Errorf("point %d (t=%g): sigma=%g: %w", i, d.Points[i].Abscissa(), s, ErrNonPositiveSigma)
		}
	}

	return nil
}

// Abscissas returns the t values in order.
func (d Dataset[P]) Abscissas() []float64 {
	out := make([]float64, len(d.Points))
	for i, p := range d.Points {
		out[i] = p.Abscissa()
	}

	return out
}

// Clone returns a deep copy.
func (d Dataset[P]) Clone() Dataset[P] {
	return Dataset[P]{
		Points: append([]P(nil), d.Points...),
		Y:      append([]float64(nil), d.Y...),
		Sigma:  append([]float64(nil), d.Sigma...),
	}
}

// Rows drops the labels, keeping t, value and σ of every point.
func (d Dataset[P]) Rows() []Row {
	rows := make([]Row, d.Len())
	for i, p := range d.Points {
		rows[i] = Row{T: p.Abscissa(), Y: d.Y[i], Sigma: d.Sigma[i]}
	}

	return rows
}
