// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/spf13/cobra"

	"github.com/lh7326/UA-model-sub000/data"
	"github.com/lh7326/UA-model-sub000/formfactor"
	"github.com/lh7326/UA-model-sub000/parameters"
	"github.com/lh7326/UA-model-sub000/task"
)

// errUnknownLabel is returned for a --particle or --label the family lacks.
var errUnknownLabel = errors.New("uafit: unknown point label")

type modelFlags struct {
	family string
	params string
	ts     []float64
}

func (f *modelFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.family, "family", "", "parameter family (default from the configuration)")
	cmd.Flags().StringVar(&f.params, "params", "", "parameters file written by a fit")
	cmd.Flags().Float64SliceVar(&f.ts, "t", nil, "squared momentum transfers in GeV²")
}

func (a *app) evalCmd() *cobra.Command {
	var (
		f        modelFlags
		selector string
		imagT    float64
	)
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a form factor",
		Long: `Prints the real part, imaginary part and modulus of one form factor at
each --t. Selectors: charged, neutral, proton_electric, proton_magnetic,
neutron_electric, neutron_magnetic, proton_dirac, proton_pauli,
neutron_dirac, neutron_pauli.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := formfactor.ParseSelector(selector)
			if err != nil {
				return err
			}
			v, err := a.startVector(f.family, f.params)
			if err != nil {
				return err
			}
			model, err := v.BuildModel()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s %s\n", v.Family(), sel)
			for _, t := range f.ts {
				ff, err := formfactor.Evaluate(model, complex(t, imagT), sel)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%.10g %.10g %.10g %.10g\n", t, real(ff), imag(ff), cmplx.Abs(ff))
			}

			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&selector, "selector", formfactor.Charged.String(), "form factor to evaluate")
	cmd.Flags().Float64Var(&imagT, "im", 0, "imaginary part added to every t")
	_ = cmd.MarkFlagRequired("t")

	return cmd
}

func (a *app) xsecCmd() *cobra.Command {
	var (
		f        modelFlags
		particle string
	)
	cmd := &cobra.Command{
		Use:   "xsec",
		Short: "Evaluate the Born cross section e+e- -> pair",
		Long: `Prints σ(e+e- → pair) in nb at each timelike --t. Particles: charged and
neutral for kaon and pion families, proton and neutron for nucleons.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.startVector(f.family, f.params)
			if err != nil {
				return err
			}
			ev, err := a.evaluator(v)
			if err != nil {
				return err
			}
			ys, err := observeAt(ev, v.Family(), particle, true, f.ts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s %s cross section [nb]\n", v.Family(), particle)
			for i, t := range f.ts {
				fmt.Fprintf(out, "%.10g %.10g\n", t, ys[i])
			}

			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&particle, "particle", "charged", "produced particle")
	_ = cmd.MarkFlagRequired("t")

	return cmd
}

// observeAt predicts the observable of the labeled points at ts.
func observeAt(ev task.Evaluator, family parameters.Family, label string, crossSection bool, ts []float64) ([]float64, error) {
	if family == parameters.Nucleon {
		pts, err := nucleonPoints(label, crossSection, ts)
		if err != nil {
			return nil, err
		}

		return observeAll(ev, pts)
	}
	pts, err := mesonPoints(label, crossSection, ts)
	if err != nil {
		return nil, err
	}

	return observeAll(ev, pts)
}

func observeAll[P data.Point](ev task.Evaluator, pts []P) ([]float64, error) {
	ys := make([]float64, len(pts))
	for i, p := range pts {
		y, err := task.Observe(ev, p)
		if err != nil {
			return nil, fmt.Errorf("t=%g: %w", p.Abscissa(), err)
		}
		ys[i] = y
	}

	return ys, nil
}

func mesonPoints(label string, crossSection bool, ts []float64) ([]data.MesonPoint, error) {
	var charged bool
	switch label {
	case "charged":
		charged = true
	case "neutral":
	default:
		return nil, fmt.Errorf("%q: %w", label, errUnknownLabel)
	}
	pts := make([]data.MesonPoint, len(ts))
	for i, t := range ts {
		pts[i] = data.MesonPoint{T: t, Charged: charged, CrossSection: crossSection}
	}

	return pts, nil
}

// nucleonPoints accepts proton and neutron, and the four Sachs selectors.
func nucleonPoints(label string, crossSection bool, ts []float64) ([]data.NucleonPoint, error) {
	var proton, electric bool
	switch label {
	case "proton", "proton_magnetic":
		proton = true
	case "proton_electric":
		proton, electric = true, true
	case "neutron", "neutron_magnetic":
	case "neutron_electric":
		electric = true
	default:
		return nil, fmt.Errorf("%q: %w", label, errUnknownLabel)
	}
	pts := make([]data.NucleonPoint, len(ts))
	for i, t := range ts {
		pts[i] = data.NucleonPoint{T: t, Proton: proton, Electric: electric, CrossSection: crossSection}
	}

	return pts, nil
}
