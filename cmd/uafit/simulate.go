// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lh7326/UA-model-sub000/data"
	"github.com/lh7326/UA-model-sub000/parameters"
	"github.com/lh7326/UA-model-sub000/task"
)

// errGrid is returned for an empty or inverted t grid.
var errGrid = errors.New("uafit: invalid t grid")

type simulateFlags struct {
	model        modelFlags
	tMin, tMax   float64
	n            int
	label        string
	crossSection bool
	noise        float64
	seed         uint64
	out          string
}

func (a *app) simulateCmd() *cobra.Command {
	var f simulateFlags
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Generate a synthetic data table from a model",
		Long: `Evaluates the model at --t (or at --n evenly spaced points between
--t-min and --t-max), smears every value with Gaussian noise of relative
width --noise and writes a three-column table that fit can read back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSimulate(cmd.OutOrStdout(), f)
		},
	}
	f.model.register(cmd)
	cmd.Flags().Float64Var(&f.tMin, "t-min", -1, "first t of the grid")
	cmd.Flags().Float64Var(&f.tMax, "t-max", 1, "last t of the grid")
	cmd.Flags().IntVar(&f.n, "n", 20, "grid size")
	cmd.Flags().StringVar(&f.label, "label", "charged", "point label: charged, neutral, proton_electric, ...")
	cmd.Flags().BoolVar(&f.crossSection, "cross-section", false, "generate cross sections instead of |F|")
	cmd.Flags().Float64Var(&f.noise, "noise", 0.05, "relative Gaussian noise")
	cmd.Flags().Uint64Var(&f.seed, "seed", 1, "noise seed")
	cmd.Flags().StringVarP(&f.out, "out", "o", "-", "output file, - for stdout")

	return cmd
}

func (a *app) runSimulate(stdout io.Writer, f simulateFlags) error {
	ts := f.model.ts
	if len(ts) == 0 {
		var err error
		if ts, err = grid(f.tMin, f.tMax, f.n); err != nil {
			return err
		}
	}
	v, err := a.startVector(f.model.family, f.model.params)
	if err != nil {
		return err
	}
	ev, err := a.evaluator(v)
	if err != nil {
		return err
	}
	rows, err := simulateRows(ev, v.Family(), f, ts)
	if err != nil {
		return err
	}

	header := fmt.Sprintf("synthetic %s %s cross_section=%t noise=%g seed=%d\nt value sigma",
		v.Family(), f.label, f.crossSection, f.noise, f.seed)
	if f.out == "-" {
		return data.WriteTable(stdout, header, rows)
	}
	if err = os.MkdirAll(filepath.Dir(f.out), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	file, err := os.Create(f.out)
	if err != nil {
		return err
	}
	if err = data.WriteTable(file, header, rows); err != nil {
		_ = file.Close()
		return err
	}
	a.logger.Sugar().Infof("wrote %d points to %s", len(rows), f.out)

	return file.Close()
}

func simulateRows(ev task.Evaluator, family parameters.Family, f simulateFlags, ts []float64) ([]data.Row, error) {
	if family == parameters.Nucleon {
		pts, err := nucleonPoints(f.label, f.crossSection, ts)
		if err != nil {
			return nil, err
		}

		return synthesize(ev, pts, f.noise, f.seed)
	}
	pts, err := mesonPoints(f.label, f.crossSection, ts)
	if err != nil {
		return nil, err
	}

	return synthesize(ev, pts, f.noise, f.seed)
}

// synthesize predicts and smears the observable of pts.
func synthesize[P data.Point](ev task.Evaluator, pts []P, noise float64, seed uint64) ([]data.Row, error) {
	var predictErr error
	ds, err := data.Synthesize(pts, func(p P) float64 {
		y, err := task.Observe(ev, p)
		if err != nil && predictErr == nil {
			predictErr = fmt.Errorf("t=%g: %w", p.Abscissa(), err)
		}
		return y
	}, noise, seed)
	if err != nil {
		return nil, err
	}
	if predictErr != nil {
		return nil, predictErr
	}

	return ds.Rows(), nil
}

// grid returns n evenly spaced points from lo to hi inclusive.
func grid(lo, hi float64, n int) ([]float64, error) {
	if n < 1 || hi < lo || (n == 1 && hi != lo) {
		return nil, fmt.Errorf("[%g, %g] with %d points: %w", lo, hi, n, errGrid)
	}
	ts := make([]float64, n)
	for i := range ts {
		if n == 1 {
			ts[i] = lo
			continue
		}
		ts[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}

	return ts, nil
}
