// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lh7326/UA-model-sub000/config"
	"github.com/lh7326/UA-model-sub000/data"
	"github.com/lh7326/UA-model-sub000/parameters"
	"github.com/lh7326/UA-model-sub000/pipeline"
	"github.com/lh7326/UA-model-sub000/store"
)

// errNoData is returned when the configuration names no table for the family.
var errNoData = errors.New("uafit: no data sources for family")

type fitFlags struct {
	seeds     []int64
	workers   int
	family    string
	db        string
	reportDir string
}

func (a *app) fitCmd() *cobra.Command {
	var f fitFlags
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Run the staged fit pipeline once per seed",
		Long: `Loads the data tables of the configuration, then runs the staged
fitting pipeline once per seed. Each seed writes its report directory
<report_dir>/seed_<seed>; with a database the best fit of every seed is
stored as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.applyFitFlags(cmd, f)

			return a.runFit(cmd.Context(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().Int64SliceVar(&f.seeds, "seeds", nil, "pipeline seeds (overrides the configuration)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "parallel seeds (overrides the configuration)")
	cmd.Flags().StringVar(&f.family, "family", "", "parameter family (overrides the configuration)")
	cmd.Flags().StringVar(&f.db, "db", "", "results database (overrides the configuration)")
	cmd.Flags().StringVar(&f.reportDir, "report-dir", "", "report directory (overrides the configuration)")

	return cmd
}

func (a *app) applyFitFlags(cmd *cobra.Command, f fitFlags) {
	flags := cmd.Flags()
	if flags.Changed("seeds") {
		a.cfg.Seeds = f.seeds
	}
	if flags.Changed("workers") {
		a.cfg.Workers = f.workers
	}
	if flags.Changed("family") {
		a.cfg.Family = f.family
	}
	if flags.Changed("db") {
		a.cfg.Output.Database = f.db
	}
	if flags.Changed("report-dir") {
		a.cfg.Output.ReportDir = f.reportDir
	}
}

func (a *app) runFit(ctx context.Context, out io.Writer) error {
	cfg := a.cfg
	if err := cfg.Validate(); err != nil {
		return err
	}
	v, err := cfg.StartVector()
	if err != nil {
		return err
	}

	var opts []pipeline.SeedOption
	if cfg.Output.Database != "" {
		st, err := store.Open(cfg.Output.Database)
		if err != nil {
			return err
		}
		defer st.Close()
		opts = append(opts, pipeline.WithStore(st, cfg.Family))
	}

	a.logger.Info("fit started",
		zap.String("family", cfg.Family),
		zap.Int64s("seeds", cfg.Seeds),
		zap.Int("workers", cfg.Workers))

	var (
		results []pipeline.SeedResult
		fitErr  error
	)
	if v.Family() == parameters.Nucleon {
		if len(cfg.Data.Nucleon) == 0 {
			return fmt.Errorf("%s: %w", cfg.Family, errNoData)
		}
		ds, err := data.LoadNucleon(cfg.Data.Nucleon...)
		if err != nil {
			return err
		}
		results, fitErr = fitSeeds(ctx, cfg, v, ds, a.logger, opts...)
	} else {
		if len(cfg.Data.Meson) == 0 {
			return fmt.Errorf("%s: %w", cfg.Family, errNoData)
		}
		ds, err := data.LoadMeson(cfg.Data.Meson...)
		if err != nil {
			return err
		}
		results, fitErr = fitSeeds(ctx, cfg, v, ds, a.logger, opts...)
	}
	printResults(out, results)
	if fitErr != nil {
		return fitErr
	}

	var errs []error
	for _, r := range results {
		if r.Err == nil {
			return nil
		}
		errs = append(errs, fmt.Errorf("seed %d: %w", r.Seed, r.Err))
	}

	return errors.Join(errs...)
}

// fitSeeds runs one pipeline per configured seed. Every pipeline clones v.
func fitSeeds[P data.Point](ctx context.Context, cfg *config.Config, v *parameters.Vector,
	ds data.Dataset[P], logger *zap.Logger, opts ...pipeline.SeedOption) ([]pipeline.SeedResult, error) {
	factory := func(seed int64) (pipeline.Runner, error) {
		pc, err := cfg.PipelineConfig(seed)
		if err != nil {
			return nil, err
		}
		p, err := pipeline.New(pc, v, ds, cfg.Constants(), cfg.Physics.Masses, pipeline.WithLogger(logger))
		if err != nil {
			return nil, err
		}

		return p, nil
	}

	return pipeline.RunSeeds(ctx, factory, cfg.Seeds, cfg.Workers, opts...)
}

func printResults(w io.Writer, results []pipeline.SeedResult) {
	fmt.Fprintf(w, "%-8s %-16s %-10s %-8s %s\n", "seed", "chi2", "round", "failed", "run")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%-8d error: %v\n", r.Seed, r.Err)
			continue
		}
		chi := "-"
		if r.Best.ChiSquared != nil {
			chi = fmt.Sprintf("%.8g", *r.Best.ChiSquared)
		}
		fmt.Fprintf(w, "%-8d %-16s %-10s %-8s %s\n", r.Seed, chi, r.Best.Round,
			fmt.Sprintf("%d/%d", r.Best.Failed, r.Best.Rounds), r.RunID)
	}
}
