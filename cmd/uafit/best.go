// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/lh7326/UA-model-sub000/store"
)

// errNoDatabase is returned when neither --db nor the configuration name one.
var errNoDatabase = errors.New("uafit: no results database")

func (a *app) bestCmd() *cobra.Command {
	var (
		db         string
		family     string
		limit      int
		showParams bool
	)
	cmd := &cobra.Command{
		Use:   "best",
		Short: "List the best stored runs",
		Long: `Lists stored runs with a χ² in ascending order. An empty --family lists
every family.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if db == "" {
				db = a.cfg.Output.Database
			}
			if db == "" {
				return errNoDatabase
			}
			st, err := store.Open(db)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.Best(cmd.Context(), family, limit)
			if err != nil {
				return err
			}
			printRuns(cmd.OutOrStdout(), runs, showParams)

			return nil
		},
	}
	cmd.Flags().StringVar(&db, "db", "", "results database (default from the configuration)")
	cmd.Flags().StringVar(&family, "family", "", "only runs of this family")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of runs")
	cmd.Flags().BoolVar(&showParams, "parameters", false, "print the parameters and errors of each run")

	return cmd
}

func printRuns(w io.Writer, runs []store.Run, showParams bool) {
	fmt.Fprintf(w, "%-36s %-22s %-6s %-16s %-10s %s\n", "id", "family", "seed", "chi2", "round", "created")
	for _, r := range runs {
		chi := "-"
		if r.ChiSquared != nil {
			chi = fmt.Sprintf("%.8g", *r.ChiSquared)
		}
		fmt.Fprintf(w, "%-36s %-22s %-6d %-16s %-10s %s\n",
			r.ID, r.Family, r.Seed, chi, r.TaskName, r.CreatedAt.Format(time.RFC3339))
		if !showParams {
			continue
		}
		for _, p := range r.Parameters {
			fixed := ""
			if p.Fixed {
				fixed = " (fixed)"
			}
			if e, ok := r.Errors[p.Name]; ok {
				fmt.Fprintf(w, "    %-28s %.10g ± %.3g%s\n", p.Name, p.Value, e, fixed)
				continue
			}
			fmt.Fprintf(w, "    %-28s %.10g%s\n", p.Name, p.Value, fixed)
		}
	}
}
