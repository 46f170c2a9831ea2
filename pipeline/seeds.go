// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/lh7326/UA-model-sub000/store"
)

// Runner is anything that runs to a best fit; *Pipeline is one.
type Runner interface {
	Run(ctx context.Context) (*BestFit, error)
}

// Factory builds the runner of one seed. Each call must return a runner that
// shares no mutable state with the others.
type Factory func(seed int64) (Runner, error)

// SeedResult is the outcome of one seed.
type SeedResult struct {
	Seed  int64
	Best  *BestFit
	Err   error
	RunID string // set when the result was stored
}

// SeedOption configures RunSeeds.
type SeedOption func(*seedOptions)

type seedOptions struct {
	store  *store.Store
	family string
}

// WithStore persists every successful result to s after all runs finish.
func WithStore(s *store.Store, family string) SeedOption {
	return func(o *seedOptions) {
		o.store = s
		o.family = family
	}
}

// RunSeeds runs one pipeline per seed on at most workers goroutines.
//
// Runs are independent: a failing run is reported in its SeedResult and does
// not stop the others. Results are sorted by best χ², runs without a χ²
// last, ties by seed. The returned error is ErrNoSeeds, ctx.Err() after a
// cancellation, or a store error.
func RunSeeds(ctx context.Context, factory Factory, seeds []int64, workers int, opts ...SeedOption) ([]SeedResult, error) {
	if len(seeds) == 0 {
		return nil, ErrNoSeeds
	}
	var o seedOptions
	for _, opt := range opts {
		opt(&o)
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]SeedResult, len(seeds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, seed := range seeds {
		g.Go(func() error {
			results[i] = runSeed(gctx, factory, seed)

			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return results, err
	}

	sort.SliceStable(results, func(a, b int) bool { return less(results[a], results[b]) })

	if o.store != nil {
		for i := range results {
			r := &results[i]
			if r.Err != nil || r.Best == nil {
				continue
			}
			id, err := o.store.SaveRun(ctx, toRun(o.family, r))
			if err != nil {
				return results, err
			}
			r.RunID = id
		}
	}

	return results, nil
}

func runSeed(ctx context.Context, factory Factory, seed int64) SeedResult {
	res := SeedResult{Seed: seed}
	runner, err := factory(seed)
	if err != nil {
		res.Err = err

		return res
	}
	res.Best, res.Err = runner.Run(ctx)

	return res
}

func less(a, b SeedResult) bool {
	ca, cb := chi(a), chi(b)
	switch {
	case ca != nil && cb != nil && *ca != *cb:
		return *ca < *cb
	case (ca == nil) != (cb == nil):
		return ca != nil
	default:
		return a.Seed < b.Seed
	}
}

func chi(r SeedResult) *float64 {
	if r.Err != nil || r.Best == nil {
		return nil
	}

	return r.Best.ChiSquared
}

func toRun(family string, r *SeedResult) store.Run {
	run := store.Run{
		Family:     family,
		Seed:       r.Seed,
		ChiSquared: r.Best.ChiSquared,
		TaskName:   r.Best.Round,
		Errors:     r.Best.Report.Errors,
	}
	if r.Best.Parameters != nil {
		run.Parameters = r.Best.Parameters.ToList()
	}

	return run
}
