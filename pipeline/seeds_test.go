// SPDX-License-Identifier: MIT
package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lh7326/UA-model-sub000/parameters"
	"github.com/lh7326/UA-model-sub000/pipeline"
	"github.com/lh7326/UA-model-sub000/store"
)

var errFactory = errors.New("factory refused")

func TestRunSeeds_SortedAndStored(t *testing.T) {
	start, ds := fixture(t)
	factory := func(seed int64) (pipeline.Runner, error) {
		if seed == 13 {
			return nil, errFactory
		}
		cfg := quickConfig()
		cfg.NFree = []int{2}
		cfg.Iterations = []int{1}
		cfg.Perturb = true
		cfg.Seed = seed

		return pipeline.New(cfg, start, ds, constants, parameters.DefaultMasses)
	}

	db, err := store.Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	seeds := []int64{13, 1, 2, 3}
	results, err := pipeline.RunSeeds(context.Background(), factory, seeds, 2,
		pipeline.WithStore(db, string(parameters.Pion)))
	require.NoError(t, err)
	require.Len(t, results, len(seeds))

	last := results[len(results)-1]
	assert.Equal(t, int64(13), last.Seed)
	assert.ErrorIs(t, last.Err, errFactory)
	assert.Empty(t, last.RunID)

	var prev float64
	for i, r := range results[:3] {
		require.NoError(t, r.Err)
		require.NotNil(t, r.Best.ChiSquared)
		if i > 0 {
			assert.LessOrEqual(t, prev, *r.Best.ChiSquared)
		}
		prev = *r.Best.ChiSquared
		assert.NotEmpty(t, r.RunID)
	}

	stored, err := db.Best(context.Background(), string(parameters.Pion), 10)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, results[0].Seed, stored[0].Seed)
	assert.Equal(t, *results[0].Best.ChiSquared, *stored[0].ChiSquared)
}

func TestRunSeeds_Errors(t *testing.T) {
	_, err := pipeline.RunSeeds(context.Background(), nil, nil, 1)
	assert.ErrorIs(t, err, pipeline.ErrNoSeeds)

	start, ds := fixture(t)
	factory := func(seed int64) (pipeline.Runner, error) {
		cfg := quickConfig()
		cfg.Seed = seed
		return pipeline.New(cfg, start, ds, constants, parameters.DefaultMasses)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := pipeline.RunSeeds(ctx, factory, []int64{1, 2}, 4)
	assert.ErrorIs(t, err, context.Canceled)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}
