// SPDX-License-Identifier: MIT
package store_test

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lh7326/UA-model-sub000/parameters"
	"github.com/lh7326/UA-model-sub000/store"
)

func ptr(x float64) *float64 { return &x }

func TestStore_SaveGetBest(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(filepath.Join(t.TempDir(), "db", "runs.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	params := []parameters.Parameter{{Name: "a_omega", Value: 0.25}, {Name: "t_0_isovector", Value: 0.078, Fixed: true}}
	runs := []store.Run{
		{Family: "kaon", Seed: 3, ChiSquared: ptr(2.5), TaskName: "final", Parameters: params,
			Errors: map[string]float64{"a_omega": 0.01, "t_in_isovector": math.Inf(1)}},
		{Family: "kaon", Seed: 1, ChiSquared: ptr(1.5), TaskName: "round_4", Parameters: params},
		{Family: "kaon", Seed: 2, TaskName: "round_0", Parameters: params},
		{Family: "pion", Seed: 9, ChiSquared: ptr(0.5), TaskName: "final", Parameters: params},
	}
	ids := make([]string, len(runs))
	for i, r := range runs {
		ids[i], err = s.SaveRun(ctx, r)
		require.NoError(t, err)
		_, err = uuid.Parse(ids[i])
		require.NoError(t, err, "run ids are UUIDs")
	}

	got, err := s.Get(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "kaon", got.Family)
	assert.Equal(t, int64(3), got.Seed)
	require.NotNil(t, got.ChiSquared)
	assert.Equal(t, 2.5, *got.ChiSquared)
	assert.Equal(t, params, got.Parameters)
	assert.Equal(t, map[string]float64{"a_omega": 0.01}, got.Errors, "non-finite errors are dropped")
	assert.False(t, got.CreatedAt.IsZero())

	best, err := s.Best(ctx, "kaon", 10)
	require.NoError(t, err)
	require.Len(t, best, 2, "runs without a χ² are not ranked")
	assert.Equal(t, int64(1), best[0].Seed)
	assert.Equal(t, int64(3), best[1].Seed)

	all, err := s.Best(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "pion", all[0].Family)

	noChi, err := s.Get(ctx, ids[2])
	require.NoError(t, err)
	assert.Nil(t, noChi.ChiSquared)

	_, err = s.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_InMemory(t *testing.T) {
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	id, err := s.SaveRun(context.Background(), store.Run{ID: "fixed-id", Family: "nucleon", TaskName: "final"})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)

	_, err = s.SaveRun(context.Background(), store.Run{ID: "fixed-id", Family: "nucleon", TaskName: "final"})
	assert.Error(t, err, "ids are unique")
}
