// SPDX-License-Identifier: MIT
package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lh7326/UA-model-sub000/crosssection"
	"github.com/lh7326/UA-model-sub000/data"
	"github.com/lh7326/UA-model-sub000/parameters"
	"github.com/lh7326/UA-model-sub000/pipeline"
	"github.com/lh7326/UA-model-sub000/task"
)

var constants = crosssection.Constants{Alpha: 1 / 137.035999084, HCSquared: 0.3893793721e6}

// fixture returns a pion dataset generated from the default parameters with
// 5% noise, and a start vector whose coefficients are shifted away.
func fixture(t *testing.T) (*parameters.Vector, data.Dataset[data.MesonPoint]) {
	t.Helper()
	truth, err := parameters.Defaults(parameters.Pion, parameters.DefaultMasses)
	require.NoError(t, err)
	model, err := truth.BuildModel()
	require.NoError(t, err)

	var pts []data.MesonPoint
	for _, x := range []float64{-2, -1.5, -1, -0.7, -0.5, -0.3, -0.2, -0.1, -0.05,
		0.1, 0.2, 0.3, 0.4, 0.5, 0.55, 0.6, 0.65, 0.7, 0.8, 0.9, 1.1, 1.4, 1.8, 2.2} {
		pts = append(pts, data.MesonPoint{T: x, Charged: true})
	}
	ev := task.Evaluator{Model: model, Family: parameters.Pion, Constants: constants, Masses: parameters.DefaultMasses}
	ds, err := data.Synthesize(pts, func(p data.MesonPoint) float64 {
		y, err := task.Observe(ev, p)
		require.NoError(t, err)
		return y
	}, 0.05, 11)
	require.NoError(t, err)

	start := truth.Clone()
	for _, name := range start.CoefficientNames() {
		x, err := start.Value(name)
		require.NoError(t, err)
		require.NoError(t, start.Set(name, x+0.05))
	}

	return start, ds
}

func quickConfig() pipeline.Config {
	cfg := pipeline.DefaultConfig()
	cfg.NFree = []int{3}
	cfg.Iterations = []int{2}
	cfg.FinalFullFit = false

	return cfg
}

func TestRun_ImprovesAndRespectsBounds(t *testing.T) {
	start, ds := fixture(t)
	p, err := pipeline.New(quickConfig(), start, ds, constants, parameters.DefaultMasses)
	require.NoError(t, err)

	best, err := p.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, best.ChiSquared)
	assert.Equal(t, 2, best.Rounds)

	before, err := task.Cost(start, ds, constants, parameters.DefaultMasses)
	require.NoError(t, err)
	after, err := task.Cost(best.Parameters, ds, constants, parameters.DefaultMasses)
	require.NoError(t, err)
	assert.LessOrEqual(t, after, before)

	bounds := best.Parameters.Bounds(parameters.BoundsHandpicked)
	best.Parameters.Each(func(q parameters.Parameter) bool {
		assert.True(t, bounds[q.Name].Contains(q.Value), "%s=%g outside %v", q.Name, q.Value, bounds[q.Name])
		return true
	})

	// The always-fixed thresholds were never released or moved.
	for _, name := range best.Parameters.AlwaysFixedNames() {
		a, _ := start.Value(name)
		b, _ := best.Parameters.Value(name)
		assert.Equal(t, a, b, name)
	}
}

func TestRun_SameSeedSameResult(t *testing.T) {
	start, ds := fixture(t)
	cfg := quickConfig()
	cfg.Perturb = true
	cfg.PartialRounds = 1
	cfg.WarmupRounds = 1

	run := func() *pipeline.BestFit {
		p, err := pipeline.New(cfg, start, ds, constants, parameters.DefaultMasses)
		require.NoError(t, err)
		best, err := p.Run(context.Background())
		require.NoError(t, err)
		return best
	}
	a, b := run(), run()
	assert.Equal(t, a.ChiSquared, b.ChiSquared)
	assert.True(t, a.Parameters.Equal(b.Parameters))
	assert.Equal(t, a.Round, b.Round)
}

func TestRun_ReportDirectory(t *testing.T) {
	start, ds := fixture(t)
	cfg := quickConfig()
	cfg.FinalFullFit = true
	cfg.ReportDir = filepath.Join(t.TempDir(), "seed_1")

	p, err := pipeline.New(cfg, start, ds, constants, parameters.DefaultMasses)
	require.NoError(t, err)
	best, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, best.Rounds)

	for _, name := range []string{"report.txt", "report_0.txt", "report_1.txt", "report_final.txt", "final_parameters.yaml"} {
		_, err := os.Stat(filepath.Join(cfg.ReportDir, name))
		assert.NoError(t, err, name)
	}
	saved, err := parameters.Load(filepath.Join(cfg.ReportDir, pipeline.FinalParametersFile))
	require.NoError(t, err)
	assert.True(t, saved.Equal(p.Parameters()))

	raw, err := os.ReadFile(filepath.Join(cfg.ReportDir, "report_0.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "chi_squared:")
	assert.Contains(t, string(raw), "name: round_0")
}

func TestRun_AllRoundsFail(t *testing.T) {
	start, ds := fixture(t)
	cfg := quickConfig()
	cfg.MaxEvaluations = 2

	p, err := pipeline.New(cfg, start, ds, constants, parameters.DefaultMasses)
	require.NoError(t, err)
	best, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Nil(t, best.ChiSquared)
	assert.Equal(t, 2, best.Failed)
	assert.True(t, best.Parameters.Equal(start))
}

func TestRun_CancelledBeforeFirstRound(t *testing.T) {
	start, ds := fixture(t)
	p, err := pipeline.New(quickConfig(), start, ds, constants, parameters.DefaultMasses)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	best, err := p.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, best)
	assert.Zero(t, best.Rounds)
}

func TestNew_Validation(t *testing.T) {
	start, ds := fixture(t)
	cases := map[string]func(c *pipeline.Config){
		"empty":      func(c *pipeline.Config) { c.NFree, c.Iterations = nil, nil },
		"mismatch":   func(c *pipeline.Config) { c.Iterations = []int{1, 2} },
		"zero stage": func(c *pipeline.Config) { c.NFree = []int{0} },
		"negative":   func(c *pipeline.Config) { c.WarmupRounds = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := quickConfig()
			mutate(&cfg)
			_, err := pipeline.New(cfg, start, ds, constants, parameters.DefaultMasses)
			assert.ErrorIs(t, err, pipeline.ErrSchedule)
		})
	}
	_, err := pipeline.New(quickConfig(), nil, ds, constants, parameters.DefaultMasses)
	assert.ErrorIs(t, err, pipeline.ErrNilVector)

	cfg := quickConfig()
	cfg.NFree, cfg.Iterations = []int{3, 5}, []int{2, 4}
	assert.Equal(t, 6, cfg.Rounds())
}
