// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lh7326/UA-model-sub000/config"
	"github.com/lh7326/UA-model-sub000/data"
	"github.com/lh7326/UA-model-sub000/formfactor"
	"github.com/lh7326/UA-model-sub000/pipeline"
)

// runCLI executes a fresh command tree against cfgPath and returns stdout.
func runCLI(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvLogLevel, "error")
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func noConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "absent.yaml")
}

// dataLines returns the non-comment lines of a command output split into fields.
func dataLines(out string) [][]string {
	var lines [][]string
	for _, l := range strings.Split(strings.TrimSpace(out), "\n") {
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		lines = append(lines, strings.Fields(l))
	}

	return lines
}

func parse(t *testing.T, s string) float64 {
	t.Helper()
	x, err := strconv.ParseFloat(s, 64)
	require.NoError(t, err)

	return x
}

func TestEval_Normalization(t *testing.T) {
	cases := []struct {
		family, selector string
		want             float64
	}{
		{"pion", "charged", 1},
		{"kaon", "charged", 1},
		{"kaon", "neutral", 0},
		{"nucleon", "proton_electric", 1},
	}
	for _, tc := range cases {
		t.Run(tc.family+"/"+tc.selector, func(t *testing.T) {
			out, err := runCLI(t, noConfig(t), "eval", "--family", tc.family, "--selector", tc.selector, "--t", "0")
			require.NoError(t, err)
			lines := dataLines(out)
			require.Len(t, lines, 1)
			require.Len(t, lines[0], 4)
			assert.InDelta(t, tc.want, parse(t, lines[0][3]), 1e-9)
		})
	}
}

func TestEval_Errors(t *testing.T) {
	_, err := runCLI(t, noConfig(t), "eval", "--family", "pion", "--selector", "strange", "--t", "0")
	assert.ErrorIs(t, err, formfactor.ErrUnsupportedSelector)

	_, err = runCLI(t, noConfig(t), "eval", "--family", "pion", "--selector", "proton_electric", "--t", "0")
	assert.ErrorIs(t, err, formfactor.ErrUnsupportedSelector)

	_, err = runCLI(t, noConfig(t), "eval", "--family", "pion")
	assert.Error(t, err, "--t is required")
}

func TestXsec(t *testing.T) {
	out, err := runCLI(t, noConfig(t), "xsec", "--family", "kaon", "--particle", "charged", "--t", "1.04,1.1,2")
	require.NoError(t, err)
	lines := dataLines(out)
	require.Len(t, lines, 3)
	for _, l := range lines {
		sigma := parse(t, l[1])
		assert.Greater(t, sigma, 0.0)
	}

	_, err = runCLI(t, noConfig(t), "xsec", "--family", "kaon", "--particle", "proton", "--t", "4")
	assert.ErrorIs(t, err, errUnknownLabel)

	out, err = runCLI(t, noConfig(t), "xsec", "--family", "nucleon", "--particle", "proton", "--t", "4,5")
	require.NoError(t, err)
	assert.Len(t, dataLines(out), 2)
}

func TestSimulate_Stdout(t *testing.T) {
	out, err := runCLI(t, noConfig(t), "simulate", "--family", "pion", "--t-min", "-1", "--t-max", "1", "--n", "5", "--noise", "0")
	require.NoError(t, err)
	rows, err := data.ReadTable(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []float64{-1, -0.5, 0, 0.5, 1}, []float64{rows[0].T, rows[1].T, rows[2].T, rows[3].T, rows[4].T})
	assert.InDelta(t, 1, rows[2].Y, 1e-9)
	assert.Equal(t, 1.0, rows[2].Sigma)

	_, err = runCLI(t, noConfig(t), "simulate", "--family", "pion", "--n", "0")
	assert.ErrorIs(t, err, errGrid)
	_, err = runCLI(t, noConfig(t), "simulate", "--family", "nucleon", "--label", "charged")
	assert.ErrorIs(t, err, errUnknownLabel)
}

func TestGrid(t *testing.T) {
	ts, err := grid(2, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, ts)

	ts, err = grid(0, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 1}, ts)

	for _, bad := range [][3]float64{{1, 0, 3}, {0, 1, 1}, {0, 1, 0}} {
		_, err = grid(bad[0], bad[1], int(bad[2]))
		assert.ErrorIs(t, err, errGrid, "%v", bad)
	}
}

func TestFit_NoData(t *testing.T) {
	_, err := runCLI(t, noConfig(t), "fit", "--family", "kaon", "--report-dir", "")
	assert.ErrorIs(t, err, errNoData)
}

func TestBest_NoDatabase(t *testing.T) {
	_, err := runCLI(t, noConfig(t), "best")
	assert.ErrorIs(t, err, errNoDatabase)
}

// TestSimulateFitBest drives the whole tool: synthetic pion data, a two-seed
// fit stored in SQLite, then the stored ranking and the fitted model.
func TestSimulateFitBest(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "data", "pion.txt")
	_, err := runCLI(t, noConfig(t), "simulate", "--family", "pion",
		"--t-min", "-2", "--t-max", "2.2", "--n", "22", "--noise", "0.05", "--seed", "3", "--out", table)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Family = "pion"
	cfg.Data.Meson = []data.MesonSource{{Path: table, Charged: true}}
	cfg.Schedule.NFree = []int{2}
	cfg.Schedule.Iterations = []int{2}
	cfg.Schedule.WarmupRounds = 0
	cfg.Schedule.PartialRounds = 0
	cfg.Schedule.FinalFullFit = false
	cfg.Schedule.Perturb = false
	cfg.Output.ReportDir = filepath.Join(dir, "reports")
	cfg.Output.Database = filepath.Join(dir, "runs.db")
	cfg.Seeds = []int64{1, 2}
	cfg.Workers = 2
	cfgPath := filepath.Join(dir, "uafit.yaml")
	require.NoError(t, cfg.Save(cfgPath))

	out, err := runCLI(t, cfgPath, "fit")
	require.NoError(t, err)
	lines := dataLines(out)
	require.Len(t, lines, 3, out)
	assert.Equal(t, "seed", lines[0][0])
	for _, seed := range []string{"1", "2"} {
		path := filepath.Join(cfg.Output.ReportDir, "seed_"+seed, pipeline.FinalParametersFile)
		_, err := os.Stat(path)
		require.NoError(t, err)
	}

	out, err = runCLI(t, cfgPath, "best", "--family", "pion", "--parameters")
	require.NoError(t, err)
	assert.Contains(t, out, "pion")
	assert.Contains(t, out, "a_")

	params := filepath.Join(cfg.Output.ReportDir, "seed_1", pipeline.FinalParametersFile)
	out, err = runCLI(t, cfgPath, "eval", "--params", params, "--t", "0")
	require.NoError(t, err)
	evals := dataLines(out)
	require.Len(t, evals, 1)
	assert.InDelta(t, 1, parse(t, evals[0][3]), 1e-9)
}
