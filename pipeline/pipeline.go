// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/lh7326/UA-model-sub000/crosssection"
	"github.com/lh7326/UA-model-sub000/data"
	"github.com/lh7326/UA-model-sub000/logging"
	"github.com/lh7326/UA-model-sub000/parameters"
	"github.com/lh7326/UA-model-sub000/perturb"
	"github.com/lh7326/UA-model-sub000/task"
)

// File names inside the report directory.
const (
	ReportLogFile       = "report.txt"
	FinalParametersFile = "final_parameters.yaml"
	finalRoundName      = "final"
)

// BestFit is the best round of a run. ChiSquared is nil when every round
// failed; Parameters is then the start vector.
type BestFit struct {
	ChiSquared *float64           `yaml:"chi_squared"`
	Round      string             `yaml:"round"`
	Parameters *parameters.Vector `yaml:"parameters"`
	Report     task.Report        `yaml:"report"`
	Rounds     int                `yaml:"rounds"`
	Failed     int                `yaml:"failed"`
}

// Pipeline owns one parameter vector and fits it round by round.
// It is not safe for concurrent use.
type Pipeline[P data.Point] struct {
	cfg       Config
	params    *parameters.Vector
	data      data.Dataset[P]
	constants crosssection.Constants
	masses    parameters.Masses
	logger    *zap.Logger
	rng       *rand.Rand
}

// New validates the configuration and takes a clone of v.
//
// Errors:
//   - ErrNilVector, ErrSchedule, perturb.ErrInvalidScale.
func New[P data.Point](cfg Config, v *parameters.Vector, ds data.Dataset[P],
	c crosssection.Constants, m parameters.Masses, opts ...Option) (*Pipeline[P], error) {
	if v == nil {
		return nil, ErrNilVector
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Pipeline[P]{
		cfg:       cfg,
		params:    v.Clone(),
		data:      ds,
		constants: c,
		masses:    m,
		logger:    o.logger.With(zap.Int64("seed", cfg.Seed)),
		rng:       perturb.RandFromSeed(cfg.Seed),
	}, nil
}

// Parameters returns the vector the pipeline currently carries.
func (p *Pipeline[P]) Parameters() *parameters.Vector { return p.params }

// Run executes the schedule and the optional final fit.
//
// ctx is checked before every round; on cancellation the best fit so far is
// returned together with ctx.Err(). Task validation errors abort the run.
func (p *Pipeline[P]) Run(ctx context.Context) (*BestFit, error) {
	log := p.logger
	if p.cfg.ReportDir != "" {
		teed, closeFn, err := logging.WithReportFile(log, filepath.Join(p.cfg.ReportDir, ReportLogFile))
		if err != nil {
			return nil, err
		}
		defer func() { _ = closeFn() }()
		log = teed
	}

	best := &BestFit{Parameters: p.params.Clone()}
	total := p.cfg.Rounds()
	log.Info("pipeline started",
		zap.String("family", string(p.params.Family())),
		zap.Int("rounds", total),
		zap.Int("points", p.data.Len()))

	for round := 0; round < total; round++ {
		if err := ctx.Err(); err != nil {
			return best, err
		}
		tk, err := p.prepareRound(round, log)
		if err != nil {
			return best, err
		}
		if err = p.runTask(ctx, tk, fmt.Sprint(round), best, log); err != nil {
			return best, err
		}
	}

	if p.cfg.FinalFullFit {
		if err := ctx.Err(); err != nil {
			return best, err
		}
		p.params.ReleaseAll()
		tk, err := p.newTask(finalRoundName, nil, log)
		if err != nil {
			return best, err
		}
		if err = p.runTask(ctx, tk, finalRoundName, best, log); err != nil {
			return best, err
		}
	}

	if p.cfg.ReportDir != "" {
		if err := p.params.Save(filepath.Join(p.cfg.ReportDir, FinalParametersFile)); err != nil {
			return best, err
		}
	}
	if best.ChiSquared != nil {
		log.Info("pipeline finished", zap.Float64("best_chi_squared", *best.ChiSquared), zap.String("best_round", best.Round))
	} else {
		log.Warn("pipeline finished without a successful round")
	}

	return best, nil
}

// prepareRound sets the fixed pattern of round i on the carried vector and
// builds its task.
func (p *Pipeline[P]) prepareRound(round int, log *zap.Logger) (*task.Task[P], error) {
	v := p.params
	v.ReleaseAll()
	if round < p.cfg.WarmupRounds {
		if err := v.Fix(v.ResonanceNames()...); err != nil {
			return nil, err
		}
	}
	if p.cfg.Perturb {
		err := perturb.Perturb(v,
			perturb.WithScales(p.cfg.ResonanceScale, p.cfg.OtherScale),
			perturb.WithBoundsMode(p.cfg.BoundsMode),
			perturb.WithRand(p.rng))
		if err != nil {
			return nil, err
		}
	}

	candidates := v.FreeNames()
	chosen, err := perturb.Sample(candidates, min(p.cfg.nFree(round), len(candidates)), p.rng)
	if err != nil {
		return nil, err
	}
	v.FixAll()
	if err = v.Release(chosen...); err != nil {
		return nil, err
	}

	var half *rand.Rand
	if round < p.cfg.PartialRounds {
		half = perturb.DeriveRand(p.rng, uint64(round))
	}
	log.Debug("round prepared", zap.Int("round", round), zap.Strings("free", chosen), zap.Bool("partial", half != nil))

	return p.newTask(fmt.Sprintf("round_%d", round), half, log)
}

func (p *Pipeline[P]) newTask(name string, half *rand.Rand, log *zap.Logger) (*task.Task[P], error) {
	opts := []task.Option{
		task.WithBoundsMode(p.cfg.BoundsMode),
		task.WithMaxEvaluations(p.cfg.MaxEvaluations),
		task.WithMethod(p.cfg.Method),
		task.WithLogger(log),
	}
	if half != nil {
		opts = append(opts, task.WithRandomHalf(half))
	}

	return task.New(name, p.params, p.data, p.constants, p.masses, opts...)
}

// runTask runs tk, records it, updates best on strict improvement and
// carries the task's vector on.
func (p *Pipeline[P]) runTask(ctx context.Context, tk *task.Task[P], round string, best *BestFit, log *zap.Logger) error {
	if err := tk.Run(ctx); err != nil {
		return err
	}
	best.Rounds++
	report := tk.Report()
	if err := p.writeReport(round, report); err != nil {
		return err
	}

	chi2, ok := tk.ChiSquared()
	switch {
	case !ok:
		best.Failed++
		log.Warn("round failed", zap.String("round", round), zap.String("error", tk.Message()))
	case best.ChiSquared == nil || chi2 < *best.ChiSquared:
		best.ChiSquared = &chi2
		best.Round = round
		best.Parameters = tk.Parameters().Clone()
		best.Report = report
		log.Info("new best fit", zap.String("round", round), zap.Float64("chi_squared", chi2))
	default:
		log.Info("round finished", zap.String("round", round), zap.Float64("chi_squared", chi2))
	}
	p.params = tk.Parameters()

	return nil
}

// writeReport stores report_<round>.txt as YAML.
func (p *Pipeline[P]) writeReport(round string, r task.Report) error {
	if p.cfg.ReportDir == "" {
		return nil
	}
	raw, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("report %s: %w", round, err)
	}
	path := filepath.Join(p.cfg.ReportDir, fmt.Sprintf("report_%s.txt", round))

	return os.WriteFile(path, raw, 0o644)
}
