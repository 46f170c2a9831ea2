// SPDX-License-Identifier: MIT

// Package config loads the YAML configuration of the uafit driver: physical
// constants, particle masses, data sources, the fit schedule and output
// locations. Missing files yield the defaults; a few settings can be
// overridden from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/lh7326/UA-model-sub000/crosssection"
	"github.com/lh7326/UA-model-sub000/data"
	"github.com/lh7326/UA-model-sub000/lsq"
	"github.com/lh7326/UA-model-sub000/parameters"
	"github.com/lh7326/UA-model-sub000/perturb"
	"github.com/lh7326/UA-model-sub000/pipeline"
)

// Environment variables read by Load.
const (
	EnvLogLevel  = "UAFIT_LOG_LEVEL"
	EnvReportDir = "UAFIT_REPORT_DIR"
	EnvWorkers   = "UAFIT_WORKERS"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the complete driver configuration.
type Config struct {
	Family     string   `yaml:"family"`
	Parameters string   `yaml:"parameters,omitempty"` // start vector file; empty means family defaults
	Physics    Physics  `yaml:"physics"`
	Data       Data     `yaml:"data"`
	Schedule   Schedule `yaml:"schedule"`
	Fit        Fit      `yaml:"fit"`
	Output     Output   `yaml:"output"`
	Logging    Logging  `yaml:"logging"`
	Seeds      []int64  `yaml:"seeds"`
	Workers    int      `yaml:"workers"`
}

// Physics holds the constants entering models and cross sections.
type Physics struct {
	Alpha         float64           `yaml:"alpha"`
	HCSquared     float64           `yaml:"hc_squared"`
	Masses        parameters.Masses `yaml:"masses"`
	ProtonMoment  float64           `yaml:"proton_magnetic_moment"`
	NeutronMoment float64           `yaml:"neutron_magnetic_moment"`
}

// Data lists the tables to fit.
type Data struct {
	Meson   []data.MesonSource   `yaml:"meson,omitempty"`
	Nucleon []data.NucleonSource `yaml:"nucleon,omitempty"`
}

// Schedule is the staged pipeline schedule.
type Schedule struct {
	NFree          []int   `yaml:"n_free"`
	Iterations     []int   `yaml:"iterations"`
	WarmupRounds   int     `yaml:"warmup_rounds"`
	PartialRounds  int     `yaml:"partial_rounds"`
	FinalFullFit   bool    `yaml:"final_full_fit"`
	Perturb        bool    `yaml:"perturb"`
	ResonanceScale float64 `yaml:"resonance_scale"`
	OtherScale     float64 `yaml:"other_scale"`
}

// Fit configures the least-squares solver.
type Fit struct {
	Method         string `yaml:"method"`
	MaxEvaluations int    `yaml:"max_evaluations"`
	Bounds         string `yaml:"bounds"`
}

// Output names where results go.
type Output struct {
	ReportDir string `yaml:"report_dir"`
	Database  string `yaml:"database,omitempty"`
}

// Logging configures zap.
type Logging struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Family: string(parameters.Kaon),
		Physics: Physics{
			Alpha:         1 / 137.035999084,
			HCSquared:     0.3893793721e6,
			Masses:        parameters.DefaultMasses,
			ProtonMoment:  parameters.DefaultProtonMoment,
			NeutronMoment: parameters.DefaultNeutronMoment,
		},
		Schedule: Schedule{
			NFree:          []int{3, 6, 10},
			Iterations:     []int{10, 10, 10},
			WarmupRounds:   5,
			PartialRounds:  10,
			FinalFullFit:   true,
			Perturb:        true,
			ResonanceScale: perturb.DefaultResonanceScale,
			OtherScale:     perturb.DefaultOtherScale,
		},
		Fit: Fit{
			Method:         lsq.MethodLevenbergMarquardt.String(),
			MaxEvaluations: lsq.DefaultMaxEvaluations,
			Bounds:         parameters.BoundsHandpicked.String(),
		},
		Output:  Output{ReportDir: "reports"},
		Logging: Logging{Level: "info"},
		Seeds:   []int64{1},
		Workers: 1,
	}
}

// Load reads path over the defaults and applies the environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err = yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err = cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		c.Logging.Level = lvl
	}
	if dir := os.Getenv(EnvReportDir); dir != "" {
		c.Output.ReportDir = dir
	}
	if w := os.Getenv(EnvWorkers); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvWorkers, w, ErrInvalid)
		}
		c.Workers = n
	}

	return nil
}

// Save writes the configuration as YAML, creating the directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	raw, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, raw, 0o644)
}

// Validate checks every setting that can be checked without touching data.
func (c *Config) Validate() error {
	if _, err := parameters.ParseFamily(c.Family); err != nil {
		return errors.Join(ErrInvalid, err)
	}
	if err := c.Constants().Validate(); err != nil {
		return errors.Join(ErrInvalid, err)
	}
	if _, err := lsq.ParseMethod(c.Fit.Method); err != nil {
		return errors.Join(ErrInvalid, err)
	}
	if _, err := parameters.ParseBoundsMode(c.Fit.Bounds); err != nil {
		return errors.Join(ErrInvalid, err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers=%d: %w", c.Workers, ErrInvalid)
	}
	if len(c.Seeds) == 0 {
		return fmt.Errorf("no seeds: %w", ErrInvalid)
	}
	pc, err := c.PipelineConfig(c.Seeds[0])
	if err != nil {
		return err
	}
	if err = pc.Validate(); err != nil {
		return errors.Join(ErrInvalid, err)
	}

	return nil
}

// Constants returns the cross-section constants.
func (c *Config) Constants() crosssection.Constants {
	return crosssection.Constants{Alpha: c.Physics.Alpha, HCSquared: c.Physics.HCSquared}
}

// PipelineConfig converts the schedule for one seed. The report directory of
// a seed is <report_dir>/seed_<seed>.
func (c *Config) PipelineConfig(seed int64) (pipeline.Config, error) {
	method, err := lsq.ParseMethod(c.Fit.Method)
	if err != nil {
		return pipeline.Config{}, errors.Join(ErrInvalid, err)
	}
	mode, err := parameters.ParseBoundsMode(c.Fit.Bounds)
	if err != nil {
		return pipeline.Config{}, errors.Join(ErrInvalid, err)
	}
	dir := ""
	if c.Output.ReportDir != "" {
		dir = filepath.Join(c.Output.ReportDir, fmt.Sprintf("seed_%d", seed))
	}

	return pipeline.Config{
		NFree:          append([]int(nil), c.Schedule.NFree...),
		Iterations:     append([]int(nil), c.Schedule.Iterations...),
		WarmupRounds:   c.Schedule.WarmupRounds,
		PartialRounds:  c.Schedule.PartialRounds,
		FinalFullFit:   c.Schedule.FinalFullFit,
		Perturb:        c.Schedule.Perturb,
		ResonanceScale: c.Schedule.ResonanceScale,
		OtherScale:     c.Schedule.OtherScale,
		ReportDir:      dir,
		Seed:           seed,
		BoundsMode:     mode,
		MaxEvaluations: c.Fit.MaxEvaluations,
		Method:         method,
	}, nil
}

// StartVector returns the vector the fit starts from: the parameters file if
// set, otherwise the family defaults with the configured masses and moments.
func (c *Config) StartVector() (*parameters.Vector, error) {
	family, err := parameters.ParseFamily(c.Family)
	if err != nil {
		return nil, errors.Join(ErrInvalid, err)
	}
	if c.Parameters != "" {
		v, err := parameters.Load(c.Parameters)
		if err != nil {
			return nil, err
		}
		if v.Family() != family {
			return nil, fmt.Errorf("%s holds %s, want %s: %w", c.Parameters, v.Family(), family, ErrInvalid)
		}

		return v, nil
	}
	v, err := parameters.Defaults(family, c.Physics.Masses)
	if err != nil {
		return nil, err
	}
	if family == parameters.Nucleon {
		if err = v.Set(parameters.ProtonMomentName, c.Physics.ProtonMoment); err != nil {
			return nil, err
		}
		if err = v.Set(parameters.NeutronMomentName, c.Physics.NeutronMoment); err != nil {
			return nil, err
		}
	}

	return v, nil
}
