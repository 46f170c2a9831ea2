// Package uamodel fits Unitary & Analytic (U&A) vector-meson-dominance models
// of electromagnetic form factors to e⁺e⁻ cross sections and form-factor data
// of kaons, pions and nucleons.
//
// The U&A form factors live on the four-sheeted Riemann surface of the
// squared momentum transfer t. Every isospin channel is mapped to the unit
// disk by a conformal map with branch points (t₀, t_in), and the channel is a
// sum of resonance components whose coefficients are partly eliminated by
// normalization and asymptotic constraints.
//
// Packages, bottom-up:
//
//	matrix/        dense row-major matrices, LU with partial pivoting, solves
//	conformal/     the t ↔ W maps and the custom square root
//	component/     one resonance component (variants A and B)
//	formfactor/    channels and the kaon, pion and nucleon models
//	crosssection/  Born cross sections e⁺e⁻ → meson or nucleon pairs
//	parameters/    the named, partly fixed, bounded parameter vector
//	perturb/       bounded random perturbation with seeded streams
//	data/          labeled points, table I/O, masks, synthetic data
//	lsq/           bounded Levenberg–Marquardt and Nelder–Mead curve fits
//	task/          one fit of a vector to a dataset, χ² and errors
//	pipeline/      the staged fit schedule and the multi-seed runner
//	store/         SQLite store of per-seed best fits
//	config/        YAML configuration with environment overrides
//	logging/       zap loggers and the report-file tee
//
// The uafit command (cmd/uafit) drives everything from a configuration file.
package uamodel
