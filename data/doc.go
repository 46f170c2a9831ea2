// SPDX-License-Identifier: MIT

// Package data assembles labeled datasets for the fitter.
//
// A dataset is an ordered list of labeled points with the measured value and
// its combined uncertainty at the same position:
//
//	Dataset[MesonPoint]{Points: ..., Y: ..., Sigma: ...}
//
// Points come from whitespace-separated tables (ReadTable) with three columns
// (t, value, error) or four columns (t, value, statistical, systematic); the
// two uncertainties of a four-column row are added in quadrature.
// Several labeled groups are merged and stably sorted by t.
//
// Masks (Charged, Timelike, Below, RandomHalf, Filter) are pure: they return a
// new dataset and never touch the receiver.
//
// Synthesize produces Gaussian-noised pseudo data from a prediction function;
// it is what the pipeline tests and `uafit simulate` use.
package data
