// SPDX-License-Identifier: MIT

// Package task runs one bounded least-squares fit of a parameter vector to a
// labeled dataset and records the outcome.
//
// A Task owns a clone of the vector it was built with. Pre-fit variants
// (WithChargedOnly, WithTimelikeOnly, WithRandomHalf, WithBelow) narrow the
// dataset; fix templates (WithFixedResonances, WithFixedCoefficients) narrow
// the free set. Both are applied once, in New.
//
// Run fits the free parameters. On success the fitted values are written into
// the task's vector and the reduced χ², the covariance and the parameter
// errors are stored. Optimizer failures (evaluation budget exhausted or a
// non-finite model) mark the task as failed and leave the vector unchanged;
// they are not returned as errors. Input errors are.
package task
