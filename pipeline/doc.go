// SPDX-License-Identifier: MIT

// Package pipeline runs the staged iterative fit of one parameter vector and
// the multi-seed driver on top of it.
//
// The schedule is a list of stages; stage j runs Iterations[j] rounds with
// NFree[j] randomly chosen free parameters. A round releases every parameter
// that may be released, optionally fixes all resonances (warm-up rounds),
// optionally perturbs the free values, samples the free subset, and runs one
// task on the full dataset or, in the first PartialRounds rounds, on a random
// half of it. The vector leaving a round enters the next one. After the
// schedule an optional unmasked fit of every releasable parameter follows.
//
// The best reduced χ² seen by any round is kept together with a copy of the
// vector that produced it. Failed rounds are logged and skipped.
//
// With a report directory set, every round writes report_<round>.txt (YAML)
// and all log entries are appended to report.txt; the last vector is saved
// as final_parameters.yaml.
package pipeline
