// Package stats analyzes roll outcomes in bulk.
//
// It provides face-frequency histograms, a chi-square fairness check
// against the uniform distribution, settle-time summaries, and
// [Ensemble] for running many independent rolls in parallel.
package stats
