// SPDX-License-Identifier: MPL-2.0

// Package report aggregates gate results into a verification run and
// renders the verdict: a styled per-cell table for terminals and a JSON
// export for tooling. A run is green iff every non-skipped gate passed;
// every failing (gate, configuration) pair is individually enumerated, so
// a regression can be pinned to the environment that broke.
package report
