// SPDX-License-Identifier: MPL-2.0

// Package pipeline orchestrates one verification run: it expands the matrix
// plan, fans every cell out to a bounded worker pool, and aggregates the
// gate results.
//
// Cells are mutually independent and run fully in parallel, each against an
// isolated workspace (a per-cell CARGO_TARGET_DIR), so no configuration can
// depend on artifacts produced by another. Inside one hosted cell the gates
// run in a fixed order (format, lint, then the feature-set test), but a
// failing gate never suppresses the remaining gates or any sibling cell:
// every result is always reported. The freestanding gates have no ordering
// dependency on hosted cells and run concurrently with them.
//
// Cancelling the context discards the run wholesale; partial results are
// never returned.
package pipeline
