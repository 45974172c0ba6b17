// SPDX-License-Identifier: MPL-2.0

// Package gate defines the independent pass/fail checks a verification run
// is made of and the results they produce.
//
// Four gates exist: format (canonical style, zero diffs), lint (strict
// clippy with warnings promoted to errors), test (the crate's test suite
// under one feature configuration), and freestanding (cross-build for a
// no-OS target, object code only, never test-executed).
//
// Every gate follows the same lifecycle: Pending -> Running -> Passed or
// Failed. There are no retries; a gate that cannot start is Failed, and a
// cell planned for a foreign host platform is Skipped. Failures are
// classified into a typed taxonomy (format violation, lint warning, compile
// error, test failure, freestanding compile error) so the report can say
// which of the three environments regressed.
package gate
