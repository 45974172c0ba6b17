// SPDX-License-Identifier: MPL-2.0

package gate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"crateci/internal/runner"
)

// Failure taxonomy sentinels. Every failed gate result wraps exactly one of
// these so the report can enumerate which environment regressed.
var (
	// ErrFormatViolation marks source that deviates from canonical style.
	ErrFormatViolation = errors.New("format violation")
	// ErrLintWarning marks advisory diagnostics promoted to errors.
	ErrLintWarning = errors.New("lint warning")
	// ErrCompile marks a compilation failure under a feature configuration.
	ErrCompile = errors.New("compile error")
	// ErrTestFailure marks failing test cases.
	ErrTestFailure = errors.New("test failure")
	// ErrFreestandingCompile marks a failed freestanding cross-build: some
	// code path improperly assumes a hosted environment. Reported at higher
	// severity than hosted failures.
	ErrFreestandingCompile = errors.New("freestanding compile error")
)

type (
	// FormatViolationError reports non-canonical formatting in a cell.
	FormatViolationError struct {
		Cell string
	}

	// LintWarningError reports clippy diagnostics under -D warnings.
	LintWarningError struct {
		Cell     string
		Warnings int
	}

	// CompileError reports a compilation failure for one feature configuration.
	CompileError struct {
		Cell string
	}

	// TestFailureError reports failing test cases for one feature configuration.
	TestFailureError struct {
		Cell   string
		Failed int
	}

	// FreestandingCompileError reports a failed cross-build for a no-OS
	// target. This is an architectural violation, not a platform flake.
	FreestandingCompileError struct {
		Target string
	}
)

// Error implements the error interface for FormatViolationError.
func (e *FormatViolationError) Error() string {
	return fmt.Sprintf("%s: source formatting deviates from canonical style", e.Cell)
}

// Unwrap returns ErrFormatViolation for errors.Is() compatibility.
func (e *FormatViolationError) Unwrap() error { return ErrFormatViolation }

// Error implements the error interface for LintWarningError.
func (e *LintWarningError) Error() string {
	if e.Warnings > 0 {
		return fmt.Sprintf("%s: %d lint warning(s) under -D warnings", e.Cell, e.Warnings)
	}
	return fmt.Sprintf("%s: lint diagnostics under -D warnings", e.Cell)
}

// Unwrap returns ErrLintWarning for errors.Is() compatibility.
func (e *LintWarningError) Unwrap() error { return ErrLintWarning }

// Error implements the error interface for CompileError.
func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: crate failed to compile", e.Cell)
}

// Unwrap returns ErrCompile for errors.Is() compatibility.
func (e *CompileError) Unwrap() error { return ErrCompile }

// Error implements the error interface for TestFailureError.
func (e *TestFailureError) Error() string {
	if e.Failed > 0 {
		return fmt.Sprintf("%s: %d test case(s) failed", e.Cell, e.Failed)
	}
	return fmt.Sprintf("%s: test suite failed", e.Cell)
}

// Unwrap returns ErrTestFailure for errors.Is() compatibility.
func (e *TestFailureError) Unwrap() error { return ErrTestFailure }

// Error implements the error interface for FreestandingCompileError.
func (e *FreestandingCompileError) Error() string {
	return fmt.Sprintf("freestanding/%s: crate does not build for a no-OS target (hosted-environment assumption?)", e.Target)
}

// Unwrap returns ErrFreestandingCompile for errors.Is() compatibility.
func (e *FreestandingCompileError) Unwrap() error { return ErrFreestandingCompile }

// FailureClass maps a taxonomy error to its stable report identifier.
func FailureClass(err error) string {
	switch {
	case errors.Is(err, ErrFormatViolation):
		return "FormatViolation"
	case errors.Is(err, ErrLintWarning):
		return "LintWarning"
	case errors.Is(err, ErrCompile):
		return "CompileError"
	case errors.Is(err, ErrTestFailure):
		return "TestFailure"
	case errors.Is(err, ErrFreestandingCompile):
		return "FreestandingCompileError"
	default:
		return "InfrastructureFailure"
	}
}

var (
	// "test result: FAILED. 3 passed; 2 failed; ..." from libtest.
	testFailedRe = regexp.MustCompile(`(\d+) failed`)
	// "warning: ..." lines from clippy; the trailing summary line
	// ("warning: `crate` generated N warnings") is counted once like any other.
	lintWarningRe = regexp.MustCompile(`(?m)^warning(\[[^\]]*\])?:`)
)

// classifyTestResult decides whether a failed cargo test run was a compile
// failure or failing test cases. Libtest prints a "test result: FAILED"
// summary only when the suite actually ran; its absence on a non-zero exit
// means compilation (or doctest compilation) failed and test execution was
// short-circuited.
func classifyTestResult(cell string, res *runner.Result) error {
	combined := res.Output + "\n" + res.ErrOutput
	if strings.Contains(combined, "test result: FAILED") {
		failed := 0
		if m := testFailedRe.FindStringSubmatch(combined); m != nil {
			failed, _ = strconv.Atoi(m[1])
		}
		return &TestFailureError{Cell: cell, Failed: failed}
	}
	return &CompileError{Cell: cell}
}

// classifyLintResult distinguishes lint diagnostics from a lint pass that
// failed because the crate does not compile at all.
func classifyLintResult(cell string, res *runner.Result) error {
	if strings.Contains(res.ErrOutput, "could not compile") && !lintWarningRe.MatchString(res.ErrOutput) {
		return &CompileError{Cell: cell}
	}
	return &LintWarningError{Cell: cell, Warnings: len(lintWarningRe.FindAllString(res.ErrOutput, -1))}
}
