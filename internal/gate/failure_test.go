// SPDX-License-Identifier: MPL-2.0

package gate

import (
	"errors"
	"testing"

	"crateci/internal/runner"
)

func TestFailureClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"format", &FormatViolationError{Cell: "stable/linux/default"}, "FormatViolation"},
		{"lint", &LintWarningError{Cell: "stable/linux/default", Warnings: 2}, "LintWarning"},
		{"compile", &CompileError{Cell: "beta/linux/none"}, "CompileError"},
		{"test", &TestFailureError{Cell: "beta/linux/none", Failed: 1}, "TestFailure"},
		{"freestanding", &FreestandingCompileError{Target: "thumbv6m-none-eabi"}, "FreestandingCompileError"},
		{"infrastructure", errors.New("spawn failed"), "InfrastructureFailure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FailureClass(tt.err); got != tt.want {
				t.Errorf("FailureClass() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTaxonomyErrorsWrapSentinels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"format", &FormatViolationError{}, ErrFormatViolation},
		{"lint", &LintWarningError{}, ErrLintWarning},
		{"compile", &CompileError{}, ErrCompile},
		{"test", &TestFailureError{}, ErrTestFailure},
		{"freestanding", &FreestandingCompileError{}, ErrFreestandingCompile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("%T should wrap its sentinel", tt.err)
			}
		})
	}
}

func TestClassifyTestResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		output     string
		errOutput  string
		wantClass  string
		wantFailed int
	}{
		{
			name: "failing test cases",
			output: `running 5 tests
test record::roundtrip ... ok
test record::checksum_mismatch ... FAILED

test result: FAILED. 3 passed; 2 failed; 0 ignored
`,
			wantClass:  "TestFailure",
			wantFailed: 2,
		},
		{
			name:      "compile failure short-circuits tests",
			errOutput: "error[E0433]: failed to resolve: use of undeclared crate or module `std`\nerror: could not compile `ihex`",
			wantClass: "CompileError",
		},
		{
			name:      "empty output counts as compile failure",
			wantClass: "CompileError",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := classifyTestResult("beta/linux/none", &runner.Result{
				ExitCode:  101,
				Output:    tt.output,
				ErrOutput: tt.errOutput,
			})
			if got := FailureClass(err); got != tt.wantClass {
				t.Fatalf("FailureClass() = %q, want %q", got, tt.wantClass)
			}
			if tt.wantClass == "TestFailure" {
				var testErr *TestFailureError
				if !errors.As(err, &testErr) {
					t.Fatalf("error should be a *TestFailureError, got: %T", err)
				}
				if testErr.Failed != tt.wantFailed {
					t.Errorf("Failed = %d, want %d", testErr.Failed, tt.wantFailed)
				}
			}
		})
	}
}

func TestClassifyLintResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		errOutput string
		wantClass string
		wantCount int
	}{
		{
			name: "clippy warnings promoted to errors",
			errOutput: `warning: unused variable: ` + "`x`" + `
warning[W0612]: value assigned is never read
warning: ` + "`ihex`" + ` (lib) generated 2 warnings
error: could not compile ` + "`ihex`" + ` (lib) due to 2 previous errors
`,
			wantClass: "LintWarning",
			wantCount: 3,
		},
		{
			name:      "genuine compile failure",
			errOutput: "error[E0308]: mismatched types\nerror: could not compile `ihex` (lib)",
			wantClass: "CompileError",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := classifyLintResult("stable/linux/default", &runner.Result{
				ExitCode:  1,
				ErrOutput: tt.errOutput,
			})
			if got := FailureClass(err); got != tt.wantClass {
				t.Fatalf("FailureClass() = %q, want %q", got, tt.wantClass)
			}
			if tt.wantClass == "LintWarning" {
				var lintErr *LintWarningError
				if !errors.As(err, &lintErr) {
					t.Fatalf("error should be a *LintWarningError, got: %T", err)
				}
				if lintErr.Warnings != tt.wantCount {
					t.Errorf("Warnings = %d, want %d", lintErr.Warnings, tt.wantCount)
				}
			}
		})
	}
}
