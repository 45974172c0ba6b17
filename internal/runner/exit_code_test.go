// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"errors"
	"testing"
)

func TestExitCode_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code ExitCode
		want bool
	}{
		{"zero", 0, true},
		{"one", 1, true},
		{"max", 255, true},
		{"negative", -1, false},
		{"too large", 256, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.code.IsValid()
			if isValid != tt.want {
				t.Errorf("ExitCode(%d).IsValid() = %v, want %v", tt.code, isValid, tt.want)
			}
			if !tt.want {
				if len(errs) == 0 {
					t.Fatalf("ExitCode(%d).IsValid() returned no errors, want error", tt.code)
				}
				if !errors.Is(errs[0], ErrInvalidExitCode) {
					t.Errorf("error should wrap ErrInvalidExitCode, got: %v", errs[0])
				}
			} else if len(errs) > 0 {
				t.Errorf("ExitCode(%d).IsValid() returned unexpected errors: %v", tt.code, errs)
			}
		})
	}
}

func TestExitCode_IsSuccess(t *testing.T) {
	t.Parallel()

	if !ExitCode(0).IsSuccess() {
		t.Error("ExitCode(0).IsSuccess() = false, want true")
	}
	if ExitCode(101).IsSuccess() {
		t.Error("ExitCode(101).IsSuccess() = true, want false")
	}
}

func TestExitCode_String(t *testing.T) {
	t.Parallel()

	if got := ExitCode(101).String(); got != "101" {
		t.Errorf("ExitCode(101).String() = %q, want %q", got, "101")
	}
}
