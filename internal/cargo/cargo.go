// SPDX-License-Identifier: MPL-2.0

package cargo

import (
	"errors"
	"fmt"
	"os/exec"

	"crateci/internal/matrix"
)

var (
	// ErrCargoNotFound is returned when no cargo binary can be located.
	ErrCargoNotFound = errors.New("cargo not found")
	// ErrRustupNotFound is returned when no rustup binary can be located.
	ErrRustupNotFound = errors.New("rustup not found")
)

type (
	// Tool holds resolved paths to the Rust toolchain binaries.
	Tool struct {
		// Cargo is the path to the cargo binary.
		Cargo string
		// Rustup is the path to the rustup binary; may be empty when
		// rustup is not installed (preflight checks are then skipped).
		Rustup string
	}

	// ToolNotFoundError is returned when a toolchain binary cannot be
	// located. It wraps ErrCargoNotFound or ErrRustupNotFound.
	ToolNotFoundError struct {
		Binary string
		Err    error
	}
)

// Error implements the error interface for ToolNotFoundError.
func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("%s binary not found in PATH", e.Binary)
}

// Unwrap returns the matching sentinel for errors.Is() compatibility.
func (e *ToolNotFoundError) Unwrap() error { return e.Err }

// FindTool resolves cargo and rustup, honoring non-empty path overrides
// from configuration. A missing cargo is an error; a missing rustup is not
// (Rustup stays empty and preflight diagnostics degrade gracefully).
func FindTool(cargoOverride, rustupOverride string) (*Tool, error) {
	tool := &Tool{Cargo: cargoOverride, Rustup: rustupOverride}

	if tool.Cargo == "" {
		path, err := exec.LookPath("cargo")
		if err != nil {
			return nil, &ToolNotFoundError{Binary: "cargo", Err: ErrCargoNotFound}
		}
		tool.Cargo = path
	}

	if tool.Rustup == "" {
		if path, err := exec.LookPath("rustup"); err == nil {
			tool.Rustup = path
		}
	}

	return tool, nil
}

// TestArgs returns the argv for running the crate's test suite on the given
// toolchain under the given feature configuration.
func (t *Tool) TestArgs(tc matrix.Toolchain, fs matrix.FeatureSet) []string {
	argv := []string{t.Cargo, "+" + tc.String(), "test"}
	return append(argv, fs.CargoFlags()...)
}

// FmtArgs returns the argv for the canonical-formatting check. Zero diffs
// are allowed; any deviation exits non-zero.
func (t *Tool) FmtArgs(tc matrix.Toolchain) []string {
	return []string{t.Cargo, "+" + tc.String(), "fmt", "--all", "--", "--check"}
}

// ClippyArgs returns the argv for the strict lint pass: all targets, all
// feature combinations, warnings promoted to errors.
func (t *Tool) ClippyArgs(tc matrix.Toolchain) []string {
	return []string{
		t.Cargo, "+" + tc.String(), "clippy",
		"--all-targets", "--all-features",
		"--", "-D", "warnings",
	}
}

// FreestandingBuildArgs returns the argv for the freestanding cross-build:
// object code only, default features off, alloc on, pinned to stable.
func (t *Tool) FreestandingBuildArgs(target matrix.FreestandingTarget) []string {
	return []string{
		t.Cargo, "+" + target.Toolchain().String(), "build",
		"--target", target.Triple.String(),
		"--no-default-features", "--features", "alloc",
	}
}
