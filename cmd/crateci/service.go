// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"crateci/internal/cargo"
	"crateci/internal/config"
	"crateci/internal/issue"
	"crateci/internal/matrix"
	"crateci/internal/runner"

	"github.com/charmbracelet/log"
)

// verification bundles everything a command needs to evaluate gates
// against one crate.
type verification struct {
	CrateDir string
	Crate    *cargo.CrateManifest
	Manifest *matrix.Manifest
	Tool     *cargo.Tool
	Runners  *runner.Registry
	Log      *log.Logger
}

// newVerification resolves the crate directory, toolchain binaries, crate
// manifest, and matrix manifest. Failures are printed with their matching
// issue card and returned as a silent ExitError.
func newVerification(args []string) (*verification, error) {
	logger := newLogger()

	crateDir := "."
	if len(args) > 0 {
		crateDir = args[0]
	}
	crateDir, err := filepath.Abs(crateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve crate directory: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		// Config problems were already warned about during init; fall
		// back to defaults so verification can still run.
		cfg = config.DefaultConfig()
	}

	tool, err := cargo.FindTool(cfg.CargoPath.String(), cfg.RustupPath.String())
	if err != nil {
		err = toolLookupError(err)
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		renderIssue(logger, issue.CargoNotFoundId)
		return nil, newSilentExit(2)
	}

	crate, err := cargo.LoadCrateManifest(crateDir)
	if err != nil {
		err = crateManifestError(crateDir, err)
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		if errors.Is(err, cargo.ErrCrateManifestNotFound) {
			renderIssue(logger, issue.CrateManifestNotFoundId)
		}
		return nil, newSilentExit(2)
	}

	if err := crate.VerifyFeatureContract(); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		var contractErr *cargo.FeatureContractError
		if errors.As(err, &contractErr) {
			for _, v := range contractErr.Violations {
				fmt.Fprintln(os.Stderr, "  • "+v)
			}
		}
		renderIssue(logger, issue.FeatureContractViolationId)
		return nil, newSilentExit(2)
	}

	manifest, err := matrix.LoadManifest(crateDir)
	if err != nil {
		err = matrixManifestError(crateDir, err)
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		renderIssue(logger, issue.MatrixManifestParseErrorId)
		return nil, newSilentExit(2)
	}

	return &verification{
		CrateDir: crateDir,
		Crate:    crate,
		Manifest: manifest,
		Tool:     tool,
		Runners:  runner.NewRegistry(),
		Log:      logger,
	}, nil
}

// toolLookupError decorates a failed cargo/rustup lookup with the steps
// that usually resolve it.
func toolLookupError(err error) error {
	return issue.NewErrorContext().
		WithOperation("locate the Rust toolchain binaries").
		WithSuggestion("Install rustup from https://rustup.rs").
		WithSuggestion("Or point cargo_path in the crateci config at an existing cargo binary").
		Wrap(err).
		BuildError()
}

// crateManifestError decorates a Cargo.toml load failure with the crate
// directory it was looked for in.
func crateManifestError(crateDir string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load the crate manifest").
		WithResource(filepath.Join(crateDir, "Cargo.toml")).
		WithSuggestion("Run from the crate root, or pass the crate directory as an argument").
		Wrap(err).
		BuildError()
}

// matrixManifestError decorates a crateci.cue load failure.
func matrixManifestError(crateDir string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load the matrix manifest").
		WithResource(filepath.Join(crateDir, "crateci.cue")).
		WithSuggestion("Run 'crateci init' to generate a valid manifest").
		WithSuggestion("Or delete the file to verify against the built-in matrix").
		Wrap(err).
		BuildError()
}

// preflight warns about matrix entries the local rustup cannot serve yet:
// uninstalled toolchain channels and freestanding targets. Warnings only;
// the affected gates will fail on their own and be reported as such.
func (v *verification) preflight(ctx context.Context) {
	if v.Tool.Rustup == "" {
		v.Log.Debug("rustup not found, skipping preflight checks")
		return
	}

	native, err := v.Runners.Get(runner.RunnerTypeNative)
	if err != nil {
		return
	}

	installed, err := cargo.InstalledToolchains(ctx, native, v.Tool)
	if err != nil {
		v.Log.Debug("toolchain preflight failed", "error", err)
		return
	}
	missingToolchain := false
	for _, tc := range v.Manifest.Matrix.Toolchains {
		if !cargo.HasToolchain(installed, tc) {
			v.Log.Warn("toolchain not installed", "toolchain", tc)
			missingToolchain = true
		}
	}
	if missingToolchain {
		renderIssue(v.Log, issue.ToolchainNotInstalledId)
	}

	if len(v.Manifest.Freestanding) == 0 {
		return
	}
	targets, err := cargo.InstalledTargets(ctx, native, v.Tool, matrix.ToolchainStable)
	if err != nil {
		v.Log.Debug("target preflight failed", "error", err)
		return
	}
	missingTarget := false
	for _, t := range v.Manifest.Freestanding {
		if !cargo.HasTarget(targets, t.Triple) {
			v.Log.Warn("freestanding target not installed", "triple", t.Triple)
			missingTarget = true
		}
	}
	if missingTarget {
		renderIssue(v.Log, issue.TargetNotInstalledId)
	}
}
