// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"crateci/internal/gate"
	"crateci/internal/matrix"
	"crateci/internal/pipeline"
	"crateci/internal/report"

	"github.com/spf13/cobra"
)

var (
	// gateToolchain selects the release channel for the gate run.
	gateToolchain string
	// gateFeatures selects the feature configuration for the test gate.
	gateFeatures string
	// gateTarget selects the triple for the freestanding gate.
	gateTarget string

	// gateCmd runs one gate of the matrix against the local host cell.
	gateCmd = &cobra.Command{
		Use:   "gate <fmt|clippy|test|freestanding> [crate-dir]",
		Short: "Run a single gate of the verification matrix",
		Long: `Run one gate in isolation instead of the full matrix: the formatting
check, the strict lint pass, the test suite under one feature
configuration, or the freestanding cross-build. The gate runs against
the current host platform's cell.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runGate,
	}
)

func init() {
	gateCmd.Flags().StringVarP(&gateToolchain, "toolchain", "t", "stable", "release channel (stable, beta, nightly)")
	gateCmd.Flags().StringVarP(&gateFeatures, "features", "f", "default", "feature configuration for the test gate (default, none, alloc)")
	gateCmd.Flags().StringVar(&gateTarget, "target", matrix.DefaultFreestandingTriple.String(), "target triple for the freestanding gate")
}

func runGate(cmd *cobra.Command, args []string) error {
	v, err := newVerification(args[1:])
	if err != nil {
		return err
	}

	gt, err := selectGate(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		return newSilentExit(2)
	}

	res := pipeline.RunGate(cmd.Context(), pipeline.Options{
		CrateDir: v.CrateDir,
		Crate:    v.Crate.Package.Name,
		Manifest: v.Manifest,
		Tool:     v.Tool,
		Runners:  v.Runners,
		Log:      v.Log,
	}, gt)

	started := time.Now().Add(-res.Duration)
	run := &report.VerificationRun{
		Crate:    v.Crate.Package.Name,
		Started:  started,
		Finished: time.Now(),
		Results:  []gate.Result{res},
	}

	if jsonOut {
		if err := report.WriteJSON(os.Stdout, run); err != nil {
			return fmt.Errorf("failed to write JSON report: %w", err)
		}
	} else {
		report.Render(os.Stdout, run)
	}

	if !run.Green() {
		return newSilentExit(1)
	}
	return nil
}

// selectGate builds the requested gate from the command's flags, validating
// the dimension values first.
func selectGate(name string) (gate.Gate, error) {
	host := matrix.CurrentPlatform()
	if host == "" {
		return nil, errors.New("the current host OS is not part of the matrix (linux and windows only)")
	}

	switch name {
	case "fmt", "clippy", "lint":
		pair := matrix.HostPair{
			Toolchain: matrix.Toolchain(gateToolchain),
			Platform:  host,
		}
		if valid, errs := pair.IsValid(); !valid {
			return nil, errors.Join(errs...)
		}
		if name == "fmt" {
			return gate.NewFormatGate(pair), nil
		}
		return gate.NewLintGate(pair), nil
	case "test":
		cfg := matrix.BuildConfiguration{
			Toolchain:  matrix.Toolchain(gateToolchain),
			Platform:   host,
			FeatureSet: matrix.FeatureSet(gateFeatures),
		}
		if valid, errs := cfg.IsValid(); !valid {
			return nil, errors.Join(errs...)
		}
		return gate.NewTestGate(cfg), nil
	case "freestanding":
		target := matrix.FreestandingTarget{Triple: matrix.TargetTriple(gateTarget)}
		if valid, errs := target.IsValid(); !valid {
			return nil, errors.Join(errs...)
		}
		return gate.NewFreestandingGate(target), nil
	default:
		return nil, fmt.Errorf("unknown gate %q (valid: fmt, clippy, test, freestanding)", name)
	}
}
