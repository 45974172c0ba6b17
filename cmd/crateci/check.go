// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"crateci/internal/issue"
	"crateci/internal/pipeline"
	"crateci/internal/report"

	"github.com/spf13/cobra"
)

// checkCmd runs the full verification matrix against a crate.
var checkCmd = &cobra.Command{
	Use:   "check [crate-dir]",
	Short: "Run the full verification matrix",
	Long: `Run every gate of the verification matrix against the crate: formatting
and lint checks per toolchain, the test suite per feature configuration,
and the freestanding cross-build. Exits 0 only when every non-skipped
gate passed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	v, err := newVerification(args)
	if err != nil {
		return err
	}

	v.Log.Info("verifying crate", "crate", v.Crate.Package.Name, "dir", v.CrateDir)
	v.preflight(cmd.Context())

	run, err := pipeline.Run(cmd.Context(), pipeline.Options{
		CrateDir: v.CrateDir,
		Crate:    v.Crate.Package.Name,
		Manifest: v.Manifest,
		Tool:     v.Tool,
		Runners:  v.Runners,
		Jobs:     jobs,
		Log:      v.Log,
	})
	if err != nil {
		if errors.Is(err, pipeline.ErrRunCancelled) {
			// A cancelled run is discarded wholesale, partial results and all.
			fmt.Fprintln(os.Stderr, WarningStyle.Render("Run cancelled; no results recorded."))
			return newSilentExit(130)
		}
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		if errors.Is(err, pipeline.ErrSetupHookFailed) {
			renderIssue(v.Log, issue.SetupHookFailedId)
		}
		return newSilentExit(2)
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
