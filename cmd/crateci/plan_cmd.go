// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"crateci/internal/issue"
	"crateci/internal/matrix"

	"github.com/spf13/cobra"
)

// planCmd prints the expanded matrix without executing anything.
var planCmd = &cobra.Command{
	Use:   "plan [crate-dir]",
	Short: "Show the verification matrix without running it",
	Long: `Expand the matrix declared in crateci.cue (or the built-in default) and
print every cell that a check run would evaluate, marking the cells the
current host cannot execute.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	crateDir := "."
	if len(args) > 0 {
		crateDir = args[0]
	}

	manifest, err := matrix.LoadManifest(crateDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		renderIssue(logger, issue.MatrixManifestParseErrorId)
		return newSilentExit(2)
	}

	plan, err := matrix.Expand(manifest.Dimensions())
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		renderIssue(logger, issue.MatrixManifestParseErrorId)
		return newSilentExit(2)
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}

	host := matrix.CurrentPlatform()
	runnable, foreign := plan.HostedCells(host)

	fmt.Println(TitleStyle.Render(fmt.Sprintf("verification plan: %d cells", plan.Size())))
	fmt.Println()
	for _, cell := range runnable {
		fmt.Printf("  %s\n", CellStyle.Render(cell.String()))
	}
	for _, cell := range foreign {
		fmt.Printf("  %s %s\n", CellStyle.Render(cell.String()),
			SubtitleStyle.Render(fmt.Sprintf("(skipped: requires a %s host)", cell.Platform)))
	}
	for _, target := range plan.Freestanding {
		fmt.Printf("  %s %s\n",
			CellStyle.Render("freestanding/"+target.Triple.String()),
			SubtitleStyle.Render("(build only, never tested)"))
	}
	return nil
}
