// SPDX-License-Identifier: MPL-2.0

package report

import (
	"fmt"
	"io"
	"strings"

	"crateci/internal/gate"

	"github.com/charmbracelet/lipgloss"
)

// Marker glyphs per outcome.
const (
	markPassed  = "✓"
	markFailed  = "✗"
	markSkipped = "-"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EF4444"))

	skipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	cellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6"))

	classStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))
)

// Render writes the styled result table and verdict. Results are grouped by
// cell; every failing (gate, configuration) pair is listed again at the end
// with its taxonomy class so the regressed environment is obvious.
func Render(w io.Writer, run *VerificationRun) {
	fmt.Fprintln(w, headerStyle.Render("verification matrix: "+run.Crate))
	fmt.Fprintln(w)

	lastCell := ""
	for _, res := range run.Results {
		if res.Cell != lastCell {
			fmt.Fprintln(w, cellStyle.Render(res.Cell))
			lastCell = res.Cell
		}
		fmt.Fprintf(w, "  %s\n", renderLine(res))
	}

	tally := run.Count()
	fmt.Fprintln(w)
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d passed, %d failed, %d skipped in %s",
		tally.Passed, tally.Failed, tally.Skipped,
		run.Finished.Sub(run.Started).Round(10_000_000)))) // 10ms

	if failing := run.Failing(); len(failing) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, failStyle.Render("failing gates:"))
		for _, res := range failing {
			fmt.Fprintf(w, "  %s %s %s %s\n",
				failStyle.Render(markFailed),
				cellStyle.Render(res.Cell),
				res.Gate,
				classStyle.Render(res.FailureClass))
			if res.Failure != nil {
				fmt.Fprintf(w, "    %s\n", mutedStyle.Render(res.Failure.Error()))
			}
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, failStyle.Render("verdict: FAIL"))
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, passStyle.Render("verdict: PASS"))
}

// renderLine formats one gate result row.
func renderLine(res gate.Result) string {
	name := padRight(res.Gate, 14)
	switch res.Outcome {
	case gate.OutcomePassed:
		return fmt.Sprintf("%s %s %s", passStyle.Render(markPassed), name,
			mutedStyle.Render(res.Duration.Round(10_000_000).String()))
	case gate.OutcomeSkipped:
		return fmt.Sprintf("%s %s %s", skipStyle.Render(markSkipped), name,
			skipStyle.Render(res.Reason))
	default:
		return fmt.Sprintf("%s %s %s", failStyle.Render(markFailed), name,
			classStyle.Render(res.FailureClass))
	}
}

// padRight pads s with spaces to at least n characters.
func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
