// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"crateci/internal/config"
	"crateci/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// jobs bounds cell parallelism (0 = one worker per CPU)
	jobs int
	// jsonOut switches the report to JSON
	jsonOut bool

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "crateci",
		Short: "A local verification matrix for Rust library crates",
		Long: TitleStyle.Render("crateci") + SubtitleStyle.Render(" - a local verification matrix for Rust library crates") + `

crateci runs the release gate matrix of a crate locally: formatting and
strict lints per toolchain, the test suite under three feature
configurations (default, no-default-features, no-default-features+alloc),
and a freestanding cross-build for a no-OS target using only the alloc
feature.

The matrix is declared in a 'crateci.cue' manifest; without one, the
built-in matrix is used (stable/beta/nightly x linux/windows x
default/none/alloc plus thumbv6m-none-eabi).

` + SubtitleStyle.Render("Examples:") + `
  crateci check             Run the full verification matrix
  crateci plan              Show the matrix without executing it
  crateci gate fmt          Run a single gate
  crateci init              Create a crateci.cue manifest`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/crateci/config.cue)")
	rootCmd.PersistentFlags().IntVarP(&jobs, "jobs", "j", 0, "number of matrix cells to run in parallel (0 = one per CPU)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "emit the report as JSON")

	// Add subcommands
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(gateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleCommandError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// handleCommandError renders command errors. A silent ExitError carries an
// exit code for a failure whose output is already on screen; printing
// "exit code N" on top of the rendered report would only add noise.
func handleCommandError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Silent {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply config values where flags were not given
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}
	if cfg != nil && jobs == 0 {
		jobs = cfg.Jobs
	}
}

// newLogger returns the CLI logger; verbose mode enables debug lines.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "crateci",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// renderIssue prints an issue catalog card to stderr. Rendering problems
// degrade to a log line; the underlying error has already been printed.
func renderIssue(logger *log.Logger, id issue.Id) {
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render("dark")
	if err != nil {
		logger.Warn("failed to render issue card", "issueID", id, "error", err)
		return
	}
	fmt.Fprint(os.Stderr, rendered)
}
