// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"crateci/internal/matrix"

	"github.com/spf13/cobra"
)

// defaultManifestTemplate is the crateci.cue written by init: the full
// built-in matrix, spelled out so trimming a dimension is a one-line edit.
const defaultManifestTemplate = `matrix: {
	toolchains:   ["stable", "beta", "nightly"]
	platforms:    ["linux", "windows"]
	feature_sets: ["default", "none", "alloc"]
}

freestanding: [
	{triple: "thumbv6m-none-eabi"},
]

// hooks: setup: "rustup target add thumbv6m-none-eabi"
`

// initCmd scaffolds a crateci.cue manifest in the crate directory.
var initCmd = &cobra.Command{
	Use:   "init [crate-dir]",
	Short: "Create a crateci.cue manifest with the default matrix",
	Long: `Write a crateci.cue manifest declaring the built-in matrix, ready to be
trimmed or extended. Refuses to overwrite an existing manifest.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(_ *cobra.Command, args []string) error {
	crateDir := "."
	if len(args) > 0 {
		crateDir = args[0]
	}

	path := filepath.Join(crateDir, matrix.ManifestFileName)
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+path+" already exists")
		return newSilentExit(2)
	}

	// Sanity-check the template against the schema before writing it out.
	if _, err := matrix.ParseManifest([]byte(defaultManifestTemplate), matrix.ManifestFileName); err != nil {
		return fmt.Errorf("default manifest failed validation: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultManifestTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Println(SuccessStyle.Render("Created ") + CellStyle.Render(path))
	fmt.Println(SubtitleStyle.Render("Edit the matrix dimensions, then run 'crateci check'."))
	return nil
}
