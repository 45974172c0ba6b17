// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"crateci/internal/config"

	"github.com/spf13/cobra"
)

// configCmd groups configuration inspection subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the crateci configuration",
}

// configShowCmd prints the effective configuration after file, environment,
// and default layering.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

// configPathCmd prints where the configuration file is looked up.
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the configuration file location",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		return newSilentExit(2)
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}

	fmt.Println(TitleStyle.Render("crateci configuration"))
	fmt.Println()
	fmt.Printf("  cargo_path:   %s\n", orDefault(cfg.CargoPath.String(), "(PATH lookup)"))
	fmt.Printf("  rustup_path:  %s\n", orDefault(cfg.RustupPath.String(), "(PATH lookup)"))
	fmt.Printf("  jobs:         %s\n", orDefault(jobsString(cfg.Jobs), "(one per CPU)"))
	fmt.Printf("  color_scheme: %s\n", cfg.UI.ColorScheme)
	fmt.Printf("  verbose:      %t\n", cfg.UI.Verbose)
	return nil
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		fmt.Println(cfgFile)
		return nil
	}
	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Println(filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}

// orDefault returns s, or the fallback when s is empty.
func orDefault(s, fallback string) string {
	if s == "" {
		return SubtitleStyle.Render(fallback)
	}
	return s
}

// jobsString renders a positive jobs count, empty for the 0 default.
func jobsString(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}
