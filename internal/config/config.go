// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"crateci/pkg/cueutil"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "crateci"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

//go:embed config_schema.cue
var configSchema []byte

// ConfigDir returns the crateci configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// configFilePath resolves the config file location, honoring the --config
// flag override.
func configFilePath() (string, error) {
	if configFileOverride != "" {
		return configFileOverride, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

// load reads the configuration without touching the package-level cache.
//
// A present config file is decoded against the CUE schema (which fills
// defaults for absent fields); a missing file yields pure defaults. Either
// way CRATECI_* environment variables are applied on top via Viper, and the
// result is validated.
func load() (*Config, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoded, decodeErr := cueutil.Decode[Config](configSchema, data, "#Config",
			cueutil.WithFilename(filepath.Base(path)))
		if decodeErr != nil {
			return nil, fmt.Errorf("failed to load config: %w", decodeErr)
		}
		cfg = decoded
	case os.IsNotExist(err):
		if configFileOverride != "" {
			// An explicitly requested file must exist.
			return nil, fmt.Errorf("failed to load config: %s does not exist", path)
		}
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if valid, errs := cfg.IsValid(); !valid {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// applyEnvOverrides layers CRATECI_* environment variables over the config.
func applyEnvOverrides(cfg *Config) {
	v := viper.New()
	v.SetEnvPrefix("CRATECI")
	v.AutomaticEnv()

	if s := v.GetString("CARGO_PATH"); s != "" {
		cfg.CargoPath = BinaryFilePath(s)
	}
	if s := v.GetString("RUSTUP_PATH"); s != "" {
		cfg.RustupPath = BinaryFilePath(s)
	}
	if v.IsSet("JOBS") {
		if n := v.GetInt("JOBS"); n > 0 {
			cfg.Jobs = n
		}
	}
	if v.GetBool("VERBOSE") {
		cfg.UI.Verbose = true
	}
}
