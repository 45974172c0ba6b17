// SPDX-License-Identifier: MPL-2.0

package config

import "sync"

var (
	mu sync.Mutex

	// cached is the process-wide loaded configuration.
	cached *Config

	// configFileOverride is set via the --config flag.
	configFileOverride string

	// configDirOverride lets tests redirect the config directory.
	configDirOverride string
)

// Load returns the process-wide configuration, loading it on first use.
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if cached != nil {
		return cached, nil
	}
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	cached = cfg
	return cached, nil
}

// SetConfigFilePathOverride points Load at an explicit config file and
// drops any cached configuration.
func SetConfigFilePathOverride(path string) {
	mu.Lock()
	defer mu.Unlock()
	configFileOverride = path
	cached = nil
}

// SetConfigDirOverride redirects the config directory (tests only) and
// drops any cached configuration.
func SetConfigDirOverride(dir string) {
	mu.Lock()
	defer mu.Unlock()
	configDirOverride = dir
	cached = nil
}

// Reset clears all overrides and the cache (tests only).
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	configFileOverride = ""
	configDirOverride = ""
	cached = nil
}
