// SPDX-License-Identifier: MPL-2.0

package cargo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

// CrateManifestName is the crate manifest file name.
const CrateManifestName = "Cargo.toml"

var (
	// ErrCrateManifestNotFound is returned when the crate directory has no Cargo.toml.
	ErrCrateManifestNotFound = errors.New("Cargo.toml not found")
	// ErrFeatureContract is the sentinel error wrapped by FeatureContractError.
	ErrFeatureContract = errors.New("feature contract violation")
)

type (
	// CrateManifest is the subset of Cargo.toml the verifier reads: package
	// identity and the feature-flag declarations.
	CrateManifest struct {
		Package  PackageMeta         `toml:"package"`
		Features map[string][]string `toml:"features"`
	}

	// PackageMeta identifies the crate under test.
	PackageMeta struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	}

	// FeatureContractError is returned when the crate's feature declarations
	// do not satisfy the verification contract. It wraps ErrFeatureContract
	// and collects one message per violated obligation.
	FeatureContractError struct {
		Crate      string
		Violations []string
	}
)

// Error implements the error interface for FeatureContractError.
func (e *FeatureContractError) Error() string {
	return fmt.Sprintf("crate %s violates the feature contract: %d violation(s)", e.Crate, len(e.Violations))
}

// Unwrap returns ErrFeatureContract for errors.Is() compatibility.
func (e *FeatureContractError) Unwrap() error { return ErrFeatureContract }

// LoadCrateManifest reads and decodes the Cargo.toml in crateDir.
func LoadCrateManifest(crateDir string) (*CrateManifest, error) {
	path := filepath.Join(crateDir, CrateManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w in %s", ErrCrateManifestNotFound, crateDir)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var m CrateManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &m, nil
}

// VerifyFeatureContract checks the crate's obligations toward the matrix:
// a [features] table with a non-empty default set (so "no default features"
// is a distinct mode), an alloc opt-in feature, and alloc absent from the
// default set (alloc is additive to no-default-features, never implied).
func (m *CrateManifest) VerifyFeatureContract() error {
	var violations []string

	if len(m.Features) == 0 {
		violations = append(violations, "no [features] table declared")
	} else {
		defaults, ok := m.Features["default"]
		switch {
		case !ok || len(defaults) == 0:
			violations = append(violations, "no non-empty 'default' feature set (a default-off mode is required)")
		case slices.Contains(defaults, "alloc"):
			violations = append(violations, "'alloc' is part of the default set (it must be opt-in)")
		}

		if _, ok := m.Features["alloc"]; !ok {
			violations = append(violations, "no 'alloc' opt-in feature declared")
		}
	}

	if len(violations) > 0 {
		return &FeatureContractError{Crate: m.Package.Name, Violations: violations}
	}
	return nil
}
