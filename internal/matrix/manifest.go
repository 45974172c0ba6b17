// SPDX-License-Identifier: MPL-2.0

package matrix

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"crateci/pkg/cueutil"
)

// ManifestFileName is the matrix manifest file looked up in the crate root.
const ManifestFileName = "crateci.cue"

//go:embed manifest_schema.cue
var manifestSchema []byte

// ErrManifestRead is the sentinel error wrapped by ManifestReadError.
var ErrManifestRead = errors.New("manifest read failed")

type (
	// Manifest is the decoded crateci.cue document. Defaults for absent
	// fields are supplied by the CUE schema, so a decoded manifest always
	// has fully populated dimensions.
	Manifest struct {
		Matrix       ManifestMatrix       `json:"matrix"`
		Freestanding []FreestandingTarget `json:"freestanding"`
		Hooks        Hooks                `json:"hooks"`
	}

	// ManifestMatrix declares the hosted matrix dimensions.
	ManifestMatrix struct {
		Toolchains  []Toolchain  `json:"toolchains"`
		Platforms   []Platform   `json:"platforms"`
		FeatureSets []FeatureSet `json:"feature_sets"`
	}

	// Hooks holds portable shell snippets run by the embedded interpreter
	// before any gate executes (e.g. "rustup target add thumbv6m-none-eabi").
	Hooks struct {
		Setup string `json:"setup"`
	}

	// ManifestReadError is returned when the manifest file exists but cannot
	// be read. It wraps ErrManifestRead for errors.Is() compatibility.
	ManifestReadError struct {
		Path string
		Err  error
	}
)

// Error implements the error interface for ManifestReadError.
func (e *ManifestReadError) Error() string {
	return fmt.Sprintf("failed to read manifest %s: %v", e.Path, e.Err)
}

// Unwrap returns ErrManifestRead for errors.Is() compatibility.
func (e *ManifestReadError) Unwrap() error { return ErrManifestRead }

// DefaultManifest returns the manifest used when no crateci.cue exists:
// the full built-in matrix with no hooks.
func DefaultManifest() *Manifest {
	d := DefaultDimensions()
	return &Manifest{
		Matrix: ManifestMatrix{
			Toolchains:  d.Toolchains,
			Platforms:   d.Platforms,
			FeatureSets: d.FeatureSets,
		},
		Freestanding: d.Freestanding,
	}
}

// ParseManifest decodes and schema-validates manifest bytes.
func ParseManifest(data []byte, filename string) (*Manifest, error) {
	return cueutil.Decode[Manifest](manifestSchema, data, "#Manifest", cueutil.WithFilename(filename))
}

// LoadManifest reads the manifest from the crate directory. A missing file
// is not an error: the built-in default manifest is returned instead.
func LoadManifest(crateDir string) (*Manifest, error) {
	path := filepath.Join(crateDir, ManifestFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultManifest(), nil
		}
		return nil, &ManifestReadError{Path: path, Err: err}
	}
	return ParseManifest(data, ManifestFileName)
}

// Dimensions converts the manifest's declared sets into matrix dimensions.
func (m *Manifest) Dimensions() Dimensions {
	return Dimensions{
		Toolchains:   m.Matrix.Toolchains,
		Platforms:    m.Matrix.Platforms,
		FeatureSets:  m.Matrix.FeatureSets,
		Freestanding: m.Freestanding,
	}
}
