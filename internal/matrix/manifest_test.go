// SPDX-License-Identifier: MPL-2.0

package matrix

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseManifest_FullDocument(t *testing.T) {
	t.Parallel()

	data := []byte(`
matrix: {
	toolchains:   ["stable", "nightly"]
	platforms:    ["linux"]
	feature_sets: ["default", "alloc"]
}
freestanding: [{triple: "riscv32imac-unknown-none-elf"}]
hooks: setup: "rustup target add riscv32imac-unknown-none-elf"
`)

	m, err := ParseManifest(data, "crateci.cue")
	if err != nil {
		t.Fatalf("ParseManifest() error = %v", err)
	}

	if got, want := len(m.Matrix.Toolchains), 2; got != want {
		t.Errorf("len(Toolchains) = %d, want %d", got, want)
	}
	if m.Matrix.Toolchains[1] != ToolchainNightly {
		t.Errorf("Toolchains[1] = %q, want %q", m.Matrix.Toolchains[1], ToolchainNightly)
	}
	if got, want := len(m.Matrix.Platforms), 1; got != want {
		t.Errorf("len(Platforms) = %d, want %d", got, want)
	}
	if got, want := len(m.Freestanding), 1; got != want {
		t.Fatalf("len(Freestanding) = %d, want %d", got, want)
	}
	if m.Freestanding[0].Triple != "riscv32imac-unknown-none-elf" {
		t.Errorf("Freestanding[0].Triple = %q", m.Freestanding[0].Triple)
	}
	if m.Hooks.Setup == "" {
		t.Error("Hooks.Setup is empty, want the declared snippet")
	}
}

func TestParseManifest_SchemaDefaults(t *testing.T) {
	t.Parallel()

	// An empty document gets the full built-in matrix from the schema.
	m, err := ParseManifest([]byte(`matrix: {}`), "crateci.cue")
	if err != nil {
		t.Fatalf("ParseManifest() error = %v", err)
	}

	if got, want := len(m.Matrix.Toolchains), 3; got != want {
		t.Errorf("len(Toolchains) = %d, want %d", got, want)
	}
	if got, want := len(m.Matrix.Platforms), 2; got != want {
		t.Errorf("len(Platforms) = %d, want %d", got, want)
	}
	if got, want := len(m.Matrix.FeatureSets), 3; got != want {
		t.Errorf("len(FeatureSets) = %d, want %d", got, want)
	}
	if got, want := len(m.Freestanding), 1; got != want {
		t.Fatalf("len(Freestanding) = %d, want %d", got, want)
	}
	if m.Freestanding[0].Triple != DefaultFreestandingTriple {
		t.Errorf("Freestanding[0].Triple = %q, want %q", m.Freestanding[0].Triple, DefaultFreestandingTriple)
	}
	if m.Hooks.Setup != "" {
		t.Errorf("Hooks.Setup = %q, want empty default", m.Hooks.Setup)
	}
}

func TestParseManifest_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"syntax error", `matrix: {toolchains: ["stable"`},
		{"unknown toolchain", `matrix: toolchains: ["msvc"]`},
		{"unknown platform", `matrix: platforms: ["darwin"]`},
		{"unknown feature set", `matrix: feature_sets: ["std"]`},
		{"empty triple", `freestanding: [{triple: ""}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := ParseManifest([]byte(tt.data), "crateci.cue"); err == nil {
				t.Errorf("ParseManifest(%q) succeeded, want error", tt.data)
			}
		})
	}
}

func TestLoadManifest_MissingFileYieldsDefault(t *testing.T) {
	t.Parallel()

	m, err := LoadManifest(t.TempDir())
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}

	want := DefaultManifest()
	if got, wantLen := len(m.Matrix.Toolchains), len(want.Matrix.Toolchains); got != wantLen {
		t.Errorf("len(Toolchains) = %d, want %d", got, wantLen)
	}
	if got, wantLen := len(m.Freestanding), len(want.Freestanding); got != wantLen {
		t.Errorf("len(Freestanding) = %d, want %d", got, wantLen)
	}
}

func TestLoadManifest_ReadsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	data := []byte(`matrix: {toolchains: ["stable"], platforms: ["linux"], feature_sets: ["none"]}`)
	if err := os.WriteFile(filepath.Join(dir, ManifestFileName), data, 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	if got, want := len(m.Matrix.Toolchains), 1; got != want {
		t.Errorf("len(Toolchains) = %d, want %d", got, want)
	}
	if m.Matrix.FeatureSets[0] != FeatureSetNone {
		t.Errorf("FeatureSets[0] = %q, want %q", m.Matrix.FeatureSets[0], FeatureSetNone)
	}
}

func TestManifest_Dimensions(t *testing.T) {
	t.Parallel()

	m := DefaultManifest()
	d := m.Dimensions()

	if valid, errs := d.IsValid(); !valid {
		t.Fatalf("default manifest dimensions invalid: %v", errs)
	}
	plan, err := Expand(d)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if got, want := plan.Size(), 19; got != want {
		t.Errorf("Size() = %d, want %d", got, want)
	}
}
