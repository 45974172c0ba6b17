// SPDX-License-Identifier: MPL-2.0

package matrix

import (
	"errors"
	"testing"
)

func TestExpand_DefaultDimensions(t *testing.T) {
	t.Parallel()

	plan, err := Expand(DefaultDimensions())
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	// 3 toolchains x 2 platforms x 3 feature sets.
	if got, want := len(plan.Cells), 18; got != want {
		t.Errorf("len(Cells) = %d, want %d", got, want)
	}
	if got, want := len(plan.Freestanding), 1; got != want {
		t.Errorf("len(Freestanding) = %d, want %d", got, want)
	}
	if got, want := plan.Size(), 19; got != want {
		t.Errorf("Size() = %d, want %d", got, want)
	}
}

func TestExpand_DeterministicOrder(t *testing.T) {
	t.Parallel()

	d := Dimensions{
		Toolchains:  []Toolchain{ToolchainStable, ToolchainBeta},
		Platforms:   []Platform{PlatformLinux},
		FeatureSets: []FeatureSet{FeatureSetDefault, FeatureSetNone},
	}

	plan, err := Expand(d)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	want := []string{
		"stable/linux/default",
		"stable/linux/none",
		"beta/linux/default",
		"beta/linux/none",
	}
	if len(plan.Cells) != len(want) {
		t.Fatalf("len(Cells) = %d, want %d", len(plan.Cells), len(want))
	}
	for i, cell := range plan.Cells {
		if cell.String() != want[i] {
			t.Errorf("Cells[%d] = %q, want %q", i, cell.String(), want[i])
		}
	}
}

func TestPlan_Groups(t *testing.T) {
	t.Parallel()

	plan, err := Expand(DefaultDimensions())
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	groups := plan.Groups()
	// 3 toolchains x 2 platforms, each with the 3 feature-set cells.
	if got, want := len(groups), 6; got != want {
		t.Fatalf("len(Groups()) = %d, want %d", got, want)
	}
	wantPairs := []string{
		"stable/linux", "stable/windows",
		"beta/linux", "beta/windows",
		"nightly/linux", "nightly/windows",
	}
	for i, group := range groups {
		if group.Pair.String() != wantPairs[i] {
			t.Errorf("Groups()[%d].Pair = %q, want %q", i, group.Pair, wantPairs[i])
		}
		if len(group.Cells) != 3 {
			t.Errorf("Groups()[%d] has %d cells, want 3", i, len(group.Cells))
		}
		for _, cell := range group.Cells {
			if cell.Pair() != group.Pair {
				t.Errorf("cell %q grouped under pair %q", cell, group.Pair)
			}
		}
	}
}

func TestExpand_EveryCellIsDistinct(t *testing.T) {
	t.Parallel()

	plan, err := Expand(DefaultDimensions())
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	seen := make(map[string]bool, len(plan.Cells))
	for _, cell := range plan.Cells {
		id := cell.String()
		if seen[id] {
			t.Errorf("duplicate cell %q in plan", id)
		}
		seen[id] = true
	}
}

func TestExpand_EmptyDimension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dims Dimensions
	}{
		{
			name: "no toolchains",
			dims: Dimensions{
				Platforms:   []Platform{PlatformLinux},
				FeatureSets: []FeatureSet{FeatureSetDefault},
			},
		},
		{
			name: "no platforms",
			dims: Dimensions{
				Toolchains:  []Toolchain{ToolchainStable},
				FeatureSets: []FeatureSet{FeatureSetDefault},
			},
		},
		{
			name: "no feature sets",
			dims: Dimensions{
				Toolchains: []Toolchain{ToolchainStable},
				Platforms:  []Platform{PlatformLinux},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Expand(tt.dims)
			if err == nil {
				t.Fatal("Expand() succeeded, want empty-dimension error")
			}
			if !errors.Is(err, ErrEmptyDimension) {
				t.Errorf("error should wrap ErrEmptyDimension, got: %v", err)
			}
		})
	}
}

func TestExpand_NoFreestandingIsLegal(t *testing.T) {
	t.Parallel()

	d := Dimensions{
		Toolchains:  []Toolchain{ToolchainStable},
		Platforms:   []Platform{PlatformLinux},
		FeatureSets: []FeatureSet{FeatureSetDefault},
	}

	plan, err := Expand(d)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(plan.Freestanding) != 0 {
		t.Errorf("len(Freestanding) = %d, want 0", len(plan.Freestanding))
	}
}

func TestExpand_InvalidDimensionValue(t *testing.T) {
	t.Parallel()

	d := Dimensions{
		Toolchains:  []Toolchain{ToolchainStable, "msvc"},
		Platforms:   []Platform{PlatformLinux},
		FeatureSets: []FeatureSet{FeatureSetDefault},
	}

	_, err := Expand(d)
	if err == nil {
		t.Fatal("Expand() succeeded, want invalid-toolchain error")
	}
	if !errors.Is(err, ErrInvalidToolchain) {
		t.Errorf("error should wrap ErrInvalidToolchain, got: %v", err)
	}
}

func TestPlan_HostedCells(t *testing.T) {
	t.Parallel()

	plan, err := Expand(DefaultDimensions())
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	runnable, foreign := plan.HostedCells(PlatformLinux)
	if got, want := len(runnable), 9; got != want {
		t.Errorf("len(runnable) = %d, want %d", got, want)
	}
	if got, want := len(foreign), 9; got != want {
		t.Errorf("len(foreign) = %d, want %d", got, want)
	}
	for _, cell := range runnable {
		if cell.Platform != PlatformLinux {
			t.Errorf("runnable cell %q has platform %q", cell.String(), cell.Platform)
		}
	}
	for _, cell := range foreign {
		if cell.Platform == PlatformLinux {
			t.Errorf("foreign cell %q has the host platform", cell.String())
		}
	}
}
