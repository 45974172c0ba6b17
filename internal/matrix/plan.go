// SPDX-License-Identifier: MPL-2.0

package matrix

import (
	"errors"
	"fmt"
)

// ErrEmptyDimension is returned when a matrix dimension has no values.
var ErrEmptyDimension = errors.New("empty matrix dimension")

type (
	// Dimensions holds the enumerated sets the matrix is expanded from.
	// Expansion is a pure cross-product over these sets, so adding a value
	// (a new toolchain, a new target triple) is a data change rather than
	// a control-flow change.
	Dimensions struct {
		Toolchains   []Toolchain
		Platforms    []Platform
		FeatureSets  []FeatureSet
		Freestanding []FreestandingTarget
	}

	// Plan is the closed set of cells one verification run evaluates:
	// every hosted build configuration plus every freestanding target.
	Plan struct {
		Cells        []BuildConfiguration
		Freestanding []FreestandingTarget
	}

	// CellGroup is the set of hosted cells sharing one (toolchain, platform)
	// pair. The static quality gates run once for the group; each cell in it
	// gets its own test gate.
	CellGroup struct {
		Pair  HostPair
		Cells []BuildConfiguration
	}

	// EmptyDimensionError is returned when Expand is given a dimension with
	// no values. It wraps ErrEmptyDimension for errors.Is() compatibility.
	EmptyDimensionError struct {
		Dimension string
	}
)

// Error implements the error interface for EmptyDimensionError.
func (e *EmptyDimensionError) Error() string {
	return fmt.Sprintf("matrix dimension %q has no values", e.Dimension)
}

// Unwrap returns ErrEmptyDimension for errors.Is() compatibility.
func (e *EmptyDimensionError) Unwrap() error { return ErrEmptyDimension }

// DefaultDimensions returns the built-in matrix: all three release channels,
// both desktop platforms, all three feature configurations, and the
// thumbv6m-none-eabi freestanding target.
func DefaultDimensions() Dimensions {
	return Dimensions{
		Toolchains:   []Toolchain{ToolchainStable, ToolchainBeta, ToolchainNightly},
		Platforms:    []Platform{PlatformLinux, PlatformWindows},
		FeatureSets:  []FeatureSet{FeatureSetDefault, FeatureSetNone, FeatureSetAlloc},
		Freestanding: []FreestandingTarget{{Triple: DefaultFreestandingTriple}},
	}
}

// IsValid returns whether every value in every dimension is valid.
// The Freestanding dimension may be empty (a matrix without freestanding
// targets is legal); the other three must have at least one value.
func (d Dimensions) IsValid() (bool, []error) {
	var errs []error
	if len(d.Toolchains) == 0 {
		errs = append(errs, &EmptyDimensionError{Dimension: "toolchains"})
	}
	if len(d.Platforms) == 0 {
		errs = append(errs, &EmptyDimensionError{Dimension: "platforms"})
	}
	if len(d.FeatureSets) == 0 {
		errs = append(errs, &EmptyDimensionError{Dimension: "feature_sets"})
	}
	for _, t := range d.Toolchains {
		if valid, fieldErrs := t.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	for _, p := range d.Platforms {
		if valid, fieldErrs := p.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	for _, f := range d.FeatureSets {
		if valid, fieldErrs := f.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	for _, t := range d.Freestanding {
		if valid, fieldErrs := t.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, errs
	}
	return true, nil
}

// Expand produces the plan as a cross-product over the dimensions.
// Cell order is deterministic: toolchains outermost, feature sets innermost.
func Expand(d Dimensions) (*Plan, error) {
	if valid, errs := d.IsValid(); !valid {
		return nil, errors.Join(errs...)
	}

	cells := make([]BuildConfiguration, 0, len(d.Toolchains)*len(d.Platforms)*len(d.FeatureSets))
	for _, tc := range d.Toolchains {
		for _, p := range d.Platforms {
			for _, fs := range d.FeatureSets {
				cells = append(cells, BuildConfiguration{
					Toolchain:  tc,
					Platform:   p,
					FeatureSet: fs,
				})
			}
		}
	}

	return &Plan{
		Cells:        cells,
		Freestanding: append([]FreestandingTarget(nil), d.Freestanding...),
	}, nil
}

// Groups returns the hosted cells grouped by (toolchain, platform) pair,
// preserving plan order. Expand keeps the feature-set dimension innermost,
// so grouping consecutive cells is exact.
func (p *Plan) Groups() []CellGroup {
	var groups []CellGroup
	for _, c := range p.Cells {
		pair := c.Pair()
		if n := len(groups); n > 0 && groups[n-1].Pair == pair {
			groups[n-1].Cells = append(groups[n-1].Cells, c)
			continue
		}
		groups = append(groups, CellGroup{Pair: pair, Cells: []BuildConfiguration{c}})
	}
	return groups
}

// HostedCells splits the hosted cells into those runnable on the given host
// platform and those that belong to a foreign OS. A local run can only
// execute its own platform's cells; foreign cells are still surfaced (as
// skipped) so the report covers the full matrix.
func (p *Plan) HostedCells(host Platform) (runnable, foreign []BuildConfiguration) {
	for _, c := range p.Cells {
		if c.Platform == host {
			runnable = append(runnable, c)
		} else {
			foreign = append(foreign, c)
		}
	}
	return runnable, foreign
}

// Size returns the total number of cells in the plan, freestanding included.
func (p *Plan) Size() int {
	return len(p.Cells) + len(p.Freestanding)
}
