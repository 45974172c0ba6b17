// SPDX-License-Identifier: MPL-2.0

package matrix

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

const (
	// ToolchainStable is the stable release channel.
	ToolchainStable Toolchain = "stable"
	// ToolchainBeta is the beta release channel.
	ToolchainBeta Toolchain = "beta"
	// ToolchainNightly is the nightly release channel.
	ToolchainNightly Toolchain = "nightly"

	// PlatformLinux is the Linux host platform.
	PlatformLinux Platform = "linux"
	// PlatformWindows is the Windows host platform.
	PlatformWindows Platform = "windows"

	// FeatureSetDefault builds with the crate's default features enabled.
	FeatureSetDefault FeatureSet = "default"
	// FeatureSetNone builds with all default features disabled.
	FeatureSetNone FeatureSet = "none"
	// FeatureSetAlloc builds with default features disabled and the alloc
	// feature enabled. Alloc is additive to "no default features"; it is
	// never combined with the default set.
	FeatureSetAlloc FeatureSet = "alloc"

	// DefaultFreestandingTriple is the built-in freestanding target: a
	// 32-bit Cortex-M0 target with no operating system and no native
	// 64-bit atomics.
	DefaultFreestandingTriple TargetTriple = "thumbv6m-none-eabi"
)

var (
	// ErrInvalidToolchain is the sentinel error wrapped by InvalidToolchainError.
	ErrInvalidToolchain = errors.New("invalid toolchain")
	// ErrInvalidPlatform is the sentinel error wrapped by InvalidPlatformError.
	ErrInvalidPlatform = errors.New("invalid platform")
	// ErrInvalidFeatureSet is the sentinel error wrapped by InvalidFeatureSetError.
	ErrInvalidFeatureSet = errors.New("invalid feature set")
	// ErrInvalidTargetTriple is the sentinel error wrapped by InvalidTargetTripleError.
	ErrInvalidTargetTriple = errors.New("invalid target triple")
	// ErrInvalidConfiguration is the sentinel error wrapped by InvalidConfigurationError.
	ErrInvalidConfiguration = errors.New("invalid build configuration")
)

type (
	// Toolchain identifies a compiler release channel.
	Toolchain string

	// InvalidToolchainError is returned when a Toolchain value is not recognized.
	// It wraps ErrInvalidToolchain for errors.Is() compatibility.
	InvalidToolchainError struct {
		Value Toolchain
	}

	// Platform identifies a hosted operating system the matrix runs on.
	Platform string

	// InvalidPlatformError is returned when a Platform value is not recognized.
	// It wraps ErrInvalidPlatform for errors.Is() compatibility.
	InvalidPlatformError struct {
		Value Platform
	}

	// FeatureSet identifies one of the feature configurations every hosted
	// cell must independently build and pass tests under.
	FeatureSet string

	// InvalidFeatureSetError is returned when a FeatureSet value is not recognized.
	// It wraps ErrInvalidFeatureSet for errors.Is() compatibility.
	InvalidFeatureSetError struct {
		Value FeatureSet
	}

	// TargetTriple identifies a cross-compilation target.
	TargetTriple string

	// InvalidTargetTripleError is returned when a TargetTriple value is
	// empty or whitespace-only. It wraps ErrInvalidTargetTriple.
	InvalidTargetTripleError struct {
		Value TargetTriple
	}

	// BuildConfiguration is one hosted matrix cell: a (toolchain, platform,
	// feature set) combination under which the crate must build and pass
	// its test suite.
	BuildConfiguration struct {
		Toolchain  Toolchain  `json:"toolchain"`
		Platform   Platform   `json:"platform"`
		FeatureSet FeatureSet `json:"feature_set"`
	}

	// HostPair is one (toolchain, platform) combination. The static quality
	// gates run once per pair; the feature-set dimension only multiplies the
	// test gates.
	HostPair struct {
		Toolchain Toolchain `json:"toolchain"`
		Platform  Platform  `json:"platform"`
	}

	// InvalidConfigurationError is returned when a BuildConfiguration has
	// invalid fields. It wraps ErrInvalidConfiguration and collects
	// field-level validation errors.
	InvalidConfigurationError struct {
		FieldErrors []error
	}

	// FreestandingTarget is the freestanding matrix cell: the crate is
	// cross-compiled for Triple with default features disabled and alloc
	// enabled, on the stable toolchain, and is never test-executed (the
	// target has no test harness or host I/O).
	FreestandingTarget struct {
		Triple TargetTriple `json:"triple"`
	}
)

// String returns the string representation of the Toolchain.
func (t Toolchain) String() string { return string(t) }

// IsValid returns whether the Toolchain is one of the defined release
// channels, and a list of validation errors if it is not.
func (t Toolchain) IsValid() (bool, []error) {
	switch t {
	case ToolchainStable, ToolchainBeta, ToolchainNightly:
		return true, nil
	default:
		return false, []error{&InvalidToolchainError{Value: t}}
	}
}

// Error implements the error interface for InvalidToolchainError.
func (e *InvalidToolchainError) Error() string {
	return fmt.Sprintf("invalid toolchain %q (valid: stable, beta, nightly)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidToolchainError) Unwrap() error { return ErrInvalidToolchain }

// String returns the string representation of the Platform.
func (p Platform) String() string { return string(p) }

// IsValid returns whether the Platform is one of the defined host platforms,
// and a list of validation errors if it is not.
func (p Platform) IsValid() (bool, []error) {
	switch p {
	case PlatformLinux, PlatformWindows:
		return true, nil
	default:
		return false, []error{&InvalidPlatformError{Value: p}}
	}
}

// Error implements the error interface for InvalidPlatformError.
func (e *InvalidPlatformError) Error() string {
	return fmt.Sprintf("invalid platform %q (valid: linux, windows)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidPlatformError) Unwrap() error { return ErrInvalidPlatform }

// CurrentPlatform returns the Platform matching the running host, or "" when
// the host OS is not part of the matrix (e.g. darwin).
func CurrentPlatform() Platform {
	switch runtime.GOOS {
	case "linux":
		return PlatformLinux
	case "windows":
		return PlatformWindows
	default:
		return ""
	}
}

// String returns the string representation of the FeatureSet.
func (f FeatureSet) String() string { return string(f) }

// IsValid returns whether the FeatureSet is one of the defined feature
// configurations, and a list of validation errors if it is not.
func (f FeatureSet) IsValid() (bool, []error) {
	switch f {
	case FeatureSetDefault, FeatureSetNone, FeatureSetAlloc:
		return true, nil
	default:
		return false, []error{&InvalidFeatureSetError{Value: f}}
	}
}

// CargoFlags returns the cargo feature flags for this feature set. The
// default set adds no flags; none and alloc both disable default features,
// with alloc additionally opting into the alloc feature.
func (f FeatureSet) CargoFlags() []string {
	switch f {
	case FeatureSetNone:
		return []string{"--no-default-features"}
	case FeatureSetAlloc:
		return []string{"--no-default-features", "--features", "alloc"}
	default:
		return nil
	}
}

// Error implements the error interface for InvalidFeatureSetError.
func (e *InvalidFeatureSetError) Error() string {
	return fmt.Sprintf("invalid feature set %q (valid: default, none, alloc)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidFeatureSetError) Unwrap() error { return ErrInvalidFeatureSet }

// String returns the string representation of the TargetTriple.
func (t TargetTriple) String() string { return string(t) }

// IsValid returns whether the TargetTriple is plausibly a target triple
// (non-empty, no whitespace, at least arch-vendor/os segments), and a list
// of validation errors if it is not.
func (t TargetTriple) IsValid() (bool, []error) {
	s := string(t)
	if strings.TrimSpace(s) == "" || strings.ContainsAny(s, " \t") || strings.Count(s, "-") < 2 {
		return false, []error{&InvalidTargetTripleError{Value: t}}
	}
	return true, nil
}

// Error implements the error interface for InvalidTargetTripleError.
func (e *InvalidTargetTripleError) Error() string {
	return fmt.Sprintf("invalid target triple %q", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidTargetTripleError) Unwrap() error { return ErrInvalidTargetTriple }

// String returns the cell identifier, e.g. "stable/linux/alloc".
func (c BuildConfiguration) String() string {
	return fmt.Sprintf("%s/%s/%s", c.Toolchain, c.Platform, c.FeatureSet)
}

// IsValid returns whether the BuildConfiguration has valid fields.
// It delegates to the field types' IsValid methods.
func (c BuildConfiguration) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Toolchain.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Platform.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.FeatureSet.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigurationError{FieldErrors: errs}}
	}
	return true, nil
}

// Pair returns the configuration's (toolchain, platform) pair.
func (c BuildConfiguration) Pair() HostPair {
	return HostPair{Toolchain: c.Toolchain, Platform: c.Platform}
}

// String returns the pair identifier, e.g. "stable/linux".
func (p HostPair) String() string {
	return fmt.Sprintf("%s/%s", p.Toolchain, p.Platform)
}

// IsValid returns whether the HostPair has valid fields.
func (p HostPair) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := p.Toolchain.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := p.Platform.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigurationError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigurationError.
func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid build configuration: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfiguration for errors.Is() compatibility.
func (e *InvalidConfigurationError) Unwrap() error { return ErrInvalidConfiguration }

// String returns the cell identifier, e.g. "freestanding/thumbv6m-none-eabi".
func (t FreestandingTarget) String() string {
	return "freestanding/" + string(t.Triple)
}

// Toolchain returns the toolchain the freestanding build is pinned to.
// The freestanding gate always runs on stable, independent of the hosted
// toolchain dimension.
func (t FreestandingTarget) Toolchain() Toolchain { return ToolchainStable }

// FeatureSet returns the feature configuration the freestanding build uses.
// It is fixed to alloc: default features disabled, alloc enabled.
func (t FreestandingTarget) FeatureSet() FeatureSet { return FeatureSetAlloc }

// IsValid returns whether the FreestandingTarget has a valid triple.
func (t FreestandingTarget) IsValid() (bool, []error) {
	return t.Triple.IsValid()
}
