// SPDX-License-Identifier: MPL-2.0

// Package matrix models the verification matrix for a crate: the enumerated
// toolchain, platform, and feature-set dimensions, their cross-product into
// concrete build configurations, and the freestanding targets that are built
// (but never test-executed) alongside the hosted cells.
//
// The matrix is declared in a crateci.cue manifest validated against an
// embedded CUE schema; when no manifest is present the built-in default
// matrix is used (stable/beta/nightly x linux/windows x default/none/alloc,
// plus a thumbv6m-none-eabi freestanding target).
package matrix
