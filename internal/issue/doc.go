// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing diagnostics: structured actionable
// errors (operation, resource, suggestions) and a catalog of markdown help
// cards rendered with glamour for the environment problems a contributor
// can actually fix (missing cargo, uninstalled toolchain or target, broken
// manifest, violated feature contract).
package issue
