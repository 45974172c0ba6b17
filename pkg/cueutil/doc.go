// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared helpers for parsing CUE documents against
// embedded schemas and formatting CUE validation errors with JSON-path
// context. It is used for both the crateci.cue matrix manifest and the
// global config file.
package cueutil
