// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as
// the file format.
//
// Configuration is loaded from ~/.config/crateci/config.cue (XDG equivalent
// on Linux, ~/Library/Application Support/crateci/config.cue on macOS,
// %APPDATA%\crateci\config.cue on Windows) and validated against an
// embedded CUE schema. Settings cover toolchain binary overrides, cell
// parallelism, and UI preferences; CRATECI_* environment variables override
// file values.
package config
