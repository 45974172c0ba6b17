// SPDX-License-Identifier: MPL-2.0

// Package cargo integrates with the Rust toolchain: locating cargo and
// rustup binaries, constructing the exact command lines each gate runs,
// parsing the crate's Cargo.toml to check its feature-flag obligations
// (a non-empty default set and an alloc opt-in feature), and querying
// rustup for installed toolchains and targets for preflight diagnostics.
package cargo
