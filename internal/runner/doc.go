// SPDX-License-Identifier: MPL-2.0

// Package runner provides process execution for gate commands.
//
// Two runner implementations are available:
//   - native: executes an argv directly via os/exec (cargo, rustup)
//   - script: executes a portable shell snippet with an embedded
//     interpreter (mvdan/sh), used for manifest setup hooks so they behave
//     identically on Linux and Windows hosts
//
// Both implement the Runner interface with Name(), Available(), Validate(),
// and Execute(). Execution always captures stdout/stderr into the Result;
// callers that also want live output attach writers to the Invocation.
package runner
