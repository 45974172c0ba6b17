// SPDX-License-Identifier: MPL-2.0

package cmd

import "fmt"

// ExitError carries a process exit code through the cobra error path so
// Execute can terminate with it. A red verification run exits 1 without
// printing a Go error trace on top of the rendered report.
type ExitError struct {
	// Code is the process exit code.
	Code int
	// Silent suppresses cobra's error printing; the command already
	// rendered its own output.
	Silent bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// newSilentExit returns an ExitError whose message has already been shown.
func newSilentExit(code int) *ExitError {
	return &ExitError{Code: code, Silent: true}
}
