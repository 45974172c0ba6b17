// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// NativeRunner executes argv invocations directly via os/exec.
type NativeRunner struct{}

// NewNativeRunner creates a new native runner.
func NewNativeRunner() *NativeRunner {
	return &NativeRunner{}
}

// Name returns the runner name.
func (r *NativeRunner) Name() string {
	return "native"
}

// Available returns whether this runner is available.
// Direct process execution needs no host support beyond os/exec.
func (r *NativeRunner) Available() bool {
	return true
}

// Validate checks that the invocation carries an argv.
func (r *NativeRunner) Validate(inv *Invocation) error {
	if len(inv.Argv) == 0 {
		return fmt.Errorf("no command to execute")
	}
	return nil
}

// Execute runs the invocation, capturing stdout/stderr into the Result.
// A non-zero exit status is a normal Result, not an Error; only spawn
// failures populate Error.
func (r *NativeRunner) Execute(ctx context.Context, inv *Invocation) *Result {
	cmd := exec.CommandContext(ctx, inv.Argv[0], inv.Argv[1:]...)

	if inv.Dir != "" {
		cmd.Dir = inv.Dir
	}
	cmd.Env = append(os.Environ(), EnvToSlice(inv.Env)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = teeWriter(&stdout, inv.Stdout)
	cmd.Stderr = teeWriter(&stderr, inv.Stderr)

	err := cmd.Run()
	result := &Result{
		Output:    stdout.String(),
		ErrOutput: stderr.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = ExitCode(exitErr.ExitCode())
		} else {
			result.ExitCode = 1
			result.Error = fmt.Errorf("failed to execute %s: %w", inv.Argv[0], err)
		}
	}

	return result
}

// teeWriter returns capture alone when live is nil, otherwise a MultiWriter
// feeding both.
func teeWriter(capture *bytes.Buffer, live io.Writer) io.Writer {
	if live == nil {
		return capture
	}
	return io.MultiWriter(capture, live)
}
