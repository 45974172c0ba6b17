// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ScriptRunner executes shell snippets with the embedded mvdan/sh
// interpreter. Manifest setup hooks run through it so the same snippet
// behaves identically on Linux and Windows cells.
type ScriptRunner struct{}

// NewScriptRunner creates a new script runner.
func NewScriptRunner() *ScriptRunner {
	return &ScriptRunner{}
}

// Name returns the runner name.
func (r *ScriptRunner) Name() string {
	return "script"
}

// Available returns whether this runner is available.
// The interpreter is built in, so it always is.
func (r *ScriptRunner) Available() bool {
	return true
}

// Validate checks that the invocation carries a syntactically valid script.
func (r *ScriptRunner) Validate(inv *Invocation) error {
	if inv.Script == "" {
		return fmt.Errorf("script has no content to execute")
	}
	if _, err := syntax.NewParser().Parse(strings.NewReader(inv.Script), "script"); err != nil {
		return fmt.Errorf("script syntax error: %w", err)
	}
	return nil
}

// Execute runs the script, capturing stdout/stderr into the Result.
func (r *ScriptRunner) Execute(ctx context.Context, inv *Invocation) *Result {
	prog, err := syntax.NewParser().Parse(strings.NewReader(inv.Script), "script")
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to parse script: %w", err))
	}

	var stdout, stderr bytes.Buffer
	env := append(os.Environ(), EnvToSlice(inv.Env)...)

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil, teeWriter(&stdout, inv.Stdout), teeWriter(&stderr, inv.Stderr)),
	}
	if inv.Dir != "" {
		opts = append(opts, interp.Dir(inv.Dir))
	}

	sh, err := interp.New(opts...)
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to create interpreter: %w", err))
	}

	runErr := sh.Run(ctx, prog)
	result := &Result{
		Output:    stdout.String(),
		ErrOutput: stderr.String(),
	}

	if runErr != nil {
		if status, ok := interp.IsExitStatus(runErr); ok {
			result.ExitCode = ExitCode(status)
		} else {
			result.ExitCode = 1
			result.Error = fmt.Errorf("script execution failed: %w", runErr)
		}
	}

	return result
}
