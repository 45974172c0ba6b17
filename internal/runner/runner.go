// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"fmt"
	"io"
)

// Runner type constants for the available execution backends.
const (
	RunnerTypeNative RunnerType = "native"
	RunnerTypeScript RunnerType = "script"
)

type (
	// RunnerType identifies an execution backend.
	//
	//nolint:revive // RunnerType is more descriptive than Type for external callers
	RunnerType string

	// Invocation describes one process or script execution.
	Invocation struct {
		// Argv is the command line for the native runner (argv[0] is the
		// binary). Ignored by the script runner.
		Argv []string
		// Script is the shell snippet for the script runner. Ignored by
		// the native runner.
		Script string
		// Dir is the working directory; empty means the current directory.
		Dir string
		// Env contains additional environment variables layered over the
		// host environment.
		Env map[string]string
		// Stdout, when set, receives a live copy of standard output in
		// addition to Result capture.
		Stdout io.Writer
		// Stderr, when set, receives a live copy of standard error in
		// addition to Result capture.
		Stderr io.Writer
	}

	// Result contains the outcome of one execution.
	Result struct {
		// ExitCode is the process exit status.
		ExitCode ExitCode
		// Error contains any infrastructure error (spawn failure, bad
		// invocation). A non-zero exit with Error == nil is a normal
		// process failure, not an infrastructure one.
		Error error
		// Output is the captured standard output.
		Output string
		// ErrOutput is the captured standard error.
		ErrOutput string
	}

	// Runner executes invocations.
	Runner interface {
		// Name returns the runner name.
		Name() string
		// Available reports whether this runner can execute on this host.
		Available() bool
		// Validate checks whether the invocation is executable by this runner.
		Validate(inv *Invocation) error
		// Execute runs the invocation, honoring ctx cancellation.
		Execute(ctx context.Context, inv *Invocation) *Result
	}

	// Registry holds the available runners keyed by type.
	Registry struct {
		runners map[RunnerType]Runner
	}
)

// Success returns true if the execution completed with a zero exit status
// and no infrastructure error.
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewRegistry creates a registry with both built-in runners registered.
func NewRegistry() *Registry {
	r := &Registry{runners: make(map[RunnerType]Runner)}
	r.Register(RunnerTypeNative, NewNativeRunner())
	r.Register(RunnerTypeScript, NewScriptRunner())
	return r
}

// Register adds a runner to the registry, replacing any existing entry.
func (r *Registry) Register(typ RunnerType, rn Runner) {
	r.runners[typ] = rn
}

// Get returns a runner by type.
func (r *Registry) Get(typ RunnerType) (Runner, error) {
	rn, ok := r.runners[typ]
	if !ok {
		return nil, fmt.Errorf("runner '%s' not registered", typ)
	}
	return rn, nil
}

// Execute runs the invocation with the runner of the given type, validating
// availability and the invocation first.
func (r *Registry) Execute(ctx context.Context, typ RunnerType, inv *Invocation) *Result {
	rn, err := r.Get(typ)
	if err != nil {
		return NewErrorResult(1, err)
	}
	if !rn.Available() {
		return NewErrorResult(1, fmt.Errorf("runner '%s' is not available on this system", rn.Name()))
	}
	if err := rn.Validate(inv); err != nil {
		return NewErrorResult(1, err)
	}
	return rn.Execute(ctx, inv)
}

// EnvToSlice converts an environment map to KEY=VALUE form.
func EnvToSlice(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for k, v := range env {
		result = append(result, k+"="+v)
	}
	return result
}
