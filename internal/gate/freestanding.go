// SPDX-License-Identifier: MPL-2.0

package gate

import (
	"context"

	"crateci/internal/matrix"
	"crateci/internal/runner"
)

// FreestandingGate cross-compiles the library for a no-OS target with
// default features disabled and alloc enabled, on the stable toolchain.
// Object code only: nothing is linked into a runnable binary and nothing is
// test-executed. It has no ordering dependency on any hosted cell.
type FreestandingGate struct {
	Target matrix.FreestandingTarget
}

// NewFreestandingGate creates the freestanding gate for a target.
func NewFreestandingGate(target matrix.FreestandingTarget) *FreestandingGate {
	return &FreestandingGate{Target: target}
}

// Name returns the gate name.
func (g *FreestandingGate) Name() string { return "build" }

// Class returns ClassFreestanding.
func (g *FreestandingGate) Class() Class { return ClassFreestanding }

// Cell returns the configuration identifier, e.g. "freestanding/thumbv6m-none-eabi".
func (g *FreestandingGate) Cell() string { return g.Target.String() }

// Run evaluates the freestanding cross-build.
func (g *FreestandingGate) Run(ctx context.Context, env *Env) Result {
	argv := env.Tool.FreestandingBuildArgs(g.Target)
	return evaluate(ctx, env, g, argv, func(_ *runner.Result) error {
		return &FreestandingCompileError{Target: g.Target.Triple.String()}
	})
}
