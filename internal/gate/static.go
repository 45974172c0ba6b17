// SPDX-License-Identifier: MPL-2.0

package gate

import (
	"context"

	"crateci/internal/matrix"
	"crateci/internal/runner"
)

type (
	// FormatGate checks that the source tree matches canonical style
	// exactly. Zero diffs allowed; it runs once per (toolchain, platform)
	// pair as a precondition, distinct from test failures.
	FormatGate struct {
		Pair matrix.HostPair
	}

	// LintGate runs the strict linter across all targets and all feature
	// combinations with warnings promoted to errors. Any advisory
	// diagnostic fails the pair. Like the format gate it runs once per
	// (toolchain, platform) pair; the feature-set dimension is exercised
	// by the test gates.
	LintGate struct {
		Pair matrix.HostPair
	}
)

// NewFormatGate creates the format gate for a (toolchain, platform) pair.
func NewFormatGate(pair matrix.HostPair) *FormatGate {
	return &FormatGate{Pair: pair}
}

// Name returns the gate name.
func (g *FormatGate) Name() string { return "fmt" }

// Class returns ClassStatic.
func (g *FormatGate) Class() Class { return ClassStatic }

// Cell returns the pair identifier.
func (g *FormatGate) Cell() string { return g.Pair.String() }

// Run evaluates the format check.
func (g *FormatGate) Run(ctx context.Context, env *Env) Result {
	argv := env.Tool.FmtArgs(g.Pair.Toolchain)
	return evaluate(ctx, env, g, argv, func(_ *runner.Result) error {
		return &FormatViolationError{Cell: g.Cell()}
	})
}

// NewLintGate creates the lint gate for a (toolchain, platform) pair.
func NewLintGate(pair matrix.HostPair) *LintGate {
	return &LintGate{Pair: pair}
}

// Name returns the gate name.
func (g *LintGate) Name() string { return "clippy" }

// Class returns ClassStatic.
func (g *LintGate) Class() Class { return ClassStatic }

// Cell returns the pair identifier.
func (g *LintGate) Cell() string { return g.Pair.String() }

// Run evaluates the strict lint pass.
func (g *LintGate) Run(ctx context.Context, env *Env) Result {
	argv := env.Tool.ClippyArgs(g.Pair.Toolchain)
	return evaluate(ctx, env, g, argv, func(res *runner.Result) error {
		return classifyLintResult(g.Cell(), res)
	})
}
