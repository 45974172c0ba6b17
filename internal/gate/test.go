// SPDX-License-Identifier: MPL-2.0

package gate

import (
	"context"

	"crateci/internal/matrix"
	"crateci/internal/runner"
)

// TestGate builds and runs the crate's test suite under one feature
// configuration. Within the configuration a compilation failure
// short-circuits test execution (cargo does this for us), but no
// configuration is skipped based on another's outcome.
type TestGate struct {
	Config matrix.BuildConfiguration
}

// NewTestGate creates the test gate for a cell.
func NewTestGate(cfg matrix.BuildConfiguration) *TestGate {
	return &TestGate{Config: cfg}
}

// Name returns the gate name, qualified by feature set ("test:alloc").
func (g *TestGate) Name() string { return "test:" + g.Config.FeatureSet.String() }

// Class returns ClassTest.
func (g *TestGate) Class() Class { return ClassTest }

// Cell returns the configuration identifier.
func (g *TestGate) Cell() string { return g.Config.String() }

// Run evaluates the test suite for the cell's feature configuration.
func (g *TestGate) Run(ctx context.Context, env *Env) Result {
	argv := env.Tool.TestArgs(g.Config.Toolchain, g.Config.FeatureSet)
	return evaluate(ctx, env, g, argv, func(res *runner.Result) error {
		return classifyTestResult(g.Cell(), res)
	})
}
