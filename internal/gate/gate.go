// SPDX-License-Identifier: MPL-2.0

package gate

import (
	"context"
	"time"

	"crateci/internal/cargo"
	"crateci/internal/runner"

	"github.com/charmbracelet/log"
)

// Gate class constants. The class determines how a failure is reported:
// static failures are style problems, test failures are behavioral, and
// freestanding failures indicate an architectural violation (a code path
// assuming a hosted environment).
const (
	ClassStatic       Class = "static"
	ClassTest         Class = "test"
	ClassFreestanding Class = "freestanding"
)

// Outcome constants for the gate lifecycle.
const (
	OutcomePending Outcome = "pending"
	OutcomeRunning Outcome = "running"
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

type (
	// Class categorizes a gate for reporting purposes.
	Class string

	// Outcome is the lifecycle state of one gate evaluation.
	Outcome string

	// Diagnostics carries the raw evidence of a gate evaluation.
	Diagnostics struct {
		ExitCode  runner.ExitCode `json:"exit_code"`
		Output    string          `json:"output,omitempty"`
		ErrOutput string          `json:"err_output,omitempty"`
	}

	// Result is the record of one gate evaluation against one cell.
	// Results are created per invocation, aggregated into a run, and never
	// persisted beyond it.
	Result struct {
		// Gate is the gate name (e.g. "fmt", "clippy", "test").
		Gate string `json:"gate"`
		// Class is the gate's reporting class.
		Class Class `json:"class"`
		// Cell identifies the configuration, e.g. "stable/linux/alloc".
		Cell string `json:"cell"`
		// Outcome is the terminal lifecycle state.
		Outcome Outcome `json:"outcome"`
		// Diagnostics holds exit code and captured output.
		Diagnostics Diagnostics `json:"diagnostics"`
		// Failure classifies a failed outcome; nil otherwise.
		Failure error `json:"-"`
		// FailureClass is the string form of Failure for serialization.
		FailureClass string `json:"failure_class,omitempty"`
		// Reason explains a skipped outcome.
		Reason string `json:"reason,omitempty"`
		// Duration is the wall time of the evaluation.
		Duration time.Duration `json:"duration_ns"`
	}

	// Env is the per-cell evaluation environment a gate runs in. Cells get
	// isolated environments; gates never share mutable state.
	Env struct {
		// CrateDir is the crate source tree.
		CrateDir string
		// Tool locates cargo and rustup.
		Tool *cargo.Tool
		// Exec runs gate processes.
		Exec runner.Runner
		// ExtraEnv is layered over the host environment; the pipeline uses
		// it to point CARGO_TARGET_DIR at the cell's isolated workspace.
		ExtraEnv map[string]string
		// Log receives per-gate progress lines.
		Log *log.Logger
	}

	// Gate is an independent pass/fail check.
	Gate interface {
		// Name returns the gate name.
		Name() string
		// Class returns the gate's reporting class.
		Class() Class
		// Cell returns the identifier of the configuration the gate runs under.
		Cell() string
		// Run evaluates the gate. It must always return a terminal Result,
		// even on infrastructure failure (which is Failed, never retried).
		Run(ctx context.Context, env *Env) Result
	}
)

// IsTerminal reports whether the outcome is a final state.
func (o Outcome) IsTerminal() bool {
	switch o {
	case OutcomePassed, OutcomeFailed, OutcomeSkipped:
		return true
	default:
		return false
	}
}

// CanTransition reports whether the lifecycle permits moving to next.
// Pending may start running or be skipped; running must end passed or
// failed; terminal states permit nothing.
func (o Outcome) CanTransition(next Outcome) bool {
	switch o {
	case OutcomePending:
		return next == OutcomeRunning || next == OutcomeSkipped
	case OutcomeRunning:
		return next == OutcomePassed || next == OutcomeFailed
	default:
		return false
	}
}

// Passed returns true if the gate passed.
func (r Result) Passed() bool { return r.Outcome == OutcomePassed }

// Blocking returns true if the result forces the run red: any failure does,
// a skip does not.
func (r Result) Blocking() bool { return r.Outcome == OutcomeFailed }

// SkippedResult builds a terminal skipped result, used for cells planned on
// a platform other than the current host.
func SkippedResult(g Gate, reason string) Result {
	return Result{
		Gate:    g.Name(),
		Class:   g.Class(),
		Cell:    g.Cell(),
		Outcome: OutcomeSkipped,
		Reason:  reason,
	}
}

// evaluate runs argv through the env's runner and classifies the outcome.
// classify is called only on unsuccessful executions and must return the
// taxonomy error for the failure.
func evaluate(ctx context.Context, env *Env, g Gate, argv []string, classify func(*runner.Result) error) Result {
	res := Result{Gate: g.Name(), Class: g.Class(), Cell: g.Cell(), Outcome: OutcomeRunning}

	if env.Log != nil {
		env.Log.Debug("gate running", "gate", g.Name(), "cell", g.Cell())
	}

	start := time.Now()
	out := env.Exec.Execute(ctx, &runner.Invocation{
		Argv: argv,
		Dir:  env.CrateDir,
		Env:  env.ExtraEnv,
	})
	res.Duration = time.Since(start)
	res.Diagnostics = Diagnostics{
		ExitCode:  out.ExitCode,
		Output:    out.Output,
		ErrOutput: out.ErrOutput,
	}

	switch {
	case out.Error != nil:
		// Infrastructure failure is indistinguishable from a genuine one
		// at this level; the only recovery path is re-triggering the run.
		res.Outcome = OutcomeFailed
		res.Failure = out.Error
	case !out.ExitCode.IsSuccess():
		res.Outcome = OutcomeFailed
		res.Failure = classify(out)
	default:
		res.Outcome = OutcomePassed
	}

	if res.Failure != nil {
		res.FailureClass = FailureClass(res.Failure)
	}

	if env.Log != nil {
		env.Log.Debug("gate finished", "gate", g.Name(), "cell", g.Cell(),
			"outcome", res.Outcome, "exit", res.Diagnostics.ExitCode, "took", res.Duration)
	}
	return res
}
