// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"crateci/internal/cargo"
	"crateci/internal/gate"
	"crateci/internal/matrix"
	"crateci/internal/report"
	runexec "crateci/internal/runner"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrSetupHookFailed is returned when the manifest's setup hook exits
	// non-zero. No gate runs after a failed hook.
	ErrSetupHookFailed = errors.New("setup hook failed")
	// ErrRunCancelled is returned when the run's context is cancelled.
	// Partial results are discarded, never merged with a later run.
	ErrRunCancelled = errors.New("verification run cancelled")
)

// Options configures one verification run.
type Options struct {
	// CrateDir is the crate source tree.
	CrateDir string
	// Crate is the crate name, for reporting.
	Crate string
	// Manifest declares the matrix dimensions and hooks.
	Manifest *matrix.Manifest
	// Tool locates cargo and rustup.
	Tool *cargo.Tool
	// Runners provides the execution backends.
	Runners *runexec.Registry
	// Jobs bounds cell parallelism; <= 0 means one worker per CPU.
	Jobs int
	// Log receives run progress.
	Log *log.Logger
}

// Run executes one verification run and returns the aggregated results.
// Gate failures are reflected in the run, not in the returned error: the
// error is non-nil only when the run itself could not be carried out
// (invalid matrix, failed setup hook, cancellation).
func Run(ctx context.Context, opts Options) (*report.VerificationRun, error) {
	plan, err := matrix.Expand(opts.Manifest.Dimensions())
	if err != nil {
		return nil, fmt.Errorf("failed to expand matrix: %w", err)
	}

	native, err := opts.Runners.Get(runexec.RunnerTypeNative)
	if err != nil {
		return nil, err
	}

	if err := runSetupHook(ctx, opts); err != nil {
		return nil, err
	}

	started := time.Now()
	host := matrix.CurrentPlatform()

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	// Slots are preallocated per group so workers never share mutable
	// state; aggregation happens only after Wait.
	groups := plan.Groups()
	groupResults := make([][]gate.Result, len(groups))
	freeResults := make([]gate.Result, len(plan.Freestanding))

	var g errgroup.Group
	g.SetLimit(jobs)

	for i, group := range groups {
		g.Go(func() error {
			groupResults[i] = runHostedGroup(ctx, opts, native, group, host)
			return nil
		})
	}

	for i, target := range plan.Freestanding {
		g.Go(func() error {
			freeResults[i] = runFreestandingCell(ctx, opts, native, target)
			return nil
		})
	}

	_ = g.Wait() // workers record failures as results, never as errors

	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %w", ErrRunCancelled, ctx.Err())
	}

	run := &report.VerificationRun{
		Crate:   opts.Crate,
		Started: started,
	}
	for _, results := range groupResults {
		run.Results = append(run.Results, results...)
	}
	run.Results = append(run.Results, freeResults...)
	run.Finished = time.Now()
	return run, nil
}

// runSetupHook executes the manifest's setup snippet with the embedded
// shell interpreter. A non-zero exit aborts the run before any gate starts.
func runSetupHook(ctx context.Context, opts Options) error {
	script := opts.Manifest.Hooks.Setup
	if script == "" {
		return nil
	}

	opts.Log.Debug("running setup hook")
	res := opts.Runners.Execute(ctx, runexec.RunnerTypeScript, &runexec.Invocation{
		Script: script,
		Dir:    opts.CrateDir,
	})
	if !res.Success() {
		if res.Error != nil {
			return fmt.Errorf("%w: %w", ErrSetupHookFailed, res.Error)
		}
		return fmt.Errorf("%w: exit code %s: %s", ErrSetupHookFailed, res.ExitCode, res.ErrOutput)
	}
	return nil
}

// groupGates returns one group's gate sequence: the static quality gates
// once for the (toolchain, platform) pair, then one test gate per
// feature-set cell.
func groupGates(group matrix.CellGroup) []gate.Gate {
	gates := []gate.Gate{
		gate.NewFormatGate(group.Pair),
		gate.NewLintGate(group.Pair),
	}
	for _, cfg := range group.Cells {
		gates = append(gates, gate.NewTestGate(cfg))
	}
	return gates
}

// runHostedGroup evaluates all gates of one (toolchain, platform) group
// sequentially. fmt and clippy run once for the pair; each feature-set cell
// then runs its own test gate in its own workspace. Groups planned for a
// foreign host platform are skipped in full: a local run cannot execute
// them, but the report still covers the whole matrix. A failing static gate
// does not suppress the test gates; all outcomes are reported and the
// report layer tells the classes apart.
func runHostedGroup(ctx context.Context, opts Options, native runexec.Runner, group matrix.CellGroup, host matrix.Platform) []gate.Result {
	results := make([]gate.Result, 0, 2+len(group.Cells))

	if group.Pair.Platform != host {
		reason := fmt.Sprintf("requires a %s host", group.Pair.Platform)
		for _, gt := range groupGates(group) {
			results = append(results, gate.SkippedResult(gt, reason))
		}
		return results
	}

	statics := []gate.Gate{gate.NewFormatGate(group.Pair), gate.NewLintGate(group.Pair)}
	env, err := cellEnv(opts, native, group.Pair.String())
	if err != nil {
		for _, gt := range statics {
			results = append(results, failedToStart(gt, err))
		}
	} else {
		for _, gt := range statics {
			results = append(results, gt.Run(ctx, env))
		}
	}

	for _, cfg := range group.Cells {
		gt := gate.NewTestGate(cfg)
		cenv, err := cellEnv(opts, native, cfg.String())
		if err != nil {
			results = append(results, failedToStart(gt, err))
			continue
		}
		results = append(results, gt.Run(ctx, cenv))
	}
	return results
}

// RunGate evaluates a single gate with the same isolated cell environment a
// full run would give it. This is the single-gate CLI path; hooks and
// preflight checks are the caller's business.
func RunGate(ctx context.Context, opts Options, gt gate.Gate) gate.Result {
	native, err := opts.Runners.Get(runexec.RunnerTypeNative)
	if err != nil {
		return failedToStart(gt, err)
	}
	env, err := cellEnv(opts, native, gt.Cell())
	if err != nil {
		return failedToStart(gt, err)
	}
	return gt.Run(ctx, env)
}

// runFreestandingCell evaluates the freestanding build gate for one target.
func runFreestandingCell(ctx context.Context, opts Options, native runexec.Runner, target matrix.FreestandingTarget) gate.Result {
	gt := gate.NewFreestandingGate(target)
	env, err := cellEnv(opts, native, gt.Cell())
	if err != nil {
		return failedToStart(gt, err)
	}
	return gt.Run(ctx, env)
}

// cellEnv builds the isolated evaluation environment for one cell.
func cellEnv(opts Options, native runexec.Runner, cellID string) (*gate.Env, error) {
	ws, err := cellWorkspace(opts.CrateDir, cellID)
	if err != nil {
		return nil, err
	}
	return &gate.Env{
		CrateDir: opts.CrateDir,
		Tool:     opts.Tool,
		Exec:     native,
		ExtraEnv: map[string]string{"CARGO_TARGET_DIR": ws},
		Log:      opts.Log.With("cell", cellID),
	}, nil
}

// failedToStart records a gate that could not begin executing. The contract
// has no retries: not starting is the same as failing.
func failedToStart(gt gate.Gate, err error) gate.Result {
	return gate.Result{
		Gate:         gt.Name(),
		Class:        gt.Class(),
		Cell:         gt.Cell(),
		Outcome:      gate.OutcomeFailed,
		Failure:      err,
		FailureClass: gate.FailureClass(err),
	}
}
