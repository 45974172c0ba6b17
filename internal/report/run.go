// SPDX-License-Identifier: MPL-2.0

package report

import (
	"time"

	"crateci/internal/gate"
)

// Verdict constants for a verification run.
const (
	VerdictPass Verdict = "pass"
	VerdictFail Verdict = "fail"
)

type (
	// Verdict is the aggregate outcome of a run.
	Verdict string

	// VerificationRun is the aggregate of all gate results for one trigger.
	// It is stateless relative to prior runs and never persisted.
	VerificationRun struct {
		// Crate is the name of the crate under test.
		Crate string `json:"crate"`
		// Started and Finished bound the run's wall time.
		Started  time.Time `json:"started"`
		Finished time.Time `json:"finished"`
		// Results holds every gate evaluation, in plan order.
		Results []gate.Result `json:"results"`
	}

	// Tally counts results per terminal outcome.
	Tally struct {
		Passed  int `json:"passed"`
		Failed  int `json:"failed"`
		Skipped int `json:"skipped"`
	}
)

// Green reports whether every non-skipped gate passed. Any single failure
// marks the whole run red; there is no partial-success path.
func (r *VerificationRun) Green() bool {
	for _, res := range r.Results {
		if res.Blocking() {
			return false
		}
	}
	return true
}

// Verdict returns the aggregate verdict.
func (r *VerificationRun) Verdict() Verdict {
	if r.Green() {
		return VerdictPass
	}
	return VerdictFail
}

// Failing returns every failed result, preserving plan order. Each entry is
// one (gate, configuration) pair with its taxonomy class.
func (r *VerificationRun) Failing() []gate.Result {
	var failing []gate.Result
	for _, res := range r.Results {
		if res.Blocking() {
			failing = append(failing, res)
		}
	}
	return failing
}

// Count tallies results per terminal outcome.
func (r *VerificationRun) Count() Tally {
	var t Tally
	for _, res := range r.Results {
		switch res.Outcome {
		case gate.OutcomePassed:
			t.Passed++
		case gate.OutcomeFailed:
			t.Failed++
		case gate.OutcomeSkipped:
			t.Skipped++
		}
	}
	return t
}
