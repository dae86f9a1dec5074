// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchrun

import "fmt"

// An Outcome classifies the result of a treatment's validation pass.
type Outcome int

const (
	// Passed means the output matched the oracle (or no oracle was
	// supplied) and the custom hook accepted it. Validation is
	// opt-in: an experiment with neither oracle nor hook always
	// passes.
	Passed Outcome = iota

	// Mismatch means the output differed from the oracle value.
	Mismatch

	// HookFailed means the custom validation hook returned an
	// error.
	HookFailed
)

func (o Outcome) String() string {
	switch o {
	case Passed:
		return "Passed"
	case Mismatch:
		return "Mismatch"
	case HookFailed:
		return "HookFailed"
	}
	return "Unknown"
}

// A ValidationError reports that a treatment's output failed
// validation. It is fatal to the whole run: a correctness bug in the
// benchmark subject makes further timing data meaningless, so the
// runner aborts rather than continuing to the next treatment.
type ValidationError struct {
	// Key is the full key of the offending treatment.
	Key string

	// Outcome is Mismatch or HookFailed.
	Outcome Outcome

	// Expected and Actual carry the compared values for oracle
	// mismatches. Expected is nil for hook failures.
	Expected, Actual any

	// Hook is the error returned by the custom hook, if any.
	Hook error
}

func (e *ValidationError) Error() string {
	if e.Outcome == HookFailed {
		return fmt.Sprintf("benchrun: validation hook failed for %s: %v", e.Key, e.Hook)
	}
	return fmt.Sprintf("benchrun: output mismatch for %s: expected %v, got %v", e.Key, e.Expected, e.Actual)
}

func (e *ValidationError) Unwrap() error {
	return e.Hook
}

// A HarnessError reports that the timing harness failed while timing a
// treatment. It is propagated, not swallowed; any retry policy belongs
// to the harness itself.
type HarnessError struct {
	// Key is the full key of the treatment being timed.
	Key string
	Err error
}

func (e *HarnessError) Error() string {
	return fmt.Sprintf("benchrun: harness failed for %s: %v", e.Key, e.Err)
}

func (e *HarnessError) Unwrap() error {
	return e.Err
}
