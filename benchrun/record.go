// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchrun

import "github.com/benchlab/factorbench/benchtime"

// A State is a position in the per-treatment execution state machine.
type State int

const (
	Idle State = iota
	InputReady
	Validating
	Validated
	ValidationFailed
	Timing
	Complete
	ExecutionFailed
)

var stateNames = [...]string{
	Idle:             "Idle",
	InputReady:       "InputReady",
	Validating:       "Validating",
	Validated:        "Validated",
	ValidationFailed: "ValidationFailed",
	Timing:           "Timing",
	Complete:         "Complete",
	ExecutionFailed:  "ExecutionFailed",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// A Record is the immutable outcome of one treatment. It is produced
// once, in grid traversal order, and consumed by the summary
// aggregator.
type Record struct {
	// Key and ShortKey identify the treatment.
	Key      string
	ShortKey string

	// Factor names and levels in declared order, full form. The
	// input levels are the aggregator's grouping key; the
	// algorithm names label its columns.
	InputNames  []string
	InputLevels []string
	AlgNames    []string
	AlgLevels   []string

	// Stat is the harness's timing statistic. It is meaningless
	// unless State is Complete.
	Stat benchtime.Stat

	// State is the terminal state the treatment reached.
	State State

	// Err is the failure that terminated the treatment, if any.
	Err error
}

// Failed reports whether the treatment did not complete. Failed
// records are rendered in summaries but excluded from best-variant
// computation.
func (r *Record) Failed() bool {
	return r.State != Complete
}
