// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchrun

import (
	"fmt"
	"io"
	"reflect"

	"github.com/charmbracelet/lipgloss"

	"github.com/benchlab/factorbench/benchfmt"
	"github.com/benchlab/factorbench/benchgrid"
	"github.com/benchlab/factorbench/benchkey"
	"github.com/benchlab/factorbench/benchtime"
)

// A Runner executes a factorial experiment over a treatment grid.
//
// Treatments are strictly serialized on the calling goroutine: running
// them concurrently would let CPU contention skew the timing results.
// The only shared mutable resource is the current input instance,
// which the runner owns for the duration of its input block.
type Runner[I, A benchkey.Factors, In, Out any] struct {
	// Experiment is the subject of the analysis. Required.
	Experiment Experiment[I, A, In, Out]

	// Harness times each treatment. Defaults to benchtime.GoBench.
	Harness benchtime.Harness

	// Log receives progress lines. Defaults to io.Discard. The
	// lines are observational only and never affect control flow.
	Log io.Writer

	// Raw, if non-nil, receives one benchmark-format line per
	// timed sample.
	Raw *benchfmt.Writer

	// KeyLimit bounds short treatment keys. Zero means
	// benchkey.DefaultKeyLimit.
	KeyLimit int

	// Color enables styled progress output.
	Color bool
}

// Run executes every treatment of inputs × algs in input-major order
// and returns one Record per treatment, in traversal order.
//
// Each input is materialized exactly once and reused across all
// algorithm levels; neither input construction nor validation is
// timed. A validation failure, an over-long short key, or a harness
// failure aborts the run: Run returns the records produced so far
// (including a failed record for the offending treatment, where one
// exists) together with the error. There is no partial-success mode
// beyond that.
func (r *Runner[I, A, In, Out]) Run(name string, inputs []I, algs []A) ([]Record, error) {
	harness := r.Harness
	if harness == nil {
		harness = benchtime.GoBench{}
	}

	grid := benchgrid.New(inputs, algs)
	r.logf(styleHeader, "# %s benchmarks with %d data points and %d variants => %d treatments",
		name, grid.NumInputs(), grid.NumAlgs(), grid.Len())

	records := make([]Record, 0, grid.Len())
	var input In
	for {
		t, ok := grid.Next()
		if !ok {
			break
		}

		if t.FirstAlg() {
			// Entering a new input block: materialize the
			// input once for all algorithm levels under it.
			// The previous block's input is dropped here.
			r.logf(styleInput, "## Data point %s: %s", t.InputPos(), benchkey.Key(t.Input))
			input = r.Experiment.Input(t.Input)
		}

		key := benchkey.TreatmentKey(t.Input, t.Alg)
		shortKey, err := benchkey.ShortTreatmentKey(t.Input, t.Alg, r.KeyLimit)
		if err != nil {
			return records, err
		}
		r.logf(styleTreatment, "### %s: %s", t.Pos(), key)

		rec := Record{
			Key:         key,
			ShortKey:    shortKey,
			InputNames:  t.Input.FactorNames(),
			InputLevels: t.Input.FactorLevels(),
			AlgNames:    t.Alg.FactorNames(),
			AlgLevels:   t.Alg.FactorLevels(),
			State:       InputReady,
		}

		// Single untimed validation pass. This runs exactly once
		// per treatment, no matter how many timed repetitions the
		// harness performs, so validation logic may be arbitrarily
		// expensive without biasing the timing.
		rec.State = Validating
		out := r.Experiment.Execute(t.Alg, &input)
		if hookErr := r.Experiment.ValidateOutput(t.Input, &input, out); hookErr != nil {
			verr := &ValidationError{Key: key, Outcome: HookFailed, Actual: out, Hook: hookErr}
			rec.State, rec.Err = ValidationFailed, verr
			return append(records, rec), verr
		}
		if want, hasOracle := r.Experiment.ExpectedOutput(t.Input, &input); hasOracle && !reflect.DeepEqual(out, want) {
			verr := &ValidationError{Key: key, Outcome: Mismatch, Expected: want, Actual: out}
			rec.State, rec.Err = ValidationFailed, verr
			return append(records, rec), verr
		}
		rec.State = Validated

		// Timed executions are owned by the harness: it decides
		// warm-up, repetition counts and outlier handling, and
		// blocks until it has a statistic.
		rec.State = Timing
		alg := t.Alg
		stat, err := harness.RunTimed(benchkey.Key(t.Input), benchkey.ShortKey(t.Alg), func() {
			r.Experiment.Execute(alg, &input)
		})
		if err != nil {
			herr := &HarnessError{Key: key, Err: err}
			rec.State, rec.Err = ExecutionFailed, herr
			return append(records, rec), herr
		}
		rec.Stat, rec.State = stat, Complete

		if r.Raw != nil {
			if err := r.writeRaw(name, &rec); err != nil {
				return append(records, rec), err
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *Runner[I, A, In, Out]) writeRaw(name string, rec *Record) error {
	for _, sample := range rec.Stat.Samples {
		res := &benchfmt.Result{
			FileConfig: []benchfmt.Config{{Key: "experiment", Value: name}},
			Name:       name + "/" + rec.ShortKey,
			Iters:      rec.Stat.Iters,
			Values:     []benchfmt.Value{{Value: sample, Unit: rec.Stat.Unit}},
		}
		if err := r.Raw.Write(res); err != nil {
			return fmt.Errorf("benchrun: writing raw result for %s: %w", rec.Key, err)
		}
	}
	return nil
}

func (r *Runner[I, A, In, Out]) logf(style lipgloss.Style, format string, args ...any) {
	if r.Log == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if r.Color {
		msg = style.Render(msg)
	}
	fmt.Fprintln(r.Log, msg)
}
