// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchrun

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchlab/factorbench/benchfmt"
	"github.com/benchlab/factorbench/benchkey"
	"github.com/benchlab/factorbench/benchtime"
)

type sizeLevel struct{ n int }

func (l sizeLevel) FactorNames() []string  { return []string{"size"} }
func (l sizeLevel) FactorLevels() []string { return []string{strconv.Itoa(l.n)} }

type algLevel struct{ name string }

func (l algLevel) FactorNames() []string  { return []string{"alg"} }
func (l algLevel) FactorLevels() []string { return []string{l.name} }

// sumExperiment sums a slice. The "bad" variant is off by one, and the
// "hookfail" variant trips the validation hook.
type sumExperiment struct {
	inputCalls   int
	executeCalls int
}

func (e *sumExperiment) Input(l sizeLevel) []int {
	e.inputCalls++
	in := make([]int, l.n)
	for i := range in {
		in[i] = i
	}
	return in
}

func (e *sumExperiment) Execute(a algLevel, input *[]int) int {
	e.executeCalls++
	sum := 0
	for _, v := range *input {
		sum += v
	}
	if a.name == "bad" {
		sum++
	}
	return sum
}

func (e *sumExperiment) ExpectedOutput(l sizeLevel, input *[]int) (int, bool) {
	return l.n * (l.n - 1) / 2, true
}

func (e *sumExperiment) ValidateOutput(l sizeLevel, input *[]int, out int) error {
	if out < 0 {
		return errors.New("negative sum")
	}
	return nil
}

// fakeHarness invokes each thunk reps times and records the labels it
// was handed.
type fakeHarness struct {
	reps   int
	groups []string
	vars   []string
	err    error
}

func (h *fakeHarness) RunTimed(group, variant string, thunk func()) (benchtime.Stat, error) {
	h.groups = append(h.groups, group)
	h.vars = append(h.vars, variant)
	if h.err != nil {
		return benchtime.Stat{}, h.err
	}
	for i := 0; i < h.reps; i++ {
		thunk()
	}
	return benchtime.Stat{Unit: "sec/op", Center: 1e-6, Samples: []float64{1e-6, 2e-6}, Iters: h.reps}, nil
}

func TestRunGrid(t *testing.T) {
	exp := &sumExperiment{}
	harness := &fakeHarness{reps: 5}
	r := &Runner[sizeLevel, algLevel, []int, int]{Experiment: exp, Harness: harness}

	inputs := []sizeLevel{{10}, {100}}
	algs := []algLevel{{"seq"}, {"par"}, {"simd"}}
	records, err := r.Run("sum", inputs, algs)
	require.NoError(t, err)
	require.Len(t, records, 6)

	// Inputs are built once per level, not once per treatment.
	assert.Equal(t, 2, exp.inputCalls)
	// One untimed validation pass plus reps timed runs, per treatment.
	assert.Equal(t, 6*(1+5), exp.executeCalls)

	wantKeys := []string{
		"size:10/alg:seq", "size:10/alg:par", "size:10/alg:simd",
		"size:100/alg:seq", "size:100/alg:par", "size:100/alg:simd",
	}
	for i, rec := range records {
		assert.Equal(t, wantKeys[i], rec.Key)
		assert.Equal(t, wantKeys[i], rec.ShortKey)
		assert.Equal(t, Complete, rec.State)
		assert.False(t, rec.Failed())
		assert.Equal(t, "sec/op", rec.Stat.Unit)
	}

	assert.Equal(t, []string{"size:10", "size:10", "size:10", "size:100", "size:100", "size:100"}, harness.groups)
	assert.Equal(t, []string{"alg:seq", "alg:par", "alg:simd", "alg:seq", "alg:par", "alg:simd"}, harness.vars)
}

func TestRunDefaultHarness(t *testing.T) {
	exp := &sumExperiment{}
	r := &Runner[sizeLevel, algLevel, []int, int]{Experiment: exp}

	records, err := r.Run("sum", []sizeLevel{{4}}, []algLevel{{"seq"}})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, Complete, records[0].State)
	assert.Greater(t, records[0].Stat.Center, 0.0)
}

func TestRunValidationMismatch(t *testing.T) {
	exp := &sumExperiment{}
	harness := &fakeHarness{reps: 3}
	r := &Runner[sizeLevel, algLevel, []int, int]{Experiment: exp, Harness: harness}

	records, err := r.Run("sum", []sizeLevel{{10}}, []algLevel{{"seq"}, {"bad"}, {"simd"}})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, Mismatch, verr.Outcome)
	assert.Equal(t, "size:10/alg:bad", verr.Key)
	assert.Equal(t, 45, verr.Expected)
	assert.Equal(t, 46, verr.Actual)

	// The run stops at the failing treatment: one completed record,
	// then the failed one, and the third variant never runs.
	require.Len(t, records, 2)
	assert.Equal(t, Complete, records[0].State)
	assert.Equal(t, ValidationFailed, records[1].State)
	assert.True(t, records[1].Failed())
	assert.ErrorIs(t, records[1].Err, verr)
	assert.Len(t, harness.groups, 1)
}

func TestRunValidationHookFailure(t *testing.T) {
	exp := &hookFailExperiment{}
	harness := &fakeHarness{reps: 3}
	r := &Runner[sizeLevel, algLevel, []int, int]{Experiment: exp, Harness: harness}

	records, err := r.Run("sum", []sizeLevel{{10}}, []algLevel{{"seq"}})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, HookFailed, verr.Outcome)
	assert.ErrorContains(t, verr.Hook, "odd output")

	require.Len(t, records, 1)
	assert.Equal(t, ValidationFailed, records[0].State)
	// The hook tripped before any timed execution.
	assert.Empty(t, harness.groups)
}

type hookFailExperiment struct {
	NoExpectedOutput[sizeLevel, []int, int]
}

func (*hookFailExperiment) Input(l sizeLevel) []int { return []int{1, 2} }

func (*hookFailExperiment) Execute(a algLevel, input *[]int) int { return 3 }

func (*hookFailExperiment) ValidateOutput(l sizeLevel, input *[]int, out int) error {
	if out%2 != 0 {
		return errors.New("odd output")
	}
	return nil
}

func TestRunKeyTooLong(t *testing.T) {
	exp := &sumExperiment{}
	r := &Runner[sizeLevel, algLevel, []int, int]{
		Experiment: exp,
		Harness:    &fakeHarness{reps: 1},
		KeyLimit:   5,
	}

	records, err := r.Run("sum", []sizeLevel{{10}}, []algLevel{{"seq"}})
	var kerr *benchkey.KeyTooLongError
	require.ErrorAs(t, err, &kerr)
	assert.Equal(t, 5, kerr.Limit)
	assert.Empty(t, records)
	// Nothing was validated or timed.
	assert.Equal(t, 0, exp.executeCalls)
}

func TestRunHarnessError(t *testing.T) {
	exp := &sumExperiment{}
	harness := &fakeHarness{err: errors.New("subject panicked: boom")}
	r := &Runner[sizeLevel, algLevel, []int, int]{Experiment: exp, Harness: harness}

	records, err := r.Run("sum", []sizeLevel{{10}}, []algLevel{{"seq"}, {"par"}})
	var herr *HarnessError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, "size:10/alg:seq", herr.Key)
	assert.ErrorContains(t, herr, "boom")

	require.Len(t, records, 1)
	assert.Equal(t, ExecutionFailed, records[0].State)
	assert.True(t, records[0].Failed())
}

func TestRunProgressLog(t *testing.T) {
	exp := &sumExperiment{}
	var log strings.Builder
	r := &Runner[sizeLevel, algLevel, []int, int]{
		Experiment: exp,
		Harness:    &fakeHarness{reps: 1},
		Log:        &log,
	}

	_, err := r.Run("sum", []sizeLevel{{10}, {100}}, []algLevel{{"seq"}, {"par"}})
	require.NoError(t, err)
	out := log.String()

	assert.Contains(t, out, "# sum benchmarks with 2 data points and 2 variants => 4 treatments")
	assert.Contains(t, out, "## Data point [1/2]: size:10")
	assert.Contains(t, out, "## Data point [2/2]: size:100")
	assert.Contains(t, out, "### [1/4 || 1/2]: size:10/alg:seq")
	assert.Contains(t, out, "### [4/4 || 2/2]: size:100/alg:par")
}

func TestRunRawOutput(t *testing.T) {
	exp := &sumExperiment{}
	var raw strings.Builder
	r := &Runner[sizeLevel, algLevel, []int, int]{
		Experiment: exp,
		Harness:    &fakeHarness{reps: 2},
		Raw:        benchfmt.NewWriter(&raw),
	}

	_, err := r.Run("sum", []sizeLevel{{10}}, []algLevel{{"seq"}})
	require.NoError(t, err)
	out := raw.String()

	assert.Contains(t, out, "experiment: sum")
	// One line per sample.
	assert.Equal(t, 2, strings.Count(out, "Benchmarksum/size:10/alg:seq"))
	assert.Contains(t, out, "sec/op")
}
