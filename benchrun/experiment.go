// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchrun executes factorial micro-benchmark experiments.
//
// An experiment is defined by an input factor set I, an algorithm
// factor set A, an input type In, and an output type Out. The Runner
// walks the treatment grid over the declared input and algorithm
// levels: for each input level it materializes the input once, and for
// each algorithm level under that input it performs a single untimed
// validation pass followed by repeated timed executions through a
// benchtime.Harness. Timing results are collected into Records for
// aggregation by package benchtab.
package benchrun

import "github.com/benchlab/factorbench/benchkey"

// An Experiment defines the subject of a factorial analysis.
//
// Input is called once per input level; its cost is excluded from
// timing. Execute is the operation under analysis: it must compute its
// output from the algorithm levels and the shared input alone, and for
// oracle validation to be meaningful all variants must be semantically
// equivalent, producing equal output for equal input. The engine
// checks this equivalence once per treatment; it cannot enforce
// determinism.
type Experiment[I, A benchkey.Factors, In, Out any] interface {
	// Input materializes the input described by one input level.
	Input(inputLevels I) In

	// Execute runs one algorithm variant against the input and
	// returns its output.
	Execute(algLevels A, input *In) Out

	// ExpectedOutput returns the ground-truth output for the given
	// input, or ok=false to skip oracle validation. Randomized
	// variants must return ok=false.
	ExpectedOutput(inputLevels I, input *In) (out Out, ok bool)

	// ValidateOutput performs custom validation of a variant's
	// output. A non-nil error fails validation and aborts the run.
	ValidateOutput(inputLevels I, input *In, output Out) error
}

// NoExpectedOutput is an embeddable default for experiments without an
// oracle: ExpectedOutput always reports ok=false.
type NoExpectedOutput[I, In, Out any] struct{}

func (NoExpectedOutput[I, In, Out]) ExpectedOutput(I, *In) (out Out, ok bool) {
	return out, false
}

// NoValidation is an embeddable default for experiments without a
// custom validation hook.
type NoValidation[I, In, Out any] struct{}

func (NoValidation[I, In, Out]) ValidateOutput(I, *In, Out) error {
	return nil
}
