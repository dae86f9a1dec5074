// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchtime defines the timing-harness contract consumed by
// the experiment runner, and provides two concrete harnesses: GoBench,
// which delegates to testing.Benchmark, and Sampler, which takes
// explicit timed samples with robust summary statistics.
//
// A harness owns everything about how a treatment is timed: warm-up,
// repetition counts, and outlier handling. The runner only supplies
// labels and a thunk, blocks until the harness returns, and records
// the resulting statistic.
package benchtime

import "fmt"

// A Stat is the timing statistic a harness returns for one treatment.
type Stat struct {
	// Unit is the measurement unit, normally "sec/op".
	Unit string

	// Center is the harness's central estimate in Unit.
	Center float64

	// Samples holds the individual per-operation measurements the
	// estimate was derived from, in Unit. A harness that produces
	// only an aggregate reports a single sample equal to Center.
	Samples []float64

	// Iters is the number of operations averaged per sample.
	Iters int
}

// A Harness times the repeated execution of a thunk and returns a
// statistical summary.
//
// The group and variant labels identify the treatment being timed:
// group is the full input key and variant the abbreviated algorithm
// key. RunTimed blocks until timing completes; the engine imposes no
// timeout of its own.
type Harness interface {
	RunTimed(group, variant string, thunk func()) (Stat, error)
}

// runRecovered invokes thunk, converting a panic in the benchmarked
// subject into an error so a harness can report it as a failure
// instead of tearing down the process.
func runRecovered(thunk func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subject panicked: %v", r)
		}
	}()
	thunk()
	return nil
}
