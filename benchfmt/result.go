// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchfmt reads and writes experiment results in the Go
// benchmark text format.
//
// The experiment runner emits one line per timed sample, named by the
// treatment's abbreviated key, so raw measurements survive the process
// in a form that standard benchmark tooling understands and that a
// later run can read back as a baseline.
package benchfmt

// A Result is a single benchmark result: one named measurement line
// plus the file-level configuration in effect when it was produced.
type Result struct {
	// FileConfig is the ordered set of file-level key/value pairs
	// in effect for this result.
	FileConfig []Config

	// Name is the full benchmark name, without the "Benchmark"
	// prefix. For experiment results this is the experiment name
	// followed by the short treatment key.
	Name string

	// Iters is the number of iterations the measurements were
	// averaged over.
	Iters int

	// Values is this result's measurements and their units.
	Values []Value
}

// A Config is a single file-level key/value configuration pair.
type Config struct {
	Key   string
	Value string
}

// A Value is a single value/unit measurement from a result line.
type Value struct {
	Value float64
	Unit  string
}

// Value returns the measurement for the given unit.
func (r *Result) Value(unit string) (float64, bool) {
	for _, v := range r.Values {
		if v.Unit == unit {
			return v.Value, true
		}
	}
	return 0, false
}

// GetFileConfig returns the value of a file configuration key, or ""
// if not present.
func (r *Result) GetFileConfig(key string) string {
	for _, cfg := range r.FileConfig {
		if cfg.Key == key {
			return cfg.Value
		}
	}
	return ""
}

// Clone makes a copy of Result that shares no state with r.
func (r *Result) Clone() *Result {
	return &Result{
		FileConfig: append([]Config(nil), r.FileConfig...),
		Name:       r.Name,
		Iters:      r.Iters,
		Values:     append([]Value(nil), r.Values...),
	}
}
