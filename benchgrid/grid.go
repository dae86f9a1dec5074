// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchgrid enumerates the treatments of a factorial
// experiment.
//
// A treatment pairs one input level with one algorithm level. The grid
// over n input levels and m algorithm levels has n*m treatments and is
// traversed input-major: all m algorithm levels of one input are
// visited contiguously before the next input begins. This order lets
// the caller materialize each input exactly once and reuse it across
// every algorithm variant, keeping potentially expensive input
// construction out of the timed path.
package benchgrid

import "fmt"

// A Treatment is one (input level, algorithm level) combination,
// together with its position in the traversal.
type Treatment[I, A any] struct {
	// Input and Alg are the factor-level instances of this
	// treatment. These are level descriptors, not materialized
	// inputs.
	Input I
	Alg   A

	// InputIndex and AlgIndex are the 0-based positions of the
	// levels in their declared sequences.
	InputIndex int
	AlgIndex   int

	// Index is the 1-based global treatment number; Total is n*m.
	Index int
	Total int

	// NumInputs and NumAlgs are the sizes of the two level
	// sequences.
	NumInputs int
	NumAlgs   int
}

// FirstAlg reports whether this treatment opens a new input block,
// i.e. whether the input must be materialized before running it.
func (t Treatment[I, A]) FirstAlg() bool {
	return t.AlgIndex == 0
}

// Pos renders the treatment's position as "[index/total || a/m]" with
// 1-based counters, for progress reporting.
func (t Treatment[I, A]) Pos() string {
	return fmt.Sprintf("[%d/%d || %d/%d]", t.Index, t.Total, t.AlgIndex+1, t.NumAlgs)
}

// InputPos renders the position of the treatment's input level among
// its siblings as "[i/n]", 1-based.
func (t Treatment[I, A]) InputPos() string {
	return fmt.Sprintf("[%d/%d]", t.InputIndex+1, t.NumInputs)
}

// A Grid is a lazy iterator over the Cartesian product of input levels
// and algorithm levels.
type Grid[I, A any] struct {
	inputs []I
	algs   []A
	next   int
}

// New returns a grid over the given level sequences. Both sequences
// keep their declared order; an empty sequence on either side yields
// an empty grid.
func New[I, A any](inputs []I, algs []A) *Grid[I, A] {
	return &Grid[I, A]{inputs: inputs, algs: algs}
}

// Len returns the total number of treatments, n*m.
func (g *Grid[I, A]) Len() int {
	return len(g.inputs) * len(g.algs)
}

// NumInputs returns the number of input levels.
func (g *Grid[I, A]) NumInputs() int { return len(g.inputs) }

// NumAlgs returns the number of algorithm levels.
func (g *Grid[I, A]) NumAlgs() int { return len(g.algs) }

// Next returns the next treatment in input-major, algorithm-minor
// order. It returns ok=false once the grid is exhausted.
func (g *Grid[I, A]) Next() (t Treatment[I, A], ok bool) {
	if g.next >= g.Len() {
		return t, false
	}
	i, a := g.next/len(g.algs), g.next%len(g.algs)
	g.next++
	return Treatment[I, A]{
		Input:      g.inputs[i],
		Alg:        g.algs[a],
		InputIndex: i,
		AlgIndex:   a,
		Index:      g.next,
		Total:      g.Len(),
		NumInputs:  len(g.inputs),
		NumAlgs:    len(g.algs),
	}, true
}

// Reset rewinds the grid to its first treatment.
func (g *Grid[I, A]) Reset() {
	g.next = 0
}
