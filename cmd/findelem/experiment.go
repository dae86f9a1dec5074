// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"sync"
)

// Settings is the input factor set: the haystack length and where the
// needle sits in it.
type Settings struct {
	Len      int
	Position Position
}

// Position places the needle in the haystack.
type Position int

const (
	// Mid puts the needle at index Len/2.
	Mid Position = iota
	// None omits the needle, forcing a full scan.
	None
)

func (p Position) String() string {
	if p == Mid {
		return "Mid"
	}
	return "None"
}

// ParsePosition parses "Mid" or "None".
func ParsePosition(s string) (Position, error) {
	switch s {
	case "Mid":
		return Mid, nil
	case "None":
		return None, nil
	}
	return 0, fmt.Errorf("unknown position %q (want Mid or None)", s)
}

func (s Settings) FactorNames() []string { return []string{"len", "position"} }
func (s Settings) FactorLevels() []string {
	return []string{strconv.Itoa(s.Len), s.Position.String()}
}
func (s Settings) FactorNamesShort() []string { return []string{"l", "p"} }
func (s Settings) FactorLevelsShort() []string {
	return []string{strconv.Itoa(s.Len), s.Position.String()[:1]}
}

// Params is the algorithm factor set: the worker count and scan
// direction of the search variant.
type Params struct {
	NumThreads int
	Direction  Direction
}

// Direction is the within-chunk scan order.
type Direction int

const (
	Forwards Direction = iota
	Backwards
)

func (d Direction) String() string {
	if d == Forwards {
		return "Forwards"
	}
	return "Backwards"
}

// ParseDirection parses "Forwards" or "Backwards".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "Forwards":
		return Forwards, nil
	case "Backwards":
		return Backwards, nil
	}
	return 0, fmt.Errorf("unknown direction %q (want Forwards or Backwards)", s)
}

func (p Params) FactorNames() []string { return []string{"num_threads", "direction"} }
func (p Params) FactorLevels() []string {
	return []string{strconv.Itoa(p.NumThreads), p.Direction.String()}
}
func (p Params) FactorNamesShort() []string { return []string{"n", "d"} }
func (p Params) FactorLevelsShort() []string {
	return []string{strconv.Itoa(p.NumThreads), p.Direction.String()[:1]}
}

const needle uint64 = 42

// haystack is one materialized input: a value sequence and the index
// the needle was planted at, or -1.
type haystack struct {
	values []uint64
	want   int
}

// findExperiment benchmarks linear search variants over planted
// haystacks. All variants return the needle's index, or -1, so the
// oracle check holds across every treatment.
type findExperiment struct{}

func (findExperiment) Input(s Settings) haystack {
	// Odd fillers can never equal the even needle.
	values := make([]uint64, s.Len)
	for i := range values {
		values[i] = uint64(i)*2 + 1
	}
	want := -1
	if s.Position == Mid && s.Len > 0 {
		want = s.Len / 2
		values[want] = needle
	}
	return haystack{values: values, want: want}
}

func (findExperiment) Execute(p Params, in *haystack) int {
	if p.NumThreads <= 1 {
		return scan(in.values, 0, p.Direction)
	}

	n := len(in.values)
	chunk := (n + p.NumThreads - 1) / p.NumThreads
	found := make([]int, p.NumThreads)
	var wg sync.WaitGroup
	for w := 0; w < p.NumThreads; w++ {
		lo := w * chunk
		hi := lo + chunk
		if lo >= n {
			found[w] = -1
			continue
		}
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			found[w] = scan(in.values[lo:hi], lo, p.Direction)
		}(w, lo, hi)
	}
	wg.Wait()

	for _, idx := range found {
		if idx >= 0 {
			return idx
		}
	}
	return -1
}

func (findExperiment) ExpectedOutput(s Settings, in *haystack) (int, bool) {
	return in.want, true
}

func (findExperiment) ValidateOutput(s Settings, in *haystack, out int) error {
	if out < 0 {
		return nil
	}
	if out >= len(in.values) || in.values[out] != needle {
		return fmt.Errorf("index %d does not hold the needle", out)
	}
	return nil
}

// scan searches values for the needle and returns its absolute index
// given the slice's offset, or -1.
func scan(values []uint64, offset int, dir Direction) int {
	if dir == Forwards {
		for i, v := range values {
			if v == needle {
				return offset + i
			}
		}
		return -1
	}
	for i := len(values) - 1; i >= 0; i-- {
		if values[i] == needle {
			return offset + i
		}
	}
	return -1
}
