// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtime

import (
	"fmt"
	"testing"
)

// GoBench is a Harness that delegates to testing.Benchmark. The
// testing package chooses the iteration count; the result is a single
// aggregate sample.
type GoBench struct{}

// RunTimed implements Harness.
func (GoBench) RunTimed(group, variant string, thunk func()) (Stat, error) {
	var subjectErr error
	res := testing.Benchmark(func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if subjectErr = runRecovered(thunk); subjectErr != nil {
				return
			}
		}
	})
	if subjectErr != nil {
		return Stat{}, fmt.Errorf("%s/%s: %w", group, variant, subjectErr)
	}
	sec := res.T.Seconds() / float64(res.N)
	return Stat{
		Unit:    "sec/op",
		Center:  sec,
		Samples: []float64{sec},
		Iters:   res.N,
	}, nil
}
