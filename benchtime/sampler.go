// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtime

import (
	"fmt"
	"time"

	"github.com/aclements/go-moremath/stats"
)

// Sampler is a Harness that takes an explicit number of timed samples,
// each averaging a fixed number of iterations, after a warm-up phase.
// Outliers beyond 1.5 IQR of the quartiles are rejected before
// summarizing; the center is the median of the surviving samples.
type Sampler struct {
	// Warmup is the number of untimed iterations run before
	// sampling begins.
	Warmup int

	// Samples is the number of timed samples to take.
	Samples int

	// Iterations is the number of operations averaged per sample.
	Iterations int

	// KeepOutliers disables interquartile outlier rejection.
	KeepOutliers bool
}

// NewSampler returns a Sampler with the default configuration.
func NewSampler() *Sampler {
	return &Sampler{Warmup: 3, Samples: 30, Iterations: 1}
}

// RunTimed implements Harness.
func (s *Sampler) RunTimed(group, variant string, thunk func()) (Stat, error) {
	warmup, nSamples, iters := s.Warmup, s.Samples, s.Iterations
	if nSamples <= 0 {
		nSamples = 1
	}
	if iters <= 0 {
		iters = 1
	}

	for i := 0; i < warmup; i++ {
		if err := runRecovered(thunk); err != nil {
			return Stat{}, fmt.Errorf("%s/%s: warm-up: %w", group, variant, err)
		}
	}

	samples := make([]float64, 0, nSamples)
	for i := 0; i < nSamples; i++ {
		start := time.Now()
		for j := 0; j < iters; j++ {
			if err := runRecovered(thunk); err != nil {
				return Stat{}, fmt.Errorf("%s/%s: %w", group, variant, err)
			}
		}
		samples = append(samples, time.Since(start).Seconds()/float64(iters))
	}

	kept := samples
	if !s.KeepOutliers {
		kept = rejectOutliers(samples)
	}
	sample := stats.Sample{Xs: kept}
	return Stat{
		Unit:    "sec/op",
		Center:  sample.Quantile(0.5),
		Samples: kept,
		Iters:   iters,
	}, nil
}

// rejectOutliers drops samples outside [q1-1.5*iqr, q3+1.5*iqr]. It
// never drops everything: with fewer than 4 samples the input is
// returned unchanged.
func rejectOutliers(samples []float64) []float64 {
	if len(samples) < 4 {
		return samples
	}
	sample := stats.Sample{Xs: samples}
	q1, q3 := sample.Quantile(0.25), sample.Quantile(0.75)
	iqr := q3 - q1
	lo, hi := q1-1.5*iqr, q3+1.5*iqr

	kept := make([]float64, 0, len(samples))
	for _, x := range samples {
		if lo <= x && x <= hi {
			kept = append(kept, x)
		}
	}
	if len(kept) == 0 {
		return samples
	}
	return kept
}
