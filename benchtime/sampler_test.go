// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtime

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampler(t *testing.T) {
	s := &Sampler{Warmup: 2, Samples: 10, Iterations: 3}

	calls := 0
	sink := 0
	stat, err := s.RunTimed("in:1", "a:1", func() {
		calls++
		for i := 0; i < 1000; i++ {
			sink += i
		}
	})
	require.NoError(t, err)
	_ = sink

	// 2 warm-up calls plus 10 samples of 3 iterations each.
	assert.Equal(t, 2+10*3, calls)
	assert.Equal(t, "sec/op", stat.Unit)
	assert.Equal(t, 3, stat.Iters)
	assert.NotEmpty(t, stat.Samples)
	assert.LessOrEqual(t, len(stat.Samples), 10)
	assert.Greater(t, stat.Center, 0.0)
}

func TestSamplerSubjectPanic(t *testing.T) {
	s := &Sampler{Samples: 3}
	_, err := s.RunTimed("in:1", "a:1", func() { panic("boom") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in:1/a:1")
	assert.Contains(t, err.Error(), "boom")
}

func TestSamplerPanicDuringWarmup(t *testing.T) {
	s := &Sampler{Warmup: 1, Samples: 3}
	_, err := s.RunTimed("g", "v", func() { panic("early") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "warm-up")
}

func TestRejectOutliers(t *testing.T) {
	samples := []float64{1, 1.1, 0.9, 1.05, 0.95, 1, 100}
	kept := rejectOutliers(samples)
	assert.NotContains(t, kept, 100.0)
	assert.Len(t, kept, 6)

	// Too few samples to judge: unchanged.
	small := []float64{1, 100}
	assert.Equal(t, small, rejectOutliers(small))
}

func TestGoBench(t *testing.T) {
	stat, err := GoBench{}.RunTimed("in:1", "a:1", func() {})
	require.NoError(t, err)
	assert.Equal(t, "sec/op", stat.Unit)
	assert.Greater(t, stat.Iters, 0)
	assert.Len(t, stat.Samples, 1)
}

func TestGoBenchSubjectPanic(t *testing.T) {
	_, err := GoBench{}.RunTimed("in:1", "a:1", func() { panic("boom") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "opts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("samples: 5\nkey_limit: 48\n"), 0o644))

	opts, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, 5, opts.Samples)
	assert.Equal(t, 48, opts.KeyLimit)
	// Unset fields keep their defaults.
	assert.Equal(t, DefaultOptions().Warmup, opts.Warmup)

	s := opts.Sampler()
	assert.Equal(t, 5, s.Samples)
}

func TestLoadOptionsMissingFile(t *testing.T) {
	_, err := LoadOptions(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
