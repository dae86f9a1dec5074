// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtime

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options holds harness and key settings in a form that can be loaded
// from a YAML file or populated from command-line flags.
type Options struct {
	// Warmup, Samples and Iterations configure a Sampler harness.
	Warmup     int `yaml:"warmup"`
	Samples    int `yaml:"samples"`
	Iterations int `yaml:"iterations"`

	// KeyLimit bounds the length of short treatment keys. Zero
	// means the package default.
	KeyLimit int `yaml:"key_limit"`
}

// DefaultOptions returns the options matching NewSampler.
func DefaultOptions() Options {
	s := NewSampler()
	return Options{Warmup: s.Warmup, Samples: s.Samples, Iterations: s.Iterations}
}

// LoadOptions reads options from a YAML file. Fields absent from the
// file keep their defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("loading options: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parsing options %s: %w", path, err)
	}
	return opts, nil
}

// Sampler returns a Sampler harness configured from o.
func (o Options) Sampler() *Sampler {
	return &Sampler{Warmup: o.Warmup, Samples: o.Samples, Iterations: o.Iterations}
}
