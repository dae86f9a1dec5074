// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command findelem benchmarks linear search variants over a factorial
// treatment grid and prints comparison tables.
//
// The input factors are the haystack length and the needle position;
// the algorithm factors are the worker count and scan direction. Each
// input is built once, every variant is validated against the known
// needle index before timing, and the summary marks the fastest
// variant per input with relative changes against the single-threaded
// forwards baseline.
//
// Usage:
//
//	findelem [--lens 1024,65536] [--positions Mid,None]
//	         [--threads 1,4] [--directions Forwards,Backwards]
//	         [--harness sampler|gobench] [--format text|csv|markdown]
//	         [--raw FILE] [--baseline FILE] [--config FILE]
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aclements/go-moremath/stats"
	"github.com/spf13/cobra"

	"github.com/benchlab/factorbench/benchfmt"
	"github.com/benchlab/factorbench/benchrun"
	"github.com/benchlab/factorbench/benchtab"
	"github.com/benchlab/factorbench/benchtime"
)

const experimentName = "find_element"

var flags struct {
	lens       []int
	positions  []string
	threads    []int
	directions []string

	warmup     int
	samples    int
	iterations int
	keyLimit   int

	harness  string
	format   string
	raw      string
	baseline string
	config   string
	color    bool
}

var rootCmd = &cobra.Command{
	Use:           "findelem",
	Short:         "Benchmark linear search variants over a factorial treatment grid",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.Flags()
	f.IntSliceVar(&flags.lens, "lens", []int{1024, 65536}, "haystack lengths (input factor)")
	f.StringSliceVar(&flags.positions, "positions", []string{"Mid", "None"}, "needle positions: Mid, None (input factor)")
	f.IntSliceVar(&flags.threads, "threads", []int{1, 4}, "worker counts (algorithm factor)")
	f.StringSliceVar(&flags.directions, "directions", []string{"Forwards", "Backwards"}, "scan directions: Forwards, Backwards (algorithm factor)")

	f.IntVar(&flags.warmup, "warmup", 0, "warm-up executions per treatment (sampler harness)")
	f.IntVar(&flags.samples, "samples", 0, "timed samples per treatment (sampler harness)")
	f.IntVar(&flags.iterations, "iterations", 0, "executions per sample (sampler harness)")
	f.IntVar(&flags.keyLimit, "key-limit", 0, "short key length limit (0 = default)")

	f.StringVar(&flags.harness, "harness", "sampler", "timing harness: sampler, gobench")
	f.StringVar(&flags.format, "format", "text", "summary format: text, csv, markdown")
	f.StringVar(&flags.raw, "raw", "", "write raw benchmark-format samples to this file")
	f.StringVar(&flags.baseline, "baseline", "", "compare against raw samples from a previous run")
	f.StringVar(&flags.config, "config", "", "load harness options from this YAML file")
	f.BoolVar(&flags.color, "color", false, "styled progress output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "findelem:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}

	inputs, algs, err := buildLevels()
	if err != nil {
		return err
	}

	var harness benchtime.Harness
	switch flags.harness {
	case "sampler":
		harness = opts.Sampler()
	case "gobench":
		harness = benchtime.GoBench{}
	default:
		return fmt.Errorf("unknown harness %q (want sampler or gobench)", flags.harness)
	}

	runner := &benchrun.Runner[Settings, Params, haystack, int]{
		Experiment: findExperiment{},
		Harness:    harness,
		Log:        os.Stderr,
		KeyLimit:   opts.KeyLimit,
		Color:      flags.color,
	}

	var rawFile *os.File
	if flags.raw != "" {
		rawFile, err = os.Create(flags.raw)
		if err != nil {
			return fmt.Errorf("creating raw output: %w", err)
		}
		defer rawFile.Close()
		runner.Raw = benchfmt.NewWriter(rawFile)
	}

	records, err := runner.Run(experimentName, inputs, algs)
	if err != nil {
		return err
	}

	builder := benchtab.NewBuilder()
	for i := range records {
		builder.Add(&records[i])
	}
	if flags.baseline != "" {
		prior, err := readBaseline(flags.baseline)
		if err != nil {
			return err
		}
		builder.SetPrior(prior)
	}
	tables := builder.ToTables()

	switch flags.format {
	case "text":
		return tables.ToText(os.Stdout)
	case "csv":
		return tables.ToCSV(os.Stdout)
	case "markdown":
		return tables.ToMarkdown(os.Stdout)
	}
	return fmt.Errorf("unknown format %q (want text, csv or markdown)", flags.format)
}

// loadOptions layers the config file under any explicitly set flags.
func loadOptions() (benchtime.Options, error) {
	opts := benchtime.DefaultOptions()
	if flags.config != "" {
		var err error
		opts, err = benchtime.LoadOptions(flags.config)
		if err != nil {
			return opts, err
		}
	}
	if flags.warmup > 0 {
		opts.Warmup = flags.warmup
	}
	if flags.samples > 0 {
		opts.Samples = flags.samples
	}
	if flags.iterations > 0 {
		opts.Iterations = flags.iterations
	}
	if flags.keyLimit > 0 {
		opts.KeyLimit = flags.keyLimit
	}
	return opts, nil
}

// buildLevels expands the factor flags into the declared level
// sequences, input factors crossed in flag order.
func buildLevels() (inputs []Settings, algs []Params, err error) {
	for _, n := range flags.lens {
		for _, ps := range flags.positions {
			pos, err := ParsePosition(ps)
			if err != nil {
				return nil, nil, err
			}
			inputs = append(inputs, Settings{Len: n, Position: pos})
		}
	}
	for _, nt := range flags.threads {
		for _, ds := range flags.directions {
			dir, err := ParseDirection(ds)
			if err != nil {
				return nil, nil, err
			}
			algs = append(algs, Params{NumThreads: nt, Direction: dir})
		}
	}
	return inputs, algs, nil
}

// readBaseline loads a raw benchmark-format file from a previous run
// and returns the median center per short treatment key.
func readBaseline(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening baseline: %w", err)
	}
	defer f.Close()

	samples := make(map[string][]float64)
	r := benchfmt.NewReader(f)
	for r.Scan() {
		res, err := r.Result()
		if err != nil {
			continue
		}
		// Raw names carry the experiment name as a prefix.
		key := strings.TrimPrefix(res.Name, experimentName+"/")
		if v, ok := res.Value("sec/op"); ok {
			samples[key] = append(samples[key], v)
		}
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("reading baseline: %w", err)
	}

	centers := make(map[string]float64, len(samples))
	for key, xs := range samples {
		centers[key] = stats.Sample{Xs: xs}.Quantile(0.5)
	}
	return centers, nil
}
