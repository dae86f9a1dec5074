// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// A Reader reads Results from the Go benchmark format.
//
// Call Scan to advance to the next result line; file configuration
// lines are accumulated silently and attached to subsequent results.
type Reader struct {
	s    *bufio.Scanner
	line int

	fileConfig []Config
	res        *Result
	resErr     error
	err        error
}

// NewReader returns a reader that reads benchmark results from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{s: bufio.NewScanner(r)}
}

// Scan advances the reader to the next result line. It returns false
// at end of input or on an I/O error; see Err.
func (r *Reader) Scan() bool {
	for r.s.Scan() {
		r.line++
		line := r.s.Text()
		switch {
		case strings.HasPrefix(line, "Benchmark"):
			r.res, r.resErr = r.parseBenchmark(line)
			return true
		case isFileConfig(line):
			key, val, _ := strings.Cut(line, ":")
			r.setFileConfig(key, strings.TrimSpace(val))
		}
		// Anything else is a comment or blank line; skip it.
	}
	r.err = r.s.Err()
	return false
}

// Result returns the result of the last successful Scan, or a parse
// error for a malformed line. Parse errors are non-fatal: the caller
// may keep scanning.
func (r *Reader) Result() (*Result, error) {
	return r.res, r.resErr
}

// Err returns the I/O error that terminated scanning, if any.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) setFileConfig(key, value string) {
	for i, cfg := range r.fileConfig {
		if cfg.Key == key {
			if value == "" {
				r.fileConfig = append(r.fileConfig[:i], r.fileConfig[i+1:]...)
			} else {
				r.fileConfig[i].Value = value
			}
			return
		}
	}
	if value != "" {
		r.fileConfig = append(r.fileConfig, Config{key, value})
	}
}

func (r *Reader) parseBenchmark(line string) (*Result, error) {
	fields := strings.Fields(line)
	// A result line needs a name, an iteration count and at least
	// one value/unit pair.
	if len(fields) < 4 || len(fields)%2 != 0 {
		return nil, fmt.Errorf("line %d: malformed benchmark line", r.line)
	}
	iters, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("line %d: bad iteration count %q", r.line, fields[1])
	}
	res := &Result{
		FileConfig: append([]Config(nil), r.fileConfig...),
		Name:       strings.TrimPrefix(fields[0], "Benchmark"),
		Iters:      iters,
	}
	for i := 2; i < len(fields); i += 2 {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad value %q", r.line, fields[i])
		}
		res.Values = append(res.Values, Value{v, fields[i+1]})
	}
	return res, nil
}

// isFileConfig reports whether line is a file configuration line:
// a lower-case key with no spaces, a colon, and a value.
func isFileConfig(line string) bool {
	key, _, ok := strings.Cut(line, ":")
	if !ok || key == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(key)
	if !unicode.IsLower(first) {
		return false
	}
	return !strings.ContainsAny(key, " \t")
}
