// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"bytes"
	"fmt"
	"io"
)

// A Writer writes Results in the Go benchmark format.
type Writer struct {
	w   io.Writer
	buf bytes.Buffer

	first      bool
	fileConfig map[string]string
	order      []string
}

// NewWriter returns a writer that writes benchmark results to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, first: true, fileConfig: make(map[string]string)}
}

// Write writes result res to w. If res's file configuration differs
// from the current file configuration in w, it first emits the
// appropriate configuration lines.
func (w *Writer) Write(res *Result) error {
	if w.configChanged(res) {
		w.writeFileConfig(res)
	}

	fmt.Fprintf(&w.buf, "Benchmark%s %d", res.Name, res.Iters)
	for _, val := range res.Values {
		fmt.Fprintf(&w.buf, " %v %s", val.Value, val.Unit)
	}
	w.buf.WriteByte('\n')
	w.first = false

	// Writes to the buffer can't fail, so only the flush to the
	// underlying io.Writer is checked.
	_, err := w.w.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

func (w *Writer) configChanged(res *Result) bool {
	if len(w.fileConfig) != len(res.FileConfig) {
		return true
	}
	for _, cfg := range res.FileConfig {
		if have, ok := w.fileConfig[cfg.Key]; !ok || have != cfg.Value {
			return true
		}
	}
	return false
}

func (w *Writer) writeFileConfig(res *Result) {
	if !w.first {
		// Configuration blocks after results get an extra blank.
		w.buf.WriteByte('\n')
		w.first = true
	}

	// Walk keys we know to find changes and deletions.
	for i := 0; i < len(w.order); i++ {
		key := w.order[i]
		idx := -1
		for j, cfg := range res.FileConfig {
			if cfg.Key == key {
				idx = j
				break
			}
		}
		if idx < 0 {
			// Key was deleted.
			fmt.Fprintf(&w.buf, "%s:\n", key)
			delete(w.fileConfig, key)
			w.order = append(w.order[:i], w.order[i+1:]...)
			i--
			continue
		}
		if val := res.FileConfig[idx].Value; val != w.fileConfig[key] {
			fmt.Fprintf(&w.buf, "%s: %s\n", key, val)
			w.fileConfig[key] = val
		}
	}

	// Find new keys.
	for _, cfg := range res.FileConfig {
		if _, ok := w.fileConfig[cfg.Key]; ok {
			continue
		}
		fmt.Fprintf(&w.buf, "%s: %s\n", cfg.Key, cfg.Value)
		w.fileConfig[cfg.Key] = cfg.Value
		w.order = append(w.order, cfg.Key)
	}

	w.buf.WriteByte('\n')
}
