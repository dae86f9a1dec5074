// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out rows of cells into aligned, fixed-width
// text columns.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Align controls the horizontal alignment of a cell within its
// column.
type Align int

const (
	Left Align = iota
	Right
	Center
)

type cell struct {
	text  string
	align Align
}

// A Table accumulates rows of cells and formats them with each column
// padded to its widest cell. Rows may have different lengths; short
// rows simply leave later columns empty.
type Table struct {
	rows [][]cell
}

// Row starts a new row.
func (t *Table) Row() {
	t.rows = append(t.rows, nil)
}

// Cell appends a cell to the current row. It panics if no row has
// been started.
func (t *Table) Cell(text string, align Align) {
	if len(t.rows) == 0 {
		panic("texttab: Cell before Row")
	}
	last := len(t.rows) - 1
	t.rows[last] = append(t.rows[last], cell{text, align})
}

// Format writes the aligned table to w, assuming a fixed-width font.
// Columns are separated by two spaces; trailing spaces are trimmed.
func (t *Table) Format(w io.Writer) error {
	// Compute column widths.
	var widths []int
	for _, row := range t.rows {
		for i, c := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if n := utf8.RuneCountInString(c.text); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var b strings.Builder
	for _, row := range t.rows {
		b.Reset()
		for i, c := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			pad := widths[i] - utf8.RuneCountInString(c.text)
			switch c.align {
			case Left:
				b.WriteString(c.text)
				b.WriteString(strings.Repeat(" ", pad))
			case Right:
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(c.text)
			case Center:
				b.WriteString(strings.Repeat(" ", pad/2))
				b.WriteString(c.text)
				b.WriteString(strings.Repeat(" ", pad-pad/2))
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n", strings.TrimRight(b.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
