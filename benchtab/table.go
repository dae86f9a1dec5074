// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/benchlab/factorbench/internal/texttab"
)

// Tables is a sequence of comparison tables, one per measurement
// unit, sharing row and column structure.
type Tables struct {
	Tables []*Table
}

// A Table summarizes one unit's results across all treatments. Rows
// are input factor levels in execution order; columns are algorithm
// factor levels in declaration order, with the first column serving
// as the comparison baseline.
type Table struct {
	Unit string

	Rows []Header
	Cols []Header

	Cells   map[TableKey]*TableCell
	Summary map[string]*TableSummary

	SummaryLabel string
	HasPrior     bool
}

// A TableKey locates a cell by row and column header keys.
type TableKey struct {
	Row, Col string
}

// A TableCell is one treatment's summary.
type TableCell struct {
	Center float64
	Spread float64 // half the interquartile range, as a percent of Center
	N      int
	Failed bool

	Best bool

	HasDelta bool
	Delta    float64 // percent change versus the baseline column

	HasPrior bool
	Prior    float64 // percent change versus the prior run

	ShortKey string
}

// A TableSummary is the bottom summary of one column.
type TableSummary struct {
	HasGeoMean bool
	GeoMean    float64
	HasRatio   bool
	Ratio      float64 // percent change of the ratio geomean versus baseline
}

const bestMark = "«"

// ToText renders t to w as aligned text.
func (t *Table) ToText(w io.Writer) error {
	var tab texttab.Table

	// Column header row.
	tab.Row()
	tab.Cell("", texttab.Left)
	for _, col := range t.Cols {
		tab.Cell(col.Key(), texttab.Center)
		t.padSubCols(&tab, 1)
	}

	// Unit row.
	tab.Row()
	tab.Cell("", texttab.Left)
	for i := range t.Cols {
		tab.Cell(t.Unit, texttab.Right)
		tab.Cell("", texttab.Left)
		if i > 0 {
			tab.Cell("vs base", texttab.Right)
		} else {
			tab.Cell("", texttab.Right)
		}
		if t.HasPrior {
			tab.Cell("vs prior", texttab.Right)
		}
	}

	for _, row := range t.Rows {
		tab.Row()
		tab.Cell(row.Key(), texttab.Left)
		for i, col := range t.Cols {
			cell, ok := t.Cells[TableKey{row.Key(), col.Key()}]
			if !ok {
				t.padSubCols(&tab, 0)
				continue
			}
			if cell.Failed {
				tab.Cell("FAIL", texttab.Right)
				t.padSubCols(&tab, 1)
				continue
			}
			center := FormatValue(cell.Center, t.Unit)
			if cell.Best {
				center += " " + bestMark
			}
			tab.Cell(center, texttab.Right)
			if cell.N > 1 {
				tab.Cell(fmt.Sprintf("± %.0f%%", cell.Spread), texttab.Left)
			} else {
				tab.Cell("", texttab.Left)
			}
			if i > 0 && cell.HasDelta {
				tab.Cell(formatPct(cell.Delta), texttab.Right)
			} else {
				tab.Cell("", texttab.Right)
			}
			if t.HasPrior {
				if cell.HasPrior {
					tab.Cell(formatPct(cell.Prior), texttab.Right)
				} else {
					tab.Cell("", texttab.Right)
				}
			}
		}
	}

	// Summary row.
	tab.Row()
	tab.Cell(t.SummaryLabel, texttab.Left)
	for i, col := range t.Cols {
		s := t.Summary[col.Key()]
		if s == nil || !s.HasGeoMean {
			t.padSubCols(&tab, 0)
			continue
		}
		tab.Cell(FormatValue(s.GeoMean, t.Unit), texttab.Right)
		tab.Cell("", texttab.Left)
		if i > 0 && s.HasRatio {
			tab.Cell(formatPct(s.Ratio), texttab.Right)
		} else {
			tab.Cell("", texttab.Right)
		}
		if t.HasPrior {
			tab.Cell("", texttab.Right)
		}
	}

	return tab.Format(w)
}

// padSubCols fills out one column group with empty cells so later
// rows stay aligned. written is the number of sub-columns the caller
// already emitted for this group.
func (t *Table) padSubCols(tab *texttab.Table, written int) {
	n := 3
	if t.HasPrior {
		n = 4
	}
	for ; written < n; written++ {
		tab.Cell("", texttab.Left)
	}
}

// ToCSV renders t to w as CSV. Each data row carries the input level
// key followed by, per column, the center, spread percent, percent
// versus baseline, percent versus prior if available, and a best flag.
func (t *Table) ToCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	hdr := []string{""}
	for _, col := range t.Cols {
		hdr = append(hdr, col.Key(), "spread%", "vs base%")
		if t.HasPrior {
			hdr = append(hdr, "vs prior%")
		}
		hdr = append(hdr, "best")
	}
	if err := cw.Write(hdr); err != nil {
		return err
	}

	for _, row := range t.Rows {
		rec := []string{row.Key()}
		for _, col := range t.Cols {
			cell, ok := t.Cells[TableKey{row.Key(), col.Key()}]
			switch {
			case !ok:
				rec = append(rec, "", "", "")
			case cell.Failed:
				rec = append(rec, "FAIL", "", "")
			default:
				rec = append(rec, fmt.Sprintf("%g", cell.Center), fmt.Sprintf("%.1f", cell.Spread), csvPct(cell.HasDelta, cell.Delta))
			}
			if t.HasPrior {
				if ok && cell.HasPrior {
					rec = append(rec, fmt.Sprintf("%.2f", cell.Prior))
				} else {
					rec = append(rec, "")
				}
			}
			if ok && cell.Best {
				rec = append(rec, "true")
			} else {
				rec = append(rec, "")
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	rec := []string{t.SummaryLabel}
	for _, col := range t.Cols {
		s := t.Summary[col.Key()]
		if s != nil && s.HasGeoMean {
			rec = append(rec, fmt.Sprintf("%g", s.GeoMean), "", csvPct(s.HasRatio, s.Ratio))
		} else {
			rec = append(rec, "", "", "")
		}
		if t.HasPrior {
			rec = append(rec, "")
		}
		rec = append(rec, "")
	}
	if err := cw.Write(rec); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

// ToMarkdown renders t to w as a GitHub-flavored Markdown table. The
// best cell in each row is bolded.
func (t *Table) ToMarkdown(w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("|  |")
	for _, col := range t.Cols {
		sb.WriteString(" " + col.Key() + " |")
		if t.HasPrior {
			sb.WriteString(" vs prior |")
		}
	}
	sb.WriteString("\n|---|")
	for range t.Cols {
		sb.WriteString("---:|")
		if t.HasPrior {
			sb.WriteString("---:|")
		}
	}
	sb.WriteString("\n")

	for _, row := range t.Rows {
		sb.WriteString("| " + row.Key() + " |")
		for i, col := range t.Cols {
			cell, ok := t.Cells[TableKey{row.Key(), col.Key()}]
			switch {
			case !ok:
				sb.WriteString("  |")
			case cell.Failed:
				sb.WriteString(" FAIL |")
			default:
				val := FormatValue(cell.Center, t.Unit)
				if cell.N > 1 {
					val += fmt.Sprintf(" ± %.0f%%", cell.Spread)
				}
				if i > 0 && cell.HasDelta {
					val += " (" + formatPct(cell.Delta) + ")"
				}
				if cell.Best {
					val = "**" + val + "**"
				}
				sb.WriteString(" " + val + " |")
			}
			if t.HasPrior {
				if ok && cell.HasPrior {
					sb.WriteString(" " + formatPct(cell.Prior) + " |")
				} else {
					sb.WriteString("  |")
				}
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("| " + t.SummaryLabel + " |")
	for i, col := range t.Cols {
		s := t.Summary[col.Key()]
		if s != nil && s.HasGeoMean {
			val := FormatValue(s.GeoMean, t.Unit)
			if i > 0 && s.HasRatio {
				val += " (" + formatPct(s.Ratio) + ")"
			}
			sb.WriteString(" " + val + " |")
		} else {
			sb.WriteString("  |")
		}
		if t.HasPrior {
			sb.WriteString("  |")
		}
	}
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// ToText renders all tables, blank-line separated.
func (ts *Tables) ToText(w io.Writer) error {
	for i, t := range ts.Tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := t.ToText(w); err != nil {
			return err
		}
	}
	return nil
}

// ToCSV renders all tables, blank-line separated.
func (ts *Tables) ToCSV(w io.Writer) error {
	for i, t := range ts.Tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := t.ToCSV(w); err != nil {
			return err
		}
	}
	return nil
}

// ToMarkdown renders all tables, blank-line separated.
func (ts *Tables) ToMarkdown(w io.Writer) error {
	for i, t := range ts.Tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := t.ToMarkdown(w); err != nil {
			return err
		}
	}
	return nil
}

func formatPct(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

func csvPct(ok bool, v float64) string {
	if !ok {
		return ""
	}
	return fmt.Sprintf("%.2f", v)
}
