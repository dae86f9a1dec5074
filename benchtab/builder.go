// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchtab aggregates experiment records into comparison
// tables.
//
// Records are grouped by their input factor levels: all algorithm
// variants that shared an input level land in the same row, in
// execution order. Within a row, the first-declared algorithm level is
// the baseline; every other cell shows its relative change against it,
// and the cell with the minimum central estimate carries the best
// marker. When a prior run's centers are supplied, cells additionally
// show their change against that run.
package benchtab

import (
	"github.com/aclements/go-moremath/stats"

	"github.com/benchlab/factorbench/benchkey"
	"github.com/benchlab/factorbench/benchrun"
)

// A Builder collects experiment records into a Tables set.
type Builder struct {
	records []*benchrun.Record
	prior   map[string]float64
}

// NewBuilder creates a Builder for collecting records in grid
// traversal order.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add adds one treatment's record.
func (b *Builder) Add(rec *benchrun.Record) {
	b.records = append(b.records, rec)
}

// SetPrior attaches central estimates from a previous run, keyed by
// short treatment key. Cells with a matching prior render a relative
// change against it.
func (b *Builder) SetPrior(centers map[string]float64) {
	b.prior = centers
}

// ToTables finalizes the Builder into one Table per measurement unit,
// in first-observed order.
func (b *Builder) ToTables() *Tables {
	tables := &Tables{}
	byUnit := make(map[string]*Table)

	for _, rec := range b.records {
		unit := rec.Stat.Unit
		if rec.Failed() && unit == "" {
			unit = "sec/op"
		}
		t := byUnit[unit]
		if t == nil {
			t = &Table{
				Unit:         unit,
				Cells:        make(map[TableKey]*TableCell),
				Summary:      make(map[string]*TableSummary),
				SummaryLabel: "geomean",
			}
			byUnit[unit] = t
			tables.Tables = append(tables.Tables, t)
		}
		t.add(rec, b.prior)
	}

	for _, t := range tables.Tables {
		t.finalize()
	}
	return tables
}

func (t *Table) add(rec *benchrun.Record, prior map[string]float64) {
	row := Header{Names: rec.InputNames, Levels: rec.InputLevels}
	col := Header{Names: rec.AlgNames, Levels: rec.AlgLevels}

	key := TableKey{row.Key(), col.Key()}
	if _, ok := t.Cells[key]; ok {
		// One record per treatment; a duplicate means the caller
		// replayed the stream. Last write wins.
		delete(t.Cells, key)
	} else {
		if !t.hasRow(row) {
			t.Rows = append(t.Rows, row)
		}
		if !t.hasCol(col) {
			t.Cols = append(t.Cols, col)
		}
	}

	cell := &TableCell{
		Center:   rec.Stat.Center,
		N:        len(rec.Stat.Samples),
		Failed:   rec.Failed(),
		ShortKey: rec.ShortKey,
	}
	if cell.N > 1 {
		sample := stats.Sample{Xs: rec.Stat.Samples}
		q1, q3 := sample.Quantile(0.25), sample.Quantile(0.75)
		if cell.Center > 0 {
			cell.Spread = (q3 - q1) / 2 / cell.Center * 100
		}
	}
	if c, ok := prior[rec.ShortKey]; ok && !cell.Failed && c > 0 {
		cell.HasPrior = true
		cell.Prior = (cell.Center/c - 1) * 100
		t.HasPrior = true
	}
	t.Cells[key] = cell
}

func (t *Table) hasRow(h Header) bool {
	for _, r := range t.Rows {
		if r.Key() == h.Key() {
			return true
		}
	}
	return false
}

func (t *Table) hasCol(h Header) bool {
	for _, c := range t.Cols {
		if c.Key() == h.Key() {
			return true
		}
	}
	return false
}

// finalize computes per-row best markers, baseline deltas, and the
// geomean summary row.
func (t *Table) finalize() {
	if len(t.Cols) == 0 {
		return
	}
	baseCol := t.Cols[0].Key()

	for _, row := range t.Rows {
		// Best marker: minimum center among completed cells;
		// a tie resolves to the first-declared column because
		// later cells must be strictly faster to take it.
		var best *TableCell
		for _, col := range t.Cols {
			cell, ok := t.Cells[TableKey{row.Key(), col.Key()}]
			if !ok || cell.Failed {
				continue
			}
			if best == nil || cell.Center < best.Center {
				best = cell
			}
		}
		if best != nil {
			best.Best = true
		}

		// Baseline deltas.
		base, ok := t.Cells[TableKey{row.Key(), baseCol}]
		if !ok || base.Failed || base.Center <= 0 {
			continue
		}
		for _, col := range t.Cols[1:] {
			cell, ok := t.Cells[TableKey{row.Key(), col.Key()}]
			if !ok || cell.Failed {
				continue
			}
			cell.HasDelta = true
			cell.Delta = (cell.Center/base.Center - 1) * 100
		}
	}

	// Summary row: geomean of centers per column, and geomean of
	// the per-row ratios for non-baseline columns.
	for i, col := range t.Cols {
		var centers, ratios []float64
		for _, row := range t.Rows {
			cell, ok := t.Cells[TableKey{row.Key(), col.Key()}]
			if !ok || cell.Failed {
				continue
			}
			centers = append(centers, cell.Center)
			if cell.HasDelta {
				ratios = append(ratios, 1+cell.Delta/100)
			}
		}
		s := &TableSummary{}
		if gm := stats.GeoMean(centers); gm > 0 {
			s.HasGeoMean, s.GeoMean = true, gm
		}
		if i > 0 {
			if gm := stats.GeoMean(ratios); gm > 0 {
				s.HasRatio, s.Ratio = true, (gm-1)*100
			}
		}
		t.Summary[col.Key()] = s
	}
}

// A Header identifies a table row or column by its ordered factor
// names and levels, full form.
type Header struct {
	Names  []string
	Levels []string
}

// Key returns the canonical "name:level" join of the header.
func (h Header) Key() string {
	return benchkey.Join(h.Names, h.Levels)
}

func (h Header) String() string {
	return h.Key()
}
