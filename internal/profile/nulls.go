// Package profile computes data-quality summaries over a raw frame before
// any cleaning happens. The report feeds the run log and a persisted table;
// it never mutates its input.
package profile

import (
	"sort"

	"salesreport/internal/frame"
)

// ColumnCount is one entry of the missing-value report.
type ColumnCount struct {
	Column  string
	Missing int
}

// RankedCounts lists per-column missing counts, sorted descending by count.
// Columns with equal counts keep their original dataset order.
type RankedCounts []ColumnCount

// MissingByColumn counts nil cells per column and ranks the result.
func MissingByColumn(f *frame.Frame) RankedCounts {
	out := make(RankedCounts, 0, f.NumCols())
	for _, name := range f.Columns() {
		out = append(out, ColumnCount{Column: name, Missing: f.MissingIn(name)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Missing > out[j].Missing })
	return out
}

// Top returns the first n entries (or fewer).
func (r RankedCounts) Top(n int) RankedCounts {
	if n > len(r) {
		n = len(r)
	}
	return r[:n]
}

// Frame renders the report as a two-column table for persistence.
func (r RankedCounts) Frame() *frame.Frame {
	f, _ := frame.New("column", "missing")
	for _, e := range r {
		_ = f.AppendRow([]any{e.Column, float64(e.Missing)})
	}
	return f
}
