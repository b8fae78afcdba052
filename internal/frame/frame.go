// Package frame implements the in-memory tabular dataset all pipeline stages
// operate on. A Frame is an ordered set of named columns of equal length;
// cell values are dynamically typed (string, float64, time.Time, ...) and a
// nil cell is the missing-value marker, distinct from a present empty string.
//
// Frames are cheap to copy structurally: filtering produces a new Frame that
// shares no column slices with its source, so no stage can mutate data it
// does not own.
package frame

import (
	"fmt"
)

// Frame is a column-major table. The zero value is not usable; construct
// with New.
type Frame struct {
	names []string
	cols  [][]any
	index map[string]int
}

// New returns an empty Frame with the given column names, in order.
// Duplicate names are rejected.
func New(names ...string) (*Frame, error) {
	f := &Frame{
		names: append([]string(nil), names...),
		cols:  make([][]any, len(names)),
		index: make(map[string]int, len(names)),
	}
	for i, n := range names {
		if _, dup := f.index[n]; dup {
			return nil, fmt.Errorf("frame: duplicate column %q", n)
		}
		f.index[n] = i
	}
	return f, nil
}

// Columns returns the column names in order. The caller must not modify the
// returned slice.
func (f *Frame) Columns() []string { return f.names }

// NumCols returns the number of columns.
func (f *Frame) NumCols() int { return len(f.names) }

// NumRows returns the row count, identical across all columns.
func (f *Frame) NumRows() int {
	if len(f.cols) == 0 {
		return 0
	}
	return len(f.cols[0])
}

// Has reports whether a column with the given name exists.
func (f *Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Col returns the values of the named column, or nil when the column does
// not exist. The caller must not modify the returned slice; use SetCol to
// replace a column.
func (f *Frame) Col(name string) []any {
	i, ok := f.index[name]
	if !ok {
		return nil
	}
	return f.cols[i]
}

// Cell returns the value at (row, column name). It returns nil for a
// missing value or an unknown column.
func (f *Frame) Cell(row int, name string) any {
	i, ok := f.index[name]
	if !ok {
		return nil
	}
	return f.cols[i][row]
}

// AppendRow appends one row. The number of values must match the number of
// columns.
func (f *Frame) AppendRow(vals []any) error {
	if len(vals) != len(f.names) {
		return fmt.Errorf("frame: row width %d, want %d", len(vals), len(f.names))
	}
	for i, v := range vals {
		f.cols[i] = append(f.cols[i], v)
	}
	return nil
}

// Row materializes row i as a fresh slice in column order.
func (f *Frame) Row(i int) []any {
	out := make([]any, len(f.cols))
	for c := range f.cols {
		out[c] = f.cols[c][i]
	}
	return out
}

// SetCol replaces the named column with vals, or appends a new column when
// the name is unknown. len(vals) must equal NumRows unless the frame has no
// columns yet.
func (f *Frame) SetCol(name string, vals []any) error {
	if len(f.names) > 0 && len(vals) != f.NumRows() {
		return fmt.Errorf("frame: column %q length %d, want %d", name, len(vals), f.NumRows())
	}
	if i, ok := f.index[name]; ok {
		f.cols[i] = vals
		return nil
	}
	f.index[name] = len(f.names)
	f.names = append(f.names, name)
	f.cols = append(f.cols, vals)
	return nil
}

// Select returns a new Frame containing only the given row positions, in the
// given order. Positions must be valid row indexes. The result shares no
// storage with f.
func (f *Frame) Select(rows []int) *Frame {
	out := &Frame{
		names: append([]string(nil), f.names...),
		cols:  make([][]any, len(f.cols)),
		index: make(map[string]int, len(f.index)),
	}
	for n, i := range f.index {
		out.index[n] = i
	}
	for c := range f.cols {
		col := make([]any, len(rows))
		for j, r := range rows {
			col[j] = f.cols[c][r]
		}
		out.cols[c] = col
	}
	return out
}

// Clone returns a deep structural copy of f. Cell values themselves are
// shared (they are treated as immutable by the pipeline).
func (f *Frame) Clone() *Frame {
	rows := make([]int, f.NumRows())
	for i := range rows {
		rows[i] = i
	}
	return f.Select(rows)
}

// MissingIn returns the number of nil cells in the named column, or 0 for an
// unknown column.
func (f *Frame) MissingIn(name string) int {
	n := 0
	for _, v := range f.Col(name) {
		if v == nil {
			n++
		}
	}
	return n
}
