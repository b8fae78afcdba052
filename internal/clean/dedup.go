package clean

import (
	"fmt"
	"time"

	"github.com/zeebo/xxh3"

	"salesreport/internal/frame"
)

// dedupe removes rows that are exact duplicates across all columns, keeping
// the first occurrence in input order. Rows are keyed by an xxh3 hash of
// their serialized cells; a hash hit is confirmed cell-by-cell before a row
// is discarded, so collisions can never drop a distinct row.
func dedupe(f *frame.Frame) (*frame.Frame, int) {
	seen := make(map[uint64][]int, f.NumRows())
	keep := make([]int, 0, f.NumRows())
	buf := make([]byte, 0, 256)

	for i := 0; i < f.NumRows(); i++ {
		buf = appendRowKey(buf[:0], f, i)
		h := xxh3.Hash(buf)

		dup := false
		for _, j := range seen[h] {
			if rowsEqual(f, i, j) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen[h] = append(seen[h], i)
		keep = append(keep, i)
	}

	if len(keep) == f.NumRows() {
		return f.Clone(), 0
	}
	return f.Select(keep), f.NumRows() - len(keep)
}

// appendRowKey serializes row i into buf. Cells are separated by 0x1f and a
// missing cell is encoded as a lone 0x00, so "a"+"" and ""+"a" hash apart.
func appendRowKey(buf []byte, f *frame.Frame, i int) []byte {
	for c, name := range f.Columns() {
		if c > 0 {
			buf = append(buf, 0x1f)
		}
		switch v := f.Cell(i, name).(type) {
		case nil:
			buf = append(buf, 0x00)
		case string:
			buf = append(buf, v...)
		case float64:
			buf = fmt.Appendf(buf, "%g", v)
		case time.Time:
			buf = v.AppendFormat(buf, time.RFC3339Nano)
		default:
			buf = fmt.Append(buf, v)
		}
	}
	return buf
}

func rowsEqual(f *frame.Frame, i, j int) bool {
	for _, name := range f.Columns() {
		if f.Cell(i, name) != f.Cell(j, name) {
			return false
		}
	}
	return true
}
