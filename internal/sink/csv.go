// Package sink persists frames as delimited and spreadsheet files. Table
// writes are whole-snapshot: an existing file at the target path is
// overwritten, never appended to.
package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"salesreport/internal/frame"
)

// WriteCSV writes f to path as comma-separated UTF-8 text with a header
// row, replacing any existing file. Missing cells render as empty fields.
func WriteCSV(f *frame.Frame, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", path, err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(f.Columns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, f.NumCols())
	for i := 0; i < f.NumRows(); i++ {
		for c, name := range f.Columns() {
			row[c] = cellString(f.Cell(i, name))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return out.Close()
}

// cellString renders a cell for delimited output. nil renders empty, which
// round-trips back to missing through the loader.
func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case time.Time:
		return t.Format("2006-01-02")
	default:
		return fmt.Sprint(t)
	}
}
