package clean

import (
	"strconv"
	"strings"

	"salesreport/internal/frame"
)

// coerceNumeric converts the named columns (those present) to float64 cells.
// A value that fails to parse becomes missing; the run never aborts on a bad
// cell. Returns how many values were set to missing.
func coerceNumeric(f *frame.Frame, names ...string) int {
	failed := 0
	for _, name := range names {
		if !f.Has(name) {
			continue
		}
		col := f.Col(name)
		out := make([]any, len(col))
		for i, v := range col {
			switch t := v.(type) {
			case nil:
				// stays missing
			case float64:
				out[i] = t
			case int:
				out[i] = float64(t)
			case string:
				if n, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
					out[i] = n
				} else {
					failed++
				}
			default:
				failed++
			}
		}
		_ = f.SetCol(name, out)
	}
	return failed
}
