package clean

import (
	"fmt"
	"strings"

	"salesreport/internal/frame"
)

// trimText strips leading and trailing whitespace in every text-typed
// column, in place, and returns the number of columns touched. A column is
// text-typed when it holds at least one string cell. Non-string cells in a
// text column are stringified first (a numeric value mistyped into a text
// column stays text; it is not parsed). A cell that trims down to nothing
// becomes missing.
func trimText(f *frame.Frame) int {
	touched := 0
	for _, name := range f.Columns() {
		col := f.Col(name)
		if !isTextColumn(col) {
			continue
		}
		out := make([]any, len(col))
		for i, v := range col {
			if v == nil {
				continue
			}
			s, ok := v.(string)
			if !ok {
				s = fmt.Sprint(v)
			}
			s = strings.TrimSpace(s)
			if s == "" {
				out[i] = nil
				continue
			}
			out[i] = s
		}
		_ = f.SetCol(name, out)
		touched++
	}
	return touched
}

func isTextColumn(col []any) bool {
	for _, v := range col {
		if _, ok := v.(string); ok {
			return true
		}
	}
	return false
}
