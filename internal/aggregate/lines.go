package aggregate

import (
	"salesreport/internal/frame"
	"salesreport/internal/schema"
)

// LineByCode maps each product_code to its product_line label: the most
// frequent non-missing line seen for that code, ties broken by the
// lexicographically smallest label. Codes with no line at all map to "".
// Returns an empty map when the dataset has no product_line column.
func LineByCode(f *frame.Frame) map[string]string {
	out := map[string]string{}
	if !f.Has(schema.ColProductLine) || !f.Has(schema.ColProductCode) {
		return out
	}
	codes := f.Col(schema.ColProductCode)
	lines := f.Col(schema.ColProductLine)

	counts := map[string]map[string]int{}
	for i := range codes {
		code, ok := codes[i].(string)
		if !ok {
			continue
		}
		if _, seen := counts[code]; !seen {
			counts[code] = map[string]int{}
			out[code] = ""
		}
		line, ok := lines[i].(string)
		if !ok {
			continue
		}
		counts[code][line]++
	}

	for code, byLine := range counts {
		best, bestN := "", 0
		for line, n := range byLine {
			if n > bestN || (n == bestN && bestN > 0 && line < best) {
				best, bestN = line, n
			}
		}
		out[code] = best
	}
	return out
}
