package clean

import (
	"salesreport/internal/frame"
	"salesreport/internal/schema"
)

// dropInvalid removes rows that cannot contribute to any analysis: missing
// product_code, and, when the quantity column exists, missing or
// non-positive quantity. Surviving rows keep their relative order.
func dropInvalid(f *frame.Frame) (*frame.Frame, int) {
	code := f.Col(schema.ColProductCode)
	var qty []any
	if f.Has(schema.ColQuantity) {
		qty = f.Col(schema.ColQuantity)
	}

	keep := make([]int, 0, f.NumRows())
	for i := 0; i < f.NumRows(); i++ {
		if code[i] == nil {
			continue
		}
		if qty != nil {
			q, ok := qty[i].(float64)
			if !ok || q <= 0 {
				continue
			}
		}
		keep = append(keep, i)
	}
	if len(keep) == f.NumRows() {
		return f, 0
	}
	return f.Select(keep), f.NumRows() - len(keep)
}
