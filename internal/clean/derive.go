package clean

import (
	"salesreport/internal/frame"
	"salesreport/internal/schema"
)

// deriveSales computes sales_amount = quantity_ordered * unit_price when the
// sales column is absent and both operands exist. A missing operand yields a
// missing product. Reports whether the column was derived.
func deriveSales(f *frame.Frame) bool {
	if f.Has(schema.ColSales) || !f.Has(schema.ColQuantity) || !f.Has(schema.ColUnitPrice) {
		return false
	}
	qty := f.Col(schema.ColQuantity)
	price := f.Col(schema.ColUnitPrice)
	sales := make([]any, len(qty))
	for i := range qty {
		q, qok := qty[i].(float64)
		p, pok := price[i].(float64)
		if qok && pok {
			sales[i] = q * p
		}
	}
	_ = f.SetCol(schema.ColSales, sales)
	return true
}
