// Package schema names the logical sales columns the pipeline understands
// and the capability flags derived from a cleaned dataset. Logical names are
// independent of source spellings; the loader's header map translates vendor
// headers into them.
package schema

import (
	"errors"

	"salesreport/internal/frame"
)

// ErrMissingColumn reports a structurally required column absent from the
// dataset. This is a configuration error that aborts the affected stage,
// unlike value-level problems which degrade to missing cells or dropped
// rows.
var ErrMissingColumn = errors.New("required column missing")

// Logical column names.
const (
	ColProductCode = "product_code"
	ColProductLine = "product_line"
	ColQuantity    = "quantity_ordered"
	ColUnitPrice   = "unit_price"
	ColSales       = "sales_amount"
	ColOrderDate   = "order_date"
	ColTerritory   = "territory"
)

// DefaultHeaderMap translates the classic sales-sample export headers into
// logical names. Headers absent from the map fall through to the loader's
// generic normalization.
func DefaultHeaderMap() map[string]string {
	return map[string]string{
		"PRODUCTCODE":     ColProductCode,
		"PRODUCTLINE":     ColProductLine,
		"QUANTITYORDERED": ColQuantity,
		"PRICEEACH":       ColUnitPrice,
		"SALES":           ColSales,
		"ORDERDATE":       ColOrderDate,
		"TERRITORY":       ColTerritory,
	}
}

// Capabilities records which optional analyses the cleaned dataset supports.
// It is computed once after cleaning and threaded through the aggregator
// calls instead of re-checking column presence ad hoc.
type Capabilities struct {
	HasQuantity    bool
	HasUnitPrice   bool
	HasSales       bool
	HasOrderDate   bool
	HasTerritory   bool
	HasProductLine bool
}

// CapabilitiesOf inspects the cleaned frame. product_code presence is a hard
// requirement enforced by the cleaner, not a capability.
func CapabilitiesOf(f *frame.Frame) Capabilities {
	return Capabilities{
		HasQuantity:    f.Has(ColQuantity),
		HasUnitPrice:   f.Has(ColUnitPrice),
		HasSales:       f.Has(ColSales),
		HasOrderDate:   f.Has(ColOrderDate),
		HasTerritory:   f.Has(ColTerritory),
		HasProductLine: f.Has(ColProductLine),
	}
}
