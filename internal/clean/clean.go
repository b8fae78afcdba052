// Package clean applies the structural repairs that take a raw sales frame
// to a validated one: exact-duplicate removal, text trimming, numeric
// coercion, derived sales computation, and invalid-row filtering. The steps
// run in that fixed order; later steps depend on earlier ones.
//
// Clean is pure apart from progress logging: every step reports one count
// line through the injected run log, and the input frame is never mutated.
package clean

import (
	"fmt"

	"salesreport/internal/frame"
	"salesreport/internal/runlog"
	"salesreport/internal/schema"
)

// ErrMissingColumn is the configuration error returned when product_code is
// absent. Aliased from schema so callers can errors.Is against either
// package.
var ErrMissingColumn = schema.ErrMissingColumn

// Cleaner runs the cleaning sequence against one frame per call.
type Cleaner struct {
	Log *runlog.Logger
}

// Clean validates and repairs raw. It returns a new frame; raw is left
// untouched. The only error condition is a missing product_code column.
func (c Cleaner) Clean(raw *frame.Frame) (*frame.Frame, error) {
	if !raw.Has(schema.ColProductCode) {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, schema.ColProductCode)
	}

	f, removed := dedupe(raw)
	c.Log.Printf("Duplicates removed: %d", removed)

	trimmed := trimText(f)
	c.Log.Printf("Text columns trimmed: %d", trimmed)

	coerced := coerceNumeric(f, schema.ColQuantity, schema.ColUnitPrice, schema.ColSales)
	c.Log.Printf("Numeric coercion: %d unparseable values set to missing", coerced)

	if deriveSales(f) {
		c.Log.Printf("Column %s did not exist; derived as %s * %s",
			schema.ColSales, schema.ColQuantity, schema.ColUnitPrice)
	}

	f, dropped := dropInvalid(f)
	c.Log.Printf("Rows removed for invalid product/quantity: %d", dropped)

	return f, nil
}
