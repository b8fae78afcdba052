package aggregate

import (
	"fmt"
	"sort"

	"salesreport/internal/frame"
	"salesreport/internal/schema"
)

// ABC category labels.
const (
	CategoryA = "A"
	CategoryB = "B"
	CategoryC = "C"
)

// Cumulative-percent thresholds: rows up to 80% of total sales are A, up to
// 95% are B, the tail is C.
const (
	abcThresholdA = 80.0
	abcThresholdB = 95.0
)

// ABCRow is one product with its contribution to total sales.
type ABCRow struct {
	Code       string
	Total      float64
	Percent    float64
	Cumulative float64
	Category   string
}

// ABCTable classifies every product into A/B/C tiers, ordered by descending
// sales.
type ABCTable struct {
	Rows []ABCRow
}

// Classify sums sales per product, ranks the products and assigns A/B/C by
// cumulative percent of the grand total. Both product_code and sales_amount
// must exist; their absence is a configuration error. A zero grand total is
// an explicit edge case, not an error: every percent is zero and every row
// lands in C.
func Classify(f *frame.Frame) (*ABCTable, error) {
	for _, col := range []string{schema.ColProductCode, schema.ColSales} {
		if !f.Has(col) {
			return nil, fmt.Errorf("%w: %s", schema.ErrMissingColumn, col)
		}
	}

	codes := f.Col(schema.ColProductCode)
	sales := f.Col(schema.ColSales)
	totals := make(map[string]float64, 64)
	order := make([]string, 0, 64)
	for i := range codes {
		code, ok := codes[i].(string)
		if !ok {
			continue
		}
		if _, seen := totals[code]; !seen {
			order = append(order, code)
		}
		if v, ok := sales[i].(float64); ok {
			totals[code] += v
		}
	}

	rows := make([]ABCRow, 0, len(order))
	grand := 0.0
	for _, code := range order {
		rows = append(rows, ABCRow{Code: code, Total: totals[code]})
		grand += totals[code]
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Total > rows[j].Total })

	cum := 0.0
	for i := range rows {
		if grand == 0 {
			rows[i].Category = CategoryC
			continue
		}
		rows[i].Percent = rows[i].Total / grand * 100
		cum += rows[i].Percent
		rows[i].Cumulative = cum
		switch {
		case cum <= abcThresholdA:
			rows[i].Category = CategoryA
		case cum <= abcThresholdB:
			rows[i].Category = CategoryB
		default:
			rows[i].Category = CategoryC
		}
	}
	return &ABCTable{Rows: rows}, nil
}

// Count returns how many products carry the given category.
func (t *ABCTable) Count(category string) int {
	n := 0
	for _, r := range t.Rows {
		if r.Category == category {
			n++
		}
	}
	return n
}

// Frame renders the classification as a table for persistence.
func (t *ABCTable) Frame() *frame.Frame {
	f, _ := frame.New(schema.ColProductCode, schema.ColSales, "percent", "cumulative_percent", "category")
	for _, r := range t.Rows {
		_ = f.AppendRow([]any{r.Code, r.Total, r.Percent, r.Cumulative, r.Category})
	}
	return f
}
