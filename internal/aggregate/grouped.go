package aggregate

import (
	"sort"
	"time"

	"salesreport/internal/frame"
	"salesreport/internal/schema"
)

// MonthLines is the fixed set of product lines the monthly quantity charts
// cover. Rows outside this set are excluded from the monthly aggregate only;
// they still count toward the top-N and ABC tables.
var MonthLines = []string{"Vintage Cars", "Classic Cars", "Trucks and Buses", "Motorcycles"}

// ComparisonLines is the fixed set used by the territory comparison and the
// price distribution.
var ComparisonLines = []string{"Vintage Cars", "Classic Cars"}

// MonthlyRow is the summed quantity of one product line in one calendar
// month (across all years).
type MonthlyRow struct {
	Month    time.Month
	Line     string
	Quantity float64
}

// MonthlyTable lists monthly quantities ordered by month, then by the
// MonthLines order.
type MonthlyTable struct {
	Rows []MonthlyRow
}

// MonthlyQuantity sums quantity_ordered per (month of order_date, product
// line) for the MonthLines set. Rows with an unparseable date or a missing
// quantity are excluded from the sums.
func MonthlyQuantity(f *frame.Frame) *MonthlyTable {
	if !f.Has(schema.ColOrderDate) || !f.Has(schema.ColProductLine) || !f.Has(schema.ColQuantity) {
		return &MonthlyTable{}
	}
	allowed := allowSet(MonthLines)
	lineRank := rankOf(MonthLines)

	dates := f.Col(schema.ColOrderDate)
	lines := f.Col(schema.ColProductLine)
	qty := f.Col(schema.ColQuantity)

	type key struct {
		month time.Month
		line  string
	}
	totals := map[key]float64{}
	for i := range dates {
		line, ok := lines[i].(string)
		if !ok {
			continue
		}
		if _, want := allowed[line]; !want {
			continue
		}
		day, ok := parseDate(dates[i])
		if !ok {
			continue
		}
		q, ok := qty[i].(float64)
		if !ok {
			continue // missing quantities are excluded, not zeroed
		}
		totals[key{month: day.Month(), line: line}] += q
	}

	t := &MonthlyTable{Rows: make([]MonthlyRow, 0, len(totals))}
	for k, v := range totals {
		t.Rows = append(t.Rows, MonthlyRow{Month: k.month, Line: k.line, Quantity: v})
	}
	sort.Slice(t.Rows, func(i, j int) bool {
		if t.Rows[i].Month != t.Rows[j].Month {
			return t.Rows[i].Month < t.Rows[j].Month
		}
		return lineRank[t.Rows[i].Line] < lineRank[t.Rows[j].Line]
	})
	return t
}

// SeriesFor extracts one product line's rows, already month-ordered.
func (t *MonthlyTable) SeriesFor(line string) []MonthlyRow {
	var out []MonthlyRow
	for _, r := range t.Rows {
		if r.Line == line {
			out = append(out, r)
		}
	}
	return out
}

// TerritoryRow is the summed quantity of one product line in one territory.
type TerritoryRow struct {
	Territory string
	Line      string
	Quantity  float64
}

// TerritoryTable lists per-territory quantities for the ComparisonLines set,
// territories in first-encounter order.
type TerritoryTable struct {
	Rows []TerritoryRow
}

// TerritoryQuantity sums quantity_ordered per (territory, product line) for
// the ComparisonLines set. Rows with a missing territory or quantity are
// excluded.
func TerritoryQuantity(f *frame.Frame) *TerritoryTable {
	if !f.Has(schema.ColTerritory) || !f.Has(schema.ColProductLine) || !f.Has(schema.ColQuantity) {
		return &TerritoryTable{}
	}
	allowed := allowSet(ComparisonLines)
	lineRank := rankOf(ComparisonLines)

	terr := f.Col(schema.ColTerritory)
	lines := f.Col(schema.ColProductLine)
	qty := f.Col(schema.ColQuantity)

	type key struct{ territory, line string }
	totals := map[key]float64{}
	terrOrder := []string{}
	terrSeen := map[string]int{}
	for i := range terr {
		line, ok := lines[i].(string)
		if !ok {
			continue
		}
		if _, want := allowed[line]; !want {
			continue
		}
		tr, ok := terr[i].(string)
		if !ok {
			continue
		}
		q, ok := qty[i].(float64)
		if !ok {
			continue
		}
		if _, seen := terrSeen[tr]; !seen {
			terrSeen[tr] = len(terrOrder)
			terrOrder = append(terrOrder, tr)
		}
		totals[key{territory: tr, line: line}] += q
	}

	t := &TerritoryTable{Rows: make([]TerritoryRow, 0, len(totals))}
	for k, v := range totals {
		t.Rows = append(t.Rows, TerritoryRow{Territory: k.territory, Line: k.line, Quantity: v})
	}
	sort.Slice(t.Rows, func(i, j int) bool {
		if t.Rows[i].Territory != t.Rows[j].Territory {
			return terrSeen[t.Rows[i].Territory] < terrSeen[t.Rows[j].Territory]
		}
		return lineRank[t.Rows[i].Line] < lineRank[t.Rows[j].Line]
	})
	return t
}

// Territories returns the distinct territories in table order.
func (t *TerritoryTable) Territories() []string {
	var out []string
	seen := map[string]bool{}
	for _, r := range t.Rows {
		if !seen[r.Territory] {
			seen[r.Territory] = true
			out = append(out, r.Territory)
		}
	}
	return out
}

// QuantityOf returns the summed quantity for (territory, line), zero when
// the pair never occurred.
func (t *TerritoryTable) QuantityOf(territory, line string) float64 {
	for _, r := range t.Rows {
		if r.Territory == territory && r.Line == line {
			return r.Quantity
		}
	}
	return 0
}

// PriceSeries collects the non-missing unit prices of one product line.
type PriceSeries struct {
	Line   string
	Prices []float64
}

// PriceDist holds the unit-price samples backing the price-distribution box
// plot, one series per ComparisonLines entry (empty series included so the
// plot axes stay stable).
type PriceDist struct {
	Series []PriceSeries
}

// HasSamples reports whether any series holds at least one price.
func (d *PriceDist) HasSamples() bool {
	for _, s := range d.Series {
		if len(s.Prices) > 0 {
			return true
		}
	}
	return false
}

// PriceDistribution collects unit_price values per ComparisonLines line,
// dropping missing prices.
func PriceDistribution(f *frame.Frame) *PriceDist {
	d := &PriceDist{Series: make([]PriceSeries, len(ComparisonLines))}
	for i, line := range ComparisonLines {
		d.Series[i].Line = line
	}
	if !f.Has(schema.ColProductLine) || !f.Has(schema.ColUnitPrice) {
		return d
	}
	rank := rankOf(ComparisonLines)
	lines := f.Col(schema.ColProductLine)
	price := f.Col(schema.ColUnitPrice)
	for i := range lines {
		line, ok := lines[i].(string)
		if !ok {
			continue
		}
		idx, want := rank[line]
		if !want {
			continue
		}
		if p, ok := price[i].(float64); ok {
			d.Series[idx].Prices = append(d.Series[idx].Prices, p)
		}
	}
	return d
}

func allowSet(lines []string) map[string]struct{} {
	m := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		m[l] = struct{}{}
	}
	return m
}

func rankOf(lines []string) map[string]int {
	m := make(map[string]int, len(lines))
	for i, l := range lines {
		m[l] = i
	}
	return m
}
