// Package aggregate derives the summary tables of a run from the cleaned
// frame: top-N rankings, ABC classification, the daily top-4 breakdown, and
// the chart-only monthly/territory/price groupings. Every function is a pure
// single pass over its input; optional analyses report a skip reason instead
// of erroring when their preconditions fail.
package aggregate

import (
	"sort"

	"salesreport/internal/frame"
	"salesreport/internal/schema"
)

// TopEntry is one ranked product with its summed metric.
type TopEntry struct {
	Code  string
	Total float64
}

// TopTable ranks products by a summed metric, largest first. Ties keep the
// order in which the product codes first appeared in the cleaned dataset.
type TopTable struct {
	Metric  string
	Entries []TopEntry
}

// TopN groups rows by product_code, sums metricCol within each group and
// returns the n largest groups. Missing metric values contribute zero, so a
// product whose values are all missing still ranks (with total 0). When
// metricCol is absent the table is empty; callers check before using it.
func TopN(f *frame.Frame, metricCol string, n int) *TopTable {
	t := &TopTable{Metric: metricCol}
	if !f.Has(metricCol) || !f.Has(schema.ColProductCode) {
		return t
	}

	codes := f.Col(schema.ColProductCode)
	metric := f.Col(metricCol)
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
		if v, ok := metric[i].(float64); ok {
			totals[code] += v
		} else {
			totals[code] += 0 // missing counts as zero contribution
		}
	}

	entries := make([]TopEntry, 0, len(order))
	for _, code := range order {
		entries = append(entries, TopEntry{Code: code, Total: totals[code]})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Total > entries[j].Total })
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	t.Entries = entries
	return t
}

// Codes returns the ranked product codes.
func (t *TopTable) Codes() []string {
	out := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		out[i] = e.Code
	}
	return out
}

// Sum returns the total of all ranked entries.
func (t *TopTable) Sum() float64 {
	s := 0.0
	for _, e := range t.Entries {
		s += e.Total
	}
	return s
}

// Frame renders the ranking as a table for persistence.
func (t *TopTable) Frame() *frame.Frame {
	f, _ := frame.New(schema.ColProductCode, t.Metric)
	for _, e := range t.Entries {
		_ = f.AppendRow([]any{e.Code, e.Total})
	}
	return f
}
