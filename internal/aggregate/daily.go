package aggregate

import (
	"time"

	"salesreport/internal/frame"
	"salesreport/internal/schema"
)

// dailyTopCount is how many leading products the daily breakdown follows.
const dailyTopCount = 4

// DailyRow is the summed sales of one product on one calendar date.
type DailyRow struct {
	Date  time.Time
	Code  string
	Line  string
	Sales float64
}

// DailyTable breaks the top-4 products down by day. Rows keep the order in
// which (date, product) pairs were first encountered; chart rendering
// handles per-series date ordering.
type DailyTable struct {
	Rows []DailyRow
}

// DailyTop4 groups the sales of the four best-selling products by calendar
// date. It is an optional analysis: when topSales holds fewer than four
// entries or the dataset has no order_date column, it returns a nil table
// and a human-readable skip reason instead of an error. Rows whose date
// fails to parse are discarded.
func DailyTop4(f *frame.Frame, topSales *TopTable, lines map[string]string) (*DailyTable, string) {
	if topSales == nil || len(topSales.Entries) < dailyTopCount {
		return nil, "fewer than 4 ranked products; daily top-4 analysis skipped"
	}
	if !f.Has(schema.ColOrderDate) {
		return nil, "order_date column not present; daily top-4 analysis skipped"
	}

	wanted := make(map[string]struct{}, dailyTopCount)
	for _, code := range topSales.Codes()[:dailyTopCount] {
		wanted[code] = struct{}{}
	}

	type key struct {
		date time.Time
		code string
	}
	codes := f.Col(schema.ColProductCode)
	dates := f.Col(schema.ColOrderDate)
	sales := f.Col(schema.ColSales)

	totals := make(map[key]float64, 64)
	order := make([]key, 0, 64)
	for i := range codes {
		code, ok := codes[i].(string)
		if !ok {
			continue
		}
		if _, want := wanted[code]; !want {
			continue
		}
		day, ok := parseDate(dates[i])
		if !ok {
			continue
		}
		k := key{date: day, code: code}
		if _, seen := totals[k]; !seen {
			order = append(order, k)
		}
		if v, ok := sales[i].(float64); ok {
			totals[k] += v
		}
	}

	t := &DailyTable{Rows: make([]DailyRow, 0, len(order))}
	for _, k := range order {
		t.Rows = append(t.Rows, DailyRow{
			Date:  k.date,
			Code:  k.code,
			Line:  lines[k.code],
			Sales: totals[k],
		})
	}
	return t, ""
}

// Series extracts the rows of one product, ordered by date ascending.
func (t *DailyTable) Series(code string) []DailyRow {
	var out []DailyRow
	for _, r := range t.Rows {
		if r.Code == code {
			out = append(out, r)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Date.Before(out[j-1].Date); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Frame renders the breakdown as a table for persistence.
func (t *DailyTable) Frame() *frame.Frame {
	f, _ := frame.New("date", "product", schema.ColSales, schema.ColProductLine)
	for _, r := range t.Rows {
		_ = f.AppendRow([]any{r.Date.Format("2006-01-02"), r.Code, r.Sales, r.Line})
	}
	return f
}
