package chart

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"salesreport/internal/aggregate"
)

func requirePNG(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
	require.Equal(t, ".png", filepath.Ext(path))
}

func TestTopBarWritesFile(t *testing.T) {
	r := New(t.TempDir())
	top := &aggregate.TopTable{
		Metric: "sales_amount",
		Entries: []aggregate.TopEntry{
			{Code: "S18_1", Total: 500},
			{Code: "S24_2", Total: 300},
		},
	}
	lines := map[string]string{"S18_1": "Vintage Cars"}

	out, err := r.TopBar(top, lines, "Top products ($)", "Sales ($)", "top_sales.png")
	require.NoError(t, err)
	requirePNG(t, out)
}

func TestABCBarsWritesFile(t *testing.T) {
	r := New(t.TempDir())
	abc := &aggregate.ABCTable{Rows: []aggregate.ABCRow{
		{Code: "S18_1", Total: 500, Percent: 62.5, Cumulative: 62.5, Category: "A"},
		{Code: "S24_2", Total: 200, Percent: 25, Cumulative: 87.5, Category: "B"},
		{Code: "S10_3", Total: 100, Percent: 12.5, Cumulative: 100, Category: "C"},
	}}

	out, err := r.ABCBars(abc, "abc.png")
	require.NoError(t, err)
	requirePNG(t, out)
}

func TestDailyChartsWriteFiles(t *testing.T) {
	r := New(t.TempDir())
	d1 := time.Date(2003, 1, 2, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2003, 1, 3, 0, 0, 0, 0, time.UTC)
	daily := &aggregate.DailyTable{Rows: []aggregate.DailyRow{
		{Date: d1, Code: "S18_1", Sales: 100},
		{Date: d2, Code: "S18_1", Sales: 150},
		{Date: d1, Code: "S24_2", Sales: 80},
	}}
	lines := map[string]string{"S18_1": "Vintage Cars", "S24_2": "Classic Cars"}

	out, err := r.DailyComparative(daily, []string{"S18_1", "S24_2"}, lines, "daily_top.png")
	require.NoError(t, err)
	requirePNG(t, out)

	out, err = r.DailySingle(daily, "S18_1", lines, "daily_s18_1.png")
	require.NoError(t, err)
	requirePNG(t, out)
}

func TestGroupedChartsWriteFiles(t *testing.T) {
	r := New(t.TempDir())

	monthly := &aggregate.MonthlyTable{Rows: []aggregate.MonthlyRow{
		{Month: time.January, Line: "Vintage Cars", Quantity: 40},
		{Month: time.February, Line: "Vintage Cars", Quantity: 55},
	}}
	out, err := r.MonthlyBars(monthly, "Vintage Cars", "monthly_vintage.png")
	require.NoError(t, err)
	requirePNG(t, out)

	terr := &aggregate.TerritoryTable{Rows: []aggregate.TerritoryRow{
		{Territory: "EMEA", Line: "Vintage Cars", Quantity: 120},
		{Territory: "EMEA", Line: "Classic Cars", Quantity: 90},
		{Territory: "APAC", Line: "Vintage Cars", Quantity: 30},
	}}
	out, err = r.TerritoryBars(terr, "territory.png")
	require.NoError(t, err)
	requirePNG(t, out)

	prices := &aggregate.PriceDist{Series: []aggregate.PriceSeries{
		{Line: "Vintage Cars", Prices: []float64{10, 20, 30, 40}},
		{Line: "Classic Cars", Prices: []float64{15, 25, 35}},
	}}
	out, err = r.PriceBox(prices, "prices.png")
	require.NoError(t, err)
	requirePNG(t, out)
}

func TestPriceBoxSkipsEmptySeries(t *testing.T) {
	r := New(t.TempDir())

	prices := &aggregate.PriceDist{Series: []aggregate.PriceSeries{
		{Line: "Vintage Cars"},
		{Line: "Classic Cars", Prices: []float64{15, 25, 35}},
	}}
	out, err := r.PriceBox(prices, "prices.png")
	require.NoError(t, err)
	requirePNG(t, out)
}
