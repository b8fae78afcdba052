package report

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesreport/internal/aggregate"
	"salesreport/internal/chart"
	"salesreport/internal/config"
	"salesreport/internal/datasource/file"
	"salesreport/internal/runlog"
	"salesreport/internal/storage"
)

// sampleCSV carries four products so the daily breakdown runs, one exact
// duplicate row, one blank territory, and one corrupt quantity.
const sampleCSV = `QUANTITYORDERED,PRICEEACH,ORDERDATE,SALES,PRODUCTLINE,PRODUCTCODE,TERRITORY
2,10.0,24/2/2003 0:00,20.0,Vintage Cars,S18_1,EMEA
2,10.0,24/2/2003 0:00,20.0,Vintage Cars,S18_1,EMEA
3,20.0,25/2/2003 0:00,60.0,Classic Cars,S24_2,EMEA
1,5.5,26/2/2003 0:00,5.5,Motorcycles,S10_3,APAC
4,7.0,26/2/2003 0:00,28.0,Trucks and Buses,S32_4,
bad,7.0,27/2/2003 0:00,,Vintage Cars,S18_1,EMEA
`

type stubCharts struct {
	rendered []string
}

func (s *stubCharts) record(name string) (string, error) {
	s.rendered = append(s.rendered, name)
	return name, nil
}

func (s *stubCharts) TopBar(top *aggregate.TopTable, lines map[string]string, title, yLabel, name string) (string, error) {
	return s.record(name)
}
func (s *stubCharts) ABCBars(t *aggregate.ABCTable, name string) (string, error) {
	return s.record(name)
}
func (s *stubCharts) DailyComparative(d *aggregate.DailyTable, codes []string, lines map[string]string, name string) (string, error) {
	return s.record(name)
}
func (s *stubCharts) DailySingle(d *aggregate.DailyTable, code string, lines map[string]string, name string) (string, error) {
	return s.record(name)
}
func (s *stubCharts) MonthlyBars(m *aggregate.MonthlyTable, line, name string) (string, error) {
	return s.record(name)
}
func (s *stubCharts) TerritoryBars(t *aggregate.TerritoryTable, name string) (string, error) {
	return s.record(name)
}
func (s *stubCharts) PriceBox(d *aggregate.PriceDist, name string) (string, error) {
	return s.record(name)
}

type memRepo struct {
	columns []string
	rows    [][]any
	closed  bool
}

func (m *memRepo) EnsureTable(ctx context.Context, columns []string) error {
	m.columns = columns
	return nil
}

func (m *memRepo) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	m.rows = append(m.rows, rows...)
	return int64(len(rows)), nil
}

func (m *memRepo) Close() { m.closed = true }

func testRunner(t *testing.T, csvBody string) (*Runner, *stubCharts, string) {
	t.Helper()
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "sales.csv")
	require.NoError(t, os.WriteFile(srcPath, []byte(csvBody), 0o644))

	outDir := filepath.Join(dir, "out")
	cfg := config.Default()
	cfg.Source.Path = srcPath
	cfg.Report.OutDir = outDir
	cfg.Log.Path = filepath.Join(dir, "run.log")

	charts := &stubCharts{}
	log := runlog.New(cfg.Log.Path, io.Discard).WithClock(func() time.Time {
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	})
	return &Runner{Cfg: cfg, Log: log, Charts: charts}, charts, outDir
}

func TestRunProducesArtifacts(t *testing.T) {
	r, charts, outDir := testRunner(t, sampleCSV)
	require.NoError(t, r.Run(context.Background()))

	for _, name := range []string{
		"sales_raw.xlsx",
		"null_counts.csv",
		"sales_clean.csv",
		"sales_clean.xlsx",
		"abc_classification.csv",
		"daily_top4.csv",
	} {
		info, err := os.Stat(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}

	assert.Contains(t, charts.rendered, "top_quantity.png")
	assert.Contains(t, charts.rendered, "top_sales.png")
	assert.Contains(t, charts.rendered, "abc_classification.png")
	assert.Contains(t, charts.rendered, "daily_top4.png")
	assert.Contains(t, charts.rendered, "territory_quantity.png")
	assert.Contains(t, charts.rendered, "price_distribution.png")
	assert.Contains(t, charts.rendered, "monthly_vintage_cars.png")
}

func TestRunLogGolden(t *testing.T) {
	r, _, _ := testRunner(t, sampleCSV)
	require.NoError(t, r.Run(context.Background()))

	logBody, err := os.ReadFile(r.Cfg.Log.Path)
	require.NoError(t, err)

	// Artifact paths embed the temp dir; strip them down to base names so
	// the golden file stays stable.
	normalized := bytes.ReplaceAll(logBody, []byte(filepath.Dir(r.Cfg.Log.Path)+string(filepath.Separator)), nil)

	g := goldie.New(t)
	g.Assert(t, "run_log", normalized)
}

func TestRunMissingInputFails(t *testing.T) {
	r, _, _ := testRunner(t, sampleCSV)
	r.Cfg.Source.Path = filepath.Join(t.TempDir(), "absent.csv")

	err := r.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, file.ErrNotFound))
}

func TestRunMissingProductCodeFails(t *testing.T) {
	const noCode = "QUANTITYORDERED,SALES\n2,20.0\n"
	r, _, _ := testRunner(t, noCode)

	err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product_code")
}

func TestRunSkipsOptionalAnalyses(t *testing.T) {
	// No dates, territory, line or price: only the rankings remain.
	const minimal = "PRODUCTCODE,QUANTITYORDERED,SALES\nS18_1,2,20.0\nS24_2,3,60.0\n"
	r, charts, outDir := testRunner(t, minimal)
	require.NoError(t, r.Run(context.Background()))

	_, err := os.Stat(filepath.Join(outDir, "daily_top4.csv"))
	assert.True(t, os.IsNotExist(err))
	assert.NotContains(t, charts.rendered, "daily_top4.png")
	assert.NotContains(t, charts.rendered, "territory_quantity.png")
	assert.NotContains(t, charts.rendered, "price_distribution.png")
}

func TestRunSkipsEmptyComparisonCharts(t *testing.T) {
	// Territory, price and line columns are all present, but every product
	// line falls outside the comparison set, so the grouped charts have
	// nothing to draw. The run must finish and note the skipped charts.
	const shipsOnly = `QUANTITYORDERED,PRICEEACH,ORDERDATE,SALES,PRODUCTLINE,PRODUCTCODE,TERRITORY
2,10.0,24/2/2003 0:00,20.0,Ships,S72_1,EMEA
3,20.0,25/2/2003 0:00,60.0,Ships,S72_2,APAC
`
	r, _, outDir := testRunner(t, shipsOnly)
	chartDir := filepath.Join(outDir, "charts")
	r.Charts = chart.New(chartDir)
	require.NoError(t, r.Run(context.Background()))

	for _, name := range []string{"territory_quantity.png", "price_distribution.png"} {
		_, err := os.Stat(filepath.Join(chartDir, name))
		assert.True(t, os.IsNotExist(err), name)
	}

	logBody, err := os.ReadFile(r.Cfg.Log.Path)
	require.NoError(t, err)
	assert.Contains(t, string(logBody), "Skipping territory chart")
	assert.Contains(t, string(logBody), "Skipping price distribution chart")
}

func TestRunChartsDisabled(t *testing.T) {
	r, charts, _ := testRunner(t, sampleCSV)
	off := false
	r.Cfg.Report.Charts = &off

	require.NoError(t, r.Run(context.Background()))
	assert.Empty(t, charts.rendered)
}

func TestRunLoadsStorage(t *testing.T) {
	r, _, _ := testRunner(t, sampleCSV)
	repo := &memRepo{}
	r.Cfg.Storage = config.Storage{
		Enabled: true,
		Kind:    "sqlite",
		DB:      config.DBConfig{DSN: "sales.db", Table: "sales_clean"},
	}
	r.OpenStorage = func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		assert.Equal(t, "sqlite", cfg.Kind)
		assert.Equal(t, "sales_clean", cfg.Table)
		return repo, nil
	}

	require.NoError(t, r.Run(context.Background()))
	assert.Contains(t, repo.columns, "product_code")
	// 6 input rows minus one duplicate and one invalid quantity.
	assert.Len(t, repo.rows, 4)
	assert.True(t, repo.closed)
}
