// Package report orchestrates a full run: load the raw dataset, snapshot it,
// profile missing values, clean, aggregate, and fan the results out to CSV,
// xlsx, charts, and an optional database sink. Every stage reports progress
// through the injected run log.
package report

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"salesreport/internal/aggregate"
	"salesreport/internal/clean"
	"salesreport/internal/config"
	"salesreport/internal/datasource"
	"salesreport/internal/datasource/file"
	"salesreport/internal/frame"
	"salesreport/internal/parser/csv"
	"salesreport/internal/profile"
	"salesreport/internal/runlog"
	"salesreport/internal/schema"
	"salesreport/internal/sink"
	"salesreport/internal/storage"
)

// nullReportTop caps how many per-column missing counts go into the run log;
// the full ranking always lands in null_counts.csv.
const nullReportTop = 10

// ChartRenderer is the subset of the chart package the orchestrator needs;
// tests substitute a stub so runs stay image-free.
type ChartRenderer interface {
	TopBar(top *aggregate.TopTable, lines map[string]string, title, yLabel, name string) (string, error)
	ABCBars(t *aggregate.ABCTable, name string) (string, error)
	DailyComparative(d *aggregate.DailyTable, codes []string, lines map[string]string, name string) (string, error)
	DailySingle(d *aggregate.DailyTable, code string, lines map[string]string, name string) (string, error)
	MonthlyBars(m *aggregate.MonthlyTable, line, name string) (string, error)
	TerritoryBars(t *aggregate.TerritoryTable, name string) (string, error)
	PriceBox(d *aggregate.PriceDist, name string) (string, error)
}

// Runner executes report runs for one configuration.
type Runner struct {
	Cfg    config.Run
	Log    *runlog.Logger
	Charts ChartRenderer

	// OpenStorage is a test hook; nil means storage.New.
	OpenStorage func(ctx context.Context, cfg storage.Config) (storage.Repository, error)
}

// Run executes the whole pipeline. Fatal conditions (unreadable input,
// missing product_code, unwritable artifacts) surface as errors; optional
// analyses that cannot run are logged and skipped instead.
func (r *Runner) Run(ctx context.Context) error {
	cfg := r.Cfg
	r.Log.Printf("Sales report run started: %s", cfg.Source.Path)

	raw, err := r.load(ctx)
	if err != nil {
		r.Log.Printf("Input could not be read: %v", err)
		return err
	}

	if err := sink.WriteXLSX(raw, r.outPath("sales_raw.xlsx")); err != nil {
		return fmt.Errorf("raw snapshot: %w", err)
	}
	r.Log.Printf("Raw snapshot written: %s", r.outPath("sales_raw.xlsx"))

	r.nullReport(raw)

	cleaner := clean.Cleaner{Log: r.Log}
	cleaned, err := cleaner.Clean(raw)
	if err != nil {
		return fmt.Errorf("clean: %w", err)
	}
	r.Log.Printf("Clean dataset: %d rows, %d columns", cleaned.NumRows(), cleaned.NumCols())

	caps := schema.CapabilitiesOf(cleaned)
	res := r.aggregates(cleaned, caps)

	if err := r.writeTables(cleaned, res); err != nil {
		return err
	}
	if cfg.Report.ChartsEnabled() && r.Charts != nil {
		if err := r.renderCharts(res); err != nil {
			return err
		}
	}
	if cfg.Storage.Enabled {
		if err := r.loadStorage(ctx, cleaned); err != nil {
			return err
		}
	}

	r.Log.Printf("Run finished")
	return nil
}

// load opens and parses the configured source.
func (r *Runner) load(ctx context.Context) (*frame.Frame, error) {
	var src datasource.Source = file.NewLocal(r.Cfg.Source.Path)
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var comma rune
	if r.Cfg.Source.Delimiter != "" {
		comma = []rune(r.Cfg.Source.Delimiter)[0]
	}
	p := csv.NewParser(csv.Options{
		HasHeader: true,
		Comma:     comma,
		Encoding:  r.Cfg.Source.Encoding,
		HeaderMap: schema.DefaultHeaderMap(),
	})
	f, skipped, err := p.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.Cfg.Source.Path, err)
	}
	r.Log.Printf("Loaded %d rows, %d columns (%d malformed rows skipped)",
		f.NumRows(), f.NumCols(), skipped)
	return f, nil
}

// nullReport logs the worst columns and writes the full ranking to CSV.
func (r *Runner) nullReport(raw *frame.Frame) {
	counts := profile.MissingByColumn(raw)
	r.Log.Printf("Missing values by column (top %d):", nullReportTop)
	for _, c := range counts.Top(nullReportTop) {
		r.Log.Printf("  %s: %d", c.Column, c.Missing)
	}
	path := r.outPath("null_counts.csv")
	if err := sink.WriteCSV(counts.Frame(), path); err != nil {
		r.Log.Printf("Null report could not be written: %v", err)
		return
	}
	r.Log.Printf("Null report written: %s", path)
}

// aggregates computes every analysis the cleaned dataset supports. Analyses
// whose preconditions fail stay nil and log a reason.
func (r *Runner) aggregates(cleaned *frame.Frame, caps schema.Capabilities) *aggregate.Result {
	res := &aggregate.Result{Lines: aggregate.LineByCode(cleaned)}
	topN := r.Cfg.Report.TopN

	if caps.HasQuantity {
		res.TopQuantity = aggregate.TopN(cleaned, schema.ColQuantity, topN)
		r.logRanking("Top products by units sold", res.TopQuantity, res.Lines, "%.0f units")
	} else {
		r.Log.Printf("Skipping units ranking: no %s column", schema.ColQuantity)
	}

	if caps.HasSales {
		res.TopSales = aggregate.TopN(cleaned, schema.ColSales, topN)
		r.logRanking("Top products by sales", res.TopSales, res.Lines, "$%.2f")

		abc, err := aggregate.Classify(cleaned)
		if err != nil {
			r.Log.Printf("Skipping ABC classification: %v", err)
		} else {
			res.ABC = abc
			r.Log.Printf("ABC classification: %d A, %d B, %d C products",
				abc.Count("A"), abc.Count("B"), abc.Count("C"))
		}
	} else {
		r.Log.Printf("Skipping sales ranking and ABC classification: no %s column", schema.ColSales)
	}

	daily, reason := aggregate.DailyTop4(cleaned, res.TopSales, res.Lines)
	if reason != "" {
		r.Log.Printf("Skipping daily breakdown: %s", reason)
	} else {
		res.Daily = daily
	}

	if caps.HasOrderDate && caps.HasQuantity && caps.HasProductLine {
		res.Monthly = aggregate.MonthlyQuantity(cleaned)
	} else {
		r.Log.Printf("Skipping monthly breakdown: needs %s, %s and %s",
			schema.ColOrderDate, schema.ColQuantity, schema.ColProductLine)
	}

	if caps.HasTerritory && caps.HasQuantity && caps.HasProductLine {
		res.Territory = aggregate.TerritoryQuantity(cleaned)
	} else {
		r.Log.Printf("Skipping territory breakdown: needs %s, %s and %s",
			schema.ColTerritory, schema.ColQuantity, schema.ColProductLine)
	}

	if caps.HasUnitPrice && caps.HasProductLine {
		res.Prices = aggregate.PriceDistribution(cleaned)
	} else {
		r.Log.Printf("Skipping price distribution: needs %s and %s",
			schema.ColUnitPrice, schema.ColProductLine)
	}

	return res
}

func (r *Runner) logRanking(title string, top *aggregate.TopTable, lines map[string]string, valueFormat string) {
	r.Log.Printf("%s:", title)
	for i, e := range top.Entries {
		label := e.Code
		if l := lines[e.Code]; l != "" {
			label = fmt.Sprintf("%s (%s)", e.Code, l)
		}
		r.Log.Printf("  %d. %s: "+valueFormat, i+1, label, e.Total)
	}
}

// writeTables persists the cleaned dataset and the tabular aggregates.
func (r *Runner) writeTables(cleaned *frame.Frame, res *aggregate.Result) error {
	type tableWrite struct {
		f    *frame.Frame
		name string
	}
	writes := []tableWrite{{cleaned, "sales_clean.csv"}}
	if res.ABC != nil {
		writes = append(writes, tableWrite{res.ABC.Frame(), "abc_classification.csv"})
	}
	if res.Daily != nil {
		writes = append(writes, tableWrite{res.Daily.Frame(), "daily_top4.csv"})
	}

	for _, w := range writes {
		path := r.outPath(w.name)
		if err := sink.WriteCSV(w.f, path); err != nil {
			return fmt.Errorf("write %s: %w", w.name, err)
		}
		r.Log.Printf("Table written: %s", path)
	}

	path := r.outPath("sales_clean.xlsx")
	if err := sink.WriteXLSX(cleaned, path); err != nil {
		return fmt.Errorf("write sales_clean.xlsx: %w", err)
	}
	r.Log.Printf("Table written: %s", path)
	return nil
}

// renderCharts draws every renderable aggregate, logging each image.
func (r *Runner) renderCharts(res *aggregate.Result) error {
	note := func(path string, err error) error {
		if err != nil {
			return fmt.Errorf("chart: %w", err)
		}
		r.Log.Printf("Chart written: %s", path)
		return nil
	}

	if res.TopQuantity != nil {
		path, err := r.Charts.TopBar(res.TopQuantity, res.Lines,
			"Top products (units sold)", "Units sold", "top_quantity.png")
		if err := note(path, err); err != nil {
			return err
		}
	}
	if res.TopSales != nil {
		path, err := r.Charts.TopBar(res.TopSales, res.Lines,
			"Top products ($)", "Sales ($)", "top_sales.png")
		if err := note(path, err); err != nil {
			return err
		}
	}
	if res.ABC != nil {
		path, err := r.Charts.ABCBars(res.ABC, "abc_classification.png")
		if err := note(path, err); err != nil {
			return err
		}
	}
	if res.Daily != nil && res.TopSales != nil {
		codes := res.TopSales.Codes()
		if len(codes) > 4 {
			codes = codes[:4]
		}
		path, err := r.Charts.DailyComparative(res.Daily, codes, res.Lines, "daily_top4.png")
		if err := note(path, err); err != nil {
			return err
		}
		for _, code := range codes {
			name := "daily_" + slug(code) + ".png"
			path, err := r.Charts.DailySingle(res.Daily, code, res.Lines, name)
			if err := note(path, err); err != nil {
				return err
			}
		}
	}
	if res.Monthly != nil {
		for _, line := range aggregate.MonthLines {
			if len(res.Monthly.SeriesFor(line)) == 0 {
				continue
			}
			name := "monthly_" + slug(line) + ".png"
			path, err := r.Charts.MonthlyBars(res.Monthly, line, name)
			if err := note(path, err); err != nil {
				return err
			}
		}
	}
	if res.Territory != nil {
		if len(res.Territory.Rows) == 0 {
			r.Log.Printf("Skipping territory chart: no rows in the comparison product lines")
		} else {
			path, err := r.Charts.TerritoryBars(res.Territory, "territory_quantity.png")
			if err := note(path, err); err != nil {
				return err
			}
		}
	}
	if res.Prices != nil {
		if !res.Prices.HasSamples() {
			r.Log.Printf("Skipping price distribution chart: no prices in the comparison product lines")
		} else {
			path, err := r.Charts.PriceBox(res.Prices, "price_distribution.png")
			if err := note(path, err); err != nil {
				return err
			}
		}
	}
	return nil
}

// loadStorage mirrors the cleaned dataset into the configured database.
func (r *Runner) loadStorage(ctx context.Context, cleaned *frame.Frame) error {
	open := r.OpenStorage
	if open == nil {
		open = storage.New
	}
	repo, err := open(ctx, storage.Config{
		Kind:  r.Cfg.Storage.Kind,
		DSN:   r.Cfg.Storage.DB.DSN,
		Table: r.Cfg.Storage.DB.Table,
	})
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer repo.Close()

	if err := repo.EnsureTable(ctx, cleaned.Columns()); err != nil {
		return fmt.Errorf("ensure table: %w", err)
	}
	n, err := storage.LoadFrame(ctx, repo, cleaned)
	if err != nil {
		return fmt.Errorf("load storage: %w", err)
	}
	r.Log.Printf("Database load: %d rows into %s (%s)",
		n, r.Cfg.Storage.DB.Table, r.Cfg.Storage.Kind)
	return nil
}

func (r *Runner) outPath(name string) string {
	return filepath.Join(r.Cfg.Report.OutDir, name)
}

// slug lowercases a label for use in a file name.
func slug(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(c rune) rune {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			return c
		default:
			return '_'
		}
	}, s)
}
