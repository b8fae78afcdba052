// Package chart renders aggregate tables into PNG images with gonum/plot.
// Rendering failures are not recoverable and propagate to the orchestrator
// as fatal errors.
package chart

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"salesreport/internal/aggregate"
)

// Renderer writes chart images into a base directory.
type Renderer struct {
	Dir string
}

// New returns a Renderer writing into dir, creating it on first use.
func New(dir string) *Renderer { return &Renderer{Dir: dir} }

func (r *Renderer) path(name string) (string, error) {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", r.Dir, err)
	}
	return filepath.Join(r.Dir, name), nil
}

// barLabel renders "CODE – Line" tick labels, falling back to the bare code
// when no line is known.
func barLabel(code string, lines map[string]string) string {
	if l := lines[code]; l != "" {
		return fmt.Sprintf("%s – %s", code, l)
	}
	return code
}

// TopBar renders a ranked product bar chart and returns the written path.
func (r *Renderer) TopBar(top *aggregate.TopTable, lines map[string]string, title, yLabel, name string) (string, error) {
	out, err := r.path(name)
	if err != nil {
		return "", err
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel
	p.X.Tick.Label.Rotation = -0.6
	p.X.Tick.Label.XAlign = -1

	vals := make(plotter.Values, len(top.Entries))
	labels := make([]string, len(top.Entries))
	for i, e := range top.Entries {
		vals[i] = e.Total
		labels[i] = barLabel(e.Code, lines)
	}
	bars, err := plotter.NewBarChart(vals, vg.Points(18))
	if err != nil {
		return "", fmt.Errorf("top bar chart: %w", err)
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(labels...)

	if err := p.Save(10*vg.Inch, 6*vg.Inch, out); err != nil {
		return "", fmt.Errorf("save %s: %w", out, err)
	}
	return out, nil
}

// ABCBars renders the classification as ranked bars, one color per
// category. Each category contributes a full-width value series with zeros
// outside its own rows, so the three overlaid charts keep the ranking
// positions aligned.
func (r *Renderer) ABCBars(t *aggregate.ABCTable, name string) (string, error) {
	out, err := r.path(name)
	if err != nil {
		return "", err
	}

	p := plot.New()
	p.Title.Text = "ABC classification by sales"
	p.Y.Label.Text = "Sales ($)"
	p.X.Tick.Label.Rotation = -0.6
	p.X.Tick.Label.XAlign = -1
	p.Legend.Top = true

	labels := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		labels[i] = row.Code
	}
	for i, cat := range []string{aggregate.CategoryA, aggregate.CategoryB, aggregate.CategoryC} {
		vals := make(plotter.Values, len(t.Rows))
		for j, row := range t.Rows {
			if row.Category == cat {
				vals[j] = row.Total
			}
		}
		bars, err := plotter.NewBarChart(vals, vg.Points(14))
		if err != nil {
			return "", fmt.Errorf("abc bar chart: %w", err)
		}
		bars.Color = plotutil.Color(i)
		p.Add(bars)
		p.Legend.Add(cat, bars)
	}
	p.NominalX(labels...)

	if err := p.Save(12*vg.Inch, 6*vg.Inch, out); err != nil {
		return "", fmt.Errorf("save %s: %w", out, err)
	}
	return out, nil
}

// DailyComparative renders one line per top product over calendar time.
func (r *Renderer) DailyComparative(d *aggregate.DailyTable, codes []string, lines map[string]string, name string) (string, error) {
	out, err := r.path(name)
	if err != nil {
		return "", err
	}

	p := plot.New()
	p.Title.Text = "Daily sales – top 4 products ($)"
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Sales ($)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.X.Tick.Label.Rotation = -0.6
	p.Legend.Top = true

	for i, code := range codes {
		series := d.Series(code)
		xys := make(plotter.XYs, len(series))
		for j, row := range series {
			xys[j].X = float64(row.Date.Unix())
			xys[j].Y = row.Sales
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return "", fmt.Errorf("daily series %s: %w", code, err)
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		p.Add(line, points)
		p.Legend.Add(barLabel(code, lines), line, points)
	}

	if err := p.Save(12*vg.Inch, 6*vg.Inch, out); err != nil {
		return "", fmt.Errorf("save %s: %w", out, err)
	}
	return out, nil
}

// DailySingle renders the daily sales of one product.
func (r *Renderer) DailySingle(d *aggregate.DailyTable, code string, lines map[string]string, name string) (string, error) {
	out, err := r.path(name)
	if err != nil {
		return "", err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Daily sales – %s", barLabel(code, lines))
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Sales ($)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.X.Tick.Label.Rotation = -0.6

	series := d.Series(code)
	xys := make(plotter.XYs, len(series))
	for j, row := range series {
		xys[j].X = float64(row.Date.Unix())
		xys[j].Y = row.Sales
	}
	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return "", fmt.Errorf("daily series %s: %w", code, err)
	}
	line.Color = plotutil.Color(0)
	points.Color = plotutil.Color(0)
	p.Add(line, points)

	if err := p.Save(10*vg.Inch, 5*vg.Inch, out); err != nil {
		return "", fmt.Errorf("save %s: %w", out, err)
	}
	return out, nil
}

// MonthlyBars renders the month-by-month quantities of one product line.
func (r *Renderer) MonthlyBars(m *aggregate.MonthlyTable, line, name string) (string, error) {
	out, err := r.path(name)
	if err != nil {
		return "", err
	}

	series := m.SeriesFor(line)
	vals := make(plotter.Values, len(series))
	labels := make([]string, len(series))
	for i, row := range series {
		vals[i] = row.Quantity
		labels[i] = row.Month.String()
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Units sold per month – %s", line)
	p.X.Label.Text = "Month"
	p.Y.Label.Text = "Units sold"
	p.X.Tick.Label.Rotation = -0.6
	p.X.Tick.Label.XAlign = -1

	bars, err := plotter.NewBarChart(vals, vg.Points(20))
	if err != nil {
		return "", fmt.Errorf("monthly bar chart: %w", err)
	}
	bars.Color = plotutil.Color(2)
	p.Add(bars)
	p.NominalX(labels...)

	if err := p.Save(10*vg.Inch, 6*vg.Inch, out); err != nil {
		return "", fmt.Errorf("save %s: %w", out, err)
	}
	return out, nil
}

// TerritoryBars renders grouped bars: one group per territory, one bar per
// comparison product line.
func (r *Renderer) TerritoryBars(t *aggregate.TerritoryTable, name string) (string, error) {
	out, err := r.path(name)
	if err != nil {
		return "", err
	}

	territories := t.Territories()
	p := plot.New()
	p.Title.Text = "Total units sold per territory"
	p.X.Label.Text = "Territory"
	p.Y.Label.Text = "Units sold"
	p.Legend.Top = true

	w := vg.Points(16)
	for i, line := range aggregate.ComparisonLines {
		vals := make(plotter.Values, len(territories))
		for j, terr := range territories {
			vals[j] = t.QuantityOf(terr, line)
		}
		bars, err := plotter.NewBarChart(vals, w)
		if err != nil {
			return "", fmt.Errorf("territory bar chart: %w", err)
		}
		bars.Color = plotutil.Color(i)
		bars.Offset = w * vg.Length(i) // side-by-side groups
		p.Add(bars)
		p.Legend.Add(line, bars)
	}
	p.NominalX(territories...)

	if err := p.Save(12*vg.Inch, 7*vg.Inch, out); err != nil {
		return "", fmt.Errorf("save %s: %w", out, err)
	}
	return out, nil
}

// PriceBox renders the unit-price distribution per comparison line as box
// plots.
func (r *Renderer) PriceBox(d *aggregate.PriceDist, name string) (string, error) {
	out, err := r.path(name)
	if err != nil {
		return "", err
	}

	p := plot.New()
	p.Title.Text = "Unit price distribution"
	p.X.Label.Text = "Product line"
	p.Y.Label.Text = "Unit price ($)"

	labels := make([]string, len(d.Series))
	for i, s := range d.Series {
		labels[i] = s.Line
		if len(s.Prices) == 0 {
			continue
		}
		vals := make(plotter.Values, len(s.Prices))
		copy(vals, s.Prices)
		box, err := plotter.NewBoxPlot(vg.Points(40), float64(i), vals)
		if err != nil {
			return "", fmt.Errorf("box plot %s: %w", s.Line, err)
		}
		p.Add(box)
	}
	p.NominalX(labels...)

	if err := p.Save(8*vg.Inch, 6*vg.Inch, out); err != nil {
		return "", fmt.Errorf("save %s: %w", out, err)
	}
	return out, nil
}
