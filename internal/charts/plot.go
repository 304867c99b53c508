package charts

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/geohaz-data/ada.viewer/internal/timeseries"
	"github.com/geohaz-data/ada.viewer/internal/trend"
)

// WriteDecompositionPNG renders the raw series with its fitted trend and
// seasonal overlay as a PNG, for downloads and reports where the
// interactive HTML chart is not usable.
func WriteDecompositionPNG(w io.Writer, pid string, series timeseries.Series, res *trend.Result) error {
	if series.Len() == 0 {
		return fmt.Errorf("charts: empty series for %s", pid)
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Decomposition - %s (%s)", pid, res.InitTrend)
	p.X.Label.Text = "Days since first acquisition"
	p.Y.Label.Text = "Displacement (mm)"

	origin := series.Dates[0]
	days := func(i int) float64 {
		return series.Dates[i].Sub(origin).Hours() / 24
	}

	rawPts := make(plotter.XYs, 0, series.Len())
	for i, v := range series.Values {
		// Missing slots stay out of the plot rather than drawing to zero.
		if math.IsNaN(v) {
			continue
		}
		rawPts = append(rawPts, plotter.XY{X: days(i), Y: v})
	}
	scatter, err := plotter.NewScatter(rawPts)
	if err != nil {
		return fmt.Errorf("charts: raw scatter: %w", err)
	}
	scatter.Radius = vg.Points(1.5)
	scatter.Color = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	p.Add(scatter)
	p.Legend.Add("raw", scatter)

	if err := addLine(p, "trend", res.TrendVals, series.Len(), days, color.RGBA{R: 214, G: 39, B: 40, A: 255}); err != nil {
		return err
	}
	if err := addLine(p, "seasonality", res.Filtered, series.Len(), days, color.RGBA{R: 31, G: 119, B: 180, A: 255}); err != nil {
		return err
	}

	p.Legend.Top = true
	wt, err := p.WriterTo(10*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("charts: encode png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("charts: write png: %w", err)
	}
	return nil
}

func addLine(p *plot.Plot, name string, vals []float64, n int, days func(int) float64, c color.Color) error {
	pts := make(plotter.XYs, 0, len(vals))
	for i, v := range vals {
		if i >= n || math.IsNaN(v) {
			continue
		}
		pts = append(pts, plotter.XY{X: days(i), Y: v})
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("charts: %s line: %w", name, err)
	}
	line.Width = vg.Points(1.5)
	line.Color = c
	p.Add(line)
	p.Legend.Add(name, line)
	return nil
}
