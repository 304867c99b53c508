// Package charts renders server-side views of a decomposition result: an
// interactive go-echarts HTML page for the browser and a gonum/plot PNG
// for report downloads.
package charts

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/geohaz-data/ada.viewer/internal/timeseries"
	"github.com/geohaz-data/ada.viewer/internal/trend"
)

const dateDisplayFormat = "2006-01-02"

// RenderDecomposition writes an HTML line chart overlaying the raw
// displacement series with its fitted trend and seasonal components.
func RenderDecomposition(w io.Writer, pid string, series timeseries.Series, res *trend.Result) error {
	dates := make([]string, series.Len())
	raw := make([]opts.LineData, series.Len())
	for i, d := range series.Dates {
		dates[i] = d.Format(dateDisplayFormat)
		if math.IsNaN(series.Values[i]) {
			raw[i] = opts.LineData{Value: nil}
		} else {
			raw[i] = opts.LineData{Value: series.Values[i]}
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Trend fitting", Width: "1200px", Height: "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Time series decomposition",
			Subtitle: fmt.Sprintf("PID %s, trend %s, RMSE %.3f", pid, res.InitTrend, res.RMSE),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Displacement (mm)"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
	)

	line.SetXAxis(dates).
		AddSeries("Raw data", raw).
		AddSeries("Trend", lineData(res.TrendVals)).
		AddSeries("Seasonality", lineData(res.Filtered))

	if err := line.Render(w); err != nil {
		return fmt.Errorf("charts: render decomposition: %w", err)
	}
	return nil
}

// RenderPSD writes an HTML chart of the power spectral density with the
// significance threshold overlaid, so the detected seasonal peaks are
// readable against the search band.
func RenderPSD(w io.Writer, pid string, res *trend.Result) error {
	freqs := make([]string, len(res.Freq))
	thr := make([]opts.LineData, len(res.Freq))
	for i, f := range res.Freq {
		freqs[i] = fmt.Sprintf("%.3f", f)
		thr[i] = opts.LineData{Value: res.PSDThreshold}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Seasonality PSD", Width: "1200px", Height: "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Power spectral density",
			Subtitle: fmt.Sprintf("PID %s, season band [%.2f, %.2f] cycles/yr, threshold %.1f",
				pid, res.MinSeasonFreq, res.MaxSeasonFreq, res.PSDThreshold),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Power"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Frequency (cycles/yr)"}),
	)

	line.SetXAxis(freqs).
		AddSeries("PSD", lineData(res.PSD)).
		AddSeries("Threshold", thr)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("charts: render PSD: %w", err)
	}
	return nil
}

func lineData(vals []float64) []opts.LineData {
	out := make([]opts.LineData, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) {
			out[i] = opts.LineData{Value: nil}
		} else {
			out[i] = opts.LineData{Value: v}
		}
	}
	return out
}
