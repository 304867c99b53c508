// Package timeseries handles EGMS displacement time series: parsing the
// YYYYMMDD date axis, inferring the acquisition interval, and reindexing
// irregular series onto a uniform grid.
package timeseries

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"time"
)

// DateFormat is the layout of EGMS acquisition date columns.
const DateFormat = "20060102"

// ErrInsufficientData is returned when a series carries too few
// acquisition dates to infer a sample rate.
var ErrInsufficientData = errors.New("timeseries: need at least 2 acquisition dates")

var dateColPattern = regexp.MustCompile(`^\d{8}$`)

// Series is an ordered displacement time series in millimetres.
// A NaN value marks a date with no acquisition; missing dates are kept
// rather than dropped so downstream consumers see the gaps.
type Series struct {
	Dates  []time.Time
	Values []float64
}

// Len returns the number of samples in the series.
func (s Series) Len() int { return len(s.Dates) }

// ParseDate parses a YYYYMMDD acquisition date.
func ParseDate(col string) (time.Time, error) {
	if !dateColPattern.MatchString(col) {
		return time.Time{}, fmt.Errorf("timeseries: %q is not a YYYYMMDD date column", col)
	}
	t, err := time.Parse(DateFormat, col)
	if err != nil {
		return time.Time{}, fmt.Errorf("timeseries: parse date column %q: %w", col, err)
	}
	return t, nil
}

// DateColumns filters cols down to the 8-digit acquisition date columns,
// sorted ascending. Non-date columns (pid, filename, ...) are skipped.
func DateColumns(cols []string) []string {
	var dates []string
	for _, c := range cols {
		if dateColPattern.MatchString(c) {
			dates = append(dates, c)
		}
	}
	sort.Strings(dates)
	return dates
}

// InferSampleRate returns the dominant acquisition interval in days: the
// most frequent day-gap between consecutive dates, ties broken by the gap
// encountered first. Duplicate dates (zero gaps) are ignored.
func InferSampleRate(dates []time.Time) (int, error) {
	if len(dates) < 2 {
		return 0, ErrInsufficientData
	}
	counts := make(map[int]int)
	var order []int
	for i := 1; i < len(dates); i++ {
		gap := int(dates[i].Sub(dates[i-1]).Hours() / 24)
		if gap == 0 {
			continue
		}
		if _, seen := counts[gap]; !seen {
			order = append(order, gap)
		}
		counts[gap]++
	}
	if len(order) == 0 {
		return 0, ErrInsufficientData
	}
	best, bestCount := 0, 0
	for _, gap := range order {
		if counts[gap] > bestCount {
			best, bestCount = gap, counts[gap]
		}
	}
	return best, nil
}

// Resample reindexes the series onto a uniform grid stepping by the
// inferred sample rate from the first date to the last grid point that
// does not pass the final date. Grid dates absent from the series become
// NaN; series dates off the grid are dropped.
func (s Series) Resample() (Series, error) {
	rate, err := InferSampleRate(s.Dates)
	if err != nil {
		return Series{}, err
	}

	byDate := make(map[time.Time]float64, len(s.Dates))
	for i, d := range s.Dates {
		byDate[d] = s.Values[i]
	}

	first := s.Dates[0]
	last := s.Dates[len(s.Dates)-1]
	span := int(last.Sub(first).Hours() / 24)
	steps := span / rate

	out := Series{
		Dates:  make([]time.Time, 0, steps+1),
		Values: make([]float64, 0, steps+1),
	}
	for i := 0; i <= steps; i++ {
		d := first.AddDate(0, 0, i*rate)
		v, ok := byDate[d]
		if !ok {
			v = math.NaN()
		}
		out.Dates = append(out.Dates, d)
		out.Values = append(out.Values, v)
	}
	return out, nil
}

// Interpolate returns a copy of the series with NaN gaps filled by linear
// interpolation between the surrounding acquisitions. Leading and trailing
// gaps are held at the nearest observed value. Fitting routines cannot
// consume NaN, so run this after Resample and before dispatching.
func (s Series) Interpolate() Series {
	out := Series{
		Dates:  append([]time.Time(nil), s.Dates...),
		Values: append([]float64(nil), s.Values...),
	}
	n := len(out.Values)

	prev := -1
	for i := 0; i < n; i++ {
		if math.IsNaN(out.Values[i]) {
			continue
		}
		if prev == -1 {
			// Hold leading gap at the first observation.
			for j := 0; j < i; j++ {
				out.Values[j] = out.Values[i]
			}
		} else if i-prev > 1 {
			step := (out.Values[i] - out.Values[prev]) / float64(i-prev)
			for j := prev + 1; j < i; j++ {
				out.Values[j] = out.Values[prev] + step*float64(j-prev)
			}
		}
		prev = i
	}
	if prev >= 0 {
		for j := prev + 1; j < n; j++ {
			out.Values[j] = out.Values[prev]
		}
	}
	return out
}
