package timeseries

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadPointSeries reads the displacement series for a single measurement
// point from a CSV time-series file. The file has a "pid" column and one
// column per YYYYMMDD acquisition date; one file may hold several points,
// so rows are filtered by exact pid match.
func LoadPointSeries(path, pid string) (Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return Series{}, fmt.Errorf("timeseries: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return Series{}, fmt.Errorf("timeseries: read header of %s: %w", path, err)
	}

	pidIdx := -1
	for i, col := range header {
		if col == "pid" {
			pidIdx = i
			break
		}
	}
	if pidIdx == -1 {
		return Series{}, fmt.Errorf("timeseries: %s has no pid column", path)
	}

	dateCols := DateColumns(header)
	if len(dateCols) == 0 {
		return Series{}, fmt.Errorf("timeseries: %s has no acquisition date columns", path)
	}
	colIdx := make(map[string]int, len(header))
	for i, col := range header {
		colIdx[col] = i
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Series{}, fmt.Errorf("timeseries: read %s: %w", path, err)
		}
		if row[pidIdx] != pid {
			continue
		}
		out := Series{
			Dates:  make([]time.Time, 0, len(dateCols)),
			Values: make([]float64, 0, len(dateCols)),
		}
		for _, col := range dateCols {
			d, err := ParseDate(col)
			if err != nil {
				return Series{}, err
			}
			v, err := parseDisplacement(row[colIdx[col]])
			if err != nil {
				return Series{}, fmt.Errorf("timeseries: %s pid %s column %s: %w", path, pid, col, err)
			}
			out.Dates = append(out.Dates, d)
			out.Values = append(out.Values, v)
		}
		return out, nil
	}
	return Series{}, fmt.Errorf("timeseries: pid %s not found in %s", pid, path)
}

func parseDisplacement(field string) (float64, error) {
	field = strings.TrimSpace(field)
	if field == "" || strings.EqualFold(field, "nan") {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(field, 64)
}
