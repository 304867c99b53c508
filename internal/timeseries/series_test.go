package timeseries

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, col string) time.Time {
	t.Helper()
	d, err := ParseDate(col)
	require.NoError(t, err)
	return d
}

func dates(t *testing.T, cols ...string) []time.Time {
	t.Helper()
	out := make([]time.Time, len(cols))
	for i, c := range cols {
		out[i] = mustDate(t, c)
	}
	return out
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("20200113")
	require.NoError(t, err)
	assert.Equal(t, 2020, d.Year())
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 13, d.Day())

	_, err = ParseDate("2020-01-13")
	assert.Error(t, err)
	_, err = ParseDate("velocity")
	assert.Error(t, err)
}

func TestDateColumns(t *testing.T) {
	cols := []string{"pid", "20200125", "mean_velocity", "20200101", "20200113"}
	got := DateColumns(cols)
	assert.Equal(t, []string{"20200101", "20200113", "20200125"}, got)
}

func TestInferSampleRate(t *testing.T) {
	tests := []struct {
		name string
		cols []string
		want int
	}{
		{"regular 12 day", []string{"20200101", "20200113", "20200125"}, 12},
		{"mode wins", []string{"20200101", "20200107", "20200113", "20200119", "20200131"}, 6},
		{"tie breaks first encountered", []string{"20200101", "20200107", "20200119"}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InferSampleRate(dates(t, tt.cols...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInferSampleRateInsufficient(t *testing.T) {
	_, err := InferSampleRate(nil)
	assert.True(t, errors.Is(err, ErrInsufficientData))

	_, err = InferSampleRate(dates(t, "20200101"))
	assert.True(t, errors.Is(err, ErrInsufficientData))

	// Duplicate dates contribute no usable gap.
	_, err = InferSampleRate(dates(t, "20200101", "20200101"))
	assert.True(t, errors.Is(err, ErrInsufficientData))
}

func TestResampleInsertsMissingSlot(t *testing.T) {
	// One skipped acquisition: the 20200113 slot must reappear as NaN.
	s := Series{
		Dates:  dates(t, "20200101", "20200125", "20200206"),
		Values: []float64{1.0, 3.0, 4.0},
	}
	out, err := s.Resample()
	require.NoError(t, err)

	require.Equal(t, 4, out.Len())
	assert.Equal(t, mustDate(t, "20200101"), out.Dates[0])
	assert.Equal(t, mustDate(t, "20200113"), out.Dates[1])
	assert.Equal(t, mustDate(t, "20200125"), out.Dates[2])
	assert.Equal(t, mustDate(t, "20200206"), out.Dates[3])

	assert.Equal(t, 1.0, out.Values[0])
	assert.True(t, math.IsNaN(out.Values[1]), "skipped date must be NaN, not dropped")
	assert.Equal(t, 3.0, out.Values[2])
	assert.Equal(t, 4.0, out.Values[3])

	// No gap in the output axis may exceed the modal interval.
	for i := 1; i < out.Len(); i++ {
		gap := out.Dates[i].Sub(out.Dates[i-1]).Hours() / 24
		assert.LessOrEqual(t, gap, 12.0)
	}
}

func TestResampleDropsOffGridDates(t *testing.T) {
	// 20200105 is not aligned to the 12-day grid anchored at 20200101.
	s := Series{
		Dates:  dates(t, "20200101", "20200105", "20200113", "20200125", "20200206", "20200218"),
		Values: []float64{1, 99, 2, 3, 4, 5},
	}
	out, err := s.Resample()
	require.NoError(t, err)
	for _, v := range out.Values {
		assert.NotEqual(t, 99.0, v)
	}
}

func TestResampleGridNeverPassesLastDate(t *testing.T) {
	// Span 30 days at 12-day rate: grid ends at day 24, inside the span.
	s := Series{
		Dates:  dates(t, "20200101", "20200113", "20200125", "20200131"),
		Values: []float64{1, 2, 3, 4},
	}
	out, err := s.Resample()
	require.NoError(t, err)
	last := out.Dates[out.Len()-1]
	assert.False(t, last.After(mustDate(t, "20200131")))
	assert.Equal(t, mustDate(t, "20200125"), last)
}

func TestInterpolate(t *testing.T) {
	s := Series{
		Dates:  dates(t, "20200101", "20200113", "20200125", "20200206", "20200218"),
		Values: []float64{math.NaN(), 2.0, math.NaN(), 6.0, math.NaN()},
	}
	out := s.Interpolate()

	assert.Equal(t, 2.0, out.Values[0], "leading gap held at first observation")
	assert.Equal(t, 2.0, out.Values[1])
	assert.Equal(t, 4.0, out.Values[2], "interior gap linearly interpolated")
	assert.Equal(t, 6.0, out.Values[3])
	assert.Equal(t, 6.0, out.Values[4], "trailing gap held at last observation")

	// Source series is untouched.
	assert.True(t, math.IsNaN(s.Values[0]))
}
