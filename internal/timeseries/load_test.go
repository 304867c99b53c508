package timeseries

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeriesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ts.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadPointSeries(t *testing.T) {
	path := writeSeriesFile(t,
		"pid,mean_velocity,20200113,20200101,20200125\n"+
			"PT001,-3.2,1.5,0.0,nan\n"+
			"PT002,0.4,0.1,0.2,0.3\n")

	s, err := LoadPointSeries(path, "PT001")
	require.NoError(t, err)

	// Date columns are sorted ascending regardless of file order.
	require.Equal(t, 3, s.Len())
	assert.Equal(t, mustDate(t, "20200101"), s.Dates[0])
	assert.Equal(t, 0.0, s.Values[0])
	assert.Equal(t, 1.5, s.Values[1])
	assert.True(t, math.IsNaN(s.Values[2]))
}

func TestLoadPointSeriesUnknownPID(t *testing.T) {
	path := writeSeriesFile(t, "pid,20200101,20200113\nPT001,0.0,0.1\n")
	_, err := LoadPointSeries(path, "PT999")
	assert.ErrorContains(t, err, "PT999")
}

func TestLoadPointSeriesNoDateColumns(t *testing.T) {
	path := writeSeriesFile(t, "pid,mean_velocity\nPT001,0.0\n")
	_, err := LoadPointSeries(path, "PT001")
	assert.ErrorContains(t, err, "no acquisition date columns")
}

func TestLoadPointSeriesNoPIDColumn(t *testing.T) {
	path := writeSeriesFile(t, "id,20200101\nPT001,0.0\n")
	_, err := LoadPointSeries(path, "PT001")
	assert.ErrorContains(t, err, "no pid column")
}
