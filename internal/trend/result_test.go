package trend

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplexUnmarshal(t *testing.T) {
	var cs []Complex
	require.NoError(t, json.Unmarshal([]byte(`[[1.5, -0.25], 2.0, [0, 3]]`), &cs))
	require.Len(t, cs, 3)
	assert.Equal(t, Complex{Re: 1.5, Im: -0.25}, cs[0])
	assert.Equal(t, Complex{Re: 2.0, Im: 0}, cs[1], "bare numbers decode as real")
	assert.Equal(t, Complex{Re: 0, Im: 3}, cs[2])

	assert.Error(t, json.Unmarshal([]byte(`["x"]`), &cs))
}

func TestNormalize(t *testing.T) {
	raw := &RawResult{
		TrendVals:     []float64{1, 2},
		Filtered:      []Complex{{Re: 0.5, Im: 9}, {Re: -0.5, Im: -9}},
		RMSE:          1.25,
		PSD:           []Complex{{Re: 40, Im: 3}},
		Freq:          []float64{1.0},
		PSDThreshold:  30,
		MinSeasonFreq: 0.5,
		MaxSeasonFreq: 2.0,
		SeasonPeaks:   [][]int{{3}, {}, {9}},
		SeasonPkPkAmp: []float64{2.2},
		SeasonRMS:     0.8,
		InitTrend:     "linear",
		Trends:        json.RawMessage(`{"opaque":"model"}`),
	}

	res := Normalize(raw)
	assert.Equal(t, []float64{0.5, -0.5}, res.Filtered, "imaginary parts dropped")
	assert.Equal(t, []float64{40}, res.PSD)
	assert.Equal(t, raw.TrendVals, res.TrendVals)
	assert.Equal(t, raw.SeasonPeaks, res.SeasonPeaks)

	// The fitted model functions must not survive into transport.
	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "trends")
	assert.NotContains(t, string(data), "opaque")
}
