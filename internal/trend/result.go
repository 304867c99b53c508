package trend

import (
	"encoding/json"
	"fmt"
)

// Complex is a complex sample on the wire. The classifier encodes complex
// arrays as [re, im] pairs; purely real fields may arrive as plain
// numbers, which decode with a zero imaginary part.
type Complex struct {
	Re float64
	Im float64
}

// UnmarshalJSON accepts either a [re, im] pair or a bare number.
func (c *Complex) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err == nil {
		c.Re, c.Im = pair[0], pair[1]
		return nil
	}
	var re float64
	if err := json.Unmarshal(data, &re); err != nil {
		return fmt.Errorf("trend: complex sample %s: %w", data, err)
	}
	c.Re, c.Im = re, 0
	return nil
}

// MarshalJSON emits the [re, im] pair form.
func (c Complex) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Re, c.Im})
}

// RawResult mirrors the classifier service output, consumed by field
// name. Trends carries the fitted model functions, which do not survive
// serialisation and are dropped during normalisation.
type RawResult struct {
	TrendVals     []float64       `json:"trend_vals"`
	Filtered      []Complex       `json:"ffilt"` // seasonal component
	RMSE          float64         `json:"rmse"`
	PSD           []Complex       `json:"psd"`
	Freq          []float64       `json:"freq"`
	PSDThreshold  float64         `json:"psd_thr"`
	MinSeasonFreq float64         `json:"min_season_freq"`
	MaxSeasonFreq float64         `json:"max_season_freq"`
	SeasonPeaks   [][]int         `json:"season_peaks"` // peak idx, props, trough idx
	SeasonPkPkAmp []float64       `json:"season_pkpk_amp"`
	SeasonRMS     float64         `json:"season_rms"`
	InitTrend     string          `json:"init_trend"`
	Trends        json.RawMessage `json:"trends,omitempty"` // not serialisable
}

// Result is the transport form of a decomposition: complex arrays reduced
// to their real part, everything JSON-friendly, fitted model functions
// gone. Produced once per point selection; never persisted.
type Result struct {
	TrendVals     []float64 `json:"trend_vals"`
	Filtered      []float64 `json:"ffilt"`
	RMSE          float64   `json:"rmse"`
	PSD           []float64 `json:"psd"`
	Freq          []float64 `json:"freq"`
	PSDThreshold  float64   `json:"psd_thr"`
	MinSeasonFreq float64   `json:"min_season_freq"`
	MaxSeasonFreq float64   `json:"max_season_freq"`
	SeasonPeaks   [][]int   `json:"season_peaks"`
	SeasonPkPkAmp []float64 `json:"season_pkpk_amp"`
	SeasonRMS     float64   `json:"season_rms"`
	InitTrend     string    `json:"init_trend"`
}

// Normalize reduces a raw classifier result to its transport form.
func Normalize(raw *RawResult) *Result {
	return &Result{
		TrendVals:     raw.TrendVals,
		Filtered:      realParts(raw.Filtered),
		RMSE:          raw.RMSE,
		PSD:           realParts(raw.PSD),
		Freq:          raw.Freq,
		PSDThreshold:  raw.PSDThreshold,
		MinSeasonFreq: raw.MinSeasonFreq,
		MaxSeasonFreq: raw.MaxSeasonFreq,
		SeasonPeaks:   raw.SeasonPeaks,
		SeasonPkPkAmp: raw.SeasonPkPkAmp,
		SeasonRMS:     raw.SeasonRMS,
		InitTrend:     raw.InitTrend,
	}
}

func realParts(cs []Complex) []float64 {
	if cs == nil {
		return nil
	}
	out := make([]float64, len(cs))
	for i, c := range cs {
		out[i] = c.Re
	}
	return out
}
