// Package trend dispatches point time series to the external trend
// decomposition classifier and normalises its output for transport. The
// decomposition algorithm itself is a black box behind the Classifier
// interface; tests substitute a deterministic stub.
package trend

import (
	"context"
	"errors"
	"fmt"
)

// Model selects the decomposition model family the classifier fits.
type Model string

const (
	ModelLinear          Model = "linear"
	ModelQuadratic       Model = "quadratic"
	ModelPiecewiseLinear Model = "piecewise-linear"
	ModelStep            Model = "step"
)

// ErrUnsupportedTrend is returned for a point whose predicted trend label
// has no mapped decomposition model. The classifier is never invoked.
var ErrUnsupportedTrend = errors.New("trend: unsupported trend label")

// Default analysis parameters. Fixed for now; the surrounding UI stubs
// out controls for them.
const (
	DefaultMaxBreaks     = 3
	DefaultMinSeasonFreq = 0.5  // cycles/year
	DefaultMaxSeasonFreq = 2.0  // cycles/year
	DefaultPSDThreshold  = 30.0
)

// ModelForLabel maps an ML-predicted trend label to the decomposition
// model to fit. Stable points get the linear model: a near-zero slope fit
// is still the best descriptor of their behaviour.
func ModelForLabel(label string) (Model, error) {
	switch label {
	case "stable", "linear":
		return ModelLinear, nil
	case "quadratic":
		return ModelQuadratic, nil
	case "changepoint":
		return ModelPiecewiseLinear, nil
	case "step":
		return ModelStep, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedTrend, label)
	}
}

// Request is the classifier service input, consumed by field name.
type Request struct {
	FirstDate     string    `json:"first_date"`      // YYYYMMDD
	SampleRate    float64   `json:"sample_rate"`     // cycles/year
	Model         Model     `json:"trend_model"`
	InitTrend     string    `json:"init_trend"`      // initial trend guess
	MaxBreaks     int       `json:"max_n_breaks"`
	MinSeasonFreq float64   `json:"min_season_freq"` // cycles/year
	MaxSeasonFreq float64   `json:"max_season_freq"` // cycles/year
	PSDThreshold  float64   `json:"psd_thr"`
	Values        []float64 `json:"values"`          // gap-free displacements, mm
}

// Classifier is the narrow interface to the external decomposition
// service.
type Classifier interface {
	Fit(ctx context.Context, req Request) (*RawResult, error)
}

// DecompositionError wraps a failure raised by the external classifier.
// It is caught at the dispatch boundary and surfaced as a blank plot,
// never a process crash.
type DecompositionError struct {
	Err error
}

func (e *DecompositionError) Error() string {
	return fmt.Sprintf("trend: decomposition failed: %v", e.Err)
}

func (e *DecompositionError) Unwrap() error { return e.Err }
