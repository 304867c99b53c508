package trend

import (
	"context"

	"github.com/geohaz-data/ada.viewer/internal/timeseries"
)

// Dispatcher runs the point-selection pipeline: model selection from the
// predicted trend label, resampling and gap interpolation, classifier
// invocation, and normalisation of the result.
type Dispatcher struct {
	classifier Classifier
}

// NewDispatcher creates a dispatcher backed by the given classifier.
func NewDispatcher(c Classifier) *Dispatcher {
	return &Dispatcher{classifier: c}
}

// Dispatch decomposes a point's raw displacement series. It returns the
// uniform grid the result arrays align with (the resampled series, gaps
// still NaN) alongside the normalised result.
//
// An unmapped trend label fails with ErrUnsupportedTrend before the
// classifier is touched. Resampling errors (too few acquisitions)
// propagate as timeseries.ErrInsufficientData. Classifier failures come
// back wrapped in *DecompositionError.
func (d *Dispatcher) Dispatch(ctx context.Context, trendLabel string, raw timeseries.Series) (timeseries.Series, *Result, error) {
	model, err := ModelForLabel(trendLabel)
	if err != nil {
		return timeseries.Series{}, nil, err
	}

	resampled, err := raw.Resample()
	if err != nil {
		return timeseries.Series{}, nil, err
	}
	rateDays, err := timeseries.InferSampleRate(resampled.Dates)
	if err != nil {
		return timeseries.Series{}, nil, err
	}
	// The fit routines cannot consume missing values.
	filled := resampled.Interpolate()

	req := Request{
		FirstDate:     filled.Dates[0].Format(timeseries.DateFormat),
		SampleRate:    365.25 / float64(rateDays),
		Model:         model,
		InitTrend:     trendLabel,
		MaxBreaks:     DefaultMaxBreaks,
		MinSeasonFreq: DefaultMinSeasonFreq,
		MaxSeasonFreq: DefaultMaxSeasonFreq,
		PSDThreshold:  DefaultPSDThreshold,
		Values:        filled.Values,
	}

	rawResult, err := d.classifier.Fit(ctx, req)
	if err != nil {
		return timeseries.Series{}, nil, &DecompositionError{Err: err}
	}
	return resampled, Normalize(rawResult), nil
}
