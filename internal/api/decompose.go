package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/geohaz-data/ada.viewer/internal/charts"
	"github.com/geohaz-data/ada.viewer/internal/lookup"
	"github.com/geohaz-data/ada.viewer/internal/timeseries"
	"github.com/geohaz-data/ada.viewer/internal/trend"
)

// seriesResponse is the /api/timeseries body. Values use pointers so
// missing acquisitions serialise as null rather than an unencodable NaN.
type seriesResponse struct {
	PID    string     `json:"pid"`
	Dates  []string   `json:"dates"`
	Values []*float64 `json:"values"`
}

func toSeriesResponse(pid string, series timeseries.Series) seriesResponse {
	resp := seriesResponse{
		PID:    pid,
		Dates:  make([]string, series.Len()),
		Values: make([]*float64, series.Len()),
	}
	for i, d := range series.Dates {
		resp.Dates[i] = d.Format(timeseries.DateFormat)
		if v := series.Values[i]; !math.IsNaN(v) {
			vv := v
			resp.Values[i] = &vv
		}
	}
	return resp
}

func (s *Server) showTimeSeries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	ds, ok := s.live(w)
	if !ok {
		return
	}
	pid := r.URL.Query().Get("pid")
	if pid == "" {
		s.writeJSONError(w, http.StatusBadRequest, "Missing 'pid' parameter")
		return
	}

	raw, err := ds.PointSeries(pid)
	if err != nil {
		if errors.Is(err, lookup.ErrPIDNotFound) {
			s.writeJSONError(w, http.StatusNotFound, fmt.Sprintf("Unknown pid %q", pid))
			return
		}
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load series: %v", err))
		return
	}
	series, err := raw.Resample()
	if err != nil {
		s.writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toSeriesResponse(pid, series)); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to write series")
	}
}

// runDecomposition resolves a pid to its resampled series and
// decomposition result, writing the error response itself on failure.
func (s *Server) runDecomposition(w http.ResponseWriter, r *http.Request) (string, timeseries.Series, *trend.Result, bool) {
	ds, ok := s.live(w)
	if !ok {
		return "", timeseries.Series{}, nil, false
	}
	pid := r.URL.Query().Get("pid")
	if pid == "" {
		s.writeJSONError(w, http.StatusBadRequest, "Missing 'pid' parameter")
		return "", timeseries.Series{}, nil, false
	}

	pt, ok := ds.Point(pid)
	if !ok {
		s.writeJSONError(w, http.StatusNotFound, fmt.Sprintf("Unknown pid %q", pid))
		return "", timeseries.Series{}, nil, false
	}
	raw, err := ds.PointSeries(pid)
	if err != nil {
		if errors.Is(err, lookup.ErrPIDNotFound) {
			s.writeJSONError(w, http.StatusNotFound, fmt.Sprintf("No series for pid %q", pid))
		} else {
			s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load series: %v", err))
		}
		return "", timeseries.Series{}, nil, false
	}

	// The result arrays align with the uniform grid returned by Dispatch,
	// not the raw dates.
	resampled, res, err := s.dispatcher.Dispatch(r.Context(), pt.TrendClass, raw)
	if err != nil {
		var decompErr *trend.DecompositionError
		switch {
		case errors.Is(err, trend.ErrUnsupportedTrend),
			errors.Is(err, timeseries.ErrInsufficientData):
			s.writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.As(err, &decompErr):
			s.writeJSONError(w, http.StatusBadGateway, err.Error())
		default:
			s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		}
		return "", timeseries.Series{}, nil, false
	}
	return pid, resampled, res, true
}

func (s *Server) decomposePoint(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	pid, resampled, res, ok := s.runDecomposition(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	resp := map[string]any{
		"pid":    pid,
		"series": toSeriesResponse(pid, resampled),
		"result": res,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to write decomposition")
	}
}

func (s *Server) decomposeChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	pid, resampled, res, ok := s.runDecomposition(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	var err error
	switch kind := r.URL.Query().Get("kind"); kind {
	case "psd":
		err = charts.RenderPSD(w, pid, res)
	case "", "trend":
		err = charts.RenderDecomposition(w, pid, resampled, res)
	default:
		s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid 'kind' parameter %q", kind))
		return
	}
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to render chart: %v", err))
	}
}

func (s *Server) decomposePlot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	pid, resampled, res, ok := s.runDecomposition(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := charts.WriteDecompositionPNG(w, pid, resampled, res); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to render plot: %v", err))
	}
}
