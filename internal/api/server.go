// Package api serves the viewer HTTP surface: dataset selection, the
// feature layers as GeoJSON, style rules, and point decomposition.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/geohaz-data/ada.viewer/internal/geodata"
	"github.com/geohaz-data/ada.viewer/internal/locator"
	"github.com/geohaz-data/ada.viewer/internal/lookup"
	"github.com/geohaz-data/ada.viewer/internal/store"
	"github.com/geohaz-data/ada.viewer/internal/style"
	"github.com/geohaz-data/ada.viewer/internal/trend"
)

// ANSI escape codes for cyan and reset
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

type Server struct {
	store      *store.Store
	dispatcher *trend.Dispatcher
}

func NewServer(st *store.Store, d *trend.Dispatcher) *Server {
	return &Server{
		store:      st,
		dispatcher: d,
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/dataset", s.handleDataset)
	mux.HandleFunc("/api/options", s.showOptions)
	mux.HandleFunc("/api/features/polygons", s.listPolygons)
	mux.HandleFunc("/api/features/points", s.listPoints)
	mux.HandleFunc("/api/style", s.showStyle)
	mux.HandleFunc("/api/timeseries", s.showTimeSeries)
	mux.HandleFunc("/api/decompose", s.decomposePoint)
	mux.HandleFunc("/api/decompose/chart", s.decomposeChart)
	mux.HandleFunc("/api/decompose/plot.png", s.decomposePlot)
	return mux
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// live fetches the current dataset generation, answering 409 when no
// geography has been loaded yet.
func (s *Server) live(w http.ResponseWriter) (*store.Dataset, bool) {
	ds, ok := s.store.Live()
	if !ok {
		s.writeJSONError(w, http.StatusConflict, "no dataset loaded")
		return nil, false
	}
	return ds, true
}

// datasetSummary is the /api/dataset response body.
type datasetSummary struct {
	Generation   string          `json:"generation"`
	Locator      locator.Locator `json:"locator"`
	Centroid     [2]float64      `json:"centroid"` // [lon, lat]
	PolygonCount int             `json:"polygon_count"`
	PointCount   int             `json:"point_count"`
}

func summarize(ds *store.Dataset) datasetSummary {
	return datasetSummary{
		Generation:   ds.Generation,
		Locator:      ds.Locator,
		Centroid:     [2]float64{ds.Centroid.Lon(), ds.Centroid.Lat()},
		PolygonCount: len(ds.Polygons),
		PointCount:   len(ds.Points),
	}
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ds, ok := s.live(w)
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summarize(ds)); err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, "Failed to write dataset summary")
		}
	case http.MethodPost:
		var loc locator.Locator
		if err := json.NewDecoder(r.Body).Decode(&loc); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid locator body: %v", err))
			return
		}
		ds, err := s.store.Switch(loc)
		if err != nil {
			switch {
			case errors.Is(err, geodata.ErrDataNotFound), errors.Is(err, lookup.ErrDataNotFound):
				s.writeJSONError(w, http.StatusNotFound, err.Error())
			default:
				s.writeJSONError(w, http.StatusBadRequest, err.Error())
			}
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summarize(ds)); err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, "Failed to write dataset summary")
		}
	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) showOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	ds, ok := s.live(w)
	if !ok {
		return
	}
	loc := ds.Locator
	if d := r.URL.Query().Get("egms_date"); d != "" {
		loc.EGMSDate = d
	}

	egmsDates, err := locator.EGMSDates(s.store.Root(), loc.ModelDate)
	if err != nil && !errors.Is(err, locator.ErrDataNotFound) {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	aois, err := locator.AOINames(s.store.Root(), loc.ModelDate, loc.EGMSDate, loc.Product)
	if err != nil && !errors.Is(err, locator.ErrDataNotFound) {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	thrs, err := locator.VelThresholds(s.store.Root(), loc)
	if err != nil && !errors.Is(err, locator.ErrDataNotFound) {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	resp := map[string]any{
		"egms_dates":     orEmpty(egmsDates),
		"aoi_names":      orEmpty(aois),
		"vel_thresholds": orEmpty(thrs),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to write options")
	}
}

// orEmpty keeps option lists iterable on the client: an absent listing
// serialises as [] rather than null.
func orEmpty(vs []string) []string {
	if vs == nil {
		return []string{}
	}
	return vs
}

func (s *Server) showStyle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	attribute := r.URL.Query().Get("attribute")
	if attribute == "" {
		s.writeJSONError(w, http.StatusBadRequest, "Missing 'attribute' parameter")
		return
	}

	var resp any
	switch layer := r.URL.Query().Get("layer"); style.Layer(layer) {
	case style.LayerPolygon:
		resp = style.RuleForPolygons(attribute)
	case style.LayerPoint:
		resp = style.RuleForPoints(attribute)
	default:
		s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid 'layer' parameter %q", layer))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to write style rule")
	}
}
