package api

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/paulmach/orb/geojson"

	"github.com/geohaz-data/ada.viewer/internal/geodata"
)

// floatProp converts an optional numeric attribute to a JSON-safe
// property value. NaN cannot be marshalled, so absent attributes and
// unjoined aggregates serialise as null.
func floatProp(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func polygonCollection(polys []geodata.PolygonFeature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range polys {
		f := geojson.NewFeature(p.Geometry)
		f.ID = p.ID
		f.Properties = geojson.Properties{
			"ada_id":             p.ID,
			"n_ada_points":       p.NumPoints,
			"label_prob":         floatProp(p.LabelProb),
			"stable_prop":        floatProp(p.StableProp),
			"ada_major_class":    p.MajorClass,
			"ada_major_subclass": p.MajorSubclass,
			"mean_velocity":      floatProp(p.MeanVelocity),
			"mean_velocity_grp":  p.VelocityGroup,
		}
		fc.Append(f)
	}
	return fc
}

func pointCollection(points []geodata.PointFeature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range points {
		f := geojson.NewFeature(p.Geometry)
		props := geojson.Properties{
			"pid":               p.PID,
			"mean_velocity":     floatProp(p.MeanVelocity),
			"mp_label_prob":     floatProp(p.LabelProb),
			"trend_class":       p.TrendClass,
			"trend_subclass":    p.TrendSubclass,
			"mean_velocity_grp": p.VelocityGroup,
		}
		if p.ADAID != nil {
			props["ada_id"] = *p.ADAID
		} else {
			props["ada_id"] = nil
		}
		f.Properties = props
		fc.Append(f)
	}
	return fc
}

func (s *Server) listPolygons(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	ds, ok := s.live(w)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	if err := json.NewEncoder(w).Encode(polygonCollection(ds.Polygons)); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to write polygon layer")
	}
}

func (s *Server) listPoints(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	ds, ok := s.live(w)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	if err := json.NewEncoder(w).Encode(pointCollection(ds.Points)); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to write point layer")
	}
}
