package geodata

import (
	"fmt"
	"math"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Layers are RFC 7946 GeoJSON and therefore already in geodetic (WGS84)
// coordinates; no reprojection happens on load.

// The point layer carries raw classifier output names, renamed on load to
// the attributes the viewer uses:
//
//	class_label     -> trend_class
//	trend_subclass2 -> trend_subclass
//	label_prob      -> mp_label_prob

// LoadPolygons reads the ADA polygon layer. Polygon identity is the stable
// feature index within the collection.
func LoadPolygons(path string) ([]PolygonFeature, error) {
	fc, err := readFeatureCollection(path)
	if err != nil {
		return nil, err
	}
	polys := make([]PolygonFeature, 0, len(fc.Features))
	for i, f := range fc.Features {
		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			return nil, fmt.Errorf("geodata: feature %d in %s is not a polygon", i, path)
		}
		polys = append(polys, PolygonFeature{
			ID:            i,
			Geometry:      f.Geometry,
			NumPoints:     int(f.Properties.MustFloat64("n_ada_points", 0)),
			MeanVelocity:  math.NaN(),
			LabelProb:     f.Properties.MustFloat64("label_prob", math.NaN()),
			StableProp:    f.Properties.MustFloat64("stable_prop", math.NaN()),
			MajorClass:    f.Properties.MustString("ada_major_class", ""),
			MajorSubclass: f.Properties.MustString("ada_major_subclass", ""),
		})
	}
	return polys, nil
}

// LoadPoints reads the measurement point layer, applying the fixed raw
// field renames.
func LoadPoints(path string) ([]PointFeature, error) {
	fc, err := readFeatureCollection(path)
	if err != nil {
		return nil, err
	}
	pts := make([]PointFeature, 0, len(fc.Features))
	for i, f := range fc.Features {
		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			return nil, fmt.Errorf("geodata: feature %d in %s is not a point", i, path)
		}
		pid := f.Properties.MustString("pid", "")
		if pid == "" {
			return nil, fmt.Errorf("geodata: feature %d in %s has no pid", i, path)
		}
		pts = append(pts, PointFeature{
			PID:           pid,
			Geometry:      pt,
			MeanVelocity:  f.Properties.MustFloat64("mean_velocity", math.NaN()),
			LabelProb:     f.Properties.MustFloat64("label_prob", math.NaN()),
			TrendClass:    f.Properties.MustString("class_label", ""),
			TrendSubclass: f.Properties.MustString("trend_subclass2", ""),
		})
	}
	return pts, nil
}

// LoadBoundsCentroid reads the AOI bounds layer and returns the centroid
// of its first feature as a WGS84 (lon, lat) point for map centering.
func LoadBoundsCentroid(path string) (orb.Point, error) {
	fc, err := readFeatureCollection(path)
	if err != nil {
		return orb.Point{}, err
	}
	if len(fc.Features) == 0 {
		return orb.Point{}, fmt.Errorf("geodata: bounds layer %s is empty", path)
	}
	centroid, _ := planar.CentroidArea(fc.Features[0].Geometry)
	return centroid, nil
}

func readFeatureCollection(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDataNotFound, path)
		}
		return nil, fmt.Errorf("geodata: read %s: %w", path, err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("geodata: parse %s: %w", path, err)
	}
	return fc, nil
}
