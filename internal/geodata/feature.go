// Package geodata owns the polygon (ADA) and measurement point feature
// collections: loading from GeoJSON layers, the spatial containment join,
// and the per-polygon velocity aggregation.
package geodata

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
)

// ErrDataNotFound marks a missing feature layer or geography. A dataset
// switch that hits it must leave the previously loaded dataset live.
var ErrDataNotFound = errors.New("geodata: dataset file not found")

// PolygonFeature is one active deformation area. MeanVelocity is derived
// by the join and is NaN for polygons with no joined points; such polygons
// stay in the collection but are excluded from velocity styling.
type PolygonFeature struct {
	ID            int
	Geometry      orb.Geometry
	NumPoints     int     // n_ada_points
	MeanVelocity  float64 // mm/yr, NaN until joined
	LabelProb     float64 // mean classification confidence
	StableProp    float64 // fraction of stable points
	MajorClass    string  // ada_major_class
	MajorSubclass string  // ada_major_subclass
	VelocityGroup string  // mean_velocity_grp, "" until joined
}

// PointFeature is one measurement point. ADAID is nil until the join runs
// and stays nil for points outside every polygon.
type PointFeature struct {
	PID           string
	Geometry      orb.Point
	MeanVelocity  float64
	LabelProb     float64 // mp_label_prob
	TrendClass    string
	TrendSubclass string
	ADAID         *int
	VelocityGroup string
}

// HasVelocity reports whether the polygon picked up a velocity aggregate.
func (p PolygonFeature) HasVelocity() bool {
	return !math.IsNaN(p.MeanVelocity)
}
