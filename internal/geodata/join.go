package geodata

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gonum.org/v1/gonum/stat"

	"github.com/geohaz-data/ada.viewer/internal/velocity"
)

// JoinAndAggregate performs the containment join of points into polygons,
// aggregates the per-polygon mean velocity, and labels both collections
// with their velocity group. The inputs are not mutated.
//
// A point inside no polygon keeps a nil ADAID and joins no aggregate. A
// point inside overlapping polygons binds to the one with the smallest
// geodetic area, which keeps the join deterministic regardless of point or
// polygon iteration order. Polygons with zero joined points keep a NaN
// MeanVelocity and an empty VelocityGroup; they are never dropped.
func JoinAndAggregate(polys []PolygonFeature, pts []PointFeature) ([]PolygonFeature, []PointFeature) {
	outPolys := append([]PolygonFeature(nil), polys...)
	outPts := append([]PointFeature(nil), pts...)

	areas := make([]float64, len(outPolys))
	for i, p := range outPolys {
		areas[i] = geodeticArea(p.Geometry)
	}

	joined := make(map[int][]float64, len(outPolys))
	for i := range outPts {
		best := -1
		for j := range outPolys {
			if !contains(outPolys[j].Geometry, outPts[i].Geometry) {
				continue
			}
			if best == -1 || areas[j] < areas[best] {
				best = j
			}
		}
		if best == -1 {
			outPts[i].ADAID = nil
			continue
		}
		id := outPolys[best].ID
		outPts[i].ADAID = &id
		if !math.IsNaN(outPts[i].MeanVelocity) {
			joined[id] = append(joined[id], outPts[i].MeanVelocity)
		}
	}

	for i := range outPolys {
		vs := joined[outPolys[i].ID]
		if len(vs) == 0 {
			outPolys[i].MeanVelocity = math.NaN()
			outPolys[i].VelocityGroup = ""
			continue
		}
		outPolys[i].MeanVelocity = stat.Mean(vs, nil)
		outPolys[i].VelocityGroup = velocity.Classify(outPolys[i].MeanVelocity)
	}
	for i := range outPts {
		outPts[i].VelocityGroup = velocity.Classify(outPts[i].MeanVelocity)
	}
	return outPolys, outPts
}

func contains(g orb.Geometry, p orb.Point) bool {
	switch geom := g.(type) {
	case orb.Polygon:
		return planar.PolygonContains(geom, p)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(geom, p)
	}
	return false
}

// geodeticArea returns the spherical area of the outer ring(s) in
// steradians. Only relative size matters here (overlap tie-break), so the
// value is never scaled to square metres.
func geodeticArea(g orb.Geometry) float64 {
	switch geom := g.(type) {
	case orb.Polygon:
		if len(geom) == 0 {
			return 0
		}
		return ringSteradians(geom[0])
	case orb.MultiPolygon:
		var sum float64
		for _, poly := range geom {
			if len(poly) > 0 {
				sum += ringSteradians(poly[0])
			}
		}
		return sum
	}
	return 0
}

func ringSteradians(ring orb.Ring) float64 {
	if len(ring) < 3 {
		return 0
	}
	pts := make([]s2.Point, 0, len(ring))
	for i, c := range ring {
		// GeoJSON rings repeat the first vertex; s2 loops must not.
		if i == len(ring)-1 && c == ring[0] {
			break
		}
		pts = append(pts, s2.PointFromLatLng(s2.LatLngFromDegrees(c[1], c[0])))
	}
	loop := s2.LoopFromPoints(pts)
	area := loop.Area()
	if area > 2*math.Pi {
		// Clockwise ring: s2 measured the complement.
		area = 4*math.Pi - area
	}
	return area
}
