// Package testutil builds on-disk dataset fixtures for tests: a small
// geography with two ADA polygons, four measurement points, a bounds
// layer, a pid lookup database, and one time-series file.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geohaz-data/ada.viewer/internal/locator"
	"github.com/geohaz-data/ada.viewer/internal/lookup"
)

// FixtureLocator describes the geography written by WriteDataset.
func FixtureLocator() locator.Locator {
	return locator.Locator{
		ModelDate:    "20250608",
		EGMSDate:     "20182022",
		Product:      "basic",
		Country:      "uk",
		GeohazType:   "mining",
		AOIName:      "testfield_27700",
		S1Path:       "asc",
		ADAType:      locator.ADATypeUnion,
		VelThreshold: "5.0",
	}
}

const fixturePolygons = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Polygon", "coordinates": [[[0,0],[4,0],[4,4],[0,4],[0,0]]]},
      "properties": {"n_ada_points": 3, "label_prob": 0.9, "stable_prop": 0.33,
                     "ada_major_class": "linear", "ada_major_subclass": "active-constant"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Polygon", "coordinates": [[[10,10],[12,10],[12,12],[10,12],[10,10]]]},
      "properties": {"n_ada_points": 0, "label_prob": 0.6, "stable_prop": 1.0,
                     "ada_major_class": "stable", "ada_major_subclass": "stable"}
    }
  ]
}`

const fixturePoints = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [1, 1]},
      "properties": {"pid": "PT001", "mean_velocity": -12.0, "label_prob": 0.95,
                     "class_label": "linear", "trend_subclass2": "active-constant"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [2, 2]},
      "properties": {"pid": "PT002", "mean_velocity": 0.0, "label_prob": 0.85,
                     "class_label": "stable", "trend_subclass2": "stable"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [3, 3]},
      "properties": {"pid": "PT003", "mean_velocity": 11.0, "label_prob": 0.75,
                     "class_label": "changepoint", "trend_subclass2": "stable-active"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [50, 50]},
      "properties": {"pid": "PT004", "mean_velocity": 3.0, "label_prob": 0.65,
                     "class_label": "sinusoid", "trend_subclass2": "rebound"}
    }
  ]
}`

const fixtureBounds = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature",
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[4,0],[4,4],[0,4],[0,0]]]},
     "properties": {}}
  ]
}`

const fixtureSeries = `pid,20200101,20200113,20200125,20200206
PT001,0.0,-1.5,,-4.1
PT002,0.1,0.0,0.2,-0.1
PT003,0.0,1.2,2.6,3.9
PT004,0.0,0.5,1.0,1.5
`

// WriteDataset writes the fixture geography under root and returns its
// locator. The layout matches what locator path resolution expects.
func WriteDataset(t *testing.T, root string) locator.Locator {
	t.Helper()
	loc := FixtureLocator()

	write := func(path, content string) {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	write(loc.PolygonsPath(root), fixturePolygons)
	write(loc.PointsPath(root), fixturePoints)
	write(loc.BoundsPath(root), fixtureBounds)

	lookupPath := loc.LookupPath(root)
	require.NoError(t, os.MkdirAll(filepath.Dir(lookupPath), 0755))
	require.NoError(t, lookup.Create(lookupPath, map[string]string{
		"PT001": "tile_0001.csv",
		"PT002": "tile_0001.csv",
		"PT003": "tile_0001.csv",
		"PT004": "tile_0001.csv",
	}))

	write(filepath.Join(loc.SeriesDir(root), "tile_0001.csv"), fixtureSeries)
	return loc
}
