// Package store holds the live dataset generation. Exactly one generation
// is live at a time; a geography switch builds the entire replacement off
// to the side and publishes it with a single atomic pointer store, so
// readers never observe fields from two generations at once.
package store

import (
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"github.com/geohaz-data/ada.viewer/internal/geodata"
	"github.com/geohaz-data/ada.viewer/internal/locator"
	"github.com/geohaz-data/ada.viewer/internal/lookup"
	"github.com/geohaz-data/ada.viewer/internal/monitoring"
	"github.com/geohaz-data/ada.viewer/internal/security"
	"github.com/geohaz-data/ada.viewer/internal/timeseries"
)

// Dataset is one immutable generation: the joined feature collections,
// the pid lookup, and the map centroid for the selected geography.
// Handlers take a snapshot once per request and never mutate it.
type Dataset struct {
	Generation string // uuid, for log correlation
	Locator    locator.Locator
	Polygons   []geodata.PolygonFeature
	Points     []geodata.PointFeature
	Centroid   orb.Point

	lookup    *lookup.Table
	seriesDir string
	pointIdx  map[string]int
}

// Point returns the feature for a pid.
func (d *Dataset) Point(pid string) (geodata.PointFeature, bool) {
	i, ok := d.pointIdx[pid]
	if !ok {
		return geodata.PointFeature{}, false
	}
	return d.Points[i], true
}

// PointSeries loads the raw displacement series for a pid through the
// generation's lookup table. Filenames come from an on-disk database, so
// the resolved path is checked against the series directory before
// reading.
func (d *Dataset) PointSeries(pid string) (timeseries.Series, error) {
	fname, err := d.lookup.Filename(pid)
	if err != nil {
		return timeseries.Series{}, err
	}
	path := filepath.Join(d.seriesDir, fname)
	if err := security.ValidatePathWithinDirectory(path, d.seriesDir); err != nil {
		return timeseries.Series{}, fmt.Errorf("store: series file for %s: %w", pid, err)
	}
	return timeseries.LoadPointSeries(path, pid)
}

// Store owns the live generation reference.
type Store struct {
	root string
	live atomic.Pointer[Dataset]
}

// New creates a store over the given data root. No generation is live
// until the first successful Switch.
func New(root string) *Store {
	return &Store{root: root}
}

// Root returns the data root directory.
func (s *Store) Root() string { return s.root }

// Live returns the current generation, or false before the first load.
func (s *Store) Live() (*Dataset, bool) {
	d := s.live.Load()
	return d, d != nil
}

// Switch loads the geography described by loc and atomically replaces the
// live generation. On any error nothing is published and the previous
// generation stays live. The retired generation's lookup handle is
// closed; a reader still holding the old snapshot may see its lookup fail,
// which is the accepted cross-session race of the shared-dataset design.
func (s *Store) Switch(loc locator.Locator) (*Dataset, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	polys, err := geodata.LoadPolygons(loc.PolygonsPath(s.root))
	if err != nil {
		return nil, fmt.Errorf("store: load polygons: %w", err)
	}
	pts, err := geodata.LoadPoints(loc.PointsPath(s.root))
	if err != nil {
		return nil, fmt.Errorf("store: load points: %w", err)
	}
	centroid, err := geodata.LoadBoundsCentroid(loc.BoundsPath(s.root))
	if err != nil {
		return nil, fmt.Errorf("store: load bounds: %w", err)
	}
	tbl, err := lookup.Open(loc.LookupPath(s.root))
	if err != nil {
		return nil, fmt.Errorf("store: open pid lookup: %w", err)
	}

	polys, pts = geodata.JoinAndAggregate(polys, pts)

	idx := make(map[string]int, len(pts))
	for i, p := range pts {
		idx[p.PID] = i
	}

	next := &Dataset{
		Generation: uuid.NewString(),
		Locator:    loc,
		Polygons:   polys,
		Points:     pts,
		Centroid:   centroid,
		lookup:     tbl,
		seriesDir:  loc.SeriesDir(s.root),
		pointIdx:   idx,
	}

	prev := s.live.Swap(next)
	if prev != nil {
		_ = prev.lookup.Close()
	}
	monitoring.Logf("store: dataset %s live: %s %d polygons %d points",
		next.Generation, loc.AOIName, len(polys), len(pts))
	return next, nil
}
