package store

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geohaz-data/ada.viewer/internal/geodata"
	"github.com/geohaz-data/ada.viewer/internal/testutil"
	"github.com/geohaz-data/ada.viewer/internal/velocity"
)

func TestSwitchLoadsAndJoins(t *testing.T) {
	s := New(t.TempDir())
	_, ok := s.Live()
	assert.False(t, ok, "no generation before first switch")

	loc := testutil.WriteDataset(t, s.Root())
	ds, err := s.Switch(loc)
	require.NoError(t, err)
	require.NotEmpty(t, ds.Generation)

	live, ok := s.Live()
	require.True(t, ok)
	assert.Same(t, ds, live)

	// Join ran: polygon 0 aggregated from PT001..PT003.
	require.Len(t, ds.Polygons, 2)
	assert.InDelta(t, (-12.0+0+11)/3, ds.Polygons[0].MeanVelocity, 1e-12)
	assert.Equal(t, velocity.Stable, ds.Polygons[0].VelocityGroup)
	assert.True(t, math.IsNaN(ds.Polygons[1].MeanVelocity))

	pt, ok := ds.Point("PT001")
	require.True(t, ok)
	assert.Equal(t, velocity.BelowMinus10, pt.VelocityGroup)
	require.NotNil(t, pt.ADAID)
	assert.Equal(t, 0, *pt.ADAID)

	assert.InDelta(t, 2.0, ds.Centroid.Lon(), 1e-9)
	assert.InDelta(t, 2.0, ds.Centroid.Lat(), 1e-9)
}

func TestPointSeries(t *testing.T) {
	s := New(t.TempDir())
	loc := testutil.WriteDataset(t, s.Root())
	ds, err := s.Switch(loc)
	require.NoError(t, err)

	series, err := ds.PointSeries("PT001")
	require.NoError(t, err)
	require.Equal(t, 4, series.Len())
	assert.Equal(t, 0.0, series.Values[0])
	assert.True(t, math.IsNaN(series.Values[2]), "empty CSV field is a missing value")

	_, err = ds.PointSeries("PT999")
	assert.Error(t, err)
}

func TestSwitchFailureKeepsPreviousGeneration(t *testing.T) {
	s := New(t.TempDir())
	loc := testutil.WriteDataset(t, s.Root())
	first, err := s.Switch(loc)
	require.NoError(t, err)

	missing := loc
	missing.AOIName = "elsewhere_27700"
	_, err = s.Switch(missing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, geodata.ErrDataNotFound))

	live, ok := s.Live()
	require.True(t, ok)
	assert.Same(t, first, live, "failed switch must not publish anything")

	// The surviving generation is still fully usable.
	_, err = live.PointSeries("PT002")
	assert.NoError(t, err)
}

func TestSwitchReplacesWholeGeneration(t *testing.T) {
	s := New(t.TempDir())
	loc := testutil.WriteDataset(t, s.Root())

	first, err := s.Switch(loc)
	require.NoError(t, err)
	second, err := s.Switch(loc)
	require.NoError(t, err)

	assert.NotEqual(t, first.Generation, second.Generation)
	live, _ := s.Live()
	assert.Same(t, second, live)
}

func TestSwitchValidatesLocator(t *testing.T) {
	s := New(t.TempDir())
	loc := testutil.FixtureLocator()
	loc.Country = ""
	_, err := s.Switch(loc)
	assert.ErrorContains(t, err, "country")
}
