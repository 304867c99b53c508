package locator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLocator() Locator {
	return Locator{
		ModelDate:    "20250608",
		EGMSDate:     "20182022",
		Product:      "basic",
		Country:      "uk",
		GeohazType:   "mining",
		AOIName:      "mans-chesterf-notts_27700",
		S1Path:       "asc",
		ADAType:      ADATypeUnion,
		VelThreshold: "5.0",
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, testLocator().Validate())

	l := testLocator()
	l.Country = ""
	l.EGMSDate = ""
	err := l.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "country")
	assert.Contains(t, err.Error(), "egms_date")

	l = testLocator()
	l.S1Path = "up"
	assert.Error(t, l.Validate())
}

func TestAOIClean(t *testing.T) {
	assert.Equal(t, "mans-chesterf-notts", testLocator().AOIClean())

	l := testLocator()
	l.AOIName = "no-crs-suffix"
	assert.Equal(t, "no-crs-suffix", l.AOIClean())
}

func TestPathResolution(t *testing.T) {
	l := testLocator()

	adaDir := l.ADADir("/data")
	assert.Equal(t,
		"/data/adas/20250608/20182022/basic/uk/adas/mining/mans-chesterf-notts_27700/asc/avgvel+/5.0mm/union",
		adaDir, "avgvel+ layers live under union/")

	assert.Equal(t, filepath.Join(adaDir, "mans-chesterf-notts_ada+_union.geojson"), l.PolygonsPath("/data"))
	assert.Equal(t, filepath.Join(adaDir, "mans-chesterf-notts_points.geojson"), l.PointsPath("/data"))

	l.ADAType = "avgvel"
	assert.NotContains(t, l.ADADir("/data"), "union", "plain variant has no union suffix")

	assert.Equal(t,
		"/data/bounds/uk/mining/mans-chesterf-notts_27700/mans-chesterf-notts_27700.geojson",
		testLocator().BoundsPath("/data"))
	assert.Equal(t,
		"/data/lookups/20182022/basic/uk/mining/mans-chesterf-notts_27700/asc/pid_lookup.db",
		testLocator().LookupPath("/data"))
	assert.Equal(t,
		"/data/20182022/basic/uk/mining/mans-chesterf-notts_27700/asc",
		testLocator().SeriesDir("/data"), "series tree mirrors the lookup tree without lookups/")
}

func TestEnumeration(t *testing.T) {
	root := t.TempDir()
	l := testLocator()

	mk := func(parts ...string) {
		require.NoError(t, os.MkdirAll(filepath.Join(parts...), 0755))
	}
	base := filepath.Join(root, "adas", l.ModelDate)
	mk(base, "20182022", "basic", "uk", "adas", "mining", l.AOIName, "asc", l.ADAType, "3.5mm")
	mk(base, "20182022", "basic", "uk", "adas", "mining", l.AOIName, "asc", l.ADAType, "5.0mm")
	mk(base, "20182022", "basic", "uk", "adas", "coastal", "north-wales_27700")
	mk(base, "20192023", "basic")

	dates, err := EGMSDates(root, l.ModelDate)
	require.NoError(t, err)
	assert.Equal(t, []string{"20182022", "20192023"}, dates)

	aois, err := AOINames(root, l.ModelDate, "20182022", "basic")
	require.NoError(t, err)
	assert.Equal(t, []string{"mans-chesterf-notts_27700", "north-wales_27700"}, aois)

	thrs, err := VelThresholds(root, l)
	require.NoError(t, err)
	assert.Equal(t, []string{"3.5", "5.0"}, thrs)
}

func TestEnumerationMissingGeography(t *testing.T) {
	_, err := EGMSDates(t.TempDir(), "20250608")
	assert.True(t, errors.Is(err, ErrDataNotFound))
}
