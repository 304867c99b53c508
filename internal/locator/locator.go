// Package locator resolves dataset file locations from a structured
// descriptor. The descriptor replaces the sequential placeholder
// substitution of earlier tooling: every field is named, resolution is a
// pure function of (root, Locator), and a missing field fails validation
// instead of producing a half-substituted path.
package locator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// ErrDataNotFound marks a geography that does not exist under the data
// root. Enumeration helpers return it when a listing directory is absent.
var ErrDataNotFound = errors.New("locator: geography not found")

// ADATypeUnion is the ADA variant whose layers live in a union/ subfolder.
const ADATypeUnion = "avgvel+"

var aoiSuffix = regexp.MustCompile(`_\d+$`)

// Locator identifies one dataset generation on disk.
type Locator struct {
	ModelDate    string `json:"model_date"`    // classification model run, YYYYMMDD
	EGMSDate     string `json:"egms_date"`     // collection date range, e.g. 20182022
	Product      string `json:"product"`       // product tier, e.g. basic
	Country      string `json:"country"`
	GeohazType   string `json:"geohaz_type"`   // hazard type, e.g. mining
	AOIName      string `json:"aoi_name"`      // area name incl. CRS suffix
	S1Path       string `json:"s1_path"`       // sensor look direction, asc or dsc
	ADAType      string `json:"ada_type"`      // ADA variant, e.g. avgvel+
	VelThreshold string `json:"avg_vel_thr"`   // velocity threshold, e.g. 5.0
}

// Validate checks that every field required for path resolution is set.
func (l Locator) Validate() error {
	fields := map[string]string{
		"model_date":  l.ModelDate,
		"egms_date":   l.EGMSDate,
		"product":     l.Product,
		"country":     l.Country,
		"geohaz_type": l.GeohazType,
		"aoi_name":    l.AOIName,
		"s1_path":     l.S1Path,
		"ada_type":    l.ADAType,
		"avg_vel_thr": l.VelThreshold,
	}
	var missing []string
	for name, v := range fields {
		if v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("locator: missing fields: %s", strings.Join(missing, ", "))
	}
	if l.S1Path != "asc" && l.S1Path != "dsc" {
		return fmt.Errorf("locator: s1_path must be asc or dsc, got %q", l.S1Path)
	}
	return nil
}

// AOIClean strips the CRS suffix from the AOI name
// (mans-chesterf-notts_27700 -> mans-chesterf-notts). Layer filenames use
// the clean form.
func (l Locator) AOIClean() string {
	return aoiSuffix.ReplaceAllString(l.AOIName, "")
}

// ADADir returns the directory holding the classified ADA layers. The
// avgvel+ variant stores its layers one level deeper under union/.
func (l Locator) ADADir(root string) string {
	dir := filepath.Join(
		root, "adas", l.ModelDate, l.EGMSDate, l.Product,
		l.Country, "adas", l.GeohazType, l.AOIName,
		l.S1Path, l.ADAType, l.VelThreshold+"mm",
	)
	if l.ADAType == ADATypeUnion {
		dir = filepath.Join(dir, "union")
	}
	return dir
}

// PolygonsPath returns the ADA polygon layer file.
func (l Locator) PolygonsPath(root string) string {
	return filepath.Join(l.ADADir(root), l.AOIClean()+"_ada+_union.geojson")
}

// PointsPath returns the measurement point layer file.
func (l Locator) PointsPath(root string) string {
	return filepath.Join(l.ADADir(root), l.AOIClean()+"_points.geojson")
}

// BoundsPath returns the AOI bounds layer used for map centering.
func (l Locator) BoundsPath(root string) string {
	return filepath.Join(root, "bounds", l.Country, l.GeohazType, l.AOIName, l.AOIName+".geojson")
}

func (l Locator) lookupDir(root string) string {
	return filepath.Join(
		root, "lookups", l.EGMSDate, l.Product,
		l.Country, l.GeohazType, l.AOIName, l.S1Path,
	)
}

// LookupPath returns the pid -> time-series-filename lookup database.
func (l Locator) LookupPath(root string) string {
	return filepath.Join(l.lookupDir(root), "pid_lookup.db")
}

// SeriesDir returns the directory of per-point displacement series files.
// It mirrors the lookup tree without the lookups/ prefix, so the filenames
// stored in the lookup table resolve against it directly.
func (l Locator) SeriesDir(root string) string {
	return filepath.Join(
		root, l.EGMSDate, l.Product,
		l.Country, l.GeohazType, l.AOIName, l.S1Path,
	)
}

// EGMSDates lists the collection date ranges available for a model run.
func EGMSDates(root, modelDate string) ([]string, error) {
	return listDir(filepath.Join(root, "adas", modelDate))
}

// AOINames lists the areas available under one EGMS date, walking every
// country and hazard type.
func AOINames(root, modelDate, egmsDate, product string) ([]string, error) {
	base := filepath.Join(root, "adas", modelDate, egmsDate, product)
	countries, err := listDir(base)
	if err != nil {
		return nil, err
	}
	var aois []string
	for _, country := range countries {
		hazDir := filepath.Join(base, country, "adas")
		hazards, err := listDir(hazDir)
		if err != nil {
			return nil, err
		}
		for _, haz := range hazards {
			names, err := listDir(filepath.Join(hazDir, haz))
			if err != nil {
				return nil, err
			}
			aois = append(aois, names...)
		}
	}
	sort.Strings(aois)
	return aois, nil
}

// VelThresholds lists the velocity thresholds available for a locator,
// with the mm suffix stripped (directory 5.0mm -> value 5.0).
func VelThresholds(root string, l Locator) ([]string, error) {
	dir := filepath.Join(
		root, "adas", l.ModelDate, l.EGMSDate, l.Product,
		l.Country, "adas", l.GeohazType, l.AOIName, l.S1Path, l.ADAType,
	)
	names, err := listDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, strings.TrimSuffix(n, "mm"))
	}
	return out, nil
}

func listDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDataNotFound, dir)
		}
		return nil, fmt.Errorf("locator: list %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
