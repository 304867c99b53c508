package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "viewer.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `{"listen_addr": ":9090"}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.GetListenAddr())
	assert.Equal(t, "data", cfg.GetDataRoot())
	assert.Equal(t, "http://localhost:8700/fit", cfg.GetClassifierURL())
	assert.Nil(t, cfg.DefaultLocator)
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `{
		"listen_addr": ":9090",
		"data_root": "/srv/ada",
		"classifier_url": "http://classifier:8700/fit",
		"default_locator": {
			"model_date": "20250608",
			"egms_date": "20182022",
			"product": "basic",
			"country": "uk",
			"geohaz_type": "mining",
			"aoi_name": "testfield_27700",
			"s1_path": "asc",
			"ada_type": "avgvel+",
			"vel_threshold": "5.0"
		}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/ada", cfg.GetDataRoot())
	require.NotNil(t, cfg.DefaultLocator)
	assert.Equal(t, "testfield_27700", cfg.DefaultLocator.AOIName)
}

func TestLoadRejectsNonJSONExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	_, err := Load(path)
	assert.ErrorContains(t, err, ".json extension")
}

func TestValidateRejectsBadClassifierURL(t *testing.T) {
	path := writeConfig(t, `{"classifier_url": "not a url"}`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "classifier_url")
}

func TestValidateRejectsIncompleteLocator(t *testing.T) {
	path := writeConfig(t, `{"default_locator": {"country": "uk"}}`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "default_locator")
}
