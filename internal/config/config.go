// Package config loads the viewer configuration. The schema uses
// pointer-optional fields so a partial JSON file only overrides what it
// names and the Get* accessors supply defaults for the rest.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/geohaz-data/ada.viewer/internal/locator"
)

// DefaultConfigPath is where the server looks for configuration when no
// -config flag is given.
const DefaultConfigPath = "config/viewer.json"

// ViewerConfig is the root configuration. Fields omitted from the JSON
// file retain their defaults, so partial configs are safe.
type ViewerConfig struct {
	ListenAddr    *string `json:"listen_addr,omitempty"`
	DataRoot      *string `json:"data_root,omitempty"`
	ClassifierURL *string `json:"classifier_url,omitempty"`

	// DefaultLocator selects the geography loaded at startup. When nil the
	// server starts empty and waits for a POST /api/dataset.
	DefaultLocator *locator.Locator `json:"default_locator,omitempty"`
}

// Empty returns a ViewerConfig with all fields unset.
func Empty() *ViewerConfig {
	return &ViewerConfig{}
}

// Load reads a ViewerConfig from a JSON file. The file must have a .json
// extension and stay under the max file size.
func Load(path string) (*ViewerConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *ViewerConfig) Validate() error {
	if c.ListenAddr != nil && *c.ListenAddr == "" {
		return fmt.Errorf("listen_addr must not be empty when set")
	}
	if c.ClassifierURL != nil {
		u, err := url.Parse(*c.ClassifierURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid classifier_url %q", *c.ClassifierURL)
		}
	}
	if c.DefaultLocator != nil {
		if err := c.DefaultLocator.Validate(); err != nil {
			return fmt.Errorf("invalid default_locator: %w", err)
		}
	}
	return nil
}

// GetListenAddr returns the listen_addr value or the default.
func (c *ViewerConfig) GetListenAddr() string {
	if c.ListenAddr == nil {
		return ":8080"
	}
	return *c.ListenAddr
}

// GetDataRoot returns the data_root value or the default.
func (c *ViewerConfig) GetDataRoot() string {
	if c.DataRoot == nil {
		return "data"
	}
	return *c.DataRoot
}

// GetClassifierURL returns the classifier_url value or the default.
func (c *ViewerConfig) GetClassifierURL() string {
	if c.ClassifierURL == nil {
		return "http://localhost:8700/fit"
	}
	return *c.ClassifierURL
}
