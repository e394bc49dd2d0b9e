// Package config loads the optional someline.yaml settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the settings file looked up when none is given.
const DefaultPath = "someline.yaml"

// Config holds export and preview settings.
type Config struct {
	// Resolution is the mesh cell size of exported models in mm.
	Resolution float64 `yaml:"resolution"`
	// Material compensates exported models for shrinkage.
	Material string `yaml:"material"`
	// Workers bounds the number of models exported at once.
	Workers int `yaml:"workers"`
	// Output is the export directory. Empty means export/<project>.
	Output  string        `yaml:"output"`
	Preview PreviewConfig `yaml:"preview"`
}

// PreviewConfig controls the preview image.
type PreviewConfig struct {
	Resolution float64 `yaml:"resolution"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	// Simplify is the fraction of triangles kept in previews, 1 keeps all.
	Simplify float64 `yaml:"simplify"`
}

// Default returns the configuration used without a settings file.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses a settings file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadWithDefaults reads a settings file, applies default values and
// validates the result. An empty path reads DefaultPath and falls back to
// the defaults if that file does not exist.
func LoadWithDefaults(path string) (*Config, error) {
	optional := path == ""
	if optional {
		path = DefaultPath
	}
	cfg, err := Load(path)
	switch {
	case optional && errors.Is(err, fs.ErrNotExist):
		cfg = &Config{}
	case err != nil:
		return nil, err
	}

	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
