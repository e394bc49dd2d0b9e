package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "someline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
resolution: 0.2
material: PLA
workers: 3
output: out
preview:
  width: 800
  simplify: 0.5
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.2, cfg.Resolution)
	assert.Equal(t, "PLA", cfg.Material)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "out", cfg.Output)
	assert.Equal(t, 800, cfg.Preview.Width)
	assert.Zero(t, cfg.Preview.Height)
}

func TestLoadWithDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := LoadWithDefaults(writeConfig(t, "preview:\n  height: 300\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultResolution, cfg.Resolution)
	assert.Equal(t, DefaultMaterial, cfg.Material)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, DefaultPreviewWidth, cfg.Preview.Width)
	assert.Equal(t, 300, cfg.Preview.Height)
	assert.Equal(t, float64(DefaultPreviewSimplify), cfg.Preview.Simplify)
}

func TestLoadWithDefaults_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := LoadWithDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err, "an explicit path must exist")
}

func TestLoadWithDefaults_NoDefaultFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadWithDefaults("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()
	_, err := Load(writeConfig(t, "resolution: [1, 2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		edit  func(*Config)
		field string
	}{
		{"resolution", func(c *Config) { c.Resolution = -1 }, "resolution"},
		{"workers", func(c *Config) { c.Workers = -2 }, "workers"},
		{"material", func(c *Config) { c.Material = "wood" }, "material"},
		{"preview resolution", func(c *Config) { c.Preview.Resolution = -0.5 }, "preview.resolution"},
		{"preview size", func(c *Config) { c.Preview.Width = -10 }, "preview"},
		{"simplify", func(c *Config) { c.Preview.Simplify = 2 }, "preview.simplify"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.edit(cfg)
			err := Validate(cfg)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
	assert.NoError(t, Validate(Default()))
}
