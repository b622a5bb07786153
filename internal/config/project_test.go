package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProjectConfig(t *testing.T) {
	cfg := DefaultProjectConfig()
	assert.Equal(t, "1.0", cfg.Version)
	assert.Equal(t, []string{"**/*.py", "**/*.js"}, cfg.Include)
	assert.Contains(t, cfg.Exclude, "**/node_modules/**")
}

func TestLoadProjectConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadProjectConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultProjectConfig(), cfg)
}

func TestLoadProjectConfig_ReadsYAML(t *testing.T) {
	dir := t.TempDir()
	content := `version: "1.0"
language: python
include:
  - "src/**/*.py"
model: gemini-1.5-pro
scan_workers: 2
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".lector.yaml"), []byte(content), 0644))

	cfg, err := LoadProjectConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "python", cfg.Language)
	assert.Equal(t, []string{"src/**/*.py"}, cfg.Include)
	assert.Equal(t, "gemini-1.5-pro", cfg.Model)
	assert.Equal(t, 2, cfg.ScanWorkers)
	// Unset keys keep their defaults.
	assert.Contains(t, cfg.Exclude, "**/node_modules/**")
}

func TestLoadProjectConfig_FallsBackToYml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".lector.yml"), []byte("language: javascript\n"), 0644))

	cfg, err := LoadProjectConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "javascript", cfg.Language)
}

func TestSaveProjectConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultProjectConfig()
	cfg.Language = "python"
	cfg.ScanWorkers = 6

	require.NoError(t, SaveProjectConfig(dir, cfg))

	loaded, err := LoadProjectConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestProjectConfig_Merge(t *testing.T) {
	base := DefaultProjectConfig()
	base.Merge(&ProjectConfig{
		Language:    "python",
		Include:     []string{"only/*.py"},
		ScanWorkers: 3,
	})

	assert.Equal(t, "python", base.Language)
	assert.Equal(t, []string{"only/*.py"}, base.Include)
	assert.Equal(t, 3, base.ScanWorkers)
	// Untouched fields survive.
	assert.Contains(t, base.Exclude, "**/node_modules/**")

	base.Merge(nil)
	assert.Equal(t, "python", base.Language)
}
