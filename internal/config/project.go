package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig represents a .lector.yaml file in a scanned project.
type ProjectConfig struct {
	Version string `yaml:"version"`

	// Language hint applied when file extension detection is ambiguous.
	Language string `yaml:"language,omitempty"`

	// File patterns for the scan walker.
	Include []string `yaml:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`

	// Model override for ask/explain prompts issued from this project.
	Model string `yaml:"model,omitempty"`

	// Scan worker count override.
	ScanWorkers int `yaml:"scan_workers,omitempty"`
}

// DefaultProjectConfig returns the defaults applied when no project file
// exists.
func DefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Version: "1.0",
		Include: []string{"**/*.py", "**/*.js"},
		Exclude: []string{
			"**/node_modules/**",
			"**/__pycache__/**",
			"**/.git/**",
		},
	}
}

// LoadProjectConfig loads .lector.yaml (fallback .lector.yml) from the
// given directory, returning defaults when neither exists.
func LoadProjectConfig(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ".lector.yaml")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configPath = filepath.Join(dir, ".lector.yml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return DefaultProjectConfig(), nil
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg := DefaultProjectConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveProjectConfig writes the config to .lector.yaml in dir.
func SaveProjectConfig(dir string, cfg *ProjectConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, ".lector.yaml"), data, 0644)
}

// Merge applies non-zero overrides from another config, typically built
// from CLI flags.
func (c *ProjectConfig) Merge(other *ProjectConfig) {
	if other == nil {
		return
	}

	if other.Language != "" {
		c.Language = other.Language
	}
	if len(other.Include) > 0 {
		c.Include = other.Include
	}
	if len(other.Exclude) > 0 {
		c.Exclude = other.Exclude
	}
	if other.Model != "" {
		c.Model = other.Model
	}
	if other.ScanWorkers != 0 {
		c.ScanWorkers = other.ScanWorkers
	}
}
