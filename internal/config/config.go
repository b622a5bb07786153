// Package config loads process configuration from the environment and
// per-project settings from .lector.yaml files.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	// Server
	Port int
	Env  string

	// Logging
	LogLevel string

	// Gemini
	GeminiAPIKey string
	GeminiModel  string
	LLMCache     string

	// Scanning
	WorkspaceDir string
	ScanWorkers  int

	// GitHub (optional, private clones)
	GitHubToken string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnvInt("PORT", 8080),
		Env:          getEnv("ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		LLMCache:     getEnv("LLM_CACHE", "none"),
		WorkspaceDir: getEnv("WORKSPACE_DIR", "/tmp/lector-workspaces"),
		ScanWorkers:  getEnvInt("SCAN_WORKERS", 4),
		GitHubToken:  getEnv("GITHUB_TOKEN", ""),
	}

	return cfg, nil
}

// Validate checks invariants that hold regardless of which components get
// constructed. The Gemini key is checked lazily by the llm client, not
// here.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.ScanWorkers < 1 {
		return fmt.Errorf("SCAN_WORKERS must be at least 1, got %d", c.ScanWorkers)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
