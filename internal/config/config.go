// Package config provides configuration loading and validation for the server
// and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the CLI configuration loadable from a JSON file. All fields are
// optional; missing values fall back to defaults or environment variables.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Client (the import CLI talks to a running server)
	BaseURL   string `json:"base_url,omitempty"`   // Server base URL
	AuthToken string `json:"auth_token,omitempty"` // Bearer token for API calls

	// Extraction
	GeminiAPIKey string `json:"gemini_api_key,omitempty"` // Resume parse model key
}

// Load reads configuration from a JSON file, resolving relative paths against
// the current directory.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks field values without enforcing presence; required fields are
// enforced by the commands that need them.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	return nil
}

// MergeWithDefaults fills empty fields from defaults, returning a new Config.
// CLI flags always win over config file values over defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.AuthToken == "" {
		result.AuthToken = defaults.AuthToken
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}

	return result
}

// FromEnv builds defaults from environment variables.
func FromEnv() Config {
	return Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		BaseURL:      os.Getenv("STAFFDESK_URL"),
		AuthToken:    os.Getenv("STAFFDESK_TOKEN"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
	}
}
