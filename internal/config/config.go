// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	DataDir   string `json:"data_dir,omitempty"`   // Directory of raw profile JSON files
	StatsFile string `json:"stats_file,omitempty"` // Path to the credibility stats file

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	ChromaURL   string `json:"chroma_url,omitempty"`   // Chroma server URL
	Collection  string `json:"collection,omitempty"`   // Vector collection name

	// Embeddings
	EmbeddingHost  string `json:"embedding_host,omitempty"`  // OpenAI-compatible embedding endpoint
	EmbeddingModel string `json:"embedding_model,omitempty"` // Embedding model name

	// Search
	TopK     int `json:"top_k,omitempty"`     // Results returned to the caller
	InitialK int `json:"initial_k,omitempty"` // Candidates retrieved before reranking

	// Behavior
	APIKey     string `json:"api_key,omitempty"`     // Gemini API key
	UseBrowser bool   `json:"use_browser,omitempty"` // Use headless browser for SPA author pages
	Verbose    bool   `json:"verbose,omitempty"`     // Print detailed debug information
	ServerAddr string `json:"server_addr,omitempty"` // HTTP listen address
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.TopK < 0 {
		return fmt.Errorf("config error: 'top_k' must be non-negative")
	}
	if c.InitialK < 0 {
		return fmt.Errorf("config error: 'initial_k' must be non-negative")
	}
	if c.TopK > 0 && c.InitialK > 0 && c.InitialK < c.TopK {
		return fmt.Errorf("config error: 'initial_k' must be at least 'top_k'")
	}

	// Validate paths exist (if specified)
	if c.DataDir != "" {
		if _, err := os.Stat(c.DataDir); os.IsNotExist(err) {
			return fmt.Errorf("config error: data directory not found: %s", c.DataDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.StatsFile == "" {
		result.StatsFile = defaults.StatsFile
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ChromaURL == "" {
		result.ChromaURL = defaults.ChromaURL
	}
	if result.Collection == "" {
		result.Collection = defaults.Collection
	}
	if result.EmbeddingHost == "" {
		result.EmbeddingHost = defaults.EmbeddingHost
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.ServerAddr == "" {
		result.ServerAddr = defaults.ServerAddr
	}

	// Int fields: use default if zero
	if result.TopK == 0 {
		result.TopK = defaults.TopK
	}
	if result.InitialK == 0 {
		result.InitialK = defaults.InitialK
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
