package main

import (
	"fmt"
	"os"

	"github.com/jonathan/expert-finder/internal/config"
)

// defaultConfig holds the fallback values applied when neither a config file
// nor a flag provides a setting.
func defaultConfig() config.Config {
	return config.Config{
		DataDir:        "data/raw",
		StatsFile:      "data/credibility_stats.json",
		ChromaURL:      "http://localhost:8000",
		Collection:     "linkedin",
		EmbeddingHost:  "http://localhost:8080/v1",
		EmbeddingModel: "all-MiniLM-L6-v2",
		TopK:           5,
		InitialK:       20,
	}
}

// loadMergedConfig loads the optional config file and layers defaults under
// it. Flags are applied on top by the callers.
func loadMergedConfig(configPath string) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	return cfg.MergeWithDefaults(defaultConfig()), nil
}

// requireDatabaseURL returns the database URL from the given value or the
// DATABASE_URL environment variable.
func requireDatabaseURL(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url, nil
	}
	return "", fmt.Errorf("database URL is required (--db-url flag or DATABASE_URL environment variable)")
}

// requireAPIKey returns the Gemini API key from the given value or the
// GEMINI_API_KEY environment variable.
func requireAPIKey(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("API key is required (--api-key flag or GEMINI_API_KEY environment variable)")
}
