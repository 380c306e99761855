package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"database_url": "postgres://localhost:5432/expert_finder",
		"chroma_url": "http://localhost:8000",
		"embedding_host": "http://localhost:11434/v1",
		"collection": "linkedin",
		"top_k": 5,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "postgres://localhost:5432/expert_finder", cfg.DatabaseURL)
	assert.Equal(t, "http://localhost:8000", cfg.ChromaURL)
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "linkedin", cfg.Collection)
	assert.Equal(t, 5, cfg.TopK)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_NegativeValues(t *testing.T) {
	cfg := &Config{
		TopK: -1,
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "top_k")
}

func TestValidate_InitialKBelowTopK(t *testing.T) {
	cfg := &Config{
		TopK:     10,
		InitialK: 5,
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "initial_k")
}

func TestValidate_MissingDataDir(t *testing.T) {
	cfg := &Config{
		DataDir: "/nonexistent/profiles",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "data directory not found")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		ChromaURL: "http://localhost:8000",
		TopK:      5,
		InitialK:  20,
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		ChromaURL:      "http://localhost:8000",
		EmbeddingHost:  "http://localhost:11434/v1",
		EmbeddingModel: "nomic-embed-text",
		Collection:     "linkedin",
		TopK:           5,
		InitialK:       20,
	}

	partial := Config{
		Collection: "scholars",
		StatsFile:  "data/stats.json",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "scholars", merged.Collection)
	assert.Equal(t, "data/stats.json", merged.StatsFile)

	// Default values should fill in empty fields
	assert.Equal(t, "http://localhost:8000", merged.ChromaURL)
	assert.Equal(t, "http://localhost:11434/v1", merged.EmbeddingHost)
	assert.Equal(t, "nomic-embed-text", merged.EmbeddingModel)
	assert.Equal(t, 5, merged.TopK)
	assert.Equal(t, 20, merged.InitialK)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{
		Collection: "linkedin",
		StatsFile:  "stats.json",
	}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "linkedin", merged.Collection)
	assert.Equal(t, "stats.json", merged.StatsFile)
}

func TestNewAdminConfig(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$12$abcdefghijklmnopqrstuv")

	cfg, err := NewAdminConfig()
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", cfg.Email)
	assert.Equal(t, "$2a$12$abcdefghijklmnopqrstuv", cfg.PasswordHash)
}

func TestNewAdminConfig_MissingEmail(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "hash")

	cfg, err := NewAdminConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "ADMIN_EMAIL")
}

func TestNewAdminConfig_MissingHash(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	cfg, err := NewAdminConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD_HASH")
}
