package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	assert.Equal(t, "data/raw", cfg.DataDir)
	assert.Equal(t, "data/credibility_stats.json", cfg.StatsFile)
	assert.Equal(t, "linkedin", cfg.Collection)
	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, 20, cfg.InitialK)
}

func TestLoadMergedConfig_NoFile(t *testing.T) {
	cfg, err := loadMergedConfig("")
	require.NoError(t, err)

	// With no file every setting comes from the defaults.
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadMergedConfig_FileOverridesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.json")
	content := `{"data_dir": "custom/exports", "top_k": 10}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := loadMergedConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "custom/exports", cfg.DataDir)
	assert.Equal(t, 10, cfg.TopK)
	// Settings the file does not mention keep their defaults.
	assert.Equal(t, "linkedin", cfg.Collection)
	assert.Equal(t, 20, cfg.InitialK)
}

func TestLoadMergedConfig_BadFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := loadMergedConfig(path)
	assert.Error(t, err)
}

func TestRequireDatabaseURL(t *testing.T) {
	t.Run("flag wins over environment", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://env")

		url, err := requireDatabaseURL("postgres://flag")
		require.NoError(t, err)
		assert.Equal(t, "postgres://flag", url)
	})

	t.Run("falls back to environment", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://env")

		url, err := requireDatabaseURL("")
		require.NoError(t, err)
		assert.Equal(t, "postgres://env", url)
	})

	t.Run("errors when neither is set", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")

		_, err := requireDatabaseURL("")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "DATABASE_URL")
	})
}

func TestRequireAPIKey(t *testing.T) {
	t.Run("flag wins over environment", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "env-key")

		key, err := requireAPIKey("flag-key")
		require.NoError(t, err)
		assert.Equal(t, "flag-key", key)
	})

	t.Run("falls back to environment", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "env-key")

		key, err := requireAPIKey("")
		require.NoError(t, err)
		assert.Equal(t, "env-key", key)
	})

	t.Run("errors when neither is set", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")

		_, err := requireAPIKey("")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	})
}
