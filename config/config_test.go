// ABOUTME: Tests for configuration loading and environment overrides
// ABOUTME: Uses temp files and a fake getenv so the real environment is untouched
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"mode":"remote","model":"gpt-4o"}`), 0600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ModeRemote, cfg.Mode)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, StoreMemory, cfg.Store)
}

func TestLoadFileInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0600))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"INSCRM_MODE":     "remote",
		"INSCRM_PROVIDER": "gemini",
		"INSCRM_TIMEOUT":  "3",
		"INSCRM_API_KEY":  "generic",
		"GEMINI_API_KEY":  "gem-key",
		"OPENAI_API_KEY":  "oai-key",
	}
	cfg := DefaultConfig()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, ModeRemote, cfg.Mode)
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "gem-key", cfg.APIKey)

	env["INSCRM_TIMEOUT"] = "1500ms"
	env["INSCRM_PROVIDER"] = "openai"
	cfg.ApplyEnv(func(k string) string { return env[k] })
	assert.Equal(t, 1500*time.Millisecond, cfg.Timeout)
	assert.Equal(t, "oai-key", cfg.APIKey)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Mode = "hybrid"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Store = "postgres"
	assert.Error(t, cfg.Validate())
}

func TestSaveOmitsAPIKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	cfg := DefaultConfig()
	cfg.APIKey = "secret"
	require.NoError(t, cfg.SaveTo(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Empty(t, loaded.APIKey)
	assert.Equal(t, cfg.Timeout, loaded.Timeout)
}
