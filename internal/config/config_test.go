// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "pl", cfg.Catalog.Language)
	assert.True(t, cfg.Description.AddBacklink)
	assert.Equal(t, 3001, cfg.Server.Port)
}

func TestLoadFromBytes_OverridesDefaults(t *testing.T) {
	yamlData := `
server:
  port: 8080
catalog:
  language: cz
description:
  add_backlink: false
pipeline:
  request_timeout: 5s
  max_concurrency: 3
`
	cfg, err := LoadFromBytes([]byte(yamlData))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "cz", cfg.Catalog.Language)
	assert.False(t, cfg.Description.AddBacklink)
	assert.Equal(t, 5*time.Second, cfg.Pipeline.RequestTimeout)
	assert.Equal(t, 3, cfg.Pipeline.MaxConcurrency)
	// untouched keys keep their defaults
	assert.Equal(t, DefaultBaseURL, cfg.Catalog.BaseURL)
	assert.Equal(t, ".teaser_title__hDeCG", cfg.Catalog.Selectors.Title)
}

func TestLoadFromBytes_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_CATALOG_URL", "http://127.0.0.1:9999")

	cfg, err := LoadFromBytes([]byte("catalog:\n  base_url: ${TEST_CATALOG_URL}\n  language: ${TEST_UNSET_LANGUAGE:-cz}\n"))
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.Catalog.BaseURL)
	assert.Equal(t, "cz", cfg.Catalog.Language)
}

func TestLoadFromBytes_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad language", "catalog:\n  language: de\n", "catalog.language"},
		{"bad port", "server:\n  port: 70000\n", "server.port"},
		{"relative base url", "catalog:\n  base_url: /pl\n", "catalog.base_url"},
		{"empty card selector", "catalog:\n  selectors:\n    card: \"\"\n", "catalog.selectors.card"},
		{"negative concurrency", "pipeline:\n  max_concurrency: -1\n", "pipeline.max_concurrency"},
		{"malformed yaml", "server: [", "failed to parse YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PORT":                              "4000",
		"LANGUAGE":                          "CZ",
		"ADD_AUDIOTEKA_LINK_TO_DESCRIPTION": "False",
		"LOG_LEVEL":                         "debug",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg, lookup))

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "cz", cfg.Catalog.Language)
	assert.False(t, cfg.Description.AddBacklink)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestApplyEnv_BacklinkOnlyTrueEnables(t *testing.T) {
	for value, want := range map[string]bool{"true": true, "TRUE": true, "yes": false, "1": false} {
		cfg := Default()
		cfg.Description.AddBacklink = !want
		err := ApplyEnv(cfg, func(key string) (string, bool) {
			if key == "ADD_AUDIOTEKA_LINK_TO_DESCRIPTION" {
				return value, true
			}
			return "", false
		})
		require.NoError(t, err)
		assert.Equal(t, want, cfg.Description.AddBacklink, value)
	}
}

func TestApplyEnv_InvalidPort(t *testing.T) {
	err := ApplyEnv(Default(), func(key string) (string, bool) {
		if key == "PORT" {
			return "abc", true
		}
		return "", false
	})
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	for _, key := range []string{"PORT", "LANGUAGE", "ADD_AUDIOTEKA_LINK_TO_DESCRIPTION", "AUDIOTEKA_BASE_URL", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_IgnoresForeignLanguageEnv(t *testing.T) {
	for _, key := range []string{"PORT", "ADD_AUDIOTEKA_LINK_TO_DESCRIPTION", "AUDIOTEKA_BASE_URL", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	for _, value := range []string{"en_US:en", "de", "C"} {
		t.Setenv("LANGUAGE", value)
		cfg, err := Load("")
		require.NoError(t, err, value)
		assert.Equal(t, "pl", cfg.Catalog.Language, value)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog:\n  language: cz\n"), 0o644))

	t.Setenv("LANGUAGE", "en_US:en")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "cz", cfg.Catalog.Language, "file value survives a foreign LANGUAGE")

	t.Setenv("LANGUAGE", " CZ ")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "cz", cfg.Catalog.Language)
}

func TestLoadFromReader(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader("fetch:\n  requests_per_second: 2.5\n"))
	require.NoError(t, err)
	assert.InDelta(t, 2.5, cfg.Fetch.RequestsPerSecond, 0.0001)

	_, err = LoadFromReader(nil)
	assert.Error(t, err)
}
