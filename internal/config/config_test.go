// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/uspto-lookup/internal/display"
	"github.com/pdiddy/uspto-lookup/internal/uspto"
)

// isolate points the search paths at empty temp directories.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(dir)
	return dir
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, Name+".yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Empty(t, cfg.File)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, ".secrets", cfg.SecretsDir)
	assert.Equal(t, uspto.DefaultEndpoint, cfg.API.Endpoint)
	assert.Equal(t, display.DefaultFeesBaseURL, cfg.API.FeesBaseURL)
	assert.Equal(t, time.Duration(0), cfg.API.Timeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "none", cfg.Telemetry.Exporter)
	assert.Equal(t, "uspto-lookup", cfg.Telemetry.ServiceName)
}

func TestLoadFileInWorkingDir(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `
api:
  timeout: 15s
  fees_base_url: https://fees.example.test
log:
  level: debug
telemetry:
  exporter: stdout
`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, "https://fees.example.test", cfg.API.FeesBaseURL)
	assert.Equal(t, uspto.DefaultEndpoint, cfg.API.Endpoint, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "stdout", cfg.Telemetry.Exporter)
	assert.Equal(t, Name+".yaml", filepath.Base(cfg.File))
}

func TestLoadExplicitPath(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), "log:\n  level: error\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, path, cfg.File)
}

func TestLoadExplicitPathMissing(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "log:\n  level: info\n")
	t.Setenv("USPTO_LOOKUP_API_KEY", "env-key")
	t.Setenv("USPTO_LOOKUP_LOG_LEVEL", "debug")
	t.Setenv("USPTO_LOOKUP_API_ENDPOINT", "http://localhost:9999/search")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "debug", cfg.Log.Level, "env wins over file")
	assert.Equal(t, "http://localhost:9999/search", cfg.API.Endpoint)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad log level", "log:\n  level: verbose\n"},
		{"bad exporter", "telemetry:\n  exporter: otlp\n"},
		{"bad endpoint", "api:\n  endpoint: not a url\n"},
		{"negative timeout", "api:\n  timeout: -5s\n"},
		{"unknown key", "colour: blue\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			writeConfig(t, dir, tt.body)
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}
