package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"GO_PORT", "LOG_LEVEL", "LOG_PRETTY", "DEV_MODE", "ALLOWED_ASSETS", "ASSET_ALLOWLIST_FILE", "STATUS_SCHEDULE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8001, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
	assert.False(t, cfg.DevMode)
	assert.Empty(t, cfg.AllowedAssets)
	assert.Equal(t, "0 * * * * *", cfg.StatusSchedule)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("GO_PORT", "9100")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "false")
	t.Setenv("DEV_MODE", "true")
	t.Setenv("ALLOWED_ASSETS", " AAPL, ,MSFT ")
	t.Setenv("STATUS_SCHEDULE", "@every 30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, []string{"AAPL", "MSFT"}, cfg.AllowedAssets)
	assert.Equal(t, "@every 30s", cfg.StatusSchedule)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("GO_PORT", "not-a-number")
	t.Setenv("DEV_MODE", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8001, cfg.Port)
	assert.False(t, cfg.DevMode)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	allowlist := filepath.Join(dir, "assets.yaml")
	require.NoError(t, os.WriteFile(allowlist, []byte("assets: []\n"), 0o644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Port: 8001, StatusSchedule: "0 * * * * *"}, false},
		{"valid with allow-list file", Config{Port: 8001, StatusSchedule: "@every 1m", AssetAllowlistFile: allowlist}, false},
		{"port zero", Config{Port: 0, StatusSchedule: "0 * * * * *"}, true},
		{"port too high", Config{Port: 70000, StatusSchedule: "0 * * * * *"}, true},
		{"bad schedule", Config{Port: 8001, StatusSchedule: "every minute"}, true},
		{"missing allow-list file", Config{Port: 8001, StatusSchedule: "0 * * * * *", AssetAllowlistFile: filepath.Join(dir, "missing.yaml")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
