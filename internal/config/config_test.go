package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "general: {}\n"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.General.LogLevel)
	assert.Equal(t, "json", cfg.General.LogFormat)
	assert.True(t, cfg.General.SSLVerification)
	assert.Equal(t, 30*time.Second, cfg.General.RequestTimeout)
	assert.Equal(t, "./data", cfg.Storage.DataDir)
	assert.Equal(t, "servers.json", cfg.Storage.ServersFile)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
general:
  log_level: debug
  log_format: text
  request_timeout: 10s
  ssl_verification: false
storage:
  data_dir: /var/lib/arrdeck
  servers_file: connections.json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.General.LogLevel)
	assert.Equal(t, "text", cfg.General.LogFormat)
	assert.False(t, cfg.General.SSLVerification)
	assert.Equal(t, 10*time.Second, cfg.General.RequestTimeout)
	assert.Equal(t, "/var/lib/arrdeck", cfg.Storage.DataDir)
	assert.Equal(t, "connections.json", cfg.Storage.ServersFile)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.General.LogLevel = "verbose" },
			wantErr: "log_level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.General.LogFormat = "xml" },
			wantErr: "log_format",
		},
		{
			name:    "timeout too small",
			mutate:  func(c *Config) { c.General.RequestTimeout = 10 * time.Millisecond },
			wantErr: "request_timeout",
		},
		{
			name:    "timeout too large",
			mutate:  func(c *Config) { c.General.RequestTimeout = time.Hour },
			wantErr: "request_timeout",
		},
		{
			name:    "empty data dir",
			mutate:  func(c *Config) { c.Storage.DataDir = "" },
			wantErr: "data_dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidConfigPasses(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func validConfig() Config {
	return Config{
		General: GeneralConfig{
			LogLevel:       "info",
			LogFormat:      "json",
			RequestTimeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			DataDir:     "./data",
			ServersFile: "servers.json",
		},
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
