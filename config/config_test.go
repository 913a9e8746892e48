package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
auth:
  enabled: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:3500", cfg.Listen)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "./public", cfg.StaticDir)
	assert.Equal(t, "./data/notedeck.db", cfg.Database.Path)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Auth.Enabled)
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
listen: 127.0.0.1:8080
log_level: debug
database:
  path: /tmp/notes.db
cors:
  allowed_origins:
    - https://notes.example.com
    - http://localhost:3000
auth:
  enabled: true
  access_secret: access
  refresh_secret: refresh
  access_token_ttl: 300
  refresh_token_ttl: 86400
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, "/tmp/notes.db", cfg.Database.Path)
	assert.Len(t, cfg.CORS.AllowedOrigins, 2)
	assert.True(t, cfg.Auth.Enabled)
	assert.Equal(t, "access", cfg.Auth.AccessSecret)
	assert.Equal(t, 300, cfg.Auth.AccessTokenTTL)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Listen:   "0.0.0.0:3500",
			Database: &DatabaseConfig{Path: "./data/notedeck.db"},
			CORS:     &CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
			Auth: &AuthConfig{
				Enabled:         true,
				AccessSecret:    "a",
				RefreshSecret:   "r",
				AccessTokenTTL:  900,
				RefreshTokenTTL: 604800,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty listen", mutate: func(c *Config) { c.Listen = "" }, wantErr: true},
		{name: "missing database path", mutate: func(c *Config) { c.Database.Path = "" }, wantErr: true},
		{name: "no allowed origins", mutate: func(c *Config) { c.CORS.AllowedOrigins = nil }, wantErr: true},
		{name: "auth enabled without access secret", mutate: func(c *Config) { c.Auth.AccessSecret = "" }, wantErr: true},
		{name: "auth enabled without refresh secret", mutate: func(c *Config) { c.Auth.RefreshSecret = "" }, wantErr: true},
		{name: "auth enabled with zero ttl", mutate: func(c *Config) { c.Auth.AccessTokenTTL = 0 }, wantErr: true},
		{name: "auth disabled without secrets", mutate: func(c *Config) {
			c.Auth.Enabled = false
			c.Auth.AccessSecret = ""
			c.Auth.RefreshSecret = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
