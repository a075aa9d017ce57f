package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com/v1/")
	t.Setenv("JWT_SECRET_KEY", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1", cfg.APIBaseURL)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, 30*time.Minute, cfg.WizardTTL)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "http://localhost:8080", cfg.PublicURL)
	assert.Empty(t, cfg.RealtimeURL)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("ALLOWED_ORIGINS", "https://admin.example.com, https://staff.example.com,")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PUBLIC_URL", "https://golf.example.com/")
	t.Setenv("REALTIME_URL", "wss://api.example.com/realtime")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, []string{"https://admin.example.com", "https://staff.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "https://golf.example.com", cfg.PublicURL)
	assert.Equal(t, "wss://api.example.com/realtime", cfg.RealtimeURL)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]map[string]string{
		"missing api url": {"API_BASE_URL": ""},
		"relative url":    {"API_BASE_URL": "/api"},
		"missing jwt":     {"JWT_SECRET_KEY": ""},
		"bad port":        {"SERVER_PORT": "http"},
		"port range":      {"SERVER_PORT": "70000"},
		"bad timeout":     {"API_TIMEOUT": "soon"},
		"negative ttl":    {"WIZARD_TTL": "-1m"},
		"bad level":       {"LOG_LEVEL": "loud"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			setRequired(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
