package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_USER", "navigator")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "navigator")
	t.Setenv("BACKEND_BASE_URL", "http://backend.local/api/")
	for _, key := range []string{
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
		"SERVER_PORT", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS",
		"BACKEND_TIMEOUT_SECONDS", "SESSION_TTL_MINUTES",
		"HISTORY_RETENTION_DAYS", "HISTORY_PRUNE_SCHEDULE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "http://backend.local/api", cfg.Backend.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, 90*24*time.Hour, cfg.History.Retention)
	assert.Equal(t, "0 3 * * *", cfg.History.PruneSchedule)
	assert.False(t, cfg.RedisEnabled())
	assert.Equal(t, "navigator:secret@tcp(localhost:3306)/navigator?parseTime=true&charset=utf8mb4", cfg.DSN())
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.local, ,http://b.local")
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "3")
	t.Setenv("SESSION_TTL_MINUTES", "15")
	t.Setenv("HISTORY_RETENTION_DAYS", "7")
	t.Setenv("HISTORY_PRUNE_SCHEDULE", "@hourly")

	cfg, err := Load()

	require.NoError(t, err)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, "redis:6380", cfg.RedisAddr())
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 15*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 7*24*time.Hour, cfg.History.Retention)
	assert.Equal(t, "@hourly", cfg.History.PruneSchedule)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "missing DB_HOST", key: "DB_HOST", value: ""},
		{name: "missing DB_PORT", key: "DB_PORT", value: ""},
		{name: "invalid DB_PORT", key: "DB_PORT", value: "abc"},
		{name: "missing DB_PASSWORD", key: "DB_PASSWORD", value: ""},
		{name: "missing BACKEND_BASE_URL", key: "BACKEND_BASE_URL", value: ""},
		{name: "invalid REDIS_PORT", key: "REDIS_PORT", value: "port"},
		{name: "invalid SERVER_PORT", key: "SERVER_PORT", value: "x"},
		{name: "zero backend timeout", key: "BACKEND_TIMEOUT_SECONDS", value: "0"},
		{name: "negative session ttl", key: "SESSION_TTL_MINUTES", value: "-5"},
		{name: "zero retention", key: "HISTORY_RETENTION_DAYS", value: "0"},
		{name: "invalid schedule", key: "HISTORY_PRUNE_SCHEDULE", value: "every day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()

			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
