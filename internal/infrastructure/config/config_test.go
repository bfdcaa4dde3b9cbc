package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.SnapshotBackend)
	assert.Equal(t, "lumina.json", cfg.SnapshotFile)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 30*time.Second, cfg.HTTPReadTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.AssistantEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SNAPSHOT_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://cache:6379/2")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.SnapshotBackend)
	assert.Equal(t, "redis://cache:6379/2", cfg.RedisURL)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.AssistantEnabled())
}
