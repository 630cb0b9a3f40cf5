package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cofre/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, 2, cfg.Resilience.MaxRetries)
	assert.False(t, cfg.Local.Enabled)
	assert.Equal(t, "postgres://postgres:@localhost:5432/cofre?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("LOCAL_MODE", "true")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("SQLITE_FILE", "/var/lib/cofre/data.db")
	t.Setenv("RESILIENCE_INITIAL_BACKOFF", "1s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.Local.Enabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, time.Second, cfg.Resilience.InitialBackoff)
	assert.Equal(t, "/var/lib/cofre/data.db", cfg.SQLitePath("/home/u/.config/cofre"))
	assert.Equal(t, "/home/u/.config/cofre/cofre.log", cfg.LogPath("/home/u/.config/cofre"))
}
