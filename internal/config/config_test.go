package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAPIConfig_FromEnvironment(t *testing.T) {
	t.Setenv("MARKETBOARD_DATABASE_HOST", "db.internal")
	t.Setenv("MARKETBOARD_DATABASE_DBNAME", "marketboard")
	t.Setenv("MARKETBOARD_DATABASE_USER", "mb")
	t.Setenv("MARKETBOARD_DATABASE_PASSWORD", "secret")
	t.Setenv("MARKETBOARD_SERVER_PORT", "8080")
	t.Setenv("MARKETBOARD_REDIS_TTL", "90s")
	t.Setenv("MARKETBOARD_DISPATCH_ENABLED", "false")

	cfg, err := LoadAPIConfig("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "marketboard", cfg.Database.DBName)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 90*time.Second, cfg.Redis.TTL)
	assert.False(t, cfg.Dispatch.Enabled)

	// Defaults fill in whatever the environment left unset
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "MARKET_EVENTS", cfg.NATS.StreamName)
	assert.Equal(t, 5*time.Second, cfg.Upload.Budget)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 20, cfg.RateLimit.RequestsPerSecond)
}

func TestLoadAPIConfig_RequiresDatabase(t *testing.T) {
	t.Setenv("MARKETBOARD_DATABASE_HOST", "")
	t.Setenv("MARKETBOARD_DATABASE_DBNAME", "")

	_, err := LoadAPIConfig("", t.TempDir())
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "mb",
		Password: "secret",
		DBName:   "marketboard",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=mb password=secret dbname=marketboard sslmode=disable",
		cfg.DSN())
}
