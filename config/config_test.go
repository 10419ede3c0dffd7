package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"ENV", "DB_DRIVER", "SERVER_PORT", "MONGODB_DATABASE", "SESSION_TTL_HOURS", "EVENTS_CHANNEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	cfg := LoadConfig()

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, DriverMongo, cfg.DBDriver)
	assert.True(t, cfg.Production())
	assert.Equal(t, "easytech", cfg.Mongo.Database)
	assert.Equal(t, 24, cfg.Session.TTLHours)
	assert.Equal(t, "site-events", cfg.MQ.Channel)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_SSL", "true")
	t.Setenv("SESSION_STORE", "REDIS")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ENV", "production")

	cfg := LoadConfig()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.True(t, cfg.Database.UseSSL)
	assert.Equal(t, "redis", cfg.Session.Store)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.Production())
}

func TestGetEnvIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 7, getEnvInt("SOME_INT", 7))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("FLAG_A", "yes")
	t.Setenv("FLAG_B", "off")
	t.Setenv("FLAG_C", "maybe")

	assert.True(t, getEnvBool("FLAG_A", false))
	assert.False(t, getEnvBool("FLAG_B", true))
	assert.True(t, getEnvBool("FLAG_C", true))
	assert.False(t, getEnvBool("FLAG_MISSING", false))
}
