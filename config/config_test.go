package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_CLIENT_ID", "123456789012345678")
	t.Setenv("DISCORD_CLIENT_SECRET", "super-secret")
	t.Setenv("DISCORD_GUILD_ID", "876543210987654321")
	t.Setenv("DISCORD_ALLOWED_ROLE_IDS", "111,222,333")
	t.Setenv("DISCORD_BOT_TOKEN", "bot-token")
	t.Setenv("TOKEN_SIGNING_SECRET", "hmac-secret")
}

func TestAppConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.False(t, cfg.IsDev)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "portal", cfg.Postgres.Name)
	assert.True(t, cfg.Postgres.RunMigrationsOnStart)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, StoreBackendPostgres, cfg.Store.Backend)
	assert.False(t, cfg.UsesRedisStore())
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "https://discord.com/api", cfg.Auth.Discord.APIBaseURL)
	assert.Equal(t, []string{"111", "222", "333"}, cfg.Auth.Discord.AllowedRoleIDs)
}

func TestAppConfig_MissingRequired(t *testing.T) {
	t.Setenv("DISCORD_CLIENT_ID", "123")
	// The rest of the required settings are absent.

	var cfg AppConfig
	err := env.Parse(&cfg)
	require.Error(t, err)
}

func TestStoreBackend_Parse(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("USER_STORE_BACKEND", "redis")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	assert.Equal(t, StoreBackendRedis, cfg.Store.Backend)
	assert.True(t, cfg.UsesRedisStore())

	t.Setenv("USER_STORE_BACKEND", "mongo")
	err := env.Parse(&AppConfig{})
	require.Error(t, err)
}

func TestAppConfig_DevModeFromNodeEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}

func TestHTTPConfig_SanitizeClampsShutdownTimeout(t *testing.T) {
	cfg := HTTPConfig{ShutdownTimeout: 5 * time.Millisecond}
	cfg.Sanitize()
	assert.Equal(t, time.Second, cfg.ShutdownTimeout)
}
