package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves the test into an empty directory so no stray .env is loaded.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("DATABASE_DSN", "postgres://localhost/scooters")
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 10, cfg.DBMaxOpenConns)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 3, cfg.StoreMaxRetries)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 30*time.Minute, cfg.CodeTTL)
	assert.Equal(t, 5, cfg.CodeMaxAttempts)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.True(t, cfg.SortNearby)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	chdirTemp(t)
	setRequired(t)
	t.Setenv("ENV", "production")
	t.Setenv("TOKEN_TTL", "0")
	t.Setenv("CODE_TTL", "90s")
	t.Setenv("STORE_TIMEOUT", "2")
	t.Setenv("SORT_NEARBY", "false")
	t.Setenv("RATE_LIMIT_RPS", "0.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Zero(t, cfg.TokenTTL)
	assert.Equal(t, 90*time.Second, cfg.CodeTTL)
	assert.Equal(t, 2*time.Minute, cfg.StoreTimeout)
	assert.False(t, cfg.SortNearby)
	assert.InDelta(t, 0.5, cfg.RateLimitRPS, 1e-9)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := chdirTemp(t)
	content := "JWT_SECRET=from-file\nREDIS_ADDR=redis:6379\nDB_DRIVER=memory\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("REDIS_ADDR")
		os.Unsetenv("DB_DRIVER")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, DriverMemory, cfg.DBDriver)
	assert.Empty(t, cfg.DatabaseDSN)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{"JWT_SECRET": "", "REDIS_ADDR": "r:1", "DATABASE_DSN": "dsn"}},
		{"missing redis", map[string]string{"JWT_SECRET": "s", "REDIS_ADDR": "", "DATABASE_DSN": "dsn"}},
		{"missing dsn", map[string]string{"JWT_SECRET": "s", "REDIS_ADDR": "r:1", "DATABASE_DSN": ""}},
		{"bad driver", map[string]string{"JWT_SECRET": "s", "REDIS_ADDR": "r:1", "DB_DRIVER": "mongo"}},
		{"bad int", map[string]string{"JWT_SECRET": "s", "REDIS_ADDR": "r:1", "DATABASE_DSN": "dsn", "CODE_MAX_ATTEMPTS": "five"}},
		{"bad duration", map[string]string{"JWT_SECRET": "s", "REDIS_ADDR": "r:1", "DATABASE_DSN": "dsn", "TOKEN_TTL": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
