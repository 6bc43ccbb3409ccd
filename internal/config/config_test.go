package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "/api", cfg.Server.BasePath)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiresIn)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "9090"
  mode: release
  base_path: /v1
  allowed_origins:
    - https://app.example.com
database:
  host: db.internal
  port: 5433
  name: community_test
jwt:
  secret: file-secret
  expires_in: 2h
logger:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "/v1", cfg.Server.BasePath)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpiresIn)
	assert.Equal(t, "warn", cfg.Logger.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("DB_HOST", "env-db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_EXPIRES_IN", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "env-db", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.ExpiresIn)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "app",
		Password: "pw",
		Name:     "community",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=community sslmode=disable", d.GetDSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "cache", Port: 6379}
	assert.Equal(t, "cache:6379", r.Addr())
}
