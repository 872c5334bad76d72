package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "recipes")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "recipebook")
	t.Setenv("DB_SSL_MODE", "disable")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "recipes", cfg.DBUser)
	assert.Equal(t, "secret", cfg.DBPassword)
	assert.Equal(t, "recipebook", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
}

func TestLoadConfigWithDefaults(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("JWT_SECRET", "test-secret")
	for _, key := range []string{"SERVER_PORT", "DB_HOST", "DB_PORT", "DB_NAME", "REDIS_HOST", "REDIS_PORT", "S3_BUCKET_NAME"} {
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "recipebook", cfg.DBName)
	assert.Equal(t, "recipebook-images", cfg.S3Bucket)
}

func TestLoadConfigMissingSecret(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "localhost", DBPort: "5432",
		DBUser: "u", DBPassword: "p", DBName: "recipebook", DBSSLMode: "disable",
	}
	assert.Equal(t, "host=localhost port=5432 user=u password=p dbname=recipebook sslmode=disable", cfg.DSN())
}
