package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "studio")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "studio")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "development", cfg.Env)
	require.Equal(t, "8000", cfg.Port)
	require.Equal(t, 30, cfg.AccessTTLMin)
	require.Equal(t, 7, cfg.RefreshTTLDays)
	require.Equal(t, int64(10*1024*1024), cfg.Upload.MaxFileSize)
	require.Equal(t, []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}, cfg.Upload.AllowedExtensions)
	require.Equal(t, "local", cfg.Storage.Driver)
	require.False(t, cfg.RevokeSessionsOnPasswordChange)
	require.Equal(t, []string{"*"}, cfg.CORSOrigins())
}

func TestLoad_MissingRequiredReportsAll(t *testing.T) {
	t.Setenv("DB_USER", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "studio")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "DB_USER")
	require.Contains(t, err.Error(), "DB_HOST")
	require.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_InvalidInt(t *testing.T) {
	setRequired(t)
	t.Setenv("BCRYPT_COST", "twelve")

	_, err := Load()
	require.ErrorContains(t, err, "BCRYPT_COST")
}

func TestLoad_ProductionCORS(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("ALLOWED_HOSTS", "https://studio.example, https://admin.studio.example")
	t.Setenv("ALLOWED_EXTENSIONS", "PNG,.Jpg")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.IsProduction())
	require.Equal(t, []string{"https://studio.example", "https://admin.studio.example"}, cfg.CORSOrigins())
	require.Equal(t, []string{".png", ".jpg"}, cfg.Upload.AllowedExtensions)
}

func TestLoad_MinioNeedsEndpoint(t *testing.T) {
	setRequired(t)
	t.Setenv("STORAGE_DRIVER", "minio")
	t.Setenv("MINIO_ENDPOINT", "")

	_, err := Load()
	require.ErrorContains(t, err, "MINIO_ENDPOINT")
}

func TestLoadRateLimitConfig_Clamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	require.Equal(t, 1, cfg.Capacity)
	require.Equal(t, 2*time.Second, cfg.RefillInterval)
	require.Equal(t, 10*time.Second, cfg.TTL)
}

func TestLoadCacheConfig_Methods(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	cfg := LoadCacheConfig()
	require.True(t, cfg.Methods["GET"])
	require.True(t, cfg.Methods["HEAD"])
	require.False(t, cfg.Methods["POST"])
}
