package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	t.Setenv("MENU_SOURCE", "FoodPro")
	t.Setenv("MENU_API_URL", "http://menu.local/api/")
	t.Setenv("MENU_CACHE_TTL", "2m")
	t.Setenv("DINING_HALLS", "Worcester, Franklin")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "postgres", cfg.DBPassword)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://cache:6379/0", cfg.RedisURL)
	assert.Equal(t, MenuSourceFoodPro, cfg.MenuSource)
	assert.Equal(t, "http://menu.local/api", cfg.MenuAPIURL)
	assert.Equal(t, 2*time.Minute, cfg.MenuCacheTTL)
	assert.Equal(t, []string{"Worcester", "Franklin"}, cfg.Halls)
}

func TestLoadConfigWithDefaults(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
	for _, key := range []string{"DB_DRIVER", "DB_HOST", "DB_PASSWORD", "JWT_SECRET", "REDIS_URL", "MENU_SOURCE", "DINING_HALLS", "MENU_CACHE_TTL"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, MenuSourceMassPath, cfg.MenuSource)
	assert.Equal(t, 15*time.Minute, cfg.MenuCacheTTL)
	assert.Equal(t, DefaultHalls, cfg.Halls)
	assert.Equal(t, "", cfg.JWTSecret)
}

func TestLoadConfigReadsSecretFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-file\n"), 0o600))

	t.Setenv("CI", "")
	t.Setenv("ENV", "development")
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWTSecret)
}

func TestLoadConfigDevelopmentRequiresJWTSecret(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "development")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestValidateConfigListsEveryProblem(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")

	cfg := defaults()
	cfg.DBDriver = "mysql"
	cfg.MenuSource = "scraper"
	cfg.Halls = nil

	err := ValidateConfig(cfg)
	require.Error(t, err)
	msg := err.Error()
	assert.True(t, strings.Contains(msg, "DB_DRIVER"))
	assert.True(t, strings.Contains(msg, "MENU_SOURCE"))
	assert.True(t, strings.Contains(msg, "DINING_HALLS"))
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())

	t.Setenv("CI", "")
	t.Setenv("ENV", "production")
	assert.True(t, IsProduction())

	t.Setenv("ENV", "")
	assert.True(t, IsDevelopment())
}

func TestDSN(t *testing.T) {
	cfg := defaults()
	cfg.DBPassword = "pw"
	assert.Equal(t, "host=localhost user=postgres password=pw dbname=masspath port=5432 sslmode=disable", cfg.DSN())
	assert.Equal(t, "postgres://postgres:pw@localhost:5432/masspath?sslmode=disable", cfg.MigrationURL())
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestPresignedURLs(t *testing.T) {
	s3cfg := NewStaticS3Config("us-east-1", "meal-photos", "AKIDEXAMPLE", "secret")

	put, err := s3cfg.PresignPut(context.Background(), "meals/u1/m1.jpg", "image/jpeg", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, put, "meal-photos")
	assert.Contains(t, put, "meals/u1/m1.jpg")
	assert.Contains(t, put, "X-Amz-Expires=900")

	get, err := s3cfg.GeneratePresignedURL(context.Background(), "meals/u1/m1.jpg", time.Minute)
	require.NoError(t, err)
	assert.Contains(t, get, "X-Amz-Signature=")
}

func TestGinMode(t *testing.T) {
	assert.Equal(t, "release", Production.GinMode())
	assert.Equal(t, "test", CI.GinMode())
	assert.Equal(t, "debug", Development.GinMode())
}
