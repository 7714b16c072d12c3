package config_test

import (
	"testing"

	"blog-backend/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := config.LoadDB()

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.EqualValues(t, 1, cfg.TenantID)
	assert.Equal(t, "./uploads", cfg.UploadPath)
	assert.NotEmpty(t, cfg.DatabaseDSN)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("TENANT_ID", "7")
	t.Setenv("UPLOAD_PATH", "/srv/uploads")

	cfg := config.LoadDB()

	assert.Equal(t, "9999", cfg.HTTPPort)
	assert.EqualValues(t, 7, cfg.TenantID)
	assert.Equal(t, "/srv/uploads", cfg.UploadPath)
}

func TestLoadWithSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")

	cfg := config.Load()
	assert.Len(t, cfg.JWTSecret, 32)
}
