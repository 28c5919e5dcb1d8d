package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "trips.db", cfg.DBPath)
	assert.Equal(t, "web/templates", cfg.TemplateDir)
	assert.False(t, cfg.SecureCookie)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/override.db")
	t.Setenv("SECURE_COOKIE", "true")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/tmp/override.db", cfg.DBPath)
	assert.True(t, cfg.SecureCookie)
}

func TestLoad_InvalidBoolFallsBack(t *testing.T) {
	t.Setenv("SECURE_COOKIE", "yes please")

	cfg := Load()
	assert.False(t, cfg.SecureCookie)
}
