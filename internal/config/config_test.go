package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "DB_DRIVER", "DB_MAX_CONNS", "JWT_TTL", "CATALOG_FALLBACK_ENABLED", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 10, cfg.DB.MaxConns)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.True(t, cfg.FallbackEnabled)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "Production")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("CATALOG_FALLBACK_ENABLED", "false")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg := Load()
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, 30*time.Minute, cfg.JWT.TTL)
	assert.False(t, cfg.FallbackEnabled)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)

	// malformed values keep the default
	t.Setenv("DB_MAX_CONNS", "lots")
	assert.Equal(t, 10, Load().DB.MaxConns)
}
