package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Equal(t, 21.0, cfg.Pricing.DefaultVATRate)
	assert.Equal(t, []string{"NL", "NLD", "Netherlands", "Nederland", "The Netherlands"}, cfg.Pricing.DomesticJurisdictions)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.Empty(t, cfg.Redis.Addr)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BACKOFFICE_PRICING_DOMESTIC_JURISDICTIONS", " NL , ,BE ")
	t.Setenv("BACKOFFICE_CORS_ALLOWED_ORIGINS", "https://admin.example.nl")
	t.Setenv("BACKOFFICE_REDIS_ADDR", "localhost:6379")
	t.Setenv("BACKOFFICE_DB_PORT", "6543")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"NL", "BE"}, cfg.Pricing.DomesticJurisdictions)
	assert.Equal(t, []string{"https://admin.example.nl"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 6543, cfg.DB.Port)
}

func TestLoad_PortOverride(t *testing.T) {
	t.Setenv("PORT", "9000")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Port)

	t.Setenv("BACKOFFICE_SERVER_PORT", ":7000")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Port)
}

func TestLoad_RejectsOutOfRangeVATRate(t *testing.T) {
	t.Setenv("BACKOFFICE_PRICING_DEFAULT_VAT_RATE", "150")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	d := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/n?sslmode=disable", d.DSN())
}
