package config_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/wealthfolio/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "wealthfolio", cfg.DB.Name)
	assert.True(t, cfg.FX.Fallback.Equal(decimal.NewFromInt(1400)))
	assert.Equal(t, time.Hour, cfg.FX.CacheTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "local", cfg.TUI.UserID)
	assert.Equal(t, "wealthfolio-tui.log", cfg.TUI.LogFile)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FX_FALLBACK_RATE", "1350.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "1350.5", cfg.FX.Fallback.String())
	assert.Len(t, cfg.HTTP.AllowedOrigins, 2)
}

func TestLoad_ZeroFallback(t *testing.T) {
	t.Setenv("FX_FALLBACK_RATE", "0")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestConnectionString(t *testing.T) {
	var cfg config.Config
	cfg.DB.User = "u"
	cfg.DB.Password = "p"
	cfg.DB.Host = "db"
	cfg.DB.Port = 5433
	cfg.DB.Name = "wf"

	assert.Equal(t, "postgres://u:p@db:5433/wf?sslmode=disable", cfg.ConnectionString())
}
