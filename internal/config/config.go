package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Wealthfolio"`
		Port     int    `envconfig:"PORT" default:"8080"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"wealthfolio"`
		Migrate  bool   `envconfig:"DB_MIGRATE" default:"true"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	HTTP struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
		RateLimit      float64  `envconfig:"RATE_LIMIT" default:"10"`
		RateBurst      int      `envconfig:"RATE_BURST" default:"30"`
	}

	Auth struct {
		Secret string `envconfig:"AUTH_JWT_SECRET"`
		Issuer string `envconfig:"AUTH_JWT_ISSUER"`
	}

	FX struct {
		URL      string          `envconfig:"FX_URL" default:"https://api.frankfurter.app/latest?from=USD&to=KRW"`
		Fallback decimal.Decimal `envconfig:"FX_FALLBACK_RATE" default:"1400"`
		CacheTTL time.Duration   `envconfig:"FX_CACHE_TTL" default:"1h"`
	}

	TUI struct {
		UserID  string `envconfig:"TUI_USER_ID" default:"local"`
		LogFile string `envconfig:"TUI_LOG_FILE" default:"wealthfolio-tui.log"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.FX.Fallback.IsZero() {
		return nil, fmt.Errorf("FX_FALLBACK_RATE must be non-zero")
	}

	return &cfg, nil
}
