package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const devSecret = "ambulance-dev-secret"

type Config struct {
	Port              string        `env:"PORT" envDefault:"8080"`
	Env               string        `env:"ENV" envDefault:"development"`
	DBDriver          string        `env:"DB_DRIVER" envDefault:"sqlite"`
	DatabaseURL       string        `env:"DATABASE_URL" envDefault:"ambulance.db"`
	JWTSecret         string        `env:"JWT_SECRET"`
	JWTTTL            time.Duration `env:"JWT_TTL" envDefault:"1h"`
	RateLimitRPS      float64       `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst    int           `env:"RATE_LIMIT_BURST" envDefault:"10"`
	CORSOrigins       []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	StaticDir         string        `env:"STATIC_DIR"`
	MidtransServerKey string        `env:"MIDTRANS_SERVER_KEY"`
	MidtransProd      bool          `env:"MIDTRANS_PRODUCTION" envDefault:"false"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JWTSecret == "" && cfg.IsDev() {
		cfg.JWTSecret = devSecret
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite, mysql or postgres, got %q", c.DBDriver)
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required outside development")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}
