package config

import (
	"fmt"

	"github.com/caarlos0/env/v7"
	"github.com/joho/godotenv"
)

// Config carries every runtime setting, populated from the environment with
// an optional .env file on top for local development.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET"`
	GinMode     string `env:"GIN_MODE" envDefault:"debug"`

	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	SeedDefaultAdmin bool `env:"SEED_DEFAULT_ADMIN" envDefault:"true"`
}

// Load reads .env (if present) and parses the environment into a Config.
func Load() (*Config, error) {
	// A missing .env is the normal case outside local dev.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
