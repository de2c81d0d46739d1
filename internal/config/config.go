// Package config loads service configuration from environment variables,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the service.
type Config struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CacheCapacity bounds the render cache; eviction is FIFO.
	CacheCapacity int `env:"QR_CACHE_CAPACITY" envDefault:"10"`
	// DebounceInterval is the quiet window between an input change and
	// the generation it triggers.
	DebounceInterval time.Duration `env:"QR_DEBOUNCE_INTERVAL" envDefault:"200ms"`
	// MaxLogoBytes caps uploaded logo files (default 5MB).
	MaxLogoBytes int64 `env:"QR_MAX_LOGO_BYTES" envDefault:"5242880"`
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present; a missing file is
// not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %d", cfg.Port)
	}
	return cfg, nil
}
