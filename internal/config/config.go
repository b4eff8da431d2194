package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the process configuration, populated from the environment.
type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`
	Dev        bool   `env:"DEV" envDefault:"false"`

	// BearerTokens is the set of tokens the session layer accepts on auth.
	BearerTokens []string `env:"BEARER_TOKENS" envSeparator:","`

	BookChangeInterval time.Duration `env:"BOOK_CHANGE_INTERVAL" envDefault:"100ms"`
	PnLRateLimitPerSec  float64       `env:"PNL_RATE_LIMIT_PER_SEC" envDefault:"0.2"`
}

// Load reads the configuration from the environment, applying envDefault
// tags for anything unset.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
