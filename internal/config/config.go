package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server configuration, loaded from WARPATH_* environment
// variables.
type Config struct {
	Addr       string        `env:"WARPATH_ADDR"        envDefault:":3000"`
	DBPath     string        `env:"WARPATH_DB_PATH"`
	JWTSecret  string        `env:"WARPATH_JWT_SECRET"`
	TokenTTL   time.Duration `env:"WARPATH_TOKEN_TTL"   envDefault:"168h"`
	BcryptCost int           `env:"WARPATH_BCRYPT_COST" envDefault:"10"`
}

// Load parses the environment. ValidateServe must be called before serving.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ValidateServe checks the fields the HTTP server cannot run without.
func (c Config) ValidateServe() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("WARPATH_JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive")
	}
	return nil
}
