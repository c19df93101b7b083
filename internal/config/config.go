// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultJWTSecret is the development fallback signing key. Deployments must
// override it via KORATIME_JWT_SECRET.
const DefaultJWTSecret = "koratime-dev-secret"

// Config holds all runtime settings for the server.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string `env:"KORATIME_ADDR" envDefault:":8080"`

	// DBPath is the SQLite database file location.
	DBPath string `env:"KORATIME_DB_PATH" envDefault:"./data/koratime.db"`

	// JWTSecret signs session tokens.
	JWTSecret string `env:"KORATIME_JWT_SECRET" envDefault:"koratime-dev-secret"`

	// TokenTTL is how long a session token stays valid.
	TokenTTL time.Duration `env:"KORATIME_TOKEN_TTL" envDefault:"168h"`

	// CORSOrigin is the allowed origin for browser and mobile clients.
	CORSOrigin string `env:"KORATIME_CORS_ORIGIN" envDefault:"*"`
}

// Load parses the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
