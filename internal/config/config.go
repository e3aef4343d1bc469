// Package config loads runtime configuration for the cache server from
// environment variables.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every tunable the cache server reads from its
// environment. Struct tags follow envconfig conventions: the env var
// name and, where sensible, a default so the server runs out of the
// box with no configuration at all.
type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	MaxSize        int           `envconfig:"MAX_SIZE" default:"1000"`
	DefaultTTL     time.Duration `envconfig:"DEFAULT_TTL" default:"0"`
	SweepInterval  time.Duration `envconfig:"SWEEP_INTERVAL" default:"2s"`
	SweepBatchSize int           `envconfig:"SWEEP_BATCH_SIZE" default:"1024"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	CORSEnabled     bool          `envconfig:"CORS_ENABLED" default:"false"`
	CORSOrigins     string        `envconfig:"CORS_ORIGINS" default:"*"`
	RateLimitRPS    int           `envconfig:"RATE_LIMIT_RPS" default:"0"`
	MetricsEnabled  bool          `envconfig:"METRICS_ENABLED" default:"true"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Prefix is the envconfig prefix every variable is read under, e.g.
// CACHE_HTTP_ADDR, CACHE_MAX_SIZE.
const Prefix = "cache"

// Load reads configuration from the process environment, applying
// defaults for anything unset.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process(Prefix, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
