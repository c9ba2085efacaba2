package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/utafrali/storefront/pkg/config"
)

// Config holds all configuration for the storefront client.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Device-local durable store
	StoreAddr string `env:"STORE_REDIS_ADDR" envDefault:"localhost:6379"`
	StorePass string `env:"STORE_REDIS_PASSWORD" envDefault:""`
	StoreDB   int    `env:"STORE_REDIS_DB" envDefault:"0"`

	// Remote storefront API
	BackendURL        string `env:"BACKEND_URL" envDefault:"http://localhost:3000"`
	BackendTimeoutSec int    `env:"BACKEND_TIMEOUT_SECONDS" envDefault:"10"`
	BackendMaxRetries int    `env:"BACKEND_MAX_RETRIES" envDefault:"2"`

	// Optional pause between reconciliation persist calls, in milliseconds.
	// Zero disables it; ordering never depends on this value.
	ReconcileDispatchDelayMS int `env:"RECONCILE_DISPATCH_DELAY_MS" envDefault:"0"`

	// Metrics endpoint
	MetricsPort int `env:"METRICS_PORT" envDefault:"9464"`

	// Tracing
	TracingEnabled    bool    `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint   string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TracingSampleRate float64 `env:"TRACING_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("backend URL is required")
	}
	if c.BackendTimeoutSec < 1 {
		return fmt.Errorf("invalid backend timeout: %d", c.BackendTimeoutSec)
	}
	if c.ReconcileDispatchDelayMS < 0 {
		return fmt.Errorf("invalid reconcile dispatch delay: %d", c.ReconcileDispatchDelayMS)
	}
	if c.MetricsPort < 1 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", c.MetricsPort)
	}
	if c.TracingSampleRate < 0 || c.TracingSampleRate > 1 {
		return fmt.Errorf("invalid tracing sample rate: %f", c.TracingSampleRate)
	}
	return nil
}

// BackendTimeout returns the per-request backend timeout.
func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.BackendTimeoutSec) * time.Second
}

// ReconcileDispatchDelay returns the pause between reconciliation persists.
func (c *Config) ReconcileDispatchDelay() time.Duration {
	return time.Duration(c.ReconcileDispatchDelayMS) * time.Millisecond
}
