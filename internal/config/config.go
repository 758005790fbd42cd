package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the application's configuration values.
// Tags like `envconfig:"APP_ENV"` specify the environment variable name.
// `default:""` provides a default value if the env var is not set.
type Config struct {
	AppEnv     string `envconfig:"APP_ENV" default:"development"` // e.g., development, production
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`      // debug, info, warn, error
	HttpServer ServerConfig
	GrpcServer GrpcServerConfig
	Session    SessionConfig
	Catalog    CatalogConfig
}

// ServerConfig holds HTTP server-specific configurations.
type ServerConfig struct {
	Port         string        `envconfig:"HTTP_SERVER_PORT" default:"8080"`
	TimeoutRead  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_READ" default:"15s"`
	TimeoutWrite time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_WRITE" default:"15s"`
	TimeoutIdle  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_IDLE" default:"60s"`
}

// GrpcServerConfig holds the gRPC health listener settings.
type GrpcServerConfig struct {
	Enabled bool   `envconfig:"GRPC_SERVER_ENABLED" default:"true"`
	Port    string `envconfig:"GRPC_SERVER_PORT" default:"9090"`
}

// SessionConfig controls how browser sessions map to catalogs.
type SessionConfig struct {
	CookieName  string        `envconfig:"SESSION_COOKIE_NAME" default:"catalog_session"`
	IdleTimeout time.Duration `envconfig:"SESSION_IDLE_TIMEOUT" default:"30m"`
}

// CatalogConfig controls the initial catalog and card rendering.
type CatalogConfig struct {
	SeedEnabled   bool `envconfig:"CATALOG_SEED_ENABLED" default:"true"`
	PreviewLength int  `envconfig:"CATALOG_PREVIEW_LENGTH" default:"120"`
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Session.CookieName == "" {
		return fmt.Errorf("invalid SESSION_COOKIE_NAME: must not be empty")
	}
	if c.Session.IdleTimeout <= 0 {
		return fmt.Errorf("invalid SESSION_IDLE_TIMEOUT %s: must be positive", c.Session.IdleTimeout)
	}
	if c.Catalog.PreviewLength <= 0 {
		return fmt.Errorf("invalid CATALOG_PREVIEW_LENGTH %d: must be positive", c.Catalog.PreviewLength)
	}
	return nil
}
