package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// Config is read from the process environment, after an optional .env file.
type Config struct {
	Port        string        `envconfig:"PORT" default:"8080"`
	Environment Environment   `envconfig:"ENVIRONMENT" default:"development"`
	DatabaseURL string        `envconfig:"DATABASE_URL"`
	JWTSecret   string        `envconfig:"JWT_SECRET"`
	TokenTTL    time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	// Hex-encoded 32-byte keys. Both empty disables field encryption.
	EncryptionKey string `envconfig:"ENCRYPTION_KEY"`
	BlindIndexKey string `envconfig:"BLIND_INDEX_KEY"`

	// Default zone for users who signed up without one.
	TimeZone string `envconfig:"TIMEZONE" default:"UTC"`

	SeedDemoData bool   `envconfig:"SEED_DEMO_DATA" default:"false"`
	DemoEmail    string `envconfig:"DEMO_EMAIL" default:"demo@mina.app"`
	DemoPassword string `envconfig:"DEMO_PASSWORD" default:"mina-demo"`
}

// Load reads .env when present and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if (c.EncryptionKey == "") != (c.BlindIndexKey == "") {
		return errors.New("ENCRYPTION_KEY and BLIND_INDEX_KEY must be set together")
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.TimeZone, err)
	}
	switch c.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("unsupported ENVIRONMENT: %s", c.Environment)
	}
	return nil
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
