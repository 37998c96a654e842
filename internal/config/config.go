package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/signalsfoundry/solarwcs/internal/logging"
	"github.com/signalsfoundry/solarwcs/internal/observability"
)

// ErrInvalidProjection is returned for projection codes that are not three
// upper-case letters.
var ErrInvalidProjection = errors.New("projection must be a three-letter FITS code")

// Config is the process configuration shared by the solarwcs commands.
type Config struct {
	HTTPAddr   string `env:"SOLARWCS_HTTP_ADDR" envDefault:":8080"`
	Projection string `env:"SOLARWCS_PROJECTION" envDefault:"TAN"`

	Log     logging.Config
	Tracing observability.TracingConfig
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads Config from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values that env parsing cannot.
func (c Config) Validate() error {
	if !ValidProjection(c.Projection) {
		return fmt.Errorf("%w: %q", ErrInvalidProjection, c.Projection)
	}
	return nil
}

// ValidProjection reports whether p looks like a FITS projection code.
func ValidProjection(p string) bool {
	if len(p) != 3 {
		return false
	}
	for _, r := range p {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
