// Package config loads session settings from the environment.
package config

import (
	"fmt"
	"io/fs"
	"strconv"

	"github.com/caarlos0/env/v11"
)

// Config is the driver and engine configuration.
type Config struct {
	User     string   `env:"SHELLSIM_USER"      envDefault:"user"`
	Home     string   `env:"SHELLSIM_HOME"      envDefault:"/home/user"`
	Hostname string   `env:"SHELLSIM_HOSTNAME"  envDefault:"sandbox"`
	Features []string `env:"SHELLSIM_FEATURES"  envSeparator:"," envDefault:"processes,cron,services,storage,packages,network,archive"`
	LogLevel string   `env:"SHELLSIM_LOG_LEVEL" envDefault:"INFO"`
	LogFile  string   `env:"SHELLSIM_LOG_FILE"`
	Levels   string   `env:"SHELLSIM_LEVELS"`
	Umask    string   `env:"SHELLSIM_UMASK"     envDefault:"022"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if _, err := cfg.UmaskMode(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// UmaskMode parses Umask as an octal mode of at most three digits.
func (c Config) UmaskMode() (fs.FileMode, error) {
	if len(c.Umask) == 0 || len(c.Umask) > 4 {
		return 0, fmt.Errorf("invalid umask %q", c.Umask)
	}
	v, err := strconv.ParseUint(c.Umask, 8, 32)
	if err != nil || v > 0o777 {
		return 0, fmt.Errorf("invalid umask %q", c.Umask)
	}
	return fs.FileMode(v), nil
}
