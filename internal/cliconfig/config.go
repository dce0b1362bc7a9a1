// Package cliconfig resolves detdump's CLI configuration from defaults, an
// optional TOML file, DETDUMP_* environment variables, and command-line
// flags, in increasing order of precedence.
//
// The resolved Config is passed to operations as explicit parameters; there
// is no globally accessible configuration object.
package cliconfig

import (
	"fmt"
	"os"
	"time"
)

// Config holds CLI configuration for detdump.
type Config struct {
	// LogLevel is the minimum level emitted to stderr
	// (debug, info, warn, error).
	LogLevel string

	// Endpoint is the default simulation endpoint used when the sim
	// command is invoked without one.
	Endpoint string

	// WriteTimeout bounds a single frame write during simulation.
	WriteTimeout time.Duration

	// FollowPollInterval bounds staleness in follow mode when filesystem
	// events are coalesced or lost.
	FollowPollInterval time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		LogLevel:           "info",
		WriteTimeout:       10 * time.Second,
		FollowPollInterval: 500 * time.Millisecond,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive")
	}
	if c.FollowPollInterval <= 0 {
		return fmt.Errorf("follow poll interval must be positive")
	}
	return nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.detdump/config.toml if the user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h + "/.detdump/config.toml"
	}
	return ""
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}
