package cliconfig

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors Config but uses strings for durations to keep the
// TOML friendly.
type fileConfig struct {
	LogLevel           string `toml:"log_level"`
	Endpoint           string `toml:"endpoint"`
	WriteTimeout       string `toml:"write_timeout"`
	FollowPollInterval string `toml:"follow_poll_interval"`
}

// LoadFileConfig reads and parses a TOML config file.
func LoadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc fileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("endpoint", fc.Endpoint, &cfg.Endpoint)

	if err := s.setDuration("write-timeout", fc.WriteTimeout, &cfg.WriteTimeout); err != nil {
		return err
	}
	return s.setDuration("poll-interval", fc.FollowPollInterval, &cfg.FollowPollInterval)
}
