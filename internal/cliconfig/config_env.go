package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables
// (DETDUMP_*). It respects flags that have been explicitly set (changed
// map). Returns an error if a variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("log-level", os.Getenv("DETDUMP_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("endpoint", os.Getenv("DETDUMP_ENDPOINT"), &cfg.Endpoint)

	if err := s.setDuration("write-timeout", os.Getenv("DETDUMP_WRITE_TIMEOUT"), &cfg.WriteTimeout); err != nil {
		return err
	}
	return s.setDuration("poll-interval", os.Getenv("DETDUMP_FOLLOW_POLL_INTERVAL"), &cfg.FollowPollInterval)
}
