package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv("DETDUMP_LOG_LEVEL", "warn")
	t.Setenv("DETDUMP_ENDPOINT", "ws://from-env/stream")
	t.Setenv("DETDUMP_WRITE_TIMEOUT", "3s")
	t.Setenv("DETDUMP_FOLLOW_POLL_INTERVAL", "1s")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, nil); err != nil {
		t.Fatalf("ApplyEnvConfig: %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %v, want warn", cfg.LogLevel)
	}
	if cfg.Endpoint != "ws://from-env/stream" {
		t.Errorf("Endpoint = %v, want ws://from-env/stream", cfg.Endpoint)
	}
	if cfg.WriteTimeout != 3*time.Second {
		t.Errorf("WriteTimeout = %v, want 3s", cfg.WriteTimeout)
	}
	if cfg.FollowPollInterval != time.Second {
		t.Errorf("FollowPollInterval = %v, want 1s", cfg.FollowPollInterval)
	}
}

func TestApplyEnvConfig_FlagWins(t *testing.T) {
	t.Setenv("DETDUMP_LOG_LEVEL", "error")

	cfg := DefaultConfig()
	cfg.LogLevel = "debug"
	changed := map[string]bool{"log-level": true}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %v, want the flag value to win", cfg.LogLevel)
	}
}

func TestApplyEnvConfig_BadDuration(t *testing.T) {
	t.Setenv("DETDUMP_WRITE_TIMEOUT", "whenever")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, nil); err == nil {
		t.Error("ApplyEnvConfig with bad duration succeeded, want error")
	}
}
