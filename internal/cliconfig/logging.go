package cliconfig

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger builds the CLI's zerolog logger at the given level, writing
// human-readable output to stderr so stdout stays clean for record data.
func Logger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).With().Timestamp().Logger().Level(lvl)
}
