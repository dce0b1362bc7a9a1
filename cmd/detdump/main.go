package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/detlab/detdump/internal/cliconfig"
)

const helpDescription = `
Inspect, replay and simulate detector acquisition dumps.

A dump file is a flat sequence of length-prefixed records: JSON metadata
messages interleaved with opaque binary image payloads. detdump can list and
summarize the recorded messages, re-emit index ranges in the same framing,
synthesize a stream that repeats the recorded acquisition R times, and
transmit a recording live to a stream consumer as if a real detector were
sending it.
`

var exampleUsage = strings.TrimSpace(`
  detdump inspect recording.dump --summary
  detdump cat recording.dump 0 41 > slice.dump
  detdump repeat recording.dump 10 --output repeated.dump
  detdump sim recording.dump ws://localhost:9999/stream
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	logger := cliconfig.Logger(cfg.LogLevel)

	root := &cobra.Command{
		Use:           "detdump",
		Short:         "Inspect, replay and simulate detector acquisition dumps",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Precedence: flags > environment > config file > defaults.
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}
			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger = cliconfig.Logger(cfg.LogLevel)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.detdump/config.toml)")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "minimum log level (debug, info, warn, error)")

	root.AddCommand(
		newCatCmd(&logger),
		newInspectCmd(&cfg, &logger),
		newRepeatCmd(&logger),
		newSimCmd(&cfg, &logger),
	)

	if err := root.Execute(); err != nil {
		logger.Error().Err(err).Msg("detdump")
		os.Exit(1)
	}
}
