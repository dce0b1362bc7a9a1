package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/detlab/detdump/internal/app"
	"github.com/detlab/detdump/internal/dump"
	"github.com/detlab/detdump/internal/scan"
	pkglog "github.com/detlab/detdump/pkg/log"
)

// newRepeatCmd synthesizes a stream repeating the recorded acquisition R
// times, written to stdout or a file sink.
func newRepeatCmd(logger *zerolog.Logger) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "repeat <file> <repetitions>",
		Short: "Synthesize a stream that repeats the recorded acquisition",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repetitions, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("repetitions: %w", err)
			}

			store, err := dump.Open(args[0])
			if err != nil {
				return err
			}
			engine := app.NewReplayEngine(store, scan.JSONClassifier{},
				pkglog.NewZerologAdapterWithLogger(*logger))

			sink := cmd.OutOrStdout()
			var file *os.File
			if output != "" {
				if file, err = os.Create(output); err != nil {
					return fmt.Errorf("create output %q: %w", output, err)
				}
				sink = file
			}

			buffered := bufio.NewWriter(sink)
			if err := engine.Replay(buffered, repetitions); err != nil {
				if file != nil {
					file.Close()
				}
				return err
			}
			if err := buffered.Flush(); err != nil {
				if file != nil {
					file.Close()
				}
				return err
			}
			if file != nil {
				return file.Close()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the repeated stream to PATH instead of stdout")
	return cmd
}
