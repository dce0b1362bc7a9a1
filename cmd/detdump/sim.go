package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/detlab/detdump/internal/adapters/ws"
	"github.com/detlab/detdump/internal/app"
	"github.com/detlab/detdump/internal/cliconfig"
	"github.com/detlab/detdump/internal/dump"
	"github.com/detlab/detdump/internal/scan"
	pkglog "github.com/detlab/detdump/pkg/log"
)

// newSimCmd transmits a recorded acquisition live over a websocket
// endpoint, one transport frame per record, emulating a real detector.
func newSimCmd(cfg *cliconfig.Config, logger *zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "sim <file> [endpoint]",
		Short: "Transmit a recorded acquisition live to a stream consumer",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoint := cfg.Endpoint
			if len(args) == 2 {
				endpoint = args[1]
			}
			if endpoint == "" {
				return fmt.Errorf("no endpoint given and none configured")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := dump.Open(args[0])
			if err != nil {
				return err
			}

			transport, err := ws.Dial(ctx, endpoint, cfg.WriteTimeout)
			if err != nil {
				return err
			}
			defer transport.Close()

			logger.Info().Str("endpoint", endpoint).Msg("simulating acquisition")

			sender, err := app.NewFrameSender(store, scan.JSONClassifier{}, transport,
				pkglog.NewZerologAdapterWithLogger(*logger))
			if err != nil {
				return err
			}
			if err := sender.SendHeaders(ctx); err != nil {
				return err
			}
			if err := sender.SendFrames(ctx); err != nil {
				return err
			}
			return sender.SendFooter(ctx)
		},
	}
}
