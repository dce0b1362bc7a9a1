package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/detlab/detdump/internal/app"
	"github.com/detlab/detdump/internal/cliconfig"
	"github.com/detlab/detdump/internal/dump"
	"github.com/detlab/detdump/internal/scan"
	pkglog "github.com/detlab/detdump/pkg/log"
)

// newInspectCmd pretty-prints recorded messages for human inspection.
func newInspectCmd(cfg *cliconfig.Config, logger *zerolog.Logger) *cobra.Command {
	var (
		head    int
		summary bool
		follow  bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Display recorded messages in human-readable form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := dump.Open(args[0])
			if err != nil {
				return err
			}
			classifier := scan.JSONClassifier{}
			out := cmd.OutOrStdout()

			cursor := store.Cursor()
			if cmd.Flags().Changed("head") {
				for i := 0; i < head; i++ {
					raw, err := cursor.ReadRawMsg()
					if err != nil {
						return err
					}
					printMsg(out, i, raw, classifier)
				}
			} else {
				for !cursor.IsAtEnd() {
					i := cursor.MsgIdx()
					raw, err := cursor.ReadRawMsg()
					if err != nil {
						return err
					}
					printMsg(out, i, raw, classifier)
				}
			}

			if summary {
				counts, err := scan.Summarize(store, classifier)
				if err != nil {
					return err
				}
				printSummary(out, counts)
			}

			if follow {
				return followDump(cmd.Context(), args[0], cursor, cfg, logger, out, classifier)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&head, "head", "n", 0, "display only the first N messages")
	cmd.Flags().BoolVarP(&summary, "summary", "s", false, "display a summary of all messages")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "keep watching the file and display appended messages")
	return cmd
}

// followDump tails the file from where the initial pass stopped, until
// interrupted.
func followDump(ctx context.Context, path string, cursor *dump.Cursor, cfg *cliconfig.Config, logger *zerolog.Logger, out io.Writer, classifier scan.JSONClassifier) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	follower := app.NewFollower(path, cfg.FollowPollInterval, pkglog.NewZerologAdapterWithLogger(*logger))
	err := follower.Follow(ctx, cursor.Offset(), cursor.MsgIdx(), func(idx int, raw []byte) error {
		printMsg(out, idx, raw, classifier)
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// printMsg renders one record: indented JSON for classified messages, a
// short binary note otherwise. Indenting the raw bytes keeps the recorded
// field order.
func printMsg(w io.Writer, idx int, raw []byte, classifier scan.JSONClassifier) {
	if _, ok := classifier.Classify(raw); ok {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err == nil {
			fmt.Fprintf(w, "msg %d:\n\n%s\n\n", idx, buf.Bytes())
			return
		}
	}
	fmt.Fprintf(w, "msg %d: <binary> (%d bytes)\n", idx, len(raw))
}

// printSummary renders the type-label counts in a stable order.
func printSummary(w io.Writer, counts map[string]int) {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	fmt.Fprintln(w, "messages summary:")
	for _, label := range labels {
		fmt.Fprintf(w, "type %s: %d\n", label, counts[label])
	}
}
