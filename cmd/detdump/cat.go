package main

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/detlab/detdump/internal/dump"
)

// newCatCmd re-emits a contiguous, inclusive record index range to stdout
// using the same framing as the input, so the output is itself a valid dump.
func newCatCmd(logger *zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "cat <file> <start> <end>",
		Short: "Re-emit a record index range to stdout in dump framing",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("start index: %w", err)
			}
			end, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("end index: %w", err)
			}
			if start < 0 || end < start {
				return fmt.Errorf("invalid range %d..%d", start, end)
			}

			store, err := dump.Open(args[0])
			if err != nil {
				return err
			}
			cursor := store.Cursor()
			if err := cursor.SeekToMsgIdx(start); err != nil {
				return err
			}

			logger.Info().Int("start", start).Int("end", end).Msg("writing records")

			out := bufio.NewWriter(cmd.OutOrStdout())
			for cursor.MsgIdx() <= end {
				raw, err := cursor.ReadRawMsg()
				if err != nil {
					return err
				}
				if err := dump.WriteRecord(out, raw); err != nil {
					return err
				}
			}
			return out.Flush()
		},
	}
}
