package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/detlab/detdump/internal/domain"
	"github.com/detlab/detdump/internal/dump"
	"github.com/detlab/detdump/internal/ports"
	"github.com/detlab/detdump/internal/scan"
	"github.com/detlab/detdump/pkg/log"
)

// FrameSender replays a recorded acquisition live over a transport,
// reproducing the message boundaries a real detector would emit: one
// transport frame per record, in strict recorded order.
//
// The expected call sequence is SendHeaders, SendFrames, SendFooter. Any
// transport failure aborts the remaining sequence immediately; there are no
// retries and at most one delivery attempt per record.
type FrameSender struct {
	store      *dump.Store
	classifier ports.Classifier
	transport  ports.FrameTransport
	logger     log.Logger

	cursor      *dump.Cursor
	totalImages int
}

// NewFrameSender creates a sender for the acquisition recorded in store.
// The image count is taken from a full-store summary, not from the recorded
// configuration. A nil logger is replaced with a no-op logger.
func NewFrameSender(store *dump.Store, classifier ports.Classifier, transport ports.FrameTransport, logger log.Logger) (*FrameSender, error) {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	totalImages, err := scan.ImageCount(store, classifier)
	if err != nil {
		return nil, err
	}
	return &FrameSender{
		store:       store,
		classifier:  classifier,
		transport:   transport,
		logger:      logger,
		totalImages: totalImages,
	}, nil
}

// SendHeaders transmits the header record, then the configuration record,
// as two separate transport frames, in that order.
func (s *FrameSender) SendHeaders(ctx context.Context) error {
	cursor := s.store.Cursor()
	if err := cursor.SeekToFirstHeaderOfType(s.classifier, domain.HeaderType); err != nil {
		return err
	}

	header, err := cursor.ReadRawMsg()
	if err != nil {
		return err
	}
	if err := s.transport.Send(ctx, header); err != nil {
		return fmt.Errorf("send header: %w", err)
	}

	config, err := cursor.ReadRawMsg()
	if err != nil {
		return fmt.Errorf("read detector configuration: %w", err)
	}
	if err := s.transport.Send(ctx, config); err != nil {
		return fmt.Errorf("send detector configuration: %w", err)
	}

	s.cursor = cursor
	s.logger.Debug("headers sent")
	return nil
}

// SendFrames transmits every image quadruple in recorded order, four
// transport frames per quadruple, with no reordering, batching, or merging
// across quadruple boundaries. Cancellation is checked between frames; a
// frame is never abandoned mid-payload.
func (s *FrameSender) SendFrames(ctx context.Context) error {
	cursor := s.cursor
	if cursor == nil {
		// SendHeaders was skipped; position past header and configuration.
		cursor = s.store.Cursor()
		if err := cursor.SeekToFirstHeaderOfType(s.classifier, domain.HeaderType); err != nil {
			return err
		}
		for i := 0; i < 2; i++ {
			if _, err := cursor.ReadRawMsg(); err != nil {
				return err
			}
		}
		s.cursor = cursor
	}

	for img := 0; img < s.totalImages; img++ {
		for rec := 0; rec < 4; rec++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := cursor.ReadRawMsg()
			if err != nil {
				return fmt.Errorf("image %d: truncated quadruple: %w", img, err)
			}
			if err := s.transport.Send(ctx, raw); err != nil {
				return fmt.Errorf("send image %d record %d: %w", img, rec, err)
			}
		}
	}

	s.logger.Info("frames sent", log.Int("images", s.totalImages))
	return nil
}

// SendFooter transmits the stream-termination marker: the recorded
// end-of-series record when the dump contains one, or a synthesized
// minimal marker otherwise.
func (s *FrameSender) SendFooter(ctx context.Context) error {
	footer, err := s.footerRecord()
	if err != nil {
		return err
	}
	if err := s.transport.Send(ctx, footer); err != nil {
		return fmt.Errorf("send footer: %w", err)
	}
	s.logger.Debug("footer sent")
	return nil
}

func (s *FrameSender) footerRecord() ([]byte, error) {
	cursor := s.store.Cursor()
	err := cursor.SeekToFirstHeaderOfType(s.classifier, domain.SeriesEndType)
	if err == nil {
		return cursor.ReadRawMsg()
	}
	if !errors.Is(err, domain.ErrMissingHeader) {
		return nil, err
	}
	return json.Marshal(map[string]string{domain.Discriminator: domain.SeriesEndType})
}
