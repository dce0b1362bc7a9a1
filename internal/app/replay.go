package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/detlab/detdump/internal/domain"
	"github.com/detlab/detdump/internal/dump"
	"github.com/detlab/detdump/internal/ports"
	"github.com/detlab/detdump/internal/scan"
	"github.com/detlab/detdump/pkg/log"
)

// ReplayEngine synthesizes a longer acquisition stream out of a single
// recorded one: the original header, a mutated configuration, then the
// recorded image quadruples repeated R times with renumbered frame indices.
//
// Non-header quadruple records pass through byte-for-byte, so embedded
// timestamps and sequence numbers repeat verbatim across repetitions. That
// is a deliberate limitation of the replay, not an oversight.
type ReplayEngine struct {
	store      *dump.Store
	classifier ports.Classifier
	logger     log.Logger
}

// NewReplayEngine creates a replay engine over the given store.
// A nil logger is replaced with a no-op logger.
func NewReplayEngine(store *dump.Store, classifier ports.Classifier, logger log.Logger) *ReplayEngine {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &ReplayEngine{store: store, classifier: classifier, logger: logger}
}

// Replay writes the synthetic stream for the given repetition count to w,
// framed exactly like the input so the output is itself a replayable dump.
//
// A missing header or configuration record, a malformed configuration, or a
// truncated quadruple aborts the run: such input cannot produce any valid
// replay.
func (e *ReplayEngine) Replay(w io.Writer, repetitions int) error {
	if repetitions < 1 {
		return fmt.Errorf("repetitions must be at least 1, got %d", repetitions)
	}

	totalImages, err := scan.ImageCount(e.store, e.classifier)
	if err != nil {
		return err
	}

	cursor := e.store.Cursor()
	if err := cursor.SeekToFirstHeaderOfType(e.classifier, domain.HeaderType); err != nil {
		return err
	}

	// The header is emitted byte-identical, framing included.
	header, err := cursor.ReadRawMsg()
	if err != nil {
		return err
	}
	if err := dump.WriteRecord(w, header); err != nil {
		return err
	}

	mutated, err := e.mutateConfig(cursor, totalImages*repetitions)
	if err != nil {
		return err
	}
	if err := dump.WriteRecord(w, mutated); err != nil {
		return err
	}

	frame := int64(0)
	for rep := 0; rep < repetitions; rep++ {
		if frame, err = e.replayOnce(w, rep, totalImages, frame); err != nil {
			return err
		}
	}

	e.logger.Info("replay complete",
		log.Int("repetitions", repetitions),
		log.Int("images", totalImages),
		log.Int64("frames", frame))
	return nil
}

// mutateConfig reads the configuration record and returns a copy with the
// trigger-related fields rewritten for the repeated stream. All other
// fields, including ones this tool knows nothing about, round-trip with
// their original raw JSON values.
func (e *ReplayEngine) mutateConfig(cursor *dump.Cursor, destImages int) ([]byte, error) {
	raw, err := cursor.ReadRawMsg()
	if err != nil {
		return nil, fmt.Errorf("read detector configuration: %w", err)
	}

	// Parse into the typed structure purely to validate the shape; emission
	// works on the raw object so unknown fields survive.
	var config domain.DetectorConfig
	if err := json.Unmarshal(raw, &config); err != nil {
		return nil, fmt.Errorf("detector configuration: %v: %w", err, domain.ErrConfigParse)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("detector configuration: %v: %w", err, domain.ErrConfigParse)
	}

	// Modify-if-present: a field absent from the recording stays absent.
	if err := setIfPresent(obj, "nimages", 1); err != nil {
		return nil, err
	}
	if err := setIfPresent(obj, "trigger_mode", "exte"); err != nil {
		return nil, err
	}
	if err := setIfPresent(obj, "ntrigger", destImages); err != nil {
		return nil, err
	}

	mutated, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("serialize detector configuration: %w", err)
	}
	return mutated, nil
}

// replayOnce walks one full copy of the recorded quadruple sequence with a
// fresh cursor, renumbering each image header with the global frame counter.
func (e *ReplayEngine) replayOnce(w io.Writer, rep, totalImages int, frame int64) (int64, error) {
	cursor := e.store.Cursor()
	if err := cursor.SeekToFirstHeaderOfType(e.classifier, domain.HeaderType); err != nil {
		return frame, err
	}
	// Header and configuration were already emitted once.
	if _, _, err := dump.ReadAs[domain.DHeader](cursor); err != nil {
		return frame, err
	}
	if _, err := cursor.ReadRawMsg(); err != nil {
		return frame, fmt.Errorf("repetition %d: discard configuration: %w", rep, err)
	}

	for img := 0; img < totalImages; img++ {
		renumbered, err := e.renumberedImageHeader(cursor, frame)
		if err != nil {
			return frame, fmt.Errorf("repetition %d image %d: %w", rep, img, err)
		}
		if err := dump.WriteRecord(w, renumbered); err != nil {
			return frame, err
		}

		// Description, raw payload and trailer pass through unmodified;
		// embedded timestamps are not adjusted.
		for rec := 0; rec < 3; rec++ {
			raw, err := cursor.ReadRawMsg()
			if err != nil {
				return frame, fmt.Errorf("repetition %d image %d: truncated quadruple: %w", rep, img, err)
			}
			if err := dump.WriteRecord(w, raw); err != nil {
				return frame, err
			}
		}
		frame++
	}
	return frame, nil
}

// renumberedImageHeader reads the next record as an image header and
// returns it re-serialized with the frame field overwritten.
func (e *ReplayEngine) renumberedImageHeader(cursor *dump.Cursor, frame int64) ([]byte, error) {
	_, raw, err := dump.ReadAs[domain.DImage](cursor)
	if err != nil {
		return nil, fmt.Errorf("image header: %w", err)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("image header: %v: %w", err, domain.ErrJSONParse)
	}
	idx, err := json.Marshal(frame)
	if err != nil {
		return nil, err
	}
	obj[domain.FrameField] = idx
	return json.Marshal(obj)
}

// setIfPresent overwrites obj[key] with the JSON encoding of v, but only
// if the key already exists.
func setIfPresent(obj map[string]json.RawMessage, key string, v interface{}) error {
	if _, ok := obj[key]; !ok {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	obj[key] = raw
	return nil
}
