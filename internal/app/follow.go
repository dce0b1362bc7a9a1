package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/detlab/detdump/internal/domain"
	"github.com/detlab/detdump/internal/dump"
	"github.com/detlab/detdump/pkg/log"
)

// Follower tails a dump file: after an initial pass it watches the file and
// emits records appended later, complete records only. A record whose bytes
// have not fully landed yet is left alone until the next write.
type Follower struct {
	path         string
	pollInterval time.Duration
	logger       log.Logger
}

// NewFollower creates a follower for the dump file at path. pollInterval
// bounds how stale the view can get when filesystem events are coalesced
// or lost. A nil logger is replaced with a no-op logger.
func NewFollower(path string, pollInterval time.Duration, logger log.Logger) *Follower {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Follower{path: path, pollInterval: pollInterval, logger: logger}
}

// Follow emits records appended after byte offset startOffset / message
// index startIdx, calling emit for each. It blocks until ctx is canceled
// or emit returns an error. The offset must lie on a record boundary
// (typically the position where the initial pass stopped).
func (f *Follower) Follow(ctx context.Context, startOffset int64, startIdx int, emit func(idx int, raw []byte) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the containing directory; the file itself may be replaced.
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("watch %q: %w", f.path, err)
	}

	// Catch anything appended between the caller's initial pass and the
	// watch being established.
	off, idx := startOffset, startIdx
	if off, idx, err = f.emitNew(off, idx, emit); err != nil {
		return err
	}

	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(f.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if off, idx, err = f.emitNew(off, idx, emit); err != nil {
				return err
			}

		case <-ticker.C:
			if off, idx, err = f.emitNew(off, idx, emit); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			f.logger.Warn("watcher error", log.Err(err))
		}
	}
}

// emitNew reads the file and emits every complete record past off,
// returning the advanced position.
func (f *Follower) emitNew(off int64, idx int, emit func(idx int, raw []byte) error) (int64, int, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return off, idx, fmt.Errorf("reread dump %q: %w: %v", f.path, domain.ErrIO, err)
	}
	if int64(len(data)) <= off {
		return off, idx, nil
	}

	cursor := dump.NewStore(data).CursorAt(off, idx)
	for !cursor.IsAtEnd() {
		i := cursor.MsgIdx()
		raw, err := cursor.ReadRawMsg()
		if err != nil {
			// Incomplete tail record; wait for the rest of it.
			break
		}
		if err := emit(i, raw); err != nil {
			return off, idx, err
		}
		off, idx = cursor.Offset(), cursor.MsgIdx()
	}
	return off, idx, nil
}
