package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/detlab/detdump/internal/app"
	"github.com/detlab/detdump/internal/dump"
	"github.com/detlab/detdump/internal/scan"
)

var errTransportDown = errors.New("transport down")

// fakeTransport records sent frames and can be told to fail after a given
// number of sends.
type fakeTransport struct {
	frames [][]byte
	failAt int // fail when this many frames have been sent; -1 never
	closed bool
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{failAt: -1}
}

func (f *fakeTransport) Send(ctx context.Context, frame []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.failAt >= 0 && len(f.frames) == f.failAt {
		return errTransportDown
	}
	f.frames = append(f.frames, append([]byte(nil), frame...))
	return nil
}

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}

func TestFrameSender_FullSequence(t *testing.T) {
	const nimages = 3
	source := acquisitionRecords(nimages)
	store := dump.NewStore(buildDump(source))
	transport := newFakeTransport()

	sender, err := app.NewFrameSender(store, scan.JSONClassifier{}, transport, nil)
	if err != nil {
		t.Fatalf("NewFrameSender: %v", err)
	}

	ctx := context.Background()
	if err := sender.SendHeaders(ctx); err != nil {
		t.Fatalf("SendHeaders: %v", err)
	}
	if err := sender.SendFrames(ctx); err != nil {
		t.Fatalf("SendFrames: %v", err)
	}
	if err := sender.SendFooter(ctx); err != nil {
		t.Fatalf("SendFooter: %v", err)
	}

	// 2 header frames + 4 per quadruple + 1 footer, in strict recorded
	// order, one transport frame per record.
	wantFrames := 2 + 4*nimages + 1
	if len(transport.frames) != wantFrames {
		t.Fatalf("sent %d frames, want %d", len(transport.frames), wantFrames)
	}
	for i, want := range source {
		if !bytes.Equal(transport.frames[i], want) {
			t.Errorf("frame %d = %q, want %q", i, transport.frames[i], want)
		}
	}

	// The source has no end-of-series record, so the footer is synthesized.
	var footer map[string]string
	if err := json.Unmarshal(transport.frames[wantFrames-1], &footer); err != nil {
		t.Fatalf("parse footer: %v", err)
	}
	if footer["htype"] != "dseries_end-1.0" {
		t.Errorf("footer htype = %q, want dseries_end-1.0", footer["htype"])
	}
}

func TestFrameSender_RecordedFooter(t *testing.T) {
	end := []byte(`{"htype":"dseries_end-1.0","series":5}`)
	records := append(acquisitionRecords(1), end)
	store := dump.NewStore(buildDump(records))
	transport := newFakeTransport()

	sender, err := app.NewFrameSender(store, scan.JSONClassifier{}, transport, nil)
	if err != nil {
		t.Fatalf("NewFrameSender: %v", err)
	}
	if err := sender.SendFooter(context.Background()); err != nil {
		t.Fatalf("SendFooter: %v", err)
	}
	if got := transport.frames[len(transport.frames)-1]; !bytes.Equal(got, end) {
		t.Errorf("footer = %q, want the recorded end-of-series record %q", got, end)
	}
}

func TestFrameSender_TransportFailureAborts(t *testing.T) {
	store := dump.NewStore(buildDump(acquisitionRecords(2)))
	transport := newFakeTransport()
	transport.failAt = 4 // fail mid-quadruple

	sender, err := app.NewFrameSender(store, scan.JSONClassifier{}, transport, nil)
	if err != nil {
		t.Fatalf("NewFrameSender: %v", err)
	}

	ctx := context.Background()
	if err := sender.SendHeaders(ctx); err != nil {
		t.Fatalf("SendHeaders: %v", err)
	}
	if err := sender.SendFrames(ctx); !errors.Is(err, errTransportDown) {
		t.Fatalf("SendFrames = %v, want transport error", err)
	}
	// No frames follow the failed one.
	if len(transport.frames) != 4 {
		t.Errorf("sent %d frames after failure, want 4", len(transport.frames))
	}
}

func TestFrameSender_CancellationBetweenFrames(t *testing.T) {
	store := dump.NewStore(buildDump(acquisitionRecords(2)))
	transport := newFakeTransport()

	sender, err := app.NewFrameSender(store, scan.JSONClassifier{}, transport, nil)
	if err != nil {
		t.Fatalf("NewFrameSender: %v", err)
	}

	if err := sender.SendHeaders(context.Background()); err != nil {
		t.Fatalf("SendHeaders: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sender.SendFrames(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("SendFrames = %v, want context.Canceled", err)
	}
	if len(transport.frames) != 2 {
		t.Errorf("sent %d frames after cancellation, want the 2 header frames only", len(transport.frames))
	}
}

func TestFrameSender_WithoutHeaders(t *testing.T) {
	// SendFrames on its own positions itself past the header and
	// configuration records.
	source := acquisitionRecords(1)
	store := dump.NewStore(buildDump(source))
	transport := newFakeTransport()

	sender, err := app.NewFrameSender(store, scan.JSONClassifier{}, transport, nil)
	if err != nil {
		t.Fatalf("NewFrameSender: %v", err)
	}
	if err := sender.SendFrames(context.Background()); err != nil {
		t.Fatalf("SendFrames: %v", err)
	}
	if len(transport.frames) != 4 {
		t.Fatalf("sent %d frames, want 4", len(transport.frames))
	}
	if !bytes.Equal(transport.frames[0], source[2]) {
		t.Errorf("first frame = %q, want the first image header %q", transport.frames[0], source[2])
	}
}
