package ports

import "context"

// FrameTransport delivers records to a network peer, one transport frame per
// record. Message boundaries must be preserved end to end: a frame is never
// split, merged, or reordered.
//
// Send blocks until the frame is handed to the transport or fails. A failed
// send surfaces immediately; the transport performs no retries, so delivery
// is attempted at most once per call.
type FrameTransport interface {
	Send(ctx context.Context, frame []byte) error
	Close() error
}
