// Package ws implements ports.FrameTransport over a websocket connection.
//
// Websocket messages preserve per-message boundaries end to end, which is
// the one property the frame sender requires of its transport: each record
// travels as exactly one binary message.
package ws

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/detlab/detdump/internal/domain"
)

// DefaultWriteTimeout bounds how long a single frame write may block on a
// stuck peer.
const DefaultWriteTimeout = 10 * time.Second

// Transport sends dump records over a websocket connection, one binary
// message per record. It is not safe for concurrent use; the frame sender
// sends strictly one frame at a time.
type Transport struct {
	conn         *websocket.Conn
	writeTimeout time.Duration
}

// Dial connects to a ws:// or wss:// endpoint. A writeTimeout of zero
// selects DefaultWriteTimeout.
func Dial(ctx context.Context, endpoint string, writeTimeout time.Duration) (*Transport, error) {
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %q: %w: %v", endpoint, domain.ErrTransport, err)
	}
	return &Transport{conn: conn, writeTimeout: writeTimeout}, nil
}

// Send transmits one record as a single binary websocket message. The write
// deadline is the shorter of the per-frame timeout and the context deadline.
func (t *Transport) Send(ctx context.Context, frame []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	deadline := time.Now().Add(t.writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := t.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("set write deadline: %w: %v", domain.ErrTransport, err)
	}
	if err := t.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		return fmt.Errorf("write frame: %w: %v", domain.ErrTransport, err)
	}
	return nil
}

// Close sends a close frame and tears down the connection.
func (t *Transport) Close() error {
	deadline := time.Now().Add(t.writeTimeout)
	// Best effort; the peer may already be gone.
	_ = t.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	return t.conn.Close()
}
