package dump

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/detlab/detdump/internal/domain"
	"github.com/detlab/detdump/internal/ports"
)

// lengthPrefixSize is the fixed size of the little-endian length prefix.
const lengthPrefixSize = 8

// Cursor is a sequential reader over a Store. It owns no payload data: raw
// messages are sub-slices of the store's bytes.
type Cursor struct {
	store *Store
	off   int64
	idx   int
}

// MsgIdx returns the zero-based index of the next record to be read.
func (c *Cursor) MsgIdx() int {
	return c.idx
}

// Offset returns the byte offset of the next record to be read.
func (c *Cursor) Offset() int64 {
	return c.off
}

// IsAtEnd reports whether the cursor has consumed the whole store.
func (c *Cursor) IsAtEnd() bool {
	return c.off == c.store.Size()
}

// ReadRawMsg returns the next record's payload and advances the cursor by
// one message. Reading past end-of-stream, or hitting a record whose
// declared length exceeds the remaining bytes, fails with ErrFraming;
// callers are expected to check IsAtEnd first.
func (c *Cursor) ReadRawMsg() ([]byte, error) {
	data := c.store.data
	if c.off+lengthPrefixSize > int64(len(data)) {
		return nil, fmt.Errorf("msg %d at offset %d: truncated length prefix: %w",
			c.idx, c.off, domain.ErrFraming)
	}
	length := int64(binary.LittleEndian.Uint64(data[c.off:]))
	body := c.off + lengthPrefixSize
	if length < 0 || length > int64(len(data))-body {
		return nil, fmt.Errorf("msg %d at offset %d: declared length %d exceeds %d remaining bytes: %w",
			c.idx, c.off, length, int64(len(data))-body, domain.ErrFraming)
	}
	payload := data[body : body+length]
	c.off = body + length
	c.idx++
	return payload, nil
}

// SeekToMsgIdx repositions the cursor at message index n. The format keeps
// no offset index, so this rescans from the start of the store.
func (c *Cursor) SeekToMsgIdx(n int) error {
	c.off = 0
	c.idx = 0
	for c.idx < n {
		if _, err := c.ReadRawMsg(); err != nil {
			return fmt.Errorf("seek to msg %d: %w", n, err)
		}
	}
	return nil
}

// SeekToFirstHeaderOfType scans forward from the current position until a
// JSON record whose discriminator equals htype is found, leaving the cursor
// positioned AT that record (not yet consumed). Reaching end-of-stream
// without a match fails with ErrMissingHeader.
func (c *Cursor) SeekToFirstHeaderOfType(classifier ports.Classifier, htype string) error {
	for !c.IsAtEnd() {
		off, idx := c.off, c.idx
		raw, err := c.ReadRawMsg()
		if err != nil {
			return fmt.Errorf("seek to header %q: %w", htype, err)
		}
		msg, ok := classifier.Classify(raw)
		if !ok {
			continue
		}
		rawType, found := msg[domain.Discriminator]
		if !found {
			continue
		}
		var got string
		if err := json.Unmarshal(rawType, &got); err != nil {
			continue
		}
		if got == htype {
			c.off, c.idx = off, idx
			return nil
		}
	}
	return fmt.Errorf("reached end of stream seeking header %q: %w", htype, domain.ErrMissingHeader)
}

// ReadAs reads the next record and parses it strictly into T. It also
// returns the raw payload so callers can re-emit or re-parse it loosely.
func ReadAs[T any](c *Cursor) (T, []byte, error) {
	var v T
	raw, err := c.ReadRawMsg()
	if err != nil {
		return v, nil, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, raw, fmt.Errorf("msg %d: %v: %w", c.idx-1, err, domain.ErrJSONParse)
	}
	return v, raw, nil
}
