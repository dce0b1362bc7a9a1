package dump

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WriteRecord emits one record to w using the dump framing convention:
// an 8-byte little-endian signed length followed by the payload. Output
// produced through WriteRecord is itself a valid, replayable dump stream.
func WriteRecord(w io.Writer, payload []byte) error {
	var prefix [lengthPrefixSize]byte
	binary.LittleEndian.PutUint64(prefix[:], uint64(int64(len(payload))))
	if _, err := w.Write(prefix[:]); err != nil {
		return fmt.Errorf("write length prefix: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}
