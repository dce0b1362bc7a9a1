package dump

import (
	"fmt"
	"os"

	"github.com/detlab/detdump/internal/domain"
)

// Store is an immutable, in-memory view of one dump file.
type Store struct {
	data []byte
}

// Open reads the dump file at path into a Store.
func Open(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open dump %q: %w: %v", path, domain.ErrIO, err)
	}
	return NewStore(data), nil
}

// NewStore wraps raw dump bytes in a Store. The store borrows data; the
// caller must not mutate it afterwards.
func NewStore(data []byte) *Store {
	return &Store{data: data}
}

// Size returns the total length of the store in bytes.
func (s *Store) Size() int64 {
	return int64(len(s.data))
}

// Cursor returns a fresh cursor positioned at the first record.
func (s *Store) Cursor() *Cursor {
	return &Cursor{store: s}
}

// CursorAt returns a cursor resuming a position previously obtained from
// Cursor.Offset and Cursor.MsgIdx. The offset must lie on a record boundary.
func (s *Store) CursorAt(offset int64, idx int) *Cursor {
	return &Cursor{store: s, off: offset, idx: idx}
}
