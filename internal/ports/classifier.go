package ports

import "encoding/json"

// Classifier decides whether a raw record is a JSON message or opaque binary.
//
// The dump format carries no explicit tag distinguishing the two, so every
// implementation is a heuristic by necessity. The second return value is
// false when the record should be treated as binary; that outcome is not an
// error. Field values are kept as raw JSON so callers can re-emit them
// without disturbing their original formatting.
type Classifier interface {
	Classify(raw []byte) (map[string]json.RawMessage, bool)
}
