// Package scan classifies dump records and builds whole-file summaries.
package scan

import (
	"encoding/json"

	"github.com/detlab/detdump/internal/domain"
)

// JSONClassifier implements ports.Classifier with a strict JSON parse.
//
// Any record that fails to parse as a JSON object is treated as opaque
// binary. This is a known ambiguity of the dump format, kept deliberately:
// a binary blob that happens to parse as JSON is misclassified, and the
// format offers no way to tell.
type JSONClassifier struct{}

// Classify attempts to parse raw as a JSON object.
func (JSONClassifier) Classify(raw []byte) (map[string]json.RawMessage, bool) {
	var msg map[string]json.RawMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, false
	}
	if msg == nil {
		// "null" parses but is not an object.
		return nil, false
	}
	return msg, true
}

// TypeLabel maps a classification result to the record's type label:
// "<binary>" when classification failed, the discriminator when present
// and a JSON string, "<unknown>" otherwise.
func TypeLabel(msg map[string]json.RawMessage, ok bool) string {
	if !ok {
		return domain.LabelBinary
	}
	raw, found := msg[domain.Discriminator]
	if !found {
		return domain.LabelUnknown
	}
	var htype string
	if err := json.Unmarshal(raw, &htype); err != nil {
		return domain.LabelUnknown
	}
	return htype
}
