package scan

import (
	"fmt"

	"github.com/detlab/detdump/internal/domain"
	"github.com/detlab/detdump/internal/dump"
	"github.com/detlab/detdump/internal/ports"
)

// Summarize scans every record of the store exactly once with a fresh
// cursor and returns a type-label to count mapping.
//
// The count under "<binary>" is the authoritative number of image
// quadruples: each quadruple contains exactly one binary record (the raw
// image payload). The nimages field in the recorded configuration may be
// stale and is never trusted.
func Summarize(store *dump.Store, classifier ports.Classifier) (map[string]int, error) {
	counts := make(map[string]int)
	cursor := store.Cursor()
	for !cursor.IsAtEnd() {
		raw, err := cursor.ReadRawMsg()
		if err != nil {
			return nil, fmt.Errorf("summarize: %w", err)
		}
		msg, ok := classifier.Classify(raw)
		counts[TypeLabel(msg, ok)]++
	}
	return counts, nil
}

// ImageCount returns the number of image quadruples recorded in the store.
func ImageCount(store *dump.Store, classifier ports.Classifier) (int, error) {
	summary, err := Summarize(store, classifier)
	if err != nil {
		return 0, err
	}
	return summary[domain.LabelBinary], nil
}
