package scan_test

import (
	"encoding/binary"
	"testing"

	"github.com/detlab/detdump/internal/dump"
	"github.com/detlab/detdump/internal/scan"
)

func buildDump(payloads ...[]byte) []byte {
	var buf []byte
	for _, p := range payloads {
		var prefix [8]byte
		binary.LittleEndian.PutUint64(prefix[:], uint64(len(p)))
		buf = append(append(buf, prefix[:]...), p...)
	}
	return buf
}

func TestTypeLabel(t *testing.T) {
	classifier := scan.JSONClassifier{}

	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{"json with discriminator", []byte(`{"htype":"dheader-1.0"}`), "dheader-1.0"},
		{"json without discriminator", []byte(`{"series":1}`), "<unknown>"},
		{"non-string discriminator", []byte(`{"htype":42}`), "<unknown>"},
		{"binary blob", []byte{0xde, 0xad, 0xbe, 0xef}, "<binary>"},
		{"non-object json", []byte(`[1,2,3]`), "<binary>"},
		{"json null", []byte(`null`), "<binary>"},
		{"empty record", nil, "<binary>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := classifier.Classify(tt.raw)
			if got := scan.TypeLabel(msg, ok); got != tt.want {
				t.Errorf("TypeLabel(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	// Two recorded acquisitions back to back: 2 headers, 2 configurations,
	// 6 opaque binary payloads in 6 quadruples.
	var payloads [][]byte
	for series := 0; series < 2; series++ {
		payloads = append(payloads,
			[]byte(`{"htype":"dheader-1.0"}`),
			[]byte(`{"htype":"dconfig-1.0","nimages":3,"trigger_mode":"ints","ntrigger":1}`),
		)
		for img := 0; img < 3; img++ {
			payloads = append(payloads,
				[]byte(`{"htype":"dimage-1.0","series":1,"frame":0}`),
				[]byte(`{"htype":"dimage_d-1.0","shape":[16,16]}`),
				[]byte{0x00, 0x01, 0xfe, 0xff},
				[]byte(`{"htype":"dconfig-1.0","real_time":100}`),
			)
		}
	}
	store := dump.NewStore(buildDump(payloads...))

	summary, err := scan.Summarize(store, scan.JSONClassifier{})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	want := map[string]int{
		"dheader-1.0":  2,
		"dconfig-1.0":  8, // 2 configurations + 6 image trailers
		"dimage-1.0":   6,
		"dimage_d-1.0": 6,
		"<binary>":     6,
	}
	for label, count := range want {
		if summary[label] != count {
			t.Errorf("summary[%q] = %d, want %d", label, summary[label], count)
		}
	}
	if len(summary) != len(want) {
		t.Errorf("summary has %d labels, want %d: %v", len(summary), len(want), summary)
	}

	images, err := scan.ImageCount(store, scan.JSONClassifier{})
	if err != nil {
		t.Fatalf("ImageCount: %v", err)
	}
	if images != 6 {
		t.Errorf("ImageCount = %d, want 6 (one binary payload per quadruple)", images)
	}
}

func TestSummarize_CorruptStore(t *testing.T) {
	data := buildDump([]byte(`{"htype":"dheader-1.0"}`))
	data = append(data, 0x01, 0x02) // trailing garbage, not a full prefix

	if _, err := scan.Summarize(dump.NewStore(data), scan.JSONClassifier{}); err == nil {
		t.Error("Summarize on corrupt store succeeded, want framing error")
	}
}

func TestClassify_PreservesRawValues(t *testing.T) {
	raw := []byte(`{"htype":"dconfig-1.0","beam_center_x":123.450,"wavelength":1e-10}`)
	msg, ok := scan.JSONClassifier{}.Classify(raw)
	if !ok {
		t.Fatal("Classify = binary, want JSON")
	}
	if got := string(msg["beam_center_x"]); got != "123.450" {
		t.Errorf("beam_center_x raw value = %q, want %q", got, "123.450")
	}
	if got := string(msg["wavelength"]); got != "1e-10" {
		t.Errorf("wavelength raw value = %q, want %q", got, "1e-10")
	}
	if got := scan.TypeLabel(msg, ok); got != "dconfig-1.0" {
		t.Errorf("TypeLabel = %q, want dconfig-1.0", got)
	}
}
