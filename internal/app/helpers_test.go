package app_test

import (
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/detlab/detdump/internal/dump"
)

// appendRecord frames payload with the 8-byte little-endian length prefix.
func appendRecord(buf, payload []byte) []byte {
	var prefix [8]byte
	binary.LittleEndian.PutUint64(prefix[:], uint64(len(payload)))
	return append(append(buf, prefix[:]...), payload...)
}

// acquisitionRecords builds the records of one recorded acquisition:
// header, configuration, then nimages quadruples. The configuration's
// nimages field deliberately disagrees with the real quadruple count, and
// carries an extra field the tool knows nothing about.
func acquisitionRecords(nimages int) [][]byte {
	records := [][]byte{
		[]byte(`{"htype":"dheader-1.0","header_detail":"basic","series":5}`),
		[]byte(`{"htype":"dconfig-1.0","nimages":999,"trigger_mode":"ints","ntrigger":1,"beam_center_x":123.450}`),
	}
	for i := 0; i < nimages; i++ {
		records = append(records,
			[]byte(fmt.Sprintf(`{"htype":"dimage-1.0","series":5,"frame":%d,"hash":"h%d"}`, i, i)),
			[]byte(fmt.Sprintf(`{"htype":"dimage_d-1.0","shape":[16,16],"type":"uint16","tag":%d}`, i)),
			[]byte{0xde, 0xad, byte(i), 0xef},
			[]byte(fmt.Sprintf(`{"htype":"dconfig-1.0","start_time":%d,"stop_time":%d}`, i*10, i*10+9)),
		)
	}
	return records
}

func buildDump(records [][]byte) []byte {
	var buf []byte
	for _, r := range records {
		buf = appendRecord(buf, r)
	}
	return buf
}

// readAll parses a framed stream back into its record payloads.
func readAll(t *testing.T, data []byte) [][]byte {
	t.Helper()
	var records [][]byte
	cursor := dump.NewStore(data).Cursor()
	for !cursor.IsAtEnd() {
		raw, err := cursor.ReadRawMsg()
		if err != nil {
			t.Fatalf("parse emitted stream: %v", err)
		}
		records = append(records, raw)
	}
	return records
}
