package domain

import "fmt"

// Discriminator is the JSON field that identifies a message's logical type
// and version. Binary records carry no discriminator at all.
const Discriminator = "htype"

// FrameField is the image-header field holding the zero-based frame index.
const FrameField = "frame"

// Known discriminator values.
const (
	// HeaderType marks the acquisition stream header.
	HeaderType = "dheader-1.0"

	// SeriesEndType marks the end-of-stream record a live detector emits.
	SeriesEndType = "dseries_end-1.0"
)

// Labels assigned to records without a usable discriminator.
const (
	// LabelBinary is reported for records that do not parse as JSON.
	LabelBinary = "<binary>"

	// LabelUnknown is reported for JSON records without a string discriminator.
	LabelUnknown = "<unknown>"
)

// DHeader is the stream header message that opens an acquisition.
type DHeader struct {
	Htype        string `json:"htype"`
	HeaderDetail string `json:"header_detail,omitempty"`
	Series       int64  `json:"series,omitempty"`
}

// DetectorConfig is the configuration message that follows the header.
// Fields are pointers so that an absent field is distinguishable from a
// zero value; the record carries many more fields than these, which pass
// through untouched.
type DetectorConfig struct {
	NImages     *int64  `json:"nimages"`
	TriggerMode *string `json:"trigger_mode"`
	NTrigger    *int64  `json:"ntrigger"`
}

// Validate checks that the required configuration fields are present.
func (c *DetectorConfig) Validate() error {
	if c.NImages == nil {
		return fmt.Errorf("missing field %q: %w", "nimages", ErrConfigParse)
	}
	if c.TriggerMode == nil {
		return fmt.Errorf("missing field %q: %w", "trigger_mode", ErrConfigParse)
	}
	if c.NTrigger == nil {
		return fmt.Errorf("missing field %q: %w", "ntrigger", ErrConfigParse)
	}
	return nil
}

// DImage is the per-image header message, the first record of a quadruple.
type DImage struct {
	Htype  string `json:"htype"`
	Series int64  `json:"series"`
	Frame  int64  `json:"frame"`
	Hash   string `json:"hash,omitempty"`
}
