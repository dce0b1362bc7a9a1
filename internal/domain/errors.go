package domain

import "errors"

// Error kinds returned by detdump operations.
// All are fatal: the first one aborts the operation in progress, with no
// retry and no partial output. Wrapped errors can be checked with errors.Is.
var (
	// ErrIO is returned when the backing dump file cannot be opened or read.
	ErrIO = errors.New("detdump: cannot read backing store")

	// ErrFraming is returned when a record's declared length exceeds the
	// remaining bytes, or a read is attempted past end-of-stream.
	ErrFraming = errors.New("detdump: record framing violated")

	// ErrJSONParse is returned when a record that must be JSON of a known
	// shape fails to parse. Elsewhere, parse failure just means "binary".
	ErrJSONParse = errors.New("detdump: message is not valid JSON of the expected shape")

	// ErrConfigParse is returned when the detector configuration record is
	// missing a required field or is otherwise malformed.
	ErrConfigParse = errors.New("detdump: detector configuration is malformed")

	// ErrMissingHeader is returned when a targeted type-seek reaches
	// end-of-stream without finding a matching header.
	ErrMissingHeader = errors.New("detdump: no header of the requested type")

	// ErrTransport is returned when a live send over the network fails.
	ErrTransport = errors.New("detdump: transport send failed")
)
