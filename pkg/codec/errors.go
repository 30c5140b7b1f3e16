package codec

import "errors"

var (
	// ErrOutOfData is returned when the cursor has fewer bytes than a
	// fixed-width or length-prefixed read requires.
	ErrOutOfData = errors.New("codec: out of data")

	// ErrInvalidData is returned when bytes are present but semantically
	// invalid for the target type, such as non-UTF-8 string data.
	ErrInvalidData = errors.New("codec: invalid data")

	// ErrUnknownFieldNumber is returned when a visitor is asked for a field
	// index outside the schema's declared range.
	ErrUnknownFieldNumber = errors.New("codec: unknown field number")

	// ErrTrailingBytes is returned when a decode finished but input bytes
	// remain; it signals corruption or a writer/reader layout mismatch.
	ErrTrailingBytes = errors.New("codec: trailing bytes after value")

	// ErrEncodeUnknown is returned when encoding cannot complete. No partial
	// output is valid after this error.
	ErrEncodeUnknown = errors.New("codec: encode failed")
)
