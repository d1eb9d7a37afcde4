// Package errs defines the sentinel errors shared across numpress packages.
//
// Errors form three root kinds:
//   - ErrInvalidArgument: a caller-supplied value is outside its domain.
//   - ErrCorruption: the bitstream violates a format invariant.
//   - ErrInsufficientData: a read advanced past the end of the buffer. It
//     wraps ErrCorruption, so errors.Is(err, ErrCorruption) also holds.
//
// Call sites wrap these sentinels with fmt.Errorf("%w: ...") to attach the
// offending values, so callers can match the kind with errors.Is while still
// seeing the concrete values in the message.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument indicates a caller-supplied value outside its domain.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCorruption indicates the bitstream violates a format invariant.
	ErrCorruption = errors.New("corrupted data")

	// ErrInsufficientData indicates a reader advanced past the end of its
	// buffer. It is a subcategory of ErrCorruption kept distinct for
	// diagnostics.
	ErrInsufficientData = fmt.Errorf("%w: insufficient data", ErrCorruption)
)

var (
	// ErrInvalidTimestamp indicates a timestamp parts count outside the
	// representable range of its resolution.
	ErrInvalidTimestamp = fmt.Errorf("%w: timestamp out of range", ErrInvalidArgument)

	// ErrInvalidMagicHeader indicates the file does not start with the
	// numpress magic bytes.
	ErrInvalidMagicHeader = fmt.Errorf("%w: invalid magic header", ErrCorruption)

	// ErrInvalidMagicChunkByte indicates a chunk does not start with the
	// chunk magic byte or the termination byte.
	ErrInvalidMagicChunkByte = fmt.Errorf("%w: invalid chunk magic byte", ErrCorruption)

	// ErrInvalidHeaderFlags indicates the file header flags contain invalid
	// or reserved values.
	ErrInvalidHeaderFlags = fmt.Errorf("%w: invalid header flags", ErrCorruption)

	// ErrInvalidHeaderSize indicates a header byte slice with the wrong length.
	ErrInvalidHeaderSize = fmt.Errorf("%w: invalid header size", ErrCorruption)

	// ErrHeaderByteMismatch indicates the file was written for a different
	// number type than the one requested for decompression.
	ErrHeaderByteMismatch = fmt.Errorf("%w: number type header byte mismatch", ErrInvalidArgument)

	// ErrChecksumMismatch indicates a chunk body checksum does not match its
	// stored value.
	ErrChecksumMismatch = fmt.Errorf("%w: body checksum mismatch", ErrCorruption)
)
