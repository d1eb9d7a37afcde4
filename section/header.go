package section

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/arloliu/numpress/errs"
	"github.com/arloliu/numpress/format"
)

// Header is the fixed-size section at the start of a numpress file. It pins
// the format version, the number type every chunk in the file carries, and
// the packed flags the chunk metadata parser consumes.
type Header struct {
	// Version is the format version byte.
	Version byte
	// NumberType is the header byte of the number type stored in this file.
	NumberType byte
	// Flag is the packed options field.
	Flag Flags
}

// NewHeader creates a Header for the given number type with the given flags.
func NewHeader(numberType byte, flags Flags) Header {
	return Header{
		Version:    format.FormatVersion,
		NumberType: numberType,
		Flag:       flags,
	}
}

// Bytes serializes the Header into a fixed HeaderSize byte slice.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	copy(b[MagicOffset:], format.MagicHeader[:])
	b[VersionOffset] = h.Version
	b[NumberTypeOffset] = h.NumberType
	binary.BigEndian.PutUint16(b[OptionsOffset:], h.Flag.Options)

	return b
}

// Parse parses the header from a byte slice of exactly HeaderSize bytes.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: expected %d bytes, got %d", errs.ErrInvalidHeaderSize, HeaderSize, len(data))
	}
	if !bytes.Equal(data[MagicOffset:MagicOffset+4], format.MagicHeader[:]) {
		return fmt.Errorf("%w: got % X", errs.ErrInvalidMagicHeader, data[MagicOffset:MagicOffset+4])
	}

	h.Version = data[VersionOffset]
	if h.Version != format.FormatVersion {
		return fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidHeaderFlags, h.Version)
	}

	h.NumberType = data[NumberTypeOffset]
	h.Flag.Options = binary.BigEndian.Uint16(data[OptionsOffset:])

	return h.Flag.Validate()
}

// ParseHeader parses a Header from the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: expected at least %d bytes, got %d",
			errs.ErrInvalidHeaderSize, HeaderSize, len(data))
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
