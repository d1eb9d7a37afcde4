// Package section defines the byte-level file header and the packed flags
// that parameterize chunk metadata (de)serialization.
package section

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/numpress/errs"
	"github.com/arloliu/numpress/format"
)

// Flags is the packed field of chunk-wide options carried in the file
// header. The chunk metadata parser treats it as a read-only input.
type Flags struct {
	// Options is a packed field for various options.
	// Bits 0-2 are the delta encoding order (0-7).
	// Bit 3 is the GCD factoring flag; when off, no GCD bits are spent.
	// Bit 4 is the body checksum flag.
	// Bits 5-7 are reserved for future use, must be set to 0.
	// Bits 8-11 are the body compression type.
	// Bits 12-15 are reserved for future use, must be set to 0.
	Options uint16
}

var validCompressions = map[format.CompressionType]struct{}{
	format.CompressionNone: {},
	format.CompressionZstd: {},
	format.CompressionS2:   {},
	format.CompressionLZ4:  {},
	format.CompressionGzip: {},
}

// NewFlags creates Flags with default settings: no delta encoding, GCD
// factoring on, no checksum, no body compression.
func NewFlags() Flags {
	flags := Flags{}
	flags.WithGCDs()
	flags.SetCompression(format.CompressionNone)

	return flags
}

// DeltaEncodingOrder returns the finite-difference order from bits 0-2.
func (f Flags) DeltaEncodingOrder() int {
	return int(f.Options & DeltaOrderMask)
}

// SetDeltaEncodingOrder sets the finite-difference order in bits 0-2.
func (f *Flags) SetDeltaEncodingOrder(order int) error {
	if order < 0 || order > format.MaxDeltaEncodingOrder {
		return fmt.Errorf("%w: delta encoding order %d outside [0, %d]",
			errs.ErrInvalidArgument, order, format.MaxDeltaEncodingOrder)
	}
	f.Options = f.Options&^DeltaOrderMask | uint16(order)

	return nil
}

// UseGCDs returns whether GCD factoring bits are present in chunk metadata.
func (f Flags) UseGCDs() bool {
	return f.Options&GCDMask != 0
}

// WithGCDs enables GCD factoring.
func (f *Flags) WithGCDs() {
	f.Options |= GCDMask
}

// WithoutGCDs disables GCD factoring.
func (f *Flags) WithoutGCDs() {
	f.Options &^= GCDMask
}

// HasChecksum returns whether each chunk body is followed by a checksum.
func (f Flags) HasChecksum() bool {
	return f.Options&ChecksumMask != 0
}

// SetChecksum enables or disables the per-chunk body checksum.
func (f *Flags) SetChecksum(enabled bool) {
	if enabled {
		f.Options |= ChecksumMask
	} else {
		f.Options &^= ChecksumMask
	}
}

// Compression returns the body compression type from bits 8-11.
func (f Flags) Compression() format.CompressionType {
	return format.CompressionType((f.Options & CompressionMask) >> CompressionShift)
}

// SetCompression sets the body compression type in bits 8-11.
func (f *Flags) SetCompression(compression format.CompressionType) {
	f.Options = f.Options&^CompressionMask | uint16(compression)<<CompressionShift
}

// MaxPrefixCodeLen returns the maximum prefix-code length allowed in this
// file.
func (f Flags) MaxPrefixCodeLen() int {
	return format.MaxPrefixCodeLen
}

// BitsToEncodeCodeLen returns the width of the code length field in a prefix
// row.
func (f Flags) BitsToEncodeCodeLen() int {
	return bits.Len64(uint64(f.MaxPrefixCodeLen()))
}

// BitsToEncodeCount returns the minimum width able to represent any prefix
// count in [0, n].
func (f Flags) BitsToEncodeCount(n int) int {
	return bits.Len64(uint64(n))
}

// Validate checks that the flags contain valid values.
func (f Flags) Validate() error {
	if f.Options&(ReservedLowMask|ReservedHighMask) != 0 {
		return fmt.Errorf("%w: reserved bits set in options 0x%04X", errs.ErrInvalidHeaderFlags, f.Options)
	}
	if _, ok := validCompressions[f.Compression()]; !ok {
		return fmt.Errorf("%w: unknown compression type %d", errs.ErrInvalidHeaderFlags, f.Compression())
	}

	return nil
}
