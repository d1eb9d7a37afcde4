package format

// Bit widths of the fixed chunk metadata fields. These are part of the wire
// format and may not change within a format version.
const (
	BitsToEncodeNEntries           = 24 // chunk entry count field width
	BitsToEncodeCompressedBodySize = 32 // compressed body byte length field width
	BitsToEncodeNPrefixes          = 4  // prefix table row count field width
	BitsToEncodeJumpstart          = 5  // run-length jumpstart field width

	MaxEntriesPerChunk = 1<<BitsToEncodeNEntries - 1
	MaxPrefixTableSize = 1<<BitsToEncodeNPrefixes - 1
	MaxJumpstart       = 1<<BitsToEncodeJumpstart - 1

	// MaxDeltaEncodingOrder bounds the finite-difference order; the flag
	// field stores it in 3 bits.
	MaxDeltaEncodingOrder = 7

	// MaxPrefixCodeLen bounds the length of any Huffman-style prefix code.
	// Code lengths serialize in bitsToEncode(MaxPrefixCodeLen) = 5 bits.
	MaxPrefixCodeLen = 16
)

// Header bytes uniquely identifying each supported number type in the file
// header. Timestamp values are fixed at 8 and 9 by the format.
const (
	HeaderByteInt16          byte = 1
	HeaderByteInt32          byte = 2
	HeaderByteInt64          byte = 3
	HeaderByteUint16         byte = 4
	HeaderByteUint32         byte = 5
	HeaderByteUint64         byte = 6
	HeaderByteFloat32        byte = 7
	HeaderByteTimestampNano  byte = 8
	HeaderByteTimestampMicro byte = 9
	HeaderByteFloat64        byte = 10
	HeaderByteInt128         byte = 11
)

// File framing bytes.
const (
	FormatVersion byte = 1

	// MagicChunkByte introduces each chunk; MagicTerminationByte ends the
	// chunk sequence.
	MagicChunkByte       byte = 44
	MagicTerminationByte byte = 0
)

// MagicHeader starts every numpress file.
var MagicHeader = [4]byte{'n', 'p', 's', '!'}
