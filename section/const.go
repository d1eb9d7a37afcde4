package section

// Bit masks for the packed Flags.Options field.
const (
	DeltaOrderMask   = 0x0007 // Mask for delta encoding order (bits 0-2)
	GCDMask          = 0x0008 // Mask for GCD factoring bit (bit 3)
	ChecksumMask     = 0x0010 // Mask for body checksum bit (bit 4)
	ReservedLowMask  = 0x00E0 // Mask for reserved bits (bits 5-7), must be 0
	CompressionMask  = 0x0F00 // Mask for body compression type (bits 8-11)
	ReservedHighMask = 0xF000 // Mask for reserved bits (bits 12-15), must be 0

	CompressionShift = 8
)

// Offsets and sizes of the fixed file header.
const (
	HeaderSize       = 8 // fixed header size in bytes
	MagicOffset      = 0 // byte offset of the 4-byte magic
	VersionOffset    = 4 // byte offset of the format version byte
	NumberTypeOffset = 5 // byte offset of the number type header byte
	OptionsOffset    = 6 // byte offset of the 2-byte packed options field
)
