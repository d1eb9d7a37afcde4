package compress

// ZstdCompressor provides Zstandard compression for chunk bodies. It favors
// compression ratio over speed, which suits archival of large numeric
// datasets where decompression happens infrequently.
//
// Two implementations exist behind build tags: a cgo one based on
// valyala/gozstd, selected whenever cgo is enabled, and a pure-Go one based
// on klauspost/compress, selected when cgo is disabled.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
