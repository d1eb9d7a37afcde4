// Package compress provides the byte-level codecs optionally applied to a
// chunk body after bit-packing.
//
// The prefix-coded body is already dense, but bodies built from skewed
// distributions still carry exploitable redundancy; the file flags record
// which codec, if any, each file uses.
package compress

import (
	"fmt"

	"github.com/arloliu/numpress/format"
)

// Compressor compresses a complete chunk body payload.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// The returned slice is newly allocated and owned by the caller unless
	// the codec documents otherwise; the input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a chunk body payload.
//
// Separate interfaces allow asymmetric implementations where compression
// and decompression have different resource requirements.
type Decompressor interface {
	// Decompress decompresses data previously compressed with the same
	// algorithm. It validates the data format and returns an error if the
	// data is corrupted or uses an incompatible format.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
	format.CompressionGzip: NewGzipCompressor(),
}

// GetCodec retrieves the built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
