// Package numpress provides a lossless compression codec for sequences of
// numbers: signed and unsigned integers of varied widths, IEEE-754 floats,
// and nanosecond/microsecond timestamps.
//
// Sequences are encoded into self-contained chunks built around
// range-partitioned prefix coding, with optional delta encoding, run-length
// escapes, GCD factoring, and byte-level body compression.
//
// # Core Features
//
//   - Order-preserving numeric abstraction over 11 number types
//   - Huffman-style prefix tables over equal-frequency ranges
//   - Finite-difference (delta) encoding up to order 7
//   - Opportunistic GCD factoring of range offsets
//   - Optional body compression (Zstd, S2, LZ4, Gzip)
//   - Optional xxHash64 body checksums
//
// # Basic Usage
//
// Compressing and decompressing a sequence of int64 values:
//
//	import (
//	    "github.com/arloliu/numpress"
//	    "github.com/arloliu/numpress/file"
//	    "github.com/arloliu/numpress/numeric"
//	)
//
//	cfg := file.DefaultConfig()
//	cfg.DeltaEncodingOrder = 1
//
//	data, err := numpress.Compress(numeric.Int64Type, values, cfg)
//	if err != nil {
//	    return err
//	}
//
//	decoded, err := numpress.Decompress(numeric.Int64Type, data)
//	if err != nil {
//	    return err
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the file
// package. For chunk-level control (streaming chunks, inspecting metadata),
// use the file and chunk packages directly.
package numpress

import (
	"github.com/arloliu/numpress/file"
	"github.com/arloliu/numpress/format"
	"github.com/arloliu/numpress/numeric"
)

// Compress encodes values into a complete numpress file. Inputs larger than
// the per-chunk limit are split across consecutive chunks.
func Compress[T, S any](dt numeric.Type[T, S], values []T, cfg file.Config) ([]byte, error) {
	c, err := file.NewCompressor(dt, cfg)
	if err != nil {
		return nil, err
	}

	for len(values) > 0 {
		n := min(len(values), format.MaxEntriesPerChunk)
		if err := c.Chunk(values[:n]); err != nil {
			return nil, err
		}
		values = values[n:]
	}

	return c.Finish()
}

// Decompress decodes a complete numpress file produced by Compress for the
// same number type.
func Decompress[T, S any](dt numeric.Type[T, S], data []byte) ([]T, error) {
	return file.NewDecompressor(dt).Decompress(data)
}
