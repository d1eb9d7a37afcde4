package file

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/numpress/bitio"
	"github.com/arloliu/numpress/chunk"
	"github.com/arloliu/numpress/compress"
	"github.com/arloliu/numpress/errs"
	"github.com/arloliu/numpress/format"
	"github.com/arloliu/numpress/internal/hash"
	"github.com/arloliu/numpress/numeric"
	"github.com/arloliu/numpress/section"
)

// Decompressor decodes a numpress file for one number type. It is stateless
// and safe for concurrent use; each Decompress call works on its own
// reader.
type Decompressor[T, S any] struct {
	dt numeric.Type[T, S]
}

// NewDecompressor creates a Decompressor for the given number type.
func NewDecompressor[T, S any](dt numeric.Type[T, S]) *Decompressor[T, S] {
	return &Decompressor[T, S]{dt: dt}
}

// Decompress decodes a complete file and returns all numbers in order. A
// corrupt chunk aborts decoding; numbers from chunks parsed before the
// corruption are not returned.
func (d *Decompressor[T, S]) Decompress(data []byte) ([]T, error) {
	r := bitio.NewReader(data)

	headerBytes, err := r.ReadAlignedBytes(section.HeaderSize)
	if err != nil {
		return nil, err
	}
	header, err := section.ParseHeader(headerBytes)
	if err != nil {
		return nil, err
	}
	if header.NumberType != d.dt.HeaderByte() {
		return nil, fmt.Errorf("%w: file holds type %d, requested type %d",
			errs.ErrHeaderByteMismatch, header.NumberType, d.dt.HeaderByte())
	}

	flags := header.Flag
	codec, err := compress.GetCodec(flags.Compression())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrCorruption, err)
	}

	var out []T
	for {
		magic, err := r.ReadAlignedBytes(1)
		if err != nil {
			return nil, err
		}
		switch magic[0] {
		case format.MagicTerminationByte:
			return out, nil
		case format.MagicChunkByte:
		default:
			return nil, fmt.Errorf("%w: got %d", errs.ErrInvalidMagicChunkByte, magic[0])
		}

		values, err := d.decompressChunk(r, flags, codec)
		if err != nil {
			return nil, err
		}
		out = append(out, values...)
	}
}

func (d *Decompressor[T, S]) decompressChunk(r *bitio.Reader, flags section.Flags, codec compress.Codec) ([]T, error) {
	meta, err := chunk.ParseChunkMetadata(d.dt, r, flags)
	if err != nil {
		return nil, err
	}

	stored, err := r.ReadAlignedBytes(meta.CompressedBodySize)
	if err != nil {
		return nil, err
	}
	if flags.HasChecksum() {
		sumBytes, err := r.ReadAlignedBytes(8)
		if err != nil {
			return nil, err
		}
		if got := hash.Checksum(stored); got != binary.BigEndian.Uint64(sumBytes) {
			return nil, fmt.Errorf("%w: computed %016x, stored %016x",
				errs.ErrChecksumMismatch, got, binary.BigEndian.Uint64(sumBytes))
		}
	}

	body, err := codec.Decompress(stored)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrCorruption, err)
	}
	bodyR := bitio.NewReader(body)

	order := flags.DeltaEncodingOrder()
	if order == 0 {
		return chunk.DecodeBody(d.dt, meta.Prefixes, meta.N, bodyR)
	}

	deltas, err := chunk.DecodeBody(d.dt.SignedType(), meta.DeltaPrefixes, max(0, meta.N-order), bodyR)
	if err != nil {
		return nil, err
	}

	return chunk.DeltaDecode(d.dt, meta.Moments, deltas, meta.N), nil
}
