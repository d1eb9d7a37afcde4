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
	"github.com/arloliu/numpress/internal/pool"
	"github.com/arloliu/numpress/numeric"
	"github.com/arloliu/numpress/section"
)

// Compressor encodes a numpress file for one number type. The header is
// written on construction; each Chunk call appends one self-contained
// chunk; Finish terminates the stream and returns the file bytes.
//
// A Compressor is single-use and not safe for concurrent use. Parallelism
// belongs above this layer: chunks are self-contained, so disjoint chunks
// can be built by disjoint workers and concatenated between header and
// terminator.
type Compressor[T, S any] struct {
	dt       numeric.Type[T, S]
	flags    section.Flags
	codec    compress.Codec
	w        *bitio.Writer
	finished bool
}

// NewCompressor creates a Compressor with the given config and writes the
// file header.
func NewCompressor[T, S any](dt numeric.Type[T, S], cfg Config) (*Compressor[T, S], error) {
	flags, err := cfg.flags()
	if err != nil {
		return nil, err
	}
	codec, err := compress.GetCodec(cfg.Compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidArgument, err)
	}

	w := bitio.NewWriter(pool.BodyBufferDefaultSize)
	if err := w.WriteAlignedBytes(section.NewHeader(dt.HeaderByte(), flags).Bytes()); err != nil {
		return nil, err
	}

	return &Compressor[T, S]{
		dt:    dt,
		flags: flags,
		codec: codec,
		w:     w,
	}, nil
}

// Chunk encodes one chunk of numbers: metadata first with a placeholder
// body size, then the bit-packed (and optionally compressed) body, then the
// back-patched final size.
func (c *Compressor[T, S]) Chunk(values []T) error {
	if c.finished {
		return fmt.Errorf("%w: compressor already finished", errs.ErrInvalidArgument)
	}
	n := len(values)
	if n == 0 {
		return fmt.Errorf("%w: chunk must contain at least one number", errs.ErrInvalidArgument)
	}
	if n > format.MaxEntriesPerChunk {
		return fmt.Errorf("%w: chunk of %d numbers exceeds maximum %d",
			errs.ErrInvalidArgument, n, format.MaxEntriesPerChunk)
	}

	if err := c.w.WriteAlignedBytes([]byte{format.MagicChunkByte}); err != nil {
		return err
	}
	bitIdx := c.w.BitPosition()

	meta := chunk.ChunkMetadata[T, S]{N: n}
	order := c.flags.DeltaEncodingOrder()

	var deltas []S
	if order == 0 {
		meta.Prefixes = chunk.BuildPrefixes(c.dt, values, c.flags.UseGCDs())
	} else {
		meta.Moments, deltas = chunk.DeltaEncode(c.dt, values, order)
		meta.DeltaPrefixes = chunk.BuildPrefixes(c.dt.SignedType(), deltas, c.flags.UseGCDs())
	}
	meta.WriteTo(c.dt, c.w, c.flags)

	bb := pool.GetBodyBuffer()
	defer pool.PutBodyBuffer(bb)

	bodyW := bitio.NewWriterBuffer(bb.B)
	var err error
	if order == 0 {
		err = chunk.EncodeBody(c.dt, values, meta.Prefixes, bodyW)
	} else {
		err = chunk.EncodeBody(c.dt.SignedType(), deltas, meta.DeltaPrefixes, bodyW)
	}
	if err != nil {
		return err
	}
	bb.B = bodyW.Bytes()

	stored, err := c.codec.Compress(bb.B)
	if err != nil {
		return err
	}

	meta.CompressedBodySize = len(stored)
	meta.UpdateWriteCompressedBodySize(c.w, bitIdx)

	if err := c.w.WriteAlignedBytes(stored); err != nil {
		return err
	}
	if c.flags.HasChecksum() {
		var sum [8]byte
		binary.BigEndian.PutUint64(sum[:], hash.Checksum(stored))
		if err := c.w.WriteAlignedBytes(sum[:]); err != nil {
			return err
		}
	}

	return nil
}

// Finish terminates the chunk sequence and returns the complete file bytes.
// The Compressor is unusable afterwards.
func (c *Compressor[T, S]) Finish() ([]byte, error) {
	if c.finished {
		return nil, fmt.Errorf("%w: compressor already finished", errs.ErrInvalidArgument)
	}
	if err := c.w.WriteAlignedBytes([]byte{format.MagicTerminationByte}); err != nil {
		return nil, err
	}
	c.finished = true

	return c.w.Bytes(), nil
}
