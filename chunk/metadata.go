package chunk

import (
	"fmt"

	"github.com/arloliu/numpress/bitio"
	"github.com/arloliu/numpress/errs"
	"github.com/arloliu/numpress/format"
	"github.com/arloliu/numpress/numeric"
	"github.com/arloliu/numpress/section"
)

// ChunkMetadata is the self-describing header of one chunk: how many
// numbers follow, how many compressed body bytes follow, and how the body
// was coded.
//
// The prefix table lives in exactly one of two variants, selected by the
// file's delta encoding order before any prefix bits are read:
//   - order 0: Prefixes, over the number type itself.
//   - order >= 1: DeltaPrefixes over the signed companion type (the body
//     encodes deltas, not originals), plus the initial Moments.
//
// A metadata value is immutable after construction except for one
// controlled back-patch: CompressedBodySize is written as a placeholder
// before the body is encoded and overwritten in place once the body length
// is known.
type ChunkMetadata[T, S any] struct {
	// N is the count of numbers in the chunk.
	N int
	// CompressedBodySize is the byte length of the body immediately
	// following this metadata section.
	CompressedBodySize int

	// Prefixes is the table for delta order 0.
	Prefixes []Prefix[T]

	// DeltaPrefixes and Moments are the table and transform state for delta
	// order >= 1.
	DeltaPrefixes []Prefix[S]
	Moments       DeltaMoments[S]
}

func parsePrefixes[T, S any](dt numeric.Type[T, S], r *bitio.Reader, flags section.Flags, n int) ([]Prefix[T], error) {
	nPref, err := r.ReadUsize(format.BitsToEncodeNPrefixes)
	if err != nil {
		return nil, err
	}

	bitsToEncodeCount := flags.BitsToEncodeCount(n)
	bitsToEncodeCodeLen := flags.BitsToEncodeCodeLen()

	var commonGCD numeric.Uint128
	hasCommonGCD := false
	if flags.UseGCDs() {
		declared, err := r.ReadOne()
		if err != nil {
			return nil, err
		}
		if declared {
			commonGCD, err = readGCD(numeric.MaxUint128(dt.UnsignedBits()), r)
			if err != nil {
				return nil, err
			}
			hasCommonGCD = true
		}
	} else {
		commonGCD = numeric.U128From64(1)
		hasCommonGCD = true
	}

	if nPref == 0 {
		return nil, nil
	}
	prefixes := make([]Prefix[T], 0, nPref)
	for i := 0; i < nPref; i++ {
		count, err := r.ReadUsize(bitsToEncodeCount)
		if err != nil {
			return nil, err
		}
		lower, err := dt.ReadFrom(r)
		if err != nil {
			return nil, err
		}
		upper, err := dt.ReadFrom(r)
		if err != nil {
			return nil, err
		}

		lowerU := dt.ToUnsigned(lower)
		upperU := dt.ToUnsigned(upper)
		if lowerU.Cmp(upperU) > 0 {
			return nil, fmt.Errorf("%w: prefix lower bound %s may not be greater than upper bound %s",
				errs.ErrCorruption, dt.Format(lower), dt.Format(upper))
		}

		codeLen, err := r.ReadUsize(bitsToEncodeCodeLen)
		if err != nil {
			return nil, err
		}
		if codeLen > flags.MaxPrefixCodeLen() {
			return nil, fmt.Errorf("%w: prefix code length %d exceeds maximum %d",
				errs.ErrCorruption, codeLen, flags.MaxPrefixCodeLen())
		}
		code, err := r.ReadBits(codeLen)
		if err != nil {
			return nil, err
		}

		jumpstart := NoJumpstart
		hasJumpstart, err := r.ReadOne()
		if err != nil {
			return nil, err
		}
		if hasJumpstart {
			jumpstart, err = r.ReadUsize(format.BitsToEncodeJumpstart)
			if err != nil {
				return nil, err
			}
		}

		gcd := commonGCD
		if !hasCommonGCD {
			bound := upperU.Sub(lowerU)
			gcd, err = readGCD(bound, r)
			if err != nil {
				return nil, err
			}
			if _, rem := bound.QuoRem(gcd); !rem.IsZero() {
				return nil, fmt.Errorf("%w: gcd %s does not divide prefix range %s",
					errs.ErrCorruption, gcd, bound)
			}
		}

		prefixes = append(prefixes, Prefix[T]{
			Count:           count,
			Lower:           lower,
			Upper:           upper,
			Code:            code,
			RunLenJumpstart: jumpstart,
			GCD:             gcd,
		})
	}

	return prefixes, nil
}

func writePrefixes[T, S any](dt numeric.Type[T, S], prefixes []Prefix[T], w *bitio.Writer, flags section.Flags, n int) {
	w.WriteUsize(len(prefixes), format.BitsToEncodeNPrefixes)

	bitsToEncodeCount := flags.BitsToEncodeCount(n)
	bitsToEncodeCodeLen := flags.BitsToEncodeCodeLen()

	hasCommonGCD := true
	if flags.UseGCDs() {
		commonGCD, ok := commonGCDForChunkMeta(dt, prefixes)
		w.WriteOne(ok)
		if ok {
			writeGCD(numeric.MaxUint128(dt.UnsignedBits()), commonGCD, w)
		}
		hasCommonGCD = ok
	}

	for _, p := range prefixes {
		w.WriteUsize(p.Count, bitsToEncodeCount)
		dt.WriteTo(w, p.Lower)
		dt.WriteTo(w, p.Upper)
		w.WriteUsize(len(p.Code), bitsToEncodeCodeLen)
		w.WriteBits(p.Code)
		if p.HasRunLen() {
			w.WriteOne(true)
			w.WriteUsize(p.RunLenJumpstart, format.BitsToEncodeJumpstart)
		} else {
			w.WriteOne(false)
		}
		if !hasCommonGCD {
			writeGCD(dt.ToUnsigned(p.Upper).Sub(dt.ToUnsigned(p.Lower)), p.GCD, w)
		}
	}
}

// ParseChunkMetadata reads one chunk metadata section. The reader is left
// byte-aligned at the first body byte. Any truncation, out-of-range width,
// or inconsistent bound aborts with an error wrapping errs.ErrCorruption;
// the parser does not resynchronize.
func ParseChunkMetadata[T, S any](dt numeric.Type[T, S], r *bitio.Reader, flags section.Flags) (ChunkMetadata[T, S], error) {
	var meta ChunkMetadata[T, S]

	n, err := r.ReadUsize(format.BitsToEncodeNEntries)
	if err != nil {
		return meta, err
	}
	compressedBodySize, err := r.ReadUsize(format.BitsToEncodeCompressedBodySize)
	if err != nil {
		return meta, err
	}
	meta.N = n
	meta.CompressedBodySize = compressedBodySize

	if flags.DeltaEncodingOrder() == 0 {
		meta.Prefixes, err = parsePrefixes(dt, r, flags, n)
		if err != nil {
			return ChunkMetadata[T, S]{}, err
		}
	} else {
		st := dt.SignedType()
		meta.Moments, err = parseDeltaMoments(st, flags.DeltaEncodingOrder(), r)
		if err != nil {
			return ChunkMetadata[T, S]{}, err
		}
		meta.DeltaPrefixes, err = parsePrefixes(st, r, flags, n)
		if err != nil {
			return ChunkMetadata[T, S]{}, err
		}
	}

	r.FinishByte()

	return meta, nil
}

// WriteTo serializes the metadata section and leaves the writer
// byte-aligned, so the body begins on a byte boundary. It is infallible
// given a well-formed metadata value; width violations panic.
func (m *ChunkMetadata[T, S]) WriteTo(dt numeric.Type[T, S], w *bitio.Writer, flags section.Flags) {
	w.WriteUsize(m.N, format.BitsToEncodeNEntries)
	w.WriteUsize(m.CompressedBodySize, format.BitsToEncodeCompressedBodySize)

	if flags.DeltaEncodingOrder() == 0 {
		writePrefixes(dt, m.Prefixes, w, flags, m.N)
	} else {
		st := dt.SignedType()
		m.Moments.writeTo(st, w)
		writePrefixes(st, m.DeltaPrefixes, w, flags, m.N)
	}

	w.FinishByte()
}

// UpdateWriteCompressedBodySize back-patches the compressed body size field
// of a metadata section previously written at the absolute bit offset
// bitIdx.
func (m *ChunkMetadata[T, S]) UpdateWriteCompressedBodySize(w *bitio.Writer, bitIdx int) {
	w.OverwriteUint64(
		bitIdx+format.BitsToEncodeNEntries,
		uint64(m.CompressedBodySize),
		format.BitsToEncodeCompressedBodySize,
	)
}
