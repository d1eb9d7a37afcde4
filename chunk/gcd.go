package chunk

import (
	"fmt"

	"github.com/arloliu/numpress/bitio"
	"github.com/arloliu/numpress/errs"
	"github.com/arloliu/numpress/numeric"
)

// readUint128 reads an nbits-wide big-endian unsigned integer, nbits in
// [0, 128].
func readUint128(r *bitio.Reader, nbits int) (numeric.Uint128, error) {
	if nbits <= 64 {
		lo, err := r.ReadUint64(nbits)

		return numeric.U128From64(lo), err
	}

	hi, err := r.ReadUint64(nbits - 64)
	if err != nil {
		return numeric.Uint128{}, err
	}
	lo, err := r.ReadUint64(64)
	if err != nil {
		return numeric.Uint128{}, err
	}

	return numeric.Uint128{Hi: hi, Lo: lo}, nil
}

// writeUint128 writes value in nbits bits, nbits in [0, 128]. Panics when
// value does not fit.
func writeUint128(w *bitio.Writer, value numeric.Uint128, nbits int) {
	if value.BitLen() > nbits {
		panic(fmt.Sprintf("chunk: value %s does not fit in %d bits", value, nbits))
	}
	if nbits <= 64 {
		w.WriteUint64(value.Lo, nbits)

		return
	}
	w.WriteUint64(value.Hi, nbits-64)
	w.WriteUint64(value.Lo, 64)
}

// readGCD reads a GCD coded against bound in ceil(log2(bound+1)) bits. A
// zero bound means the context admits only one possible offset, so no bits
// are read and the GCD is trivially 1.
func readGCD(bound numeric.Uint128, r *bitio.Reader) (numeric.Uint128, error) {
	nbits := bound.BitLen()
	if nbits == 0 {
		return numeric.U128From64(1), nil
	}

	gcd, err := readUint128(r, nbits)
	if err != nil {
		return numeric.Uint128{}, err
	}
	if gcd.IsZero() {
		return numeric.Uint128{}, fmt.Errorf("%w: gcd must be at least 1", errs.ErrCorruption)
	}

	return gcd, nil
}

// writeGCD writes value in as few bits as the largest possible GCD in this
// context requires. Mirrors readGCD.
func writeGCD(bound, value numeric.Uint128, w *bitio.Writer) {
	nbits := bound.BitLen()
	if nbits == 0 {
		return
	}
	writeUint128(w, value, nbits)
}

// commonGCDForChunkMeta returns the chunk-wide common GCD when one exists:
// every prefix whose range spans more than one value must carry the same
// GCD. Ranges with upper == lower contribute no constraint. Returns false
// when no spanning prefix exists or the spanning prefixes disagree; the
// serializer then falls back to per-row GCDs.
func commonGCDForChunkMeta[T, S any](dt numeric.Type[T, S], prefixes []Prefix[T]) (numeric.Uint128, bool) {
	var common numeric.Uint128
	found := false
	for _, p := range prefixes {
		if dt.ToUnsigned(p.Lower).Cmp(dt.ToUnsigned(p.Upper)) == 0 {
			continue
		}
		if !found {
			common = p.GCD
			found = true

			continue
		}
		if common.Cmp(p.GCD) != 0 {
			return numeric.Uint128{}, false
		}
	}

	return common, found
}
