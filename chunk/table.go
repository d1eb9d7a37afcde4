package chunk

import (
	"math/bits"
	"slices"

	"github.com/arloliu/numpress/format"
	"github.com/arloliu/numpress/numeric"
)

// Run-length escapes are attached to a single-value range that dominates the
// chunk: repeated samples then cost a handful of bits per run instead of one
// code per sample.
const (
	runLenMinCount = 16
)

// BuildPrefixes constructs a prefix table from the sample distribution of
// values: the sorted unsigned images are partitioned into at most
// format.MaxPrefixTableSize equal-frequency ranges, each range gets the true
// GCD of its offsets, and Huffman codes are assigned from the range counts.
//
// When useGCDs is false every GCD is forced to 1 to match a file whose GCD
// bits are omitted. Otherwise the GCDs are normalized so the table
// serializes through either the chunk-wide or the per-row GCD path without
// losing information.
func BuildPrefixes[T, S any](dt numeric.Type[T, S], values []T, useGCDs bool) []Prefix[T] {
	n := len(values)
	if n == 0 {
		return nil
	}

	images := make([]numeric.Uint128, n)
	for i, v := range values {
		images[i] = dt.ToUnsigned(v)
	}
	slices.SortFunc(images, numeric.Uint128.Cmp)

	rows := min(format.MaxPrefixTableSize, n)
	prefixes := make([]Prefix[T], 0, rows)

	idx := 0
	for b := 0; b < rows && idx < n; b++ {
		end := idx + (n-idx)/(rows-b)
		if end <= idx {
			end = idx + 1
		}
		// Never split equal values across ranges.
		for end < n && images[end].Cmp(images[end-1]) == 0 {
			end++
		}

		lowerU := images[idx]
		upperU := images[end-1]

		gcd := numeric.Uint128{}
		for _, u := range images[idx:end] {
			gcd = gcd.GCD(u.Sub(lowerU))
		}
		if gcd.IsZero() {
			gcd = numeric.U128From64(1)
		}

		prefixes = append(prefixes, Prefix[T]{
			Count:           end - idx,
			Lower:           dt.FromUnsigned(lowerU),
			Upper:           dt.FromUnsigned(upperU),
			RunLenJumpstart: NoJumpstart,
			GCD:             gcd,
		})
		idx = end
	}

	normalizeGCDs(dt, prefixes, useGCDs)
	attachRunLen(dt, prefixes, n)
	assignCodes(prefixes)

	return prefixes
}

// normalizeGCDs reconciles the per-range GCDs with the serialization paths.
// With GCD bits disabled every row is forced to 1. With a chunk-wide common
// GCD the single-value rows inherit it, since the parser assigns the common
// value to every row. On the per-row path single-value rows are forced to 1,
// the value the parser reconstructs from their zero-bit field.
func normalizeGCDs[T, S any](dt numeric.Type[T, S], prefixes []Prefix[T], useGCDs bool) {
	one := numeric.U128From64(1)

	if !useGCDs {
		for i := range prefixes {
			prefixes[i].GCD = one
		}

		return
	}

	if common, ok := commonGCDForChunkMeta(dt, prefixes); ok {
		for i := range prefixes {
			prefixes[i].GCD = common
		}

		return
	}

	for i := range prefixes {
		if dt.ToUnsigned(prefixes[i].Lower).Cmp(dt.ToUnsigned(prefixes[i].Upper)) == 0 {
			prefixes[i].GCD = one
		}
	}
}

// attachRunLen marks dominant single-value ranges as run-length rows.
func attachRunLen[T, S any](dt numeric.Type[T, S], prefixes []Prefix[T], n int) {
	for i := range prefixes {
		p := &prefixes[i]
		if p.Count < runLenMinCount || 2*p.Count < n {
			continue
		}
		if dt.ToUnsigned(p.Lower).Cmp(dt.ToUnsigned(p.Upper)) != 0 {
			continue
		}
		p.RunLenJumpstart = min(format.MaxJumpstart, max(1, bits.Len64(uint64(p.Count))/2))
	}
}
