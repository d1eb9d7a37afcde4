package chunk

import (
	"fmt"
	"slices"

	"github.com/arloliu/numpress/bitio"
	"github.com/arloliu/numpress/errs"
	"github.com/arloliu/numpress/numeric"
)

// rowCoder caches the derived per-row quantities both body directions need.
type rowCoder struct {
	lowerU     numeric.Uint128
	gcd        numeric.Uint128
	maxOffset  numeric.Uint128 // (upper - lower) / gcd
	offsetBits int
}

func makeRowCoder[T, S any](dt numeric.Type[T, S], p Prefix[T]) rowCoder {
	lowerU := dt.ToUnsigned(p.Lower)
	maxOffset, _ := dt.ToUnsigned(p.Upper).Sub(lowerU).QuoRem(p.GCD)

	return rowCoder{
		lowerU:     lowerU,
		gcd:        p.GCD,
		maxOffset:  maxOffset,
		offsetBits: maxOffset.BitLen(),
	}
}

// EncodeBody writes the prefix-coded sample stream for values and leaves the
// writer byte-aligned. Every value must be covered by exactly one prefix
// range and its offset must be divisible by the row GCD; violations return
// errs.ErrInvalidArgument.
func EncodeBody[T, S any](dt numeric.Type[T, S], values []T, prefixes []Prefix[T], w *bitio.Writer) error {
	coders := make([]rowCoder, len(prefixes))
	uppers := make([]numeric.Uint128, len(prefixes))
	for i, p := range prefixes {
		coders[i] = makeRowCoder(dt, p)
		uppers[i] = dt.ToUnsigned(p.Upper)
	}

	for i := 0; i < len(values); {
		u := dt.ToUnsigned(values[i])
		row, ok := findRow(coders, uppers, u)
		if !ok {
			return fmt.Errorf("%w: value %s not covered by the prefix table",
				errs.ErrInvalidArgument, dt.Format(values[i]))
		}

		c := coders[row]
		w.WriteBits(prefixes[row].Code)

		if prefixes[row].HasRunLen() {
			// Single-value range: count the run and code its length.
			j := i + 1
			for j < len(values) && dt.ToUnsigned(values[j]).Cmp(u) == 0 {
				j++
			}
			writeRunLen(w, j-i, prefixes[row].RunLenJumpstart)
			i = j

			continue
		}

		offset, rem := u.Sub(c.lowerU).QuoRem(c.gcd)
		if !rem.IsZero() {
			return fmt.Errorf("%w: value %s offset is not divisible by gcd %s",
				errs.ErrInvalidArgument, dt.Format(values[i]), c.gcd)
		}
		writeUint128(w, offset, c.offsetBits)
		i++
	}

	w.FinishByte()

	return nil
}

// findRow locates the row whose range contains u. Ranges are disjoint and
// ascending as the table builder emits them.
func findRow(coders []rowCoder, uppers []numeric.Uint128, u numeric.Uint128) (int, bool) {
	row, _ := slices.BinarySearchFunc(uppers, u, numeric.Uint128.Cmp)
	if row >= len(coders) || coders[row].lowerU.Cmp(u) > 0 {
		return 0, false
	}

	return row, true
}

// trieNode is one branch of the prefix-code decoding trie.
type trieNode struct {
	leaf     int
	children [2]*trieNode
}

func buildTrie[T any](prefixes []Prefix[T]) (*trieNode, error) {
	root := &trieNode{leaf: -1}
	for i, p := range prefixes {
		node := root
		for _, bit := range p.Code {
			if node.leaf >= 0 {
				return nil, prefixFreeError(i)
			}
			b := 0
			if bit {
				b = 1
			}
			if node.children[b] == nil {
				node.children[b] = &trieNode{leaf: -1}
			}
			node = node.children[b]
		}
		if node.leaf >= 0 || node.children[0] != nil || node.children[1] != nil {
			return nil, prefixFreeError(i)
		}
		node.leaf = i
	}

	return root, nil
}

func prefixFreeError(row int) error {
	return fmt.Errorf("%w: prefix code of row %d collides with another row's code", errs.ErrCorruption, row)
}

// DecodeBody walks the prefix-code trie against the bitstream and
// reconstructs n samples.
func DecodeBody[T, S any](dt numeric.Type[T, S], prefixes []Prefix[T], n int, r *bitio.Reader) ([]T, error) {
	if n == 0 {
		return nil, nil
	}

	root, err := buildTrie(prefixes)
	if err != nil {
		return nil, err
	}
	coders := make([]rowCoder, len(prefixes))
	for i, p := range prefixes {
		coders[i] = makeRowCoder(dt, p)
	}

	out := make([]T, 0, n)
	for len(out) < n {
		node := root
		for node.leaf < 0 {
			bit, err := r.ReadOne()
			if err != nil {
				return nil, err
			}
			b := 0
			if bit {
				b = 1
			}
			node = node.children[b]
			if node == nil {
				return nil, fmt.Errorf("%w: unknown prefix code in body", errs.ErrCorruption)
			}
		}

		row := node.leaf
		c := coders[row]

		if prefixes[row].HasRunLen() {
			reps, err := readRunLen(r, prefixes[row].RunLenJumpstart)
			if err != nil {
				return nil, err
			}
			if reps > n-len(out) {
				return nil, fmt.Errorf("%w: run length %d exceeds remaining %d samples",
					errs.ErrCorruption, reps, n-len(out))
			}
			for range reps {
				value, err := readRowValue(dt, c, r)
				if err != nil {
					return nil, err
				}
				out = append(out, value)
			}

			continue
		}

		value, err := readRowValue(dt, c, r)
		if err != nil {
			return nil, err
		}
		out = append(out, value)
	}

	return out, nil
}

func readRowValue[T, S any](dt numeric.Type[T, S], c rowCoder, r *bitio.Reader) (T, error) {
	var zero T
	offset, err := readUint128(r, c.offsetBits)
	if err != nil {
		return zero, err
	}
	if offset.Cmp(c.maxOffset) > 0 {
		return zero, fmt.Errorf("%w: offset %s exceeds prefix range", errs.ErrCorruption, offset)
	}

	return dt.FromUnsigned(c.lowerU.Add(c.gcd.Mul(offset))), nil
}

// Run lengths are coded as jumpstart-wide groups of the value reps-1, least
// significant group first, each followed by a continuation bit.

func writeRunLen(w *bitio.Writer, reps, jumpstart int) {
	x := uint64(reps - 1)
	for {
		w.WriteUint64(x&(1<<jumpstart-1), jumpstart)
		x >>= jumpstart
		more := x > 0
		w.WriteOne(more)
		if !more {
			return
		}
	}
}

func readRunLen(r *bitio.Reader, jumpstart int) (int, error) {
	if jumpstart < 1 {
		return 0, fmt.Errorf("%w: run length jumpstart %d must be at least 1", errs.ErrCorruption, jumpstart)
	}

	var x uint64
	for shift := 0; ; shift += jumpstart {
		if shift > 63 {
			return 0, fmt.Errorf("%w: run length overflows", errs.ErrCorruption)
		}
		group, err := r.ReadUint64(jumpstart)
		if err != nil {
			return 0, err
		}
		x |= group << shift
		more, err := r.ReadOne()
		if err != nil {
			return 0, err
		}
		if !more {
			break
		}
	}

	return int(x) + 1, nil
}
