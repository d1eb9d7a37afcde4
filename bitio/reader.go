package bitio

import (
	"fmt"

	"github.com/arloliu/numpress/errs"
)

// Reader consumes bits from a byte buffer at a moving bit cursor.
//
// Every read is bounds-checked: a read that would advance past the end of
// the buffer fails with errs.ErrInsufficientData and leaves the cursor
// unchanged.
type Reader struct {
	data []byte
	bits int
}

// NewReader creates a Reader over data. The Reader does not copy or modify
// the slice.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// BitPosition returns the absolute bit offset of the cursor.
func (r *Reader) BitPosition() int {
	return r.bits
}

// BitsRemaining returns the number of unread bits.
func (r *Reader) BitsRemaining() int {
	return len(r.data)*8 - r.bits
}

func (r *Reader) check(nbits int) error {
	if nbits > r.BitsRemaining() {
		return fmt.Errorf("%w: needed %d bits at bit %d, %d available",
			errs.ErrInsufficientData, nbits, r.bits, r.BitsRemaining())
	}

	return nil
}

// ReadOne reads a single bit.
func (r *Reader) ReadOne() (bool, error) {
	if err := r.check(1); err != nil {
		return false, err
	}
	bit := r.data[r.bits>>3]&(0x80>>(r.bits&7)) != 0
	r.bits++

	return bit, nil
}

// ReadBits reads nbits bits into a bit vector. The returned slice is always
// non-nil, so zero-length reads round-trip with zero-length writes.
func (r *Reader) ReadBits(nbits int) ([]bool, error) {
	if err := r.check(nbits); err != nil {
		return nil, err
	}
	bits := make([]bool, nbits)
	for i := range bits {
		bits[i] = r.data[r.bits>>3]&(0x80>>(r.bits&7)) != 0
		r.bits++
	}

	return bits, nil
}

// ReadUint64 reads an nbits-wide big-endian unsigned integer, nbits in
// [0, 64].
func (r *Reader) ReadUint64(nbits int) (uint64, error) {
	if nbits < 0 || nbits > 64 {
		panic(fmt.Sprintf("bitio: invalid read width %d", nbits))
	}
	if err := r.check(nbits); err != nil {
		return 0, err
	}

	var value uint64
	for rem := nbits; rem > 0; {
		avail := 8 - (r.bits & 7)
		take := min(avail, rem)
		chunk := (r.data[r.bits>>3] >> (avail - take)) & (1<<take - 1)
		value = value<<take | uint64(chunk)
		r.bits += take
		rem -= take
	}

	return value, nil
}

// ReadUsize reads an nbits-wide unsigned integer as an int, nbits in [0, 63].
func (r *Reader) ReadUsize(nbits int) (int, error) {
	if nbits > 63 {
		panic(fmt.Sprintf("bitio: usize read width %d exceeds 63", nbits))
	}
	value, err := r.ReadUint64(nbits)
	if err != nil {
		return 0, err
	}

	return int(value), nil
}

// FinishByte advances the cursor to the next byte boundary, discarding the
// padding bits written by Writer.FinishByte. It is a no-op when aligned.
func (r *Reader) FinishByte() {
	aligned := (r.bits + 7) &^ 7
	if aligned > len(r.data)*8 {
		aligned = len(r.data) * 8
	}
	r.bits = aligned
}

// ReadAlignedBytes reads n whole bytes. The cursor must be byte-aligned.
func (r *Reader) ReadAlignedBytes(n int) ([]byte, error) {
	if r.bits&7 != 0 {
		return nil, fmt.Errorf("bitio: cursor at bit %d is not byte-aligned", r.bits)
	}
	if err := r.check(8 * n); err != nil {
		return nil, err
	}
	start := r.bits >> 3
	r.bits += 8 * n

	return r.data[start : start+n], nil
}
