package numeric

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/numpress/bitio"
	"github.com/arloliu/numpress/errs"
	"github.com/arloliu/numpress/format"
)

// Int128 is the signed companion domain carrier, a 128-bit two's-complement
// integer. It is itself a supported number type: delta-encoded timestamp
// chunks carry a prefix table over Int128 values.
type Int128 struct {
	Hi int64
	Lo uint64
}

// I128From64 sign-extends an int64 into an Int128.
func I128From64(v int64) Int128 {
	return Int128{Hi: v >> 63, Lo: uint64(v)}
}

// Add returns a + b with wraparound.
func (a Int128) Add(b Int128) Int128 {
	lo, carry := bits.Add64(a.Lo, b.Lo, 0)

	return Int128{Hi: a.Hi + b.Hi + int64(carry), Lo: lo}
}

// Sub returns a - b with wraparound.
func (a Int128) Sub(b Int128) Int128 {
	lo, borrow := bits.Sub64(a.Lo, b.Lo, 0)

	return Int128{Hi: a.Hi - b.Hi - int64(borrow), Lo: lo}
}

// Neg returns -a with wraparound.
func (a Int128) Neg() Int128 {
	return Int128{}.Sub(a)
}

// Cmp returns -1, 0, or 1 ordering a against b in signed order.
func (a Int128) Cmp(b Int128) int {
	if a.Hi != b.Hi {
		if a.Hi < b.Hi {
			return -1
		}

		return 1
	}
	if a.Lo != b.Lo {
		if a.Lo < b.Lo {
			return -1
		}

		return 1
	}

	return 0
}

// Sign returns -1, 0, or 1 for negative, zero, or positive a.
func (a Int128) Sign() int {
	if a.Hi < 0 {
		return -1
	}
	if a.Hi == 0 && a.Lo == 0 {
		return 0
	}

	return 1
}

func (a Int128) String() string {
	if a.Sign() < 0 {
		mag := a.Neg()

		return "-" + Uint128{Hi: uint64(mag.Hi), Lo: mag.Lo}.String()
	}

	return Uint128{Hi: uint64(a.Hi), Lo: a.Lo}.String()
}

// i128ToU128 maps an Int128 into the unsigned domain by wrapping-subtracting
// the minimum, which is a flip of the top bit.
func i128ToU128(a Int128) Uint128 {
	return Uint128{Hi: uint64(a.Hi) ^ (1 << 63), Lo: a.Lo}
}

// u128ToI128 inverts i128ToU128.
func u128ToI128(a Uint128) Int128 {
	return Int128{Hi: int64(a.Hi ^ (1 << 63)), Lo: a.Lo}
}

type int128Type struct{}

// Int128Type describes the Int128 number type. Its signed companion is
// itself.
var Int128Type Type[Int128, Int128] = int128Type{}

func (int128Type) HeaderByte() byte                 { return format.HeaderByteInt128 }
func (int128Type) PhysicalBits() int                { return 128 }
func (int128Type) UnsignedBits() int                { return 128 }
func (int128Type) SignedType() Type[Int128, Int128] { return Int128Type }

func (int128Type) ToUnsigned(v Int128) Uint128   { return i128ToU128(v) }
func (int128Type) FromUnsigned(u Uint128) Int128 { return u128ToI128(u) }
func (int128Type) ToSigned(v Int128) Int128      { return v }
func (int128Type) FromSigned(s Int128) Int128    { return s }

func (int128Type) AddSigned(a, b Int128) Int128 { return a.Add(b) }
func (int128Type) SubSigned(a, b Int128) Int128 { return a.Sub(b) }

func (int128Type) ReadFrom(r *bitio.Reader) (Int128, error) {
	hi, err := r.ReadUint64(64)
	if err != nil {
		return Int128{}, err
	}
	lo, err := r.ReadUint64(64)
	if err != nil {
		return Int128{}, err
	}

	return Int128{Hi: int64(hi), Lo: lo}, nil
}

func (int128Type) WriteTo(w *bitio.Writer, v Int128) {
	w.WriteUint64(uint64(v.Hi), 64)
	w.WriteUint64(v.Lo, 64)
}

func (int128Type) AppendBytes(dst []byte, v Int128) []byte {
	return Uint128{Hi: uint64(v.Hi), Lo: v.Lo}.AppendBigEndian(dst, 128)
}

func (int128Type) FromBytes(data []byte) (Int128, error) {
	if len(data) != 16 {
		return Int128{}, wrongByteLen(16, len(data))
	}
	u := U128FromBigEndian(data)

	return Int128{Hi: int64(u.Hi), Lo: u.Lo}, nil
}

func (int128Type) Format(v Int128) string { return v.String() }

// wrongByteLen builds the shared byte-length error for FromBytes
// implementations.
func wrongByteLen(want, got int) error {
	return fmt.Errorf("%w: expected %d bytes, got %d", errs.ErrInvalidArgument, want, got)
}
