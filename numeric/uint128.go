package numeric

import (
	"fmt"
	"math/bits"
	"strconv"
)

// Uint128 is the unsigned companion domain carrier. Every supported number
// type maps order-preservingly into a Uint128; the type descriptor's
// UnsignedBits reports how many of its low bits are meaningful.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// U128From64 converts a uint64 into a Uint128.
func U128From64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// MaxUint128 returns the all-ones value of a width-bit unsigned domain,
// width in [1, 128].
func MaxUint128(width int) Uint128 {
	if width <= 0 || width > 128 {
		panic(fmt.Sprintf("numeric: invalid unsigned width %d", width))
	}
	if width <= 64 {
		return Uint128{Lo: ^uint64(0) >> (64 - width)}
	}

	return Uint128{Hi: ^uint64(0) >> (128 - width), Lo: ^uint64(0)}
}

// IsZero reports whether a is zero.
func (a Uint128) IsZero() bool {
	return a.Hi == 0 && a.Lo == 0
}

// Uint64 returns the low 64 bits.
func (a Uint128) Uint64() uint64 {
	return a.Lo
}

// Cmp returns -1, 0, or 1 ordering a against b.
func (a Uint128) Cmp(b Uint128) int {
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

// Add returns a + b with wraparound.
func (a Uint128) Add(b Uint128) Uint128 {
	lo, carry := bits.Add64(a.Lo, b.Lo, 0)
	hi, _ := bits.Add64(a.Hi, b.Hi, carry)

	return Uint128{Hi: hi, Lo: lo}
}

// Sub returns a - b with wraparound.
func (a Uint128) Sub(b Uint128) Uint128 {
	lo, borrow := bits.Sub64(a.Lo, b.Lo, 0)
	hi, _ := bits.Sub64(a.Hi, b.Hi, borrow)

	return Uint128{Hi: hi, Lo: lo}
}

// Mul returns the low 128 bits of a * b.
func (a Uint128) Mul(b Uint128) Uint128 {
	hi, lo := bits.Mul64(a.Lo, b.Lo)
	hi += a.Hi*b.Lo + a.Lo*b.Hi

	return Uint128{Hi: hi, Lo: lo}
}

// BitLen returns the number of bits required to represent a; zero for a == 0.
func (a Uint128) BitLen() int {
	if a.Hi != 0 {
		return 64 + bits.Len64(a.Hi)
	}

	return bits.Len64(a.Lo)
}

// Lsh returns a << n.
func (a Uint128) Lsh(n uint) Uint128 {
	switch {
	case n == 0:
		return a
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Hi: a.Lo << (n - 64)}
	default:
		return Uint128{Hi: a.Hi<<n | a.Lo>>(64-n), Lo: a.Lo << n}
	}
}

// Rsh returns a >> n.
func (a Uint128) Rsh(n uint) Uint128 {
	switch {
	case n == 0:
		return a
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Lo: a.Hi >> (n - 64)}
	default:
		return Uint128{Hi: a.Hi >> n, Lo: a.Lo>>n | a.Hi<<(64-n)}
	}
}

// QuoRem returns the quotient and remainder of a / b. Panics on b == 0.
func (a Uint128) QuoRem(b Uint128) (Uint128, Uint128) {
	if b.IsZero() {
		panic("numeric: division by zero")
	}
	if b.Hi == 0 {
		if a.Hi == 0 {
			return Uint128{Lo: a.Lo / b.Lo}, Uint128{Lo: a.Lo % b.Lo}
		}
		qhi := a.Hi / b.Lo
		qlo, rem := bits.Div64(a.Hi%b.Lo, a.Lo, b.Lo)

		return Uint128{Hi: qhi, Lo: qlo}, Uint128{Lo: rem}
	}

	// b >= 2^64, so the quotient fits in 64 bits. Shift-subtract over the
	// magnitude gap.
	shift := a.BitLen() - b.BitLen()
	if shift < 0 {
		return Uint128{}, a
	}
	rem := a
	d := b.Lsh(uint(shift))
	var q uint64
	for i := shift; i >= 0; i-- {
		q <<= 1
		if rem.Cmp(d) >= 0 {
			rem = rem.Sub(d)
			q |= 1
		}
		d = d.Rsh(1)
	}

	return Uint128{Lo: q}, rem
}

// GCD returns the greatest common divisor of a and b, treating zero as the
// identity: GCD(0, b) == b.
func (a Uint128) GCD(b Uint128) Uint128 {
	for !b.IsZero() {
		_, r := a.QuoRem(b)
		a, b = b, r
	}

	return a
}

// AppendBigEndian appends the low width/8 bytes of a in big-endian order.
// width must be a multiple of 8 up to 128.
func (a Uint128) AppendBigEndian(dst []byte, width int) []byte {
	for shift := width - 8; shift >= 0; shift -= 8 {
		dst = append(dst, byte(a.Rsh(uint(shift)).Lo))
	}

	return dst
}

// U128FromBigEndian decodes up to 16 big-endian bytes.
func U128FromBigEndian(data []byte) Uint128 {
	var v Uint128
	for _, b := range data {
		v = v.Lsh(8)
		v.Lo |= uint64(b)
	}

	return v
}

func (a Uint128) String() string {
	if a.Hi == 0 {
		return strconv.FormatUint(a.Lo, 10)
	}
	const chunk = 1e19
	q, r := a.QuoRem(U128From64(chunk))
	if q.Hi == 0 {
		return strconv.FormatUint(q.Lo, 10) + fmt.Sprintf("%019d", r.Lo)
	}
	q2, r2 := q.QuoRem(U128From64(chunk))

	return strconv.FormatUint(q2.Lo, 10) + fmt.Sprintf("%019d", r2.Lo) + fmt.Sprintf("%019d", r.Lo)
}
