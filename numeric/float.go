package numeric

import (
	"math"
	"strconv"

	"github.com/arloliu/numpress/bitio"
	"github.com/arloliu/numpress/format"
)

// Floats map into the unsigned domain through a strictly monotonic transform
// on the raw IEEE-754 bits: non-negative values get the sign bit flipped,
// negative values get all bits inverted. NaN payloads round-trip and order
// by bit pattern; no floating-point comparison is involved anywhere.
//
// The signed companion is the same-width signed integer, so a delta of n
// means a change of n representable values from the previous float.

func float32ToUnsigned(v float32) uint32 {
	b := math.Float32bits(v)
	if b>>31 == 1 {
		return ^b
	}

	return b | 1<<31
}

func float32FromUnsigned(u uint32) float32 {
	if u>>31 == 1 {
		return math.Float32frombits(u &^ (1 << 31))
	}

	return math.Float32frombits(^u)
}

func float64ToUnsigned(v float64) uint64 {
	b := math.Float64bits(v)
	if b>>63 == 1 {
		return ^b
	}

	return b | 1<<63
}

func float64FromUnsigned(u uint64) float64 {
	if u>>63 == 1 {
		return math.Float64frombits(u &^ (1 << 63))
	}

	return math.Float64frombits(^u)
}

type float32Type struct{}

// Float32Type describes the float32 number type.
var Float32Type Type[float32, int32] = float32Type{}

func (float32Type) HeaderByte() byte               { return format.HeaderByteFloat32 }
func (float32Type) PhysicalBits() int              { return 32 }
func (float32Type) UnsignedBits() int              { return 32 }
func (float32Type) SignedType() Type[int32, int32] { return Int32Type }
func (float32Type) ToUnsigned(v float32) Uint128   { return U128From64(uint64(float32ToUnsigned(v))) }
func (float32Type) FromUnsigned(u Uint128) float32 { return float32FromUnsigned(uint32(u.Lo)) }
func (float32Type) ToSigned(v float32) int32       { return int32(float32ToUnsigned(v) ^ (1 << 31)) }
func (float32Type) FromSigned(s int32) float32     { return float32FromUnsigned(uint32(s) ^ (1 << 31)) }
func (float32Type) AddSigned(a, b int32) int32     { return a + b }
func (float32Type) SubSigned(a, b int32) int32     { return a - b }

func (float32Type) ReadFrom(r *bitio.Reader) (float32, error) {
	v, err := r.ReadUint64(32)

	return math.Float32frombits(uint32(v)), err
}

func (float32Type) WriteTo(w *bitio.Writer, v float32) {
	w.WriteUint64(uint64(math.Float32bits(v)), 32)
}

func (float32Type) AppendBytes(dst []byte, v float32) []byte {
	b := math.Float32bits(v)

	return append(dst, byte(b>>24), byte(b>>16), byte(b>>8), byte(b))
}

func (float32Type) FromBytes(data []byte) (float32, error) {
	if len(data) != 4 {
		return 0, wrongByteLen(4, len(data))
	}
	b := uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])

	return math.Float32frombits(b), nil
}

func (float32Type) Format(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

type float64Type struct{}

// Float64Type describes the float64 number type.
var Float64Type Type[float64, int64] = float64Type{}

func (float64Type) HeaderByte() byte               { return format.HeaderByteFloat64 }
func (float64Type) PhysicalBits() int              { return 64 }
func (float64Type) UnsignedBits() int              { return 64 }
func (float64Type) SignedType() Type[int64, int64] { return Int64Type }
func (float64Type) ToUnsigned(v float64) Uint128   { return U128From64(float64ToUnsigned(v)) }
func (float64Type) FromUnsigned(u Uint128) float64 { return float64FromUnsigned(u.Lo) }
func (float64Type) ToSigned(v float64) int64       { return int64(float64ToUnsigned(v) ^ (1 << 63)) }
func (float64Type) FromSigned(s int64) float64     { return float64FromUnsigned(uint64(s) ^ (1 << 63)) }
func (float64Type) AddSigned(a, b int64) int64     { return a + b }
func (float64Type) SubSigned(a, b int64) int64     { return a - b }

func (float64Type) ReadFrom(r *bitio.Reader) (float64, error) {
	v, err := r.ReadUint64(64)

	return math.Float64frombits(v), err
}

func (float64Type) WriteTo(w *bitio.Writer, v float64) {
	w.WriteUint64(math.Float64bits(v), 64)
}

func (float64Type) AppendBytes(dst []byte, v float64) []byte {
	return U128From64(math.Float64bits(v)).AppendBigEndian(dst, 64)
}

func (float64Type) FromBytes(data []byte) (float64, error) {
	if len(data) != 8 {
		return 0, wrongByteLen(8, len(data))
	}

	return math.Float64frombits(U128FromBigEndian(data).Lo), nil
}

func (float64Type) Format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
