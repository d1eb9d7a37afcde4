package numeric

import (
	"strconv"

	"github.com/arloliu/numpress/bitio"
	"github.com/arloliu/numpress/format"
)

// Unsigned integers are their own unsigned domain; the map is the identity.
// Their signed companion is the same-width signed type, reached by
// wrapping-subtracting half the range (a flip of the top bit).

type uint16Type struct{}

// Uint16Type describes the uint16 number type.
var Uint16Type Type[uint16, int16] = uint16Type{}

func (uint16Type) HeaderByte() byte               { return format.HeaderByteUint16 }
func (uint16Type) PhysicalBits() int              { return 16 }
func (uint16Type) UnsignedBits() int              { return 16 }
func (uint16Type) SignedType() Type[int16, int16] { return Int16Type }
func (uint16Type) ToUnsigned(v uint16) Uint128    { return U128From64(uint64(v)) }
func (uint16Type) FromUnsigned(u Uint128) uint16  { return uint16(u.Lo) }
func (uint16Type) ToSigned(v uint16) int16        { return int16(v ^ 0x8000) }
func (uint16Type) FromSigned(s int16) uint16      { return uint16(s) ^ 0x8000 }
func (uint16Type) AddSigned(a, b int16) int16     { return a + b }
func (uint16Type) SubSigned(a, b int16) int16     { return a - b }

func (uint16Type) ReadFrom(r *bitio.Reader) (uint16, error) {
	v, err := r.ReadUint64(16)

	return uint16(v), err
}

func (uint16Type) WriteTo(w *bitio.Writer, v uint16) {
	w.WriteUint64(uint64(v), 16)
}

func (uint16Type) AppendBytes(dst []byte, v uint16) []byte {
	return append(dst, byte(v>>8), byte(v))
}

func (uint16Type) FromBytes(data []byte) (uint16, error) {
	if len(data) != 2 {
		return 0, wrongByteLen(2, len(data))
	}

	return uint16(data[0])<<8 | uint16(data[1]), nil
}

func (uint16Type) Format(v uint16) string { return strconv.FormatUint(uint64(v), 10) }

type uint32Type struct{}

// Uint32Type describes the uint32 number type.
var Uint32Type Type[uint32, int32] = uint32Type{}

func (uint32Type) HeaderByte() byte               { return format.HeaderByteUint32 }
func (uint32Type) PhysicalBits() int              { return 32 }
func (uint32Type) UnsignedBits() int              { return 32 }
func (uint32Type) SignedType() Type[int32, int32] { return Int32Type }
func (uint32Type) ToUnsigned(v uint32) Uint128    { return U128From64(uint64(v)) }
func (uint32Type) FromUnsigned(u Uint128) uint32  { return uint32(u.Lo) }
func (uint32Type) ToSigned(v uint32) int32        { return int32(v ^ 0x80000000) }
func (uint32Type) FromSigned(s int32) uint32      { return uint32(s) ^ 0x80000000 }
func (uint32Type) AddSigned(a, b int32) int32     { return a + b }
func (uint32Type) SubSigned(a, b int32) int32     { return a - b }

func (uint32Type) ReadFrom(r *bitio.Reader) (uint32, error) {
	v, err := r.ReadUint64(32)

	return uint32(v), err
}

func (uint32Type) WriteTo(w *bitio.Writer, v uint32) {
	w.WriteUint64(uint64(v), 32)
}

func (uint32Type) AppendBytes(dst []byte, v uint32) []byte {
	return append(dst, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func (uint32Type) FromBytes(data []byte) (uint32, error) {
	if len(data) != 4 {
		return 0, wrongByteLen(4, len(data))
	}

	return uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3]), nil
}

func (uint32Type) Format(v uint32) string { return strconv.FormatUint(uint64(v), 10) }

type uint64Type struct{}

// Uint64Type describes the uint64 number type.
var Uint64Type Type[uint64, int64] = uint64Type{}

func (uint64Type) HeaderByte() byte               { return format.HeaderByteUint64 }
func (uint64Type) PhysicalBits() int              { return 64 }
func (uint64Type) UnsignedBits() int              { return 64 }
func (uint64Type) SignedType() Type[int64, int64] { return Int64Type }
func (uint64Type) ToUnsigned(v uint64) Uint128    { return U128From64(v) }
func (uint64Type) FromUnsigned(u Uint128) uint64  { return u.Lo }
func (uint64Type) ToSigned(v uint64) int64        { return int64(v ^ (1 << 63)) }
func (uint64Type) FromSigned(s int64) uint64      { return uint64(s) ^ (1 << 63) }
func (uint64Type) AddSigned(a, b int64) int64     { return a + b }
func (uint64Type) SubSigned(a, b int64) int64     { return a - b }

func (uint64Type) ReadFrom(r *bitio.Reader) (uint64, error) {
	return r.ReadUint64(64)
}

func (uint64Type) WriteTo(w *bitio.Writer, v uint64) {
	w.WriteUint64(v, 64)
}

func (uint64Type) AppendBytes(dst []byte, v uint64) []byte {
	return U128From64(v).AppendBigEndian(dst, 64)
}

func (uint64Type) FromBytes(data []byte) (uint64, error) {
	if len(data) != 8 {
		return 0, wrongByteLen(8, len(data))
	}

	return U128FromBigEndian(data).Lo, nil
}

func (uint64Type) Format(v uint64) string { return strconv.FormatUint(v, 10) }
