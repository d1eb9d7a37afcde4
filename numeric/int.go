package numeric

import (
	"strconv"

	"github.com/arloliu/numpress/bitio"
	"github.com/arloliu/numpress/format"
)

// Signed integers map into the unsigned domain by wrapping-subtracting the
// type minimum, which is a flip of the sign bit. The signed companion of a
// signed integer is itself.

type int16Type struct{}

// Int16Type describes the int16 number type.
var Int16Type Type[int16, int16] = int16Type{}

func (int16Type) HeaderByte() byte               { return format.HeaderByteInt16 }
func (int16Type) PhysicalBits() int              { return 16 }
func (int16Type) UnsignedBits() int              { return 16 }
func (int16Type) SignedType() Type[int16, int16] { return Int16Type }
func (int16Type) ToUnsigned(v int16) Uint128     { return U128From64(uint64(uint16(v) ^ 0x8000)) }
func (int16Type) FromUnsigned(u Uint128) int16   { return int16(uint16(u.Lo) ^ 0x8000) }
func (int16Type) ToSigned(v int16) int16         { return v }
func (int16Type) FromSigned(s int16) int16       { return s }
func (int16Type) AddSigned(a, b int16) int16     { return a + b }
func (int16Type) SubSigned(a, b int16) int16     { return a - b }

func (int16Type) ReadFrom(r *bitio.Reader) (int16, error) {
	v, err := r.ReadUint64(16)

	return int16(uint16(v)), err
}

func (int16Type) WriteTo(w *bitio.Writer, v int16) {
	w.WriteUint64(uint64(uint16(v)), 16)
}

func (int16Type) AppendBytes(dst []byte, v int16) []byte {
	return append(dst, byte(uint16(v)>>8), byte(v))
}

func (int16Type) FromBytes(data []byte) (int16, error) {
	if len(data) != 2 {
		return 0, wrongByteLen(2, len(data))
	}

	return int16(uint16(data[0])<<8 | uint16(data[1])), nil
}

func (int16Type) Format(v int16) string { return strconv.FormatInt(int64(v), 10) }

type int32Type struct{}

// Int32Type describes the int32 number type.
var Int32Type Type[int32, int32] = int32Type{}

func (int32Type) HeaderByte() byte               { return format.HeaderByteInt32 }
func (int32Type) PhysicalBits() int              { return 32 }
func (int32Type) UnsignedBits() int              { return 32 }
func (int32Type) SignedType() Type[int32, int32] { return Int32Type }
func (int32Type) ToUnsigned(v int32) Uint128     { return U128From64(uint64(uint32(v) ^ 0x80000000)) }
func (int32Type) FromUnsigned(u Uint128) int32   { return int32(uint32(u.Lo) ^ 0x80000000) }
func (int32Type) ToSigned(v int32) int32         { return v }
func (int32Type) FromSigned(s int32) int32       { return s }
func (int32Type) AddSigned(a, b int32) int32     { return a + b }
func (int32Type) SubSigned(a, b int32) int32     { return a - b }

func (int32Type) ReadFrom(r *bitio.Reader) (int32, error) {
	v, err := r.ReadUint64(32)

	return int32(uint32(v)), err
}

func (int32Type) WriteTo(w *bitio.Writer, v int32) {
	w.WriteUint64(uint64(uint32(v)), 32)
}

func (int32Type) AppendBytes(dst []byte, v int32) []byte {
	u := uint32(v)

	return append(dst, byte(u>>24), byte(u>>16), byte(u>>8), byte(u))
}

func (int32Type) FromBytes(data []byte) (int32, error) {
	if len(data) != 4 {
		return 0, wrongByteLen(4, len(data))
	}

	return int32(uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])), nil
}

func (int32Type) Format(v int32) string { return strconv.FormatInt(int64(v), 10) }

type int64Type struct{}

// Int64Type describes the int64 number type.
var Int64Type Type[int64, int64] = int64Type{}

func (int64Type) HeaderByte() byte               { return format.HeaderByteInt64 }
func (int64Type) PhysicalBits() int              { return 64 }
func (int64Type) UnsignedBits() int              { return 64 }
func (int64Type) SignedType() Type[int64, int64] { return Int64Type }
func (int64Type) ToUnsigned(v int64) Uint128     { return U128From64(uint64(v) ^ (1 << 63)) }
func (int64Type) FromUnsigned(u Uint128) int64   { return int64(u.Lo ^ (1 << 63)) }
func (int64Type) ToSigned(v int64) int64         { return v }
func (int64Type) FromSigned(s int64) int64       { return s }
func (int64Type) AddSigned(a, b int64) int64     { return a + b }
func (int64Type) SubSigned(a, b int64) int64     { return a - b }

func (int64Type) ReadFrom(r *bitio.Reader) (int64, error) {
	v, err := r.ReadUint64(64)

	return int64(v), err
}

func (int64Type) WriteTo(w *bitio.Writer, v int64) {
	w.WriteUint64(uint64(v), 64)
}

func (int64Type) AppendBytes(dst []byte, v int64) []byte {
	return U128From64(uint64(v)).AppendBigEndian(dst, 64)
}

func (int64Type) FromBytes(data []byte) (int64, error) {
	if len(data) != 8 {
		return 0, wrongByteLen(8, len(data))
	}

	return int64(U128FromBigEndian(data).Lo), nil
}

func (int64Type) Format(v int64) string { return strconv.FormatInt(v, 10) }
