// Package numeric defines the number-type abstraction the codec is built
// on: every supported type maps order-preservingly into an unsigned domain
// (the target of range partitioning) and bijectively into a signed domain
// (what deltas are expressed as).
//
// Companion values are carried uniformly as Uint128 and concrete signed
// types; each descriptor reports the true companion width through
// UnsignedBits so field widths on the wire stay type-exact.
package numeric

import "github.com/arloliu/numpress/bitio"

// Type describes one supported number type T with signed companion S.
//
// Descriptors are stateless values; the package exports one per supported
// type (Int32Type, Float64Type, TimestampNanoType, ...). Within a file the
// type is fixed by the header byte, so descriptors are resolved once at the
// file boundary and never per sample.
//
// Contract: for all a, b of type T, a <= b in T's natural order iff
// ToUnsigned(a) <= ToUnsigned(b), and FromUnsigned(ToUnsigned(x)) == x.
// Float ordering is the monotone bit-mapping order, so NaN payloads
// round-trip and order by bit pattern.
type Type[T, S any] interface {
	// HeaderByte returns the tag identifying T in the file header.
	HeaderByte() byte
	// PhysicalBits returns the serialized width of one raw T value.
	PhysicalBits() int
	// UnsignedBits returns the width of T's unsigned companion domain.
	UnsignedBits() int
	// SignedType returns the descriptor of the signed companion type. A
	// signed companion is its own companion, so the recursion bottoms out
	// immediately.
	SignedType() Type[S, S]

	// ToUnsigned and FromUnsigned form the order-preserving bijection into
	// the unsigned domain. Only the low UnsignedBits bits are meaningful.
	ToUnsigned(T) Uint128
	FromUnsigned(Uint128) T

	// ToSigned and FromSigned form the bijection into the signed delta
	// domain.
	ToSigned(T) S
	FromSigned(S) T

	// AddSigned and SubSigned are the wrapping arithmetic of the signed
	// domain, used by the finite-difference transform.
	AddSigned(a, b S) S
	SubSigned(a, b S) S

	// ReadFrom and WriteTo move one raw value of PhysicalBits bits across a
	// bit cursor.
	ReadFrom(r *bitio.Reader) (T, error)
	WriteTo(w *bitio.Writer, value T)

	// AppendBytes and FromBytes are the minimal big-endian byte form of
	// PhysicalBits bits.
	AppendBytes(dst []byte, value T) []byte
	FromBytes(data []byte) (T, error)

	// Format renders a value for error messages.
	Format(T) string
}
