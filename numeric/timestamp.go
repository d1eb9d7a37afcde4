package numeric

import (
	"fmt"
	"math/bits"
	"time"

	"github.com/arloliu/numpress/bitio"
	"github.com/arloliu/numpress/errs"
	"github.com/arloliu/numpress/format"
)

// TimestampNano is an instant relative to the Unix epoch, stored as a
// 128-bit count of nanoseconds. It does not store a time zone.
type TimestampNano struct {
	parts Int128
}

// TimestampMicro is an instant relative to the Unix epoch, stored as a
// 128-bit count of microseconds.
type TimestampMicro struct {
	parts Int128
}

// tsSpec holds the per-resolution constants shared by both timestamp types.
//
// The representable range is parts in [min, max] with
// min = partsPerSec * i64MIN and max = partsPerSec * (i64MAX + 1) - 1, so
// every instant whose whole-second part fits in an int64 is representable.
// On the wire a timestamp is parts - min as a 96-bit big-endian value: the
// low 12 bytes of the 128-bit offset, whose high 32 bits are always zero.
type tsSpec struct {
	partsPerSec uint64
	nsPerPart   uint32
	min         Int128
	max         Int128
	maxOffset   Uint128 // max - min
}

func makeTsSpec(partsPerSec uint64) tsSpec {
	min := mulI64U64(-1<<63, partsPerSec)
	max := min.Neg().Sub(I128From64(1))
	off := i128ToU128(max).Sub(i128ToU128(min))

	return tsSpec{
		partsPerSec: partsPerSec,
		nsPerPart:   uint32(1_000_000_000 / partsPerSec),
		min:         min,
		max:         max,
		maxOffset:   off,
	}
}

var (
	nanoSpec  = makeTsSpec(1_000_000_000)
	microSpec = makeTsSpec(1_000_000)
)

// mulI64U64 returns a * b as a 128-bit signed product.
func mulI64U64(a int64, b uint64) Int128 {
	mag := uint64(a)
	if a < 0 {
		mag = -mag
	}
	hi, lo := bits.Mul64(mag, b)
	v := Int128{Hi: int64(hi), Lo: lo}
	if a < 0 {
		v = v.Neg()
	}

	return v
}

func (s tsSpec) checkParts(parts Int128) error {
	if parts.Cmp(s.min) < 0 || parts.Cmp(s.max) > 0 {
		return fmt.Errorf("%w: invalid timestamp with %s/%d of a second",
			errs.ErrInvalidTimestamp, parts, s.partsPerSec)
	}

	return nil
}

func (s tsSpec) fromSecsAndNanos(seconds int64, subsecNanos uint32) Int128 {
	return mulI64U64(seconds, s.partsPerSec).
		Add(I128From64(int64(subsecNanos / s.nsPerPart)))
}

// secsAndNanos splits parts into whole seconds and subsecond nanoseconds
// using Euclidean division, so negative instants round toward minus infinity
// and the nanosecond part is always in [0, 1e9).
func (s tsSpec) secsAndNanos(parts Int128) (int64, uint32) {
	offset := i128ToU128(parts).Sub(i128ToU128(s.min))
	q, r := offset.QuoRem(U128From64(s.partsPerSec))
	seconds := int64(q.Lo ^ (1 << 63)) // i64MIN + q

	return seconds, uint32(r.Lo) * s.nsPerPart
}

// NewTimestampNano creates a nanosecond timestamp from a parts count.
// Returns errs.ErrInvalidTimestamp when parts is outside the representable
// range.
func NewTimestampNano(parts Int128) (TimestampNano, error) {
	if err := nanoSpec.checkParts(parts); err != nil {
		return TimestampNano{}, err
	}

	return TimestampNano{parts: parts}, nil
}

// TimestampNanoFromSecsAndNanos creates a nanosecond timestamp from whole
// seconds and a subsecond nanosecond count in [0, 1e9).
func TimestampNanoFromSecsAndNanos(seconds int64, subsecNanos uint32) TimestampNano {
	return TimestampNano{parts: nanoSpec.fromSecsAndNanos(seconds, subsecNanos)}
}

// TimestampNanoFromTime converts a wall-clock time.
func TimestampNanoFromTime(t time.Time) TimestampNano {
	return TimestampNanoFromSecsAndNanos(t.Unix(), uint32(t.Nanosecond()))
}

// Parts returns the nanosecond count since the Unix epoch.
func (t TimestampNano) Parts() Int128 { return t.parts }

// SecsAndNanos splits the instant into whole seconds and subsecond
// nanoseconds, rounding toward minus infinity.
func (t TimestampNano) SecsAndNanos() (int64, uint32) {
	return nanoSpec.secsAndNanos(t.parts)
}

// Time converts to a wall-clock time.
func (t TimestampNano) Time() time.Time {
	secs, ns := t.SecsAndNanos()

	return time.Unix(secs, int64(ns))
}

// NewTimestampMicro creates a microsecond timestamp from a parts count.
// Returns errs.ErrInvalidTimestamp when parts is outside the representable
// range.
func NewTimestampMicro(parts Int128) (TimestampMicro, error) {
	if err := microSpec.checkParts(parts); err != nil {
		return TimestampMicro{}, err
	}

	return TimestampMicro{parts: parts}, nil
}

// TimestampMicroFromSecsAndNanos creates a microsecond timestamp from whole
// seconds and a subsecond nanosecond count in [0, 1e9). Sub-microsecond
// precision is truncated.
func TimestampMicroFromSecsAndNanos(seconds int64, subsecNanos uint32) TimestampMicro {
	return TimestampMicro{parts: microSpec.fromSecsAndNanos(seconds, subsecNanos)}
}

// TimestampMicroFromTime converts a wall-clock time.
func TimestampMicroFromTime(t time.Time) TimestampMicro {
	return TimestampMicroFromSecsAndNanos(t.Unix(), uint32(t.Nanosecond()))
}

// Parts returns the microsecond count since the Unix epoch.
func (t TimestampMicro) Parts() Int128 { return t.parts }

// SecsAndNanos splits the instant into whole seconds and subsecond
// nanoseconds, rounding toward minus infinity.
func (t TimestampMicro) SecsAndNanos() (int64, uint32) {
	return microSpec.secsAndNanos(t.parts)
}

// Time converts to a wall-clock time.
func (t TimestampMicro) Time() time.Time {
	secs, ns := t.SecsAndNanos()

	return time.Unix(secs, int64(ns))
}

// Serialization shared by both timestamp descriptors.

func (s tsSpec) writeParts(w *bitio.Writer, parts Int128) {
	offset := i128ToU128(parts).Sub(i128ToU128(s.min))
	w.WriteUint64(offset.Hi, 32)
	w.WriteUint64(offset.Lo, 64)
}

func (s tsSpec) readParts(r *bitio.Reader) (Int128, error) {
	hi, err := r.ReadUint64(32)
	if err != nil {
		return Int128{}, err
	}
	lo, err := r.ReadUint64(64)
	if err != nil {
		return Int128{}, err
	}
	offset := Uint128{Hi: hi, Lo: lo}
	if offset.Cmp(s.maxOffset) > 0 {
		return Int128{}, fmt.Errorf("%w: timestamp offset %s exceeds range of %d parts per second",
			errs.ErrCorruption, offset, s.partsPerSec)
	}

	return s.min.Add(Int128{Hi: int64(offset.Hi), Lo: offset.Lo}), nil
}

func (s tsSpec) appendParts(dst []byte, parts Int128) []byte {
	offset := i128ToU128(parts).Sub(i128ToU128(s.min))

	return offset.AppendBigEndian(dst, 96)
}

func (s tsSpec) partsFromBytes(data []byte) (Int128, error) {
	if len(data) != 12 {
		return Int128{}, wrongByteLen(12, len(data))
	}
	offset := U128FromBigEndian(data)
	parts := s.min.Add(Int128{Hi: int64(offset.Hi), Lo: offset.Lo})
	if err := s.checkParts(parts); err != nil {
		return Int128{}, err
	}

	return parts, nil
}

type timestampNanoType struct{}

// TimestampNanoType describes the nanosecond timestamp number type.
var TimestampNanoType Type[TimestampNano, Int128] = timestampNanoType{}

func (timestampNanoType) HeaderByte() byte                 { return format.HeaderByteTimestampNano }
func (timestampNanoType) PhysicalBits() int                { return 96 }
func (timestampNanoType) UnsignedBits() int                { return 128 }
func (timestampNanoType) SignedType() Type[Int128, Int128] { return Int128Type }
func (timestampNanoType) AddSigned(a, b Int128) Int128     { return a.Add(b) }
func (timestampNanoType) SubSigned(a, b Int128) Int128     { return a.Sub(b) }

func (timestampNanoType) ToUnsigned(t TimestampNano) Uint128 { return i128ToU128(t.parts) }
func (timestampNanoType) FromUnsigned(u Uint128) TimestampNano {
	return TimestampNano{parts: u128ToI128(u)}
}
func (timestampNanoType) ToSigned(t TimestampNano) Int128 { return t.parts }
func (timestampNanoType) FromSigned(s Int128) TimestampNano {
	return TimestampNano{parts: s}
}

func (timestampNanoType) ReadFrom(r *bitio.Reader) (TimestampNano, error) {
	parts, err := nanoSpec.readParts(r)

	return TimestampNano{parts: parts}, err
}

func (timestampNanoType) WriteTo(w *bitio.Writer, t TimestampNano) {
	nanoSpec.writeParts(w, t.parts)
}

func (timestampNanoType) AppendBytes(dst []byte, t TimestampNano) []byte {
	return nanoSpec.appendParts(dst, t.parts)
}

func (timestampNanoType) FromBytes(data []byte) (TimestampNano, error) {
	parts, err := nanoSpec.partsFromBytes(data)

	return TimestampNano{parts: parts}, err
}

func (timestampNanoType) Format(t TimestampNano) string {
	return fmt.Sprintf("Timestamp(%s/%d)", t.parts, nanoSpec.partsPerSec)
}

type timestampMicroType struct{}

// TimestampMicroType describes the microsecond timestamp number type.
var TimestampMicroType Type[TimestampMicro, Int128] = timestampMicroType{}

func (timestampMicroType) HeaderByte() byte                 { return format.HeaderByteTimestampMicro }
func (timestampMicroType) PhysicalBits() int                { return 96 }
func (timestampMicroType) UnsignedBits() int                { return 128 }
func (timestampMicroType) SignedType() Type[Int128, Int128] { return Int128Type }
func (timestampMicroType) AddSigned(a, b Int128) Int128     { return a.Add(b) }
func (timestampMicroType) SubSigned(a, b Int128) Int128     { return a.Sub(b) }

func (timestampMicroType) ToUnsigned(t TimestampMicro) Uint128 { return i128ToU128(t.parts) }
func (timestampMicroType) FromUnsigned(u Uint128) TimestampMicro {
	return TimestampMicro{parts: u128ToI128(u)}
}
func (timestampMicroType) ToSigned(t TimestampMicro) Int128 { return t.parts }
func (timestampMicroType) FromSigned(s Int128) TimestampMicro {
	return TimestampMicro{parts: s}
}

func (timestampMicroType) ReadFrom(r *bitio.Reader) (TimestampMicro, error) {
	parts, err := microSpec.readParts(r)

	return TimestampMicro{parts: parts}, err
}

func (timestampMicroType) WriteTo(w *bitio.Writer, t TimestampMicro) {
	microSpec.writeParts(w, t.parts)
}

func (timestampMicroType) AppendBytes(dst []byte, t TimestampMicro) []byte {
	return microSpec.appendParts(dst, t.parts)
}

func (timestampMicroType) FromBytes(data []byte) (TimestampMicro, error) {
	parts, err := microSpec.partsFromBytes(data)

	return TimestampMicro{parts: parts}, err
}

func (timestampMicroType) Format(t TimestampMicro) string {
	return fmt.Sprintf("Timestamp(%s/%d)", t.parts, microSpec.partsPerSec)
}
