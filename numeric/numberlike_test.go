package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/numpress/bitio"
	"github.com/arloliu/numpress/errs"
	"github.com/arloliu/numpress/format"
)

// checkType exercises the NumberLike contract for one descriptor over a set
// of sample values given in ascending natural order.
func checkType[T, S any](t *testing.T, dt Type[T, S], ascending []T) {
	t.Helper()

	for i, v := range ascending {
		u := dt.ToUnsigned(v)
		require.Equal(t, v, dt.FromUnsigned(u), "unsigned bijection at %d", i)
		require.Equal(t, v, dt.FromSigned(dt.ToSigned(v)), "signed bijection at %d", i)

		b := dt.AppendBytes(nil, v)
		require.Len(t, b, dt.PhysicalBits()/8)
		back, err := dt.FromBytes(b)
		require.NoError(t, err)
		require.Equal(t, v, back, "byte round trip at %d", i)

		if i > 0 {
			prev := dt.ToUnsigned(ascending[i-1])
			require.Equal(t, -1, prev.Cmp(u), "order not preserved at %d", i)
		}
	}

	// Bit round trip through a writer/reader pair.
	w := bitio.NewWriter(64)
	for _, v := range ascending {
		dt.WriteTo(w, v)
	}
	w.FinishByte()

	r := bitio.NewReader(w.Bytes())
	for i, v := range ascending {
		got, err := dt.ReadFrom(r)
		require.NoError(t, err)
		require.Equal(t, v, got, "bit round trip at %d", i)
	}

	_, err := dt.FromBytes(make([]byte, dt.PhysicalBits()/8+1))
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestInt16Type(t *testing.T) {
	checkType(t, Int16Type, []int16{math.MinInt16, -1, 0, 1, math.MaxInt16})
	require.Equal(t, format.HeaderByteInt16, Int16Type.HeaderByte())
}

func TestInt32Type(t *testing.T) {
	checkType(t, Int32Type, []int32{math.MinInt32, -100, -1, 0, 1, 100, math.MaxInt32})
	require.Equal(t, Uint128{}, Int32Type.ToUnsigned(math.MinInt32))
	require.Equal(t, U128From64(1<<32-1), Int32Type.ToUnsigned(math.MaxInt32))
}

func TestInt64Type(t *testing.T) {
	checkType(t, Int64Type, []int64{math.MinInt64, -1, 0, 1, math.MaxInt64})
}

func TestUintTypes(t *testing.T) {
	checkType(t, Uint16Type, []uint16{0, 1, math.MaxUint16})
	checkType(t, Uint32Type, []uint32{0, 1, math.MaxUint32})
	checkType(t, Uint64Type, []uint64{0, 1, math.MaxUint64})

	// Identity map.
	require.Equal(t, U128From64(42), Uint64Type.ToUnsigned(42))

	// Signed companion round trip through zero.
	require.Equal(t, uint64(0), Uint64Type.FromSigned(Uint64Type.ToSigned(0)))
	require.Equal(t, int64(math.MinInt64), Uint64Type.ToSigned(0))
}

func TestFloat64Type(t *testing.T) {
	// Ascending in the monotone bit-mapping order: negative NaN patterns
	// sort below -Inf, positive NaN patterns above +Inf.
	negNaN := math.Float64frombits(0xFFF8000000000001)
	posNaN := math.Float64frombits(0x7FF8000000000001)
	ascending := []float64{
		negNaN,
		math.Inf(-1),
		-math.MaxFloat64,
		-1.5,
		math.Copysign(0, -1),
		0,
		1.5,
		math.MaxFloat64,
		math.Inf(1),
		posNaN,
	}

	for i, v := range ascending {
		u := Float64Type.ToUnsigned(v)
		got := Float64Type.FromUnsigned(u)
		require.Equal(t, math.Float64bits(v), math.Float64bits(got), "bijection at %d", i)

		s := Float64Type.ToSigned(v)
		require.Equal(t, math.Float64bits(v), math.Float64bits(Float64Type.FromSigned(s)))

		if i > 0 {
			prev := Float64Type.ToUnsigned(ascending[i-1])
			require.Equal(t, -1, prev.Cmp(u), "order not preserved at %d", i)
		}
	}

	// -0.0 and +0.0 are distinct points in the unsigned domain.
	negZero := Float64Type.ToUnsigned(math.Copysign(0, -1))
	posZero := Float64Type.ToUnsigned(0)
	require.Equal(t, -1, negZero.Cmp(posZero))
	require.Equal(t, U128From64(1), posZero.Sub(negZero))
}

func TestFloat32Type(t *testing.T) {
	negNaN := math.Float32frombits(0xFFC00001)
	posNaN := math.Float32frombits(0x7FC00001)
	ascending := []float32{
		negNaN,
		float32(math.Inf(-1)),
		-math.MaxFloat32,
		-1.5,
		float32(math.Copysign(0, -1)),
		0,
		1.5,
		math.MaxFloat32,
		float32(math.Inf(1)),
		posNaN,
	}

	for i, v := range ascending {
		u := Float32Type.ToUnsigned(v)
		got := Float32Type.FromUnsigned(u)
		require.Equal(t, math.Float32bits(v), math.Float32bits(got), "bijection at %d", i)

		if i > 0 {
			prev := Float32Type.ToUnsigned(ascending[i-1])
			require.Equal(t, -1, prev.Cmp(u), "order not preserved at %d", i)
		}
	}
}

func TestInt128Type(t *testing.T) {
	ascending := []Int128{
		{Hi: -1 << 63, Lo: 0},
		I128From64(math.MinInt64),
		I128From64(-1),
		{},
		I128From64(1),
		I128From64(math.MaxInt64),
		{Hi: 1<<63 - 1, Lo: ^uint64(0)},
	}
	checkType(t, Int128Type, ascending)

	require.Equal(t, 128, Int128Type.PhysicalBits())
	require.Equal(t, 128, Int128Type.UnsignedBits())
}

func TestHeaderBytesUnique(t *testing.T) {
	bytes := []byte{
		Int16Type.HeaderByte(), Int32Type.HeaderByte(), Int64Type.HeaderByte(),
		Uint16Type.HeaderByte(), Uint32Type.HeaderByte(), Uint64Type.HeaderByte(),
		Float32Type.HeaderByte(), Float64Type.HeaderByte(),
		TimestampNanoType.HeaderByte(), TimestampMicroType.HeaderByte(),
		Int128Type.HeaderByte(),
	}

	seen := make(map[byte]struct{}, len(bytes))
	for _, b := range bytes {
		_, dup := seen[b]
		require.False(t, dup, "duplicate header byte %d", b)
		seen[b] = struct{}{}
	}

	require.Equal(t, byte(8), TimestampNanoType.HeaderByte())
	require.Equal(t, byte(9), TimestampMicroType.HeaderByte())
}
