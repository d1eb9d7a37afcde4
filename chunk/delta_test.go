package chunk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/numpress/bitio"
	"github.com/arloliu/numpress/numeric"
)

func TestDeltaEncode_Orders(t *testing.T) {
	values := []int64{10, 12, 15, 19, 24}

	t.Run("Order zero", func(t *testing.T) {
		moments, deltas := DeltaEncode(numeric.Int64Type, values, 0)
		require.Equal(t, 0, moments.Order())
		require.Equal(t, values, deltas)
	})

	t.Run("Order one", func(t *testing.T) {
		moments, deltas := DeltaEncode(numeric.Int64Type, values, 1)
		require.Equal(t, []int64{10}, moments.Moments)
		require.Equal(t, []int64{2, 3, 4, 5}, deltas)
	})

	t.Run("Order two", func(t *testing.T) {
		moments, deltas := DeltaEncode(numeric.Int64Type, values, 2)
		require.Equal(t, []int64{10, 2}, moments.Moments)
		require.Equal(t, []int64{1, 1, 1}, deltas)
	})
}

func TestDeltaRoundTrip(t *testing.T) {
	values := []int64{5, -3, 1000, 1000, -77, 0, 42}

	for order := 0; order <= 4; order++ {
		moments, deltas := DeltaEncode(numeric.Int64Type, values, order)
		require.Equal(t, order, moments.Order())
		require.Len(t, deltas, max(0, len(values)-order))

		got := DeltaDecode(numeric.Int64Type, moments, deltas, len(values))
		require.Equal(t, values, got, "order %d", order)
	}
}

func TestDeltaRoundTrip_Wrapping(t *testing.T) {
	// Differences overflow the signed domain and must wrap losslessly.
	values := []int64{math.MinInt64, math.MaxInt64, math.MinInt64, 0}

	moments, deltas := DeltaEncode(numeric.Int64Type, values, 2)
	got := DeltaDecode(numeric.Int64Type, moments, deltas, len(values))

	require.Equal(t, values, got)
}

func TestDeltaRoundTrip_Floats(t *testing.T) {
	values := []float64{1.5, -2.25, 0, math.Inf(1), 3.75, math.Copysign(0, -1)}

	moments, deltas := DeltaEncode(numeric.Float64Type, values, 1)
	got := DeltaDecode(numeric.Float64Type, moments, deltas, len(values))

	require.Len(t, got, len(values))
	for i := range values {
		require.Equal(t, math.Float64bits(values[i]), math.Float64bits(got[i]), "at %d", i)
	}
}

func TestDeltaRoundTrip_Timestamps(t *testing.T) {
	values := []numeric.TimestampNano{
		numeric.TimestampNanoFromSecsAndNanos(-1, 500_000_000),
		numeric.TimestampNanoFromSecsAndNanos(0, 0),
		numeric.TimestampNanoFromSecsAndNanos(0, 1),
		numeric.TimestampNanoFromSecsAndNanos(100, 999_999_999),
	}

	moments, deltas := DeltaEncode(numeric.TimestampNanoType, values, 2)
	got := DeltaDecode(numeric.TimestampNanoType, moments, deltas, len(values))

	require.Equal(t, values, got)
}

func TestDeltaEncode_ShortChunk(t *testing.T) {
	// Fewer values than the order: missing moments stay zero, no deltas.
	values := []int64{7}

	moments, deltas := DeltaEncode(numeric.Int64Type, values, 3)
	require.Equal(t, []int64{7, 0, 0}, moments.Moments)
	require.Empty(t, deltas)

	got := DeltaDecode(numeric.Int64Type, moments, deltas, 1)
	require.Equal(t, values, got)
}

func TestDeltaMoments_Serialization(t *testing.T) {
	moments := DeltaMoments[int64]{Moments: []int64{-5, 123456789}}

	w := bitio.NewWriter(32)
	moments.writeTo(numeric.Int64Type, w)
	require.Equal(t, 128, w.BitPosition())
	w.FinishByte()

	r := bitio.NewReader(w.Bytes())
	got, err := parseDeltaMoments(numeric.Int64Type, 2, r)
	require.NoError(t, err)
	require.Equal(t, moments, got)
}
