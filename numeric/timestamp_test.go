package numeric

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/numpress/bitio"
	"github.com/arloliu/numpress/errs"
)

func TestTimestampNano_NegativeSubsecond(t *testing.T) {
	// One half second before the epoch: parts = -500_000_000.
	ts := TimestampNanoFromSecsAndNanos(-1, 500_000_000)
	require.Equal(t, I128From64(-500_000_000), ts.Parts())

	secs, nanos := ts.SecsAndNanos()
	require.Equal(t, int64(-1), secs)
	require.Equal(t, uint32(500_000_000), nanos)

	// 12 big-endian bytes of parts - MIN.
	b := TimestampNanoType.AppendBytes(nil, ts)
	require.Len(t, b, 12)

	back, err := TimestampNanoType.FromBytes(b)
	require.NoError(t, err)
	require.Equal(t, ts.Parts(), back.Parts())
}

func TestTimestampNano_Bounds(t *testing.T) {
	min := nanoSpec.min
	max := nanoSpec.max

	t.Run("Min and max round trip", func(t *testing.T) {
		for _, parts := range []Int128{min, max} {
			ts, err := NewTimestampNano(parts)
			require.NoError(t, err)

			b := TimestampNanoType.AppendBytes(nil, ts)
			back, err := TimestampNanoType.FromBytes(b)
			require.NoError(t, err)
			require.Equal(t, parts, back.Parts())

			u := TimestampNanoType.ToUnsigned(ts)
			require.Equal(t, ts, TimestampNanoType.FromUnsigned(u))
		}
	})

	t.Run("Out of range rejected", func(t *testing.T) {
		_, err := NewTimestampNano(max.Add(I128From64(1)))
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidTimestamp)
		require.ErrorIs(t, err, errs.ErrInvalidArgument)

		_, err = NewTimestampNano(min.Sub(I128From64(1)))
		require.ErrorIs(t, err, errs.ErrInvalidTimestamp)
	})
}

func TestTimestampNano_OrderPreserved(t *testing.T) {
	ascending := []TimestampNano{
		{parts: nanoSpec.min},
		TimestampNanoFromSecsAndNanos(-1, 0),
		TimestampNanoFromSecsAndNanos(-1, 999_999_999),
		TimestampNanoFromSecsAndNanos(0, 0),
		TimestampNanoFromSecsAndNanos(0, 1),
		TimestampNanoFromSecsAndNanos(1<<40, 0),
		{parts: nanoSpec.max},
	}

	for i := 1; i < len(ascending); i++ {
		prev := TimestampNanoType.ToUnsigned(ascending[i-1])
		cur := TimestampNanoType.ToUnsigned(ascending[i])
		require.Equal(t, -1, prev.Cmp(cur), "order not preserved at %d", i)
	}
}

func TestTimestampNano_BitRoundTrip(t *testing.T) {
	values := []TimestampNano{
		{parts: nanoSpec.min},
		TimestampNanoFromSecsAndNanos(-1, 500_000_000),
		TimestampNanoFromSecsAndNanos(1_700_000_000, 123_456_789),
		{parts: nanoSpec.max},
	}

	w := bitio.NewWriter(64)
	for _, v := range values {
		TimestampNanoType.WriteTo(w, v)
	}
	w.FinishByte()
	require.Equal(t, len(values)*12, len(w.Bytes()))

	r := bitio.NewReader(w.Bytes())
	for i, v := range values {
		got, err := TimestampNanoType.ReadFrom(r)
		require.NoError(t, err)
		require.Equal(t, v, got, "round trip at %d", i)
	}
}

func TestTimestampNano_ReadFromRejectsOverflow(t *testing.T) {
	// A 96-bit offset above max - min is corrupt.
	w := bitio.NewWriter(16)
	w.WriteUint64(1<<32-1, 32)
	w.WriteUint64(^uint64(0), 64)

	r := bitio.NewReader(w.Bytes())
	_, err := TimestampNanoType.ReadFrom(r)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrCorruption)
}

func TestTimestampMicro_Resolution(t *testing.T) {
	// Sub-microsecond precision truncates.
	ts := TimestampMicroFromSecsAndNanos(10, 1_999)
	require.Equal(t, I128From64(10_000_001), ts.Parts())

	secs, nanos := ts.SecsAndNanos()
	require.Equal(t, int64(10), secs)
	require.Equal(t, uint32(1_000), nanos)
}

func TestTimestamp_TimeConversion(t *testing.T) {
	now := time.Date(2024, 3, 15, 6, 30, 15, 123456789, time.UTC)

	nano := TimestampNanoFromTime(now)
	micro := TimestampMicroFromTime(now)

	require.True(t, nano.Time().Equal(now))
	// Microsecond resolution truncates the nanosecond tail.
	require.True(t, micro.Time().Equal(now.Truncate(time.Microsecond)))

	t.Run("Before epoch", func(t *testing.T) {
		old := time.Date(1905, 7, 1, 12, 0, 0, 250_000_000, time.UTC)
		ts := TimestampNanoFromTime(old)
		require.True(t, ts.Time().Equal(old))

		secs, nanos := ts.SecsAndNanos()
		require.Equal(t, old.Unix(), secs)
		require.Equal(t, uint32(250_000_000), nanos)
	})
}
