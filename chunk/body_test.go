package chunk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/numpress/bitio"
	"github.com/arloliu/numpress/errs"
	"github.com/arloliu/numpress/numeric"
)

// roundTripBody builds a table for values, encodes the body, and decodes it
// back.
func roundTripBody[T, S any](t *testing.T, dt numeric.Type[T, S], values []T, useGCDs bool) []T {
	t.Helper()

	prefixes := BuildPrefixes(dt, values, useGCDs)

	w := bitio.NewWriter(256)
	require.NoError(t, EncodeBody(dt, values, prefixes, w))
	require.Equal(t, 0, w.BitPosition()%8)

	got, err := DecodeBody(dt, prefixes, len(values), bitio.NewReader(w.Bytes()))
	require.NoError(t, err)

	return got
}

func TestBody_RoundTripInt32(t *testing.T) {
	values := []int32{-1000, -1000, -3, 0, 0, 0, 7, 7, 12, 500, 501, 502, 1 << 30}
	require.Equal(t, values, roundTripBody(t, numeric.Int32Type, values, true))
}

func TestBody_RoundTripWithoutGCDs(t *testing.T) {
	values := []int64{0, 8, 16, 24, 32, 40, 48, 56}
	require.Equal(t, values, roundTripBody(t, numeric.Int64Type, values, false))
}

func TestBody_RoundTripExtremes(t *testing.T) {
	values := []int64{math.MinInt64, -1, 0, 1, math.MaxInt64}
	require.Equal(t, values, roundTripBody(t, numeric.Int64Type, values, true))
}

func TestBody_RoundTripFloats(t *testing.T) {
	values := []float64{math.Inf(-1), -2.5, math.Copysign(0, -1), 0, 0, 1.25, 1.25, math.Inf(1)}
	got := roundTripBody(t, numeric.Float64Type, values, true)

	require.Len(t, got, len(values))
	for i := range values {
		require.Equal(t, math.Float64bits(values[i]), math.Float64bits(got[i]), "at %d", i)
	}
}

func TestBody_RunLength(t *testing.T) {
	values := make([]int64, 0, 300)
	for i := 0; i < 250; i++ {
		values = append(values, 9)
	}
	// The tail lies above 9, so the 9s form a single-value range.
	for i := 0; i < 50; i++ {
		values = append(values, int64(i+1)*100)
	}

	prefixes := BuildPrefixes(numeric.Int64Type, values, true)
	hasRun := false
	for _, p := range prefixes {
		hasRun = hasRun || p.HasRunLen()
	}
	require.True(t, hasRun)

	require.Equal(t, values, roundTripBody(t, numeric.Int64Type, values, true))

	t.Run("Interleaved runs", func(t *testing.T) {
		// The dominant value appears in several separate runs.
		mixed := make([]int64, 0, 300)
		for block := 0; block < 5; block++ {
			for i := 0; i < 50; i++ {
				mixed = append(mixed, 9)
			}
			mixed = append(mixed, int64(block)*100, int64(block)*100+300)
		}
		require.Equal(t, mixed, roundTripBody(t, numeric.Int64Type, mixed, true))
	})
}

func TestBody_Timestamps(t *testing.T) {
	values := []numeric.TimestampNano{
		numeric.TimestampNanoFromSecsAndNanos(-5, 250_000_000),
		numeric.TimestampNanoFromSecsAndNanos(0, 0),
		numeric.TimestampNanoFromSecsAndNanos(0, 500_000_000),
		numeric.TimestampNanoFromSecsAndNanos(1, 0),
		numeric.TimestampNanoFromSecsAndNanos(3600, 0),
	}
	require.Equal(t, values, roundTripBody(t, numeric.TimestampNanoType, values, true))
}

func TestBody_ValueNotCovered(t *testing.T) {
	prefixes := BuildPrefixes(numeric.Int32Type, []int32{1, 2, 3}, true)

	w := bitio.NewWriter(64)
	err := EncodeBody(numeric.Int32Type, []int32{99}, prefixes, w)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestBody_DecodeUnknownCode(t *testing.T) {
	prefixes := []Prefix[int32]{
		{Count: 1, Lower: 0, Upper: 0, Code: []bool{false, false}, RunLenJumpstart: NoJumpstart, GCD: numeric.U128From64(1)},
	}

	// Stream starts with 1, which no code covers.
	_, err := DecodeBody(numeric.Int32Type, prefixes, 1, bitio.NewReader([]byte{0x80}))
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrCorruption)
}

func TestBody_DecodeNotPrefixFree(t *testing.T) {
	prefixes := []Prefix[int32]{
		{Count: 1, Lower: 0, Upper: 0, Code: []bool{false}, RunLenJumpstart: NoJumpstart, GCD: numeric.U128From64(1)},
		{Count: 1, Lower: 1, Upper: 1, Code: []bool{false, true}, RunLenJumpstart: NoJumpstart, GCD: numeric.U128From64(1)},
	}

	_, err := DecodeBody(numeric.Int32Type, prefixes, 2, bitio.NewReader([]byte{0x00}))
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrCorruption)
}

func TestBody_DecodeOffsetOverflow(t *testing.T) {
	// Range [0, 2] with gcd 1 needs 2 offset bits; offset 3 is out of range.
	prefixes := []Prefix[int32]{
		{Count: 1, Lower: 0, Upper: 2, Code: []bool{}, RunLenJumpstart: NoJumpstart, GCD: numeric.U128From64(1)},
	}

	w := bitio.NewWriter(8)
	w.WriteUint64(3, 2)
	w.FinishByte()

	_, err := DecodeBody(numeric.Int32Type, prefixes, 1, bitio.NewReader(w.Bytes()))
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrCorruption)
}

func TestBody_DecodeRunExceedsRemaining(t *testing.T) {
	prefixes := []Prefix[int32]{
		{Count: 30, Lower: 5, Upper: 5, Code: []bool{}, RunLenJumpstart: 3, GCD: numeric.U128From64(1)},
	}

	// A run of 8 against n = 4.
	w := bitio.NewWriter(8)
	writeRunLen(w, 8, 3)
	w.FinishByte()

	_, err := DecodeBody(numeric.Int32Type, prefixes, 4, bitio.NewReader(w.Bytes()))
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrCorruption)
	require.Contains(t, err.Error(), "run length 8")
}

func TestBody_DecodeTruncated(t *testing.T) {
	values := []int64{1, 2, 3, 4, 5, 6, 7, 8}
	prefixes := BuildPrefixes(numeric.Int64Type, values, true)

	w := bitio.NewWriter(64)
	require.NoError(t, EncodeBody(numeric.Int64Type, values, prefixes, w))

	full := w.Bytes()
	_, err := DecodeBody(numeric.Int64Type, prefixes, len(values), bitio.NewReader(full[:len(full)/2]))
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInsufficientData)
}

func TestRunLenCoding(t *testing.T) {
	for _, jumpstart := range []int{1, 2, 5, 10} {
		for _, reps := range []int{1, 2, 7, 8, 100, 12345} {
			w := bitio.NewWriter(16)
			writeRunLen(w, reps, jumpstart)
			w.FinishByte()

			got, err := readRunLen(bitio.NewReader(w.Bytes()), jumpstart)
			require.NoError(t, err)
			require.Equal(t, reps, got, "jumpstart %d reps %d", jumpstart, reps)
		}
	}
}
