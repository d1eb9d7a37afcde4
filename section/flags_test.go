package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/numpress/errs"
	"github.com/arloliu/numpress/format"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	require.Equal(t, 0, flags.DeltaEncodingOrder())
	require.True(t, flags.UseGCDs())
	require.False(t, flags.HasChecksum())
	require.Equal(t, format.CompressionNone, flags.Compression())
	require.NoError(t, flags.Validate())
}

func TestFlags_DeltaEncodingOrder(t *testing.T) {
	flags := NewFlags()

	for order := 0; order <= format.MaxDeltaEncodingOrder; order++ {
		require.NoError(t, flags.SetDeltaEncodingOrder(order))
		require.Equal(t, order, flags.DeltaEncodingOrder())
		require.NoError(t, flags.Validate())
	}

	err := flags.SetDeltaEncodingOrder(8)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	err = flags.SetDeltaEncodingOrder(-1)
	require.Error(t, err)
}

func TestFlags_Toggles(t *testing.T) {
	flags := NewFlags()

	flags.WithoutGCDs()
	require.False(t, flags.UseGCDs())
	flags.WithGCDs()
	require.True(t, flags.UseGCDs())

	flags.SetChecksum(true)
	require.True(t, flags.HasChecksum())
	flags.SetChecksum(false)
	require.False(t, flags.HasChecksum())
}

func TestFlags_Compression(t *testing.T) {
	flags := NewFlags()

	for _, c := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
		format.CompressionGzip,
	} {
		flags.SetCompression(c)
		require.Equal(t, c, flags.Compression())
		require.NoError(t, flags.Validate())
	}

	flags.SetCompression(format.CompressionType(0xF))
	require.ErrorIs(t, flags.Validate(), errs.ErrInvalidHeaderFlags)
}

func TestFlags_ReservedBits(t *testing.T) {
	flags := NewFlags()
	flags.Options |= 0x0020

	require.ErrorIs(t, flags.Validate(), errs.ErrInvalidHeaderFlags)
}

func TestFlags_Widths(t *testing.T) {
	flags := NewFlags()

	// MaxPrefixCodeLen = 16 serializes code lengths in 5 bits.
	require.Equal(t, 16, flags.MaxPrefixCodeLen())
	require.Equal(t, 5, flags.BitsToEncodeCodeLen())

	require.Equal(t, 0, flags.BitsToEncodeCount(0))
	require.Equal(t, 2, flags.BitsToEncodeCount(3))
	require.Equal(t, 3, flags.BitsToEncodeCount(4))
	require.Equal(t, 10, flags.BitsToEncodeCount(1000))
}

func TestHeader_RoundTrip(t *testing.T) {
	flags := NewFlags()
	require.NoError(t, flags.SetDeltaEncodingOrder(2))
	flags.SetCompression(format.CompressionZstd)
	flags.SetChecksum(true)

	header := NewHeader(format.HeaderByteFloat64, flags)
	data := header.Bytes()
	require.Len(t, data, HeaderSize)

	parsed, err := ParseHeader(data)
	require.NoError(t, err)
	require.Equal(t, header, parsed)
}

func TestHeader_ParseErrors(t *testing.T) {
	t.Run("Too short", func(t *testing.T) {
		_, err := ParseHeader([]byte{1, 2, 3})
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("Bad magic", func(t *testing.T) {
		data := NewHeader(format.HeaderByteInt32, NewFlags()).Bytes()
		data[0] = 'x'

		_, err := ParseHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidMagicHeader)
	})

	t.Run("Bad version", func(t *testing.T) {
		data := NewHeader(format.HeaderByteInt32, NewFlags()).Bytes()
		data[VersionOffset] = 99

		_, err := ParseHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("Bad flags", func(t *testing.T) {
		flags := NewFlags()
		flags.Options |= ReservedHighMask
		data := NewHeader(format.HeaderByteInt32, flags).Bytes()

		_, err := ParseHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})
}
