package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_Basics(t *testing.T) {
	bb := NewByteBuffer(64)
	require.Equal(t, 0, bb.Len())
	require.Equal(t, 64, bb.Cap())

	bb.B = append(bb.B, 1, 2, 3)
	require.Equal(t, 3, bb.Len())
	require.Equal(t, []byte{1, 2, 3}, bb.Bytes())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.Equal(t, 64, bb.Cap())
}

func TestBodyBufferPool(t *testing.T) {
	bb := GetBodyBuffer()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())

	bb.B = append(bb.B, 0xAA)
	PutBodyBuffer(bb)

	// A recycled buffer always comes back empty.
	again := GetBodyBuffer()
	require.Equal(t, 0, again.Len())
	PutBodyBuffer(again)
}

func TestPutBodyBuffer_DropsOversized(t *testing.T) {
	big := NewByteBuffer(BodyBufferMaxThreshold + 1)

	// Must not panic; the buffer is simply dropped.
	PutBodyBuffer(big)
	PutBodyBuffer(nil)
}
