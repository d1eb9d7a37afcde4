// Package pool provides pooled byte buffers for the compressor's staging
// work: chunk bodies are bit-packed into a scratch buffer before the
// optional byte-level codec runs.
package pool

import "sync"

const (
	// BodyBufferDefaultSize is the default capacity of a pooled buffer.
	BodyBufferDefaultSize = 1024 * 16 // 16KiB
	// BodyBufferMaxThreshold caps what is returned to the pool; oversized
	// buffers are dropped so one huge chunk does not pin memory forever.
	BodyBufferMaxThreshold = 1024 * 1024 // 1MiB
)

// ByteBuffer wraps a reusable byte slice.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

var bodyBufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(BodyBufferDefaultSize)
	},
}

// GetBodyBuffer obtains an empty buffer from the pool.
func GetBodyBuffer() *ByteBuffer {
	bb, _ := bodyBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutBodyBuffer returns a buffer to the pool. Buffers that grew past
// BodyBufferMaxThreshold are dropped.
func PutBodyBuffer(bb *ByteBuffer) {
	if bb == nil || bb.Cap() > BodyBufferMaxThreshold {
		return
	}
	bodyBufferPool.Put(bb)
}
