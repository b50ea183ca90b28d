// Package pool provides pooled byte buffers for payload encoding.
package pool

import (
	"io"
	"sync"
)

const (
	// PayloadBufferDefaultSize is the initial capacity of pooled buffers.
	PayloadBufferDefaultSize = 1024 * 4 // 4KiB
	// PayloadBufferMaxThreshold is the largest capacity returned to the pool.
	PayloadBufferMaxThreshold = 1024 * 256 // 256KiB
)

// ByteBuffer is a growable byte slice with pool-friendly reuse semantics.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer, retaining the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Grow ensures the buffer can hold n more bytes without reallocating.
// Small buffers grow by the default size, larger ones by 25% of capacity.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	growBy := PayloadBufferDefaultSize
	if cap(bb.B) > 4*PayloadBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < n {
		growBy = n
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends data to the buffer. It never fails; the error is always nil.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the buffer contents to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

var payloadPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(PayloadBufferDefaultSize)
	},
}

// GetPayloadBuffer retrieves a ByteBuffer from the payload pool.
func GetPayloadBuffer() *ByteBuffer {
	bb, _ := payloadPool.Get().(*ByteBuffer)
	return bb
}

// PutPayloadBuffer returns a ByteBuffer to the payload pool, discarding
// buffers that grew beyond the retention threshold.
func PutPayloadBuffer(bb *ByteBuffer) {
	if bb == nil || cap(bb.B) > PayloadBufferMaxThreshold {
		return
	}

	bb.Reset()
	payloadPool.Put(bb)
}
