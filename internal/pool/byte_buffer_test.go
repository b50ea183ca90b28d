package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)
	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, []byte("hello"), bb.Bytes())
	require.Equal(t, 5, bb.Len())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.GreaterOrEqual(t, cap(bb.B), 16)
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.Grow(1024)
	require.GreaterOrEqual(t, cap(bb.B)-len(bb.B), 1024)

	// Growing within capacity is a no-op.
	before := cap(bb.B)
	bb.Grow(16)
	require.Equal(t, before, cap(bb.B))
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(8)
	_, err := bb.Write([]byte("payload"))
	require.NoError(t, err)

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(7), n)
	require.Equal(t, "payload", out.String())
}

func TestPayloadPool(t *testing.T) {
	bb := GetPayloadBuffer()
	require.NotNil(t, bb)
	_, err := bb.Write([]byte("x"))
	require.NoError(t, err)
	PutPayloadBuffer(bb)

	bb2 := GetPayloadBuffer()
	require.Equal(t, 0, bb2.Len())
	PutPayloadBuffer(bb2)

	// Oversized buffers are discarded, nil is tolerated.
	big := NewByteBuffer(PayloadBufferMaxThreshold + 1)
	PutPayloadBuffer(big)
	PutPayloadBuffer(nil)
}
