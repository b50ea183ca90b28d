package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNative(t *testing.T) {
	order := Native()
	require.True(t, order == binary.LittleEndian || order == binary.BigEndian)
	require.Equal(t, order == binary.LittleEndian, IsNativeLittleEndian())
}

func TestEngines(t *testing.T) {
	le := GetLittleEndianEngine()
	be := GetBigEndianEngine()

	buf := le.AppendUint64(nil, 0x0102030405060708)
	require.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, buf)
	require.Equal(t, uint64(0x0102030405060708), le.Uint64(buf))

	buf = be.AppendUint64(nil, 0x0102030405060708)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, buf)
	require.Equal(t, uint64(0x0102030405060708), be.Uint64(buf))
}
