package wire

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arloliu/arbor/errs"
)

// Binary primitives for the Msg format. All multi-byte fixed-width values use
// the little-endian Engine; lengths and unsigned integers use uvarint.

// AppendMsgUint appends v as a uvarint.
func AppendMsgUint(dst []byte, v uint64) []byte {
	return binary.AppendUvarint(dst, v)
}

// ReadMsgUint consumes a uvarint from the front of b.
func ReadMsgUint(b []byte) (uint64, []byte, error) {
	v, n := binary.Uvarint(b)
	if n <= 0 {
		return 0, nil, fmt.Errorf("%w: truncated uvarint", errs.ErrMalformedPayload)
	}

	return v, b[n:], nil
}

// AppendMsgInt appends v as a zigzag varint.
func AppendMsgInt(dst []byte, v int64) []byte {
	return binary.AppendVarint(dst, v)
}

// ReadMsgInt consumes a zigzag varint from the front of b.
func ReadMsgInt(b []byte) (int64, []byte, error) {
	v, n := binary.Varint(b)
	if n <= 0 {
		return 0, nil, fmt.Errorf("%w: truncated varint", errs.ErrMalformedPayload)
	}

	return v, b[n:], nil
}

// AppendMsgFloat64 appends the IEEE 754 bits of v, fixed width 8 bytes.
func AppendMsgFloat64(dst []byte, v float64) []byte {
	return Engine.AppendUint64(dst, math.Float64bits(v))
}

// ReadMsgFloat64 consumes 8 bytes from the front of b.
func ReadMsgFloat64(b []byte) (float64, []byte, error) {
	if len(b) < 8 {
		return 0, nil, fmt.Errorf("%w: truncated float64", errs.ErrMalformedPayload)
	}

	return math.Float64frombits(Engine.Uint64(b)), b[8:], nil
}

// AppendMsgString appends s with a uvarint length prefix.
func AppendMsgString(dst []byte, s string) []byte {
	dst = AppendMsgUint(dst, uint64(len(s)))
	return append(dst, s...)
}

// ReadMsgString consumes a length-prefixed string from the front of b.
func ReadMsgString(b []byte) (string, []byte, error) {
	n, rest, err := ReadMsgUint(b)
	if err != nil {
		return "", nil, err
	}
	if uint64(len(rest)) < n {
		return "", nil, fmt.Errorf("%w: truncated string of length %d", errs.ErrMalformedPayload, n)
	}

	return string(rest[:n]), rest[n:], nil
}

// AppendMsgBool appends v as a single byte.
func AppendMsgBool(dst []byte, v bool) []byte {
	if v {
		return append(dst, 1)
	}

	return append(dst, 0)
}

// ReadMsgBool consumes one byte from the front of b.
func ReadMsgBool(b []byte) (bool, []byte, error) {
	if len(b) < 1 {
		return false, nil, fmt.Errorf("%w: truncated bool", errs.ErrMalformedPayload)
	}
	switch b[0] {
	case 0:
		return false, b[1:], nil
	case 1:
		return true, b[1:], nil
	default:
		return false, nil, fmt.Errorf("%w: invalid bool byte 0x%02x", errs.ErrMalformedPayload, b[0])
	}
}
