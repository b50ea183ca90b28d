// Package endian provides byte order utilities for the binary codec.
//
// It combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single EndianEngine interface so encoders can both
// read fixed-width values and append them without temporary buffers.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Native returns the host byte order, determined from a fixed integer probe.
func Native() binary.ByteOrder {
	// For 0x0100 a little-endian host stores the zero byte first.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return Native() == binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine. This is the byte
// order of the arbor binary format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
