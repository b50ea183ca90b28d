// Package wire defines the storage contract element types implement and the
// shared encoding primitives behind the three arbor payload formats.
//
// Three formats share one logical shape:
//
//   - JSON: verbose object-keyed text, e.g. Point -> {"x":1.0,"y":2.0}
//   - JSONC: compact array-positional text, e.g. Point -> [1,2]
//   - Msg: compact binary with the same positional layout as JSONC,
//     little-endian fixed-width floats and uvarint length prefixes
//
// Built-in scalar elements (float64, uint64, string) are handled by the
// dispatch helpers in this package; composite element types implement Value
// and, when they need to be read back, Unmarshaler.
package wire

import "github.com/arloliu/arbor/endian"

// Engine is the byte order of the Msg format.
var Engine = endian.GetLittleEndianEngine()

// Value is the encode half of the storage contract. Implementations append
// their representation in each format to dst and return the extended slice.
//
// AppendJSON and AppendJSONC fail with errs.ErrEncodeFailure when the value
// cannot be represented in text, e.g. a non-finite float. AppendMsg accepts
// any IEEE 754 value.
type Value interface {
	AppendJSON(dst []byte) ([]byte, error)
	AppendJSONC(dst []byte) ([]byte, error)
	AppendMsg(dst []byte) ([]byte, error)
}

// Unmarshaler is the decode half of the storage contract, implemented on
// pointer receivers.
//
// ParseJSON reconstructs the value from its verbose form and is required of
// every readable type. ParseJSONC and ParseMsg are exercised only by the
// FeedTree round-trip paths; ParseMsg consumes the value's bytes from the
// front of data and returns the remainder.
type Unmarshaler interface {
	ParseJSON(data []byte) error
	ParseJSONC(data []byte) error
	ParseMsg(data []byte) (rest []byte, err error)
}
