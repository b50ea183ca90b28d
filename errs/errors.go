// Package errs defines the sentinel errors shared across the arbor packages.
//
// All errors returned by container mutation, encoding and decoding operations
// either are one of these sentinels or wrap one of them, so callers can
// classify failures with errors.Is without string matching.
package errs

import "errors"

var (
	// ErrDuplicateName is returned when a field, branch or feed is added
	// under a name that is already present in its container.
	ErrDuplicateName = errors.New("duplicate name in container")

	// ErrHashCollision is returned when two different names hash to the same
	// 64-bit name ID within one container.
	ErrHashCollision = errors.New("name hash collision in container")

	// ErrUnknownName is returned when a lookup or targeted write names a
	// field, branch or feed that does not exist.
	ErrUnknownName = errors.New("name not found in container")

	// ErrLengthMismatch is returned by Plot when the two input collections
	// have different lengths.
	ErrLengthMismatch = errors.New("collection length mismatch")

	// ErrInvalidBinCount is returned by Hist when the requested bin count is
	// less than one.
	ErrInvalidBinCount = errors.New("bin count must be at least 1")

	// ErrUnsupportedReadType is returned when a Tree decode encounters a
	// branch type tag outside the built-in reconstructable set.
	ErrUnsupportedReadType = errors.New("branch type tag is not decodable")

	// ErrMalformedPayload is returned when a payload is structurally invalid
	// for the format being decoded.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrEncodeFailure is returned when a value cannot be represented in the
	// target format, e.g. a non-finite float in a text encoding.
	ErrEncodeFailure = errors.New("value cannot be encoded")

	// ErrTypeMismatch is returned when extracting a branch or feed as a
	// different element type than it holds.
	ErrTypeMismatch = errors.New("element type mismatch")
)
