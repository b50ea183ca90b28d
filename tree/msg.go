package tree

import (
	"fmt"

	"github.com/arloliu/arbor/errs"
)

// The binary form opens with a fixed 4-byte header: two magic bytes, the
// format version and the container kind. Everything after the header is
// positional, mirroring the compact text layout.
const (
	msgMagic0 = 0xA8
	msgMagic1 = 0x0B

	msgVersion = 0x01

	msgKindTree     = 0x01
	msgKindFeedTree = 0x02

	msgHeaderSize = 4
)

func appendMsgHeader(dst []byte, kind byte) []byte {
	return append(dst, msgMagic0, msgMagic1, msgVersion, kind)
}

// readMsgHeader validates the header and returns the payload that follows.
func readMsgHeader(b []byte, kind byte) ([]byte, error) {
	if len(b) < msgHeaderSize {
		return nil, fmt.Errorf("%w: payload shorter than header", errs.ErrMalformedPayload)
	}
	if b[0] != msgMagic0 || b[1] != msgMagic1 {
		return nil, fmt.Errorf("%w: bad magic 0x%02x%02x", errs.ErrMalformedPayload, b[0], b[1])
	}
	if b[2] != msgVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", errs.ErrMalformedPayload, b[2])
	}
	if b[3] != kind {
		return nil, fmt.Errorf("%w: container kind %d, want %d", errs.ErrMalformedPayload, b[3], kind)
	}

	return b[msgHeaderSize:], nil
}
