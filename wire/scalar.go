package wire

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/arloliu/arbor/errs"
)

// Field values are restricted to a small scalar set so every format can
// reconstruct both the value and its kind.
const (
	scalarKindStr  = 0x1
	scalarKindF64  = 0x2
	scalarKindI64  = 0x3
	scalarKindBool = 0x4
)

// ValidScalar reports whether v is a storable field value: string, float64,
// int64 or bool.
func ValidScalar(v any) bool {
	switch v.(type) {
	case string, float64, int64, bool:
		return true
	default:
		return false
	}
}

// AppendScalarJSON appends a field value in its JSON representation. The two
// text formats share this form. Floats are forced to carry a decimal point or
// exponent so the decoder can recover their kind.
func AppendScalarJSON(dst []byte, v any) ([]byte, error) {
	switch x := v.(type) {
	case string:
		return AppendJSONString(dst, x)
	case float64:
		return appendJSONFloatTyped(dst, x)
	case int64:
		return strconv.AppendInt(dst, x, 10), nil
	case bool:
		return strconv.AppendBool(dst, x), nil
	default:
		return nil, fmt.Errorf("%w: unsupported field value type %T", errs.ErrEncodeFailure, v)
	}
}

// ParseScalarJSON reconstructs a field value from its JSON representation.
// Numbers containing a decimal point or exponent decode as float64, all
// other numbers as int64.
func ParseScalarJSON(raw []byte) (any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty field value", errs.ErrMalformedPayload)
	}

	switch {
	case raw[0] == '"':
		var s string
		if err := UnmarshalJSON(raw, &s); err != nil {
			return nil, err
		}

		return s, nil
	case bytes.Equal(raw, []byte("true")):
		return true, nil
	case bytes.Equal(raw, []byte("false")):
		return false, nil
	case bytes.ContainsAny(raw, ".eE"):
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrMalformedPayload, err)
		}

		return f, nil
	default:
		i, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrMalformedPayload, err)
		}

		return i, nil
	}
}

// AppendScalarMsg appends a field value as a kind byte followed by its binary
// payload.
func AppendScalarMsg(dst []byte, v any) ([]byte, error) {
	switch x := v.(type) {
	case string:
		dst = append(dst, scalarKindStr)
		return AppendMsgString(dst, x), nil
	case float64:
		dst = append(dst, scalarKindF64)
		return AppendMsgFloat64(dst, x), nil
	case int64:
		dst = append(dst, scalarKindI64)
		return AppendMsgInt(dst, x), nil
	case bool:
		dst = append(dst, scalarKindBool)
		return AppendMsgBool(dst, x), nil
	default:
		return nil, fmt.Errorf("%w: unsupported field value type %T", errs.ErrEncodeFailure, v)
	}
}

// ReadScalarMsg consumes a kind-tagged field value from the front of b.
func ReadScalarMsg(b []byte) (any, []byte, error) {
	if len(b) < 1 {
		return nil, nil, fmt.Errorf("%w: truncated field value", errs.ErrMalformedPayload)
	}
	kind, rest := b[0], b[1:]

	switch kind {
	case scalarKindStr:
		return readScalarTail(ReadMsgString(rest))
	case scalarKindF64:
		return readScalarTail(ReadMsgFloat64(rest))
	case scalarKindI64:
		return readScalarTail(ReadMsgInt(rest))
	case scalarKindBool:
		return readScalarTail(ReadMsgBool(rest))
	default:
		return nil, nil, fmt.Errorf("%w: unknown field value kind 0x%02x", errs.ErrMalformedPayload, kind)
	}
}

func readScalarTail[T any](v T, rest []byte, err error) (any, []byte, error) {
	if err != nil {
		return nil, nil, err
	}

	return v, rest, nil
}
