package wire

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/arloliu/arbor/errs"
)

// Element dispatch. Collections store their element type T directly; these
// helpers bridge between the built-in scalars, which cannot carry methods,
// and composite types implementing Value/Unmarshaler.

// AppendElemJSON appends one element in the verbose form.
func AppendElemJSON(dst []byte, v any) ([]byte, error) {
	switch x := v.(type) {
	case float64:
		return AppendJSONFloat(dst, x)
	case uint64:
		return strconv.AppendUint(dst, x, 10), nil
	case string:
		return AppendJSONString(dst, x)
	case Value:
		return x.AppendJSON(dst)
	default:
		return nil, fmt.Errorf("%w: element type %T does not satisfy the storage contract", errs.ErrEncodeFailure, v)
	}
}

// AppendElemJSONC appends one element in the compact text form. Scalars share
// their verbose representation; composites emit positional arrays.
func AppendElemJSONC(dst []byte, v any) ([]byte, error) {
	switch x := v.(type) {
	case float64:
		return AppendJSONFloat(dst, x)
	case uint64:
		return strconv.AppendUint(dst, x, 10), nil
	case string:
		return AppendJSONString(dst, x)
	case Value:
		return x.AppendJSONC(dst)
	default:
		return nil, fmt.Errorf("%w: element type %T does not satisfy the storage contract", errs.ErrEncodeFailure, v)
	}
}

// AppendElemMsg appends one element in the binary form.
func AppendElemMsg(dst []byte, v any) ([]byte, error) {
	switch x := v.(type) {
	case float64:
		return AppendMsgFloat64(dst, x), nil
	case uint64:
		return AppendMsgUint(dst, x), nil
	case string:
		return AppendMsgString(dst, x), nil
	case Value:
		return x.AppendMsg(dst)
	default:
		return nil, fmt.Errorf("%w: element type %T does not satisfy the storage contract", errs.ErrEncodeFailure, v)
	}
}

// ParseElemJSON reconstructs one element of type T from its verbose form.
func ParseElemJSON[T any](data []byte) (T, error) {
	var out T
	switch p := any(&out).(type) {
	case *float64:
		f, err := parseJSONNumber(data)
		if err != nil {
			return out, err
		}
		*p = f
	case *uint64:
		u, err := strconv.ParseUint(string(bytes.TrimSpace(data)), 10, 64)
		if err != nil {
			return out, fmt.Errorf("%w: %v", errs.ErrMalformedPayload, err)
		}
		*p = u
	case *string:
		if err := UnmarshalJSON(data, p); err != nil {
			return out, err
		}
	case Unmarshaler:
		if err := p.ParseJSON(data); err != nil {
			return out, err
		}
	default:
		return out, fmt.Errorf("%w: element type %T does not satisfy the storage contract", errs.ErrUnsupportedReadType, out)
	}

	return out, nil
}

// ParseElemJSONC reconstructs one element of type T from its compact text form.
func ParseElemJSONC[T any](data []byte) (T, error) {
	var out T
	switch p := any(&out).(type) {
	case *float64, *uint64, *string:
		return ParseElemJSON[T](data)
	case Unmarshaler:
		if err := p.ParseJSONC(data); err != nil {
			return out, err
		}
	default:
		return out, fmt.Errorf("%w: element type %T does not satisfy the storage contract", errs.ErrUnsupportedReadType, out)
	}

	return out, nil
}

// ParseElemMsg consumes one element of type T from the front of data,
// returning the remaining bytes.
func ParseElemMsg[T any](data []byte) (T, []byte, error) {
	var out T
	var err error
	var rest []byte

	switch p := any(&out).(type) {
	case *float64:
		*p, rest, err = ReadMsgFloat64(data)
	case *uint64:
		*p, rest, err = ReadMsgUint(data)
	case *string:
		*p, rest, err = ReadMsgString(data)
	case Unmarshaler:
		rest, err = p.ParseMsg(data)
	default:
		return out, nil, fmt.Errorf("%w: element type %T does not satisfy the storage contract", errs.ErrUnsupportedReadType, out)
	}
	if err != nil {
		return out, nil, err
	}

	return out, rest, nil
}

func parseJSONNumber(data []byte) (float64, error) {
	f, err := strconv.ParseFloat(string(bytes.TrimSpace(data)), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errs.ErrMalformedPayload, err)
	}

	return f, nil
}
