package wire

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	gojson "github.com/goccy/go-json"

	"github.com/arloliu/arbor/errs"
)

// AppendJSONString appends s as a quoted, escaped JSON string.
func AppendJSONString(dst []byte, s string) ([]byte, error) {
	b, err := gojson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrEncodeFailure, err)
	}

	return append(dst, b...), nil
}

// AppendJSONFloat appends v in the shortest decimal representation that
// round-trips. Non-finite values fail with errs.ErrEncodeFailure since JSON
// has no representation for them.
func AppendJSONFloat(dst []byte, v float64) ([]byte, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: non-finite float %v", errs.ErrEncodeFailure, v)
	}

	return strconv.AppendFloat(dst, v, 'g', -1, 64), nil
}

// appendJSONFloatTyped appends v like AppendJSONFloat but guarantees the
// output contains a decimal point or exponent, so a decoder can tell the
// value apart from an integer. Used for field values, whose numeric kind is
// not recorded anywhere else in the text formats.
func appendJSONFloatTyped(dst []byte, v float64) ([]byte, error) {
	start := len(dst)
	dst, err := AppendJSONFloat(dst, v)
	if err != nil {
		return nil, err
	}
	if !bytes.ContainsAny(dst[start:], ".eE") {
		dst = append(dst, '.', '0')
	}

	return dst, nil
}

// WalkJSONObject iterates the members of a JSON object in document order,
// invoking fn with each member name and its raw value. Iteration stops at the
// first error from fn.
//
// The standard Unmarshal path decodes objects into maps and loses member
// order; the containers treat insertion order as significant, so their
// decoders walk the token stream instead.
func WalkJSONObject(data []byte, fn func(name string, value gojson.RawMessage) error) error {
	dec := gojson.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrMalformedPayload, err)
	}
	if d, ok := tok.(gojson.Delim); !ok || d != '{' {
		return fmt.Errorf("%w: expected object, got %v", errs.ErrMalformedPayload, tok)
	}

	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", errs.ErrMalformedPayload, err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: non-string object key %v", errs.ErrMalformedPayload, tok)
		}

		var raw gojson.RawMessage
		if err = dec.Decode(&raw); err != nil {
			return fmt.Errorf("%w: %v", errs.ErrMalformedPayload, err)
		}

		if err = fn(name, raw); err != nil {
			return err
		}
	}

	if _, err = dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrMalformedPayload, err)
	}
	if _, err = dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: trailing data after object", errs.ErrMalformedPayload)
	}

	return nil
}

// UnmarshalJSON decodes data into v, normalizing decode failures to
// errs.ErrMalformedPayload.
func UnmarshalJSON(data []byte, v any) error {
	if err := gojson.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrMalformedPayload, err)
	}

	return nil
}
