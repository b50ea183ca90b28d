package tree

import (
	"fmt"

	gojson "github.com/goccy/go-json"

	"github.com/arloliu/arbor/collection"
	"github.com/arloliu/arbor/errs"
	"github.com/arloliu/arbor/format"
	"github.com/arloliu/arbor/wire"
)

// DecodeJSON reconstructs a Tree from its verbose text form.
//
// Every branch must carry one of the built-in type tags; an opaque tag fails
// with errs.ErrUnsupportedReadType. Decoding is all-or-nothing: on error no
// partially populated Tree is returned.
func DecodeJSON(data []byte) (*Tree, error) {
	t := New("")
	sawName := false

	err := wire.WalkJSONObject(data, func(key string, raw gojson.RawMessage) error {
		switch key {
		case "name":
			sawName = true
			return wire.UnmarshalJSON(raw, &t.name)
		case "fields":
			return decodeFieldsJSON(&t.fieldSet, raw)
		case "branches":
			return wire.WalkJSONObject(raw, func(name string, braw gojson.RawMessage) error {
				return decodeBranchJSON(t, name, braw)
			})
		default:
			return fmt.Errorf("%w: unexpected key %q", errs.ErrMalformedPayload, key)
		}
	})
	if err != nil {
		return nil, err
	}
	if !sawName {
		return nil, fmt.Errorf("%w: missing tree name", errs.ErrMalformedPayload)
	}

	return t, nil
}

// DecodeJSONC reconstructs a Tree from its compact text form.
func DecodeJSONC(data []byte) (*Tree, error) {
	var doc []gojson.RawMessage
	if err := wire.UnmarshalJSON(data, &doc); err != nil {
		return nil, err
	}
	if len(doc) != 3 {
		return nil, fmt.Errorf("%w: tree document wants 3 sections, got %d", errs.ErrMalformedPayload, len(doc))
	}

	t := New("")
	if err := wire.UnmarshalJSON(doc[0], &t.name); err != nil {
		return nil, err
	}
	if err := decodeFieldsJSONC(&t.fieldSet, doc[1]); err != nil {
		return nil, err
	}

	var entries []gojson.RawMessage
	if err := wire.UnmarshalJSON(doc[2], &entries); err != nil {
		return nil, err
	}
	for _, entry := range entries {
		var parts []gojson.RawMessage
		if err := wire.UnmarshalJSON(entry, &parts); err != nil {
			return nil, err
		}
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: branch entry wants 3 values, got %d", errs.ErrMalformedPayload, len(parts))
		}

		var name, tag string
		if err := wire.UnmarshalJSON(parts[0], &name); err != nil {
			return nil, err
		}
		if err := wire.UnmarshalJSON(parts[1], &tag); err != nil {
			return nil, err
		}

		var elems []gojson.RawMessage
		if err := wire.UnmarshalJSON(parts[2], &elems); err != nil {
			return nil, err
		}

		seq, err := decodeBuiltinSeq(tag, elems, wire.ParseElemJSONC[float64], wire.ParseElemJSONC[uint64],
			wire.ParseElemJSONC[string], wire.ParseElemJSONC[collection.Bin], wire.ParseElemJSONC[collection.Point])
		if err != nil {
			return nil, err
		}
		if err := t.AddBranch(name, seq, tag); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// DecodeMsg reconstructs a Tree from its binary form.
func DecodeMsg(data []byte) (*Tree, error) {
	rest, err := readMsgHeader(data, msgKindTree)
	if err != nil {
		return nil, err
	}

	t := New("")
	t.name, rest, err = wire.ReadMsgString(rest)
	if err != nil {
		return nil, err
	}

	rest, err = decodeFieldsMsg(&t.fieldSet, rest)
	if err != nil {
		return nil, err
	}

	count, rest, err := wire.ReadMsgUint(rest)
	if err != nil {
		return nil, err
	}
	for range count {
		var name, tag string
		name, rest, err = wire.ReadMsgString(rest)
		if err != nil {
			return nil, err
		}
		tag, rest, err = wire.ReadMsgString(rest)
		if err != nil {
			return nil, err
		}

		var seq collection.Sequence
		seq, rest, err = decodeBuiltinSeqMsg(tag, rest)
		if err != nil {
			return nil, err
		}
		if err = t.AddBranch(name, seq, tag); err != nil {
			return nil, err
		}
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", errs.ErrMalformedPayload, len(rest))
	}

	return t, nil
}

func decodeBranchJSON(t *Tree, name string, raw gojson.RawMessage) error {
	var aux struct {
		Type string             `json:"type"`
		Data []gojson.RawMessage `json:"data"`
	}
	if err := wire.UnmarshalJSON(raw, &aux); err != nil {
		return err
	}

	seq, err := decodeBuiltinSeq(aux.Type, aux.Data, wire.ParseElemJSON[float64], wire.ParseElemJSON[uint64],
		wire.ParseElemJSON[string], wire.ParseElemJSON[collection.Bin], wire.ParseElemJSON[collection.Point])
	if err != nil {
		return err
	}

	return t.AddBranch(name, seq, aux.Type)
}

// decodeBuiltinSeq dispatches element decoding over the closed built-in tag
// set, using the supplied per-type element parsers (verbose or compact).
func decodeBuiltinSeq(
	tag string,
	elems []gojson.RawMessage,
	parseF64 func([]byte) (float64, error),
	parseU64 func([]byte) (uint64, error),
	parseStr func([]byte) (string, error),
	parseBin func([]byte) (collection.Bin, error),
	parsePoint func([]byte) (collection.Point, error),
) (collection.Sequence, error) {
	switch tag {
	case format.TagF64:
		return decodeElems(elems, parseF64)
	case format.TagU64:
		return decodeElems(elems, parseU64)
	case format.TagStr:
		return decodeElems(elems, parseStr)
	case format.TagBin:
		return decodeElems(elems, parseBin)
	case format.TagPoint:
		return decodeElems(elems, parsePoint)
	default:
		return nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedReadType, tag)
	}
}

func decodeElems[T any](elems []gojson.RawMessage, parse func([]byte) (T, error)) (*collection.Collection[T], error) {
	c := collection.New[T]()
	for _, raw := range elems {
		v, err := parse(raw)
		if err != nil {
			return nil, err
		}
		c.Push(v)
	}

	return c, nil
}

// decodeBuiltinSeqMsg decodes a length-prefixed element run for a built-in
// tag from the front of b.
func decodeBuiltinSeqMsg(tag string, b []byte) (collection.Sequence, []byte, error) {
	switch tag {
	case format.TagF64:
		return decodeElemsMsg[float64](b)
	case format.TagU64:
		return decodeElemsMsg[uint64](b)
	case format.TagStr:
		return decodeElemsMsg[string](b)
	case format.TagBin:
		return decodeElemsMsg[collection.Bin](b)
	case format.TagPoint:
		return decodeElemsMsg[collection.Point](b)
	default:
		return nil, nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedReadType, tag)
	}
}

func decodeElemsMsg[T any](b []byte) (*collection.Collection[T], []byte, error) {
	count, rest, err := wire.ReadMsgUint(b)
	if err != nil {
		return nil, nil, err
	}

	c := collection.New[T]()
	for range count {
		var v T
		v, rest, err = wire.ParseElemMsg[T](rest)
		if err != nil {
			return nil, nil, err
		}
		c.Push(v)
	}

	return c, rest, nil
}

// decodeFieldsJSON restores fields from a JSON object, preserving document
// order.
func decodeFieldsJSON(fs *fieldSet, raw []byte) error {
	return wire.WalkJSONObject(raw, func(name string, value gojson.RawMessage) error {
		v, err := wire.ParseScalarJSON(value)
		if err != nil {
			return err
		}

		return fs.addField(name, v)
	})
}

// decodeFieldsJSONC restores fields from an array of [name, value] pairs.
func decodeFieldsJSONC(fs *fieldSet, raw []byte) error {
	var pairs []gojson.RawMessage
	if err := wire.UnmarshalJSON(raw, &pairs); err != nil {
		return err
	}
	for _, pair := range pairs {
		var parts []gojson.RawMessage
		if err := wire.UnmarshalJSON(pair, &parts); err != nil {
			return err
		}
		if len(parts) != 2 {
			return fmt.Errorf("%w: field entry wants 2 values, got %d", errs.ErrMalformedPayload, len(parts))
		}

		var name string
		if err := wire.UnmarshalJSON(parts[0], &name); err != nil {
			return err
		}
		v, err := wire.ParseScalarJSON(parts[1])
		if err != nil {
			return err
		}
		if err := fs.addField(name, v); err != nil {
			return err
		}
	}

	return nil
}

// decodeFieldsMsg restores fields from the binary form, returning the
// remaining bytes.
func decodeFieldsMsg(fs *fieldSet, b []byte) ([]byte, error) {
	count, rest, err := wire.ReadMsgUint(b)
	if err != nil {
		return nil, err
	}
	for range count {
		var name string
		name, rest, err = wire.ReadMsgString(rest)
		if err != nil {
			return nil, err
		}

		var v any
		v, rest, err = wire.ReadScalarMsg(rest)
		if err != nil {
			return nil, err
		}
		if err = fs.addField(name, v); err != nil {
			return nil, err
		}
	}

	return rest, nil
}
