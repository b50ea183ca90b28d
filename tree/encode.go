package tree

import (
	"slices"

	"github.com/arloliu/arbor/collection"
	"github.com/arloliu/arbor/internal/pool"
	"github.com/arloliu/arbor/wire"
)

// EncodeJSON serializes the tree in the verbose object-keyed text form.
// Field and branch order is preserved in the document.
func (t *Tree) EncodeJSON() ([]byte, error) {
	return encodeWithBuffer(t.appendJSON)
}

// EncodeJSONC serializes the tree in the compact array-positional text form.
func (t *Tree) EncodeJSONC() ([]byte, error) {
	return encodeWithBuffer(t.appendJSONC)
}

// EncodeMsg serializes the tree in the compact binary form.
func (t *Tree) EncodeMsg() ([]byte, error) {
	return encodeWithBuffer(t.appendMsg)
}

// encodeWithBuffer runs an append-style encoder over a pooled buffer and
// clones the result out, so the grown buffer is retained for reuse.
func encodeWithBuffer(appendFn func(dst []byte) ([]byte, error)) ([]byte, error) {
	bb := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(bb)

	dst, err := appendFn(bb.B)
	if err != nil {
		return nil, err
	}
	bb.B = dst

	return slices.Clone(dst), nil
}

func (t *Tree) appendJSON(dst []byte) ([]byte, error) {
	dst = append(dst, `{"name":`...)
	dst, err := wire.AppendJSONString(dst, t.name)
	if err != nil {
		return nil, err
	}

	dst = append(dst, `,"fields":`...)
	dst, err = appendFieldsJSON(dst, &t.fieldSet)
	if err != nil {
		return nil, err
	}

	dst = append(dst, `,"branches":{`...)
	for i, b := range t.branches {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst, err = wire.AppendJSONString(dst, b.name)
		if err != nil {
			return nil, err
		}
		dst = append(dst, `:{"type":`...)
		dst, err = wire.AppendJSONString(dst, b.typeTag)
		if err != nil {
			return nil, err
		}
		dst = append(dst, `,"data":`...)
		dst, err = appendSeqJSON(dst, b.data)
		if err != nil {
			return nil, err
		}
		dst = append(dst, '}')
	}

	return append(dst, '}', '}'), nil
}

func (t *Tree) appendJSONC(dst []byte) ([]byte, error) {
	dst = append(dst, '[')
	dst, err := wire.AppendJSONString(dst, t.name)
	if err != nil {
		return nil, err
	}

	dst = append(dst, ',')
	dst, err = appendFieldsJSONC(dst, &t.fieldSet)
	if err != nil {
		return nil, err
	}

	dst = append(dst, ',', '[')
	for i, b := range t.branches {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = append(dst, '[')
		dst, err = wire.AppendJSONString(dst, b.name)
		if err != nil {
			return nil, err
		}
		dst = append(dst, ',')
		dst, err = wire.AppendJSONString(dst, b.typeTag)
		if err != nil {
			return nil, err
		}
		dst = append(dst, ',')
		dst, err = appendSeqJSONC(dst, b.data)
		if err != nil {
			return nil, err
		}
		dst = append(dst, ']')
	}

	return append(dst, ']', ']'), nil
}

func (t *Tree) appendMsg(dst []byte) ([]byte, error) {
	dst = appendMsgHeader(dst, msgKindTree)
	dst = wire.AppendMsgString(dst, t.name)

	dst, err := appendFieldsMsg(dst, &t.fieldSet)
	if err != nil {
		return nil, err
	}

	dst = wire.AppendMsgUint(dst, uint64(len(t.branches)))
	for _, b := range t.branches {
		dst = wire.AppendMsgString(dst, b.name)
		dst = wire.AppendMsgString(dst, b.typeTag)
		dst, err = appendSeqMsg(dst, b.data)
		if err != nil {
			return nil, err
		}
	}

	return dst, nil
}

// appendFieldsJSON appends the fields as an object in insertion order.
func appendFieldsJSON(dst []byte, fs *fieldSet) ([]byte, error) {
	var err error
	dst = append(dst, '{')
	for i, f := range fs.fields {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst, err = wire.AppendJSONString(dst, f.name)
		if err != nil {
			return nil, err
		}
		dst = append(dst, ':')
		dst, err = wire.AppendScalarJSON(dst, f.value)
		if err != nil {
			return nil, err
		}
	}

	return append(dst, '}'), nil
}

// appendFieldsJSONC appends the fields as an array of [name, value] pairs.
func appendFieldsJSONC(dst []byte, fs *fieldSet) ([]byte, error) {
	var err error
	dst = append(dst, '[')
	for i, f := range fs.fields {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = append(dst, '[')
		dst, err = wire.AppendJSONString(dst, f.name)
		if err != nil {
			return nil, err
		}
		dst = append(dst, ',')
		dst, err = wire.AppendScalarJSON(dst, f.value)
		if err != nil {
			return nil, err
		}
		dst = append(dst, ']')
	}

	return append(dst, ']'), nil
}

// appendFieldsMsg appends a uvarint field count followed by name and
// kind-tagged value per field.
func appendFieldsMsg(dst []byte, fs *fieldSet) ([]byte, error) {
	var err error
	dst = wire.AppendMsgUint(dst, uint64(len(fs.fields)))
	for _, f := range fs.fields {
		dst = wire.AppendMsgString(dst, f.name)
		dst, err = wire.AppendScalarMsg(dst, f.value)
		if err != nil {
			return nil, err
		}
	}

	return dst, nil
}

func appendSeqJSON(dst []byte, seq collection.Sequence) ([]byte, error) {
	var err error
	dst = append(dst, '[')
	for i := range seq.Len() {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst, err = seq.AppendElemJSON(dst, i)
		if err != nil {
			return nil, err
		}
	}

	return append(dst, ']'), nil
}

func appendSeqJSONC(dst []byte, seq collection.Sequence) ([]byte, error) {
	var err error
	dst = append(dst, '[')
	for i := range seq.Len() {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst, err = seq.AppendElemJSONC(dst, i)
		if err != nil {
			return nil, err
		}
	}

	return append(dst, ']'), nil
}

func appendSeqMsg(dst []byte, seq collection.Sequence) ([]byte, error) {
	var err error
	dst = wire.AppendMsgUint(dst, uint64(seq.Len()))
	for i := range seq.Len() {
		dst, err = seq.AppendElemMsg(dst, i)
		if err != nil {
			return nil, err
		}
	}

	return dst, nil
}
