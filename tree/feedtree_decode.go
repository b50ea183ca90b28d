package tree

import (
	"fmt"

	gojson "github.com/goccy/go-json"

	"github.com/arloliu/arbor/collection"
	"github.com/arloliu/arbor/errs"
	"github.com/arloliu/arbor/format"
	"github.com/arloliu/arbor/wire"
)

// DecodeFeedTree reconstructs a FeedTree from the given format.
func DecodeFeedTree[T any](data []byte, f format.Format) (*FeedTree[T], error) {
	switch f {
	case format.JSON:
		return DecodeFeedTreeJSON[T](data)
	case format.JSONC:
		return DecodeFeedTreeJSONC[T](data)
	case format.Msg:
		return DecodeFeedTreeMsg[T](data)
	default:
		return nil, fmt.Errorf("%w: unknown format %d", errs.ErrMalformedPayload, f)
	}
}

// DecodeFeedTreeJSON reconstructs a FeedTree from its verbose text form.
// T must match the element type the payload was written with; built-in
// scalars decode directly and any other T must implement wire.Unmarshaler.
func DecodeFeedTreeJSON[T any](data []byte) (*FeedTree[T], error) {
	ft := NewFeedTree[T]("", "")
	sawName := false

	err := wire.WalkJSONObject(data, func(key string, raw gojson.RawMessage) error {
		switch key {
		case "name":
			sawName = true
			return wire.UnmarshalJSON(raw, &ft.name)
		case "type":
			return wire.UnmarshalJSON(raw, &ft.typeTag)
		case "fields":
			return decodeFieldsJSON(&ft.fieldSet, raw)
		case "feeds":
			return wire.WalkJSONObject(raw, func(name string, fraw gojson.RawMessage) error {
				var aux struct {
					Type string              `json:"type"`
					Data []gojson.RawMessage `json:"data"`
				}
				if err := wire.UnmarshalJSON(fraw, &aux); err != nil {
					return err
				}

				col, err := decodeElems(aux.Data, wire.ParseElemJSON[T])
				if err != nil {
					return err
				}

				return ft.addDecodedFeed(name, aux.Type, col)
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

	return ft, nil
}

// DecodeFeedTreeJSONC reconstructs a FeedTree from its compact text form.
func DecodeFeedTreeJSONC[T any](data []byte) (*FeedTree[T], error) {
	var doc []gojson.RawMessage
	if err := wire.UnmarshalJSON(data, &doc); err != nil {
		return nil, err
	}
	if len(doc) != 4 {
		return nil, fmt.Errorf("%w: feedtree document wants 4 sections, got %d", errs.ErrMalformedPayload, len(doc))
	}

	ft := NewFeedTree[T]("", "")
	if err := wire.UnmarshalJSON(doc[0], &ft.name); err != nil {
		return nil, err
	}
	if err := wire.UnmarshalJSON(doc[1], &ft.typeTag); err != nil {
		return nil, err
	}
	if err := decodeFieldsJSONC(&ft.fieldSet, doc[2]); err != nil {
		return nil, err
	}

	var entries []gojson.RawMessage
	if err := wire.UnmarshalJSON(doc[3], &entries); err != nil {
		return nil, err
	}
	for _, entry := range entries {
		var parts []gojson.RawMessage
		if err := wire.UnmarshalJSON(entry, &parts); err != nil {
			return nil, err
		}
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: feed entry wants 3 values, got %d", errs.ErrMalformedPayload, len(parts))
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
		col, err := decodeElems(elems, wire.ParseElemJSONC[T])
		if err != nil {
			return nil, err
		}
		if err := ft.addDecodedFeed(name, tag, col); err != nil {
			return nil, err
		}
	}

	return ft, nil
}

// DecodeFeedTreeMsg reconstructs a FeedTree from its binary form.
func DecodeFeedTreeMsg[T any](data []byte) (*FeedTree[T], error) {
	rest, err := readMsgHeader(data, msgKindFeedTree)
	if err != nil {
		return nil, err
	}

	ft := NewFeedTree[T]("", "")
	ft.name, rest, err = wire.ReadMsgString(rest)
	if err != nil {
		return nil, err
	}
	ft.typeTag, rest, err = wire.ReadMsgString(rest)
	if err != nil {
		return nil, err
	}

	rest, err = decodeFieldsMsg(&ft.fieldSet, rest)
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

		var col *collection.Collection[T]
		col, rest, err = decodeElemsMsg[T](rest)
		if err != nil {
			return nil, err
		}
		if err = ft.addDecodedFeed(name, tag, col); err != nil {
			return nil, err
		}
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", errs.ErrMalformedPayload, len(rest))
	}

	return ft, nil
}

// addDecodedFeed restores one feed while verifying its recorded tag against
// the tree-level element type.
func (ft *FeedTree[T]) addDecodedFeed(name, tag string, col *collection.Collection[T]) error {
	if tag != ft.typeTag {
		return fmt.Errorf("%w: feed %q tagged %q in a %q tree", errs.ErrMalformedPayload, name, tag, ft.typeTag)
	}
	if err := ft.dix.add(name, len(ft.feeds)); err != nil {
		return err
	}
	ft.feeds = append(ft.feeds, &Feed[T]{name: name, typeTag: tag, data: col})

	return nil
}
