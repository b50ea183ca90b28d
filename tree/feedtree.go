package tree

import (
	"fmt"
	"iter"

	"github.com/arloliu/arbor/collection"
	"github.com/arloliu/arbor/errs"
	"github.com/arloliu/arbor/format"
	"github.com/arloliu/arbor/wire"
)

// Feed is a named, type-tagged, append-only collection inside a FeedTree,
// used to record successive snapshots over simulation time.
type Feed[T any] struct {
	name    string
	typeTag string
	data    *collection.Collection[T]
}

// Name returns the feed name.
func (f *Feed[T]) Name() string {
	return f.name
}

// TypeTag returns the element type name recorded for the feed.
func (f *Feed[T]) TypeTag() string {
	return f.typeTag
}

// Len returns the number of recorded values.
func (f *Feed[T]) Len() int {
	return f.data.Len()
}

// Record appends one value to the feed.
func (f *Feed[T]) Record(v T) {
	f.data.Push(v)
}

// Data returns the feed's underlying collection.
func (f *Feed[T]) Data() *collection.Collection[T] {
	return f.data
}

// FeedTree is a named collection of Fields and Feeds, generic over one
// element type. Unlike Tree it round-trips through every format for any
// element type satisfying the storage contract, because its payloads always
// carry enough structural tagging to reconstruct the feeds.
type FeedTree[T any] struct {
	name    string
	typeTag string
	fieldSet
	feeds []*Feed[T]
	dix   index
}

// NewFeedTree returns an empty FeedTree with the given name and element type
// tag. The tag should name T, e.g. format.TagF64 for float64 feeds or a
// caller-chosen name for user-defined types.
func NewFeedTree[T any](name, typeTag string) *FeedTree[T] {
	return &FeedTree[T]{
		name:     name,
		typeTag:  typeTag,
		fieldSet: newFieldSet(),
		dix:      index{},
	}
}

// Name returns the tree name.
func (ft *FeedTree[T]) Name() string {
	return ft.name
}

// TypeTag returns the element type name shared by all feeds.
func (ft *FeedTree[T]) TypeTag() string {
	return ft.typeTag
}

// AddField attaches a scalar metadata entry. It fails with
// errs.ErrDuplicateName when the name is taken.
func (ft *FeedTree[T]) AddField(name string, value any) error {
	return ft.addField(name, value)
}

// AddFeed stores the collection's values under name. Calling AddFeed again
// with the same name appends the new batch onto the existing feed; feeds
// accumulate, they are never replaced.
func (ft *FeedTree[T]) AddFeed(name string, data *collection.Collection[T]) error {
	if pos, ok := ft.dix.find(name); ok {
		feed := ft.feeds[pos]
		for v := range data.All() {
			feed.data.Push(v)
		}

		return nil
	}

	if err := ft.dix.add(name, len(ft.feeds)); err != nil {
		return err
	}
	ft.feeds = append(ft.feeds, &Feed[T]{
		name:    name,
		typeTag: ft.typeTag,
		data:    collection.From(data.Values()),
	})

	return nil
}

// Record appends one value to the named feed. It fails with
// errs.ErrUnknownName when no feed has that name.
func (ft *FeedTree[T]) Record(name string, v T) error {
	pos, ok := ft.dix.find(name)
	if !ok {
		return fmt.Errorf("%w: feed %q", errs.ErrUnknownName, name)
	}
	ft.feeds[pos].Record(v)

	return nil
}

// Feed returns the named feed.
func (ft *FeedTree[T]) Feed(name string) (*Feed[T], bool) {
	pos, ok := ft.dix.find(name)
	if !ok {
		return nil, false
	}

	return ft.feeds[pos], true
}

// FeedCount returns the number of feeds.
func (ft *FeedTree[T]) FeedCount() int {
	return len(ft.feeds)
}

// Feeds returns an iterator over the feeds in insertion order.
func (ft *FeedTree[T]) Feeds() iter.Seq[*Feed[T]] {
	return func(yield func(*Feed[T]) bool) {
		for _, f := range ft.feeds {
			if !yield(f) {
				return
			}
		}
	}
}

// Encode serializes the tree in the given format.
func (ft *FeedTree[T]) Encode(f format.Format) ([]byte, error) {
	switch f {
	case format.JSON:
		return ft.EncodeJSON()
	case format.JSONC:
		return ft.EncodeJSONC()
	case format.Msg:
		return ft.EncodeMsg()
	default:
		return nil, fmt.Errorf("%w: unknown format %d", errs.ErrEncodeFailure, f)
	}
}

// EncodeJSON serializes the tree in the verbose object-keyed text form.
func (ft *FeedTree[T]) EncodeJSON() ([]byte, error) {
	return encodeWithBuffer(ft.appendJSON)
}

// EncodeJSONC serializes the tree in the compact array-positional text form.
func (ft *FeedTree[T]) EncodeJSONC() ([]byte, error) {
	return encodeWithBuffer(ft.appendJSONC)
}

// EncodeMsg serializes the tree in the compact binary form.
func (ft *FeedTree[T]) EncodeMsg() ([]byte, error) {
	return encodeWithBuffer(ft.appendMsg)
}

func (ft *FeedTree[T]) appendJSON(dst []byte) ([]byte, error) {
	dst = append(dst, `{"name":`...)
	dst, err := wire.AppendJSONString(dst, ft.name)
	if err != nil {
		return nil, err
	}

	dst = append(dst, `,"type":`...)
	dst, err = wire.AppendJSONString(dst, ft.typeTag)
	if err != nil {
		return nil, err
	}

	dst = append(dst, `,"fields":`...)
	dst, err = appendFieldsJSON(dst, &ft.fieldSet)
	if err != nil {
		return nil, err
	}

	dst = append(dst, `,"feeds":{`...)
	for i, f := range ft.feeds {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst, err = wire.AppendJSONString(dst, f.name)
		if err != nil {
			return nil, err
		}
		dst = append(dst, `:{"type":`...)
		dst, err = wire.AppendJSONString(dst, f.typeTag)
		if err != nil {
			return nil, err
		}
		dst = append(dst, `,"data":`...)
		dst, err = appendSeqJSON(dst, f.data)
		if err != nil {
			return nil, err
		}
		dst = append(dst, '}')
	}

	return append(dst, '}', '}'), nil
}

func (ft *FeedTree[T]) appendJSONC(dst []byte) ([]byte, error) {
	dst = append(dst, '[')
	dst, err := wire.AppendJSONString(dst, ft.name)
	if err != nil {
		return nil, err
	}

	dst = append(dst, ',')
	dst, err = wire.AppendJSONString(dst, ft.typeTag)
	if err != nil {
		return nil, err
	}

	dst = append(dst, ',')
	dst, err = appendFieldsJSONC(dst, &ft.fieldSet)
	if err != nil {
		return nil, err
	}

	dst = append(dst, ',', '[')
	for i, f := range ft.feeds {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = append(dst, '[')
		dst, err = wire.AppendJSONString(dst, f.name)
		if err != nil {
			return nil, err
		}
		dst = append(dst, ',')
		dst, err = wire.AppendJSONString(dst, f.typeTag)
		if err != nil {
			return nil, err
		}
		dst = append(dst, ',')
		dst, err = appendSeqJSONC(dst, f.data)
		if err != nil {
			return nil, err
		}
		dst = append(dst, ']')
	}

	return append(dst, ']', ']'), nil
}

func (ft *FeedTree[T]) appendMsg(dst []byte) ([]byte, error) {
	dst = appendMsgHeader(dst, msgKindFeedTree)
	dst = wire.AppendMsgString(dst, ft.name)
	dst = wire.AppendMsgString(dst, ft.typeTag)

	dst, err := appendFieldsMsg(dst, &ft.fieldSet)
	if err != nil {
		return nil, err
	}

	dst = wire.AppendMsgUint(dst, uint64(len(ft.feeds)))
	for _, f := range ft.feeds {
		dst = wire.AppendMsgString(dst, f.name)
		dst = wire.AppendMsgString(dst, f.typeTag)
		dst, err = appendSeqMsg(dst, f.data)
		if err != nil {
			return nil, err
		}
	}

	return dst, nil
}
