// Package tree provides the named output containers simulation results are
// aggregated into before serialization: Tree, an ordered set of metadata
// fields and type-tagged branches, and FeedTree, its fully round-trippable
// single-element-type counterpart.
//
// A Tree accepts branches of any storable element type but can only be
// decoded when every branch carries one of the built-in type tags
// (format.TagF64, TagU64, TagStr, TagBin, TagPoint); an opaque-typed branch
// is write-only. A FeedTree is generic over its element type and
// reconstructs from any of the three formats, including user-defined types.
//
// Both containers are single-owner, mutate only during the collection phase
// and become terminal artifacts once serialized.
package tree

import (
	"fmt"
	"iter"

	"github.com/arloliu/arbor/collection"
	"github.com/arloliu/arbor/errs"
	"github.com/arloliu/arbor/format"
)

// Branch is a named, type-tagged collection stored inside a Tree.
type Branch struct {
	name    string
	typeTag string
	data    collection.Sequence
}

// Name returns the branch name.
func (b *Branch) Name() string {
	return b.name
}

// TypeTag returns the human-readable element type name recorded for the
// branch, e.g. "f64" or "point".
func (b *Branch) TypeTag() string {
	return b.typeTag
}

// Len returns the number of elements in the branch.
func (b *Branch) Len() int {
	return b.data.Len()
}

// Extract returns the branch's underlying collection.
//
// Trees are designed as write-once output sinks, not queryable stores;
// extraction exists as an escape hatch for callers that need to re-derive a
// collection after it was handed to a Tree. It fails with
// errs.ErrTypeMismatch when T is not the branch's element type.
func Extract[T any](b *Branch) (*collection.Collection[T], error) {
	col, ok := b.data.(*collection.Collection[T])
	if !ok {
		return nil, fmt.Errorf("%w: branch %q holds %q", errs.ErrTypeMismatch, b.name, b.typeTag)
	}

	return col, nil
}

// Tree is a named, ordered set of Fields and type-tagged Branches collected
// for serialization.
type Tree struct {
	name string
	fieldSet
	branches []*Branch
	bix      index
}

// New returns an empty Tree with the given name.
func New(name string) *Tree {
	return &Tree{
		name:     name,
		fieldSet: newFieldSet(),
		bix:      index{},
	}
}

// Name returns the tree name.
func (t *Tree) Name() string {
	return t.name
}

// AddField attaches a scalar metadata entry. It fails with
// errs.ErrDuplicateName when the name is taken and leaves the tree unchanged.
func (t *Tree) AddField(name string, value any) error {
	return t.addField(name, value)
}

// AddBranch stores data under name with the given element type tag. Any tag
// is accepted on write; only branches tagged with one of the built-in tags
// can be reconstructed by the decoders. It fails with errs.ErrDuplicateName
// when the name is taken and leaves the tree unchanged.
func (t *Tree) AddBranch(name string, data collection.Sequence, typeTag string) error {
	if err := t.bix.add(name, len(t.branches)); err != nil {
		return err
	}
	t.branches = append(t.branches, &Branch{name: name, typeTag: typeTag, data: data})

	return nil
}

// Branch returns the named branch.
func (t *Tree) Branch(name string) (*Branch, bool) {
	pos, ok := t.bix.find(name)
	if !ok {
		return nil, false
	}

	return t.branches[pos], true
}

// BranchCount returns the number of branches.
func (t *Tree) BranchCount() int {
	return len(t.branches)
}

// Branches returns an iterator over the branches in insertion order.
func (t *Tree) Branches() iter.Seq[*Branch] {
	return func(yield func(*Branch) bool) {
		for _, b := range t.branches {
			if !yield(b) {
				return
			}
		}
	}
}

// Encode serializes the tree in the given format.
func (t *Tree) Encode(f format.Format) ([]byte, error) {
	switch f {
	case format.JSON:
		return t.EncodeJSON()
	case format.JSONC:
		return t.EncodeJSONC()
	case format.Msg:
		return t.EncodeMsg()
	default:
		return nil, fmt.Errorf("%w: unknown format %d", errs.ErrEncodeFailure, f)
	}
}

// Decode deserializes a tree from the given format.
func Decode(data []byte, f format.Format) (*Tree, error) {
	switch f {
	case format.JSON:
		return DecodeJSON(data)
	case format.JSONC:
		return DecodeJSONC(data)
	case format.Msg:
		return DecodeMsg(data)
	default:
		return nil, fmt.Errorf("%w: unknown format %d", errs.ErrMalformedPayload, f)
	}
}
