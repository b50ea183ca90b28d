package tree

import (
	"fmt"
	"iter"

	"github.com/arloliu/arbor/errs"
	"github.com/arloliu/arbor/internal/hash"
	"github.com/arloliu/arbor/wire"
)

// Field is a named scalar metadata entry attached to a Tree or FeedTree.
// Fields are immutable once added.
type Field struct {
	name  string
	value any
}

// Name returns the field name.
func (f Field) Name() string {
	return f.name
}

// Value returns the field value: string, float64, int64 or bool.
func (f Field) Value() any {
	return f.value
}

// index maps 64-bit name IDs to positions in an ordered entry slice.
// Lookups verify the stored name, so a hash collision between two different
// names is detected at insert time instead of silently aliasing entries.
type index map[uint64]indexSlot

type indexSlot struct {
	name string
	pos  int
}

// add records name at pos. It fails with errs.ErrDuplicateName when the name
// is already present and errs.ErrHashCollision when a different name occupies
// the same ID.
func (ix index) add(name string, pos int) error {
	id := hash.ID(name)
	if prev, ok := ix[id]; ok {
		if prev.name == name {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateName, name)
		}

		return fmt.Errorf("%w: %q vs %q", errs.ErrHashCollision, name, prev.name)
	}
	ix[id] = indexSlot{name: name, pos: pos}

	return nil
}

// find returns the position recorded for name.
func (ix index) find(name string) (int, bool) {
	slot, ok := ix[hash.ID(name)]
	if !ok || slot.name != name {
		return 0, false
	}

	return slot.pos, true
}

// fieldSet is the ordered, name-unique field storage shared by Tree and
// FeedTree.
type fieldSet struct {
	fields []Field
	fix    index
}

func newFieldSet() fieldSet {
	return fieldSet{fix: index{}}
}

func (fs *fieldSet) addField(name string, value any) error {
	if !wire.ValidScalar(value) {
		return fmt.Errorf("%w: field %q has unsupported value type %T", errs.ErrEncodeFailure, name, value)
	}
	if err := fs.fix.add(name, len(fs.fields)); err != nil {
		return err
	}
	fs.fields = append(fs.fields, Field{name: name, value: value})

	return nil
}

// Field returns the value of the named field.
func (fs *fieldSet) Field(name string) (any, bool) {
	pos, ok := fs.fix.find(name)
	if !ok {
		return nil, false
	}

	return fs.fields[pos].value, true
}

// FieldCount returns the number of fields.
func (fs *fieldSet) FieldCount() int {
	return len(fs.fields)
}

// Fields returns an iterator over the fields in insertion order.
func (fs *fieldSet) Fields() iter.Seq[Field] {
	return func(yield func(Field) bool) {
		for _, f := range fs.fields {
			if !yield(f) {
				return
			}
		}
	}
}
