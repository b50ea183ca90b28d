// Package collection provides the ordered, homogeneous container the arbor
// trees store, together with its analytics operations: element-wise Map,
// predicate Cut, histogram Hist and pairwise Plot.
//
// All transforms are pure: they allocate a new collection and leave the
// source untouched, so pipelines compose without aliasing hazards.
package collection

import (
	"fmt"
	"iter"
	"slices"

	"github.com/arloliu/arbor/errs"
	"github.com/arloliu/arbor/wire"
)

// Collection is an ordered sequence of values of one element type.
// Insertion order is significant and duplicates are allowed.
//
// An element type is storable when it is one of the built-in scalars
// (float64, uint64, string) or implements wire.Value.
type Collection[T any] struct {
	items []T
}

// Sequence is the type-erased view of a collection that the tree containers
// use to encode elements of heterogeneous branches.
type Sequence interface {
	// Len returns the number of elements.
	Len() int

	// AppendElemJSON appends element i in the verbose text form.
	AppendElemJSON(dst []byte, i int) ([]byte, error)

	// AppendElemJSONC appends element i in the compact text form.
	AppendElemJSONC(dst []byte, i int) ([]byte, error)

	// AppendElemMsg appends element i in the binary form.
	AppendElemMsg(dst []byte, i int) ([]byte, error)
}

var _ Sequence = (*Collection[float64])(nil)

// New returns an empty collection.
func New[T any]() *Collection[T] {
	return &Collection[T]{}
}

// From returns a collection holding a copy of items.
func From[T any](items []T) *Collection[T] {
	return &Collection[T]{items: slices.Clone(items)}
}

// Collect drains seq into a new collection.
func Collect[T any](seq iter.Seq[T]) *Collection[T] {
	c := New[T]()
	for v := range seq {
		c.Push(v)
	}

	return c
}

// Push appends v to the collection.
func (c *Collection[T]) Push(v T) {
	c.items = append(c.items, v)
}

// Len returns the number of elements.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// At returns the element at index i. Panics if i is out of range.
func (c *Collection[T]) At(i int) T {
	return c.items[i]
}

// Set replaces the element at index i. Panics if i is out of range.
func (c *Collection[T]) Set(i int, v T) {
	c.items[i] = v
}

// Values returns a copy of the elements in insertion order.
func (c *Collection[T]) Values() []T {
	return slices.Clone(c.items)
}

// All returns an iterator over the elements in insertion order.
func (c *Collection[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range c.items {
			if !yield(v) {
				return
			}
		}
	}
}

// Cut returns a new collection retaining, in order, the elements for which
// keep returns true.
func (c *Collection[T]) Cut(keep func(T) bool) *Collection[T] {
	out := New[T]()
	for _, v := range c.items {
		if keep(v) {
			out.Push(v)
		}
	}

	return out
}

// AppendElemJSON implements Sequence.
func (c *Collection[T]) AppendElemJSON(dst []byte, i int) ([]byte, error) {
	return wire.AppendElemJSON(dst, c.items[i])
}

// AppendElemJSONC implements Sequence.
func (c *Collection[T]) AppendElemJSONC(dst []byte, i int) ([]byte, error) {
	return wire.AppendElemJSONC(dst, c.items[i])
}

// AppendElemMsg implements Sequence.
func (c *Collection[T]) AppendElemMsg(dst []byte, i int) ([]byte, error) {
	return wire.AppendElemMsg(dst, c.items[i])
}

// Map returns a new collection produced by applying f to each element of c
// in order. The transform is eager, not a view.
func Map[T, U any](c *Collection[T], f func(T) U) *Collection[U] {
	out := &Collection[U]{items: make([]U, 0, len(c.items))}
	for _, v := range c.items {
		out.items = append(out.items, f(v))
	}

	return out
}

// Hist partitions the collection into bins equal-width buckets spanning
// [min, max] of the data and returns one Bin per bucket. Buckets are
// half-open [lo, hi) except the last, which is closed to capture max.
//
// An empty collection yields an empty result. When every value is equal the
// bucket width degenerates to zero and a single synthetic bin [v, v] holds
// all samples.
func Hist(c *Collection[float64], bins int) (*Collection[Bin], error) {
	if bins < 1 {
		return nil, fmt.Errorf("%w: got %d", errs.ErrInvalidBinCount, bins)
	}
	if c.Len() == 0 {
		return New[Bin](), nil
	}

	lo, hi := c.items[0], c.items[0]
	for _, v := range c.items[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	if lo == hi {
		return From([]Bin{{Lo: lo, Hi: hi, Count: uint64(c.Len())}}), nil
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Lo = lo + width*float64(i)
		out[i].Hi = lo + width*float64(i+1)
	}
	// Pin the final edge so max is never lost to rounding.
	out[bins-1].Hi = hi

	for _, v := range c.items {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Inc()
	}

	return &Collection[Bin]{items: out}, nil
}

// Plot zips two equal-length collections into a collection of Points, with
// xs supplying the first coordinate. It fails with errs.ErrLengthMismatch
// when the lengths differ.
func Plot(xs, ys *Collection[float64]) (*Collection[Point], error) {
	if xs.Len() != ys.Len() {
		return nil, fmt.Errorf("%w: %d vs %d", errs.ErrLengthMismatch, xs.Len(), ys.Len())
	}

	out := make([]Point, xs.Len())
	for i := range out {
		out[i] = Point{X: xs.items[i], Y: ys.items[i]}
	}

	return &Collection[Point]{items: out}, nil
}
