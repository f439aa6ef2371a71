// Package quadtree is a two-dimensional front end of orthtree working with
// rectangles given as a minimum corner plus extents.
//
// Quadrants are numbered by the orthtree child index (bit 0 - east, bit 1 -
// north):
//
//	+------+------+
//	|  NW  |  NE  |
//	|  10  |  11  |
//	+------+------+
//	|  SW  |  SE  |
//	|  00  |  01  |
//	+------+------+
package quadtree

import (
	"github.com/aglyzov/go-orthtree/orthtree"
)

// Leaf is the contract of an indexed item.
type Leaf interface {
	comparable

	// AABB returns the current bounding rectangle of the item.
	AABB() Rect
}

// Renderer receives the occupied nodes of a tree. The items slice is only
// valid during the call.
type Renderer[T any] interface {
	Render(bounds Rect, items []T)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc[T any] func(bounds Rect, items []T)

func (f RendererFunc[T]) Render(bounds Rect, items []T) {
	f(bounds, items)
}

// leaf wraps an item into the orthtree contract.
type leaf[T Leaf] struct {
	item T
}

func (l leaf[T]) AABB(min, max []float32) {
	l.item.AABB().corners(min, max)
}

func (l leaf[T]) IsStatic() bool {
	return false
}

// QuadTree is a dynamic quadtree over items of type T.
type QuadTree[T Leaf] struct {
	tree *orthtree.Tree[leaf[T]]

	// scratch buffers
	min, max [2]float32
	found    []leaf[T]
	items    []T
}

// New returns an empty QuadTree over the given region. A node splits once
// it directly owns more than capacity items.
func New[T Leaf](capacity int, bounds Rect, opts ...orthtree.Option) *QuadTree[T] {
	q := &QuadTree[T]{}

	bounds.corners(q.min[:], q.max[:])

	opts = append(opts[:len(opts):len(opts)], orthtree.WithCapacity(capacity))
	q.tree = orthtree.New[leaf[T]](q.min[:], q.max[:], opts...)

	return q
}

// Bounds returns the region covered by the root.
func (q *QuadTree[T]) Bounds() Rect {
	b := q.tree.Bounds()
	return rectOf(b.Min, b.Max)
}

// Len returns the number of indexed items.
func (q *QuadTree[T]) Len() int {
	return q.tree.Len()
}

// Contains reports whether the item is indexed.
func (q *QuadTree[T]) Contains(item T) bool {
	return q.tree.Contains(leaf[T]{item})
}

// Insert adds an item or updates the position of an indexed one.
func (q *QuadTree[T]) Insert(item T) {
	q.tree.Insert(leaf[T]{item})
}

// Remove drops an item. Unknown items are ignored.
func (q *QuadTree[T]) Remove(item T) {
	q.tree.Remove(leaf[T]{item})
}

// Clear forgets every item.
func (q *QuadTree[T]) Clear() {
	q.tree.Clear()
}

// Resize rebuilds the tree over a new region re-reading every item's bounds.
func (q *QuadTree[T]) Resize(bounds Rect) {
	bounds.corners(q.min[:], q.max[:])
	q.tree.Resize(q.min[:], q.max[:])
}

// Refresh re-inserts every item picking up its current bounds.
func (q *QuadTree[T]) Refresh() {
	q.tree.Refresh()
}

// Search appends every item overlapping the area to dst and returns the
// extended slice. Items touching the area only at an edge are skipped.
func (q *QuadTree[T]) Search(dst []T, area Rect) []T {
	area.corners(q.min[:], q.max[:])

	q.found = q.tree.Search(q.found[:0], q.min[:], q.max[:])
	for _, l := range q.found {
		dst = append(dst, l.item)
	}
	clear(q.found)

	return dst
}

// Walk calls a handler for every node with a non-empty subtree in
// depth-first pre-order passing the node region and the items it owns
// directly. The handler can continue the walk by returning true or abort it
// with false. Walk reports whether the walk was complete.
func (q *QuadTree[T]) Walk(handler func(bounds Rect, items []T) bool) bool {
	return q.tree.Traverse(func(b orthtree.Bounds, leafs []leaf[T]) bool {
		q.items = q.items[:0]
		for _, l := range leafs {
			q.items = append(q.items, l.item)
		}
		return handler(rectOf(b.Min, b.Max), q.items)
	})
}

// Render passes every occupied node to the renderer.
func (q *QuadTree[T]) Render(r Renderer[T]) {
	q.Walk(func(bounds Rect, items []T) bool {
		r.Render(bounds, items)
		return true
	})
}

// Stats returns the statistics of the underlying tree.
func (q *QuadTree[T]) Stats() orthtree.Stats {
	return q.tree.Stats()
}

// Validate checks the structural invariants of the tree.
func (q *QuadTree[T]) Validate() error {
	return q.tree.Validate()
}
