package orthtree

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/aglyzov/go-orthtree/arena"
)

// MaxDims is the largest supported number of dimensions.
const MaxDims = 16

// Leaf is the contract of an indexed item. Items are told apart by their
// identity (==), so pointer types are the usual choice.
type Leaf interface {
	comparable

	// AABB writes the current minimum and maximum corners into the buffers.
	AABB(min, max []float32)

	// IsStatic tells Refresh to skip the item.
	IsStatic() bool
}

// record is the cached state of one indexed item.
type record[T Leaf] struct {
	bounds Bounds
	owner  arena.Handle
	slot   int // position in the owner's leafs
	item   T
}

// Tree is a dynamic orthtree over items of type T.
type Tree[T Leaf] struct {
	dims      int
	regions   int // 2^dims
	capacity  int
	threshold int

	region  Bounds
	root    arena.Handle
	nodes   *arena.Arena[node]
	records *arena.Arena[record[T]]
	index   map[T]arena.Handle

	// scratch buffers
	splitMin, splitMax []float32
	items              []T
	nodeBounds         Bounds
	leafBounds         Bounds

	log *zap.Logger
}

// New returns an empty Tree covering the box between the given corners.
// The number of dimensions is the length of the corners.
func New[T Leaf](min, max []float32, opts ...Option) *Tree[T] {
	dims := len(min)

	switch {
	case dims != len(max):
		panic(fmt.Sprintf("orthtree: corner length mismatch %d != %d", len(min), len(max)))
	case dims < 1 || dims > MaxDims:
		panic(fmt.Sprintf("orthtree: unsupported number of dimensions %d", dims))
	}

	cfg := newConfig(opts)
	if cfg.capacity < 1 {
		panic(fmt.Sprintf("orthtree: invalid node capacity %d", cfg.capacity))
	}

	t := &Tree[T]{
		dims:      dims,
		regions:   1 << dims,
		capacity:  cfg.capacity,
		threshold: cfg.threshold,
		region:    NewBounds(min, max),
		nodes:     arena.New[node](1 + cfg.preAlloc/cfg.capacity),
		records:   arena.New[record[T]](cfg.preAlloc),
		index:     make(map[T]arena.Handle, cfg.preAlloc),
		splitMin:  make([]float32, dims),
		splitMax:  make([]float32, dims),
		log:       cfg.logger,
	}

	t.root = t.newNode(arena.Nil, 0, t.region.Min, t.region.Max)

	return t
}

// Dims returns the number of dimensions.
func (t *Tree[T]) Dims() int {
	return t.dims
}

// Bounds returns a copy of the region covered by the root.
func (t *Tree[T]) Bounds() Bounds {
	return t.region.Clone()
}

// Len returns the number of indexed items.
func (t *Tree[T]) Len() int {
	invariant(t.nodes.Get(t.root).size == len(t.index), "root size differs from the number of items")

	return len(t.index)
}

// Contains reports whether the item is indexed.
func (t *Tree[T]) Contains(item T) bool {
	_, ok := t.index[item]
	return ok
}

// Insert adds an item or, if it is already indexed, updates its position.
func (t *Tree[T]) Insert(item T) {
	h, ok := t.index[item]
	if !ok {
		h = t.records.Obtain()
		r := t.records.Get(h)
		r.item = item
		r.owner = arena.Nil
		r.slot = -1
		t.index[item] = h
	}

	t.fetch(h)
	t.insert(h)
}

// Remove drops an item from the tree. Unknown items are ignored.
func (t *Tree[T]) Remove(item T) {
	h, ok := t.index[item]
	if !ok {
		return
	}
	delete(t.index, item)

	r := t.records.Get(h)
	if owner := r.owner; owner != arena.Nil {
		t.detach(t.nodes.Get(owner), r)
		t.rollup(owner, -1)
	}

	var zero T

	r.item = zero

	invariant(t.records.Release(h), "record released twice")
}

// Clear forgets every item and node. The root keeps its region.
func (t *Tree[T]) Clear() {
	var zero T

	t.records.Each(func(_ arena.Handle, r *record[T]) bool {
		r.item = zero
		r.owner = arena.Nil
		return true
	})
	t.records.Reset()
	t.nodes.Reset()

	clear(t.index)

	t.root = t.newNode(arena.Nil, 0, t.region.Min, t.region.Max)

	if ce := t.log.Check(zap.DebugLevel, "orthtree cleared"); ce != nil {
		ce.Write(zap.Int("node_slots", t.nodes.Cap()), zap.Int("record_slots", t.records.Cap()))
	}
}

// Resize discards the tree shape, builds a new root over the given region
// and re-inserts every indexed item with freshly fetched bounds.
func (t *Tree[T]) Resize(min, max []float32) {
	t.checkCorners(min, max)

	t.region.Set(min, max)
	t.nodes.Reset()
	t.root = t.newNode(arena.Nil, 0, t.region.Min, t.region.Max)

	t.records.Each(func(h arena.Handle, r *record[T]) bool {
		r.owner = arena.Nil
		r.slot = -1
		t.fetch(h)
		t.descend(t.root, h)
		return true
	})

	if ce := t.log.Check(zap.DebugLevel, "orthtree resized"); ce != nil {
		ce.Write(zap.Stringer("region", &t.region), zap.Int("items", len(t.index)), zap.Int("nodes", t.nodes.Len()))
	}
}

// Refresh re-inserts every non-static item, picking up its current bounds.
func (t *Tree[T]) Refresh() {
	t.records.Each(func(h arena.Handle, r *record[T]) bool {
		if !r.item.IsStatic() {
			t.fetch(h)
			t.insert(h)
		}
		return true
	})
}

// fetch overwrites the cached bounds of a record from its item.
func (t *Tree[T]) fetch(h arena.Handle) {
	r := t.records.Get(h)

	r.bounds.resize(t.dims)
	r.item.AABB(r.bounds.Min, r.bounds.Max)
	r.bounds.update()
}

// insert places a record with fresh bounds into the tree.
func (t *Tree[T]) insert(h arena.Handle) {
	r := t.records.Get(h)

	if owner := r.owner; owner != arena.Nil {
		n := t.nodes.Get(owner)

		if n.depth > t.threshold && n.bounds.Contains(&r.bounds) {
			// still inside the owner - at most move it down one child
			idx := t.indexOf(n, &r.bounds)
			if idx == self || len(n.children) == 0 {
				return
			}
			t.detach(n, r)
			t.descend(n.children[idx], h)
			return
		}

		t.detach(n, r)
		t.rollup(owner, -1)
	}

	t.descend(t.root, h)
}

// descend walks down from a node counting the record in on the way and
// stores it at the first node none of whose children fits it.
func (t *Tree[T]) descend(h, rh arena.Handle) {
	r := t.records.Get(rh)

	for {
		n := t.nodes.Get(h)
		if len(n.children) == 0 {
			break
		}
		idx := t.indexOf(n, &r.bounds)
		if idx == self {
			break
		}
		n.size++
		h = n.children[idx]
	}

	n := t.nodes.Get(h)
	n.size++
	r.owner = h
	r.slot = len(n.leafs)
	n.leafs = append(n.leafs, rh)

	if len(n.children) == 0 && len(n.leafs) > t.capacity {
		t.split(h)
	}
}

// detach removes a record from the node's own list leaving sizes intact.
func (t *Tree[T]) detach(n *node, r *record[T]) {
	var (
		last  = len(n.leafs) - 1
		moved = n.leafs[last]
	)

	invariant(r.slot >= 0 && r.slot <= last, "record slot out of range")

	n.leafs[r.slot] = moved
	t.records.Get(moved).slot = r.slot
	n.leafs = n.leafs[:last]

	r.owner = arena.Nil
	r.slot = -1
}

// rollup adds delta to the size of a node and all of its ancestors.
func (t *Tree[T]) rollup(h arena.Handle, delta int) {
	for h != arena.Nil {
		n := t.nodes.Get(h)
		n.size += delta
		invariant(n.size >= 0, "negative node size")
		h = n.parent
	}
}

func (t *Tree[T]) checkCorners(min, max []float32) {
	if len(min) != t.dims || len(max) != t.dims {
		panic(fmt.Sprintf("orthtree: expected %d-dimensional corners, got %d and %d", t.dims, len(min), len(max)))
	}
}

func invariant(ok bool, msg string) {
	if debug && !ok {
		panic("orthtree: " + msg)
	}
}
