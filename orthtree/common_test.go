package orthtree

import (
	"github.com/brianvoe/gofakeit/v6"

	"github.com/aglyzov/go-orthtree/arena"
)

// box is a test item with mutable corners.
type box struct {
	name   string
	min    []float32
	max    []float32
	static bool
}

func (b *box) AABB(min, max []float32) {
	copy(min, b.min)
	copy(max, b.max)
}

func (b *box) IsStatic() bool {
	return b.static
}

func (b *box) String() string {
	return b.name
}

func (b *box) moveTo(min ...float32) {
	for i := range b.min {
		size := b.max[i] - b.min[i]
		b.min[i] = min[i]
		b.max[i] = min[i] + size
	}
}

// rect returns a 2-D box given its minimum corner and extents.
func rect(name string, x, y, w, h float32) *box {
	return &box{
		name: name,
		min:  []float32{x, y},
		max:  []float32{x + w, y + h},
	}
}

func corners(x, y, w, h float32) ([]float32, []float32) {
	return []float32{x, y}, []float32{x + w, y + h}
}

func newTree2D(capacity int, opts ...Option) *Tree[*box] {
	min, max := corners(0, 0, 100, 100)
	return New[*box](min, max, append([]Option{WithCapacity(capacity)}, opts...)...)
}

// bruteSearch scans items the slow way.
func bruteSearch(items []*box, min, max []float32) []*box {
	var res []*box

	if degenerate(min, max) {
		return res
	}
	for _, b := range items {
		if overlaps(b.min, b.max, min, max) {
			res = append(res, b)
		}
	}
	return res
}

// ownerOf returns the node currently owning an item.
func ownerOf(t *Tree[*box], item *box) arena.Handle {
	h, ok := t.index[item]
	if !ok {
		return arena.Nil
	}
	return t.records.Get(h).owner
}

// landing returns the node a descent from the root would stop at for the
// cached bounds of an item, without touching the tree.
func landing(t *Tree[*box], item *box) arena.Handle {
	r := t.records.Get(t.index[item])
	h := t.root

	for {
		n := t.nodes.Get(h)
		if len(n.children) == 0 {
			return h
		}
		idx := t.indexOf(n, &r.bounds)
		if idx == self {
			return h
		}
		h = n.children[idx]
	}
}

// randomBox returns a box of the given dimensions inside [0, extent).
func randomBox(fake *gofakeit.Faker, name string, dims int, extent, maxSize float32) *box {
	b := &box{
		name: name,
		min:  make([]float32, dims),
		max:  make([]float32, dims),
	}
	for i := 0; i < dims; i++ {
		size := fake.Float32Range(0, maxSize)
		b.min[i] = fake.Float32Range(0, extent-size)
		b.max[i] = b.min[i] + size
	}
	return b
}
