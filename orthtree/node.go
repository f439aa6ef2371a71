package orthtree

import (
	"go.uber.org/zap"

	"github.com/aglyzov/go-orthtree/arena"
)

// self is the child index of a box that fits no single child.
const self = -1

type node struct {
	bounds   Bounds
	parent   arena.Handle   // used for size rollups only
	children []arena.Handle // empty or exactly 2^dims handles
	leafs    []arena.Handle // records owned directly by the node
	depth    int
	size     int // records in the whole subtree
}

// newNode obtains a node slot and resets it. Slices of a reused slot keep
// their capacity.
func (t *Tree[T]) newNode(parent arena.Handle, depth int, min, max []float32) arena.Handle {
	h := t.nodes.Obtain()
	n := t.nodes.Get(h)

	n.bounds.Set(min, max)
	n.parent = parent
	n.children = n.children[:0]
	n.leafs = n.leafs[:0]
	n.depth = depth
	n.size = 0

	return h
}

// indexOf calculates the child a box fits in or returns self when the box
// is not strictly inside the node or straddles its middle on some dimension.
func (t *Tree[T]) indexOf(n *node, b *Bounds) int {
	if !n.bounds.Contains(b) {
		return self
	}

	var (
		mid = n.bounds.Mid
		idx int
	)

	for i := 0; i < t.dims; i++ {
		switch {
		case b.Max[i] < mid[i]:
			// low half - the bit stays 0
		case b.Min[i] > mid[i]:
			idx |= 1 << i
		default:
			return self
		}
	}

	return idx
}

// split allocates 2^dims children of a node and pushes down every record
// fitting a single child.
func (t *Tree[T]) split(h arena.Handle) {
	depth := t.nodes.Get(h).depth

	for idx := 0; idx < t.regions; idx++ {
		p := t.nodes.Get(h)

		for i := 0; i < t.dims; i++ {
			if idx&(1<<i) == 0 {
				t.splitMin[i], t.splitMax[i] = p.bounds.Min[i], p.bounds.Mid[i]
			} else {
				t.splitMin[i], t.splitMax[i] = p.bounds.Mid[i], p.bounds.Max[i]
			}
		}

		c := t.newNode(h, depth+1, t.splitMin, t.splitMax)

		// newNode may have moved the nodes
		p = t.nodes.Get(h)
		p.children = append(p.children, c)
	}

	if ce := t.log.Check(zap.DebugLevel, "orthtree node split"); ce != nil {
		n := t.nodes.Get(h)
		ce.Write(zap.Int32("node", int32(h)), zap.Int("depth", depth), zap.Int("leafs", len(n.leafs)))
	}

	n := t.nodes.Get(h)

	for i := 0; i < len(n.leafs); {
		var (
			rh  = n.leafs[i]
			r   = t.records.Get(rh)
			idx = t.indexOf(n, &r.bounds)
		)

		if idx == self {
			i++
			continue
		}

		// detach moves the last record into slot i
		t.detach(n, r)
		t.descend(n.children[idx], rh)

		n = t.nodes.Get(h)
	}
}
