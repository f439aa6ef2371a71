package orthtree

import "github.com/aglyzov/go-orthtree/arena"

// Search appends to dst every item whose cached bounds overlap the box
// between the given corners and returns the extended slice. Items touching
// the box only at an edge are not reported. A box without volume matches
// nothing.
func (t *Tree[T]) Search(dst []T, min, max []float32) []T {
	t.checkCorners(min, max)

	if degenerate(min, max) {
		return dst
	}

	var (
		query = Bounds{Min: min, Max: max}
		h     = t.root
	)

	for {
		n := t.nodes.Get(h)

		if n.size == 0 {
			return dst
		}
		if len(n.children) == 0 {
			return t.collectSelf(dst, n, &query)
		}

		idx := t.indexOf(n, &query)
		if idx == self {
			return t.collectAll(dst, h, &query)
		}

		child := n.children[idx]
		if t.nodes.Get(child).size == 0 {
			return t.collectAll(dst, h, &query)
		}

		dst = t.collectSelf(dst, n, &query)
		h = child
	}
}

// collectAll collects matching items from the whole subtree of a node.
func (t *Tree[T]) collectAll(dst []T, h arena.Handle, query *Bounds) []T {
	n := t.nodes.Get(h)

	dst = t.collectSelf(dst, n, query)

	for _, child := range n.children {
		if t.nodes.Get(child).size > 0 {
			dst = t.collectAll(dst, child, query)
		}
	}

	return dst
}

// collectSelf collects matching items owned directly by a node.
func (t *Tree[T]) collectSelf(dst []T, n *node, query *Bounds) []T {
	for _, rh := range n.leafs {
		if r := t.records.Get(rh); r.bounds.Overlaps(query) {
			dst = append(dst, r.item)
		}
	}
	return dst
}
