package orthtree

import "github.com/aglyzov/go-orthtree/arena"

// Visitor receives the occupied nodes of a tree in depth-first pre-order.
// All arguments are scratch copies: changing them has no effect on the tree
// and they must not be retained after the call returns.
type Visitor[T Leaf] interface {
	// VisitNode is called for every node with at least one item in its subtree.
	VisitNode(bounds Bounds)
	// VisitLeaf is called after VisitNode for every item the node owns directly.
	VisitLeaf(item T, bounds Bounds)
}

// Traverse calls a handler for every node with a non-empty subtree passing
// the node region and the items it owns directly. It returns whether all
// such nodes were visited. The handler can continue the walk by returning
// true or abort it with false.
//
// The items slice is reused between calls.
func (t *Tree[T]) Traverse(handler func(bounds Bounds, items []T) bool) bool {
	return t.traverse(t.root, handler)
}

func (t *Tree[T]) traverse(h arena.Handle, handler func(Bounds, []T) bool) bool {
	n := t.nodes.Get(h)
	if n.size == 0 {
		return true
	}

	t.items = t.items[:0]
	for _, rh := range n.leafs {
		t.items = append(t.items, t.records.Get(rh).item)
	}
	t.nodeBounds.Set(n.bounds.Min, n.bounds.Max)

	if !handler(t.nodeBounds, t.items) {
		return false
	}

	for _, child := range n.children {
		if !t.traverse(child, handler) {
			return false
		}
	}

	return true
}

// Visit walks the tree the same way Traverse does reporting each directly
// owned item along with its cached bounds.
func (t *Tree[T]) Visit(v Visitor[T]) {
	t.visit(t.root, v)
}

func (t *Tree[T]) visit(h arena.Handle, v Visitor[T]) {
	n := t.nodes.Get(h)
	if n.size == 0 {
		return
	}

	t.nodeBounds.Set(n.bounds.Min, n.bounds.Max)
	v.VisitNode(t.nodeBounds)

	for _, rh := range n.leafs {
		r := t.records.Get(rh)
		t.leafBounds.Set(r.bounds.Min, r.bounds.Max)
		v.VisitLeaf(r.item, t.leafBounds)
	}

	for _, child := range n.children {
		t.visit(child, v)
	}
}
