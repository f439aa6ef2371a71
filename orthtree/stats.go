package orthtree

import (
	"fmt"

	"github.com/aglyzov/go-orthtree/arena"
)

// Stats describes the shape and the memory footprint of a Tree.
type Stats struct {
	Items       int // indexed items
	Nodes       int // live nodes
	NodeSlots   int // node slots ever allocated
	RecordSlots int // record slots ever allocated
	MaxDepth    int // depth of the deepest live node
}

// Stats returns the current statistics of the tree.
func (t *Tree[T]) Stats() Stats {
	s := Stats{
		Items:       len(t.index),
		Nodes:       t.nodes.Len(),
		NodeSlots:   t.nodes.Cap(),
		RecordSlots: t.records.Cap(),
	}

	t.nodes.Each(func(_ arena.Handle, n *node) bool {
		if n.depth > s.MaxDepth {
			s.MaxDepth = n.depth
		}
		return true
	})

	return s
}

// Validate checks the structural invariants of the tree: size counters,
// parent and child links, record ownership and the item index. It returns
// the first violation found.
func (t *Tree[T]) Validate() error {
	var (
		nodes   int
		records int
	)

	size, err := t.validate(t.root, arena.Nil, 0, &nodes, &records)
	if err != nil {
		return err
	}

	switch {
	case size != len(t.index):
		return fmt.Errorf("root size %d, expected %d items", size, len(t.index))
	case nodes != t.nodes.Len():
		return fmt.Errorf("%d nodes reachable from the root, %d allocated", nodes, t.nodes.Len())
	case records != t.records.Len():
		return fmt.Errorf("%d records owned by nodes, %d allocated", records, t.records.Len())
	}

	for item, rh := range t.index {
		if !t.records.Occupied(rh) {
			return fmt.Errorf("item %v maps to a released record %d", item, rh)
		}
		if r := t.records.Get(rh); r.owner == arena.Nil {
			return fmt.Errorf("item %v has no owner", item)
		}
	}

	return nil
}

func (t *Tree[T]) validate(h, parent arena.Handle, depth int, nodes, records *int) (int, error) {
	if !t.nodes.Occupied(h) {
		return 0, fmt.Errorf("node %d is not allocated", h)
	}

	n := t.nodes.Get(h)
	*nodes++

	switch {
	case n.parent != parent:
		return 0, fmt.Errorf("node %d: parent %d, expected %d", h, n.parent, parent)
	case n.depth != depth:
		return 0, fmt.Errorf("node %d: depth %d, expected %d", h, n.depth, depth)
	case len(n.children) != 0 && len(n.children) != t.regions:
		return 0, fmt.Errorf("node %d: %d children, expected %d", h, len(n.children), t.regions)
	case len(n.children) == 0 && len(n.leafs) > t.capacity:
		return 0, fmt.Errorf("node %d: %d leafs without children, capacity %d", h, len(n.leafs), t.capacity)
	}

	for i, rh := range n.leafs {
		if !t.records.Occupied(rh) {
			return 0, fmt.Errorf("node %d: owns a released record %d", h, rh)
		}

		r := t.records.Get(rh)
		*records++

		indexed, ok := t.index[r.item]

		switch {
		case r.owner != h:
			return 0, fmt.Errorf("record %d: owner %d, expected %d", rh, r.owner, h)
		case r.slot != i:
			return 0, fmt.Errorf("record %d: slot %d, expected %d", rh, r.slot, i)
		case !ok || indexed != rh:
			return 0, fmt.Errorf("record %d: item %v is not indexed", rh, r.item)
		}
	}

	size := len(n.leafs)

	for _, child := range n.children {
		s, err := t.validate(child, h, depth+1, nodes, records)
		if err != nil {
			return 0, err
		}
		size += s
	}

	if size != n.size {
		return 0, fmt.Errorf("node %d: size %d, counted %d", h, n.size, size)
	}

	return size, nil
}
