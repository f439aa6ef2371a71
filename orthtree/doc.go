// Package orthtree defines a dynamic N-dimensional orthtree (a quadtree for
// two dimensions, an octree for three) indexing moving axis-aligned boxes.
//
// The tree is built from two arenas:
//
//   - nodes   - a region (Bounds), 2^D child handles once split, handles of
//     the records owned directly by the node, depth and subtree size;
//   - records - a cached Bounds snapshot of one item, the owning node handle,
//     the position inside the owner's list and the item itself.
//
// Child index:
// -----------
//
// Every dimension contributes one bit: 0 - the box is entirely below the
// node's middle point, 1 - entirely above it. A box straddling the middle on
// any dimension stays in the node itself.
//
//	             y
//	             ^
//	             |  [ 10 ]  |  [ 11 ]
//	         mid +----------+---------
//	             |  [ 00 ]  |  [ 01 ]
//	             +----------+---------> x
//	                       mid
//
// Size accounting:
// ---------------
//
// Each node stores the number of records in its whole subtree, so that
//
//	node.size == len(node.leafs) + sum(child.size for each child)
//
// A removal walks the parent handles up to the root decrementing size. Split
// nodes are never merged back, sparse subtrees stay around until Clear or
// Resize.
//
// Re-insertion:
// ------------
//
// Insert doubles as an update. When an item is owned by a node deeper than
// the reinsertion threshold and its new box is still strictly inside that
// node, it is only pushed down into a child (or left alone) instead of being
// detached and inserted from the root again.
//
// A Tree is not safe for concurrent use, and no method may be called from
// within a Traverse or Visit callback.
package orthtree
