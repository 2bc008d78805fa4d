package kdtree

// leafFor descends from the root to the leaf that would contain q,
// comparing q's coordinate on each inner node's split axis: <= split
// goes left, > split goes right. When the chosen child is absent, the
// walk falls through to whichever child is present. Returns nil only
// when the tree is empty.
func (t *KDTree) leafFor(q *Point) *Node {
	n := t.root
	for n != nil && !n.IsLeaf() {
		var next *Node
		if q.Coords[n.inner.dimension] <= n.inner.split {
			next = n.inner.left
			if next == nil {
				next = n.inner.right
			}
		} else {
			next = n.inner.right
			if next == nil {
				next = n.inner.left
			}
		}
		n = next
	}
	return n
}
