package kdtree

// CircularQuery returns every point strictly within radius r of q,
// excluding q itself by reference — a distinct point that merely
// shares q's coordinates is a valid result. The result is unordered.
// Returns an empty slice for an empty tree or r <= 0.
func (t *KDTree) CircularQuery(q *Point, r float32) []*Point {
	var results []*Point
	if t.root == nil || r <= 0 {
		return results
	}
	threshold := r * r

	leaf := t.leafFor(q)
	scan := func(n *Node) {
		for _, p := range n.leaf.bucket {
			if p == q {
				continue
			}
			d2 := squaredDistance(p, q)
			if d2 < threshold {
				results = append(results, p)
			}
		}
	}
	scan(leaf)

	if leaf.parent == nil {
		return results
	}

	stack := []searchFrame{{
		node:    leaf.parent,
		track:   newTrackingVector(t.dimension),
		visited: childSideOf(leaf),
	}}

	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := fr.node
		dim := node.inner.dimension
		split := node.inner.split

		for _, s := range [2]side{sideRight, sideLeft} {
			if s == fr.visited {
				continue
			}
			var child *Node
			if s == sideRight {
				child = node.inner.right
			} else {
				child = node.inner.left
			}
			if child == nil {
				continue
			}

			crosses := false
			var crossDelta float32
			if s == sideRight && q.Coords[dim] < split {
				crossDelta = split - q.Coords[dim]
				crosses = true
			} else if s == sideLeft && q.Coords[dim] > split {
				crossDelta = q.Coords[dim] - split
				crosses = true
			}

			var lb float32
			ct := fr.track
			if crosses {
				lb = fr.track.updatedLength(dim, crossDelta)
				ct = fr.track.clone()
				ct.set(dim, crossDelta)
			} else {
				lb = fr.track.lengthSquare()
			}
			if lb >= threshold {
				continue
			}

			if child.IsLeaf() {
				if minBoundsDistance2(q, child.leaf.min, child.leaf.max) < threshold {
					scan(child)
				}
				continue
			}
			stack = append(stack, searchFrame{node: child, track: ct, visited: sideNone})
		}

		if node.parent != nil && fr.visited != sideNone {
			stack = append(stack, searchFrame{node: node.parent, track: fr.track, visited: childSideOf(node)})
		}
	}

	return results
}
