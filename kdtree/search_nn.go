package kdtree

import "math"

// searchFrame is one item of the best-first search work stack: an
// inner node still to be examined, the tracking vector accumulated to
// reach it, and which of its children (if any) the walk already came
// from, so that side is not re-entered.
type searchFrame struct {
	node    *Node
	track   trackingVector
	visited side // sideNone for a freshly scheduled descent, else the side ascended from
}

// NearestNeighbor returns a point in the tree at the smallest distance
// to q, excluding q itself: if q is itself a point stored in the tree,
// that exact reference is never returned, but other points that merely
// share its coordinates are valid (possibly zero-distance) answers.
// When several points tie for nearest, any one of them may be returned.
// Returns nil if the tree is empty, or holds only the query itself.
func (t *KDTree) NearestNeighbor(q *Point) *Point {
	p, _ := t.nearestNeighbor(q)
	return p
}

func (t *KDTree) nearestNeighbor(q *Point) (*Point, float32) {
	leaf := t.leafFor(q)
	if leaf == nil {
		return nil, 0
	}

	var best *Point
	bestDist2 := float32(math.Inf(1))
	scan := func(n *Node) {
		for _, p := range n.leaf.bucket {
			if p == q {
				continue
			}
			d2 := squaredDistance(p, q)
			if d2 < bestDist2 {
				bestDist2 = d2
				best = p
			}
		}
	}
	scan(leaf)

	if leaf.parent == nil {
		return best, bestDist2
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

		type candidate struct {
			child *Node
			track trackingVector
			lb    float32
		}
		var leaves []candidate
		var inners []candidate

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
			var ct trackingVector
			if crosses {
				lb = fr.track.updatedLength(dim, crossDelta)
				ct = fr.track.clone()
				ct.set(dim, crossDelta)
			} else {
				lb = fr.track.lengthSquare()
				ct = fr.track
			}
			if lb >= bestDist2 {
				continue
			}
			c := candidate{child: child, track: ct, lb: lb}
			if child.IsLeaf() {
				leaves = append(leaves, c)
			} else {
				inners = append(inners, c)
			}
		}

		if node.parent != nil && fr.visited != sideNone {
			stack = append(stack, searchFrame{node: node.parent, track: fr.track, visited: childSideOf(node)})
		}

		for _, c := range leaves {
			if minBoundsDistance2(q, c.child.leaf.min, c.child.leaf.max) < bestDist2 {
				scan(c.child)
			}
		}

		// Push worse-first so the more promising inner candidate pops next.
		if len(inners) == 2 && inners[0].lb < inners[1].lb {
			inners[0], inners[1] = inners[1], inners[0]
		}
		for _, c := range inners {
			if c.track.lengthSquare() >= bestDist2 {
				continue
			}
			stack = append(stack, searchFrame{node: c.child, track: c.track, visited: sideNone})
		}
	}

	return best, bestDist2
}
