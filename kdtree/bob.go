package kdtree

import "github.com/gomlx/exceptions"

// childSideOf reports which side of its parent n occupies. Used by the
// search ascent to avoid re-entering the subtree it just came from.
func childSideOf(n *Node) side {
	p := n.parent
	if p == nil {
		return sideNone
	}
	switch {
	case p.inner.left == n:
		return sideLeft
	case p.inner.right == n:
		return sideRight
	default:
		exceptions.Panicf("kdtree: corrupt tree, node is not referenced as a child by its recorded parent")
		return sideNone
	}
}

// minBoundsDistance2 is the bounds-overlap-ball (BOB) test: the squared
// distance from q to the closest point of the axis-aligned box
// [min, max], 0 if q is inside the box.
func minBoundsDistance2(q *Point, min, max []float32) float32 {
	var sum float32
	for d, qv := range q.Coords {
		if qv < min[d] {
			diff := min[d] - qv
			sum += diff * diff
		} else if qv > max[d] {
			diff := qv - max[d]
			sum += diff * diff
		}
	}
	return sum
}
