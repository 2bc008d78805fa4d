package kdtree

import (
	"github.com/gomlx/exceptions"
)

// Insert adds a single point to the tree, splitting the overflowing
// leaf bucket on a plain local midpoint when necessary. Unlike bulk
// construction, insertion never applies the sliding-midpoint rule.
func (t *KDTree) Insert(p *Point) error {
	if err := checkDimension(p, t.dimension); err != nil {
		return err
	}

	if t.root == nil {
		leaf := newLeaf(nil, t.dimension, []*Point{p})
		t.root = leaf
		t.size = 1
		return nil
	}

	leaf := t.leafFor(p)
	if leaf == nil {
		exceptions.Panicf("kdtree: descent from a non-empty root reached a nil leaf")
	}

	if len(leaf.leaf.bucket) < t.bucketSize {
		leaf.leaf.add(p)
		t.size++
		return nil
	}

	t.splitLeaf(leaf, p)
	t.size++
	return nil
}

// splitLeaf replaces the overflowing leaf with a fresh inner node and
// two new leaves, partitioning leaf.bucket ∪ {p} on a plain local
// midpoint of the axis with the greatest extent.
func (t *KDTree) splitLeaf(leaf *Node, p *Point) {
	combined := make([]*Point, 0, len(leaf.leaf.bucket)+1)
	combined = append(combined, leaf.leaf.bucket...)
	combined = append(combined, p)

	min := make([]float32, t.dimension)
	max := make([]float32, t.dimension)
	copy(min, combined[0].Coords)
	copy(max, combined[0].Coords)
	for _, pt := range combined[1:] {
		for d := 0; d < t.dimension; d++ {
			v := pt.Coords[d]
			if v < min[d] {
				min[d] = v
			}
			if v > max[d] {
				max[d] = v
			}
		}
	}

	dim := 0
	var best float32 = -1
	for d := 0; d < t.dimension; d++ {
		extent := max[d] - min[d]
		if extent > best {
			best = extent
			dim = d
		}
	}
	split := min[dim] + (max[dim]-min[dim])/2

	var left, right []*Point
	for _, pt := range combined {
		if pt.Coords[dim] <= split {
			left = append(left, pt)
		} else {
			right = append(right, pt)
		}
	}

	if len(left) == len(combined) || len(right) == len(combined) {
		// Every point, including p, shares the same coordinate on every
		// axis: no midpoint can separate them. Grow the bucket in place
		// rather than building a useless layer of nesting around an
		// unsplit set.
		leaf.leaf.add(p)
		return
	}

	parent := leaf.parent
	replacement := newInner(parent)
	replacement.inner.dimension = dim
	replacement.inner.split = split
	if len(left) > 0 {
		replacement.inner.left = newLeaf(replacement, t.dimension, left)
	}
	if len(right) > 0 {
		replacement.inner.right = newLeaf(replacement, t.dimension, right)
	}

	if parent == nil {
		t.root = replacement
		return
	}
	switch {
	case parent.inner.left == leaf:
		parent.inner.left = replacement
	case parent.inner.right == leaf:
		parent.inner.right = replacement
	default:
		exceptions.Panicf("kdtree: corrupt tree, leaf's parent does not reference it as either child")
	}
}
