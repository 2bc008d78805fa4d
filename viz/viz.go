package viz

import (
	"math/rand/v2"

	"github.com/dprinc/kdforest/kdtree"
	"github.com/dprinc/kdforest/plyio"
	"github.com/pkg/errors"
)

var white = [3]uint8{255, 255, 255}

// DumpTree writes "<prefix>points.ply", one record per point in the
// tree with every leaf bucket given its own color when paint is true,
// and, for 2-dimensional trees only, "<prefix>lines.ply" with the
// splitting-plane segment of every inner node plus the bounding window
// described by bounds (in the kdtree.Construct bounds layout).
func DumpTree(tree *kdtree.KDTree, bounds []float32, prefix string, paint bool) error {
	if tree.Root() == nil {
		return errors.New("viz: cannot dump an empty tree")
	}

	rng := rand.New(rand.NewPCG(1, 2))
	bucketPoints := debugBuckets(tree.Root(), paint, rng)
	if err := plyio.SavePoints(prefix+"points.ply", bucketPoints, tree.Dimension()); err != nil {
		return errors.WithMessage(err, "viz: writing bucket points")
	}

	if tree.Dimension() != 2 {
		return nil
	}
	if len(bounds) != 4 {
		return errors.Errorf("viz: bounds must have length 4 for a 2D tree, got %d", len(bounds))
	}

	lines := debugSplits(tree.Root(), bounds)
	lines = append(lines, windowSegments(bounds)...)
	return errors.WithMessage(plyio.SaveLines(prefix+"lines.ply", lines, 2), "viz: writing splitting-plane lines")
}

// debugBuckets collects a copy of every point in the tree; when paint
// is true, the copies from each leaf bucket get that bucket's own
// random color.
func debugBuckets(node *kdtree.Node, paint bool, rng *rand.Rand) []*kdtree.Point {
	if node == nil {
		return nil
	}
	if node.IsLeaf() {
		color := [3]uint8{uint8(rng.IntN(255)), uint8(rng.IntN(255)), uint8(rng.IntN(255))}
		out := make([]*kdtree.Point, 0, len(node.Bucket()))
		for _, p := range node.Bucket() {
			cp := kdtree.NewPoint(append([]float32(nil), p.Coords...))
			cp.Color = p.Color
			if paint {
				cp.Color = color
			}
			out = append(out, cp)
		}
		return out
	}
	out := debugBuckets(node.Left(), paint, rng)
	out = append(out, debugBuckets(node.Right(), paint, rng)...)
	return out
}

// debugSplits walks the inner nodes of a 2D tree, emitting the two
// endpoints of each node's splitting-plane segment clipped to bound,
// then recursing into each non-leaf child with bound narrowed to that
// child's half of the split.
func debugSplits(node *kdtree.Node, bound []float32) []*kdtree.Point {
	if node == nil || node.IsLeaf() {
		return nil
	}
	dim := node.Dimension()
	split := node.Split()

	p0 := []float32{bound[0], bound[2]}
	p1 := []float32{bound[1], bound[3]}
	p0[dim] = split
	p1[dim] = split
	a, b := kdtree.NewPoint(p0), kdtree.NewPoint(p1)
	a.Color, b.Color = white, white
	out := []*kdtree.Point{a, b}

	if left := node.Left(); left != nil && !left.IsLeaf() {
		narrowed := append([]float32(nil), bound...)
		narrowed[2*dim+1] = split
		out = append(out, debugSplits(left, narrowed)...)
	}
	if right := node.Right(); right != nil && !right.IsLeaf() {
		narrowed := append([]float32(nil), bound...)
		narrowed[2*dim] = split
		out = append(out, debugSplits(right, narrowed)...)
	}
	return out
}

// windowSegments returns the four edges of the bounding rectangle as a
// closed line loop.
func windowSegments(bounds []float32) []*kdtree.Point {
	minX, maxX, minY, maxY := bounds[0], bounds[1], bounds[2], bounds[3]
	pts := []*kdtree.Point{
		kdtree.NewPoint([]float32{minX, minY}),
		kdtree.NewPoint([]float32{minX, maxY}),
		kdtree.NewPoint([]float32{minX, maxY}),
		kdtree.NewPoint([]float32{maxX, maxY}),
		kdtree.NewPoint([]float32{maxX, maxY}),
		kdtree.NewPoint([]float32{maxX, minY}),
		kdtree.NewPoint([]float32{maxX, minY}),
		kdtree.NewPoint([]float32{minX, minY}),
	}
	for _, p := range pts {
		p.Color = white
	}
	return pts
}
