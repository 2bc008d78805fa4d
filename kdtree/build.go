package kdtree

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// side identifies which child of a parent a builder frame will attach
// its result to. The root frame ignores it (parent is nil).
type side int

const (
	sideRoot side = iota
	sideLeft
	sideRight
	sideNone
)

// buildFrame is one unit of work in the explicit construction stack: a
// point subset, the hyper-rectangle it was narrowed to, and the parent
// inner node (if any) its resulting node attaches to.
type buildFrame struct {
	points []*Point
	bounds []float32 // [min0, max0, min1, max1, ...], length 2*dimension
	parent *Node
	side   side
}

// Construct (re)builds the tree from points, replacing any existing
// structure. If bounds is nil, the tight bounding box of points is used.
// bounds, if given, must have length 2*Dimension. Bounds with min > max
// on some axis, or an empty point set, yield an empty tree rather than
// an error; bounds of the wrong length, or a point whose dimension
// differs from the tree's, return an error.
func (t *KDTree) Construct(points []*Point, bounds []float32) error {
	t.root = nil
	t.size = 0

	if len(points) == 0 {
		return nil
	}
	fmt.Printf("kdtree.Construct(dimension=%d, bucketSize=%d, numPoints=%d)\n", t.dimension, t.bucketSize, len(points))
	for _, p := range points {
		if err := checkDimension(p, t.dimension); err != nil {
			return err
		}
	}

	if bounds == nil {
		bounds = tightBoundingBox(points, t.dimension)
	} else if len(bounds) != 2*t.dimension {
		return errors.Errorf("kdtree: bounds has length %d, want %d", len(bounds), 2*t.dimension)
	} else {
		for d := 0; d < t.dimension; d++ {
			if bounds[2*d] > bounds[2*d+1] {
				// Malformed bounds: defensive rewrite returns an empty tree.
				return nil
			}
		}
		bounds = append([]float32(nil), bounds...)
	}

	stack := []buildFrame{{points: points, bounds: bounds, parent: nil, side: sideRoot}}
	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		dim := longestAxis(frame.bounds, t.dimension)
		m := frame.bounds[2*dim] + (frame.bounds[2*dim+1]-frame.bounds[2*dim])/2

		var left, right []*Point
		var lmax, rmin float32
		haveLmax, haveRmin := false, false
		for _, p := range frame.points {
			v := p.Coords[dim]
			if v <= m {
				left = append(left, p)
				if !haveLmax || v > lmax {
					lmax = v
					haveLmax = true
				}
			} else {
				right = append(right, p)
				if !haveRmin || v < rmin {
					rmin = v
					haveRmin = true
				}
			}
		}

		if len(frame.points) > t.bucketSize &&
			((len(right) == 0 && lmax >= frame.bounds[2*dim+1]) ||
				(len(left) == 0 && math.Nextafter32(rmin, float32(math.Inf(-1))) <= frame.bounds[2*dim])) {
			// One side is empty and sliding the split cannot move this
			// axis's bound inward, so recursing would repeat the same
			// frame forever. This happens when every point shares the same
			// coordinates (the longest axis included), or when the points
			// lie beyond the given bounds. Settle for a single oversized leaf.
			leaf := newLeaf(frame.parent, t.dimension, frame.points)
			switch frame.side {
			case sideRoot:
				t.root = leaf
			case sideLeft:
				frame.parent.inner.left = leaf
			case sideRight:
				frame.parent.inner.right = leaf
			}
			continue
		}

		cur := newInner(frame.parent)
		switch frame.side {
		case sideRoot:
			t.root = cur
		case sideLeft:
			frame.parent.inner.left = cur
		case sideRight:
			frame.parent.inner.right = cur
		}

		split := m
		if len(right) == 0 {
			split = lmax
		} else if len(left) == 0 {
			// Just below rmin, so the rmin points stay strictly right of it.
			split = math.Nextafter32(rmin, float32(math.Inf(-1)))
		}
		cur.inner.dimension = dim
		cur.inner.split = split

		if len(left) > 0 {
			if len(left) > t.bucketSize {
				leftBounds := append([]float32(nil), frame.bounds...)
				leftBounds[2*dim+1] = split
				stack = append(stack, buildFrame{points: left, bounds: leftBounds, parent: cur, side: sideLeft})
			} else {
				cur.inner.left = newLeaf(cur, t.dimension, left)
			}
		}
		if len(right) > 0 {
			if len(right) > t.bucketSize {
				rightBounds := append([]float32(nil), frame.bounds...)
				rightBounds[2*dim] = split
				stack = append(stack, buildFrame{points: right, bounds: rightBounds, parent: cur, side: sideRight})
			} else {
				cur.inner.right = newLeaf(cur, t.dimension, right)
			}
		}
	}

	t.size = len(points)
	return nil
}

// longestAxis returns the axis with the largest extent in bounds,
// breaking ties toward the lowest index.
func longestAxis(bounds []float32, dimension int) int {
	dim := 0
	var best float32 = -1
	for d := 0; d < dimension; d++ {
		extent := bounds[2*d+1] - bounds[2*d]
		if extent > best {
			best = extent
			dim = d
		}
	}
	return dim
}

func tightBoundingBox(points []*Point, dimension int) []float32 {
	bbox := make([]float32, 2*dimension)
	for d := 0; d < dimension; d++ {
		bbox[2*d] = points[0].Coords[d]
		bbox[2*d+1] = points[0].Coords[d]
	}
	for _, p := range points[1:] {
		for d := 0; d < dimension; d++ {
			v := p.Coords[d]
			if v < bbox[2*d] {
				bbox[2*d] = v
			}
			if v > bbox[2*d+1] {
				bbox[2*d+1] = v
			}
		}
	}
	return bbox
}
