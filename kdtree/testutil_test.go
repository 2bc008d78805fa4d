package kdtree

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
)

func pt2(x, y float32) *Point {
	return NewPoint([]float32{x, y})
}

func pt3(x, y, z float32) *Point {
	return NewPoint([]float32{x, y, z})
}

// bruteForceNearest scans every point in points for the closest one to
// q, excluding q itself by reference (self-exclusion), to cross-check
// the tree's NearestNeighbor.
func bruteForceNearest(points []*Point, q *Point) (*Point, float32) {
	var best *Point
	bestDist2 := float32(math.Inf(1))
	for _, p := range points {
		if p == q {
			continue
		}
		d2 := squaredDistance(p, q)
		if d2 < bestDist2 {
			bestDist2 = d2
			best = p
		}
	}
	return best, bestDist2
}

func bruteForceRadius(points []*Point, q *Point, r float32) []*Point {
	var out []*Point
	threshold := r * r
	for _, p := range points {
		if p == q {
			continue
		}
		d2 := squaredDistance(p, q)
		if d2 < threshold {
			out = append(out, p)
		}
	}
	return out
}

func bruteForceKNN(points []*Point, q *Point, k int) []*Point {
	var candidates []*Point
	for _, p := range points {
		if p != q {
			candidates = append(candidates, p)
		}
	}
	sortByDistance(candidates, q)
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}

func randomPoints(n, dimension int, seed int64) []*Point {
	s := uint64(seed)
	rng := rand.New(rand.NewPCG(s, s+1))
	points := make([]*Point, n)
	for i := range points {
		coords := make([]float32, dimension)
		for d := range coords {
			coords[d] = float32(rng.Float64() * 100)
		}
		points[i] = NewPoint(coords)
	}
	return points
}

func samePointSet(a, b []*Point) bool {
	if len(a) != len(b) {
		return false
	}
	key := func(p *Point) string {
		s := ""
		for _, c := range p.Coords {
			s += floatKey(c)
		}
		return s
	}
	ak := make([]string, len(a))
	bk := make([]string, len(b))
	for i, p := range a {
		ak[i] = key(p)
	}
	for i, p := range b {
		bk[i] = key(p)
	}
	sort.Strings(ak)
	sort.Strings(bk)
	for i := range ak {
		if ak[i] != bk[i] {
			return false
		}
	}
	return true
}

func floatKey(f float32) string {
	return fmt.Sprintf("%.6f,", f)
}

// allLeaves walks the tree and returns every leaf node.
func allLeaves(root *Node) []*Node {
	var leaves []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.IsLeaf() {
			leaves = append(leaves, n)
			return
		}
		walk(n.inner.left)
		walk(n.inner.right)
	}
	walk(root)
	return leaves
}

// allPoints collects every point stored in the tree's leaves.
func allPoints(root *Node) []*Point {
	var points []*Point
	for _, leaf := range allLeaves(root) {
		points = append(points, leaf.leaf.bucket...)
	}
	return points
}
