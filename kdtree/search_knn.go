package kdtree

import (
	"math"
	"sort"
)

const maxKNNExpansions = 100

// KNearestNeighbors returns the k points nearest to q, excluding q
// itself, sorted by ascending distance. If the tree holds fewer than
// k+1 points, the result contains every non-self point, sorted.
//
// This uses an expanding-radius strategy: find the true nearest
// neighbor, then grow a circular query around q until it has captured
// k points or covers the tree's bounding box, refining from there. The
// radius grows by a factor of 1+1/Dimension at most maxKNNExpansions
// times; if neither condition is met by then, the result can hold
// fewer than k points.
func (t *KDTree) KNearestNeighbors(q *Point, k int) []*Point {
	if k < 1 || t.root == nil {
		return nil
	}

	nn, nnDist2 := t.nearestNeighbor(q)
	if nn == nil {
		return nil
	}

	bbox := t.BoundingBox()
	diag2 := boundingDiagonalSquared(bbox)
	// far2 is the squared distance from q to the farthest corner of the
	// bounding box: a ball around q with a larger radius holds every point.
	var far2 float32
	for d := 0; d < t.dimension; d++ {
		lo, hi := bbox[2*d]-q.Coords[d], bbox[2*d+1]-q.Coords[d]
		far2 += max(lo*lo, hi*hi)
	}

	growth := 1 + 1/float32(t.dimension)
	r := float32(math.Sqrt(float64(nnDist2))) * (1 + 2/float32(t.dimension))
	if r <= 0 {
		// nn coincides with q (duplicate points): seed the search with a
		// small fraction of the tree's extent instead of stalling at 0,
		// which CircularQuery treats as "no radius" and always empties.
		r = float32(math.Sqrt(float64(diag2))) * 1e-3
		if r <= 0 {
			r = 1
		}
	}

	var results []*Point
	for i := 0; i < maxKNNExpansions; i++ {
		results = t.CircularQuery(q, r)
		if len(results) >= k || r*r > far2 {
			break
		}
		r *= growth
	}

	sortByDistance(results, q)
	if len(results) > k {
		results = results[:k]
	}
	return results
}

func sortByDistance(points []*Point, q *Point) {
	sort.Slice(points, func(i, j int) bool {
		return squaredDistance(points[i], q) < squaredDistance(points[j], q)
	})
}

func boundingDiagonalSquared(bbox []float32) float32 {
	if bbox == nil {
		return 0
	}
	var sum float32
	for d := 0; d < len(bbox)/2; d++ {
		extent := bbox[2*d+1] - bbox[2*d]
		sum += extent * extent
	}
	return sum
}
