package geometry

import (
	"math"

	"github.com/dprinc/kdforest/kdtree"
)

// buildIndexedPoints wraps the rows of a flat, row-major point slice as
// *kdtree.Point values, sharing their backing array (no copy), and
// returns a side table mapping each wrapped point back to its row
// index. Since kdtree.Construct and kdtree.Insert never copy a Point
// struct, the pointers handed back by a tree's queries are exactly the
// ones in this table, so the lookup is a simple pointer-keyed map.
func buildIndexedPoints(flat []float32, dimension int) (points []*kdtree.Point, index map[*kdtree.Point]int32) {
	n := len(flat) / dimension
	points = make([]*kdtree.Point, n)
	index = make(map[*kdtree.Point]int32, n)
	for i := 0; i < n; i++ {
		p := kdtree.NewPoint(flat[i*dimension : (i+1)*dimension])
		points[i] = p
		index[p] = int32(i)
	}
	return points, index
}

func l2Dist2(a, b []float32) float32 {
	var sum float32
	for i, ai := range a {
		d := ai - b[i]
		sum += d * d
	}
	return sum
}

func l2Dist(a, b []float32) float32 {
	return float32(math.Sqrt(float64(l2Dist2(a, b))))
}
