package kdtree

import "github.com/pkg/errors"

// Point is a single point in the index: Dimension float32 coordinates
// plus a three-channel color used only by external visualization (see
// package viz). The tree never interprets Color.
type Point struct {
	Coords []float32
	Color  [3]uint8
}

// NewPoint wraps coords as a Point with no color set. coords is kept by
// reference, not copied; the caller must not mutate its length after
// handing it to a tree.
func NewPoint(coords []float32) *Point {
	return &Point{Coords: coords}
}

// At returns the coordinate on the given axis.
func (p *Point) At(axis int) float32 {
	return p.Coords[axis]
}

func checkDimension(p *Point, dimension int) error {
	if p == nil {
		return errors.New("kdtree: nil point")
	}
	if len(p.Coords) != dimension {
		return errors.Errorf("kdtree: point has %d coordinates, want %d", len(p.Coords), dimension)
	}
	return nil
}

func squaredDistance(a, b *Point) float32 {
	var sum float32
	for i, ai := range a.Coords {
		d := ai - b.Coords[i]
		sum += d * d
	}
	return sum
}
