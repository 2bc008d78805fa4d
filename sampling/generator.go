package sampling

import (
	"math/rand/v2"

	"github.com/dprinc/kdforest/kdtree"
	"github.com/pkg/errors"
)

// Generator produces random points bounded by a hyper-rectangle,
// described the same way as kdtree.Construct's bounds argument: for
// dimension d, bounds[2*d] and bounds[2*d+1] are the min and max on
// axis d.
type Generator struct {
	rng *rand.Rand
}

// New returns a Generator seeded from seed. The same seed always
// produces the same sequence of points.
func New(seed int64) *Generator {
	s := uint64(seed)
	return &Generator{rng: rand.New(rand.NewPCG(s, s+1))}
}

// Uniform generates count points with coordinates drawn independently
// and uniformly from the interval given per-axis by bounds.
func (g *Generator) Uniform(count int, bounds []float32) ([]*kdtree.Point, error) {
	dimension, err := checkBounds(bounds)
	if err != nil {
		return nil, err
	}
	points := make([]*kdtree.Point, count)
	for i := range points {
		coords := make([]float32, dimension)
		for d := 0; d < dimension; d++ {
			min, max := bounds[2*d], bounds[2*d+1]
			coords[d] = min + g.rng.Float32()*(max-min)
		}
		points[i] = kdtree.NewPoint(coords)
	}
	return points, nil
}

// Gaussian generates count points whose coordinates are drawn
// independently from a normal distribution centered on the midpoint of
// each axis of bounds, with standard deviation stddevFraction times
// that axis's extent. Points are clamped to stay within bounds.
func (g *Generator) Gaussian(count int, bounds []float32, stddevFraction float32) ([]*kdtree.Point, error) {
	dimension, err := checkBounds(bounds)
	if err != nil {
		return nil, err
	}
	if stddevFraction <= 0 {
		return nil, errors.Errorf("sampling: stddevFraction must be positive, got %g", stddevFraction)
	}
	points := make([]*kdtree.Point, count)
	for i := range points {
		coords := make([]float32, dimension)
		for d := 0; d < dimension; d++ {
			min, max := bounds[2*d], bounds[2*d+1]
			mid := (min + max) / 2
			stddev := (max - min) * stddevFraction
			v := mid + float32(g.rng.NormFloat64())*stddev
			coords[d] = clamp(v, min, max)
		}
		points[i] = kdtree.NewPoint(coords)
	}
	return points, nil
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func checkBounds(bounds []float32) (dimension int, err error) {
	if len(bounds) == 0 || len(bounds)%2 != 0 {
		return 0, errors.Errorf("sampling: bounds must have an even, non-zero length, got %d", len(bounds))
	}
	dimension = len(bounds) / 2
	for d := 0; d < dimension; d++ {
		if bounds[2*d] > bounds[2*d+1] {
			return 0, errors.Errorf("sampling: bounds min (%g) > max (%g) on axis %d", bounds[2*d], bounds[2*d+1], d)
		}
	}
	return dimension, nil
}
