package sampling

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUniform_RespectsBounds(t *testing.T) {
	g := New(1)
	bounds := []float32{-1, 1, 0, 10}
	points, err := g.Uniform(500, bounds)
	require.NoError(t, err)
	require.Len(t, points, 500)
	for _, p := range points {
		require.GreaterOrEqual(t, p.Coords[0], float32(-1))
		require.LessOrEqual(t, p.Coords[0], float32(1))
		require.GreaterOrEqual(t, p.Coords[1], float32(0))
		require.LessOrEqual(t, p.Coords[1], float32(10))
	}
}

func TestUniform_Deterministic(t *testing.T) {
	bounds := []float32{0, 1}
	a, err := New(42).Uniform(20, bounds)
	require.NoError(t, err)
	b, err := New(42).Uniform(20, bounds)
	require.NoError(t, err)
	for i := range a {
		require.Equal(t, a[i].Coords[0], b[i].Coords[0])
	}
}

func TestGaussian_ClampedToBounds(t *testing.T) {
	g := New(7)
	bounds := []float32{-5, 5, -5, 5}
	points, err := g.Gaussian(500, bounds, 0.5)
	require.NoError(t, err)
	for _, p := range points {
		require.GreaterOrEqual(t, p.Coords[0], float32(-5))
		require.LessOrEqual(t, p.Coords[0], float32(5))
	}
}

func TestUniform_RejectsMalformedBounds(t *testing.T) {
	g := New(1)
	_, err := g.Uniform(10, []float32{5, 0})
	require.Error(t, err)
	_, err = g.Uniform(10, []float32{0, 1, 2})
	require.Error(t, err)
}

func TestGaussian_RejectsNonPositiveStddev(t *testing.T) {
	g := New(1)
	_, err := g.Gaussian(10, []float32{0, 1}, 0)
	require.Error(t, err)
}
