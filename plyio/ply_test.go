package plyio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dprinc/kdforest/kdtree"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadPoints_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "points.ply")

	points := []*kdtree.Point{
		kdtree.NewPoint([]float32{1, 2, 3}),
		kdtree.NewPoint([]float32{-4.5, 0, 9.25}),
	}
	points[0].Color = [3]uint8{255, 0, 0}
	points[1].Color = [3]uint8{0, 255, 128}

	require.NoError(t, SavePoints(path, points, 3))

	loaded, err := LoadPoints(path, 3)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	for i, p := range loaded {
		require.InDelta(t, points[i].Coords[0], p.Coords[0], 1e-4)
		require.InDelta(t, points[i].Coords[1], p.Coords[1], 1e-4)
		require.InDelta(t, points[i].Coords[2], p.Coords[2], 1e-4)
		require.Equal(t, points[i].Color, p.Color)
	}
}

func TestSaveAndLoadPoints_2DWritesZeroZ(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "points2d.ply")

	points := []*kdtree.Point{kdtree.NewPoint([]float32{1, 2})}
	require.NoError(t, SavePoints(path, points, 2))

	loaded, err := LoadPoints(path, 2)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, float32(1), loaded[0].Coords[0])
	require.Equal(t, float32(2), loaded[0].Coords[1])

	loaded3D, err := LoadPoints(path, 3)
	require.NoError(t, err)
	require.Len(t, loaded3D, 1)
	require.Equal(t, float32(0), loaded3D[0].Coords[2])
}

func TestSaveLines_RequiresEvenCount(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lines.ply")
	points := []*kdtree.Point{kdtree.NewPoint([]float32{0, 0})}
	require.Error(t, SaveLines(path, points, 2))
}

func TestSaveWindow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "window.ply")
	require.NoError(t, SaveWindow(path, []float32{0, 10, 0, 5}))

	loaded, err := LoadPoints(path, 2)
	require.NoError(t, err)
	require.Len(t, loaded, 8)
}

func TestLoadPoints_RejectsMissingMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.ply")
	require.NoError(t, os.WriteFile(path, []byte("not-ply\n"), 0o644))
	_, err := LoadPoints(path, 2)
	require.Error(t, err)
}
