package graph

import (
	"testing"

	"github.com/gomlx/gomlx/types/tensors"
	"github.com/stretchr/testify/require"
)

func TestUnionEdges_MergesAndDeduplicates(t *testing.T) {
	nearest := tensors.FromValue([][]int32{{0, 1, 0}, {1, 2, 2}})
	radius := tensors.FromValue([][]int32{{0, 2}, {1, 3}})

	// (0,1) appears in both inputs and must collapse to a single edge.
	expected := [][]int32{{0, 0, 1, 2}, {1, 2, 2, 3}}

	merged, err := UnionEdges(nearest, radius)
	require.NoError(t, err)
	require.NoError(t, SortEdgesBySource(merged))
	require.Equal(t, expected, merged.Value().([][]int32))
}

func TestUnionEdges_NoInputsIsError(t *testing.T) {
	_, err := UnionEdges()
	require.Error(t, err)
}

func TestUnionEdges_SingleTensorDropsInternalDuplicates(t *testing.T) {
	withDupes := tensors.FromValue([][]int32{{1, 0, 1, 0}, {2, 1, 2, 1}})
	expected := [][]int32{{0, 1}, {1, 2}}

	merged, err := UnionEdges(withDupes)
	require.NoError(t, err)
	require.NoError(t, SortEdgesBySource(merged))
	require.Equal(t, expected, merged.Value().([][]int32))
}

func TestUnionEdges_RejectsWrongRank(t *testing.T) {
	notEdgeShaped := tensors.FromValue([]int32{1, 2, 3})
	_, err := UnionEdges(notEdgeShaped)
	require.Error(t, err)
}

func TestUnionEdges_RejectsWrongDType(t *testing.T) {
	wrongDType := tensors.FromValue([][]float32{{1, 2}, {3, 4}})
	_, err := UnionEdges(wrongDType)
	require.Error(t, err)
}
