package graph

import (
	"sort"

	"github.com/gomlx/gomlx/types/shapes"
	"github.com/gomlx/gomlx/types/tensors"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

func validateEdgeTensor(edgesT *tensors.Tensor) error {
	if edgesT.Shape().Rank() != 2 || edgesT.Shape().Dimensions[0] != 2 {
		return errors.Errorf("graph: invalid shape for edges tensor: got %s, wanted [2, numEdges]", edgesT.Shape())
	}
	if edgesT.DType() != dtypes.Int32 {
		return errors.Errorf("graph: invalid dtype for edges tensor: got %s, wanted Int32", edgesT.DType())
	}
	return nil
}

// UnionEdges merges one or more [2, numEdges] edge tensors (as produced by
// geometry.NearestEdges/RadiusEdges) into a single tensor with duplicate
// source/target pairs collapsed. The output order is unspecified; call
// SortEdgesBySource to get a deterministic source-then-target ordering.
func UnionEdges(inputEdges ...*tensors.Tensor) (*tensors.Tensor, error) {
	if len(inputEdges) == 0 {
		return nil, errors.Errorf("graph: no input edges provided")
	}

	type edgeKey struct {
		source int32
		target int32
	}
	seen := make(map[edgeKey]struct{})

	for _, edgesT := range inputEdges {
		if edgesT == nil || edgesT.Shape().Size() == 0 {
			continue
		}
		if err := validateEdgeTensor(edgesT); err != nil {
			return nil, err
		}

		numEdges := edgesT.Shape().Dimensions[1]
		edgesData := edgesT.Value().([][]int32)
		sources := edgesData[0]
		targets := edgesData[1]

		for i := 0; i < numEdges; i++ {
			seen[edgeKey{source: sources[i], target: targets[i]}] = struct{}{}
		}
	}

	if len(seen) == 0 {
		return tensors.FromShape(shapes.Make(dtypes.Int32, 2, 0)), nil
	}

	numUnique := len(seen)
	merged := tensors.FromShape(shapes.Make(dtypes.Int32, 2, numUnique))
	tensors.MutableFlatData(merged, func(flat []int32) {
		var i int
		for e := range seen {
			flat[i] = e.source
			flat[i+numUnique] = e.target
			i++
		}
	})
	return merged, nil
}

// SortEdgesBySource reorders edges in place, primarily by source index and
// secondarily by target index. The tensor's backing storage is moved to
// local memory first if it currently lives on an accelerator.
func SortEdgesBySource(edges *tensors.Tensor) error {
	if err := validateEdgeTensor(edges); err != nil {
		return err
	}
	tensors.MutableFlatData(edges, func(flat []int32) {
		sort.Sort(edgesBySource(flat))
	})
	return nil
}

// edgesBySource views a flat [2, numEdges] edge tensor as a sortable pair
// of parallel source/target slices packed into one backing array.
type edgesBySource []int32

func (e edgesBySource) Len() int { return len(e) / 2 }

func (e edgesBySource) Less(i, j int) bool {
	if e[i] != e[j] {
		return e[i] < e[j]
	}
	n := e.Len()
	return e[i+n] < e[j+n]
}

func (e edgesBySource) Swap(i, j int) {
	n := e.Len()
	e[i], e[j] = e[j], e[i]
	e[i+n], e[j+n] = e[j+n], e[i+n]
}
