package geometry

import (
	"github.com/dprinc/kdforest/graph"
	"github.com/gomlx/gomlx/types/tensors"
	"github.com/pkg/errors"
)

// CombinedEdges builds the union of a nearest-neighbor graph and a radius
// graph between the same source and target point sets: every source point
// gets an edge to its single closest target (NearestEdges) plus an edge to
// every target within radius (RadiusEdges), deduplicated and ordered by
// source then target index.
//
// This is the common two-scale neighborhood construction used when a single
// radius graph would leave isolated source points in sparse regions: the
// nearest-neighbor edge guarantees every source has at least one neighbor,
// while the radius edges capture local density where points are close.
func CombinedEdges(source, target *tensors.Tensor, radius float64) (*tensors.Tensor, error) {
	nearest, err := NearestEdges(source, target).Done()
	if err != nil {
		return nil, errors.WithMessage(err, "computing nearest-neighbor edges")
	}

	radiusEdges, err := RadiusEdges(source, target, radius).Done()
	if err != nil {
		// A radius small enough to miss every pair still leaves the
		// nearest-neighbor edges as a valid (if sparse) graph.
		radiusEdges = nil
	}

	var inputs []*tensors.Tensor
	inputs = append(inputs, nearest)
	if radiusEdges != nil {
		inputs = append(inputs, radiusEdges)
	}
	merged, err := graph.UnionEdges(inputs...)
	if err != nil {
		return nil, errors.WithMessage(err, "merging nearest-neighbor and radius edges")
	}
	if err := graph.SortEdgesBySource(merged); err != nil {
		return nil, errors.WithMessage(err, "sorting merged edges")
	}
	return merged, nil
}
