package geometry

import (
	"github.com/dprinc/kdforest/kdtree"
	"github.com/gomlx/gomlx/types/shapes"
	"github.com/gomlx/gomlx/types/tensors"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// RadiusEdgesConfig is created with RadiusEdges and once fully configured, can be executed
// with Done.
type RadiusEdgesConfig struct {
	source, target *tensors.Tensor
	radius         float64
}

// RadiusEdges returns edges connecting the source to target points that are within the given radius.
//
// This runs only in CPU -- no graphs or backends are used.
//
// Args:
//   - source: shaped [numSourcePoints, dimension], where the dimension is usually 2 or 3.
//     Only the Float32 data type is supported.
//   - target: shaped [numTargetPoints, dimension], where the dimension is usually 2 or 3 and must match the source
//     dimension. Same data type as source.
//   - radius: if L2(p_source, p_target) < radius, an edge is created.
//
// It returns a configuration with no further options. Call RadiusEdgesConfig.Done to perform
// the operation.
// It then returns a tensor "edges" with the shape [2][numEdges]Int32, where edge_i connects
// source point edges[0][i] to target point edges[1][i]. The number of edges (numEdges) varies with the
// points themselves, and if it is not limited, it may be as large as numSourcePoints * numTargetPoints.
//
// TODO: Add MaxNeighbors, batch support, reverting source/target if numTargetPoints >> numSourcePoints.
func RadiusEdges(source, target *tensors.Tensor, radius float64) *RadiusEdgesConfig {
	return &RadiusEdgesConfig{
		source: source,
		target: target,
		radius: radius,
	}
}

// Done performs the RadiusEdges operation as configured.
//
// It then returns a tensor "edges" with the shape [2][numEdges]Int32, where edge_i connects
// source point edges[0][i] to target point edges[1][i]. The number of edges (numEdges) varies with the
// points themselves, and if it is not limited, it may be as large as numSourcePoints * numTargetPoints.
//
// If no edges are found, it returns an error.
func (c *RadiusEdgesConfig) Done() (*tensors.Tensor, error) {
	source := c.source
	target := c.target
	if source.Shape().Rank() != 2 || target.Shape().Rank() != 2 {
		return nil, errors.Errorf("source (%s) and target (%s) must be rank 2: [numPoints, dimension]",
			source.Shape(), target.Shape())
	}
	dimension := source.Shape().Dimensions[1]
	if dimension != target.Shape().Dimensions[1] {
		return nil, errors.Errorf("dimension of the points (last axis) for source (%s) and target (%s) must match",
			source.Shape(), target.Shape())
	}
	if source.DType() != dtypes.Float32 || target.DType() != dtypes.Float32 {
		return nil, errors.Errorf("DType of the source (%s) and target (%s) must both be Float32",
			source.Shape(), target.Shape())
	}

	var edgesSource, edgesTarget []int32
	var err error
	tensors.ConstFlatData[float32](source, func(flatSource []float32) {
		tensors.ConstFlatData[float32](target, func(flatTarget []float32) {
			edgesSource, edgesTarget, err = radiusEdgesImpl(flatSource, flatTarget, dimension, float32(c.radius))
		})
	})
	if err != nil {
		return nil, err
	}
	numEdges := len(edgesSource)
	if len(edgesTarget) != numEdges {
		return nil, errors.Errorf("edges number of source indices (%d) different from the number of target indices (%d)!? something is wrong in the algorithm, or some cosmic ray hit the server",
			numEdges, len(edgesTarget))
	}
	if numEdges == 0 {
		return nil, errors.Errorf("no edges found with radius set to %g", c.radius)
	}
	edgesT := tensors.FromShape(shapes.Make(dtypes.Int32, 2, numEdges))
	tensors.MutableFlatData[int32](edgesT, func(flatEdges []int32) {
		copy(flatEdges[:numEdges], edgesSource)
		copy(flatEdges[numEdges:], edgesTarget)
	})
	return edgesT, nil
}

// radiusEdgesImpl builds a kd-tree over the target points and, for each
// source point, collects every target within radius via
// kdtree.CircularQuery's bounds-overlap-ball pruning.
func radiusEdgesImpl(source, target []float32, dimension int, radius float32) (edgesSource, edgesTarget []int32, err error) {
	targetPoints, index := buildIndexedPoints(target, dimension)
	tree, err := kdtree.New(dimension, edgeLeafSize)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "failed to create the target points' kd-tree")
	}
	if err := tree.Construct(targetPoints, nil); err != nil {
		return nil, nil, errors.WithMessage(err, "failed to construct the target points' kd-tree")
	}

	numSourcePoints := len(source) / dimension
	for i := range numSourcePoints {
		q := kdtree.NewPoint(source[i*dimension : (i+1)*dimension])
		for _, match := range tree.CircularQuery(q, radius) {
			edgesSource = append(edgesSource, int32(i))
			edgesTarget = append(edgesTarget, index[match])
		}
	}
	return edgesSource, edgesTarget, nil
}
