package geometry

import (
	"github.com/dprinc/kdforest/kdtree"
	"github.com/gomlx/gomlx/types/shapes"
	"github.com/gomlx/gomlx/types/tensors"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// edgeLeafSize bounds bucket occupancy for the kd-trees built internally
// by NearestEdges and RadiusEdges.
const edgeLeafSize = 16

// NearestEdgesConfig is created with NearestEdges and once fully configured, can be executed
// with Done.
type NearestEdgesConfig struct {
	source, target *tensors.Tensor
}

// NearestEdges returns edges connecting each source point to its closest target point.
//
// This runs only on CPU -- no graphs or backends are used.
//
// Args:
//   - source: shaped [numSourcePoints, dimension], where the dimension is usually 2 or 3.
//     Only the Float32 data type is supported.
//   - target: shaped [numTargetPoints, dimension], where the dimension must match the source
//     dimension. Same data type as source.
//
// It returns a configuration with no further options. Call NearestEdgesConfig.Done to perform
// the operation.
// It then returns a tensor "edges" with the shape [2, numSourcePoints]Int32, where edge_i connects
// source point edges[0][i] to target point edges[1][i].
func NearestEdges(source, target *tensors.Tensor) *NearestEdgesConfig {
	return &NearestEdgesConfig{
		source: source,
		target: target,
	}
}

// Done performs the NearestEdges operation as configured.
//
// It returns a tensor "edges" with the shape [2, numSourcePoints]Int32, where edge_i connects
// source point i to its closest target point.
//
// It is an error if there are no target points.
func (c *NearestEdgesConfig) Done() (*tensors.Tensor, error) {
	source := c.source
	target := c.target
	if source == nil || target == nil || source.Size() == 0 || target.Size() == 0 {
		return nil, errors.Errorf("nearest edges source(%s) or target(%s) are empty",
			source.Shape(), target.Shape())
	}
	if source.Shape().Rank() != 2 || target.Shape().Rank() != 2 {
		return nil, errors.Errorf("source (%s) and target (%s) must be rank 2: [numPoints, dimension]",
			source.Shape(), target.Shape())
	}
	dimension := source.Shape().Dimensions[1]
	if dimension != target.Shape().Dimensions[1] {
		return nil, errors.Errorf("dimension of the points (last axis) for source (%s) and target (%s) must match",
			source.Shape(), target.Shape())
	}
	if target.Shape().Dimensions[0] == 0 {
		return nil, errors.Errorf("target tensor cannot be empty")
	}
	if source.DType() != dtypes.Float32 || target.DType() != dtypes.Float32 {
		return nil, errors.Errorf("DType of the source (%s) and target (%s) must both be Float32",
			source.Shape(), target.Shape())
	}

	var edgesSource, edgesTarget []int32
	var err error
	tensors.ConstFlatData[float32](source, func(flatSource []float32) {
		tensors.ConstFlatData[float32](target, func(flatTarget []float32) {
			edgesSource, edgesTarget, err = nearestEdgesImpl(flatSource, flatTarget, dimension)
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
	if numEdges != source.Shape().Dimensions[0] {
		return nil, errors.Errorf("number of edges (%d) != number of source points (%d)!? something is wrong in the algorithm, or some cosmic ray hit the server",
			numEdges, source.Shape().Dimensions[0])
	}

	edgesT := tensors.FromShape(shapes.Make(dtypes.Int32, 2, numEdges))
	tensors.MutableFlatData[int32](edgesT, func(flatEdges []int32) {
		copy(flatEdges[:numEdges], edgesSource)
		copy(flatEdges[numEdges:], edgesTarget)
	})
	return edgesT, nil
}

// nearestEdgesImpl builds a kd-tree over the target points and, for each
// source point, looks up its nearest target via kdtree.NearestNeighbor.
func nearestEdgesImpl(source, target []float32, dimension int) (edgesSource, edgesTarget []int32, err error) {
	targetPoints, index := buildIndexedPoints(target, dimension)
	tree, err := kdtree.New(dimension, edgeLeafSize)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "failed to create the target points' kd-tree")
	}
	if err := tree.Construct(targetPoints, nil); err != nil {
		return nil, nil, errors.WithMessage(err, "failed to construct the target points' kd-tree")
	}

	numSourcePoints := len(source) / dimension
	edgesSource = make([]int32, numSourcePoints)
	edgesTarget = make([]int32, numSourcePoints)

	for i := range numSourcePoints {
		q := kdtree.NewPoint(source[i*dimension : (i+1)*dimension])
		nearest := tree.NearestNeighbor(q)
		if nearest == nil {
			return nil, nil, errors.Errorf("no nearest target point found for source point %d", i)
		}
		edgesSource[i] = int32(i)
		edgesTarget[i] = index[nearest]
	}

	return edgesSource, edgesTarget, nil
}
