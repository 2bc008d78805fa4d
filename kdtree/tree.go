package kdtree

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// DefaultBucketSize is a reasonable default for bucketSize, within the
// 8-16 range the design calls for.
const DefaultBucketSize = 10

// KDTree is a bucketed k-d tree over Dimension-dimensional float32
// points. The zero value is not usable; construct one with New.
type KDTree struct {
	dimension  int
	bucketSize int

	root *Node
	size int
}

// New creates an empty tree for the given dimension and bucket size.
// bucketSize should be in the 8-16 range; values below 1 are rejected.
func New(dimension, bucketSize int) (*KDTree, error) {
	if dimension <= 0 {
		return nil, errors.Errorf("kdtree: dimension must be positive, got %d", dimension)
	}
	if bucketSize < 1 {
		return nil, errors.Errorf("kdtree: bucketSize must be at least 1, got %d", bucketSize)
	}
	return &KDTree{dimension: dimension, bucketSize: bucketSize}, nil
}

// Dimension returns the tree's point dimensionality.
func (t *KDTree) Dimension() int {
	return t.dimension
}

// BucketSize returns the configured bucket size.
func (t *KDTree) BucketSize() int {
	return t.bucketSize
}

// Size returns the number of points currently stored in the tree.
func (t *KDTree) Size() int {
	return t.size
}

// Root returns the root node, or nil for an empty tree. The returned
// structure is read-only; see Node for the traversal surface it exposes
// to external adapters (package viz).
func (t *KDTree) Root() *Node {
	return t.root
}

// BoundingBox returns the tight bounding box of all points currently in
// the tree, encoded as [min0, max0, min1, max1, ...]. Returns nil for an
// empty tree.
func (t *KDTree) BoundingBox() []float32 {
	if t.root == nil {
		return nil
	}
	bbox := make([]float32, 2*t.dimension)
	for d := 0; d < t.dimension; d++ {
		bbox[2*d] = float32(math.Inf(1))
		bbox[2*d+1] = float32(math.Inf(-1))
	}
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.IsLeaf() {
			for d := 0; d < t.dimension; d++ {
				if n.leaf.min[d] < bbox[2*d] {
					bbox[2*d] = n.leaf.min[d]
				}
				if n.leaf.max[d] > bbox[2*d+1] {
					bbox[2*d+1] = n.leaf.max[d]
				}
			}
			return
		}
		walk(n.inner.left)
		walk(n.inner.right)
	}
	walk(t.root)
	return bbox
}

func (t *KDTree) String() string {
	if t == nil {
		return "nil KDTree"
	}
	return fmt.Sprintf("KDTree(dimension=%d, bucketSize=%d, size=%d)", t.dimension, t.bucketSize, t.size)
}
