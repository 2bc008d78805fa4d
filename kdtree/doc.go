// Package kdtree implements a bucketed k-d tree over d-dimensional
// float32 points: sliding-midpoint construction, split-on-overflow
// insertion, and exact nearest-neighbor, k-nearest-neighbors and
// fixed-radius queries driven by bounds-overlap-ball pruning.
//
// The tree owns its internal Inner/Leaf structure; it borrows points by
// reference from caller-owned storage, which must outlive the tree and
// must not be reallocated in place.
//
// Construction and insertion mutate the tree and must not run
// concurrently with queries or with each other. Concurrent read-only
// queries are safe as long as no mutation is in flight.
package kdtree
