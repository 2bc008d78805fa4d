package kdtree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestKNearestNeighbors_MoreThanAvailableRequested covers a 5-point
// tree queried for more neighbors than it can supply: the result is
// every non-self point, sorted by ascending distance.
func TestKNearestNeighbors_MoreThanAvailableRequested(t *testing.T) {
	q := pt2(0, 0)
	others := []*Point{pt2(1, 0), pt2(0, 2), pt2(-3, 0), pt2(0, -4)}
	points := append([]*Point{q}, others...)

	tree, err := New(2, 2)
	require.NoError(t, err)
	require.NoError(t, tree.Construct(points, nil))

	knn := tree.KNearestNeighbors(q, 100)
	require.Len(t, knn, 4)
	require.True(t, samePointSet(knn, others))

	for i := 1; i < len(knn); i++ {
		require.LessOrEqual(t, squaredDistance(knn[i-1], q), squaredDistance(knn[i], q))
	}
}

// TestCircularQuery_MatchesBruteForce checks that for random q and r,
// CircularQuery returns exactly the set of points strictly within
// radius r of q, excluding the query itself.
func TestCircularQuery_MatchesBruteForce(t *testing.T) {
	points := randomPoints(500, 3, 11)
	tree, err := New(3, DefaultBucketSize)
	require.NoError(t, err)
	require.NoError(t, tree.Construct(points, nil))

	queries := randomPoints(20, 3, 12)
	radii := []float32{5, 15, 40, 90}
	for _, q := range queries {
		for _, r := range radii {
			got := tree.CircularQuery(q, r)
			want := bruteForceRadius(points, q, r)
			require.True(t, samePointSet(got, want),
				"radius query mismatch for q=%v r=%v: got %d points, want %d", q.Coords, r, len(got), len(want))
		}
	}
}

// TestCircularQuery_SelfInTreeMatchesBruteForce draws queries from the
// tree's own points, so self-exclusion is actually exercised.
func TestCircularQuery_SelfInTreeMatchesBruteForce(t *testing.T) {
	points := randomPoints(300, 2, 21)
	tree, err := New(2, DefaultBucketSize)
	require.NoError(t, err)
	require.NoError(t, tree.Construct(points, nil))

	for i, q := range points {
		if i%17 != 0 {
			continue
		}
		for _, r := range []float32{3, 10, 25} {
			got := tree.CircularQuery(q, r)
			want := bruteForceRadius(points, q, r)
			require.True(t, samePointSet(got, want))
		}
	}
}

// TestKNearestNeighbors_MatchesBruteForce checks that kNN returns the
// k closest points to q, excluding q, sorted ascending, matching a
// brute-force cross-check.
func TestKNearestNeighbors_MatchesBruteForce(t *testing.T) {
	points := randomPoints(400, 4, 33)
	tree, err := New(4, DefaultBucketSize)
	require.NoError(t, err)
	require.NoError(t, tree.Construct(points, nil))

	queries := randomPoints(15, 4, 34)
	for _, q := range queries {
		for _, k := range []int{1, 3, 10} {
			got := tree.KNearestNeighbors(q, k)
			want := bruteForceKNN(points, q, k)
			require.Len(t, got, len(want))
			for i := range got {
				require.InDelta(t, squaredDistance(want[i], q), squaredDistance(got[i], q), 1e-2)
			}
		}
	}
}

// TestKNearestNeighbors_DuplicatePoints covers the degenerate case
// where 19 stored points besides q itself coincide with q (a single
// other point sits at (1,1)), so the nearest-neighbor
// seed distance is 0 and the expanding-radius search must still
// recover the other k points rather than stalling.
func TestKNearestNeighbors_DuplicatePoints(t *testing.T) {
	origin := pt2(0, 0)
	points := []*Point{origin}
	for i := 0; i < 19; i++ {
		points = append(points, pt2(0, 0))
	}
	points = append(points, pt2(1, 1))

	tree, err := New(2, 4)
	require.NoError(t, err)
	require.NoError(t, tree.Construct(points, nil))

	knn := tree.KNearestNeighbors(origin, 19)
	require.Len(t, knn, 19)
	for _, p := range knn {
		require.NotSame(t, origin, p)
		require.Equal(t, float32(0), squaredDistance(p, origin))
	}
}

func TestCircularQuery_EmptyTree(t *testing.T) {
	tree, err := New(2, DefaultBucketSize)
	require.NoError(t, err)
	require.Empty(t, tree.CircularQuery(pt2(0, 0), 5))
}

func TestCircularQuery_NonPositiveRadius(t *testing.T) {
	tree, err := New(2, DefaultBucketSize)
	require.NoError(t, err)
	require.NoError(t, tree.Construct([]*Point{pt2(0, 0), pt2(1, 1)}, nil))
	require.Empty(t, tree.CircularQuery(pt2(0, 0), 0))
	require.Empty(t, tree.CircularQuery(pt2(0, 0), -1))
}

func TestKNearestNeighbors_EmptyTree(t *testing.T) {
	tree, err := New(2, DefaultBucketSize)
	require.NoError(t, err)
	require.Nil(t, tree.KNearestNeighbors(pt2(0, 0), 5))
}

func TestKNearestNeighbors_NonPositiveK(t *testing.T) {
	tree, err := New(2, DefaultBucketSize)
	require.NoError(t, err)
	require.NoError(t, tree.Construct([]*Point{pt2(0, 0), pt2(1, 1)}, nil))
	require.Nil(t, tree.KNearestNeighbors(pt2(0, 0), 0))
	require.Nil(t, tree.KNearestNeighbors(pt2(0, 0), -3))
}

func TestNearestNeighbor_EmptyTree(t *testing.T) {
	tree, err := New(2, DefaultBucketSize)
	require.NoError(t, err)
	require.Nil(t, tree.NearestNeighbor(pt2(0, 0)))
}

func TestNearestNeighbor_SoleStoredPointIsItself(t *testing.T) {
	tree, err := New(2, DefaultBucketSize)
	require.NoError(t, err)
	p := pt2(0, 0)
	require.NoError(t, tree.Insert(p))
	require.Nil(t, tree.NearestNeighbor(p))
}
