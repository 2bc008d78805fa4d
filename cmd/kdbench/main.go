// Command kdbench builds a kd-tree over a generated point cloud and
// times nearest-neighbor, k-nearest-neighbors, and radius queries
// against it, in the spirit of the original repository's main.cpp
// benchmark harness.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dprinc/kdforest/kdtree"
	"github.com/dprinc/kdforest/sampling"
	"github.com/dprinc/kdforest/viz"
	"github.com/dustin/go-humanize"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "kdbench:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("kdbench", flag.ContinueOnError)
	numPoints := fs.Int("points", 100_000, "number of points to generate")
	dimension := fs.Int("dim", 3, "point dimension")
	bucketSize := fs.Int("bucket", kdtree.DefaultBucketSize, "maximum points per leaf bucket")
	numQueries := fs.Int("queries", 1000, "number of nearest-neighbor/kNN/radius queries to run")
	k := fs.Int("k", 10, "k for k-nearest-neighbors queries")
	radius := fs.Float64("radius", 1.0, "radius for circular-range queries")
	seed := fs.Int64("seed", 1, "random seed for point generation and query sampling")
	gaussian := fs.Bool("gaussian", false, "sample points from a Gaussian distribution instead of uniform")
	dumpPrefix := fs.String("dump", "", "if set, writes <prefix>points.ply and <prefix>lines.ply for a 2D tree")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *dimension <= 0 {
		return fmt.Errorf("-dim must be positive")
	}
	if *numPoints <= 0 {
		return fmt.Errorf("-points must be positive")
	}

	bounds := make([]float32, 2*(*dimension))
	for d := 0; d < *dimension; d++ {
		bounds[2*d], bounds[2*d+1] = 0, 100
	}

	gen := sampling.New(*seed)
	var points []*kdtree.Point
	var err error
	if *gaussian {
		points, err = gen.Gaussian(*numPoints, bounds, 0.2)
	} else {
		points, err = gen.Uniform(*numPoints, bounds)
	}
	if err != nil {
		return fmt.Errorf("generating points: %w", err)
	}
	fmt.Printf("generated %s points in %d dimensions\n", humanize.Comma(int64(len(points))), *dimension)

	tree, err := kdtree.New(*dimension, *bucketSize)
	if err != nil {
		return fmt.Errorf("creating tree: %w", err)
	}

	start := time.Now()
	if err := tree.Construct(points, bounds); err != nil {
		return fmt.Errorf("constructing tree: %w", err)
	}
	fmt.Printf("construct:        %s points in %s\n", humanize.Comma(int64(tree.Size())), time.Since(start))

	queries, err := gen.Uniform(*numQueries, bounds)
	if err != nil {
		return fmt.Errorf("generating queries: %w", err)
	}

	start = time.Now()
	for _, q := range queries {
		tree.NearestNeighbor(q)
	}
	fmt.Printf("nearestNeighbor:  %s queries in %s (%s/query)\n",
		humanize.Comma(int64(len(queries))), time.Since(start), time.Since(start)/time.Duration(len(queries)))

	start = time.Now()
	var knnTotal int
	for _, q := range queries {
		knnTotal += len(tree.KNearestNeighbors(q, *k))
	}
	fmt.Printf("kNearestNeighbors(k=%d): %s queries in %s, %s results total\n",
		*k, humanize.Comma(int64(len(queries))), time.Since(start), humanize.Comma(int64(knnTotal)))

	start = time.Now()
	var radiusTotal int
	for _, q := range queries {
		radiusTotal += len(tree.CircularQuery(q, float32(*radius)))
	}
	fmt.Printf("circularQuery(r=%g): %s queries in %s, %s results total\n",
		*radius, humanize.Comma(int64(len(queries))), time.Since(start), humanize.Comma(int64(radiusTotal)))

	if *dumpPrefix != "" {
		if err := viz.DumpTree(tree, bounds, *dumpPrefix, true); err != nil {
			return fmt.Errorf("dumping tree: %w", err)
		}
		fmt.Printf("wrote %spoints.ply", *dumpPrefix)
		if *dimension == 2 {
			fmt.Printf(" and %slines.ply", *dumpPrefix)
		}
		fmt.Println()
	}

	return nil
}
