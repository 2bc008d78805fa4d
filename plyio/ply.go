package plyio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dprinc/kdforest/kdtree"
	"github.com/pkg/errors"
)

const (
	plyMagic       = "ply"
	plyFormatASCII = "format ascii 1.0"
)

// LoadPoints reads an ASCII PLY vertex block into points of the given
// dimension (2 or 3). For 2D data the file's third coordinate column is
// discarded; for 3D data all three are kept. Trailing per-point color
// columns, if present, populate Point.Color.
//
// A malformed or truncated file yields as many points as were
// successfully parsed before the error, together with a non-nil error.
func LoadPoints(path string, dimension int) ([]*kdtree.Point, error) {
	if dimension != 2 && dimension != 3 {
		return nil, errors.Errorf("plyio: dimension must be 2 or 3, got %d", dimension)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "plyio: opening %q", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	readLine := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	line, ok := readLine()
	if !ok || line != plyMagic {
		return nil, errors.Errorf("plyio: %q is not a PLY file", path)
	}
	line, ok = readLine()
	if !ok || line != plyFormatASCII {
		return nil, errors.Errorf("plyio: %q is not ASCII PLY 1.0", path)
	}

	numVertices := -1
	for {
		line, ok = readLine()
		if !ok {
			return nil, errors.Errorf("plyio: %q ended before end_header", path)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "element":
			if len(fields) >= 3 && fields[1] == "vertex" {
				n, err := strconv.Atoi(fields[2])
				if err != nil {
					return nil, errors.Wrapf(err, "plyio: parsing vertex count in %q", path)
				}
				numVertices = n
			}
		case "property":
			continue
		case "end_header":
			goto headerDone
		}
	}
headerDone:
	if numVertices < 0 {
		return nil, errors.Errorf("plyio: %q has no vertex element", path)
	}

	points := make([]*kdtree.Point, 0, numVertices)
	for i := 0; i < numVertices; i++ {
		line, ok = readLine()
		if !ok {
			return points, errors.Errorf("plyio: %q truncated after %d of %d vertices", path, i, numVertices)
		}
		fields := strings.Fields(line)
		minFields := dimension
		if len(fields) < minFields {
			return points, errors.Errorf("plyio: vertex line %d in %q has too few fields", i, path)
		}
		coords := make([]float32, dimension)
		for d := 0; d < dimension; d++ {
			v, err := strconv.ParseFloat(fields[d], 32)
			if err != nil {
				return points, errors.Wrapf(err, "plyio: parsing coordinate %d on vertex line %d in %q", d, i, path)
			}
			coords[d] = float32(v)
		}
		p := kdtree.NewPoint(coords)
		colorStart := dimension
		if dimension == 2 && len(fields) > colorStart {
			// A 2D file written by a 3D-capable writer still carries a
			// literal "0" z column before the color triplet.
			colorStart++
		}
		if len(fields) >= colorStart+3 {
			for c := 0; c < 3; c++ {
				v, err := strconv.Atoi(fields[colorStart+c])
				if err == nil && v >= 0 && v <= 255 {
					p.Color[c] = uint8(v)
				}
			}
		}
		points = append(points, p)
	}
	return points, nil
}

// SavePoints writes points as an ASCII PLY vertex block: one record per
// point with its coordinates (z written as 0 for 2D points) followed by
// its diffuse color. dimension must be 2 or 3.
func SavePoints(path string, points []*kdtree.Point, dimension int) error {
	if dimension != 2 && dimension != 3 {
		return errors.Errorf("plyio: dimension must be 2 or 3, got %d", dimension)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "plyio: creating %q", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	writeVertexHeader(w, len(points))
	if _, err := fmt.Fprint(w, "end_header\n"); err != nil {
		return errors.Wrapf(err, "plyio: writing %q", path)
	}
	for _, p := range points {
		writeVertexRecord(w, p, dimension)
	}
	return errors.Wrapf(w.Flush(), "plyio: writing %q", path)
}

// SaveLines writes points as an ASCII PLY file with both a vertex block
// and an edge block connecting consecutive pairs (points[2i], points[2i+1]).
// It is an error to pass an odd number of points.
func SaveLines(path string, points []*kdtree.Point, dimension int) error {
	if dimension != 2 && dimension != 3 {
		return errors.Errorf("plyio: dimension must be 2 or 3, got %d", dimension)
	}
	if len(points)%2 != 0 {
		return errors.Errorf("plyio: SaveLines requires an even number of points, got %d", len(points))
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "plyio: creating %q", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	writeVertexHeader(w, len(points))
	fmt.Fprintf(w, "element edge %d\n", len(points)/2)
	fmt.Fprint(w, "property int vertex1\nproperty int vertex2\n")
	fmt.Fprint(w, "property uchar diffuse_red\nproperty uchar diffuse_green\nproperty uchar diffuse_blue\n")
	fmt.Fprint(w, "end_header\n")
	for _, p := range points {
		writeVertexRecord(w, p, dimension)
	}
	for i := 0; i < len(points); i += 2 {
		fmt.Fprintf(w, "%d %d 255 255 255\n", i, i+1)
	}
	return errors.Wrapf(w.Flush(), "plyio: writing %q", path)
}

// SaveWindow writes the rectangle described by a 2D bounds array
// (min0, max0, min1, max1, in the kdtree.Construct bounds layout) as a
// closed 4-segment PLY line loop.
func SaveWindow(path string, bounds []float32) error {
	if len(bounds) != 4 {
		return errors.Errorf("plyio: SaveWindow requires a 2D bounds array of length 4, got %d", len(bounds))
	}
	minX, maxX, minY, maxY := bounds[0], bounds[1], bounds[2], bounds[3]
	corners := []*kdtree.Point{
		kdtree.NewPoint([]float32{minX, minY}),
		kdtree.NewPoint([]float32{minX, maxY}),
		kdtree.NewPoint([]float32{minX, maxY}),
		kdtree.NewPoint([]float32{maxX, maxY}),
		kdtree.NewPoint([]float32{maxX, maxY}),
		kdtree.NewPoint([]float32{maxX, minY}),
		kdtree.NewPoint([]float32{maxX, minY}),
		kdtree.NewPoint([]float32{minX, minY}),
	}
	return SaveLines(path, corners, 2)
}

func writeVertexHeader(w *bufio.Writer, n int) {
	fmt.Fprint(w, "ply\nformat ascii 1.0\n")
	fmt.Fprintf(w, "element vertex %d\n", n)
	fmt.Fprint(w, "property float x\nproperty float y\nproperty float z\n")
	fmt.Fprint(w, "property uchar diffuse_red\nproperty uchar diffuse_green\nproperty uchar diffuse_blue\n")
}

func writeVertexRecord(w *bufio.Writer, p *kdtree.Point, dimension int) {
	fmt.Fprintf(w, "%g %g", p.Coords[0], p.Coords[1])
	if dimension == 3 {
		fmt.Fprintf(w, " %g", p.Coords[2])
	} else {
		fmt.Fprint(w, " 0")
	}
	fmt.Fprintf(w, " %d %d %d\n", p.Color[0], p.Color[1], p.Color[2])
}
