package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	phi = (1 + math.Sqrt(5)) / 2

	icosahedronVertices = []mgl64.Vec3{
		{-1, phi, 0}, {1, phi, 0}, {-1, -phi, 0}, {1, -phi, 0},
		{0, -1, phi}, {0, 1, phi}, {0, -1, -phi}, {0, 1, -phi},
		{phi, 0, -1}, {phi, 0, 1}, {-phi, 0, -1}, {-phi, 0, 1},
	}

	icosahedronFaces = [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
)

// Icosahedron returns the surface of an icosahedron of the given radius with
// each face split into (detail+1)² triangles, every vertex pushed out onto
// the sphere. The result is a non-indexed triangle soup with outward normals;
// shared vertices appear once per triangle that uses them.
func Icosahedron(radius float64, detail int) (*Geometry, error) {
	if !positive(radius) {
		return nil, invalid("icosahedron", "radius %v must be positive", radius)
	}
	if detail < 0 {
		return nil, invalid("icosahedron", "detail %d must not be negative", detail)
	}

	cols := detail + 1
	g := &Geometry{
		Positions: make([]mgl64.Vec3, 0, len(icosahedronFaces)*cols*cols*3),
	}

	for _, f := range icosahedronFaces {
		subdivideFace(g, icosahedronVertices[f[0]], icosahedronVertices[f[1]], icosahedronVertices[f[2]], cols)
	}

	g.Normals = make([]mgl64.Vec3, len(g.Positions))
	for i, p := range g.Positions {
		n := p.Normalize()
		g.Normals[i] = n
		g.Positions[i] = n.Mul(radius)
	}
	return g, nil
}

// subdivideFace lays a triangular grid of cols divisions per edge over the
// face a-b-c and appends its triangles, preserving the face winding.
func subdivideFace(g *Geometry, a, b, c mgl64.Vec3, cols int) {
	grid := make([][]mgl64.Vec3, cols+1)
	for i := 0; i <= cols; i++ {
		t := float64(i) / float64(cols)
		aj := lerp(a, c, t)
		bj := lerp(b, c, t)
		rows := cols - i
		grid[i] = make([]mgl64.Vec3, rows+1)
		for j := 0; j <= rows; j++ {
			if j == 0 && i == cols {
				grid[i][j] = aj
			} else {
				grid[i][j] = lerp(aj, bj, float64(j)/float64(rows))
			}
		}
	}

	for i := 0; i < cols; i++ {
		for j := 0; j < 2*(cols-i)-1; j++ {
			k := j / 2
			if j%2 == 0 {
				g.Positions = append(g.Positions, grid[i][k+1], grid[i+1][k], grid[i][k])
			} else {
				g.Positions = append(g.Positions, grid[i][k+1], grid[i+1][k+1], grid[i+1][k])
			}
		}
	}
}

func lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// UniqueVertices returns the deduplicated vertex positions of a subdivided
// icosahedron, the points mirror tiles are placed on.
func UniqueVertices(radius float64, detail int) ([]mgl64.Vec3, error) {
	g, err := Icosahedron(radius, detail)
	if err != nil {
		return nil, err
	}
	return MergeVertices(g.Positions, DefaultMergeTolerance), nil
}
