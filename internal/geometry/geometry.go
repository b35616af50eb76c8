// Package geometry builds the vertex data the mirror balls are made of:
// subdivided icosahedra for tile placement, a low-poly UV sphere for the ball
// body and a single quad used as the tile template.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidParameter is wrapped by every ConstructionError caused by bad input.
var ErrInvalidParameter = errors.New("invalid parameter")

// ConstructionError reports a geometry that cannot be built. It means the
// caller and the geometry library disagree about valid parameters, so it is
// treated as fatal.
type ConstructionError struct {
	What string
	Err  error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("geometry: build %s: %v", e.What, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

func invalid(what, format string, args ...any) error {
	return &ConstructionError{
		What: what,
		Err:  fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...)),
	}
}

// positive reports whether v is a usable length: finite and above zero.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Geometry is a triangle mesh. When Indices is nil the positions are read as
// a triangle soup, three per triangle.
type Geometry struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	Indices   []uint32
}

// TriangleCount returns the number of triangles in the mesh.
func (g *Geometry) TriangleCount() int {
	if g.Indices != nil {
		return len(g.Indices) / 3
	}
	return len(g.Positions) / 3
}

// Triangle returns the vertex indices of triangle i.
func (g *Geometry) Triangle(i int) (a, b, c int) {
	if g.Indices != nil {
		return int(g.Indices[i*3]), int(g.Indices[i*3+1]), int(g.Indices[i*3+2])
	}
	return i * 3, i*3 + 1, i*3 + 2
}

// VertexCount returns the number of stored vertices, duplicates included.
func (g *Geometry) VertexCount() int {
	return len(g.Positions)
}
