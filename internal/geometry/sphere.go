package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Sphere builds an indexed UV sphere centred on the origin. The poles are
// collapsed to single triangles, so the first and last rings emit one
// triangle per segment instead of two.
func Sphere(radius float64, widthSegments, heightSegments int) (*Geometry, error) {
	if !positive(radius) {
		return nil, invalid("sphere", "radius %v must be positive", radius)
	}
	if widthSegments < 3 || heightSegments < 2 {
		return nil, invalid("sphere", "segments %dx%d too few", widthSegments, heightSegments)
	}

	g := &Geometry{}
	grid := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		theta := v * math.Pi
		grid[iy] = make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			ph := u * 2 * math.Pi
			p := mgl64.Vec3{
				-radius * math.Cos(ph) * math.Sin(theta),
				radius * math.Cos(theta),
				radius * math.Sin(ph) * math.Sin(theta),
			}
			grid[iy][ix] = uint32(len(g.Positions))
			g.Positions = append(g.Positions, p)
			g.Normals = append(g.Normals, p.Normalize())
		}
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g, nil
}
