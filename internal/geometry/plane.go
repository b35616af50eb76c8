package geometry

import "github.com/go-gl/mathgl/mgl64"

// Plane builds a single quad of the given size in the XY plane. Its front
// face (counter-clockwise winding) looks down +Z.
func Plane(width, height float64) (*Geometry, error) {
	if !positive(width) || !positive(height) {
		return nil, invalid("plane", "size %vx%v must be positive", width, height)
	}
	hw, hh := width/2, height/2
	n := mgl64.Vec3{0, 0, 1}
	return &Geometry{
		Positions: []mgl64.Vec3{
			{-hw, hh, 0}, {hw, hh, 0},
			{-hw, -hh, 0}, {hw, -hh, 0},
		},
		Normals: []mgl64.Vec3{n, n, n, n},
		Indices: []uint32{0, 2, 1, 2, 3, 1},
	}, nil
}
