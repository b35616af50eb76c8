package raster

import "github.com/go-gl/mathgl/mgl64"

// MatcapUV maps a view-space normal to matcap texture coordinates. The
// basis is built from the direction toward the eye, so the lookup stays
// stable for surfaces away from the centre of the screen.
func MatcapUV(normal, viewPos mgl64.Vec3) (u, v float64) {
	viewDir := viewPos.Mul(-1).Normalize()
	x := mgl64.Vec3{viewDir[2], 0, -viewDir[0]}
	if x.Dot(x) < 1e-12 {
		x = mgl64.Vec3{1, 0, 0}
	}
	x = x.Normalize()
	y := viewDir.Cross(x)
	return x.Dot(normal)*0.495 + 0.5, y.Dot(normal)*0.495 + 0.5
}
