package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RotX returns a 4×4 rotation matrix around the X axis. Angle in radians.
func RotX(a float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DX(a)
}

// RotY returns a 4×4 rotation matrix around the Y axis.
func RotY(a float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DY(a)
}

// RotZ returns a 4×4 rotation matrix around the Z axis.
func RotZ(a float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DZ(a)
}

// EulerXYZ builds R = Rx · Ry · Rz, the order a scene node applies its
// rotation in.
func EulerXYZ(r mgl64.Vec3) mgl64.Mat4 {
	return RotX(r[0]).Mul4(RotY(r[1])).Mul4(RotZ(r[2]))
}

// Compose returns T · R · S for a node's local transform.
func Compose(position, rotation, scale mgl64.Vec3) mgl64.Mat4 {
	t := mgl64.Translate3D(position[0], position[1], position[2])
	s := mgl64.Scale3D(scale[0], scale[1], scale[2])
	return t.Mul4(EulerXYZ(rotation)).Mul4(s)
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
