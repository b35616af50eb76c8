package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Basis returns the orthonormal rotation whose +Z column points from target
// to eye. Degenerate inputs fall back instead of producing NaNs: a zero-length
// direction becomes +Z, and a direction parallel to up is nudged by 1e-4 so
// the cross product is defined.
func Basis(eye, target, up mgl64.Vec3) mgl64.Mat4 {
	z := eye.Sub(target)
	if z.Dot(z) < Epsilon {
		z = Forward
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.Dot(x) < Epsilon {
		if math.Abs(up[2]) == 1 {
			z[0] += 1e-4
		} else {
			z[2] += 1e-4
		}
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	return mgl64.Mat4FromCols(x.Vec4(0), y.Vec4(0), z.Vec4(0), mgl64.Vec4{0, 0, 0, 1})
}

// ObjectLookAt orients an object at position so that its local +Z axis
// points toward target.
func ObjectLookAt(position, target, up mgl64.Vec3) mgl64.Mat4 {
	return Basis(target, position, up)
}

// ObjectTransform is the full instance matrix for an object placed at
// position and looking at target.
func ObjectTransform(position, target, up mgl64.Vec3) mgl64.Mat4 {
	return mgl64.Translate3D(position[0], position[1], position[2]).Mul4(ObjectLookAt(position, target, up))
}

// ForwardAxis extracts the local +Z axis of a transform in world space.
func ForwardAxis(m mgl64.Mat4) mgl64.Vec3 {
	return m.Col(2).Vec3().Normalize()
}
