// Package camera holds the perspective camera and the damped orbit controls
// that move it around a target.
package camera

import (
	"github.com/go-gl/mathgl/mgl64"

	"mirror-balls/internal/mathutil"
)

// Perspective is a right-handed camera looking down its local -Z axis.
type Perspective struct {
	FovY     float64 // degrees
	Aspect   float64
	Near     float64
	Far      float64
	Position mgl64.Vec3
	Up       mgl64.Vec3

	orientation mgl64.Mat4
	projection  mgl64.Mat4
}

// NewPerspective returns a camera at the origin facing -Z.
func NewPerspective(fovY, aspect, near, far float64) *Perspective {
	c := &Perspective{
		FovY:        fovY,
		Aspect:      aspect,
		Near:        near,
		Far:         far,
		Up:          mathutil.WorldUp,
		orientation: mgl64.Ident4(),
	}
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix must be called after changing FovY, Aspect, Near
// or Far.
func (c *Perspective) UpdateProjectionMatrix() {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	c.projection = mgl64.Perspective(mathutil.Deg2Rad(c.FovY), aspect, c.Near, c.Far)
}

// LookAt turns the camera toward target.
func (c *Perspective) LookAt(target mgl64.Vec3) {
	c.orientation = mathutil.Basis(c.Position, target, c.Up)
}

// Projection returns the clip-space projection matrix.
func (c *Perspective) Projection() mgl64.Mat4 {
	return c.projection
}

// View returns the world-to-camera matrix.
func (c *Perspective) View() mgl64.Mat4 {
	world := mgl64.Translate3D(c.Position[0], c.Position[1], c.Position[2]).Mul4(c.orientation)
	return world.Inv()
}

// Axis returns column i (0 right, 1 up, 2 backward) of the camera's
// world orientation.
func (c *Perspective) Axis(i int) mgl64.Vec3 {
	return c.orientation.Col(i).Vec3()
}

// Snapshot returns an independent copy, used to hand a frozen camera to a
// renderer on another goroutine.
func (c *Perspective) Snapshot() *Perspective {
	cp := *c
	return &cp
}
