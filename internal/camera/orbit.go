package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const polarEpsilon = 1e-6

// Orbit keeps a camera on a sphere around Target. User input accumulates as
// deltas; Update applies them, optionally damped, and re-aims the camera.
type Orbit struct {
	Camera *Perspective
	Target mgl64.Vec3

	EnableRotate bool
	EnableZoom   bool
	EnablePan    bool

	EnableDamping bool
	DampingFactor float64

	AutoRotate      bool
	AutoRotateSpeed float64 // 2.0 is one turn per 30 s at 60 updates/s

	RotateSpeed float64
	ZoomSpeed   float64
	PanSpeed    float64

	MinDistance, MaxDistance     float64
	MinPolarAngle, MaxPolarAngle float64

	deltaTheta  float64
	deltaPhi    float64
	scale       float64
	panOffset   mgl64.Vec3
	interacting bool
}

// NewOrbit returns controls with free rotation and no damping.
func NewOrbit(cam *Perspective) *Orbit {
	return &Orbit{
		Camera:          cam,
		EnableRotate:    true,
		EnableZoom:      true,
		EnablePan:       true,
		DampingFactor:   0.05,
		AutoRotateSpeed: 2,
		RotateSpeed:     1,
		ZoomSpeed:       1,
		PanSpeed:        1,
		MaxDistance:     math.Inf(1),
		MaxPolarAngle:   math.Pi,
		scale:           1,
	}
}

// SetInteracting pauses auto-rotation while the user drags.
func (o *Orbit) SetInteracting(on bool) {
	o.interacting = on
}

// Rotate handles a drag of (dx, dy) pixels in a viewport of height pixels.
func (o *Orbit) Rotate(dx, dy, height float64) {
	if !o.EnableRotate || height <= 0 {
		return
	}
	o.rotateLeft(2 * math.Pi * dx * o.RotateSpeed / height)
	o.rotateUp(2 * math.Pi * dy * o.RotateSpeed / height)
}

// Zoom handles a wheel step; positive steps move the camera closer.
func (o *Orbit) Zoom(steps float64) {
	if !o.EnableZoom || steps == 0 {
		return
	}
	o.scale *= math.Pow(o.zoomScale(), steps)
}

// Pan moves the target by a drag of (dx, dy) pixels in screen space.
func (o *Orbit) Pan(dx, dy, height float64) {
	if !o.EnablePan || height <= 0 {
		return
	}
	offset := o.Camera.Position.Sub(o.Target)
	dist := offset.Len() * math.Tan(o.Camera.FovY/2*math.Pi/180)

	left := o.Camera.Axis(0).Mul(-2 * dx * o.PanSpeed * dist / height)
	up := o.Camera.Axis(1).Mul(2 * dy * o.PanSpeed * dist / height)
	o.panOffset = o.panOffset.Add(left).Add(up)
}

// Update applies pending input and auto-rotation, then re-aims the camera.
// It must be called once per frame when damping is enabled.
func (o *Orbit) Update() {
	offset := o.Camera.Position.Sub(o.Target)

	radius := offset.Len()
	var theta, phi float64
	if radius > 0 {
		theta = math.Atan2(offset[0], offset[2])
		phi = math.Acos(clamp(offset[1]/radius, -1, 1))
	}

	if o.AutoRotate && !o.interacting {
		o.rotateLeft(o.autoRotationAngle())
	}

	if o.EnableDamping {
		theta += o.deltaTheta * o.DampingFactor
		phi += o.deltaPhi * o.DampingFactor
	} else {
		theta += o.deltaTheta
		phi += o.deltaPhi
	}

	phi = clamp(phi, o.MinPolarAngle, o.MaxPolarAngle)
	phi = clamp(phi, polarEpsilon, math.Pi-polarEpsilon)

	radius = clamp(radius*o.scale, o.MinDistance, o.MaxDistance)

	if o.EnableDamping {
		o.Target = o.Target.Add(o.panOffset.Mul(o.DampingFactor))
	} else {
		o.Target = o.Target.Add(o.panOffset)
	}

	sinPhi := math.Sin(phi) * radius
	offset = mgl64.Vec3{sinPhi * math.Sin(theta), math.Cos(phi) * radius, sinPhi * math.Cos(theta)}
	o.Camera.Position = o.Target.Add(offset)
	o.Camera.LookAt(o.Target)

	if o.EnableDamping {
		o.deltaTheta *= 1 - o.DampingFactor
		o.deltaPhi *= 1 - o.DampingFactor
		o.panOffset = o.panOffset.Mul(1 - o.DampingFactor)
	} else {
		o.deltaTheta, o.deltaPhi = 0, 0
		o.panOffset = mgl64.Vec3{}
	}
	o.scale = 1
}

// PolarAngle returns the camera's current angle from the +Y axis.
func (o *Orbit) PolarAngle() float64 {
	offset := o.Camera.Position.Sub(o.Target)
	r := offset.Len()
	if r == 0 {
		return 0
	}
	return math.Acos(clamp(offset[1]/r, -1, 1))
}

// Distance returns the camera's distance from the target.
func (o *Orbit) Distance() float64 {
	return o.Camera.Position.Sub(o.Target).Len()
}

func (o *Orbit) rotateLeft(a float64) { o.deltaTheta -= a }
func (o *Orbit) rotateUp(a float64)   { o.deltaPhi -= a }

func (o *Orbit) autoRotationAngle() float64 {
	return 2 * math.Pi / 60 / 60 * o.AutoRotateSpeed
}

func (o *Orbit) zoomScale() float64 {
	return math.Pow(0.95, o.ZoomSpeed)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
