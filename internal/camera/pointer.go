package camera

// Pointer is the mouse state sampled once per frame.
type Pointer struct {
	X, Y        int
	Left, Right bool // buttons held
	WheelY      float64
}

// Drag turns per-frame pointer samples into orbit input: left drag
// rotates, right drag pans, the wheel zooms.
type Drag struct {
	orbit        *Orbit
	active       bool
	lastX, lastY int
}

// NewDrag returns a drag tracker feeding o.
func NewDrag(o *Orbit) *Drag {
	return &Drag{orbit: o}
}

// Apply feeds one sample taken in a viewport of height pixels.
func (d *Drag) Apply(p Pointer, height float64) {
	if p.WheelY != 0 {
		d.orbit.Zoom(p.WheelY)
	}

	if !p.Left && !p.Right {
		if d.active {
			d.active = false
			d.orbit.SetInteracting(false)
		}
		return
	}

	if !d.active {
		d.active = true
		d.lastX, d.lastY = p.X, p.Y
		d.orbit.SetInteracting(true)
		return
	}

	dx := float64(p.X - d.lastX)
	dy := float64(p.Y - d.lastY)
	d.lastX, d.lastY = p.X, p.Y
	if dx == 0 && dy == 0 {
		return
	}
	if p.Left {
		d.orbit.Rotate(dx, dy, height)
	} else {
		d.orbit.Pan(dx, dy, height)
	}
}

// Dragging reports whether a button is held.
func (d *Drag) Dragging() bool {
	return d.active
}
