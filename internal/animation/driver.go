// Package animation spins mirror balls with repeat-forever rotation tweens
// and drives one render per frame from its own ticker, independent of how
// many balls exist.
package animation

import (
	"math"

	"github.com/tanema/gween/ease"
)

// FrameFunc is called once per Update after every task advanced.
type FrameFunc func(dt float64)

// Driver owns the rotation tasks of a scene and its render ticker.
type Driver struct {
	rng     Rand
	easing  ease.TweenFunc
	tasks   []*Task
	onFrame FrameFunc
	frames  int
	stopped bool
}

// NewDriver returns a driver with no tasks. onFrame may be nil.
func NewDriver(rng Rand, onFrame FrameFunc) *Driver {
	return &Driver{rng: rng, easing: ease.Linear, onFrame: onFrame}
}

// SetEasing replaces the easing used by tasks added afterwards.
func (d *Driver) SetEasing(fn ease.TweenFunc) {
	if fn != nil {
		d.easing = fn
	}
}

// Add schedules a rotation task for target and returns its handle. It
// returns nil once the driver is stopped.
func (d *Driver) Add(target Spinner) *Task {
	if d.stopped {
		return nil
	}
	t := NewTask(target, d.rng, d.easing)
	d.tasks = append(d.tasks, t)
	return t
}

// Update advances every task by dt seconds, then ticks the renderer once.
func (d *Driver) Update(dt float64) {
	if d.stopped {
		return
	}
	if !(dt > 0) || math.IsInf(dt, 1) {
		dt = 0
	}
	for _, t := range d.tasks {
		t.Advance(dt)
	}
	d.frames++
	if d.onFrame != nil {
		d.onFrame(dt)
	}
}

// Stop cancels every task and the ticker. Further updates do nothing.
func (d *Driver) Stop() {
	for _, t := range d.tasks {
		t.Stop()
	}
	d.stopped = true
}

// Stopped reports whether Stop was called.
func (d *Driver) Stopped() bool {
	return d.stopped
}

// Tasks returns the scheduled tasks in insertion order.
func (d *Driver) Tasks() []*Task {
	return d.tasks
}

// Frames returns how many times the ticker fired.
func (d *Driver) Frames() int {
	return d.frames
}
