package animation

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"mirror-balls/internal/mathutil"
)

const (
	// MinDuration and DurationSpread bound a cycle's length to
	// [MinDuration, MinDuration+DurationSpread) seconds.
	MinDuration    = 4.0
	DurationSpread = 4.0

	// maxCatchUp bounds how much time one Advance simulates. Longer deltas
	// are reduced modulo the longest cycle; whole turns leave the angle where
	// they found it.
	maxCatchUp = 16 * (MinDuration + DurationSpread)
)

// Rand is the random source a task draws durations and directions from.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

// Spinner is anything with a Y rotation to drive.
type Spinner interface {
	RotationY() float64
	SetRotationY(float64)
}

// Cycle is one full turn of a task.
type Cycle struct {
	Duration  float64 // seconds
	Direction float64 // +1 or -1
	From      float64
	To        float64
}

// Task spins one target forever, one full turn per cycle. Every cycle draws
// a new duration and direction.
type Task struct {
	target  Spinner
	rng     Rand
	easing  ease.TweenFunc
	tween   *gween.Tween
	cycle   Cycle
	elapsed float64 // seconds into cycle
	cycles  int
	stopped bool
}

// NewTask starts the first cycle from the target's current angle.
func NewTask(target Spinner, rng Rand, easing ease.TweenFunc) *Task {
	if easing == nil {
		easing = ease.Linear
	}
	t := &Task{target: target, rng: rng, easing: easing}
	t.startCycle()
	return t
}

func (t *Task) startCycle() {
	from := mathutil.WrapAngle(t.target.RotationY())
	duration := MinDuration + clampUnit(t.rng.Float64())*DurationSpread
	direction := 1.0
	if t.rng.Float64() > 0.5 {
		direction = -1
	}
	t.cycle = Cycle{
		Duration:  duration,
		Direction: direction,
		From:      from,
		To:        from + direction*mathutil.TwoPi,
	}
	// The tween runs over normalised progress; the angle is interpolated
	// in float64 below.
	t.tween = gween.New(0, 1, float32(duration), t.easing)
	t.elapsed = 0
	t.target.SetRotationY(from)
}

// Advance moves the task forward by dt seconds. Time left over at the end
// of a cycle carries into the next one.
func (t *Task) Advance(dt float64) {
	if t.stopped || !(dt > 0) || math.IsInf(dt, 1) {
		return
	}
	if dt > maxCatchUp {
		dt = math.Mod(dt, MinDuration+DurationSpread)
	}
	for !t.stopped && dt > 0 {
		remaining := t.cycle.Duration - t.elapsed
		if dt < remaining {
			t.elapsed += dt
			progress, _ := t.tween.Set(float32(t.elapsed))
			t.target.SetRotationY(t.cycle.From + (t.cycle.To-t.cycle.From)*float64(progress))
			return
		}
		dt -= remaining
		t.target.SetRotationY(t.cycle.To)
		t.cycles++
		t.startCycle()
	}
}

// Stop cancels the task. The target keeps its current angle.
func (t *Task) Stop() {
	t.stopped = true
}

// Stopped reports whether Stop was called.
func (t *Task) Stopped() bool {
	return t.stopped
}

// Cycle returns the cycle in progress.
func (t *Task) Cycle() Cycle {
	return t.cycle
}

// Cycles returns how many cycles have completed.
func (t *Task) Cycles() int {
	return t.cycles
}

func clampUnit(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x >= 1 {
		return math.Nextafter(1, 0)
	}
	return x
}
