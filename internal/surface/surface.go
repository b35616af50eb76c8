// Package surface owns a complete mirror-ball scene: camera, orbit
// controls, renderer, balls and their animation. Surfaces share nothing,
// so several can run side by side.
package surface

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"mirror-balls/internal/animation"
	"mirror-balls/internal/camera"
	"mirror-balls/internal/mirrorball"
	"mirror-balls/internal/raster"
	"mirror-balls/internal/scene"
)

const (
	DefaultBalls = 6

	FieldOfView    = 45.0
	Near           = 0.1
	Far            = 100.0
	CameraDistance = 25.0

	// Balls get a radius in [MinRadius, MinRadius+RadiusSpread) and a
	// position in [-Spread, Spread] on every axis.
	MinRadius    = 1.0
	RadiusSpread = 1.0
	Spread       = 6.0

	MinPolarAngle = 0.35 * math.Pi
	MaxPolarAngle = 0.65 * math.Pi
)

var (
	Background = scene.Hex(0xE5E6E8)
	InnerColor = scene.Hex(0x222222)
)

// ErrNoViewport is returned by New when no viewport is given.
var ErrNoViewport = errors.New("surface: viewport is required")

// Viewport is the drawable area a surface is sized to.
type Viewport interface {
	Size() (width, height int)
	DeviceScaleFactor() float64
}

// FixedViewport is a Viewport of constant size, for headless use.
type FixedViewport struct {
	Width, Height int
	Scale         float64
}

func (v FixedViewport) Size() (int, int) { return v.Width, v.Height }

func (v FixedViewport) DeviceScaleFactor() float64 {
	if v.Scale <= 0 {
		return 1
	}
	return v.Scale
}

// Surface is one independent mirror-ball scene.
type Surface struct {
	viewport Viewport
	opts     Options
	rng      animation.Rand
	log      *slog.Logger

	camera   *camera.Perspective
	controls *camera.Orbit
	renderer *raster.Renderer
	scene    *scene.Scene

	materials mirrorball.Materials
	balls     []*mirrorball.Ball
	driver    *animation.Driver

	width, height int
	frames        int
}

// New builds an empty surface sized to viewport. matcap may be nil, in
// which case tiles render plain white.
func New(viewport Viewport, matcap *image.NRGBA, opts Options) (*Surface, error) {
	if viewport == nil {
		return nil, ErrNoViewport
	}
	opts = opts.withDefaults()

	s := &Surface{
		viewport: viewport,
		opts:     opts,
		rng:      opts.Rand,
		log:      opts.Logger,
		scene:    scene.New(opts.Background),
		renderer: raster.NewRenderer(),
		camera:   camera.NewPerspective(FieldOfView, 1, Near, Far),
		materials: mirrorball.Materials{
			Inner: scene.NewBasicMaterial(InnerColor),
			Tiles: scene.NewMatcapMaterial(matcap, scene.BackSide),
		},
	}
	s.camera.Position = mgl64.Vec3{0, 0, CameraDistance}
	s.camera.LookAt(mgl64.Vec3{})

	if !s.UpdateSize() {
		w, h := viewport.Size()
		return nil, fmt.Errorf("surface: invalid viewport %dx%d", w, h)
	}
	s.controls = newControls(s.camera)
	return s, nil
}

func newControls(cam *camera.Perspective) *camera.Orbit {
	c := camera.NewOrbit(cam)
	c.EnablePan = true
	c.EnableZoom = true
	c.EnableDamping = true
	c.DampingFactor = 0.05
	c.MinPolarAngle = MinPolarAngle
	c.MaxPolarAngle = MaxPolarAngle
	c.AutoRotate = true
	c.AutoRotateSpeed = 2
	return c
}

// CreateObjects adds count balls with random radius and position. A
// count of zero or less uses Options.Balls. A matcap other than the one
// the surface was built with gets its own tile material.
func (s *Surface) CreateObjects(matcap *image.NRGBA, count int) ([]*mirrorball.Ball, error) {
	if count <= 0 {
		count = s.opts.Balls
	}
	mats := s.materials
	if matcap != nil && matcap != mats.Tiles.Texture {
		mats.Tiles = scene.NewMatcapMaterial(matcap, scene.BackSide)
	}

	created := make([]*mirrorball.Ball, 0, count)
	for i := 0; i < count; i++ {
		b, err := mirrorball.New(MinRadius+s.rng.Float64()*RadiusSpread, mats)
		if err != nil {
			return created, fmt.Errorf("surface: ball %d: %w", i, err)
		}
		b.Node.Position = mgl64.Vec3{
			s.rng.Float64()*2*Spread - Spread,
			s.rng.Float64()*2*Spread - Spread,
			s.rng.Float64()*2*Spread - Spread,
		}
		s.addBall(b)
		created = append(created, b)
	}
	return created, nil
}

// CreateMirrorBall adds a single ball of random radius at the origin.
func (s *Surface) CreateMirrorBall() (*mirrorball.Ball, error) {
	b, err := mirrorball.New(MinRadius+s.rng.Float64()*RadiusSpread, s.materials)
	if err != nil {
		return nil, fmt.Errorf("surface: %w", err)
	}
	s.addBall(b)
	return b, nil
}

func (s *Surface) addBall(b *mirrorball.Ball) {
	s.balls = append(s.balls, b)
	s.scene.Add(b.Node)
	if s.driver != nil && !s.driver.Stopped() {
		s.driver.Add(b)
	}
}

// UpdateSize resizes the renderer and camera to the viewport. A viewport
// reporting a non-positive size is logged and the previous size kept. It
// reports whether the surface now has a valid size.
func (s *Surface) UpdateSize() bool {
	w, h := s.viewport.Size()
	if w <= 0 || h <= 0 {
		s.log.Warn("surface: ignoring invalid viewport size",
			"width", w, "height", h, "keep_width", s.width, "keep_height", s.height)
		return s.width > 0 && s.height > 0
	}
	ratio := math.Min(s.viewport.DeviceScaleFactor(), s.opts.MaxPixelRatio)

	s.width, s.height = w, h
	s.renderer.SetSize(w, h)
	s.renderer.SetPixelRatio(ratio)
	s.camera.Aspect = float64(w) / float64(h)
	s.camera.UpdateProjectionMatrix()
	return true
}

// Start schedules one rotation task per ball. Calling Start on a running
// surface does nothing; after Stop it starts fresh tasks.
func (s *Surface) Start() {
	if s.driver != nil && !s.driver.Stopped() {
		return
	}
	s.driver = animation.NewDriver(s.rng, s.tick)
	if s.opts.Easing != nil {
		s.driver.SetEasing(s.opts.Easing)
	}
	for _, b := range s.balls {
		s.driver.Add(b)
	}
}

// Stop cancels every animation task.
func (s *Surface) Stop() {
	if s.driver != nil {
		s.driver.Stop()
	}
}

// Running reports whether the animation is scheduled.
func (s *Surface) Running() bool {
	return s.driver != nil && !s.driver.Stopped()
}

// Frame advances the animation by dt seconds. While running this updates
// the controls and renders exactly once.
func (s *Surface) Frame(dt float64) {
	if s.driver == nil {
		return
	}
	s.driver.Update(dt)
}

func (s *Surface) tick(float64) {
	s.controls.Update()
	if !s.opts.DeferRender {
		s.renderer.Draw(s.scene, s.camera)
	}
	s.frames++
}

// Render draws the current state and returns a copy of the frame.
func (s *Surface) Render() *image.NRGBA {
	return s.renderer.Render(s.scene, s.camera)
}

// FrameBuffer returns the renderer's buffer holding the last frame.
func (s *Surface) FrameBuffer() *raster.FrameBuffer {
	return s.renderer.FrameBuffer()
}

// Snapshot returns a copy of the scene graph and camera that later frames
// will not touch. Meshes and materials are shared.
func (s *Surface) Snapshot() (*scene.Scene, *camera.Perspective) {
	return s.scene.Clone(), s.camera.Snapshot()
}

// Balls returns the balls in creation order.
func (s *Surface) Balls() []*mirrorball.Ball { return s.balls }

// Scene returns the scene graph.
func (s *Surface) Scene() *scene.Scene { return s.scene }

// Camera returns the camera.
func (s *Surface) Camera() *camera.Perspective { return s.camera }

// Controls returns the orbit controls.
func (s *Surface) Controls() *camera.Orbit { return s.controls }

// Renderer returns the renderer.
func (s *Surface) Renderer() *raster.Renderer { return s.renderer }

// Size returns the last valid viewport size.
func (s *Surface) Size() (int, int) { return s.width, s.height }

// Frames returns how many frames the animation has produced.
func (s *Surface) Frames() int { return s.frames }

// Driver returns the animation driver, nil before Start.
func (s *Surface) Driver() *animation.Driver { return s.driver }

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
