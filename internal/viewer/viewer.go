// Package viewer shows a surface in a desktop window. The window drives
// the animation at a fixed tick rate and forwards resizes and mouse input.
package viewer

import (
	"fmt"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"mirror-balls/internal/camera"
	"mirror-balls/internal/surface"
)

// TPS is the update rate; each tick advances the animation by 1/TPS s.
const TPS = 60

// Window is a resizable Viewport backed by the ebiten window.
type Window struct {
	width, height int
	scale         float64
}

// NewWindow returns a viewport with an initial size in logical pixels.
func NewWindow(width, height int) *Window {
	return &Window{width: width, height: height, scale: 1}
}

func (w *Window) Size() (int, int) { return w.width, w.height }

func (w *Window) DeviceScaleFactor() float64 { return w.scale }

// Viewer is the ebiten game hosting one surface.
type Viewer struct {
	surface  *surface.Surface
	window   *Window
	drag     *camera.Drag
	img      *ebiten.Image
	showFPS  bool
	quitting atomic.Bool
}

// New wraps s, which must have been built on window.
func New(s *surface.Surface, window *Window, showFPS bool) *Viewer {
	return &Viewer{
		surface: s,
		window:  window,
		drag:    camera.NewDrag(s.Controls()),
		showFPS: showFPS,
	}
}

// Run opens the window and blocks until it is closed.
func (v *Viewer) Run(title string) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(v.window.width, v.window.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(TPS)
	return ebiten.RunGame(v)
}

func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || v.quitting.Load() {
		return ebiten.Termination
	}

	x, y := ebiten.CursorPosition()
	_, wheelY := ebiten.Wheel()
	v.drag.Apply(camera.Pointer{
		X:      x,
		Y:      y,
		Left:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Right:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		WheelY: wheelY,
	}, float64(v.window.height))

	v.surface.Frame(1.0 / TPS)
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	fb := v.surface.FrameBuffer()
	if fb.Width == 0 || fb.Height == 0 {
		return
	}
	if v.img == nil || v.img.Bounds().Dx() != fb.Width || v.img.Bounds().Dy() != fb.Height {
		if v.img != nil {
			v.img.Deallocate()
		}
		v.img = ebiten.NewImage(fb.Width, fb.Height)
	}
	// Frames are fully opaque, so straight and premultiplied alpha agree.
	v.img.WritePixels(fb.Color)
	screen.DrawImage(v.img, nil)

	if v.showFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.2f", ebiten.ActualFPS()))
	}
}

// Layout resizes the surface when the window changes and renders at
// device resolution.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	if outsideWidth != v.window.width || outsideHeight != v.window.height || scale != v.window.scale {
		v.window.width, v.window.height, v.window.scale = outsideWidth, outsideHeight, scale
		v.surface.UpdateSize()
	}
	return v.surface.Renderer().DrawingBufferSize()
}

// Close makes the next Update end the game loop. It is safe to call from
// any goroutine.
func (v *Viewer) Close() {
	v.quitting.Store(true)
}
