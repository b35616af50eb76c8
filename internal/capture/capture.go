// Package capture records a running surface headlessly. Animation state is
// stepped on the calling goroutine; the frames are then rasterised by a
// worker pool and encoded as an animated WebP next to a JSON manifest.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"mirror-balls/internal/camera"
	"mirror-balls/internal/postprocess"
	"mirror-balls/internal/raster"
	"mirror-balls/internal/scene"
	"mirror-balls/internal/surface"
)

// ErrNoFrames is returned when a capture is asked for zero frames.
var ErrNoFrames = errors.New("capture: no frames requested")

// Config holds the settings of one capture run.
type Config struct {
	Width, Height int
	Frames        int
	FPS           float64
	Supersample   int
	Workers       int
	Output        string // .webp path
	Manifest      string // default: Output with a .json extension

	// Progress receives periodic status lines; nil disables them.
	Progress io.Writer
}

func (c Config) withDefaults() Config {
	if c.FPS <= 0 {
		c.FPS = 30
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Manifest == "" && c.Output != "" {
		c.Manifest = strings.TrimSuffix(c.Output, filepath.Ext(c.Output)) + ".json"
	}
	return c
}

// Result summarises a finished capture.
type Result struct {
	Frames   int
	Output   string
	Manifest string
	Elapsed  time.Duration
}

// frame is one animation state frozen for rendering.
type frame struct {
	scene  *scene.Scene
	camera *camera.Perspective
}

// Run steps s through cfg.Frames frames of 1/FPS seconds, renders them and
// writes the WebP and manifest. s is started if it is not running.
func Run(ctx context.Context, s *surface.Surface, cfg Config) (Result, error) {
	cfg = cfg.withDefaults()
	if cfg.Frames <= 0 {
		return Result{}, ErrNoFrames
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Result{}, fmt.Errorf("capture: invalid size %dx%d", cfg.Width, cfg.Height)
	}
	start := time.Now()

	if !s.Running() {
		s.Start()
	}
	manifest := newManifest(s, cfg)

	dt := 1 / cfg.FPS
	frames := make([]frame, cfg.Frames)
	for i := range frames {
		s.Frame(dt)
		frames[i].scene, frames[i].camera = s.Snapshot()
	}
	manifest.finish(s)

	images, err := renderAll(ctx, frames, cfg)
	if err != nil {
		return Result{}, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Output), 0755); err != nil {
		return Result{}, fmt.Errorf("capture: %w", err)
	}
	if err := writeWebP(cfg.Output, images, frameDuration(cfg.FPS), s.Scene().Background); err != nil {
		return Result{}, err
	}
	if cfg.Manifest != "" {
		if err := WriteManifest(cfg.Manifest, manifest); err != nil {
			return Result{}, fmt.Errorf("capture: manifest: %w", err)
		}
	}

	return Result{
		Frames:   len(images),
		Output:   cfg.Output,
		Manifest: cfg.Manifest,
		Elapsed:  time.Since(start),
	}, nil
}

// renderAll rasterises frames with a worker pool, one renderer per worker.
func renderAll(ctx context.Context, frames []frame, cfg Config) ([]image.Image, error) {
	total := len(frames)
	images := make([]image.Image, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress != nil {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Fprintf(cfg.Progress, "  [%d/%d] %.1f frames/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	frameChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := raster.NewRenderer()
			r.SetSize(cfg.Width*cfg.Supersample, cfg.Height*cfg.Supersample)
			for idx := range frameChan {
				if ctx.Err() != nil {
					continue
				}
				img := r.Render(frames[idx].scene, frames[idx].camera)
				if cfg.Supersample > 1 {
					img = postprocess.Downsample(img, cfg.Width, cfg.Height)
				}
				images[idx] = img
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range frames {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return images, nil
}

func frameDuration(fps float64) uint {
	return uint(math.Max(1, math.Round(1000/fps)))
}

// writeWebP stores a single frame as a still image and anything longer as
// an infinitely looping animation.
func writeWebP(path string, images []image.Image, durationMS uint, bg color.NRGBA) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("capture: close %s: %w", path, cerr)
		}
	}()

	if len(images) == 1 {
		if err := nativewebp.Encode(f, images[0], nil); err != nil {
			return fmt.Errorf("capture: WebP encode: %w", err)
		}
		return nil
	}

	ani := &nativewebp.Animation{
		Images:          images,
		Durations:       make([]uint, len(images)),
		Disposals:       make([]uint, len(images)),
		LoopCount:       0,
		BackgroundColor: bgra(bg),
	}
	for i := range ani.Durations {
		ani.Durations[i] = durationMS
	}
	if err := nativewebp.EncodeAll(f, ani, nil); err != nil {
		return fmt.Errorf("capture: WebP encode: %w", err)
	}
	return nil
}

// bgra packs c the way the ANIM chunk stores its background colour.
func bgra(c color.NRGBA) uint32 {
	return uint32(c.B) | uint32(c.G)<<8 | uint32(c.R)<<16 | uint32(c.A)<<24
}
