package surface

import (
	"image/color"
	"log/slog"

	"github.com/tanema/gween/ease"

	"mirror-balls/internal/animation"
	"mirror-balls/internal/raster"
)

// Variant selects what the factory entry points populate a surface with.
type Variant int

const (
	// Many scatters Options.Balls balls around the origin.
	Many Variant = iota
	// Single places one ball at the origin.
	Single
)

func (v Variant) String() string {
	if v == Single {
		return "single"
	}
	return "many"
}

// DefaultMatcap is the asset stem loaded when Options.Matcap is empty.
const DefaultMatcap = "matcap-crystal"

// Options configure a surface. The zero value is usable.
type Options struct {
	Variant Variant
	Balls   int    // default DefaultBalls
	Matcap  string // path or asset stem, default DefaultMatcap

	// Rand drives ball placement and animation. Nil seeds a PCG with Seed.
	Rand animation.Rand
	Seed uint64

	Background    color.NRGBA // zero means Background
	MaxPixelRatio float64     // default raster.MaxPixelRatio
	Easing        ease.TweenFunc

	// DeferRender makes animation frames update the controls only; the
	// caller renders from Snapshot.
	DeferRender bool

	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Balls <= 0 {
		o.Balls = DefaultBalls
	}
	if o.Matcap == "" {
		o.Matcap = DefaultMatcap
	}
	if o.Rand == nil {
		o.Rand = newRand(o.Seed)
	}
	if o.Background == (color.NRGBA{}) {
		o.Background = Background
	}
	if o.MaxPixelRatio <= 0 || o.MaxPixelRatio > raster.MaxPixelRatio {
		o.MaxPixelRatio = raster.MaxPixelRatio
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
