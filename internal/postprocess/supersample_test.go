package postprocess

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestDownsampleSize(t *testing.T) {
	testCases := []struct {
		name         string
		srcW, srcH   int
		w, h         int
		wantW, wantH int
	}{
		{"halve", 64, 32, 32, 16, 32, 16},
		{"already small", 16, 16, 32, 32, 16, 16},
		{"same size", 20, 10, 20, 10, 20, 10},
		{"invalid target", 8, 8, 0, 4, 8, 8},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Downsample(solid(tc.srcW, tc.srcH, color.NRGBA{10, 20, 30, 255}), tc.w, tc.h)
			if got.Rect.Dx() != tc.wantW || got.Rect.Dy() != tc.wantH {
				t.Errorf("size %v, want %dx%d", got.Rect, tc.wantW, tc.wantH)
			}
		})
	}
}

func TestDownsampleKeepsSolidColour(t *testing.T) {
	c := color.NRGBA{229, 230, 232, 255}
	got := Downsample(solid(40, 40, c), 20, 20)
	for _, p := range [][2]int{{0, 0}, {10, 10}, {19, 19}} {
		px := got.NRGBAAt(p[0], p[1])
		if diff(px.R, c.R) > 1 || diff(px.G, c.G) > 1 || diff(px.B, c.B) > 1 || px.A != 255 {
			t.Errorf("pixel %v = %v, want ~%v", p, px, c)
		}
	}
}

func TestDownsampleTransparentEdge(t *testing.T) {
	// White pixels next to fully transparent black ones must not turn grey.
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}
	got := Downsample(src, 4, 4)
	px := got.NRGBAAt(1, 2)
	if px.A > 0 && px.R < 250 {
		t.Errorf("edge pixel darkened: %v", px)
	}
}

func diff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
