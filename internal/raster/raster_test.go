package raster

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"mirror-balls/internal/camera"
	"mirror-balls/internal/geometry"
	"mirror-balls/internal/scene"
)

var background = scene.Hex(0xE5E6E8)

func pixelAt(img *image.NRGBA, x, y int) color.NRGBA {
	return img.NRGBAAt(x, y)
}

func testCamera(z float64) *camera.Perspective {
	cam := camera.NewPerspective(45, 1, 0.1, 100)
	cam.Position = mgl64.Vec3{0, 0, z}
	cam.LookAt(mgl64.Vec3{})
	return cam
}

func planeScene(t *testing.T, mat *scene.Material, z float64) *scene.Scene {
	t.Helper()
	g, err := geometry.Plane(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	s := scene.New(background)
	n := scene.NewMeshNode("plane", scene.NewMesh(g, mat))
	n.Position = mgl64.Vec3{0, 0, z}
	s.Add(n)
	return s
}

func TestRenderFillsBackground(t *testing.T) {
	r := NewRenderer()
	r.SetSize(16, 8)
	img := r.Render(scene.New(background), testCamera(25))

	if img.Rect.Dx() != 16 || img.Rect.Dy() != 8 {
		t.Fatalf("image size %v, want 16x8", img.Rect)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			if got := pixelAt(img, x, y); got != background {
				t.Fatalf("pixel (%d,%d) = %v, want background", x, y, got)
			}
		}
	}
}

func TestPixelRatio(t *testing.T) {
	r := NewRenderer()
	r.SetSize(10, 7)
	r.SetPixelRatio(1.5)
	if w, h := r.DrawingBufferSize(); w != 15 || h != 10 {
		t.Errorf("drawing buffer %dx%d, want 15x10", w, h)
	}

	r.SetPixelRatio(3)
	if r.PixelRatio() != MaxPixelRatio {
		t.Errorf("pixel ratio %v, want capped at %v", r.PixelRatio(), MaxPixelRatio)
	}
	if w, h := r.Size(); w != 10 || h != 7 {
		t.Errorf("logical size %dx%d changed", w, h)
	}

	r.SetPixelRatio(-1)
	if r.PixelRatio() != 1 {
		t.Errorf("invalid ratio should fall back to 1, got %v", r.PixelRatio())
	}
}

func TestSideCulling(t *testing.T) {
	red := scene.Hex(0xFF0000)
	testCases := []struct {
		name  string
		side  scene.Side
		drawn bool
	}{
		{"front", scene.FrontSide, true},
		{"back", scene.BackSide, false},
		{"double", scene.DoubleSide, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mat := scene.NewBasicMaterial(red)
			mat.Side = tc.side

			r := NewRenderer()
			r.SetSize(32, 32)
			img := r.Render(planeScene(t, mat, 0), testCamera(5))

			got := pixelAt(img, 16, 16)
			if tc.drawn && got != red {
				t.Errorf("centre = %v, want plane colour", got)
			}
			if !tc.drawn && got != background {
				t.Errorf("centre = %v, want background", got)
			}
		})
	}
}

func TestDepthTest(t *testing.T) {
	near := scene.NewBasicMaterial(scene.Hex(0xFF0000))
	far := scene.NewBasicMaterial(scene.Hex(0x0000FF))
	g, err := geometry.Plane(2, 2)
	if err != nil {
		t.Fatal(err)
	}

	for _, nearFirst := range []bool{true, false} {
		s := scene.New(background)
		a := scene.NewMeshNode("near", scene.NewMesh(g, near))
		a.Position = mgl64.Vec3{0, 0, 1}
		b := scene.NewMeshNode("far", scene.NewMesh(g, far))
		if nearFirst {
			s.Add(a)
			s.Add(b)
		} else {
			s.Add(b)
			s.Add(a)
		}

		r := NewRenderer()
		r.SetSize(32, 32)
		img := r.Render(s, testCamera(5))
		if got := pixelAt(img, 16, 16); got != near.Color {
			t.Errorf("nearFirst=%v: centre = %v, want nearer plane", nearFirst, got)
		}
	}
}

func TestBehindCameraIsSkipped(t *testing.T) {
	mat := scene.NewBasicMaterial(scene.Hex(0xFF0000))
	mat.Side = scene.DoubleSide
	r := NewRenderer()
	r.SetSize(16, 16)
	img := r.Render(planeScene(t, mat, 10), testCamera(5))
	if got := pixelAt(img, 8, 8); got != background {
		t.Errorf("plane behind the camera was drawn: %v", got)
	}
}

func TestInstancedMesh(t *testing.T) {
	g, err := geometry.Plane(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	red := scene.Hex(0xFF0000)
	m := scene.NewInstancedMesh(g, scene.NewBasicMaterial(red), 2)
	if err := m.SetMatrixAt(0, mgl64.Translate3D(-1.5, 0, 0)); err != nil {
		t.Fatal(err)
	}
	if err := m.SetMatrixAt(1, mgl64.Translate3D(1.5, 0, 0)); err != nil {
		t.Fatal(err)
	}
	s := scene.New(background)
	s.Add(scene.NewMeshNode("tiles", m))

	r := NewRenderer()
	r.SetSize(64, 64)
	img := r.Render(s, testCamera(5))

	if got := pixelAt(img, 32, 32); got != background {
		t.Errorf("gap between instances = %v, want background", got)
	}
	// Instances sit roughly three quarters of the way to each edge.
	for _, x := range []int{14, 50} {
		if got := pixelAt(img, x, 32); got != red {
			t.Errorf("instance at x=%d not drawn: %v", x, got)
		}
	}
}

func TestSignedArea(t *testing.T) {
	a := Vertex{X: 0, Y: 0}
	b := Vertex{X: 0, Y: 10}
	c := Vertex{X: 10, Y: 0}
	if SignedArea(a, b, c) >= 0 {
		t.Error("counter-clockwise on screen (y down) should be negative")
	}
	if SignedArea(a, c, b) <= 0 {
		t.Error("reversed winding should be positive")
	}
	if SignedArea(a, a, c) != 0 {
		t.Error("degenerate triangle should have zero area")
	}
}

func TestSampleTexture(t *testing.T) {
	tex := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	tex.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255}) // top-left
	tex.SetNRGBA(1, 0, color.NRGBA{0, 255, 0, 255})
	tex.SetNRGBA(0, 1, color.NRGBA{0, 0, 255, 255})
	tex.SetNRGBA(1, 1, color.NRGBA{255, 255, 255, 255})

	testCases := []struct {
		name       string
		u, v       float64
		r, g, b, a uint8
	}{
		{"top-left", 0, 1, 255, 0, 0, 255},
		{"bottom-left", 0, 0, 0, 0, 255, 255},
		{"bottom-right", 1, 0, 255, 255, 255, 255},
		{"clamped", -3, 7, 255, 0, 0, 255},
		{"top edge midpoint", 0.5, 1, 128, 128, 0, 255},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, g, b, a := SampleTexture(tex, tc.u, tc.v)
			if r != tc.r || g != tc.g || b != tc.b || a != tc.a {
				t.Errorf("got (%d,%d,%d,%d), want (%d,%d,%d,%d)", r, g, b, a, tc.r, tc.g, tc.b, tc.a)
			}
		})
	}
}

func TestMatcapUV(t *testing.T) {
	// A normal facing the eye samples the centre of the matcap.
	u, v := MatcapUV(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, -10})
	if math.Abs(u-0.5) > 1e-9 || math.Abs(v-0.5) > 1e-9 {
		t.Errorf("facing normal: uv = (%v, %v), want centre", u, v)
	}

	// An upward normal lands near the top.
	_, v = MatcapUV(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, -10})
	if v < 0.99 {
		t.Errorf("up normal: v = %v, want near top", v)
	}

	// Unit normals always stay inside the texture.
	for _, n := range []mgl64.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, -1, 0}, {0.6, 0.8, 0}} {
		for _, p := range []mgl64.Vec3{{0, 0, -5}, {3, 2, -5}, {-4, -1, -2}} {
			u, v := MatcapUV(n, p)
			if u < 0 || u > 1 || v < 0 || v > 1 {
				t.Errorf("normal %v at %v: uv (%v, %v) out of range", n, p, u, v)
			}
		}
	}
}
