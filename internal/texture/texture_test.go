package texture

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

func writePNG(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func writeJPEG(t *testing.T, path string) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, nil); err != nil {
		t.Fatal(err)
	}
}

func TestLoadTexture(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "matcap.png")
	writePNG(t, path, color.NRGBA{200, 100, 50, 255})

	img, err := LoadTexture(path)
	if err != nil {
		t.Fatal(err)
	}
	if img.Rect.Dx() != 4 || img.Rect.Dy() != 4 {
		t.Errorf("size %v, want 4x4", img.Rect)
	}
	if got := img.NRGBAAt(1, 1); got != (color.NRGBA{200, 100, 50, 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestLoadTextureOpaqueJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grey.jpg")
	writeJPEG(t, path)

	img, err := LoadTexture(path)
	if err != nil {
		t.Fatal(err)
	}
	if a := img.NRGBAAt(3, 3).A; a != 255 {
		t.Errorf("alpha = %d, want opaque", a)
	}
}

func TestLoadTextureErrors(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(corrupt, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "nope.png")},
		{"corrupt", corrupt},
		{"unsupported", filepath.Join(dir, "matcap.gif")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadTexture(tc.path)
			var le *AssetLoadError
			if !errors.As(err, &le) {
				t.Fatalf("err = %v, want *AssetLoadError", err)
			}
			if le.Path != tc.path {
				t.Errorf("Path = %q, want %q", le.Path, tc.path)
			}
		})
	}
}

func TestIndexResolvesStems(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "extra")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	pngPath := filepath.Join(dir, "matcap-crystal.png")
	writePNG(t, pngPath, color.NRGBA{255, 255, 255, 255})
	writeJPEG(t, filepath.Join(sub, "matcap-crystal.jpg"))
	writeJPEG(t, filepath.Join(sub, "Chrome.jpg"))
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	idx := BuildIndex(dir)
	if idx.Len() != 2 {
		t.Errorf("Len = %d, want 2", idx.Len())
	}

	testCases := []struct {
		ref  string
		want string
		ok   bool
	}{
		{"matcap-crystal", pngPath, true},
		{"MATCAP-CRYSTAL.jpg", pngPath, true},
		{`textures\matcap-crystal.tga`, pngPath, true},
		{"chrome", filepath.Join(sub, "Chrome.jpg"), true},
		{pngPath, pngPath, true},
		{"notes", "", false},
		{"", "", false},
	}
	for _, tc := range testCases {
		t.Run(tc.ref, func(t *testing.T) {
			got, ok := idx.ResolvePath(tc.ref)
			if ok != tc.ok || got != tc.want {
				t.Errorf("ResolvePath(%q) = %q, %v; want %q, %v", tc.ref, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestBuildIndexMissingDir(t *testing.T) {
	if n := BuildIndex(filepath.Join(t.TempDir(), "absent")).Len(); n != 0 {
		t.Errorf("Len = %d, want 0", n)
	}
}

func TestCacheReusesDecodedImage(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), color.NRGBA{1, 2, 3, 255})
	c := NewCache(BuildIndex(dir))

	first, err := c.Resolve("a")
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Resolve("A.png")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("second Resolve decoded the file again")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}

	_, err = c.Resolve("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "matcap-crystal.png"), color.NRGBA{9, 9, 9, 255})
	l := NewLoader(dir)

	img, err := l.Load(context.Background(), "matcap-crystal")
	if err != nil {
		t.Fatal(err)
	}
	if img == nil || img.Rect.Dx() != 4 {
		t.Fatalf("unexpected image %v", img)
	}

	_, err = l.Load(context.Background(), "matcap-missing")
	var le *AssetLoadError
	if !errors.As(err, &le) {
		t.Errorf("err = %v, want *AssetLoadError", err)
	}
}

func TestLoaderFindsShippedMatcap(t *testing.T) {
	l := NewLoader(filepath.Join("..", "..", "assets"))
	img, err := l.Load(context.Background(), "matcap-crystal")
	if err != nil {
		t.Fatal(err)
	}
	if img.Rect.Dx() != 256 || img.Rect.Dy() != 256 {
		t.Errorf("size = %v, want 256x256", img.Rect)
	}
	if px := img.NRGBAAt(128, 128); px.A != 255 {
		t.Errorf("centre pixel = %v, want opaque", px)
	}
}

func TestLoaderHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLoader("").Load(ctx, "anything")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestLoadTextureEveryFormat(t *testing.T) {
	want := color.NRGBA{R: 120, G: 130, B: 140, A: 255}
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.SetNRGBA(x, y, want)
		}
	}

	testCases := []struct {
		name   string
		file   string
		encode func(io.Writer, image.Image) error
	}{
		{"png", "m.png", png.Encode},
		{"jpeg", "m.jpg", func(w io.Writer, m image.Image) error {
			return jpeg.Encode(w, m, &jpeg.Options{Quality: 100})
		}},
		{"tga", "m.tga", tga.Encode},
		{"bmp", "m.bmp", bmp.Encode},
		{"webp", "m.webp", func(w io.Writer, m image.Image) error {
			return nativewebp.Encode(w, m, nil)
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.file)
			f, err := os.Create(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := tc.encode(f, src); err != nil {
				f.Close()
				t.Fatal(err)
			}
			if err := f.Close(); err != nil {
				t.Fatal(err)
			}

			img, err := LoadTexture(path)
			if err != nil {
				t.Fatalf("LoadTexture: %v", err)
			}
			if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
				t.Fatalf("bounds = %v", img.Bounds())
			}
			got := img.NRGBAAt(4, 4)
			if !near(got.R, want.R) || !near(got.G, want.G) || !near(got.B, want.B) || got.A != 255 {
				t.Errorf("pixel = %v, want ~%v", got, want)
			}
		})
	}
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -4 && d <= 4
}
