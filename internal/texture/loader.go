// Package texture loads matcap images from disk. Files are found either by
// path or by stem inside an assets directory, decoded off the caller's
// goroutine and cached by path.
package texture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// ErrNotFound is wrapped by AssetLoadError when a reference resolves to no file.
var ErrNotFound = errors.New("texture not found")

// AssetLoadError reports a texture that could not be read or decoded.
type AssetLoadError struct {
	Path string
	Err  error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("texture: load %s: %v", e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}

// decoders picks the decoder by extension. The tga package registers itself
// with an empty magic string, so image.Decode cannot be trusted to sniff.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".tga":  tga.Decode,
	".bmp":  bmp.Decode,
	".webp": webp.Decode,
}

// LoadTexture reads and decodes a PNG, JPEG, TGA, BMP or WebP file.
func LoadTexture(path string) (*image.NRGBA, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, &AssetLoadError{Path: path, Err: fmt.Errorf("unsupported extension %q", ext)}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &AssetLoadError{Path: path, Err: err}
	}
	img, err := decode(bytes.NewReader(raw))
	if err != nil {
		return nil, &AssetLoadError{Path: path, Err: err}
	}
	return toNRGBA(img), nil
}

// toNRGBA converts any image to NRGBA format.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}

// Loader resolves texture references and decodes them asynchronously.
type Loader struct {
	cache *Cache
}

// NewLoader returns a loader that looks names up in assetsDir. An empty
// assetsDir restricts the loader to plain paths.
func NewLoader(assetsDir string) *Loader {
	var idx *Index
	if assetsDir != "" {
		idx = BuildIndex(assetsDir)
	} else {
		idx = &Index{entries: map[string]string{}}
	}
	return &Loader{cache: NewCache(idx)}
}

type result struct {
	img *image.NRGBA
	err error
}

// Load returns the decoded texture for ref, a file path or an asset stem.
// It returns ctx.Err() if the context ends before decoding finishes; the
// decode keeps running and its result still lands in the cache.
func (l *Loader) Load(ctx context.Context, ref string) (*image.NRGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	done := make(chan result, 1)
	go func() {
		img, err := l.cache.Resolve(ref)
		done <- result{img, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.img, r.err
	}
}
