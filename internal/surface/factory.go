package surface

import (
	"context"
	"fmt"
	"image"
)

// MatcapLoader fetches a matcap texture by path or asset name.
type MatcapLoader interface {
	Load(ctx context.Context, ref string) (*image.NRGBA, error)
}

// Create loads the matcap, builds a surface populated according to
// opts.Variant and starts its animation. A failed load aborts construction.
func Create(ctx context.Context, loader MatcapLoader, viewport Viewport, opts Options) (*Surface, error) {
	opts = opts.withDefaults()

	matcap, err := loader.Load(ctx, opts.Matcap)
	if err != nil {
		return nil, fmt.Errorf("surface: matcap: %w", err)
	}

	s, err := New(viewport, matcap, opts)
	if err != nil {
		return nil, err
	}

	switch opts.Variant {
	case Single:
		_, err = s.CreateMirrorBall()
	default:
		_, err = s.CreateObjects(matcap, opts.Balls)
	}
	if err != nil {
		return nil, err
	}

	s.Start()
	return s, nil
}

// CreateSingle is Create with the Single variant.
func CreateSingle(ctx context.Context, loader MatcapLoader, viewport Viewport, opts Options) (*Surface, error) {
	opts.Variant = Single
	return Create(ctx, loader, viewport, opts)
}
