package scene

import (
	"image"
	"image/color"
)

// Side selects which faces of a triangle are drawn.
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

func (s Side) String() string {
	switch s {
	case FrontSide:
		return "front"
	case BackSide:
		return "back"
	case DoubleSide:
		return "double"
	}
	return "unknown"
}

// Shading is the colour model of a material.
type Shading int

const (
	// Basic draws a flat colour, unlit.
	Basic Shading = iota
	// Matcap samples a sphere-lit texture by the view-space normal.
	Matcap
)

// Material is shared between meshes and must not change after the first frame.
type Material struct {
	Shading Shading
	Color   color.NRGBA
	Texture *image.NRGBA
	Side    Side
}

// NewBasicMaterial returns an unlit, front-sided material.
func NewBasicMaterial(c color.NRGBA) *Material {
	return &Material{Shading: Basic, Color: c, Side: FrontSide}
}

// NewMatcapMaterial returns a matcap material. A nil texture renders as
// plain white, the way an unset matcap would.
func NewMatcapMaterial(tex *image.NRGBA, side Side) *Material {
	return &Material{
		Shading: Matcap,
		Color:   color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Texture: tex,
		Side:    side,
	}
}

// Hex converts 0xRRGGBB to an opaque colour.
func Hex(rgb uint32) color.NRGBA {
	return color.NRGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 255}
}
