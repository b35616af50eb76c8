package raster

import (
	"image"
	"math"
)

// Vertex is a projected vertex: screen position in pixels, NDC depth and
// the matcap coordinates computed for it.
type Vertex struct {
	X, Y, Z float64
	U, V    float64
}

// Paint describes how the pixels of one triangle are coloured. With a nil
// Texture the triangle is filled with R, G, B, A; otherwise the texture is
// sampled at the interpolated UV and tinted by R, G, B.
type Paint struct {
	R, G, B, A uint8
	Texture    *image.NRGBA
}

// SignedArea returns twice the signed screen-space area of a triangle.
// Counter-clockwise triangles in NDC come out negative, as screen Y grows
// downward.
func SignedArea(a, b, c Vertex) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}

// RasterizeTriangle fills a single triangle with a depth test.
//
// The inner loop does not allocate.
// Attributes are interpolated affinely in screen space.
func RasterizeTriangle(fb *FrameBuffer, v0, v1, v2 Vertex, p *Paint) {
	x0, y0 := v0.X, v0.Y
	x1, y1 := v1.X, v1.Y
	x2, y2 := v2.X, v2.Y

	// Bounding box
	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))

	if minX < 0 {
		minX = 0
	}
	if maxX > fb.Width-1 {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY > fb.Height-1 {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-12 && det < 1e-12 {
		return
	}
	invDet := 1.0 / det

	// Precompute edge deltas
	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	tex := p.Texture
	tr, tg, tb := float64(p.R)/255, float64(p.G)/255, float64(p.B)/255

	// Pixel loop
	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*v0.Z + w1*v1.Z + w2*v2.Z
			if z < -1 || z > 1 {
				continue
			}
			zIdx := rowOff + sx
			if z >= fb.ZBuf[zIdx] {
				continue
			}

			cr, cg, cb, ca := p.R, p.G, p.B, p.A
			if tex != nil {
				u := w0*v0.U + w1*v1.U + w2*v2.U
				v := w0*v0.V + w1*v1.V + w2*v2.V
				sr, sg, sb, sa := SampleTexture(tex, u, v)
				cr = clamp255(float64(sr) * tr)
				cg = clamp255(float64(sg) * tg)
				cb = clamp255(float64(sb) * tb)
				ca = sa
			}

			// Skip transparent texels
			if ca < 8 {
				continue
			}
			fb.ZBuf[zIdx] = z

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = cr
			fb.Color[pxIdx+1] = cg
			fb.Color[pxIdx+2] = cb
			fb.Color[pxIdx+3] = 255
		}
	}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
