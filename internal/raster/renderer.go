// Package raster is a z-buffered software renderer for scene graphs made of
// basic and matcap materials.
package raster

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"mirror-balls/internal/camera"
	"mirror-balls/internal/scene"
)

// MaxPixelRatio caps the device pixel ratio the renderer honours.
const MaxPixelRatio = 2.0

// Renderer draws a scene into its own frame buffer. A Renderer is not safe
// for concurrent use; create one per goroutine.
type Renderer struct {
	width, height int
	pixelRatio    float64
	fb            *FrameBuffer

	// scratch, reused between meshes
	verts   []Vertex
	visible []bool
}

// NewRenderer returns a renderer with a 1×1 output at pixel ratio 1.
func NewRenderer() *Renderer {
	return &Renderer{width: 1, height: 1, pixelRatio: 1, fb: NewFrameBuffer(1, 1)}
}

// SetSize sets the output size in logical pixels.
func (r *Renderer) SetSize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	r.width, r.height = w, h
	r.resizeBuffer()
}

// SetPixelRatio sets the device pixel ratio, clamped to (0, MaxPixelRatio].
func (r *Renderer) SetPixelRatio(ratio float64) {
	if ratio <= 0 || math.IsNaN(ratio) {
		ratio = 1
	}
	r.pixelRatio = math.Min(ratio, MaxPixelRatio)
	r.resizeBuffer()
}

// Size returns the output size in logical pixels.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// PixelRatio returns the effective pixel ratio.
func (r *Renderer) PixelRatio() float64 {
	return r.pixelRatio
}

// DrawingBufferSize returns the frame buffer size in device pixels.
func (r *Renderer) DrawingBufferSize() (int, int) {
	return r.fb.Width, r.fb.Height
}

// FrameBuffer returns the buffer the last Draw rendered into.
func (r *Renderer) FrameBuffer() *FrameBuffer {
	return r.fb
}

func (r *Renderer) resizeBuffer() {
	r.fb.Resize(
		int(math.Floor(float64(r.width)*r.pixelRatio)),
		int(math.Floor(float64(r.height)*r.pixelRatio)),
	)
}

// Render draws the scene as seen by cam and returns the frame as an image.
func (r *Renderer) Render(s *scene.Scene, cam *camera.Perspective) *image.NRGBA {
	r.Draw(s, cam)
	return r.fb.Image()
}

// Draw renders into the internal frame buffer without copying it out.
func (r *Renderer) Draw(s *scene.Scene, cam *camera.Perspective) *FrameBuffer {
	r.fb.Clear(s.Background)

	view := cam.View()
	proj := cam.Projection()

	s.Root.Traverse(func(n *scene.Node, world mgl64.Mat4) {
		m := n.Mesh
		if m == nil || m.Geometry == nil || m.Material == nil {
			return
		}
		if !m.Instanced() {
			r.drawMesh(m, view.Mul4(world), proj, cam.Near)
			return
		}
		for _, inst := range m.Instances {
			r.drawMesh(m, view.Mul4(world).Mul4(inst), proj, cam.Near)
		}
	})
	return r.fb
}

// drawMesh projects every vertex of m once, then rasterises the triangles
// that survive near-plane rejection and face culling.
func (r *Renderer) drawMesh(m *scene.Mesh, modelView, proj mgl64.Mat4, near float64) {
	g := m.Geometry
	mat := m.Material
	n := len(g.Positions)
	if cap(r.verts) < n {
		r.verts = make([]Vertex, n)
		r.visible = make([]bool, n)
	}
	verts := r.verts[:n]
	visible := r.visible[:n]

	normalMat := modelView.Mat3().Inv().Transpose()
	w := float64(r.fb.Width)
	h := float64(r.fb.Height)
	flip := mat.Side == scene.BackSide

	for i, p := range g.Positions {
		vp := modelView.Mul4x1(p.Vec4(1))
		if -vp[2] < near {
			visible[i] = false
			continue
		}
		clip := proj.Mul4x1(vp)
		invW := 1 / clip[3]
		v := Vertex{
			X: (clip[0]*invW + 1) * 0.5 * w,
			Y: (1 - clip[1]*invW) * 0.5 * h,
			Z: clip[2] * invW,
		}
		if mat.Shading == scene.Matcap && i < len(g.Normals) {
			nv := normalMat.Mul3x1(g.Normals[i]).Normalize()
			if flip {
				nv = nv.Mul(-1)
			}
			v.U, v.V = MatcapUV(nv, vp.Vec3())
		}
		verts[i] = v
		visible[i] = true
	}

	paint := Paint{R: mat.Color.R, G: mat.Color.G, B: mat.Color.B, A: mat.Color.A}
	if mat.Shading == scene.Matcap {
		paint.Texture = mat.Texture
	}

	for t := 0; t < g.TriangleCount(); t++ {
		a, b, c := g.Triangle(t)
		if !visible[a] || !visible[b] || !visible[c] {
			continue
		}
		front := SignedArea(verts[a], verts[b], verts[c]) < 0
		switch mat.Side {
		case scene.FrontSide:
			if !front {
				continue
			}
		case scene.BackSide:
			if front {
				continue
			}
		}
		RasterizeTriangle(r.fb, verts[a], verts[b], verts[c], &paint)
	}
}
