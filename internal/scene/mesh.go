package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"mirror-balls/internal/geometry"
)

// Mesh pairs a geometry with a material. An instanced mesh draws its
// geometry once per entry in Instances, each copy placed by its own matrix
// relative to the owning node.
type Mesh struct {
	Geometry  *geometry.Geometry
	Material  *Material
	Instances []mgl64.Mat4
}

// NewMesh returns a mesh drawn once.
func NewMesh(g *geometry.Geometry, m *Material) *Mesh {
	return &Mesh{Geometry: g, Material: m}
}

// NewInstancedMesh returns a mesh with count identity instances.
func NewInstancedMesh(g *geometry.Geometry, m *Material, count int) *Mesh {
	inst := make([]mgl64.Mat4, count)
	for i := range inst {
		inst[i] = mgl64.Ident4()
	}
	return &Mesh{Geometry: g, Material: m, Instances: inst}
}

// Instanced reports whether the mesh is drawn through instance matrices.
func (m *Mesh) Instanced() bool {
	return m.Instances != nil
}

// Count returns how many copies of the geometry are drawn.
func (m *Mesh) Count() int {
	if m.Instances == nil {
		return 1
	}
	return len(m.Instances)
}

// SetMatrixAt stores the transform of instance i.
func (m *Mesh) SetMatrixAt(i int, mat mgl64.Mat4) error {
	if i < 0 || i >= len(m.Instances) {
		return fmt.Errorf("scene: instance %d out of range [0,%d)", i, len(m.Instances))
	}
	m.Instances[i] = mat
	return nil
}

// MatrixAt returns the transform of instance i.
func (m *Mesh) MatrixAt(i int) mgl64.Mat4 {
	return m.Instances[i]
}
