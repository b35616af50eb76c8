package mirrorball

import (
	"github.com/go-gl/mathgl/mgl64"

	"mirror-balls/internal/geometry"
	"mirror-balls/internal/mathutil"
	"mirror-balls/internal/scene"
)

// TileTransforms places one tile on each vertex, oriented so the tile's
// local +Z axis points at centre. Up is world +Y; mathutil.Basis handles the
// vertices where that is ambiguous.
func TileTransforms(vertices []mgl64.Vec3, centre mgl64.Vec3) []mgl64.Mat4 {
	out := make([]mgl64.Mat4, len(vertices))
	for i, v := range vertices {
		out[i] = mathutil.ObjectTransform(v, centre, mathutil.WorldUp)
	}
	return out
}

// NewTiles builds the instanced tile batch for a ball: one copy of tile per
// vertex, all sharing material.
func NewTiles(vertices []mgl64.Vec3, tile *geometry.Geometry, material *scene.Material) *scene.Mesh {
	mesh := scene.NewInstancedMesh(tile, material, len(vertices))
	copy(mesh.Instances, TileTransforms(vertices, mgl64.Vec3{}))
	return mesh
}
