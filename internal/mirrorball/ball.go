// Package mirrorball assembles a single mirror ball: a dark inner sphere
// wrapped in an instanced layer of small matcap-shaded tiles, one per vertex
// of a subdivided icosahedron.
package mirrorball

import (
	"fmt"

	"mirror-balls/internal/geometry"
	"mirror-balls/internal/scene"
)

const (
	// Detail is the icosahedron subdivision level tiles are placed on.
	Detail = 3

	// TileScale is the tile edge length relative to the ball radius.
	TileScale = 0.23

	sphereSegments = 9
)

// Materials are shared by every ball in a scene.
type Materials struct {
	Inner *scene.Material
	Tiles *scene.Material
}

// Ball is a composite of the inner sphere and the tile batch.
type Ball struct {
	Radius float64
	Node   *scene.Node
	Inner  *scene.Mesh
	Tiles  *scene.Mesh
}

// New builds a ball of the given radius at the origin with identity
// transform. The owner is responsible for positioning it.
func New(radius float64, mats Materials) (*Ball, error) {
	if mats.Inner == nil || mats.Tiles == nil {
		return nil, fmt.Errorf("mirrorball: both materials are required")
	}

	sphere, err := geometry.Sphere(radius, sphereSegments, sphereSegments)
	if err != nil {
		return nil, fmt.Errorf("mirrorball: inner sphere: %w", err)
	}
	vertices, err := geometry.UniqueVertices(radius, Detail)
	if err != nil {
		return nil, fmt.Errorf("mirrorball: tile anchors: %w", err)
	}
	tile, err := geometry.Plane(TileScale*radius, TileScale*radius)
	if err != nil {
		return nil, fmt.Errorf("mirrorball: tile: %w", err)
	}

	b := &Ball{
		Radius: radius,
		Node:   scene.NewNode("ball"),
		Inner:  scene.NewMesh(sphere, mats.Inner),
		Tiles:  NewTiles(vertices, tile, mats.Tiles),
	}
	b.Node.Add(scene.NewMeshNode("inner", b.Inner))
	b.Node.Add(scene.NewMeshNode("tiles", b.Tiles))
	return b, nil
}

// TileCount returns the number of mirror tiles on the ball.
func (b *Ball) TileCount() int {
	return b.Tiles.Count()
}

// RotationY is the spin angle the animation drives.
func (b *Ball) RotationY() float64 {
	return b.Node.Rotation[1]
}

// SetRotationY sets the spin angle.
func (b *Ball) SetRotationY(a float64) {
	b.Node.Rotation[1] = a
}
