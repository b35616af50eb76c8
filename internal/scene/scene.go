// Package scene is a small retained scene graph: nodes with transforms,
// meshes (optionally instanced) and the materials they are drawn with.
package scene

import "image/color"

// Scene is the root of everything that gets rendered.
type Scene struct {
	Root       *Node
	Background color.NRGBA
}

// New returns an empty scene with the given clear colour.
func New(background color.NRGBA) *Scene {
	return &Scene{Root: NewNode("root"), Background: background}
}

// Add attaches a node to the scene root.
func (s *Scene) Add(n *Node) {
	s.Root.Add(n)
}

// Clone returns a snapshot of the scene sharing meshes and materials.
func (s *Scene) Clone() *Scene {
	return &Scene{Root: s.Root.Clone(), Background: s.Background}
}
