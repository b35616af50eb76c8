package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"mirror-balls/internal/mathutil"
)

// Node is an element of the scene graph. A node without a mesh is a group.
type Node struct {
	Name     string
	Position mgl64.Vec3
	Rotation mgl64.Vec3 // Euler XYZ, radians
	Scale    mgl64.Vec3
	Mesh     *Mesh

	parent   *Node
	children []*Node
}

// NewNode returns an empty group with identity transform.
func NewNode(name string) *Node {
	return &Node{Name: name, Scale: mgl64.Vec3{1, 1, 1}}
}

// NewMeshNode wraps a mesh in a node with identity transform.
func NewMeshNode(name string, m *Mesh) *Node {
	n := NewNode(name)
	n.Mesh = m
	return n
}

// Add attaches child to n, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. It reports whether child was found.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Children returns the direct children of n. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Parent returns the node n is attached to, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// LocalMatrix returns T · R · S of the node.
func (n *Node) LocalMatrix() mgl64.Mat4 {
	return mathutil.Compose(n.Position, n.Rotation, n.Scale)
}

// WorldMatrix walks up the parent chain.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// Traverse visits n and its descendants depth-first with their world matrices.
func (n *Node) Traverse(fn func(node *Node, world mgl64.Mat4)) {
	var parentWorld mgl64.Mat4
	if n.parent != nil {
		parentWorld = n.parent.WorldMatrix()
	} else {
		parentWorld = mgl64.Ident4()
	}
	n.traverse(parentWorld, fn)
}

func (n *Node) traverse(parentWorld mgl64.Mat4, fn func(*Node, mgl64.Mat4)) {
	world := parentWorld.Mul4(n.LocalMatrix())
	fn(n, world)
	for _, c := range n.children {
		c.traverse(world, fn)
	}
}

// Clone copies the transform hierarchy below n. Meshes are shared, so the
// copy is cheap and safe to render on another goroutine while n keeps
// animating.
func (n *Node) Clone() *Node {
	c := &Node{
		Name:     n.Name,
		Position: n.Position,
		Rotation: n.Rotation,
		Scale:    n.Scale,
		Mesh:     n.Mesh,
	}
	for _, child := range n.children {
		c.Add(child.Clone())
	}
	return c
}
