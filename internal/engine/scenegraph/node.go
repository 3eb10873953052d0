// Package scenegraph holds the hierarchical scene: transform nodes, the
// meshes and lights attached to them, and the materials that style meshes.
package scenegraph

import (
	"github.com/Faultbox/nightfield/internal/engine/geometry"
	"github.com/Faultbox/nightfield/internal/engine/lighting"
	"github.com/Faultbox/nightfield/pkg/math"
)

// Tag names the role a mesh plays in a scene, such as "trunk" or "leaf".
// Palettes key material parameters by tag.
type Tag string

// Mesh pairs geometry with the material that draws it.
type Mesh struct {
	Geometry *geometry.Geometry
	Material *Material
}

// Node is a transform in the scene graph. A node carries at most one mesh
// and at most one light; groups carry neither.
type Node struct {
	Name     string
	Tag      Tag
	Position math.Vec3
	Rotation math.Euler
	Scale    math.Vec3
	Visible  bool
	Mesh     *Mesh
	Light    *lighting.Light

	parent   *Node
	children []*Node
}

// NewGroup creates an empty transform node.
func NewGroup(name string) *Node {
	return &Node{
		Name:    name,
		Scale:   math.One(),
		Visible: true,
	}
}

// NewMesh creates a node drawing g with m.
func NewMesh(name string, tag Tag, g *geometry.Geometry, m *Material) *Node {
	n := NewGroup(name)
	n.Tag = tag
	n.Mesh = &Mesh{Geometry: g, Material: m}
	return n
}

// NewLight creates a node emitting l.
func NewLight(name string, l *lighting.Light) *Node {
	n := NewGroup(name)
	n.Light = l
	return n
}

// At sets the node position and returns the node.
func (n *Node) At(x, y, z float32) *Node {
	n.Position = math.Vec3{X: x, Y: y, Z: z}
	return n
}

// Rotated sets the node rotation and returns the node.
func (n *Node) Rotated(x, y, z float32) *Node {
	n.Rotation = math.Euler{X: x, Y: y, Z: z}
	return n
}

// Scaled sets the node scale and returns the node.
func (n *Node) Scaled(x, y, z float32) *Node {
	n.Scale = math.Vec3{X: x, Y: y, Z: z}
	return n
}

// Add attaches children to n, detaching them from any previous parent.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// Remove detaches child from n. Returns false if child was not attached.
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

// Parent returns the node n is attached to, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the attached nodes in insertion order.
func (n *Node) Children() []*Node {
	return n.children
}

// Local returns the transform from n's space to its parent's space.
func (n *Node) Local() math.Mat4 {
	return math.Compose(n.Position, n.Rotation, n.Scale)
}

// World returns the transform from n's space to the root's space.
func (n *Node) World() math.Mat4 {
	if n.parent == nil {
		return n.Local()
	}
	return n.parent.World().Mul(n.Local())
}

// Traverse calls fn for n and every descendant, depth first.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// TraverseVisible calls fn with the world matrix of every node reachable
// through visible ancestors. Hidden nodes prune their whole subtree.
func (n *Node) TraverseVisible(fn func(node *Node, world math.Mat4)) {
	var parent math.Mat4
	if n.parent != nil {
		parent = n.parent.World()
	} else {
		parent = math.Identity()
	}
	n.traverseVisible(parent, fn)
}

func (n *Node) traverseVisible(parent math.Mat4, fn func(*Node, math.Mat4)) {
	if !n.Visible {
		return
	}
	world := parent.Mul(n.Local())
	fn(n, world)
	for _, c := range n.children {
		c.traverseVisible(world, fn)
	}
}

// Find returns the first node named name in n's subtree.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// BoundingBox returns the world-space box enclosing every mesh in n's
// subtree, hidden ones included.
func BoundingBox(n *Node) math.Box3 {
	box := math.EmptyBox3()
	var walk func(node *Node, world math.Mat4)
	walk = func(node *Node, world math.Mat4) {
		world = world.Mul(node.Local())
		if node.Mesh != nil && node.Mesh.Geometry != nil {
			box.ExpandByBox(node.Mesh.Geometry.Bounds.Transform(world))
		}
		for _, c := range node.children {
			walk(c, world)
		}
	}
	parent := math.Identity()
	if n.parent != nil {
		parent = n.parent.World()
	}
	walk(n, parent)
	return box
}

// CollectLights fills buf with every visible light in n's subtree.
func CollectLights(n *Node, buf *lighting.Buffer) {
	buf.Clear()
	n.TraverseVisible(func(node *Node, world math.Mat4) {
		if node.Light != nil {
			buf.Add(lighting.Resolve(node.Light, world))
		}
	})
}
