package scenegraph

import (
	"image"

	"github.com/Faultbox/nightfield/internal/engine/lighting"
)

// Side selects which faces of a mesh are drawn.
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// Params are the per-tag appearance values a material is built from.
type Params struct {
	Color             [3]float32
	Emissive          [3]float32
	EmissiveIntensity float32
	Shininess         float32
	Opacity           float32
	Transparent       bool
	Side              Side
}

// Solid returns opaque front-sided params of the given 0xRRGGBB color.
func Solid(hex uint32) Params {
	return Params{Color: lighting.RGB(hex), Opacity: 1}
}

// Material styles a mesh.
type Material struct {
	Model lighting.Model
	Params
	Wireframe bool
	// Map is an optional color texture sampled with the vertex texture
	// coordinates.
	Map image.Image
}

// NewMaterial creates a material of the given model.
func NewMaterial(model lighting.Model, p Params) *Material {
	return &Material{Model: model, Params: p}
}

// Surface returns the shading inputs for m.
func (m *Material) Surface() lighting.Surface {
	return lighting.Surface{
		Model:             m.Model,
		Color:             m.Color,
		Emissive:          m.Emissive,
		EmissiveIntensity: m.EmissiveIntensity,
		Shininess:         m.Shininess,
	}
}

// Alpha returns the effective opacity.
func (m *Material) Alpha() float32 {
	if !m.Transparent {
		return 1
	}
	return m.Opacity
}

// Palette maps mesh tags to the params their materials are rebuilt from.
type Palette map[Tag]Params

// Restyle gives every mesh whose tag is in palette a fresh material of the
// given model. The wireframe flag carries over; texture maps do not.
// Returns the number of meshes restyled.
func Restyle(root *Node, model lighting.Model, palette Palette) int {
	count := 0
	root.Traverse(func(n *Node) {
		if n.Mesh == nil {
			return
		}
		p, ok := palette[n.Tag]
		if !ok {
			return
		}
		m := NewMaterial(model, p)
		if n.Mesh.Material != nil {
			m.Wireframe = n.Mesh.Material.Wireframe
		}
		n.Mesh.Material = m
		count++
	})
	return count
}

// ToggleWireframe flips the wireframe flag of every material in the
// subtree once, even when meshes share a material.
func ToggleWireframe(root *Node) {
	seen := make(map[*Material]bool)
	root.Traverse(func(n *Node) {
		if n.Mesh == nil || n.Mesh.Material == nil || seen[n.Mesh.Material] {
			return
		}
		seen[n.Mesh.Material] = true
		n.Mesh.Material.Wireframe = !n.Mesh.Material.Wireframe
	})
}

// Scene is a renderable root with its clear color.
type Scene struct {
	Root       *Node
	Background [3]float32
}
