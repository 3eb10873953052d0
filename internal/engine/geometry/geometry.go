// Package geometry builds indexed triangle meshes: the parametric primitives
// used by the scenes and raw position/index buffers for hand-authored shapes.
package geometry

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/nightfield/pkg/math"
)

// ErrInvalidBuffer is returned when raw buffers do not describe a triangle mesh.
var ErrInvalidBuffer = errors.New("invalid geometry buffer")

// Vertex is a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Geometry is an indexed triangle list ready for GPU upload or rasterization.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   math.Box3
}

// TriangleCount returns the number of indexed triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// FromBuffers builds a geometry from flat xyz positions and triangle
// indices, then derives smooth per-vertex normals from the faces.
func FromBuffers(positions []float32, indices []uint32) (*Geometry, error) {
	if len(positions)%3 != 0 {
		return nil, fmt.Errorf("%w: %d position floats is not a multiple of 3", ErrInvalidBuffer, len(positions))
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalidBuffer, len(indices))
	}

	count := len(positions) / 3
	for i, idx := range indices {
		if int(idx) >= count {
			return nil, fmt.Errorf("%w: index %d at %d exceeds %d vertices", ErrInvalidBuffer, idx, i, count)
		}
	}

	g := &Geometry{
		Vertices: make([]Vertex, count),
		Indices:  append([]uint32(nil), indices...),
	}
	for i := range g.Vertices {
		g.Vertices[i].Position = [3]float32{positions[i*3], positions[i*3+1], positions[i*3+2]}
	}

	g.ComputeVertexNormals()
	g.ComputeBounds()
	return g, nil
}

// MustFromBuffers is FromBuffers for literal data known to be valid.
func MustFromBuffers(positions []float32, indices []uint32) *Geometry {
	g, err := FromBuffers(positions, indices)
	if err != nil {
		panic(err)
	}
	return g
}

// ComputeBounds refreshes the bounding box from the vertex positions.
func (g *Geometry) ComputeBounds() {
	b := math.EmptyBox3()
	for i := range g.Vertices {
		p := g.Vertices[i].Position
		b.ExpandByPoint(math.Vec3{X: p[0], Y: p[1], Z: p[2]})
	}
	g.Bounds = b
}

// ComputeVertexNormals replaces vertex normals with the normalized sum of the
// area-weighted normals of every face that references the vertex.
func (g *Geometry) ComputeVertexNormals() {
	for i := range g.Vertices {
		g.Vertices[i].Normal = [3]float32{}
	}

	for t := 0; t+2 < len(g.Indices); t += 3 {
		a, b, c := g.Indices[t], g.Indices[t+1], g.Indices[t+2]
		pa := vec(g.Vertices[a].Position)
		pb := vec(g.Vertices[b].Position)
		pc := vec(g.Vertices[c].Position)

		n := pc.Sub(pb).Cross(pa.Sub(pb))
		for _, idx := range [3]uint32{a, b, c} {
			nv := &g.Vertices[idx].Normal
			nv[0] += n.X
			nv[1] += n.Y
			nv[2] += n.Z
		}
	}

	for i := range g.Vertices {
		g.Vertices[i].Normal = vec(g.Vertices[i].Normal).Normalize().Array()
	}
}

// HeightField samples a scalar height in [0, 1] at texture coordinates.
type HeightField interface {
	Sample(u, v float32) float32
}

// Displace pushes every vertex along its normal by the field height at its
// texture coordinate times scale, then rebuilds normals and bounds.
func (g *Geometry) Displace(field HeightField, scale float32) {
	for i := range g.Vertices {
		v := &g.Vertices[i]
		h := field.Sample(v.TexCoord[0], v.TexCoord[1]) * scale
		p := vec(v.Position).Add(vec(v.Normal).Scale(h))
		v.Position = p.Array()
	}
	g.ComputeVertexNormals()
	SmoothNormals(g.Vertices)
	g.ComputeBounds()
}

// SmoothNormals averages normals at shared vertex positions so seams where
// vertices are duplicated for texture wrapping do not shade as creases.
func SmoothNormals(vertices []Vertex) {
	const epsilon float32 = 0.001

	// Group vertices by quantized position for O(n) lookup
	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		key := [3]int32{
			int32(math32.Floor(vertices[i].Position[0]/epsilon + 0.5)),
			int32(math32.Floor(vertices[i].Position[1]/epsilon + 0.5)),
			int32(math32.Floor(vertices[i].Position[2]/epsilon + 0.5)),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}

		var sum math.Vec3
		for _, idx := range idxs {
			sum = sum.Add(vec(vertices[idx].Normal))
		}
		avg := sum.Normalize().Array()

		for _, idx := range idxs {
			vertices[idx].Normal = avg
		}
	}
}

func vec(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
