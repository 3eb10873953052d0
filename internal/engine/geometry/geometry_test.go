package geometry

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/nightfield/pkg/math"
)

const tol = 1e-4

func assertIndicesInRange(t *testing.T, g *Geometry) {
	t.Helper()
	for i, idx := range g.Indices {
		require.Less(t, int(idx), len(g.Vertices), "index %d", i)
	}
	require.Zero(t, len(g.Indices)%3)
}

func TestBox(t *testing.T) {
	g := Box(2, 5, 12)
	assertIndicesInRange(t, g)
	assert.Len(t, g.Vertices, 24)
	assert.Equal(t, 12, g.TriangleCount())
	assert.Equal(t, math.Vec3{X: -1, Y: -2.5, Z: -6}, g.Bounds.Min)
	assert.Equal(t, math.Vec3{X: 1, Y: 2.5, Z: 6}, g.Bounds.Max)

	// Faces are wound counter-clockwise seen from outside.
	for tri := 0; tri < g.TriangleCount(); tri++ {
		a := vec(g.Vertices[g.Indices[tri*3]].Position)
		b := vec(g.Vertices[g.Indices[tri*3+1]].Position)
		c := vec(g.Vertices[g.Indices[tri*3+2]].Position)
		n := b.Sub(a).Cross(c.Sub(a))
		assert.Greater(t, n.Dot(a.Add(b).Add(c)), float32(0), "triangle %d faces inward", tri)
	}
}

func TestCylinder(t *testing.T) {
	g := Cylinder(2, 2, 2, 32)
	assertIndicesInRange(t, g)
	assert.Equal(t, 4*32, g.TriangleCount())
	assert.InDelta(t, -1, g.Bounds.Min.Y, tol)
	assert.InDelta(t, 1, g.Bounds.Max.Y, tol)
	assert.InDelta(t, 2, g.Bounds.Max.X, tol)
	assert.InDelta(t, -2, g.Bounds.Min.Z, tol)
}

func TestSphere(t *testing.T) {
	g := Sphere(3, 32, 16)
	assertIndicesInRange(t, g)
	assert.Equal(t, 2*32*(16-1), g.TriangleCount())
	for _, v := range g.Vertices {
		assert.InDelta(t, 3, vec(v.Position).Length(), tol)
	}
}

func TestSphereSectionHemisphere(t *testing.T) {
	g := SphereSection(64, 32, 32, 0, 2*math32.Pi, 0, math32.Pi/2)
	assertIndicesInRange(t, g)
	assert.Greater(t, g.Bounds.Min.Y, float32(-tol))
	assert.InDelta(t, 64, g.Bounds.Max.Y, tol)
	// The open rim keeps its last band of triangles.
	assert.Equal(t, 32+2*32*31, g.TriangleCount())
}

func TestCircle(t *testing.T) {
	fan := Circle(64, 128, 1)
	assertIndicesInRange(t, fan)
	assert.Equal(t, 128, fan.TriangleCount())

	disc := Circle(10, 16, 4)
	assertIndicesInRange(t, disc)
	assert.Equal(t, 16*(2*4-1), disc.TriangleCount())
	assert.InDelta(t, 10, disc.Bounds.Max.X, tol)
	assert.Zero(t, disc.Bounds.Max.Z)
}

func TestFromBuffers(t *testing.T) {
	g, err := FromBuffers([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, []uint32{0, 1, 2})
	require.NoError(t, err)
	for _, v := range g.Vertices {
		assert.Equal(t, [3]float32{0, 0, 1}, v.Normal)
	}

	_, err = FromBuffers([]float32{0, 0, 0, 1, 0, 0}, []uint32{0, 1, 2})
	assert.ErrorIs(t, err, ErrInvalidBuffer)

	_, err = FromBuffers([]float32{0, 0}, nil)
	assert.ErrorIs(t, err, ErrInvalidBuffer)

	_, err = FromBuffers([]float32{0, 0, 0}, []uint32{0, 0})
	assert.ErrorIs(t, err, ErrInvalidBuffer)
}

func TestMustFromBuffersPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustFromBuffers([]float32{0, 0, 0}, []uint32{0, 1, 2})
	})
}

type flatField float32

func (f flatField) Sample(u, v float32) float32 { return float32(f) }

func TestDisplace(t *testing.T) {
	g := Circle(10, 16, 3)
	g.Displace(flatField(0.5), 4)
	for _, v := range g.Vertices {
		assert.InDelta(t, 2, v.Position[2], tol)
		assert.InDelta(t, 1, v.Normal[2], tol)
	}
	assert.InDelta(t, 2, g.Bounds.Min.Z, tol)
}

func TestSmoothNormalsSharedPosition(t *testing.T) {
	verts := []Vertex{
		{Position: [3]float32{1, 1, 1}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{1, 1, 1}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{5, 5, 5}, Normal: [3]float32{0, 0, 1}},
	}
	SmoothNormals(verts)
	assert.Equal(t, verts[0].Normal, verts[1].Normal)
	assert.InDelta(t, math32.Sqrt(0.5), verts[0].Normal[0], tol)
	assert.Equal(t, [3]float32{0, 0, 1}, verts[2].Normal)
}
