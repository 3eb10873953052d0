package house

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/nightfield/internal/engine/geometry"
)

func TestBuildersAreTotal(t *testing.T) {
	tests := []struct {
		name      string
		build     func() *geometry.Geometry
		vertices  int
		triangles int
	}{
		{"walls", Walls, 56, 38},
		{"roof", Roof, 14, 6},
		{"windows", Windows, 20, 10},
		{"door", Door, 4, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.build()
			assert.Len(t, g.Vertices, tt.vertices)
			assert.Equal(t, tt.triangles, g.TriangleCount())
			for _, idx := range g.Indices {
				assert.Less(t, int(idx), len(g.Vertices))
			}
		})
	}
}

func TestWallsFootprint(t *testing.T) {
	b := Walls().Bounds
	assert.Equal(t, float32(0), b.Min.X)
	assert.Equal(t, float32(Width), b.Max.X)
	assert.Equal(t, float32(-Depth), b.Min.Z)
	assert.Equal(t, float32(0), b.Max.Z)
	assert.Equal(t, float32(WallHeight), b.Max.Y)
}

func TestRoofSitsOnWalls(t *testing.T) {
	b := Roof().Bounds
	assert.Equal(t, float32(WallHeight), b.Min.Y)
	assert.Equal(t, float32(RidgeHeight), b.Max.Y)
}

func TestPanesLieInWallPlanes(t *testing.T) {
	for i, v := range Windows().Vertices {
		front := v.Position[2] == 0
		side := v.Position[0] == Width
		assert.True(t, front || side, "window vertex %d at %v is off the walls", i, v.Position)
	}
	door := Door().Bounds
	assert.Equal(t, float32(0), door.Min.Y)
	assert.Equal(t, float32(2.5), door.Max.Y)
}
