package night

import (
	"image"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/nightfield/internal/engine/lighting"
	sg "github.com/Faultbox/nightfield/internal/engine/scenegraph"
	"github.com/Faultbox/nightfield/pkg/math"
)

type flatField float32

func (f flatField) Sample(u, v float32) float32 { return float32(f) }

func build(t *testing.T, opts Options) *World {
	t.Helper()
	w, err := Build(opts)
	require.NoError(t, err)
	return w
}

func TestBuildAssemblesScene(t *testing.T) {
	w := build(t, Options{})

	trees, lights := 0, 0
	w.Scene.Root.Traverse(func(n *sg.Node) {
		if n.Name == "tree" {
			trees++
		}
		if n.Light != nil {
			lights++
		}
	})
	assert.Equal(t, len(Trees), trees)
	// Ambient, moon, spot and one per satellite.
	assert.Equal(t, 3+SatelliteCount, lights)
	assert.Len(t, w.Ovni.Satellites, SatelliteCount)
	assert.Equal(t, float32(-5), w.Root.Position.Y)
}

func TestSatellitesRingTheHull(t *testing.T) {
	w := build(t, Options{})

	var prev float32
	for i, s := range w.Ovni.Satellites {
		p := s.Position
		e := (p.X/ovniHull.X)*(p.X/ovniHull.X) + (p.Y/ovniHull.Y)*(p.Y/ovniHull.Y)
		assert.InDelta(t, 1, e, 1e-5)

		// Evenly spaced around the spin axis.
		yaw := s.Parent().Rotation.Y
		if i > 0 {
			assert.InDelta(t, 2*math32.Pi/SatelliteCount, yaw-prev, 1e-5)
		}
		prev = yaw
	}
}

func TestMoonPosition(t *testing.T) {
	c := math32.Sqrt(54 * 54 / 2)
	p := MoonPosition()
	assert.InDelta(t, c/2, p.X, 1e-4)
	assert.InDelta(t, c, p.Y, 1e-4)
	assert.InDelta(t, -c/2, p.Z, 1e-4)
}

func TestFly(t *testing.T) {
	f := Flight{AngularSpeed: math32.Pi / 2, Speed: 20, Limit: DomeRadius - 5}

	t.Run("zero dt is a no-op", func(t *testing.T) {
		o := build(t, Options{}).Ovni
		pos, rot := o.Root.Position, o.Root.Rotation
		o.Fly(0, math.Vec2{X: 1}, f)
		o.Fly(-1, math.Vec2{X: 1}, f)
		assert.Equal(t, pos, o.Root.Position)
		assert.Equal(t, rot, o.Root.Rotation)
	})

	t.Run("idle still spins", func(t *testing.T) {
		o := build(t, Options{}).Ovni
		o.Fly(0.5, math.Vec2{}, f)
		assert.InDelta(t, math32.Pi/4, o.Root.Rotation.Y, 1e-6)
		assert.Equal(t, float32(0), o.Root.Position.X)
	})

	t.Run("diagonal speed is normalized", func(t *testing.T) {
		o := build(t, Options{}).Ovni
		o.Fly(0.1, Heading(true, false, true, false), f)
		assert.InDelta(t, 2, o.Root.Position.XZ().Length(), 1e-4)
		assert.Equal(t, float32(20), o.Root.Position.Y)
	})

	t.Run("slides along the containment wall", func(t *testing.T) {
		o := build(t, Options{}).Ovni
		for i := 0; i < 600; i++ {
			o.Fly(1.0/60, Heading(false, false, true, false), f)
			assert.LessOrEqual(t, o.Root.Position.XZ().Length(), f.Limit+1e-3)
		}
		assert.InDelta(t, f.Limit, o.Root.Position.X, 1e-3)

		// Pushing along the wall keeps it on the wall.
		for i := 0; i < 30; i++ {
			o.Fly(1.0/60, Heading(true, false, true, false), f)
		}
		assert.InDelta(t, f.Limit, o.Root.Position.XZ().Length(), 1e-3)
		assert.Greater(t, o.Root.Position.Z, float32(0))
	})
}

func TestHeading(t *testing.T) {
	assert.Equal(t, math.Vec2{}, Heading(true, true, true, true))
	assert.Equal(t, math.Vec2{X: 1}, Heading(false, false, true, false))
	assert.Equal(t, math.Vec2{Y: -1}, Heading(false, true, false, false))
}

func TestLightTogglesRestore(t *testing.T) {
	w := build(t, Options{})

	require.True(t, w.PointLightsOn())
	w.TogglePointLights()
	for _, s := range w.Ovni.Satellites {
		assert.False(t, s.Visible)
	}
	w.TogglePointLights()
	assert.True(t, w.PointLightsOn())

	w.ToggleSpotlight()
	assert.False(t, w.Ovni.Spot.Visible)
	w.ToggleSpotlight()
	assert.True(t, w.Ovni.Spot.Visible)

	w.ToggleMoonLight()
	w.ToggleMoonLight()
	assert.True(t, w.MoonLight.Visible)
}

func TestTextureToggles(t *testing.T) {
	floral := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	starry := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	w := build(t, Options{Floral: floral, Starry: starry})

	assert.Same(t, floral, w.Terrain.Mesh.Material.Map)
	assert.Equal(t, lighting.RGB(ColorWhite), w.Sky.Mesh.Material.Color)

	w.ToggleFloral()
	assert.Nil(t, w.Terrain.Mesh.Material.Map)
	w.ToggleStarry()
	assert.Nil(t, w.Sky.Mesh.Material.Map)
	assert.Equal(t, lighting.RGB(ColorDarkBlue), w.Sky.Mesh.Material.Color)

	w.ToggleFloral()
	w.ToggleStarry()
	assert.Same(t, floral, w.Terrain.Mesh.Material.Map)
	assert.Same(t, starry, w.Sky.Mesh.Material.Map)
}

func TestStyleSwitch(t *testing.T) {
	w := build(t, Options{})
	assert.False(t, w.ApplyStyle())

	w.RequestStyle(lighting.Toon)
	require.True(t, w.ApplyStyle())
	assert.False(t, w.ApplyStyle())
	assert.Equal(t, lighting.Toon, w.Style())

	w.Root.Traverse(func(n *sg.Node) {
		if n.Mesh == nil {
			return
		}
		switch n.Tag {
		case TagTerrain:
			assert.Equal(t, lighting.Phong, n.Mesh.Material.Model)
		case TagSky:
			assert.Equal(t, lighting.Basic, n.Mesh.Material.Model)
		default:
			assert.Equal(t, lighting.Toon, n.Mesh.Material.Model, "mesh %s", n.Name)
		}
	})

	w.ToggleShading()
	w.ApplyStyle()
	assert.Equal(t, lighting.Basic, w.Style())
	w.ToggleShading()
	w.ApplyStyle()
	assert.Equal(t, lighting.Phong, w.Style())
}

func TestHeightMapDisplacesTerrain(t *testing.T) {
	w := build(t, Options{HeightMap: flatField(1), HeightScale: 5})
	b := w.Terrain.Mesh.Geometry.Bounds
	assert.InDelta(t, 5, b.Min.Z, 1e-4)
	assert.InDelta(t, 5, b.Max.Z, 1e-4)
}
