// Package night builds the moonlit field: terrain under a sky dome, a moon,
// a farmhouse, oak trees and a flying saucer carrying its own lights.
package night

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"

	"github.com/Faultbox/nightfield/internal/engine/geometry"
	"github.com/Faultbox/nightfield/internal/engine/lighting"
	sg "github.com/Faultbox/nightfield/internal/engine/scenegraph"
	"github.com/Faultbox/nightfield/internal/scene/house"
	"github.com/Faultbox/nightfield/internal/scene/placement"
	"github.com/Faultbox/nightfield/pkg/math"
)

// DomeRadius bounds the world. Terrain disc and sky hemisphere share it.
const DomeRadius = 64

const (
	moonPadding      = 10
	cylinderSegments = 32
	sphereSegments   = 32
	terrainSegments  = 128
	terrainRings     = 48
)

// Colors.
const (
	ColorDarkBlue   = 0x000099
	ColorDarkPurple = 0x4b0082
	ColorLilac      = 0xb89fb8
	ColorGreen      = 0x55cc55
	ColorDarkGreen  = 0x5e8c61
	ColorRed        = 0xe63946
	ColorSkyBlue    = 0x87ceeb
	ColorLightCyan  = 0xb0e0e6
	ColorBrown      = 0x8b5a2b
	ColorOrange     = 0xffa500
	ColorLightBlue  = 0x9ec4d2
	ColorBlue       = 0x4682b4
	ColorWhite      = 0xffffff
	ColorYellow     = 0xffd700
	ColorMoonYellow = 0xf0c05a
	ColorAmbient    = 0x404040
)

// Light intensities.
const (
	ambientIntensity    = 3
	moonLightIntensity  = 1
	spotIntensity       = 500
	satelliteIntensity  = 2
	satelliteLightRange = 20
	spotRange           = 50
	spotAngle           = math32.Pi / 6
	spotPenumbra        = 0.5
	spotDecay           = 1.7
)

// Surface tags.
const (
	TagTerrain         sg.Tag = "terrain"
	TagSky             sg.Tag = "sky"
	TagMoon            sg.Tag = "moon"
	TagTrunk           sg.Tag = "trunk"
	TagPrimaryBranch   sg.Tag = "primary-branch"
	TagSecondaryBranch sg.Tag = "secondary-branch"
	TagLeaf            sg.Tag = "leaf"
	TagOvniBody        sg.Tag = "ovni-body"
	TagCockpit         sg.Tag = "cockpit"
	TagSpotHousing     sg.Tag = "spot-housing"
	TagSatellite       sg.Tag = "satellite"
	TagWalls           sg.Tag = "walls"
	TagRoof            sg.Tag = "roof"
	TagWindows         sg.Tag = "windows"
	TagDoor            sg.Tag = "door"
)

// Palette returns the params of every surface that follows material style
// switches. Terrain and sky keep their own materials.
func Palette() sg.Palette {
	double := func(hex uint32) sg.Params {
		p := sg.Solid(hex)
		p.Side = sg.DoubleSide
		return p
	}
	moon := sg.Solid(ColorMoonYellow)
	moon.Emissive = lighting.RGB(ColorMoonYellow)
	moon.EmissiveIntensity = 0.5
	cockpit := sg.Solid(ColorSkyBlue)
	cockpit.Opacity = 0.75
	cockpit.Transparent = true

	return sg.Palette{
		TagMoon:            moon,
		TagTrunk:           sg.Solid(ColorBrown),
		TagPrimaryBranch:   sg.Solid(ColorBrown),
		TagSecondaryBranch: sg.Solid(ColorBrown),
		TagLeaf:            sg.Solid(ColorDarkGreen),
		TagOvniBody:        sg.Solid(ColorRed),
		TagCockpit:         cockpit,
		TagSpotHousing:     sg.Solid(ColorLightCyan),
		TagSatellite:       sg.Solid(ColorLightCyan),
		TagWalls:           double(ColorWhite),
		TagRoof:            double(ColorOrange),
		TagWindows:         double(ColorLightBlue),
		TagDoor:            double(ColorBlue),
	}
}

// Tree is one oak placement: trunk height, base position and yaw.
type Tree struct {
	TrunkHeight float32
	Position    math.Vec3
	Yaw         float32
}

// Trees scattered around the house.
var Trees = []Tree{
	{3, math.V3(-35, 1.5, 25), math32.Pi / 2},
	{4, math.V3(-20, 1.5, -30), -math32.Pi / 2},
	{6, math.V3(25, 3, -35), math32.Pi / 3},
	{3, math.V3(30, 3, 25), -math32.Pi / 4},
	{2, math.V3(55, 1.5, 15), math32.Pi / 6},
	{2.5, math.V3(-45, 1.5, 15), -math32.Pi / 6},
	{3, math.V3(-55, 1.5, -15), math32.Pi / 4},
	{2, math.V3(-10, 2, -25), -math32.Pi / 3},
	{5, math.V3(45, 1.75, 20), math32.Pi / 5},
	{4, math.V3(-30, 1.3, -10), math32.Pi / 2},
	{3.5, math.V3(25, 1.75, 10), -math32.Pi / 5},
}

// MoonPosition is where the moon hangs inside the dome, in root space.
func MoonPosition() math.Vec3 {
	c := math32.Sqrt((DomeRadius - moonPadding) * (DomeRadius - moonPadding) / 2)
	return math.V3(c/2, c, -c/2)
}

// Options are the external inputs of the scene.
type Options struct {
	// HeightMap displaces the terrain when set.
	HeightMap   geometry.HeightField
	HeightScale float32
	Floral      image.Image
	Starry      image.Image
}

// World is the assembled night scene and the handles its controls mutate.
type World struct {
	Scene     *sg.Scene
	Root      *sg.Node
	Terrain   *sg.Node
	Sky       *sg.Node
	MoonLight *sg.Node
	Ovni      *Ovni

	floral, starry image.Image
	floralOn       bool
	starryOn       bool

	active, requested lighting.Model
}

// shapes holds the geometry shared across instances.
type shapes struct {
	trunk, primary, secondary, leaf *geometry.Geometry
	ovniBody, cockpit, housing      *geometry.Geometry
	satellite                       *geometry.Geometry
}

func newShapes() *shapes {
	return &shapes{
		trunk:     geometry.Cylinder(0.5, 0.5, 1, cylinderSegments),
		primary:   geometry.Cylinder(0.5, 0.5, 4, cylinderSegments),
		secondary: geometry.Cylinder(0.4, 0.4, 4, cylinderSegments),
		leaf:      geometry.Sphere(1, sphereSegments, sphereSegments),
		ovniBody:  geometry.Sphere(1, sphereSegments, sphereSegments),
		cockpit:   geometry.Sphere(1.5, sphereSegments, sphereSegments),
		housing:   geometry.Cylinder(1.5, 1.5, 0.5, cylinderSegments),
		satellite: geometry.Sphere(0.25, sphereSegments, sphereSegments),
	}
}

// Build assembles the scene with textures on and Phong materials.
func Build(opts Options) (*World, error) {
	w := &World{
		Root:      sg.NewGroup("root").At(0, -5, 0),
		floral:    opts.Floral,
		starry:    opts.Starry,
		floralOn:  opts.Floral != nil,
		starryOn:  opts.Starry != nil,
		active:    lighting.Phong,
		requested: lighting.Phong,
	}
	palette := Palette()
	s := newShapes()

	mesh := func(name string, tag sg.Tag, g *geometry.Geometry) *sg.Node {
		return sg.NewMesh(name, tag, g, sg.NewMaterial(lighting.Phong, palette[tag]))
	}

	w.Terrain = w.buildTerrain(opts)
	w.Sky = sg.NewMesh("sky", TagSky,
		geometry.SphereSection(DomeRadius, sphereSegments, sphereSegments, 0, 2*math32.Pi, 0, math32.Pi/2),
		sg.NewMaterial(lighting.Basic, sg.Params{Opacity: 1, Side: sg.BackSide}))
	w.applySky()

	moonPos := MoonPosition()
	moon := mesh("moon", TagMoon, geometry.Sphere(5, sphereSegments, sphereSegments))
	moon.Position = moonPos

	moonTarget := math.V3(15, 20, 5)
	w.MoonLight = sg.NewLight("moon-light",
		lighting.NewDirectional(lighting.RGB(ColorMoonYellow), moonLightIntensity, moonTarget.Sub(moonPos)))
	w.MoonLight.Position = moonPos

	home := sg.NewGroup("house").At(10, 2.1, 9.5).Rotated(0, math32.Pi, 0)
	home.Add(
		mesh("walls", TagWalls, house.Walls()),
		mesh("roof", TagRoof, house.Roof()),
		mesh("windows", TagWindows, house.Windows()),
		mesh("door", TagDoor, house.Door()),
	)

	w.Root.Add(w.Terrain, w.Sky, moon, w.MoonLight, home)

	for i, t := range Trees {
		tree, err := buildTree(s, mesh, t)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		w.Root.Add(tree)
	}

	ovni, err := buildOvni(s, mesh)
	if err != nil {
		return nil, fmt.Errorf("ovni: %w", err)
	}
	ovni.Root.At(0, 20, 0)
	w.Ovni = ovni
	w.Root.Add(ovni.Root)

	scene := sg.NewGroup("scene")
	scene.Add(sg.NewLight("ambient", lighting.NewAmbient(lighting.RGB(ColorAmbient), ambientIntensity)), w.Root)
	w.Scene = &sg.Scene{Root: scene, Background: lighting.RGB(0x000000)}
	return w, nil
}

func (w *World) buildTerrain(opts Options) *sg.Node {
	g := geometry.Circle(DomeRadius, terrainSegments, terrainRings)
	if opts.HeightMap != nil {
		g.Displace(opts.HeightMap, opts.HeightScale)
	}
	p := sg.Solid(ColorGreen)
	p.Side = sg.DoubleSide
	m := sg.NewMaterial(lighting.Phong, p)
	m.Map = opts.Floral
	return sg.NewMesh("terrain", TagTerrain, g, m).Rotated(-math32.Pi/2, 0, 0)
}

func (w *World) applySky() {
	m := w.Sky.Mesh.Material
	if w.starryOn {
		m.Map = w.starry
		m.Color = lighting.RGB(ColorWhite)
		return
	}
	m.Map = nil
	m.Color = lighting.RGB(ColorDarkBlue)
}

type meshFunc func(name string, tag sg.Tag, g *geometry.Geometry) *sg.Node

// Leaf ellipsoid scales.
var (
	primaryLeafScale   = math.V3(2.3, 1.1, 1.5)
	secondaryLeafScale = math.V3(3, 1.375, 2.5)
)

// buildTree grows an oak: a trunk with a primary branch leaning toward +X,
// a secondary branch leaning the other way, and a leaf ellipsoid on each.
func buildTree(s *shapes, mesh meshFunc, t Tree) (*sg.Node, error) {
	const (
		trunkRadius   = 0.5
		branchHeight  = 4
		primaryRadius = 0.5
		primaryTilt   = math32.Pi / 6
		secondaryTilt = math32.Pi / 3
	)
	h := t.TrunkHeight

	primary, err := placement.BranchOffset(primaryTilt, branchHeight, primaryRadius, trunkRadius)
	if err != nil {
		return nil, err
	}

	tree := sg.NewGroup("tree")
	tree.Position = t.Position
	tree.Rotation.Y = t.Yaw

	trunk := mesh("trunk", TagTrunk, s.trunk).At(0, h/2, 0).Scaled(1, h, 1)

	branch := mesh("primary-branch", TagPrimaryBranch, s.primary).
		At(primary.Offset.X, h+primary.Offset.Y, 0).
		Rotated(0, 0, primary.Tilt)

	second := mesh("secondary-branch", TagSecondaryBranch, s.secondary).
		At(-branchHeight/4, h+branchHeight/2, 0).
		Rotated(0, 0, secondaryTilt)

	crownY := h + primary.Offset.Y*2 + primaryLeafScale.Y/2
	leaf := mesh("leaf", TagLeaf, s.leaf).At(primary.Offset.X*2, crownY, 0)
	leaf.Scale = primaryLeafScale
	leaf2 := mesh("leaf", TagLeaf, s.leaf).At(-branchHeight*2/3, crownY, 0)
	leaf2.Scale = secondaryLeafScale

	tree.Add(trunk, branch, second, leaf, leaf2)
	return tree, nil
}
