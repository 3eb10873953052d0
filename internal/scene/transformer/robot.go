package transformer

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/nightfield/internal/engine/lighting"
	sg "github.com/Faultbox/nightfield/internal/engine/scenegraph"
	"github.com/Faultbox/nightfield/pkg/math"
)

// Body is the robot torso with its head, arms and legs.
type Body struct {
	Root     *sg.Node
	Head     *Head
	LeftArm  *Arm
	RightArm *Arm
	LeftLeg  *Leg
	RightLeg *Leg
}

// NewBody builds the robot standing upright at its home position.
func NewBody() *Body {
	b := &Body{Root: sg.NewGroup("robot").At(-25, -1, 0)}

	torso := sg.NewGroup("torso")
	torso.Add(
		box("chest", 3, 5, 12, ColorChest).At(-1, 0, 0),
		box("back", 2, 5, 8, ColorChest).At(1.5, 0, 0),
		box("abdomen", 5, 5, 8, ColorBlue).At(0, -5, 0),
		box("waist", 6, 2, 9, ColorGrey).At(-0.5, -8.5, 0),
		wheel("waist-wheel", 2, -9, 5.5),
		wheel("waist-wheel", 2, -9, -5.5),
	)

	b.LeftArm = NewArm(false)
	b.LeftArm.Root.At(-3.5, 1, -4)
	b.RightArm = NewArm(true)
	b.RightArm.Root.At(-3.5, 1, 12)

	b.Head = NewHead()
	b.Head.Root.At(0.5, 4.5, 0)

	b.LeftLeg = NewLeg(false)
	b.LeftLeg.Root.At(0, -8, -0.5)
	b.RightLeg = NewLeg(true)
	b.RightLeg.Root.At(0, -8, 4.5)

	torso.Add(b.LeftArm.Root, b.RightArm.Root, b.Head.Root, b.LeftLeg.Root, b.RightLeg.Root)
	b.Root.Add(torso)
	return b
}

// IsTruck reports whether every joint sits at its folded extreme.
func (b *Body) IsTruck() bool {
	return b.Head.Stowed() &&
		b.LeftArm.Stowed() && b.RightArm.Stowed() &&
		b.LeftLeg.Stowed() && b.RightLeg.Stowed()
}

// Node returns the root of the robot subtree.
func (b *Body) Node() *sg.Node {
	return b.Root
}

// Trailer is the cargo box. Its cargo node slides within a parent turned
// half a turn about Y, so positive cargo X points toward the robot.
type Trailer struct {
	Root  *sg.Node
	cargo *sg.Node
	box   *sg.Node
}

// NewTrailer builds the trailer parked at its home position.
func NewTrailer() *Trailer {
	t := &Trailer{
		Root:  sg.NewGroup("trailer").At(20, 0, 0).Rotated(0, math32.Pi, 0),
		cargo: sg.NewGroup("cargo"),
	}
	t.box = box("container", 36, 14, 14, ColorTrailer)
	hitch := box("hitch", 3, 1, 1, ColorRed).At(17, -8.5, 0)
	hitch.Rotation.Z = math32.Pi / 2

	t.cargo.Add(
		t.box,
		wheel("trailer-wheel", -8.5, -10, 5.5),
		wheel("trailer-wheel", -13.5, -10, 5.5),
		wheel("trailer-wheel", -8.5, -10, -5.5),
		wheel("trailer-wheel", -13.5, -10, -5.5),
		hitch,
		box("axle", 10, 3, 9, ColorBlue).At(-11, -8.5, 0),
	)
	t.Root.Add(t.cargo)
	return t
}

// UpdateX slides the cargo along its local X axis.
func (t *Trailer) UpdateX(dx float32) {
	t.cargo.Position.X += dx
}

// UpdateZ slides the cargo along its local Z axis.
func (t *Trailer) UpdateZ(dz float32) {
	t.cargo.Position.Z += dz
}

// Position returns the cargo offset in the trailer frame.
func (t *Trailer) Position() math.Vec3 {
	return t.cargo.Position
}

// SetPosition moves the cargo to p in the trailer frame.
func (t *Trailer) SetPosition(p math.Vec3) {
	t.cargo.Position = p
}

// Node returns the moving cargo node.
func (t *Trailer) Node() *sg.Node {
	return t.cargo
}

// Highlight tints the container, used while it is being hitched.
func (t *Trailer) Highlight(on bool) {
	color := uint32(ColorTrailer)
	if on {
		color = ColorDocking
	}
	t.box.Mesh.Material.Color = lighting.RGB(color)
}
