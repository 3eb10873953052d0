// Package transformer builds the articulated robot that folds into a truck
// cab, and the trailer it can hitch. Each controller owns the pivot nodes
// of one part and clamps its joint to the part's range of motion.
package transformer

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/nightfield/internal/engine/geometry"
	"github.com/Faultbox/nightfield/internal/engine/lighting"
	sg "github.com/Faultbox/nightfield/internal/engine/scenegraph"
	"github.com/Faultbox/nightfield/pkg/math"
)

// Palette colors.
const (
	ColorRed      = 0xe32636
	ColorChest    = 0xff2a3d
	ColorBlue     = 0x0000ff
	ColorGrey     = 0xafafaf
	ColorEye      = 0xefefef
	ColorTire     = 0x000000
	ColorTrailer  = 0xcccfcf
	ColorDocking  = 0xffffff
	ColorBackdrop = 0xfff0f5
)

const (
	wheelRadius   = 2
	wheelSegments = 32
)

// Joint ranges.
const (
	leftArmMin  = -4
	leftArmMax  = -1
	rightArmMin = -7
	rightArmMax = -4
	legMax      = math32.Pi / 2
	footMax     = math32.Pi / 2

	headFoldedDown = -math32.Pi
)

func box(name string, w, h, d float32, color uint32) *sg.Node {
	return sg.NewMesh(name, sg.Tag(name), geometry.Box(w, h, d), sg.NewMaterial(lighting.Basic, sg.Solid(color)))
}

// Every wheel instance shares one cylinder.
var wheelGeometry = geometry.Cylinder(wheelRadius, wheelRadius, 2, wheelSegments)

func wheel(name string, x, y, z float32) *sg.Node {
	return sg.NewMesh(name, "wheel", wheelGeometry, sg.NewMaterial(lighting.Basic, sg.Solid(ColorTire))).
		At(x, y, z).
		Rotated(math32.Pi/2, 0, 0)
}

// Arm is a shoulder that slides along Z to tuck the arm into the cab.
type Arm struct {
	Root  *sg.Node
	pivot *sg.Node
	right bool
}

// NewArm builds the left or right arm.
func NewArm(right bool) *Arm {
	a := &Arm{Root: sg.NewGroup("arm"), right: right}
	a.pivot = sg.NewGroup("arm-pivot").At(5, -1, -4)
	a.Root.Add(a.pivot)

	side := float32(-1)
	if right {
		side = 1
	}
	a.pivot.Add(
		box("upper-arm", 2, 5, 2, ColorRed),
		box("arm-antenna", 1, 4, 1, ColorGrey).At(0, 3, 1.5*side),
		box("arm-junction", 1, 2, 3, ColorGrey).At(0, 0.75, -2*side),
		box("lower-arm", 4, 2, 2, ColorBlue).At(-1, -3.5, 0),
	)
	return a
}

func (a *Arm) limits() (float32, float32) {
	if a.right {
		return rightArmMin, rightArmMax
	}
	return leftArmMin, leftArmMax
}

// Update slides the arm by dz, clamped to its range.
func (a *Arm) Update(dz float32) {
	lo, hi := a.limits()
	a.pivot.Position.Z = math.Clamp(a.pivot.Position.Z+dz, lo, hi)
}

// Offset returns the current slide along Z.
func (a *Arm) Offset() float32 {
	return a.pivot.Position.Z
}

// Stowed reports whether the arm is tucked against the cab.
func (a *Arm) Stowed() bool {
	if a.right {
		return a.pivot.Position.Z == rightArmMin
	}
	return a.pivot.Position.Z == leftArmMax
}

// Head tips backwards into the chest about its lower rear edge.
type Head struct {
	Root  *sg.Node
	pivot *sg.Node
}

// NewHead builds the head with its eyes and antennas.
func NewHead() *Head {
	h := &Head{Root: sg.NewGroup("head")}

	// The pivot sits on the lower edge of the head box so the head swings
	// down behind the shoulders.
	h.pivot = sg.NewGroup("head-pivot").At(2, -2, 2.5)
	head := sg.NewGroup("head-group").At(-2, 2, -2.5)
	head.Add(
		box("head", 4, 4, 5, ColorBlue),
		box("eye", 0.5, 1, 1, ColorEye).At(-2, 0, -1.5),
		box("eye", 0.5, 1, 1, ColorEye).At(-2, 0, 1.5),
		box("head-antenna", 1, 3, 1, ColorGrey).At(0, 1.5, -3),
		box("head-antenna", 1, 3, 1, ColorGrey).At(0, 1.5, 3),
	)
	h.pivot.Add(head)
	h.Root.Add(h.pivot)
	return h
}

// Update turns the head by da radians, clamped to [-pi, 0].
func (h *Head) Update(da float32) {
	h.pivot.Rotation.Z = math.Clamp(h.pivot.Rotation.Z+da, headFoldedDown, 0)
}

// Angle returns the current head rotation.
func (h *Head) Angle() float32 {
	return h.pivot.Rotation.Z
}

// Stowed reports whether the head is fully folded away.
func (h *Head) Stowed() bool {
	return h.pivot.Rotation.Z == headFoldedDown
}

// Leg swings forward at the hip and carries a foot that folds at the ankle.
type Leg struct {
	Root *sg.Node
	leg  *sg.Node
	foot *sg.Node
}

// NewLeg builds the left or right leg.
func NewLeg(right bool) *Leg {
	l := &Leg{Root: sg.NewGroup("leg")}
	l.leg = sg.NewGroup("hip")

	wheelZ := float32(-4.7)
	if right {
		wheelZ = 0.7
	}

	l.foot = sg.NewGroup("ankle").At(-1.5, -13.5, -2)
	l.foot.Add(box("foot", 3, 2, 3.5, ColorBlue).At(0, -1, 0))

	l.leg.Add(
		box("upper-leg", 2, 3, 1.5, ColorGrey).At(0, -3, -2),
		box("lower-leg", 3.5, 9, 3.5, ColorBlue).At(0, -9, -2),
		wheel("leg-wheel", -1, -7.5, wheelZ),
		wheel("leg-wheel", -1, -12, wheelZ),
		l.foot,
	)
	l.Root.Add(l.leg)
	return l
}

// Update swings the leg by da radians, clamped to [0, pi/2].
func (l *Leg) Update(da float32) {
	l.leg.Rotation.Z = math.Clamp(l.leg.Rotation.Z+da, 0, legMax)
}

// UpdateFoot folds the foot by da radians, clamped to [0, pi/2].
func (l *Leg) UpdateFoot(da float32) {
	l.foot.Rotation.Z = math.Clamp(l.foot.Rotation.Z+da, 0, footMax)
}

// Angle returns the hip rotation.
func (l *Leg) Angle() float32 {
	return l.leg.Rotation.Z
}

// FootAngle returns the ankle rotation.
func (l *Leg) FootAngle() float32 {
	return l.foot.Rotation.Z
}

// Stowed reports whether leg and foot are folded flat under the cab.
func (l *Leg) Stowed() bool {
	return l.leg.Rotation.Z == legMax && l.foot.Rotation.Z == footMax
}
