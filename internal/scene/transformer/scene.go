package transformer

import (
	"github.com/Faultbox/nightfield/internal/engine/lighting"
	sg "github.com/Faultbox/nightfield/internal/engine/scenegraph"
)

// Rig is the transformer scene: the robot and its trailer under one root.
type Rig struct {
	Scene   *sg.Scene
	Body    *Body
	Trailer *Trailer
}

// NewRig assembles the robot and the parked trailer.
func NewRig() *Rig {
	r := &Rig{
		Body:    NewBody(),
		Trailer: NewTrailer(),
	}
	root := sg.NewGroup("transformer")
	root.Add(r.Body.Root, r.Trailer.Root)
	r.Scene = &sg.Scene{Root: root, Background: lighting.RGB(ColorBackdrop)}
	return r
}

// Fold drives every joint to its truck extreme.
func (b *Body) Fold() {
	b.Head.Update(headFoldedDown)
	b.LeftArm.Update(leftArmMax - leftArmMin)
	b.RightArm.Update(rightArmMin - rightArmMax)
	for _, l := range []*Leg{b.LeftLeg, b.RightLeg} {
		l.Update(legMax)
		l.UpdateFoot(footMax)
	}
}
