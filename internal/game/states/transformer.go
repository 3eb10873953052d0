package states

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/nightfield/internal/config"
	"github.com/Faultbox/nightfield/internal/engine/camera"
	"github.com/Faultbox/nightfield/internal/engine/debug"
	"github.com/Faultbox/nightfield/internal/engine/lighting"
	sg "github.com/Faultbox/nightfield/internal/engine/scenegraph"
	"github.com/Faultbox/nightfield/internal/game/controls"
	"github.com/Faultbox/nightfield/internal/game/docking"
	"github.com/Faultbox/nightfield/internal/logger"
	"github.com/Faultbox/nightfield/internal/scene/transformer"
	"github.com/Faultbox/nightfield/pkg/math"
)

// Camera slots selected by keys 1 to 4.
const (
	CamFront = iota
	CamSide
	CamTop
	CamPerspective
	camCount
)

// Overlay colors.
const (
	colorBodyBox    = 0xffd700
	colorTrailerBox = 0x00a000
	colorBlockedBox = 0xff0000
)

const orthoPixelsPerUnit = 10

// Transformer is the robot that folds into a truck and hitches a trailer.
type Transformer struct {
	keys   controls.Keymap
	tuning config.TransformerTuning
	log    *zap.Logger

	Rig     *transformer.Rig
	Docking *docking.Machine

	cameras   [camCount]camera.Camera
	active    int
	showBoxes bool
}

// NewTransformer prepares the transformer state from cfg.
func NewTransformer(cfg *config.Config) (*Transformer, error) {
	keys, err := controls.TransformerKeys().Override(cfg.Controls.Bindings)
	if err != nil {
		return nil, fmt.Errorf("transformer keys: %w", err)
	}
	return &Transformer{
		keys:   keys,
		tuning: cfg.Scene.Transformer,
		log:    logger.Named("transformer"),
		active: CamPerspective,
	}, nil
}

// Enter builds the rig, the docking machine and the four cameras. The rig
// starts folded when the tuning asks for it.
func (s *Transformer) Enter() error {
	t := s.tuning
	s.Rig = transformer.NewRig()
	if t.StartFolded {
		s.Rig.Body.Fold()
	}
	s.Docking = docking.New(docking.Config{
		Step:         t.TrailerStep,
		Speed:        t.DockSpeed,
		Tolerance:    t.DockTolerance,
		Target:       math.Vec3{X: t.DockX, Z: t.DockZ},
		MaxApproachX: t.MaxApproachX,
		Undock:       docking.Up,
	}, s.Rig.Body, s.Rig.Trailer)

	focus := math.V3(-25, -1, 0)
	s.cameras = [camCount]camera.Camera{
		CamFront:       camera.NewOrthographic(math.V3(-40, 0, 0), math.Vec3{}, orthoPixelsPerUnit),
		CamSide:        camera.NewOrthographic(math.V3(0, 0, 30), math.Vec3{}, orthoPixelsPerUnit),
		CamTop:         camera.NewOrthographic(math.V3(-25, 30, 0), focus, orthoPixelsPerUnit),
		CamPerspective: camera.NewPerspective(math.V3(-50, 20, 25), focus, 95),
	}
	s.log.Info("entering transformer scene",
		zap.Int("camera", s.active),
		zap.Bool("truck", s.Rig.Body.IsTruck()),
	)
	return nil
}

// Exit releases the scene.
func (s *Transformer) Exit() error {
	s.Rig = nil
	s.Docking = nil
	return nil
}

// Update runs docking before the limbs, so a fold completed this frame is
// seen by the collision check on the next one. Frames with dt <= 0 move
// neither the trailer nor the joints.
func (s *Transformer) Update(dt float64, in *controls.Intents) error {
	if s.Rig == nil {
		return nil
	}

	s.Docking.Update(float32(dt), func(d docking.Direction) bool {
		switch d {
		case docking.Up:
			return in.Held(controls.MoveUp)
		case docking.Down:
			return in.Held(controls.MoveDown)
		case docking.Left:
			return in.Held(controls.MoveLeft)
		case docking.Right:
			return in.Held(controls.MoveRight)
		}
		return false
	})

	if dt > 0 {
		s.updateLimbs(in)
	}

	if in.JustPressed(controls.Wireframe) {
		sg.ToggleWireframe(s.Rig.Scene.Root)
	}
	if in.JustPressed(controls.BoundingBoxes) {
		s.showBoxes = !s.showBoxes
	}
	for slot, a := range [camCount]controls.Action{
		CamFront:       controls.CameraFront,
		CamSide:        controls.CameraSide,
		CamTop:         controls.CameraTop,
		CamPerspective: controls.CameraFree,
	} {
		if in.JustPressed(a) && s.active != slot {
			s.active = slot
			s.log.Debug("camera selected", zap.Int("camera", slot))
		}
	}
	return nil
}

func (s *Transformer) updateLimbs(in *controls.Intents) {
	t := s.tuning
	b := s.Rig.Body

	// step returns +v while fold is held, -v while unfold is held.
	step := func(fold, unfold controls.Action, v float32) float32 {
		var d float32
		if in.Held(fold) {
			d += v
		}
		if in.Held(unfold) {
			d -= v
		}
		return d
	}

	if d := step(controls.LegsFold, controls.LegsUnfold, t.LegStep); d != 0 {
		b.LeftLeg.Update(d)
		b.RightLeg.Update(d)
	}
	if d := step(controls.FeetFold, controls.FeetUnfold, t.FootStep); d != 0 {
		b.LeftLeg.UpdateFoot(d)
		b.RightLeg.UpdateFoot(d)
	}
	// The arms mirror each other: the left one folds toward +Z, the right
	// one toward -Z.
	if d := step(controls.ArmsFold, controls.ArmsUnfold, t.ArmStep); d != 0 {
		b.LeftArm.Update(d)
		b.RightArm.Update(-d)
	}
	// The head folds toward negative angles.
	if d := step(controls.HeadFold, controls.HeadUnfold, t.HeadStep); d != 0 {
		b.Head.Update(-d)
	}
}

// ActiveCamera returns the selected camera slot.
func (s *Transformer) ActiveCamera() int { return s.active }

// ShowBoxes reports whether the collision boxes are drawn.
func (s *Transformer) ShowBoxes() bool { return s.showBoxes }

// Keys returns the transformer layout.
func (s *Transformer) Keys() controls.Keymap { return s.keys }

// Drag is ignored; the cameras are fixed.
func (s *Transformer) Drag(dx, dy float32) {}

// Zoom is ignored; the cameras are fixed.
func (s *Transformer) Zoom(delta float32) {}

// Scene returns the transformer scene, or nil before Enter.
func (s *Transformer) Scene() *sg.Scene {
	if s.Rig == nil {
		return nil
	}
	return s.Rig.Scene
}

// Camera returns the selected camera.
func (s *Transformer) Camera() camera.Camera { return s.cameras[s.active] }

// Overlay outlines the collision boxes when enabled. The trailer box turns
// red while any direction is blocked.
func (s *Transformer) Overlay() []Lines {
	if !s.showBoxes || s.Docking == nil {
		return nil
	}
	body, trailer := s.Docking.Boxes()
	trailerColor := uint32(colorTrailerBox)
	for _, d := range docking.Directions {
		if s.Docking.Blocked(d) {
			trailerColor = colorBlockedBox
			break
		}
	}
	return []Lines{
		{Vertices: debug.BoxLines(body), Color: lighting.RGB(colorBodyBox)},
		{Vertices: debug.BoxLines(trailer), Color: lighting.RGB(trailerColor)},
	}
}
