package states

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/nightfield/internal/config"
	"github.com/Faultbox/nightfield/internal/engine/camera"
	"github.com/Faultbox/nightfield/internal/engine/lighting"
	sg "github.com/Faultbox/nightfield/internal/engine/scenegraph"
	"github.com/Faultbox/nightfield/internal/engine/texture"
	"github.com/Faultbox/nightfield/internal/game/controls"
	"github.com/Faultbox/nightfield/internal/logger"
	"github.com/Faultbox/nightfield/internal/scene/night"
	"github.com/Faultbox/nightfield/pkg/math"
)

// Night is the moonlit field with the flying saucer.
type Night struct {
	keys   controls.Keymap
	opts   night.Options
	flight night.Flight
	log    *zap.Logger

	World  *night.World
	camera *camera.OrbitCamera
}

// NewNight prepares the night state from cfg. Textures are generated and
// the optional height map is loaded here; the scene is built on Enter.
func NewNight(cfg *config.Config) (*Night, error) {
	keys, err := controls.NightKeys().Override(cfg.Controls.Bindings)
	if err != nil {
		return nil, fmt.Errorf("night keys: %w", err)
	}

	sc := cfg.Scene
	opts := night.Options{
		HeightScale: sc.HeightScale,
		Floral:      texture.FloralField(sc.Seed),
		Starry:      texture.StarrySky(sc.Seed + 1),
	}
	if sc.HeightMap != "" {
		hm, err := texture.LoadHeightMap(sc.HeightMap)
		if err != nil {
			return nil, fmt.Errorf("terrain: %w", err)
		}
		opts.HeightMap = hm
	}

	return &Night{
		keys: keys,
		opts: opts,
		flight: night.Flight{
			AngularSpeed: sc.Night.AngularSpeed,
			Speed:        sc.Night.Speed,
			Limit:        sc.Night.DomeRadius - sc.Night.Margin,
		},
		log: logger.Named("night"),
	}, nil
}

// Enter builds the scene and resets the camera.
func (s *Night) Enter() error {
	w, err := night.Build(s.opts)
	if err != nil {
		return fmt.Errorf("build night scene: %w", err)
	}
	s.World = w
	s.camera = camera.NewOrbitCamera(math.V3(-32, 40, -50), math.Vec3{}, 80)
	s.log.Info("entering night scene",
		zap.Int("trees", len(night.Trees)),
		zap.Int("satellites", len(w.Ovni.Satellites)),
		zap.Float32("flight_limit", s.flight.Limit),
	)
	return nil
}

// Exit releases the scene.
func (s *Night) Exit() error {
	s.World = nil
	return nil
}

// Update applies toggles pressed this frame, flies the saucer and then
// switches materials if a new style was requested.
func (s *Night) Update(dt float64, in *controls.Intents) error {
	w := s.World
	if w == nil {
		return nil
	}

	if in.JustPressed(controls.DirectionalLight) {
		w.ToggleMoonLight()
	}
	if in.JustPressed(controls.PointLights) {
		w.TogglePointLights()
	}
	if in.JustPressed(controls.Spotlight) {
		w.ToggleSpotlight()
	}
	if in.JustPressed(controls.FloralTexture) {
		w.ToggleFloral()
	}
	if in.JustPressed(controls.StarryTexture) {
		w.ToggleStarry()
	}

	switch {
	case in.JustPressed(controls.StyleLambert):
		w.RequestStyle(lighting.Lambert)
	case in.JustPressed(controls.StylePhong):
		w.RequestStyle(lighting.Phong)
	case in.JustPressed(controls.StyleToon):
		w.RequestStyle(lighting.Toon)
	case in.JustPressed(controls.ToggleShading):
		w.ToggleShading()
	}

	dir := night.Heading(
		in.Held(controls.MoveUp),
		in.Held(controls.MoveDown),
		in.Held(controls.MoveLeft),
		in.Held(controls.MoveRight),
	)
	w.Ovni.Fly(float32(dt), dir, s.flight)
	w.ApplyStyle()
	return nil
}

// Keys returns the night layout.
func (s *Night) Keys() controls.Keymap { return s.keys }

// Drag orbits the camera.
func (s *Night) Drag(dx, dy float32) {
	if s.camera != nil {
		s.camera.HandleDrag(dx, dy)
	}
}

// Zoom moves the camera toward or away from the origin.
func (s *Night) Zoom(delta float32) {
	if s.camera != nil {
		s.camera.HandleZoom(delta)
	}
}

// Scene returns the night scene, or nil before Enter.
func (s *Night) Scene() *sg.Scene {
	if s.World == nil {
		return nil
	}
	return s.World.Scene
}

// Camera returns the orbit camera.
func (s *Night) Camera() camera.Camera { return s.camera }

// Overlay is empty for this scene.
func (s *Night) Overlay() []Lines { return nil }
