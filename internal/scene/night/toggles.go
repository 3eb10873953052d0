package night

import (
	"go.uber.org/zap"

	"github.com/Faultbox/nightfield/internal/engine/lighting"
	sg "github.com/Faultbox/nightfield/internal/engine/scenegraph"
	"github.com/Faultbox/nightfield/internal/logger"
)

// ToggleMoonLight switches the directional moon light.
func (w *World) ToggleMoonLight() {
	w.MoonLight.Visible = !w.MoonLight.Visible
}

// TogglePointLights switches all satellite lights together.
func (w *World) TogglePointLights() {
	on := !w.PointLightsOn()
	for _, s := range w.Ovni.Satellites {
		s.Visible = on
	}
}

// PointLightsOn reports whether the satellite lights shine.
func (w *World) PointLightsOn() bool {
	return len(w.Ovni.Satellites) > 0 && w.Ovni.Satellites[0].Visible
}

// ToggleSpotlight switches the saucer's downward spotlight.
func (w *World) ToggleSpotlight() {
	w.Ovni.Spot.Visible = !w.Ovni.Spot.Visible
}

// ToggleFloral switches the flower texture on the terrain.
func (w *World) ToggleFloral() {
	w.floralOn = !w.floralOn
	m := w.Terrain.Mesh.Material
	m.Map = nil
	if w.floralOn {
		m.Map = w.floral
	}
}

// ToggleStarry switches the star texture on the sky. Without it the dome
// is plain dark blue.
func (w *World) ToggleStarry() {
	w.starryOn = !w.starryOn
	w.applySky()
}

// RequestStyle asks for a material model; ApplyStyle performs the switch.
func (w *World) RequestStyle(m lighting.Model) {
	w.requested = m
}

// ToggleShading flips between unlit materials and Phong.
func (w *World) ToggleShading() {
	if w.active == lighting.Basic {
		w.requested = lighting.Phong
		return
	}
	w.requested = lighting.Basic
}

// Style returns the material model currently applied.
func (w *World) Style() lighting.Model {
	return w.active
}

// ApplyStyle rebuilds the tagged materials when the requested model differs
// from the active one, and reports whether it did.
func (w *World) ApplyStyle() bool {
	if w.requested == w.active {
		return false
	}
	n := sg.Restyle(w.Root, w.requested, Palette())
	logger.Named("scene").Info("material style",
		zap.Stringer("from", w.active),
		zap.Stringer("to", w.requested),
		zap.Int("meshes", n),
	)
	w.active = w.requested
	return true
}
