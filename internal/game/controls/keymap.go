package controls

import (
	"errors"
	"fmt"
	"maps"
)

// Shared actions.
const (
	MoveUp    Action = "move_up"
	MoveDown  Action = "move_down"
	MoveLeft  Action = "move_left"
	MoveRight Action = "move_right"
	Quit      Action = "quit"
)

// Night scene actions.
const (
	DirectionalLight Action = "toggle_directional"
	PointLights      Action = "toggle_points"
	Spotlight        Action = "toggle_spot"
	StyleLambert     Action = "style_lambert"
	StylePhong       Action = "style_phong"
	StyleToon        Action = "style_toon"
	ToggleShading    Action = "toggle_shading"
	FloralTexture    Action = "toggle_floral"
	StarryTexture    Action = "toggle_starry"
)

// Transformer scene actions.
const (
	LegsFold      Action = "legs_fold"
	LegsUnfold    Action = "legs_unfold"
	FeetFold      Action = "feet_fold"
	FeetUnfold    Action = "feet_unfold"
	ArmsFold      Action = "arms_fold"
	ArmsUnfold    Action = "arms_unfold"
	HeadFold      Action = "head_fold"
	HeadUnfold    Action = "head_unfold"
	Wireframe     Action = "wireframe"
	BoundingBoxes Action = "bounding_boxes"
	CameraFront   Action = "camera_front"
	CameraSide    Action = "camera_side"
	CameraTop     Action = "camera_top"
	CameraFree    Action = "camera_perspective"
)

// ErrUnknownAction is returned when a binding names no known action.
var ErrUnknownAction = errors.New("unknown action")

// Keymap maps key names, as SDL reports them, to actions.
type Keymap map[string]Action

// NightKeys is the default night scene layout.
func NightKeys() Keymap {
	return Keymap{
		"Up": MoveUp, "Down": MoveDown, "Left": MoveLeft, "Right": MoveRight,
		"Escape": Quit,
		"D":      DirectionalLight,
		"P":      PointLights,
		"S":      Spotlight,
		"Q":      StyleLambert,
		"W":      StylePhong,
		"E":      StyleToon,
		"R":      ToggleShading,
		"1":      FloralTexture,
		"2":      StarryTexture,
	}
}

// TransformerKeys is the default transformer scene layout.
func TransformerKeys() Keymap {
	return Keymap{
		"Up": MoveUp, "Down": MoveDown, "Left": MoveLeft, "Right": MoveRight,
		"Escape": Quit,
		"W":      LegsFold,
		"S":      LegsUnfold,
		"Q":      FeetFold,
		"A":      FeetUnfold,
		"E":      ArmsFold,
		"D":      ArmsUnfold,
		"R":      HeadFold,
		"F":      HeadUnfold,
		"7":      Wireframe,
		"B":      BoundingBoxes,
		"1":      CameraFront,
		"2":      CameraSide,
		"3":      CameraTop,
		"4":      CameraFree,
	}
}

// Override returns a copy of k with bindings applied. Bindings map action
// names to key names; an action rebound to a new key loses its old one.
func (k Keymap) Override(bindings map[string]string) (Keymap, error) {
	known := make(map[Action]bool, len(k))
	for _, a := range k {
		known[a] = true
	}

	out := maps.Clone(k)
	for name, key := range bindings {
		a := Action(name)
		if !known[a] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
		}
		maps.DeleteFunc(out, func(_ string, bound Action) bool { return bound == a })
		out[key] = a
	}
	return out, nil
}

// Press records a key-down edge for the action bound to key, if any.
func (k Keymap) Press(in *Intents, key string) {
	if a, ok := k[key]; ok {
		in.Press(a)
	}
}

// Release records a key-up edge for the action bound to key, if any.
func (k Keymap) Release(in *Intents, key string) {
	if a, ok := k[key]; ok {
		in.Release(a)
	}
}
