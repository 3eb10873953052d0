// Package lighting describes scene lights and the shading models applied to
// lit surfaces, both for GPU upload and for the software rasterizer.
package lighting

import "github.com/Faultbox/nightfield/pkg/math"

// Kind identifies a light source type.
type Kind int

const (
	Ambient Kind = iota
	Directional
	Point
	Spot
)

func (k Kind) String() string {
	switch k {
	case Ambient:
		return "ambient"
	case Directional:
		return "directional"
	case Point:
		return "point"
	case Spot:
		return "spot"
	default:
		return "unknown"
	}
}

// Light is a light source attached to a scene node. Position comes from the
// node; Direction is expressed in the node's local space and only matters
// for directional and spot lights.
type Light struct {
	Kind      Kind
	Color     [3]float32
	Intensity float32
	// Distance is the cutoff range for point and spot lights. Zero means
	// unlimited.
	Distance float32
	Decay    float32
	// Angle is the spot cone half-angle in radians.
	Angle float32
	// Penumbra is the fraction of the cone that fades out, in [0, 1].
	Penumbra  float32
	Direction math.Vec3
}

// NewAmbient creates an ambient light.
func NewAmbient(color [3]float32, intensity float32) *Light {
	return &Light{Kind: Ambient, Color: color, Intensity: intensity}
}

// NewDirectional creates a directional light shining along direction.
func NewDirectional(color [3]float32, intensity float32, direction math.Vec3) *Light {
	return &Light{Kind: Directional, Color: color, Intensity: intensity, Direction: direction}
}

// NewPoint creates a point light with the given cutoff distance.
func NewPoint(color [3]float32, intensity, distance float32) *Light {
	return &Light{Kind: Point, Color: color, Intensity: intensity, Distance: distance, Decay: 2}
}

// NewSpot creates a spot light shining along direction.
func NewSpot(color [3]float32, intensity, distance, angle, penumbra, decay float32, direction math.Vec3) *Light {
	return &Light{
		Kind:      Spot,
		Color:     color,
		Intensity: intensity,
		Distance:  distance,
		Angle:     angle,
		Penumbra:  penumbra,
		Decay:     decay,
		Direction: direction,
	}
}

// RGB converts a 0xRRGGBB value to normalized components.
func RGB(hex uint32) [3]float32 {
	return [3]float32{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}
