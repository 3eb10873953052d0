package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/nightfield/pkg/math"
)

// MaxLights is the maximum number of lights supported in shaders.
const MaxLights = 16

// Resolved is a light placed in world space for one frame.
type Resolved struct {
	Kind      Kind
	Position  math.Vec3
	Direction math.Vec3 // Normalized, world space
	Color     [3]float32
	Intensity float32
	Distance  float32
	Decay     float32
	ConeCos   float32 // Cosine of the outer cone angle
	InnerCos  float32 // Cosine where the penumbra fade starts
}

// Resolve places l at the transform of its node.
func Resolve(l *Light, world math.Mat4) Resolved {
	r := Resolved{
		Kind:      l.Kind,
		Position:  world.TransformVec3(math.Vec3{}),
		Direction: world.TransformDirection(l.Direction).Normalize(),
		Color:     l.Color,
		Intensity: l.Intensity,
		Distance:  l.Distance,
		Decay:     l.Decay,
	}
	if l.Kind == Spot {
		r.ConeCos = math32.Cos(l.Angle)
		r.InnerCos = math32.Cos(l.Angle * (1 - l.Penumbra))
	}
	return r
}

// Buffer holds lights for GPU upload.
type Buffer struct {
	Lights []Resolved
	Count  int
}

// NewBuffer creates an empty light buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		Lights: make([]Resolved, 0, MaxLights),
	}
}

// Clear removes all lights from the buffer.
func (b *Buffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
}

// Add appends a light. Returns false if the buffer is full.
func (b *Buffer) Add(light Resolved) bool {
	if b.Count >= MaxLights {
		return false
	}
	b.Lights = append(b.Lights, light)
	b.Count++
	return true
}

// Ambient returns the summed ambient contribution.
func (b *Buffer) Ambient() [3]float32 {
	var sum [3]float32
	for _, l := range b.Lights {
		if l.Kind != Ambient {
			continue
		}
		for i := range sum {
			sum[i] += l.Color[i] * l.Intensity
		}
	}
	return sum
}

// Positions returns positions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *Buffer) Positions() []float32 {
	result := make([]float32, MaxLights*3)
	for i, l := range b.Lights {
		result[i*3+0] = l.Position.X
		result[i*3+1] = l.Position.Y
		result[i*3+2] = l.Position.Z
	}
	return result
}

// Directions returns directions as a flat float32 slice for GPU upload.
func (b *Buffer) Directions() []float32 {
	result := make([]float32, MaxLights*3)
	for i, l := range b.Lights {
		result[i*3+0] = l.Direction.X
		result[i*3+1] = l.Direction.Y
		result[i*3+2] = l.Direction.Z
	}
	return result
}

// Colors returns intensity-scaled colors as a flat float32 slice.
func (b *Buffer) Colors() []float32 {
	result := make([]float32, MaxLights*3)
	for i, l := range b.Lights {
		result[i*3+0] = l.Color[0] * l.Intensity
		result[i*3+1] = l.Color[1] * l.Intensity
		result[i*3+2] = l.Color[2] * l.Intensity
	}
	return result
}

// Kinds returns light kinds as a flat int32 slice.
func (b *Buffer) Kinds() []int32 {
	result := make([]int32, MaxLights)
	for i, l := range b.Lights {
		result[i] = int32(l.Kind)
	}
	return result
}

// Params returns distance, decay, cone and inner cone cosines packed per
// light as a flat float32 slice.
func (b *Buffer) Params() []float32 {
	result := make([]float32, MaxLights*4)
	for i, l := range b.Lights {
		result[i*4+0] = l.Distance
		result[i*4+1] = l.Decay
		result[i*4+2] = l.ConeCos
		result[i*4+3] = l.InnerCos
	}
	return result
}
