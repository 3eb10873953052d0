package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/nightfield/pkg/math"
)

// Model is the shading model a material uses.
type Model int

const (
	// Basic ignores lights and shows the flat material color.
	Basic Model = iota
	// Lambert evaluates diffuse lighting per vertex (Gouraud).
	Lambert
	// Phong evaluates diffuse and specular lighting per pixel.
	Phong
	// Toon quantizes diffuse lighting into bands.
	Toon
)

func (m Model) String() string {
	switch m {
	case Basic:
		return "basic"
	case Lambert:
		return "gouraud"
	case Phong:
		return "phong"
	case Toon:
		return "cartoon"
	default:
		return "unknown"
	}
}

// Surface is the material input to Shade.
type Surface struct {
	Model             Model
	Color             [3]float32
	Emissive          [3]float32
	EmissiveIntensity float32
	Shininess         float32
}

const toonBands = 3

// Shade returns the lit color of a surface point. normal must be unit
// length and face the viewer; eye is the camera position.
func Shade(b *Buffer, s Surface, pos, normal, eye math.Vec3) [3]float32 {
	if s.Model == Basic {
		return s.Color
	}

	ambient := b.Ambient()
	var diffuse, specular [3]float32
	view := eye.Sub(pos).Normalize()

	for _, l := range b.Lights {
		var dir math.Vec3
		atten := float32(1)
		switch l.Kind {
		case Ambient:
			continue
		case Directional:
			dir = l.Direction.Scale(-1)
		case Point, Spot:
			toLight := l.Position.Sub(pos)
			d := toLight.Length()
			if d == 0 {
				continue
			}
			dir = toLight.Scale(1 / d)
			atten = distanceAttenuation(d, l.Distance, l.Decay)
			if l.Kind == Spot {
				atten *= smoothstep(l.ConeCos, l.InnerCos, dir.Scale(-1).Dot(l.Direction))
			}
		}
		if atten <= 0 {
			continue
		}

		ndl := math32.Max(normal.Dot(dir), 0)
		if s.Model == Toon {
			ndl = math32.Ceil(ndl*toonBands) / toonBands
		}
		for i := range diffuse {
			diffuse[i] += l.Color[i] * l.Intensity * atten * ndl
		}

		if s.Model == Phong && ndl > 0 {
			half := dir.Add(view).Normalize()
			shininess := s.Shininess
			if shininess <= 0 {
				shininess = 30
			}
			spec := math32.Pow(math32.Max(normal.Dot(half), 0), shininess) * atten
			for i := range specular {
				specular[i] += l.Color[i] * l.Intensity * spec * 0.1
			}
		}
	}

	var out [3]float32
	for i := range out {
		lit := s.Color[i]/math32.Pi*(ambient[i]+diffuse[i]) + specular[i]
		out[i] = math.Clamp(lit+s.Emissive[i]*s.EmissiveIntensity, 0, 1)
	}
	return out
}

// distanceAttenuation follows the inverse power falloff with a smooth
// window that reaches zero at cutoff.
func distanceAttenuation(d, cutoff, decay float32) float32 {
	atten := float32(1)
	if decay > 0 {
		atten = math32.Pow(math32.Max(d, 0.01), -decay)
	}
	if cutoff > 0 {
		r := d / cutoff
		w := math.Clamp(1-r*r*r*r, 0, 1)
		atten *= w * w
	}
	return atten
}

func smoothstep(lo, hi, x float32) float32 {
	if hi == lo {
		if x >= hi {
			return 1
		}
		return 0
	}
	t := math.Clamp((x-lo)/(hi-lo), 0, 1)
	return t * t * (3 - 2*t)
}
