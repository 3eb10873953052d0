package raster

import (
	"image"

	"github.com/chewxy/math32"
)

// wireBias pulls edges toward the viewer so they win against the faces
// they outline.
const wireBias = 1e-4

// edge is twice the signed area of the triangle (a, b, p).
func edge(a, b *vertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// fill scan-converts a flat-colored triangle. Either winding is accepted.
func (r *renderer) fill(a, b, c *vertex, color [3]float32, tex *image.NRGBA, alpha float32) {
	fb := r.fb
	area := edge(a, b, c.x, c.y)
	if math32.Abs(area) < 1e-8 {
		return
	}
	inv := 1 / area

	minX := max(int(math32.Floor(min(a.x, b.x, c.x))), 0)
	maxX := min(int(math32.Ceil(max(a.x, b.x, c.x))), fb.Width-1)
	minY := max(int(math32.Floor(min(a.y, b.y, c.y))), 0)
	maxY := min(int(math32.Ceil(max(a.y, b.y, c.y))), fb.Height-1)

	for py := minY; py <= maxY; py++ {
		cy := float32(py) + 0.5
		for px := minX; px <= maxX; px++ {
			cx := float32(px) + 0.5
			w0 := edge(b, c, cx, cy) * inv
			w1 := edge(c, a, cx, cy) * inv
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*a.z + w1*b.z + w2*c.z
			if z < -1 || z > 1 {
				continue
			}

			col := color
			if tex != nil {
				// Perspective-correct texture coordinates.
				iw := w0*a.invW + w1*b.invW + w2*c.invW
				u := (w0*a.uv[0]*a.invW + w1*b.uv[0]*b.invW + w2*c.uv[0]*c.invW) / iw
				v := (w0*a.uv[1]*a.invW + w1*b.uv[1]*b.invW + w2*c.uv[1]*c.invW) / iw
				texel := sample(tex, u, v)
				for k := range col {
					col[k] *= texel[k]
				}
			}
			fb.plot(px, py, z, col, alpha, alpha >= 1)
		}
	}
}

// line draws a depth-tested segment by stepping one pixel at a time along
// its longer axis.
func (r *renderer) line(a, b *vertex, color [3]float32) {
	dx, dy := b.x-a.x, b.y-a.y
	steps := int(math32.Ceil(max(math32.Abs(dx), math32.Abs(dy))))
	if steps == 0 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		x := a.x + dx*t
		y := a.y + dy*t
		z := a.z + (b.z-a.z)*t - wireBias
		if z < -1 || z > 1 {
			continue
		}
		r.fb.plot(int(math32.Floor(x)), int(math32.Floor(y)), z, color, 1, true)
	}
}

// sample returns the nearest texel at (u, v) as linear [0, 1] values. UVs
// wrap, and v = 1 is the top row of the image.
func sample(tex *image.NRGBA, u, v float32) [3]float32 {
	b := tex.Rect
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return [3]float32{1, 1, 1}
	}
	u -= math32.Floor(u)
	v -= math32.Floor(v)

	x := min(int(u*float32(w)), w-1)
	y := min(int((1-v)*float32(h)), h-1)
	i := tex.PixOffset(b.Min.X+x, b.Min.Y+y)
	return [3]float32{
		float32(tex.Pix[i]) / 255,
		float32(tex.Pix[i+1]) / 255,
		float32(tex.Pix[i+2]) / 255,
	}
}
