// Package raster draws a scene graph on the CPU into an image. It backs the
// headless snapshot tool, so it trades speed for having no GPU dependency.
package raster

import (
	"image"

	"github.com/chewxy/math32"
)

// FrameBuffer holds the render target as flat slices for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	Depth  []float32 // NDC depth per pixel, smaller is nearer
}

// NewFrameBuffer allocates a w x h target cleared to black.
func NewFrameBuffer(w, h int) *FrameBuffer {
	fb := &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*4),
		Depth:  make([]float32, w*h),
	}
	fb.Clear([3]float32{})
	return fb
}

// Clear fills the color buffer with bg and resets depth to infinity.
func (fb *FrameBuffer) Clear(bg [3]float32) {
	r, g, b := to8(bg[0]), to8(bg[1]), to8(bg[2])
	for i := 0; i < len(fb.Color); i += 4 {
		fb.Color[i] = r
		fb.Color[i+1] = g
		fb.Color[i+2] = b
		fb.Color[i+3] = 255
	}
	for i := range fb.Depth {
		fb.Depth[i] = math32.Inf(1)
	}
}

// Image copies the color buffer into a new image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}

// plot blends c over the pixel at (x, y) if z passes the depth test.
func (fb *FrameBuffer) plot(x, y int, z float32, c [3]float32, alpha float32, writeDepth bool) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	i := y*fb.Width + x
	if z >= fb.Depth[i] {
		return
	}
	if writeDepth {
		fb.Depth[i] = z
	}
	p := fb.Color[i*4 : i*4+3 : i*4+3]
	if alpha >= 1 {
		p[0], p[1], p[2] = to8(c[0]), to8(c[1]), to8(c[2])
		return
	}
	for k := range p {
		dst := float32(p[k]) / 255
		p[k] = to8(c[k]*alpha + dst*(1-alpha))
	}
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
