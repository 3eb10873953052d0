// Package texture generates the procedural canvases of the night scene and
// loads grayscale height maps.
package texture

import (
	"image"
	"image/color"
	"math/rand/v2"

	"golang.org/x/image/draw"
)

// Size is the edge length of the generated canvases.
const Size = 512

const (
	flowerCount = 500
	starCount   = 300
)

var (
	grass      = color.NRGBA{0x55, 0xcc, 0x55, 0xff}
	skyTop     = color.NRGBA{0x00, 0x00, 0x99, 0xff}
	skyBottom  = color.NRGBA{0x4b, 0x00, 0x82, 0xff}
	starColor  = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	petalTints = []color.NRGBA{
		{0xff, 0xff, 0xff, 0xff},
		{0xff, 0xd7, 0x00, 0xff},
		{0xb8, 0x9f, 0xb8, 0xff},
		{0x9e, 0xc4, 0xd2, 0xff},
	}
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// FloralField paints a grass canvas dotted with small flowers. Equal seeds
// give identical images.
func FloralField(seed uint64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, Size, Size))
	draw.Draw(img, img.Bounds(), image.NewUniform(grass), image.Point{}, draw.Src)

	r := newRand(seed)
	for range flowerCount {
		x := r.Float64() * Size
		y := r.Float64() * Size
		radius := 1 + r.Float64()*2
		tint := petalTints[r.IntN(len(petalTints))]
		fillCircle(img, x, y, radius, tint)
	}
	return img
}

// StarrySky paints a dark blue to dark purple gradient with scattered
// white stars. Equal seeds give identical images.
func StarrySky(seed uint64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, Size, Size))
	for y := range Size {
		c := skyGradient(y, Size)
		for x := range Size {
			img.SetNRGBA(x, y, c)
		}
	}

	r := newRand(seed)
	for range starCount {
		x := r.Float64() * Size
		y := r.Float64() * Size
		radius := 0.5 + r.Float64()*0.5
		fillCircle(img, x, y, radius, starColor)
	}
	return img
}

// skyGradient returns the color of row y of a canvas h rows tall.
func skyGradient(y, h int) color.NRGBA {
	t := (float64(y) + 0.5) / float64(h)
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return color.NRGBA{
		R: lerp(skyTop.R, skyBottom.R),
		G: lerp(skyTop.G, skyBottom.G),
		B: lerp(skyTop.B, skyBottom.B),
		A: 0xff,
	}
}

// fillCircle paints every pixel whose centre lies within radius of (cx,
// cy). The pixel under the centre is always painted so tiny dots show.
func fillCircle(img *image.NRGBA, cx, cy, radius float64, c color.NRGBA) {
	b := img.Bounds()
	set := func(x, y int) {
		if image.Pt(x, y).In(b) {
			img.SetNRGBA(x, y, c)
		}
	}
	set(int(cx), int(cy))

	r2 := radius * radius
	for y := int(cy - radius); y <= int(cy+radius); y++ {
		for x := int(cx - radius); x <= int(cx+radius); x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= r2 {
				set(x, y)
			}
		}
	}
}
