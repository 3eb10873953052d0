package raster

import (
	"image"

	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/Faultbox/nightfield/internal/engine/camera"
	"github.com/Faultbox/nightfield/internal/engine/lighting"
	sg "github.com/Faultbox/nightfield/internal/engine/scenegraph"
	"github.com/Faultbox/nightfield/internal/logger"
	"github.com/Faultbox/nightfield/pkg/math"
)

// Options sizes the output image.
type Options struct {
	Width  int
	Height int
	// Supersample renders at this multiple of the output size and filters
	// down. Values below 1 are treated as 1.
	Supersample int
}

// vertex is a mesh vertex after projection.
type vertex struct {
	x, y, z float32 // pixel coordinates and NDC depth
	invW    float32
	world   math.Vec3
	uv      [2]float32
	behind  bool
}

type renderer struct {
	fb       *FrameBuffer
	viewProj math.Mat4
	eye      math.Vec3
	lights   *lighting.Buffer
	textures map[image.Image]*image.NRGBA
}

type queued struct {
	mesh  *sg.Mesh
	world math.Mat4
}

// Render draws scene from cam. Opaque meshes are drawn first, then
// transparent ones in traversal order without writing depth.
func Render(scene *sg.Scene, cam camera.Camera, opts Options) *image.NRGBA {
	ss := max(opts.Supersample, 1)
	fb := NewFrameBuffer(opts.Width*ss, opts.Height*ss)
	fb.Clear(scene.Background)

	r := &renderer{
		fb: fb,
		// Projection uses the output size so orthographic scale does not
		// depend on the supersample factor.
		viewProj: cam.Projection(opts.Width, opts.Height).Mul(cam.View()),
		eye:      cam.Eye(),
		lights:   lighting.NewBuffer(),
		textures: make(map[image.Image]*image.NRGBA),
	}
	sg.CollectLights(scene.Root, r.lights)

	var transparent []queued
	triangles := 0
	scene.Root.TraverseVisible(func(n *sg.Node, world math.Mat4) {
		m := n.Mesh
		if m == nil || m.Geometry == nil || m.Material == nil {
			return
		}
		if m.Material.Alpha() < 1 {
			transparent = append(transparent, queued{m, world})
			return
		}
		triangles += r.drawMesh(m, world)
	})
	for _, q := range transparent {
		triangles += r.drawMesh(q.mesh, q.world)
	}

	logger.Named("raster").Debug("frame rasterized",
		zap.Int("width", fb.Width),
		zap.Int("height", fb.Height),
		zap.Int("lights", r.lights.Count),
		zap.Int("triangles", triangles),
	)

	img := fb.Image()
	if ss == 1 {
		return img
	}
	return Downsample(img, opts.Width, opts.Height)
}

// Downsample filters img to w x h with Catmull-Rom.
func Downsample(img *image.NRGBA, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// drawMesh rasterizes one mesh and returns the number of triangles drawn.
func (r *renderer) drawMesh(m *sg.Mesh, world math.Mat4) int {
	g := m.Geometry
	mat := m.Material
	w, h := float32(r.fb.Width), float32(r.fb.Height)

	proj := make([]vertex, len(g.Vertices))
	for i := range g.Vertices {
		src := &g.Vertices[i]
		p := world.TransformVec3(math.Vec3{X: src.Position[0], Y: src.Position[1], Z: src.Position[2]})
		clip := r.viewProj.MulVec4(math.Vec4{p.X, p.Y, p.Z, 1})
		// No near-plane clipping; triangles reaching behind the eye are dropped.
		if clip[3] <= 1e-6 {
			proj[i].behind = true
			continue
		}
		inv := 1 / clip[3]
		proj[i] = vertex{
			x:     (clip[0]*inv*0.5 + 0.5) * w,
			y:     (0.5 - clip[1]*inv*0.5) * h,
			z:     clip[2] * inv,
			invW:  inv,
			world: p,
			uv:    src.TexCoord,
		}
	}

	tex := r.texture(mat.Map)
	surface := mat.Surface()
	alpha := mat.Alpha()
	drawn := 0

	for t := 0; t+2 < len(g.Indices); t += 3 {
		a, b, c := &proj[g.Indices[t]], &proj[g.Indices[t+1]], &proj[g.Indices[t+2]]
		if a.behind || b.behind || c.behind {
			continue
		}

		// Pixel y grows downward, so counter-clockwise faces have negative area.
		front := edge(a, b, c.x, c.y) < 0
		switch mat.Side {
		case sg.FrontSide:
			if !front {
				continue
			}
		case sg.BackSide:
			if front {
				continue
			}
		}

		normal := b.world.Sub(a.world).Cross(c.world.Sub(a.world)).Normalize()
		if !front {
			normal = normal.Scale(-1)
		}
		centroid := a.world.Add(b.world).Add(c.world).Scale(1.0 / 3)
		color := lighting.Shade(r.lights, surface, centroid, normal, r.eye)

		if mat.Wireframe {
			r.line(a, b, color)
			r.line(b, c, color)
			r.line(c, a, color)
		} else {
			r.fill(a, b, c, color, tex, alpha)
		}
		drawn++
	}
	return drawn
}

// texture converts a material map to NRGBA once per frame.
func (r *renderer) texture(src image.Image) *image.NRGBA {
	if src == nil {
		return nil
	}
	if t, ok := r.textures[src]; ok {
		return t
	}
	t, ok := src.(*image.NRGBA)
	if !ok {
		b := src.Bounds()
		t = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(t, t.Bounds(), src, b.Min, draw.Src)
	}
	r.textures[src] = t
	return t
}
