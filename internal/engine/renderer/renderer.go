// Package renderer draws scene graphs with OpenGL.
package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/Faultbox/nightfield/internal/engine/camera"
	"github.com/Faultbox/nightfield/internal/engine/framebuffer"
	"github.com/Faultbox/nightfield/internal/engine/geometry"
	"github.com/Faultbox/nightfield/internal/engine/lighting"
	sg "github.com/Faultbox/nightfield/internal/engine/scenegraph"
	"github.com/Faultbox/nightfield/internal/engine/shader"
	"github.com/Faultbox/nightfield/internal/logger"
	"github.com/Faultbox/nightfield/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	VSync  bool
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

type meshUniforms struct {
	model, viewProj, normal, eye        int32
	shading, color, emissive, shininess int32
	opacity, hasMap, texture            int32
	lightCount, kinds, positions        int32
	directions, colors, params          int32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	meshProgram uint32
	lineProgram uint32
	mesh        meshUniforms
	lineVP      int32
	lineColor   int32

	lineVAO uint32
	lineVBO uint32

	geometries map[*geometry.Geometry]*gpuMesh
	textures   map[image.Image]uint32
	lights     *lighting.Buffer
	viewProj   math.Mat4
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:     cfg,
		log:        logger.Named("renderer"),
		geometries: make(map[*geometry.Geometry]*gpuMesh),
		textures:   make(map[image.Image]uint32),
		lights:     lighting.NewBuffer(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	var err error
	if r.meshProgram, err = shader.Load(shader.Mesh); err != nil {
		return nil, fmt.Errorf("failed to create mesh program: %w", err)
	}
	if r.lineProgram, err = shader.Load(shader.Line); err != nil {
		return nil, fmt.Errorf("failed to create line program: %w", err)
	}
	r.lookupUniforms()

	gl.GenVertexArrays(1, &r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

func (r *Renderer) lookupUniforms() {
	p := r.meshProgram
	r.mesh = meshUniforms{
		model:      shader.Uniform(p, "uModel"),
		viewProj:   shader.Uniform(p, "uViewProj"),
		normal:     shader.Uniform(p, "uNormalMatrix"),
		eye:        shader.Uniform(p, "uEye"),
		shading:    shader.Uniform(p, "uShadingModel"),
		color:      shader.Uniform(p, "uColor"),
		emissive:   shader.Uniform(p, "uEmissive"),
		shininess:  shader.Uniform(p, "uShininess"),
		opacity:    shader.Uniform(p, "uOpacity"),
		hasMap:     shader.Uniform(p, "uHasMap"),
		texture:    shader.Uniform(p, "uMap"),
		lightCount: shader.Uniform(p, "uLightCount"),
		kinds:      shader.Uniform(p, "uLightKinds"),
		positions:  shader.Uniform(p, "uLightPositions"),
		directions: shader.Uniform(p, "uLightDirections"),
		colors:     shader.Uniform(p, "uLightColors"),
		params:     shader.Uniform(p, "uLightParams"),
	}
	r.lineVP = shader.Uniform(r.lineProgram, "uViewProj")
	r.lineColor = shader.Uniform(r.lineProgram, "uLineColor")
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("meshes", len(r.geometries)), zap.Int("textures", len(r.textures)))
	for _, m := range r.geometries {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
	}
	for _, id := range r.textures {
		gl.DeleteTextures(1, &id)
	}
	gl.DeleteVertexArrays(1, &r.lineVAO)
	gl.DeleteBuffers(1, &r.lineVBO)
	gl.DeleteProgram(r.meshProgram)
	gl.DeleteProgram(r.lineProgram)
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Size returns the viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Begin clears the frame to bg.
func (r *Renderer) Begin(bg [3]float32) {
	gl.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawScene draws every visible mesh under scene.Root from cam. Opaque
// meshes go first, transparent ones after with depth writes off.
func (r *Renderer) DrawScene(scene *sg.Scene, cam camera.Camera) {
	r.viewProj = cam.Projection(r.config.Width, r.config.Height).Mul(cam.View())
	sg.CollectLights(scene.Root, r.lights)

	gl.UseProgram(r.meshProgram)
	gl.UniformMatrix4fv(r.mesh.viewProj, 1, false, r.viewProj.Ptr())
	eye := cam.Eye()
	gl.Uniform3f(r.mesh.eye, eye.X, eye.Y, eye.Z)
	r.uploadLights()

	type deferred struct {
		mesh  *sg.Mesh
		world math.Mat4
	}
	var transparent []deferred
	scene.Root.TraverseVisible(func(n *sg.Node, world math.Mat4) {
		m := n.Mesh
		if m == nil || m.Geometry == nil || m.Material == nil {
			return
		}
		if m.Material.Alpha() < 1 {
			transparent = append(transparent, deferred{m, world})
			return
		}
		r.drawMesh(m, world)
	})

	if len(transparent) > 0 {
		gl.Enable(gl.BLEND)
		gl.DepthMask(false)
		for _, d := range transparent {
			r.drawMesh(d.mesh, d.world)
		}
		gl.DepthMask(true)
		gl.Disable(gl.BLEND)
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) uploadLights() {
	b := r.lights
	kinds := b.Kinds()
	positions := b.Positions()
	directions := b.Directions()
	colors := b.Colors()
	params := b.Params()

	gl.Uniform1i(r.mesh.lightCount, int32(b.Count))
	gl.Uniform1iv(r.mesh.kinds, lighting.MaxLights, &kinds[0])
	gl.Uniform3fv(r.mesh.positions, lighting.MaxLights, &positions[0])
	gl.Uniform3fv(r.mesh.directions, lighting.MaxLights, &directions[0])
	gl.Uniform3fv(r.mesh.colors, lighting.MaxLights, &colors[0])
	gl.Uniform4fv(r.mesh.params, lighting.MaxLights, &params[0])
}

func (r *Renderer) drawMesh(m *sg.Mesh, world math.Mat4) {
	gm := r.upload(m.Geometry)
	if gm == nil {
		return
	}
	mat := m.Material

	normal := world.NormalMatrix()
	gl.UniformMatrix4fv(r.mesh.model, 1, false, world.Ptr())
	gl.UniformMatrix4fv(r.mesh.normal, 1, false, normal.Ptr())
	gl.Uniform1i(r.mesh.shading, int32(mat.Model))
	gl.Uniform3f(r.mesh.color, mat.Color[0], mat.Color[1], mat.Color[2])
	k := mat.EmissiveIntensity
	gl.Uniform3f(r.mesh.emissive, mat.Emissive[0]*k, mat.Emissive[1]*k, mat.Emissive[2]*k)
	gl.Uniform1f(r.mesh.shininess, mat.Shininess)
	gl.Uniform1f(r.mesh.opacity, mat.Alpha())

	if tex := r.texture(mat.Map); tex != 0 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gl.Uniform1i(r.mesh.texture, 0)
		gl.Uniform1i(r.mesh.hasMap, 1)
	} else {
		gl.Uniform1i(r.mesh.hasMap, 0)
	}

	switch mat.Side {
	case sg.FrontSide:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	case sg.BackSide:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	default:
		gl.Disable(gl.CULL_FACE)
	}
	if mat.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}

	gl.BindVertexArray(gm.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, gm.indexCount, gl.UNSIGNED_INT, 0)

	if mat.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// upload creates GPU buffers for g on first use. Geometry shared between
// meshes is uploaded once.
func (r *Renderer) upload(g *geometry.Geometry) *gpuMesh {
	if gm, ok := r.geometries[g]; ok {
		return gm
	}
	if len(g.Vertices) == 0 || len(g.Indices) == 0 {
		r.geometries[g] = nil
		return nil
	}

	gm := &gpuMesh{indexCount: int32(len(g.Indices))}
	vertexSize := int(unsafe.Sizeof(geometry.Vertex{}))

	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Vertices)*vertexSize, unsafe.Pointer(&g.Vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, unsafe.Pointer(&g.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	r.geometries[g] = gm
	return gm
}

// texture uploads img on first use and returns its GL name, or 0 for nil.
func (r *Renderer) texture(img image.Image) uint32 {
	if img == nil {
		return 0
	}
	if id, ok := r.textures[img]; ok {
		return id
	}

	b := img.Bounds()
	rgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&rgba.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)

	r.textures[img] = id
	r.log.Debug("texture uploaded", zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
	return id
}

// DrawLines draws unlit line segments, two xyz vertices per segment, using
// the view of the last DrawScene call.
func (r *Renderer) DrawLines(vertices []float32, color [3]float32) {
	if len(vertices) < 6 {
		return
	}
	gl.UseProgram(r.lineProgram)
	gl.UniformMatrix4fv(r.lineVP, 1, false, r.viewProj.Ptr())
	gl.Uniform3f(r.lineColor, color[0], color[1], color[2])

	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)/3))
	gl.BindVertexArray(0)
}

// Offscreen runs fn against a width x height target and returns its
// pixels as bottom-up RGBA rows. Projections inside fn keep using the
// window size, so a target at a multiple of it frames the same view.
func (r *Renderer) Offscreen(width, height int, fn func()) ([]byte, error) {
	target, err := framebuffer.New(width, height)
	if err != nil {
		return nil, err
	}
	defer target.Destroy()

	restore := target.Bind()
	fn()
	restore()

	return target.ReadPixels(), nil
}
