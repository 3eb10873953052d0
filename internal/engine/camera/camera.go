// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/nightfield/pkg/math"
)

// Camera produces the view and projection for one frame.
type Camera interface {
	// Eye returns the camera position in world space.
	Eye() math.Vec3
	// View returns the world to camera transform.
	View() math.Mat4
	// Projection returns the projection for a viewport in pixels.
	Projection(width, height int) math.Mat4
}

func aspect(width, height int) float32 {
	if height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// upFor returns +Y unless the view direction is vertical, where it falls
// back to -Z so the basis stays defined.
func upFor(eye, target math.Vec3) math.Vec3 {
	dir := target.Sub(eye).Normalize()
	if math32.Abs(dir.Y) > 0.999 {
		return math.Vec3{Z: -1}
	}
	return math.Vec3{Y: 1}
}

// Perspective is a fixed perspective camera.
type Perspective struct {
	Position math.Vec3
	Target   math.Vec3
	// FOV is the vertical field of view in degrees.
	FOV       float32
	Near, Far float32
}

// NewPerspective creates a camera at eye looking at target.
func NewPerspective(eye, target math.Vec3, fov float32) *Perspective {
	return &Perspective{Position: eye, Target: target, FOV: fov, Near: 1, Far: 1000}
}

// Eye returns the camera position.
func (c *Perspective) Eye() math.Vec3 {
	return c.Position
}

// View returns the look-at matrix.
func (c *Perspective) View() math.Mat4 {
	return math.LookAt(c.Position, c.Target, upFor(c.Position, c.Target))
}

// Projection returns the perspective matrix for the viewport.
func (c *Perspective) Projection(width, height int) math.Mat4 {
	return math.Perspective(c.FOV*math32.Pi/180, aspect(width, height), c.Near, c.Far)
}

// Orthographic is a fixed parallel projection. The visible extent follows
// the viewport so one pixel always covers the same world distance.
type Orthographic struct {
	Position math.Vec3
	Target   math.Vec3
	// PixelsPerUnit scales the frustum to the viewport.
	PixelsPerUnit float32
	Near, Far     float32
}

// NewOrthographic creates a parallel camera at eye looking at target.
func NewOrthographic(eye, target math.Vec3, pixelsPerUnit float32) *Orthographic {
	return &Orthographic{Position: eye, Target: target, PixelsPerUnit: pixelsPerUnit, Near: -50, Far: 1000}
}

// Eye returns the camera position.
func (c *Orthographic) Eye() math.Vec3 {
	return c.Position
}

// View returns the look-at matrix.
func (c *Orthographic) View() math.Mat4 {
	return math.LookAt(c.Position, c.Target, upFor(c.Position, c.Target))
}

// Projection returns a frustum sized to the viewport.
func (c *Orthographic) Projection(width, height int) math.Mat4 {
	hw := float32(width) / c.PixelsPerUnit / 2
	hh := float32(height) / c.PixelsPerUnit / 2
	return math.Ortho(-hw, hw, -hh, hh, c.Near, c.Far)
}

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// FOV is the vertical field of view in degrees.
	FOV float32
}

// NewOrbitCamera creates an orbit camera placed at eye, circling target.
func NewOrbitCamera(eye, target math.Vec3, fov float32) *OrbitCamera {
	offset := eye.Sub(target)
	dist := offset.Length()
	c := &OrbitCamera{
		Center:          target,
		Distance:        dist,
		MinDistance:     5,
		MaxDistance:     500,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FOV:             fov,
	}
	if dist > 0 {
		c.RotationX = math32.Asin(offset.Y / dist)
		c.RotationY = math32.Atan2(offset.X, offset.Z)
	}
	return c
}

// Eye returns the camera position in world space.
func (c *OrbitCamera) Eye() math.Vec3 {
	sinX, cosX := math32.Sincos(c.RotationX)
	sinY, cosY := math32.Sincos(c.RotationY)
	return c.Center.Add(math.Vec3{
		X: c.Distance * cosX * sinY,
		Y: c.Distance * sinX,
		Z: c.Distance * cosX * cosY,
	})
}

// View returns the view matrix for this camera.
func (c *OrbitCamera) View() math.Mat4 {
	return math.LookAt(c.Eye(), c.Center, math.Vec3{Y: 1})
}

// Projection returns the perspective matrix for the viewport.
func (c *OrbitCamera) Projection(width, height int) math.Mat4 {
	return math.Perspective(c.FOV*math32.Pi/180, aspect(width, height), 1, 1000)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX = math.Clamp(c.RotationX+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = math.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}
