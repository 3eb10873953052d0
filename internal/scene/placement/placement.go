// Package placement computes where child meshes sit on their parents: a
// tilted branch meeting a trunk, and satellites ringing an ellipsoid hull.
package placement

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/nightfield/pkg/math"
)

var (
	// ErrInclinationOutOfRange is returned for branch angles outside (0, pi/2).
	ErrInclinationOutOfRange = errors.New("inclination must be in (0, pi/2)")
	// ErrHeightOutOfRange is returned when a height lies beyond an ellipsoid's
	// vertical semi-axis.
	ErrHeightOutOfRange = errors.New("height outside ellipsoid")
)

// Branch describes a cylinder leaning off the top of a parent cylinder.
type Branch struct {
	// Offset is the branch centre relative to the top centre of the parent,
	// in the parent's XY plane.
	Offset math.Vec2
	// Tilt is the rotation about Z to apply to the branch. Negative values
	// lean the branch toward +X.
	Tilt float32
	// Attachment is the point of the branch's base rim that touches the
	// parent's lateral surface, relative to the parent's top centre.
	Attachment math.Vec2
}

// BranchOffset places a cylinder of the given height and radius, inclined
// theta radians from vertical toward +X, so that the rim of its base rests
// on the lateral surface of a parent of radius parentRadius.
func BranchOffset(theta, height, radius, parentRadius float32) (Branch, error) {
	if !(theta > 0 && theta < math32.Pi/2) {
		return Branch{}, fmt.Errorf("branch at %v rad: %w", theta, ErrInclinationOutOfRange)
	}

	sin, cos := math32.Sincos(theta)
	tan := sin / cos
	x := sin*(height/2+radius/tan) - parentRadius
	y := cos*(height/2+radius*tan) - parentRadius

	// The base centre sits half a height back along the branch axis; the
	// contact point is one radius further along the base, away from +X.
	axis := math.Vec2{X: sin, Y: cos}
	across := math.Vec2{X: cos, Y: -sin}
	base := math.Vec2{X: x, Y: y}.Sub(axis.Scale(height / 2))

	return Branch{
		Offset:     math.Vec2{X: x, Y: y},
		Tilt:       -theta,
		Attachment: base.Sub(across.Scale(radius)),
	}, nil
}

// EllipsoidX returns the horizontal distance from the axis at which a point
// at height y lies on an ellipsoid with horizontal semi-axis rx and
// vertical semi-axis ry.
func EllipsoidX(rx, ry, y float32) (float32, error) {
	if ry <= 0 || math32.Abs(y) > ry {
		return 0, fmt.Errorf("height %v with semi-axis %v: %w", y, ry, ErrHeightOutOfRange)
	}
	return math32.Sqrt(rx * rx * (1 - (y*y)/(ry*ry))), nil
}

// RingAngles returns n evenly spaced angles covering a full turn.
func RingAngles(n int) []float32 {
	angles := make([]float32, n)
	for i := range angles {
		angles[i] = 2 * math32.Pi * float32(i) / float32(n)
	}
	return angles
}
