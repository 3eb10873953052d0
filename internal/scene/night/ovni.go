package night

import (
	"github.com/Faultbox/nightfield/internal/engine/lighting"
	sg "github.com/Faultbox/nightfield/internal/engine/scenegraph"
	"github.com/Faultbox/nightfield/internal/scene/placement"
	"github.com/Faultbox/nightfield/pkg/math"
)

// SatelliteCount is the number of lit spheres ringing the saucer.
const SatelliteCount = 8

// ovniHull is the saucer ellipsoid's semi-axes.
var ovniHull = math.V3(3.5, 1, 3.5)

// Ovni is the flying saucer. The root spins and carries every light.
type Ovni struct {
	Root       *sg.Node
	Spot       *sg.Node
	Satellites []*sg.Node
}

func buildOvni(s *shapes, mesh meshFunc) (*Ovni, error) {
	o := &Ovni{Root: sg.NewGroup("ovni")}

	body := mesh("ovni-body", TagOvniBody, s.ovniBody)
	body.Scale = ovniHull
	cockpit := mesh("cockpit", TagCockpit, s.cockpit).At(0, ovniHull.Y/2, 0)
	housing := mesh("spot-housing", TagSpotHousing, s.housing).At(0, -ovniHull.Y, 0)

	o.Spot = sg.NewLight("spotlight", lighting.NewSpot(
		lighting.RGB(ColorLightCyan), spotIntensity, spotRange, spotAngle, spotPenumbra, spotDecay,
		math.Vec3{Y: -1},
	)).At(0, -ovniHull.Y, 0)

	o.Root.Add(body, cockpit, housing, o.Spot)

	// Satellites sit on the lower half of the hull, halfway down.
	y := -ovniHull.Y / 2
	x, err := placement.EllipsoidX(ovniHull.X, ovniHull.Y, y)
	if err != nil {
		return nil, err
	}
	for _, angle := range placement.RingAngles(SatelliteCount) {
		holder := sg.NewGroup("satellite-holder").Rotated(0, angle, 0)
		light := sg.NewLight("satellite-light",
			lighting.NewPoint(lighting.RGB(ColorLightCyan), satelliteIntensity, satelliteLightRange)).At(x, y, 0)
		holder.Add(mesh("satellite", TagSatellite, s.satellite).At(x, y, 0), light)
		o.Root.Add(holder)
		o.Satellites = append(o.Satellites, light)
	}
	return o, nil
}

// Flight tunes the saucer's motion.
type Flight struct {
	// AngularSpeed is the spin in radians per second.
	AngularSpeed float32
	// Speed is the horizontal speed in units per second.
	Speed float32
	// Limit is the largest horizontal distance from the dome centre.
	Limit float32
}

// Fly spins the saucer and moves it along dir, sliding along the
// containment circle rather than stopping at it. A zero dir only spins.
func (o *Ovni) Fly(dt float32, dir math.Vec2, f Flight) {
	if dt <= 0 {
		return
	}
	o.Root.Rotation.Y += f.AngularSpeed * dt

	if dir.Length() == 0 {
		return
	}
	p := o.Root.Position.XZ().Add(dir.Normalize().Scale(f.Speed * dt)).ClampLength(f.Limit)
	o.Root.Position.X, o.Root.Position.Z = p.X, p.Y
}

// Heading sums held arrow directions into a horizontal vector. Left is +X
// and up is +Z as seen from the default camera.
func Heading(up, down, left, right bool) math.Vec2 {
	var d math.Vec2
	if left {
		d.X++
	}
	if right {
		d.X--
	}
	if up {
		d.Y++
	}
	if down {
		d.Y--
	}
	return d
}
