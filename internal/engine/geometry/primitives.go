package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/nightfield/pkg/math"
)

// Box returns an axis-aligned box centred on the origin. Each face has its
// own four vertices so edges stay sharp.
func Box(width, height, depth float32) *Geometry {
	size := math.Vec3{X: width, Y: height, Z: depth}
	faces := [6]struct{ n, u, v math.Vec3 }{
		{math.Vec3{X: 1}, math.Vec3{Z: -1}, math.Vec3{Y: 1}},
		{math.Vec3{X: -1}, math.Vec3{Z: 1}, math.Vec3{Y: 1}},
		{math.Vec3{Y: 1}, math.Vec3{X: 1}, math.Vec3{Z: -1}},
		{math.Vec3{Y: -1}, math.Vec3{X: 1}, math.Vec3{Z: 1}},
		{math.Vec3{Z: 1}, math.Vec3{X: 1}, math.Vec3{Y: 1}},
		{math.Vec3{Z: -1}, math.Vec3{X: -1}, math.Vec3{Y: 1}},
	}

	g := &Geometry{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for _, f := range faces {
		hn := absDot(f.n, size) / 2
		hu := absDot(f.u, size) / 2
		hv := absDot(f.v, size) / 2
		center := f.n.Scale(hn)

		base := uint32(len(g.Vertices))
		corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
		for _, c := range corners {
			p := center.Add(f.u.Scale(c[0] * hu)).Add(f.v.Scale(c[1] * hv))
			g.Vertices = append(g.Vertices, Vertex{
				Position: p.Array(),
				Normal:   f.n.Array(),
				TexCoord: [2]float32{(c[0] + 1) / 2, (c[1] + 1) / 2},
			})
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}

	g.ComputeBounds()
	return g
}

func absDot(axis, size math.Vec3) float32 {
	return math32.Abs(axis.X*size.X + axis.Y*size.Y + axis.Z*size.Z)
}

// Cylinder returns a capped cylinder along Y centred on the origin.
func Cylinder(radiusTop, radiusBottom, height float32, radialSegments int) *Geometry {
	if radialSegments < 3 {
		radialSegments = 3
	}
	g := &Geometry{}
	half := height / 2
	slope := (radiusBottom - radiusTop) / height

	// Torso: two rows of radialSegments+1 vertices, the last duplicating the
	// first so texture coordinates can wrap.
	for row := 0; row <= 1; row++ {
		v := float32(row)
		radius := v*(radiusBottom-radiusTop) + radiusTop
		for x := 0; x <= radialSegments; x++ {
			u := float32(x) / float32(radialSegments)
			theta := u * 2 * math32.Pi
			sin, cos := math32.Sincos(theta)
			n := math.Vec3{X: sin, Y: slope, Z: cos}.Normalize()
			g.Vertices = append(g.Vertices, Vertex{
				Position: [3]float32{radius * sin, -v*height + half, radius * cos},
				Normal:   n.Array(),
				TexCoord: [2]float32{u, 1 - v},
			})
		}
	}
	stride := uint32(radialSegments + 1)
	for x := uint32(0); x < uint32(radialSegments); x++ {
		a := x
		b := stride + x
		c := stride + x + 1
		d := x + 1
		g.Indices = append(g.Indices, a, b, d, b, c, d)
	}

	g.cap(true, radiusTop, half, radialSegments)
	g.cap(false, radiusBottom, -half, radialSegments)
	g.ComputeBounds()
	return g
}

func (g *Geometry) cap(top bool, radius, y float32, segments int) {
	sign := float32(-1)
	if top {
		sign = 1
	}
	normal := [3]float32{0, sign, 0}

	centerStart := uint32(len(g.Vertices))
	for x := 0; x < segments; x++ {
		g.Vertices = append(g.Vertices, Vertex{
			Position: [3]float32{0, y, 0},
			Normal:   normal,
			TexCoord: [2]float32{0.5, 0.5},
		})
	}

	rimStart := uint32(len(g.Vertices))
	for x := 0; x <= segments; x++ {
		theta := float32(x) / float32(segments) * 2 * math32.Pi
		sin, cos := math32.Sincos(theta)
		g.Vertices = append(g.Vertices, Vertex{
			Position: [3]float32{radius * sin, y, radius * cos},
			Normal:   normal,
			TexCoord: [2]float32{cos*0.5 + 0.5, sin*0.5*sign + 0.5},
		})
	}

	for x := uint32(0); x < uint32(segments); x++ {
		c := centerStart + x
		i := rimStart + x
		if top {
			g.Indices = append(g.Indices, i, i+1, c)
		} else {
			g.Indices = append(g.Indices, i+1, i, c)
		}
	}
}

// Sphere returns a full UV sphere.
func Sphere(radius float32, widthSegments, heightSegments int) *Geometry {
	return SphereSection(radius, widthSegments, heightSegments, 0, 2*math32.Pi, 0, math32.Pi)
}

// SphereSection returns the part of a UV sphere swept by the azimuth range
// [phiStart, phiStart+phiLength] and the polar range
// [thetaStart, thetaStart+thetaLength], with theta measured from +Y.
func SphereSection(radius float32, widthSegments, heightSegments int, phiStart, phiLength, thetaStart, thetaLength float32) *Geometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}
	thetaEnd := math32.Min(thetaStart+thetaLength, math32.Pi)

	g := &Geometry{}
	grid := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)

		// Poles get a half-segment offset so their texels are centred.
		var uOffset float32
		if iy == 0 && thetaStart == 0 {
			uOffset = 0.5 / float32(widthSegments)
		} else if iy == heightSegments && thetaEnd == math32.Pi {
			uOffset = -0.5 / float32(widthSegments)
		}

		sinT, cosT := math32.Sincos(thetaStart + v*thetaLength)
		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			sinP, cosP := math32.Sincos(phiStart + u*phiLength)
			p := math.Vec3{X: -radius * cosP * sinT, Y: radius * cosT, Z: radius * sinP * sinT}
			row[ix] = uint32(len(g.Vertices))
			g.Vertices = append(g.Vertices, Vertex{
				Position: p.Array(),
				Normal:   p.Normalize().Array(),
				TexCoord: [2]float32{u + uOffset, 1 - v},
			})
		}
		grid[iy] = row
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 || thetaStart > 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 || thetaEnd < math32.Pi {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}

	g.ComputeBounds()
	return g
}

// Circle returns a flat disc in the XY plane facing +Z. rings concentric
// bands subdivide the disc so it can later be displaced; one ring gives a
// plain triangle fan.
func Circle(radius float32, segments, rings int) *Geometry {
	if segments < 3 {
		segments = 3
	}
	if rings < 1 {
		rings = 1
	}
	normal := [3]float32{0, 0, 1}

	g := &Geometry{}
	g.Vertices = append(g.Vertices, Vertex{Normal: normal, TexCoord: [2]float32{0.5, 0.5}})

	stride := uint32(segments + 1)
	for r := 1; r <= rings; r++ {
		ringRadius := radius * float32(r) / float32(rings)
		for s := 0; s <= segments; s++ {
			sin, cos := math32.Sincos(float32(s) / float32(segments) * 2 * math32.Pi)
			x, y := ringRadius*cos, ringRadius*sin
			g.Vertices = append(g.Vertices, Vertex{
				Position: [3]float32{x, y, 0},
				Normal:   normal,
				TexCoord: [2]float32{(x/radius + 1) / 2, (y/radius + 1) / 2},
			})
		}
	}

	ring := func(r, s int) uint32 {
		return 1 + uint32(r-1)*stride + uint32(s)
	}
	for s := 0; s < segments; s++ {
		g.Indices = append(g.Indices, ring(1, s), ring(1, s+1), 0)
	}
	for r := 2; r <= rings; r++ {
		for s := 0; s < segments; s++ {
			a, b := ring(r-1, s), ring(r, s)
			c, d := ring(r, s+1), ring(r-1, s+1)
			g.Indices = append(g.Indices, a, b, c, a, c, d)
		}
	}

	g.ComputeBounds()
	return g
}
