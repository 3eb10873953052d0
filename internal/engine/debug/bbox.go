// Package debug provides debug visualization utilities.
package debug

import (
	sg "github.com/Faultbox/nightfield/internal/engine/scenegraph"
	"github.com/Faultbox/nightfield/pkg/math"
)

// BoxVertexCount is the number of vertices in a box outline (12 edges x 2).
const BoxVertexCount = 24

// BoxLines returns line vertices outlining b, xyz per vertex. An empty box
// yields nil.
func BoxLines(b math.Box3) []float32 {
	if b.IsEmpty() {
		return nil
	}
	lo, hi := b.Min, b.Max
	return []float32{
		// Bottom
		lo.X, lo.Y, lo.Z, hi.X, lo.Y, lo.Z,
		hi.X, lo.Y, lo.Z, hi.X, lo.Y, hi.Z,
		hi.X, lo.Y, hi.Z, lo.X, lo.Y, hi.Z,
		lo.X, lo.Y, hi.Z, lo.X, lo.Y, lo.Z,
		// Top
		lo.X, hi.Y, lo.Z, hi.X, hi.Y, lo.Z,
		hi.X, hi.Y, lo.Z, hi.X, hi.Y, hi.Z,
		hi.X, hi.Y, hi.Z, lo.X, hi.Y, hi.Z,
		lo.X, hi.Y, hi.Z, lo.X, hi.Y, lo.Z,
		// Verticals
		lo.X, lo.Y, lo.Z, lo.X, hi.Y, lo.Z,
		hi.X, lo.Y, lo.Z, hi.X, hi.Y, lo.Z,
		hi.X, lo.Y, hi.Z, hi.X, hi.Y, hi.Z,
		lo.X, lo.Y, hi.Z, lo.X, hi.Y, hi.Z,
	}
}

// NodeBoxLines outlines the world bounding box of each node's subtree,
// concatenated into one line list.
func NodeBoxLines(nodes ...*sg.Node) []float32 {
	out := make([]float32, 0, len(nodes)*BoxVertexCount*3)
	for _, n := range nodes {
		out = append(out, BoxLines(sg.BoundingBox(n))...)
	}
	return out
}
