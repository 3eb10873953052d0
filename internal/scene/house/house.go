// Package house holds the hand-authored meshes of the farmhouse: a 20 by
// 5.5 unit block with four front windows, one side window, a door opening
// and a gabled roof peaking 2 units above the walls.
package house

import "github.com/Faultbox/nightfield/internal/engine/geometry"

// Footprint of the house in its local space: x in [0, Width], z in
// [-Depth, 0], walls up to WallHeight, ridge at RidgeHeight.
const (
	Width       = 20
	Depth       = 5.5
	WallHeight  = 4
	RidgeHeight = 6
)

var wallPositions = []float32{
	// Front face, split around the window and door openings.
	0, 0, 0, 1, 2.5, 0, 0, 2.5, 0, 1, 0, 0, 2.5, 0, 0, 2.5, 1, 0, 1, 1, 0, 4.5, 0, 0, 4.5, 2.5, 0,
	2.5, 2.5, 0, 6, 0, 0, 6, 1, 0, 4.5, 1, 0, 8, 0, 0, 8, 2.5, 0, 6, 2.5, 0, 9.25, 0, 0, 9.25, 2.5, 0,
	11.5, 0, 0, 11.5, 2.5, 0, 13, 0, 0, 13, 1, 0, 11.5, 1, 0, 17, 0, 0, 17, 2.5, 0, 13, 2.5, 0, 18.5, 0, 0,
	18.5, 1, 0, 17, 1, 0, 20, 0, 0, 20, 2.5, 0, 18.5, 2.5, 0, 8, 4, 0, 0, 4, 0, 13, 4, 0, 20, 4, 0,
	// Right face around the side window.
	20, 0, -3.5, 20, 2.5, -3.5, 20, 0, -5, 20, 1, -5, 20, 1, -3.5, 20, 0, -5.5, 20, 2.5, -5.5,
	20, 2.5, -5, 20, 4, -5.5,
	// Left face.
	0, 0, -5.5, 0, 4, -5.5,
	// Corners shared with the other faces.
	0, 0, 0, 20, 0, 0, 20, 2.5, 0, 0, 4, 0,
	20, 4, 0, 20, 0, -5.5, 20, 4, -5.5, 0, 0, -5.5, 0, 4, -5.5,
}

var wallIndices = []uint32{
	// Front
	0, 1, 2, 0, 3, 1, 3, 4, 5, 3, 5, 6, 4, 7, 8, 4, 8, 9, 7, 10, 11, 7, 11, 12, 10, 13, 14,
	10, 14, 15, 16, 18, 19, 16, 19, 17, 18, 20, 21, 18, 21, 22, 20, 23, 24, 20, 24, 25,
	23, 26, 27, 23, 27, 28, 26, 29, 30, 26, 30, 31, 2, 14, 32, 2, 32, 33, 14, 25, 34,
	14, 34, 32, 25, 30, 35, 25, 35, 34,
	// Right
	48, 36, 37, 48, 37, 49, 36, 38, 39, 36, 39, 40, 38, 41, 42, 38, 42, 43, 49, 42, 44, 49, 44, 51,
	// Left
	45, 47, 50, 45, 50, 46,
	// Back
	52, 54, 55, 52, 55, 53,
}

var roofPositions = []float32{
	// Eaves
	0, 4, 0, 0, 4, -5.5, 20, 4, 0, 20, 4, -5.5,
	// Ridge
	0, 6, -2.75, 20, 6, -2.75,
	// Gable ends, duplicated so they shade apart from the slopes.
	0, 4, 0, 0, 4, -5.5, 20, 4, 0, 20, 4, -5.5, 0, 6, -2.75,
	0, 6, -2.75, 20, 6, -2.75, 20, 6, -2.75,
}

var roofIndices = []uint32{
	0, 2, 5, 0, 5, 4, 3, 1, 10, 3, 10, 12, 7, 6, 11, 8, 9, 13,
}

var windowPositions = []float32{
	1, 1, 0, 2.5, 1, 0, 2.5, 2.5, 0, 1, 2.5, 0,
	4.5, 1, 0, 6, 1, 0, 6, 2.5, 0, 4.5, 2.5, 0,
	11.5, 1, 0, 13, 1, 0, 13, 2.5, 0, 11.5, 2.5, 0,
	17, 1, 0, 18.5, 1, 0, 18.5, 2.5, 0, 17, 2.5, 0,
	20, 1, -3.5, 20, 1, -5, 20, 2.5, -5, 20, 2.5, -3.5,
}

var doorPositions = []float32{
	8, 0, 0, 9.25, 0, 0, 9.25, 2.5, 0, 8, 2.5, 0,
}

// quads indexes consecutive groups of four vertices as two triangles each.
func quads(vertexCount int) []uint32 {
	indices := make([]uint32, 0, vertexCount/4*6)
	for i := uint32(0); i+3 < uint32(vertexCount); i += 4 {
		indices = append(indices, i, i+1, i+2, i, i+2, i+3)
	}
	return indices
}

// Walls returns the four walls with openings for windows and the door.
func Walls() *geometry.Geometry {
	return geometry.MustFromBuffers(wallPositions, wallIndices)
}

// Roof returns the two roof slopes and both gable triangles.
func Roof() *geometry.Geometry {
	return geometry.MustFromBuffers(roofPositions, roofIndices)
}

// Windows returns the five window panes filling the wall openings.
func Windows() *geometry.Geometry {
	return geometry.MustFromBuffers(windowPositions, quads(len(windowPositions)/3))
}

// Door returns the door pane.
func Door() *geometry.Geometry {
	return geometry.MustFromBuffers(doorPositions, quads(len(doorPositions)/3))
}
