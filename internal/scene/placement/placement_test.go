package placement

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-4

func TestBranchOffsetMatchesReferenceTree(t *testing.T) {
	b, err := BranchOffset(math32.Pi/6, 4, 0.5, 0.5)
	require.NoError(t, err)

	sin, cos := math32.Sincos(math32.Pi / 6)
	tan := sin / cos
	assert.InDelta(t, sin*(2+0.5/tan)-0.5, b.Offset.X, tol)
	assert.InDelta(t, cos*(2+0.5*tan)-0.5, b.Offset.Y, tol)
	assert.InDelta(t, -math32.Pi/6, b.Tilt, tol)
}

func TestBranchAttachesToTrunkSurface(t *testing.T) {
	for _, theta := range []float32{0.05, math32.Pi / 6, math32.Pi / 4, math32.Pi / 3, 1.5} {
		for _, r := range []float32{0.3, 0.5} {
			b, err := BranchOffset(theta, 4, r, 0.5)
			require.NoError(t, err)
			// Distance from the trunk axis equals the trunk radius.
			assert.InDelta(t, 0.5, math32.Abs(b.Attachment.X), tol, "theta=%v r=%v", theta, r)
		}
	}
}

func TestBranchOffsetRejectsBadInclination(t *testing.T) {
	for _, theta := range []float32{0, -0.1, math32.Pi / 2, 2} {
		_, err := BranchOffset(theta, 4, 0.5, 0.5)
		assert.ErrorIs(t, err, ErrInclinationOutOfRange, "theta=%v", theta)
	}
}

func TestEllipsoidX(t *testing.T) {
	for _, y := range []float32{-1, -0.5, 0, 0.25, 1} {
		x, err := EllipsoidX(3.5, 1, y)
		require.NoError(t, err)
		assert.InDelta(t, 1, (x/3.5)*(x/3.5)+y*y, tol, "y=%v", y)
	}

	_, err := EllipsoidX(3.5, 1, 1.01)
	assert.ErrorIs(t, err, ErrHeightOutOfRange)
}

func TestRingAngles(t *testing.T) {
	angles := RingAngles(8)
	require.Len(t, angles, 8)
	assert.Zero(t, angles[0])
	assert.InDelta(t, math32.Pi/4, angles[1], tol)
	assert.InDelta(t, 7*math32.Pi/4, angles[7], tol)
}
