package controls

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeldKeyFiresOnce(t *testing.T) {
	Convey("Given the transformer keymap", t, func() {
		keys := TransformerKeys()
		in := NewIntents()
		toggles := 0

		Convey("holding the wireframe key for ten frames toggles once", func() {
			for frame := 0; frame < 10; frame++ {
				// SDL keeps sending repeats while the key is down.
				keys.Press(in, "7")
				if in.JustPressed(Wireframe) {
					toggles++
				}
				So(in.Held(Wireframe), ShouldBeTrue)
				in.EndFrame()
			}
			So(toggles, ShouldEqual, 1)
		})

		Convey("two separate presses toggle twice", func() {
			on := false
			for press := 0; press < 2; press++ {
				keys.Press(in, "7")
				if in.JustPressed(Wireframe) {
					on = !on
					toggles++
				}
				in.EndFrame()
				keys.Release(in, "7")
				in.EndFrame()
			}
			So(toggles, ShouldEqual, 2)
			So(on, ShouldBeFalse)
		})

		Convey("a press and release within one frame still counts", func() {
			keys.Press(in, "1")
			keys.Release(in, "1")
			So(in.JustPressed(CameraFront), ShouldBeTrue)
			So(in.Held(CameraFront), ShouldBeFalse)
			in.EndFrame()
			So(in.JustPressed(CameraFront), ShouldBeFalse)
		})
	})
}

func TestUnboundKeysAreIgnored(t *testing.T) {
	in := NewIntents()
	NightKeys().Press(in, "Z")
	assert.Empty(t, in.held)
	assert.Empty(t, in.pressed)
}

func TestOverride(t *testing.T) {
	keys, err := TransformerKeys().Override(map[string]string{"wireframe": "8"})
	require.NoError(t, err)
	assert.Equal(t, Wireframe, keys["8"])
	_, stillBound := keys["7"]
	assert.False(t, stillBound)

	// The defaults are untouched.
	assert.Equal(t, Wireframe, TransformerKeys()["7"])

	_, err = NightKeys().Override(map[string]string{"wireframe": "8"})
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestReset(t *testing.T) {
	in := NewIntents()
	in.Press(MoveUp)
	in.Reset()
	assert.False(t, in.Held(MoveUp))
	assert.False(t, in.JustPressed(MoveUp))

	in.Press(MoveUp)
	assert.True(t, in.JustPressed(MoveUp))
}
