package docking

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Faultbox/nightfield/internal/scene/transformer"
	"github.com/Faultbox/nightfield/pkg/math"
)

const dt = float32(1) / 60

func hold(dirs ...Direction) func(Direction) bool {
	return func(d Direction) bool {
		for _, h := range dirs {
			if h == d {
				return true
			}
		}
		return false
	}
}

func TestDockingFolded(t *testing.T) {
	Convey("Given a folded truck and a parked trailer", t, func() {
		rig := transformer.NewRig()
		rig.Body.Fold()
		m := New(DefaultConfig(), rig.Body, rig.Trailer)
		So(m.State(), ShouldEqual, Free)

		entered := 0
		prev := m.State()
		for i := 0; i < 600 && m.State() != Connected; i++ {
			m.Update(dt, hold(Down))
			if m.State() == Animating && prev != Animating {
				entered++
			}
			prev = m.State()
		}

		Convey("holding down hitches the trailer exactly once", func() {
			So(m.State(), ShouldEqual, Connected)
			So(entered, ShouldEqual, 1)
			So(m.Docks(), ShouldEqual, 1)
			So(rig.Trailer.Position(), ShouldResemble, math.Vec3{X: 20})
		})

		Convey("further input neither moves nor re-hitches the trailer", func() {
			for i := 0; i < 60; i++ {
				m.Update(dt, hold(Down, Left, Right))
			}
			So(m.State(), ShouldEqual, Connected)
			So(m.Docks(), ShouldEqual, 1)
			So(rig.Trailer.Position(), ShouldResemble, math.Vec3{X: 20})
		})

		Convey("holding up undocks once the boxes separate", func() {
			for i := 0; i < 60; i++ {
				m.Update(dt, hold(Up))
			}
			So(m.State(), ShouldEqual, Free)
			So(m.Docks(), ShouldEqual, 1)
			So(rig.Trailer.Position().X, ShouldBeLessThan, float32(12))
			So(m.Blocked(Down), ShouldBeFalse)
		})
	})

	Convey("Given a trailer that has just started hitching", t, func() {
		rig := transformer.NewRig()
		rig.Body.Fold()
		m := New(DefaultConfig(), rig.Body, rig.Trailer)
		for i := 0; i < 100 && m.State() != Animating; i++ {
			m.Update(dt, hold(Down))
		}
		So(m.State(), ShouldEqual, Animating)
		start := rig.Trailer.Position()

		Convey("a zero or negative frame time does not move it", func() {
			m.Update(0, hold())
			m.Update(-1, hold())
			So(m.State(), ShouldEqual, Animating)
			So(rig.Trailer.Position(), ShouldResemble, start)
		})

		Convey("it travels at a constant speed", func() {
			m.Update(0.1, hold())
			So(rig.Trailer.Position().X-start.X, ShouldAlmostEqual, 1, 1e-4)
		})
	})
}

func TestNonPositiveFrameTime(t *testing.T) {
	Convey("Given a free trailer with every direction held", t, func() {
		rig := transformer.NewRig()
		m := New(DefaultConfig(), rig.Body, rig.Trailer)
		start := rig.Trailer.Position()

		Convey("zero and negative frames leave it in place", func() {
			m.Update(0, hold(Directions[:]...))
			m.Update(-1, hold(Down))
			So(rig.Trailer.Position(), ShouldResemble, start)
			So(m.State(), ShouldEqual, Free)
		})

		Convey("the next positive frame moves it again", func() {
			m.Update(0, hold(Down))
			m.Update(dt, hold(Down))
			So(rig.Trailer.Position(), ShouldNotResemble, start)
		})
	})

	Convey("Given a hitched trailer with up held", t, func() {
		rig := transformer.NewRig()
		rig.Body.Fold()
		m := New(DefaultConfig(), rig.Body, rig.Trailer)
		for i := 0; i < 600 && m.State() != Connected; i++ {
			m.Update(dt, hold(Down))
		}
		So(m.State(), ShouldEqual, Connected)

		Convey("zero and negative frames do not undock it", func() {
			m.Update(0, hold(Up))
			m.Update(-1, hold(Up))
			So(m.State(), ShouldEqual, Connected)
			So(rig.Trailer.Position(), ShouldResemble, math.Vec3{X: 20})
		})
	})
}

func TestCollisionBlocking(t *testing.T) {
	Convey("Given the robot standing and the trailer off to its right", t, func() {
		rig := transformer.NewRig()
		rig.Trailer.SetPosition(math.Vec3{X: 30, Z: 20})
		m := New(DefaultConfig(), rig.Body, rig.Trailer)

		for i := 0; i < 100 && !m.Blocked(Right); i++ {
			m.Update(dt, hold(Right))
		}
		So(m.Blocked(Right), ShouldBeTrue)
		So(m.Blocked(Left), ShouldBeFalse)
		So(m.State(), ShouldEqual, Colliding)

		Convey("further rightward moves are rejected", func() {
			stuck := rig.Trailer.Position()
			for i := 0; i < 10; i++ {
				m.Update(dt, hold(Right))
				So(rig.Trailer.Position(), ShouldResemble, stuck)
				So(m.Blocked(Right), ShouldBeTrue)
			}
		})

		Convey("moving left separates the boxes and clears the block", func() {
			for i := 0; i < 5; i++ {
				m.Update(dt, hold(Left))
			}
			So(m.State(), ShouldEqual, Free)
			So(m.Blocked(Right), ShouldBeFalse)

			before := rig.Trailer.Position()
			m.Update(dt, hold(Right))
			So(rig.Trailer.Position().Z, ShouldBeLessThan, before.Z)
		})

		Convey("the robot never hitches", func() {
			So(m.Docks(), ShouldEqual, 0)
		})
	})

	Convey("Given a folded truck hit from the side too far back", t, func() {
		rig := transformer.NewRig()
		rig.Body.Fold()
		rig.Trailer.SetPosition(math.Vec3{X: 14, Z: 20})
		m := New(DefaultConfig(), rig.Body, rig.Trailer)

		for i := 0; i < 100 && m.State() == Free; i++ {
			m.Update(dt, hold(Right))
		}

		Convey("the collision blocks without hitching", func() {
			So(m.State(), ShouldEqual, Colliding)
			So(m.Blocked(Right), ShouldBeTrue)
			So(m.Docks(), ShouldEqual, 0)
		})
	})
}
