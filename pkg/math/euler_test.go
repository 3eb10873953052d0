package math

import (
	"math"
	"testing"
)

func TestEulerZeroIsIdentity(t *testing.T) {
	if got := (Euler{}).Mat4(); got != Identity() {
		t.Errorf("Euler{}.Mat4() = %v, want identity", got)
	}
}

func TestEulerNegativeZLeansUpTowardPlusX(t *testing.T) {
	// A negative Z rotation leans +Y toward +X.
	m := Euler{Z: -float32(math.Pi / 2)}.Mat4()
	got := m.TransformVec3(Vec3{0, 1, 0})
	if abs(got.X-1) > 1e-5 || abs(got.Y) > 1e-5 {
		t.Errorf("Euler{Z:-pi/2} * up = %v, want (1, 0, 0)", got)
	}
}

func TestComposeOrder(t *testing.T) {
	// Scale then rotate then translate.
	m := Compose(Vec3{10, 0, 0}, Euler{Y: float32(math.Pi / 2)}, Vec3{2, 2, 2})
	got := m.TransformVec3(Vec3{1, 0, 0})
	want := Vec3{10, 0, -2}
	if got.Distance(want) > 1e-5 {
		t.Errorf("Compose() * (1,0,0) = %v, want %v", got, want)
	}
}
