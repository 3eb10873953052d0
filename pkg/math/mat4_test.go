package math

import (
	"math"
	"testing"
)

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func near(a, b Vec3) bool {
	return a.Distance(b) < 1e-4
}

func TestIdentityLeavesPointsAlone(t *testing.T) {
	p := Vec3{4, -5, 6}
	if got := Identity().TransformVec3(p); got != p {
		t.Errorf("Identity moved %v to %v", p, got)
	}
	m := Compose(Vec3{1, 2, 3}, Euler{0.2, 0, 0}, One())
	if m.Mul(Identity()) != m || Identity().Mul(m) != m {
		t.Error("multiplying by the identity changed the matrix")
	}
}

func TestTranslateAndScale(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"translate", Translate(10, 20, 30), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(2, 3, 4), Vec3{1, 1, 1}, Vec3{2, 3, 4}},
		{"scale then translate", Translate(1, 0, 0).Mul(Scale(2, 2, 2)), Vec3{1, 1, 1}, Vec3{3, 2, 2}},
	}
	for _, tt := range tests {
		if got := tt.m.TransformVec3(tt.in); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRotationsAreRightHanded(t *testing.T) {
	quarter := float32(math.Pi / 2)
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"X turns Y into Z", RotateX(quarter), Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"Y turns Z into X", RotateY(quarter), Vec3{0, 0, 1}, Vec3{1, 0, 0}},
		{"Y turns X into -Z", RotateY(quarter), Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		{"Z turns X into Y", RotateZ(quarter), Vec3{1, 0, 0}, Vec3{0, 1, 0}},
	}
	for _, tt := range tests {
		if got := tt.m.TransformVec3(tt.in); !near(got, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(5, 5, 5).Mul(Scale(2, 1, 1))
	if got := m.TransformDirection(Vec3{1, 1, 0}); got != (Vec3{2, 1, 0}) {
		t.Errorf("TransformDirection = %v, want (2, 1, 0)", got)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	m := Perspective(float32(math.Pi/2), 1, 1, 100)
	if m[11] != -1 || m[15] != 0 {
		t.Errorf("Perspective w row = (%f, %f), want (-1, 0)", m[11], m[15])
	}
	nearZ := m.TransformVec3(Vec3{0, 0, -1}).Z
	farZ := m.TransformVec3(Vec3{0, 0, -100}).Z
	if abs(nearZ+1) > 1e-4 || abs(farZ-1) > 1e-3 {
		t.Errorf("depth of near/far planes = %f/%f, want -1/1", nearZ, farZ)
	}
}

func TestOrthoMapsBoxToClipCube(t *testing.T) {
	m := Ortho(-4, 4, -2, 2, 1, 11)
	got := m.TransformVec3(Vec3{4, -2, -1})
	if !near(got, Vec3{1, -1, -1}) {
		t.Errorf("Ortho corner = %v, want (1, -1, -1)", got)
	}
}

func TestLookAtPutsTargetAhead(t *testing.T) {
	m := LookAt(Vec3{0, 0, 5}, Vec3{}, Vec3{0, 1, 0})
	if got := m.TransformVec3(Vec3{}); !near(got, Vec3{0, 0, -5}) {
		t.Errorf("target in view space = %v, want (0, 0, -5)", got)
	}
	m = LookAt(Vec3{3, 0, 0}, Vec3{}, Vec3{0, 1, 0})
	if got := m.TransformVec3(Vec3{3, 0, 0}); !near(got, Vec3{}) {
		t.Errorf("eye in view space = %v, want origin", got)
	}
}

func TestInverseRoundTrip(t *testing.T) {
	m := Compose(Vec3{3, -2, 7}, Euler{0.3, 1.1, -0.4}, Vec3{2, 1, 0.5})
	p := Vec3{1, 2, 3}
	got := m.Inverse().TransformVec3(m.TransformVec3(p))
	if got.Distance(p) > 1e-4 {
		t.Errorf("Inverse round trip = %v, want %v", got, p)
	}
}

func TestInverseNeedsPivoting(t *testing.T) {
	// Zero on the diagonal: a plain elimination would divide by it.
	swap := Mat4{
		0, 1, 0, 0,
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	if got := swap.Inverse(); got != swap {
		t.Errorf("inverse of an axis swap = %v, want itself", got)
	}
	if got := Scale(0, 1, 1).Inverse(); got != Identity() {
		t.Errorf("singular inverse = %v, want identity", got)
	}
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	m := Scale(1, 4, 1)
	n := m.NormalMatrix().TransformDirection(Vec3{0, 1, 0}).Normalize()
	if abs(n.Y-1) > 1e-5 {
		t.Errorf("NormalMatrix up = %v, want (0, 1, 0)", n)
	}
	// Stretching Y flattens a 45 degree slope, so its normal leans toward X.
	slope := m.NormalMatrix().TransformDirection(Vec3{1, 1, 0}).Normalize()
	if slope.X <= slope.Y {
		t.Errorf("NormalMatrix slope = %v, want X > Y", slope)
	}
}
