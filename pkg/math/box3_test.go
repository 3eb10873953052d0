package math

import (
	"math"
	"testing"
)

func box(minX, minY, minZ, maxX, maxY, maxZ float32) Box3 {
	return Box3{Min: Vec3{minX, minY, minZ}, Max: Vec3{maxX, maxY, maxZ}}
}

func TestEmptyBox3(t *testing.T) {
	b := EmptyBox3()
	if !b.IsEmpty() {
		t.Fatal("EmptyBox3().IsEmpty() = false, want true")
	}
	b.ExpandByPoint(Vec3{1, 2, 3})
	if b.IsEmpty() || b.Min != b.Max {
		t.Errorf("after one point box = %v, want degenerate at (1,2,3)", b)
	}
	if b.Intersects(EmptyBox3()) {
		t.Error("a box must not intersect an empty box")
	}
}

func TestBox3Intersects(t *testing.T) {
	a := box(0, 0, 0, 2, 2, 2)
	tests := []struct {
		name  string
		other Box3
		want  bool
	}{
		{"inside", box(0.5, 0.5, 0.5, 1, 1, 1), true},
		{"touching", box(2, 0, 0, 3, 2, 2), true},
		{"apart x", box(2.1, 0, 0, 3, 2, 2), false},
		{"apart z", box(0, 0, -3, 2, 2, -0.1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBox3Overlap(t *testing.T) {
	a := box(0, 0, 0, 4, 4, 4)
	b := box(3, 1, -1, 10, 2, 1)
	got := a.Overlap(b)
	want := Vec3{1, 1, 1}
	if got != want {
		t.Errorf("Overlap() = %v, want %v", got, want)
	}
}

func TestBox3TransformRotated(t *testing.T) {
	b := box(-1, -2, -3, 1, 2, 3)
	got := b.Transform(RotateY(float32(math.Pi / 2)))
	if abs(got.Max.X-3) > 1e-5 || abs(got.Max.Z-1) > 1e-5 || abs(got.Max.Y-2) > 1e-5 {
		t.Errorf("Transform() = %v, want extents (3, 2, 1)", got)
	}
}
