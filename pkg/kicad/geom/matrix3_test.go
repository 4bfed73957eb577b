package geom

import (
	"math"
	"testing"
)

func approxVec(a, b Vec2, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestMatrix3Transform(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix3
		in   Vec2
		want Vec2
	}{
		{"identity", Identity(), Vec2{X: 3, Y: 4}, Vec2{X: 3, Y: 4}},
		{"translation", Translation(10, -5), Vec2{X: 1, Y: 1}, Vec2{X: 11, Y: -4}},
		{"scale", Scaling(2, 3), Vec2{X: 1, Y: 1}, Vec2{X: 2, Y: 3}},
		{"rotation 90", Rotation(Degrees(90)), Vec2{X: 1, Y: 0}, Vec2{X: 0, Y: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Transform(tt.in)
			if !approxVec(got, tt.want, 1e-9) {
				t.Errorf("Transform() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatrix3Compose(t *testing.T) {
	// Translate then rotate: m = R * T applies T first.
	m := Rotation(Degrees(90)).Mul(Translation(1, 0))
	got := m.Transform(Vec2{})
	if !approxVec(got, Vec2{X: 0, Y: 1}, 1e-9) {
		t.Errorf("composed transform = %v, want (0,1)", got)
	}
}

func TestMatrix3Inverse(t *testing.T) {
	m := Translation(12, -7).Mul(Rotation(Degrees(30))).Mul(Scaling(2, 2))
	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Inverse() error: %v", err)
	}

	p := Vec2{X: 5, Y: 9}
	back := inv.Transform(m.Transform(p))
	if !approxVec(back, p, 1e-9) {
		t.Errorf("inverse round-trip = %v, want %v", back, p)
	}
}

func TestMatrix3InverseSingular(t *testing.T) {
	if _, err := Scaling(0, 0).Inverse(); err == nil {
		t.Error("Inverse() of singular matrix: expected error, got nil")
	}
}

func TestMatrix3TransformAll(t *testing.T) {
	pts := []Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}}
	out := Translation(5, 5).TransformAll(pts)
	if out[0] != (Vec2{X: 5, Y: 5}) || out[1] != (Vec2{X: 6, Y: 5}) {
		t.Errorf("TransformAll() = %v", out)
	}
	// Input must be untouched.
	if pts[0] != (Vec2{}) {
		t.Errorf("TransformAll() mutated input: %v", pts[0])
	}
}
