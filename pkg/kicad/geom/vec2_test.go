package geom

import (
	"math"
	"testing"
)

func TestVec2Basics(t *testing.T) {
	a := Vec2{X: 3, Y: 4}
	b := Vec2{X: 1, Y: -2}

	if got := a.Add(b); got != (Vec2{X: 4, Y: 2}) {
		t.Errorf("Add() = %v", got)
	}
	if got := a.Sub(b); got != (Vec2{X: 2, Y: 6}) {
		t.Errorf("Sub() = %v", got)
	}
	if got := a.Mul(2); got != (Vec2{X: 6, Y: 8}) {
		t.Errorf("Mul() = %v", got)
	}
	if got := a.Magnitude(); got != 5 {
		t.Errorf("Magnitude() = %v, want 5", got)
	}
	if got := a.Cross(b); got != -10 {
		t.Errorf("Cross() = %v, want -10", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{X: 10, Y: 0}.Normalize()
	if v != (Vec2{X: 1, Y: 0}) {
		t.Errorf("Normalize() = %v, want (1,0)", v)
	}

	// Zero vector must not produce NaN
	z := Vec2{}.Normalize()
	if z != (Vec2{}) {
		t.Errorf("Normalize(zero) = %v, want zero", z)
	}
}

func TestVec2Rotate(t *testing.T) {
	v := Vec2{X: 1, Y: 0}.Rotate(Degrees(90))
	if math.Abs(v.X) > 1e-9 || math.Abs(v.Y-1) > 1e-9 {
		t.Errorf("Rotate(90°) = %v, want (0,1)", v)
	}
}

func TestSegmentIntersect(t *testing.T) {
	tests := []struct {
		name           string
		a1, a2, b1, b2 Vec2
		want           Vec2
		wantOK         bool
	}{
		{
			name: "crossing segments",
			a1:   Vec2{X: 0, Y: 0}, a2: Vec2{X: 10, Y: 10},
			b1: Vec2{X: 0, Y: 10}, b2: Vec2{X: 10, Y: 0},
			want: Vec2{X: 5, Y: 5}, wantOK: true,
		},
		{
			name: "parallel segments",
			a1:   Vec2{X: 0, Y: 0}, a2: Vec2{X: 10, Y: 0},
			b1: Vec2{X: 0, Y: 1}, b2: Vec2{X: 10, Y: 1},
			wantOK: false,
		},
		{
			name: "lines cross outside extents",
			a1:   Vec2{X: 0, Y: 0}, a2: Vec2{X: 1, Y: 1},
			b1: Vec2{X: 10, Y: 0}, b2: Vec2{X: 0, Y: 10},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SegmentIntersect(tt.a1, tt.a2, tt.b1, tt.b2)
			if ok != tt.wantOK {
				t.Fatalf("SegmentIntersect() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("SegmentIntersect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAngleNormalize(t *testing.T) {
	tests := []struct {
		deg  float64
		want float64
	}{
		{0, 0},
		{360, 0},
		{-90, 270},
		{450, 90},
		{720.5, 0.5},
	}

	for _, tt := range tests {
		if got := Degrees(tt.deg).Normalize().Degrees(); got != tt.want {
			t.Errorf("Normalize(%v°) = %v, want %v", tt.deg, got, tt.want)
		}
	}
}

func TestAngleEqualRounding(t *testing.T) {
	// Repeated radian round-trips must not break degree equality.
	a := Degrees(90)
	b := Radians(Degrees(90).Radians())
	if !a.Equal(b) {
		t.Errorf("angles differ after radian round-trip: %v vs %v", a.Degrees(), b.Degrees())
	}
}
