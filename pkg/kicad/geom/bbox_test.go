package geom

import "testing"

func TestNewBBoxNormalizesNegativeExtent(t *testing.T) {
	b := NewBBox(10, 10, -4, -6)
	if b.X != 6 || b.Y != 4 || b.W != 4 || b.H != 6 {
		t.Errorf("NewBBox() = %+v, want origin flipped to (6,4) 4x6", b)
	}
}

func TestBBoxCombine(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)
	b := NewBBox(5, 5, 10, 10)

	ab := Combine(a, b)
	ba := Combine(b, a)
	if ab != ba {
		t.Errorf("Combine not commutative: %+v vs %+v", ab, ba)
	}
	if ab.X != 0 || ab.Y != 0 || ab.W != 15 || ab.H != 15 {
		t.Errorf("Combine() = %+v, want (0,0) 15x15", ab)
	}

	// Single-box combine is the identity.
	if got := Combine(a); got != a {
		t.Errorf("Combine(a) = %+v, want %+v", got, a)
	}

	// Invalid boxes must not contribute.
	if got := Combine(a, BBox{}); got != a {
		t.Errorf("Combine with invalid box = %+v, want %+v", got, a)
	}
	if got := Combine(BBox{}, BBox{}); got.Valid() {
		t.Errorf("Combine of invalid boxes = %+v, want invalid", got)
	}
}

func TestBBoxContainsPoint(t *testing.T) {
	b := NewBBox(0, 0, 10, 10)

	tests := []struct {
		name string
		p    Vec2
		want bool
	}{
		{"strictly inside", Vec2{X: 5, Y: 5}, true},
		{"outside", Vec2{X: 11, Y: 5}, false},
		{"corner is inclusive", Vec2{X: 0, Y: 0}, true},
		{"far corner is inclusive", Vec2{X: 10, Y: 10}, true},
		{"edge is inclusive", Vec2{X: 10, Y: 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.ContainsPoint(tt.p); got != tt.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestBBoxGrow(t *testing.T) {
	b := NewBBox(0, 0, 10, 10).Grow(2)
	if b.X != -2 || b.Y != -2 || b.W != 14 || b.H != 14 {
		t.Errorf("Grow() = %+v", b)
	}
}

func TestBBoxTransform(t *testing.T) {
	b := NewBBox(0, 0, 10, 10)
	got := b.Transform(Translation(5, 5))
	if got.X != 5 || got.Y != 5 || got.W != 10 || got.H != 10 {
		t.Errorf("Transform(translate) = %+v", got)
	}

	// Rotation by 90° keeps the extent of a square.
	rot := b.Transform(Rotation(Degrees(90)))
	if rot.W != 10 || rot.H != 10 {
		t.Errorf("Transform(rotate) = %+v, want 10x10", rot)
	}
}

func TestBBoxFromPoints(t *testing.T) {
	b := BBoxFromPoints([]Vec2{{X: 1, Y: 2}, {X: -3, Y: 8}, {X: 4, Y: 0}})
	if b.X != -3 || b.Y != 0 || b.W != 7 || b.H != 8 {
		t.Errorf("BBoxFromPoints() = %+v", b)
	}

	if BBoxFromPoints(nil).Valid() {
		t.Error("BBoxFromPoints(nil) should be invalid")
	}
}

func TestBBoxIntersectSegment(t *testing.T) {
	b := NewBBox(0, 0, 10, 10)

	p, ok := b.IntersectSegment(Vec2{X: -5, Y: 5}, Vec2{X: 5, Y: 5})
	if !ok {
		t.Fatal("IntersectSegment() found no intersection")
	}
	if p != (Vec2{X: 0, Y: 5}) {
		t.Errorf("IntersectSegment() = %v, want (0,5)", p)
	}

	if _, ok := b.IntersectSegment(Vec2{X: 20, Y: 20}, Vec2{X: 30, Y: 30}); ok {
		t.Error("IntersectSegment() reported intersection for distant segment")
	}
}
