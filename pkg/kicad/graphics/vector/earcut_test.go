package vector

import (
	"testing"

	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/geom"
)

func TestTriangulateCounts(t *testing.T) {
	tests := []struct {
		name   string
		points []geom.Vec2
		want   int
	}{
		{"empty", nil, 0},
		{"segment", []geom.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}}, 0},
		{"triangle", []geom.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, 1},
		{"quad", []geom.Vec2{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}, 2},
		{"pentagon", []geom.Vec2{
			{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 5, Y: 3}, {X: 2, Y: 5}, {X: -1, Y: 3},
		}, 3},
		{"concave L", []geom.Vec2{
			{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 4}, {X: 0, Y: 4},
		}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tris := Triangulate(tt.points)
			if len(tris) != tt.want {
				t.Fatalf("got %d triangles, want %d", len(tris), tt.want)
			}
		})
	}
}

func TestTriangulateClockwiseInput(t *testing.T) {
	// Winding must not matter to the caller.
	cw := []geom.Vec2{{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 0}}
	tris := Triangulate(cw)
	if len(tris) != 2 {
		t.Fatalf("got %d triangles, want 2", len(tris))
	}

	var area float64
	for _, tri := range tris {
		a := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0])) / 2
		if a < 0 {
			a = -a
		}
		area += a
	}
	if area < 4-1e-9 || area > 4+1e-9 {
		t.Fatalf("triangle area sum = %v, want 4", area)
	}
}
