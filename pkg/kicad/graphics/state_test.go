package graphics

import (
	"image/color"
	"testing"

	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/geom"
)

func TestStateStackBalance(t *testing.T) {
	s := NewStateStack()
	s.Top().Fill = color.NRGBA{R: 255, A: 255}
	s.Top().StrokeWidth = 0.25
	before := *s.Top()

	s.Push()
	s.Top().Fill = color.NRGBA{G: 255, A: 255}
	s.Multiply(geom.Translation(5, 5))
	s.Push()
	s.Top().StrokeWidth = 99
	s.Pop()
	s.Pop()

	if *s.Top() != before {
		t.Errorf("state after balanced push/pop = %+v, want %+v", *s.Top(), before)
	}
	if s.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", s.Depth())
	}
}

func TestStateStackPushIsolatesFrames(t *testing.T) {
	s := NewStateStack()
	s.Push()
	s.Multiply(geom.Translation(10, 0))
	s.Top().Stroke = color.NRGBA{B: 255, A: 255}
	s.Pop()

	if !s.Top().Matrix.IsIdentity() {
		t.Error("mutating the pushed frame leaked into its parent matrix")
	}
	if s.Top().Stroke != (color.NRGBA{}) {
		t.Error("mutating the pushed frame leaked into its parent stroke")
	}
}

func TestStateStackUnderflowPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != ErrStateStackUnderflow {
			t.Errorf("recover() = %v, want ErrStateStackUnderflow", r)
		}
	}()
	NewStateStack().Pop()
}

func TestBaseLayerScopes(t *testing.T) {
	b := NewBase()

	b.OpenLayer("F.Cu")
	if got := b.LayerName(); got != "F.Cu" {
		t.Errorf("LayerName() = %q", got)
	}
	if got := b.CloseLayer(); got != "F.Cu" {
		t.Errorf("CloseLayer() = %q", got)
	}
}

func TestBaseCloseLayerWithoutOpenPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != ErrNoActiveLayer {
			t.Errorf("recover() = %v, want ErrNoActiveLayer", r)
		}
	}()
	b := NewBase()
	b.CloseLayer()
}

func TestBaseNestedLayerPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != ErrLayerAlreadyActive {
			t.Errorf("recover() = %v, want ErrLayerAlreadyActive", r)
		}
	}()
	b := NewBase()
	b.OpenLayer("a")
	b.OpenLayer("b")
}

func TestBaseEndBBoxWithoutStartPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != ErrNoActiveBBox {
			t.Errorf("recover() = %v, want ErrNoActiveBBox", r)
		}
	}()
	b := NewBase()
	b.EndBBox(nil)
}

func TestBaseLineBBoxAccumulation(t *testing.T) {
	// Drawing a 10mm line of width 2 inside a bbox scope yields a box
	// padded by the half-width.
	b := NewBase()
	b.StartBBox()
	b.PrepareLine(Polyline{
		Points: []geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}},
		Width:  2,
		Color:  color.NRGBA{R: 255, A: 255},
	})
	bb := b.EndBBox("track-1")

	if bb.X != -1 || bb.X2() != 11 {
		t.Errorf("bbox x span = [%v, %v], want [-1, 11]", bb.X, bb.X2())
	}
	if bb.Y > -1 || bb.Y2() < 1 {
		t.Errorf("bbox y span = [%v, %v], want to cover [-1, 1]", bb.Y, bb.Y2())
	}
	if bb.Context != "track-1" {
		t.Errorf("bbox context = %v, want track-1", bb.Context)
	}
}

func TestBasePrepareAppliesTransformAndColors(t *testing.T) {
	b := NewBase()
	b.State().Top().Fill = color.NRGBA{R: 1, G: 2, B: 3, A: 255}
	b.State().Multiply(geom.Translation(100, 0))

	c := b.PrepareCircle(Circle{Center: geom.Vec2{X: 1, Y: 1}, Radius: 2})
	if c.Center != (geom.Vec2{X: 101, Y: 1}) {
		t.Errorf("transformed center = %v", c.Center)
	}
	if c.Color != (color.NRGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("default color not resolved: %v", c.Color)
	}
}

func TestBaseAddBBoxOutsideScopeIsNoop(t *testing.T) {
	b := NewBase()
	b.AddBBox(geom.NewBBox(0, 0, 5, 5))
	b.StartBBox()
	bb := b.EndBBox(nil)
	if bb.Valid() {
		t.Errorf("bbox = %+v, want empty scope", bb)
	}
}
