package view

import (
	"image/color"
	"testing"

	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/geom"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/paint"
)

type stubItem string

func (s stubItem) ItemKind() paint.Kind { return "stub" }

type stubGraphics struct{ disposed bool }

func (g *stubGraphics) Render(geom.Matrix3) {}
func (g *stubGraphics) Clear()              {}
func (g *stubGraphics) Dispose()            { g.disposed = true }

func newTestSet() *LayerSet {
	return NewLayerSet(
		NewViewLayer("F.SilkS", false, color.NRGBA{A: 255}),
		NewViewLayer("F.Cu", true, color.NRGBA{R: 255, A: 255}),
		NewViewLayer("B.Cu", true, color.NRGBA{B: 255, A: 255}),
	)
}

func TestDisplayOrderIsReversed(t *testing.T) {
	s := newTestSet()

	var names []string
	for l := range s.InDisplayOrder() {
		names = append(names, l.Name())
	}
	want := []string{"B.Cu", "F.Cu", "F.SilkS"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("display order %v, want %v", names, want)
		}
	}

	names = names[:0]
	for l := range s.InOrder() {
		names = append(names, l.Name())
	}
	if names[0] != "F.SilkS" || names[2] != "B.Cu" {
		t.Fatalf("front-to-back order %v", names)
	}
}

func TestIteratorsAreRestartable(t *testing.T) {
	s := newTestSet()

	for range s.InOrder() {
		break
	}
	count := 0
	for range s.InOrder() {
		count++
	}
	if count != 3 {
		t.Fatalf("second iteration saw %d layers, want 3", count)
	}
}

func TestByNameMissingIsNil(t *testing.T) {
	s := newTestSet()
	if s.ByName("In1.Cu") != nil {
		t.Fatal("missing layer must resolve to nil")
	}
	if s.Get("F.Cu") == nil {
		t.Fatal("known layer must resolve")
	}
}

func TestVisiblePredicate(t *testing.T) {
	s := newTestSet()
	copperOn := true
	s.Get("F.Cu").Visible = func() bool { return copperOn }

	count := 0
	for range s.Visible() {
		count++
	}
	if count != 3 {
		t.Fatalf("visible count %d, want 3", count)
	}

	copperOn = false
	count = 0
	for range s.Visible() {
		count++
	}
	if count != 2 {
		t.Fatalf("visible count %d, want 2", count)
	}
}

func TestVisibilityCanDependOnAnotherLayer(t *testing.T) {
	s := newTestSet()
	copper := s.Get("F.Cu")

	copperOn := false
	copper.Visible = func() bool { return copperOn }

	// A mask slot that shows only while its copper layer does.
	mask := NewViewLayer("F.Mask", false, color.NRGBA{A: 102})
	mask.Visible = copper.IsVisible
	s.Add(mask)

	if mask.IsVisible() {
		t.Fatal("mask visible while copper is hidden")
	}
	copperOn = true
	if !mask.IsVisible() {
		t.Fatal("mask did not follow copper becoming visible")
	}
}

func TestClearDisposesGraphics(t *testing.T) {
	s := newTestSet()
	l := s.Get("F.Cu")

	g := &stubGraphics{}
	l.SetGraphics(g)
	l.AddItem(stubItem("t1"))
	l.RecordBBox(stubItem("t1"), geom.NewBBox(0, 0, 1, 1))

	s.Clear()
	if !g.disposed {
		t.Fatal("clear must dispose committed graphics")
	}
	if len(l.Items()) != 0 {
		t.Fatal("clear must drop items")
	}
	if _, ok := l.BBoxOf(stubItem("t1")); ok {
		t.Fatal("clear must drop bboxes")
	}
}

func TestSetGraphicsDisposesPrevious(t *testing.T) {
	l := NewViewLayer("F.Cu", true, color.NRGBA{})
	first := &stubGraphics{}
	l.SetGraphics(first)
	l.SetGraphics(&stubGraphics{})
	if !first.disposed {
		t.Fatal("replacing a commit must dispose the old one")
	}
}

func TestQueryInsertionOrderWithinLayer(t *testing.T) {
	l := NewViewLayer("F.Cu", true, color.NRGBA{})
	s := NewLayerSet(l)

	a, b := stubItem("a"), stubItem("b")
	l.AddItem(a)
	l.AddItem(b)
	l.RecordBBox(a, geom.NewBBox(0, 0, 10, 10))
	l.RecordBBox(b, geom.NewBBox(0, 0, 10, 10))

	hit, ok := s.QueryPoint(geom.Vec2{X: 5, Y: 5})
	if !ok || hit.Item != paint.Item(a) {
		t.Fatalf("hit %v, want first-painted item", hit.Item)
	}
}

func TestNonInteractiveLayerIgnored(t *testing.T) {
	s := newTestSet()
	silk := s.Get("F.SilkS")
	silk.AddItem(stubItem("txt"))
	silk.RecordBBox(stubItem("txt"), geom.NewBBox(0, 0, 10, 10))

	if _, ok := s.QueryPoint(geom.Vec2{X: 5, Y: 5}); ok {
		t.Fatal("non-interactive layer answered a query")
	}
}
