package graphics

import (
	"image/color"

	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/geom"
)

// Base carries the bookkeeping every renderer backend shares: the state
// stack, the active layer scope, and the bounding-box scope. Backends
// embed Base and call the Prepare helpers from their draw methods, so
// coordinate transformation, default colors, and bbox growth behave
// identically across backends.
type Base struct {
	states    *StateStack
	layerName string
	layerOpen bool
	bboxOpen  bool
	bbox      geom.BBox
}

// NewBase returns backend bookkeeping with a fresh state stack.
func NewBase() Base {
	return Base{states: NewStateStack()}
}

// State returns the render state stack.
func (b *Base) State() *StateStack {
	return b.states
}

// OpenLayer begins a layer scope. Nesting layers panics.
func (b *Base) OpenLayer(name string) {
	if b.layerOpen {
		panic(ErrLayerAlreadyActive)
	}
	b.layerName = name
	b.layerOpen = true
}

// CloseLayer ends the layer scope and returns its name. Panics when no
// layer is open.
func (b *Base) CloseLayer() string {
	if !b.layerOpen {
		panic(ErrNoActiveLayer)
	}
	b.layerOpen = false
	return b.layerName
}

// LayerName returns the name of the active layer.
func (b *Base) LayerName() string {
	return b.layerName
}

// CheckLayer panics unless a layer scope is open. Backends call this at
// the top of every draw method.
func (b *Base) CheckLayer() {
	if !b.layerOpen {
		panic(ErrNoActiveLayer)
	}
}

// StartBBox opens a bounding-box accumulation scope.
func (b *Base) StartBBox() {
	b.bboxOpen = true
	b.bbox = geom.BBox{}
}

// AddBBox grows the open scope. No-op when no scope is open.
func (b *Base) AddBBox(bb geom.BBox) {
	if !b.bboxOpen {
		return
	}
	b.bbox = geom.Combine(b.bbox, bb)
}

// EndBBox closes the scope and returns the accumulated box with the
// given context attached. Panics when no scope is open.
func (b *Base) EndBBox(context any) geom.BBox {
	if !b.bboxOpen {
		panic(ErrNoActiveBBox)
	}
	b.bboxOpen = false
	out := b.bbox
	out.Context = context
	return out
}

// PrepareCircle transforms the circle by the current matrix, resolves
// its default color, and grows the bbox scope.
func (b *Base) PrepareCircle(c Circle) Circle {
	state := b.states.Top()
	c.Center = state.Matrix.Transform(c.Center)
	if isZeroColor(c.Color) {
		c.Color = state.Fill
	}
	b.AddBBox(c.BBox())
	return c
}

// PrepareLine transforms the polyline, resolves its default color and
// width, and grows the bbox scope.
func (b *Base) PrepareLine(l Polyline) Polyline {
	state := b.states.Top()
	l.Points = state.Matrix.TransformAll(l.Points)
	if isZeroColor(l.Color) {
		l.Color = state.Stroke
	}
	if l.Width == 0 {
		l.Width = state.StrokeWidth
	}
	b.AddBBox(l.BBox())
	return l
}

// PrepareArc converts the arc to a polyline and prepares it like a line.
func (b *Base) PrepareArc(a Arc) Polyline {
	return b.PrepareLine(a.ToPolyline())
}

// PreparePolygon transforms the polygon, resolves its default color, and
// grows the bbox scope.
func (b *Base) PreparePolygon(p Polygon) Polygon {
	state := b.states.Top()
	p.Points = state.Matrix.TransformAll(p.Points)
	if isZeroColor(p.Color) {
		p.Color = state.Fill
	}
	b.AddBBox(p.BBox())
	return p
}

func isZeroColor(c color.NRGBA) bool {
	return c == color.NRGBA{}
}
