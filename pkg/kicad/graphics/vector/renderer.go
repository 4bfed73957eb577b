// Package vector implements the tesselating renderer backend. Drawables
// are converted to flat vertex buffers when the layer is committed:
// strokes become pill-shaped quads with a cap-region channel, polygons
// are ear-clipped into triangles. Committed layers are immutable; a
// redraw only re-issues the transform against the stored buffers through
// the Device supplied by the hosting shell.
package vector

import (
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/geom"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/graphics"
)

// Device is the drawing surface the compiled buffers are submitted to.
// The hosting shell owns the GPU or raster context and provides one of
// these; the backend never touches the context directly.
type Device interface {
	// DrawStroke submits cap-masked quad vertices: two position floats,
	// four color floats, and one cap-region float per vertex.
	DrawStroke(transform geom.Matrix3, positions, colors, caps []float32)

	// DrawTriangles submits plain filled triangles: two position floats
	// and four color floats per vertex.
	DrawTriangles(transform geom.Matrix3, positions, colors []float32)
}

// Renderer is the tesselating implementation of graphics.Renderer.
type Renderer struct {
	graphics.Base

	device Device
	layers []*Layer

	pendingStroke strokeBuffer
	pendingFill   fillBuffer
}

var _ graphics.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer that submits compiled layers to the
// given device.
func NewRenderer(device Device) *Renderer {
	return &Renderer{
		Base:   graphics.NewBase(),
		device: device,
	}
}

// StartLayer begins buffering drawables for one named layer.
func (r *Renderer) StartLayer(name string) {
	r.OpenLayer(name)
	r.pendingStroke.reset()
	r.pendingFill.reset()
}

// EndLayer tesselates the buffered drawables and returns the committed,
// immutable layer.
func (r *Renderer) EndLayer() graphics.RenderLayer {
	name := r.CloseLayer()

	layer := &Layer{
		name:   name,
		device: r.device,
	}
	layer.strokePositions = copyFloats(r.pendingStroke.positions)
	layer.strokeColors = copyFloats(r.pendingStroke.colors)
	layer.strokeCaps = copyFloats(r.pendingStroke.caps)
	layer.fillPositions = copyFloats(r.pendingFill.positions)
	layer.fillColors = copyFloats(r.pendingFill.colors)

	r.pendingStroke.reset()
	r.pendingFill.reset()
	r.layers = append(r.layers, layer)
	return layer
}

// Circle draws a filled circle.
func (r *Renderer) Circle(c graphics.Circle) {
	r.CheckLayer()
	c = r.PrepareCircle(c)
	r.pendingStroke.addCircle(c.Center, c.Radius, c.Color)
}

// Arc draws a stroked arc.
func (r *Renderer) Arc(a graphics.Arc) {
	r.CheckLayer()
	l := r.PrepareArc(a)
	r.pendingStroke.addPolyline(l.Points, l.Width, l.Color)
}

// Line draws a stroked polyline.
func (r *Renderer) Line(l graphics.Polyline) {
	r.CheckLayer()
	l = r.PrepareLine(l)
	r.pendingStroke.addPolyline(l.Points, l.Width, l.Color)
}

// Polygon draws a filled polygon.
func (r *Renderer) Polygon(p graphics.Polygon) {
	r.CheckLayer()
	p = r.PreparePolygon(p)
	r.pendingFill.addPolygon(p.Points, p.Color)
}

// Dispose releases all layers created by this renderer.
func (r *Renderer) Dispose() {
	for _, l := range r.layers {
		l.Dispose()
	}
	r.layers = nil
}

// Layer is a committed set of vertex buffers for one named layer.
type Layer struct {
	name   string
	device Device

	strokePositions []float32
	strokeColors    []float32
	strokeCaps      []float32
	fillPositions   []float32
	fillColors      []float32
}

var _ graphics.RenderLayer = (*Layer)(nil)

// Name returns the layer's depth-slot name.
func (l *Layer) Name() string {
	return l.name
}

// Render submits the stored buffers under the given transform. No
// tesselation happens here.
func (l *Layer) Render(transform geom.Matrix3) {
	if len(l.fillPositions) > 0 {
		l.device.DrawTriangles(transform, l.fillPositions, l.fillColors)
	}
	if len(l.strokePositions) > 0 {
		l.device.DrawStroke(transform, l.strokePositions, l.strokeColors, l.strokeCaps)
	}
}

// StrokeVertexCount returns the number of stroke vertices in the layer.
func (l *Layer) StrokeVertexCount() int {
	return len(l.strokePositions) / 2
}

// FillVertexCount returns the number of fill vertices in the layer.
func (l *Layer) FillVertexCount() int {
	return len(l.fillPositions) / 2
}

// Clear discards the layer's buffers, keeping the layer reusable.
func (l *Layer) Clear() {
	l.strokePositions = nil
	l.strokeColors = nil
	l.strokeCaps = nil
	l.fillPositions = nil
	l.fillColors = nil
}

// Dispose releases the layer.
func (l *Layer) Dispose() {
	l.Clear()
	l.device = nil
}

func copyFloats(src []float32) []float32 {
	if len(src) == 0 {
		return nil
	}
	out := make([]float32, len(src))
	copy(out, src)
	return out
}
