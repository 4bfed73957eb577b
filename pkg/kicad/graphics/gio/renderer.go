// Package gio implements the graphics.Renderer contract on top of Gio
// operation lists. Each committed layer holds its own recorded op macro;
// rendering a frame replays the macros into the frame's op list under
// the current view transform, so pan and zoom never re-record geometry.
package gio

import (
	"errors"
	"image/color"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/geom"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/graphics"
)

// ErrNoActiveFrame reports a layer render outside BeginFrame/EndFrame.
var ErrNoActiveFrame = errors.New("gio: render outside an active frame")

// Renderer records drawables into per-layer Gio macros.
type Renderer struct {
	graphics.Base

	frame     *op.Ops
	layerOps  *op.Ops
	recording op.MacroOp
}

var _ graphics.Renderer = (*Renderer)(nil)

// NewRenderer creates an op-list renderer.
func NewRenderer() *Renderer {
	return &Renderer{Base: graphics.NewBase()}
}

// BeginFrame directs subsequent layer renders into the given frame ops.
func (r *Renderer) BeginFrame(ops *op.Ops) {
	r.frame = ops
}

// EndFrame detaches the renderer from the current frame ops.
func (r *Renderer) EndFrame() {
	r.frame = nil
}

// StartLayer begins recording drawables for one named layer.
func (r *Renderer) StartLayer(name string) {
	r.OpenLayer(name)
	r.layerOps = new(op.Ops)
	r.recording = op.Record(r.layerOps)
}

// EndLayer stops recording and returns the committed layer.
func (r *Renderer) EndLayer() graphics.RenderLayer {
	name := r.CloseLayer()

	layer := &Layer{
		name:     name,
		renderer: r,
		ops:      r.layerOps,
		call:     r.recording.Stop(),
		valid:    true,
	}
	r.layerOps = nil
	return layer
}

// Circle draws a filled circle.
func (r *Renderer) Circle(c graphics.Circle) {
	r.CheckLayer()
	c = r.PrepareCircle(c)

	var path clip.Path
	path.Begin(r.layerOps)
	arcPath(&path, c.Center, c.Radius)
	path.Close()
	paint.FillShape(r.layerOps, c.Color, clip.Outline{Path: path.End()}.Op())
}

// Arc draws a stroked arc.
func (r *Renderer) Arc(a graphics.Arc) {
	r.CheckLayer()
	l := r.PrepareArc(a)
	r.strokePolyline(l.Points, l.Width, l.Color)
}

// Line draws a stroked polyline.
func (r *Renderer) Line(l graphics.Polyline) {
	r.CheckLayer()
	l = r.PrepareLine(l)
	r.strokePolyline(l.Points, l.Width, l.Color)
}

// Polygon draws a filled polygon.
func (r *Renderer) Polygon(p graphics.Polygon) {
	r.CheckLayer()
	p = r.PreparePolygon(p)
	if len(p.Points) < 3 {
		return
	}

	var path clip.Path
	path.Begin(r.layerOps)
	path.MoveTo(pt(p.Points[0]))
	for _, v := range p.Points[1:] {
		path.LineTo(pt(v))
	}
	path.Close()
	paint.FillShape(r.layerOps, p.Color, clip.Outline{Path: path.End()}.Op())
}

// Dispose releases the renderer. Committed layers stay usable until
// their own Dispose.
func (r *Renderer) Dispose() {
	r.frame = nil
	r.layerOps = nil
}

func (r *Renderer) strokePolyline(points []geom.Vec2, width float64, c color.NRGBA) {
	if len(points) < 2 || width <= 0 {
		return
	}

	var path clip.Path
	path.Begin(r.layerOps)
	path.MoveTo(pt(points[0]))
	for _, v := range points[1:] {
		path.LineTo(pt(v))
	}

	stroke := clip.Stroke{
		Path:  path.End(),
		Width: float32(width),
	}.Op()
	paint.FillShape(r.layerOps, c, stroke)
}

// arcPath appends a full-circle outline approximated by the shared arc
// step so op-list circles match the tesselated backend's sampling.
func arcPath(path *clip.Path, center geom.Vec2, radius float64) {
	g := geom.Arc{
		Center:     center,
		Radius:     radius,
		StartAngle: geom.Degrees(0),
		EndAngle:   geom.Degrees(360),
	}
	samples := g.ToPolyline()
	path.MoveTo(pt(samples[0]))
	for _, v := range samples[1:] {
		path.LineTo(pt(v))
	}
}

func pt(v geom.Vec2) f32.Point {
	return f32.Pt(float32(v.X), float32(v.Y))
}

// Layer is a committed, replayable op macro for one named layer.
type Layer struct {
	name     string
	renderer *Renderer
	ops      *op.Ops
	call     op.CallOp
	valid    bool
}

var _ graphics.RenderLayer = (*Layer)(nil)

// Name returns the layer's depth-slot name.
func (l *Layer) Name() string {
	return l.name
}

// Render replays the layer's macro into the active frame under the
// given transform. Panics if called outside BeginFrame/EndFrame.
func (l *Layer) Render(transform geom.Matrix3) {
	if !l.valid {
		return
	}
	if l.renderer == nil || l.renderer.frame == nil {
		panic(ErrNoActiveFrame)
	}

	ops := l.renderer.frame
	stack := op.Affine(affine(transform)).Push(ops)
	l.call.Add(ops)
	stack.Pop()
}

// Clear discards the recorded macro, keeping the layer reusable as an
// empty slot.
func (l *Layer) Clear() {
	l.ops = nil
	l.call = op.CallOp{}
	l.valid = false
}

// Dispose releases the layer.
func (l *Layer) Dispose() {
	l.Clear()
	l.renderer = nil
}

func affine(m geom.Matrix3) f32.Affine2D {
	return f32.NewAffine2D(
		float32(m[0]), float32(m[1]), float32(m[2]),
		float32(m[3]), float32(m[4]), float32(m[5]),
	)
}
