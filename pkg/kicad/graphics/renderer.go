// Package graphics defines the retained-mode rendering contract shared
// by the backend implementations: drawables, the render state stack, and
// the per-layer command buffer model. Painters issue draw calls between
// StartLayer/EndLayer; the backend compiles each layer into an opaque
// RenderLayer that can be redrawn under any transform without repainting.
package graphics

import (
	"errors"

	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/geom"
)

// Renderer misuse is a programming error in painter code, not a
// recoverable input condition. The offending calls panic with these
// sentinel values so painter bugs surface immediately instead of
// producing silently wrong graphics.
var (
	// ErrNoActiveLayer reports a draw call or EndLayer outside an
	// active layer scope.
	ErrNoActiveLayer = errors.New("graphics: no active layer")

	// ErrLayerAlreadyActive reports StartLayer while a layer is open.
	ErrLayerAlreadyActive = errors.New("graphics: layer already active")

	// ErrNoActiveBBox reports EndBBox without a matching StartBBox.
	ErrNoActiveBBox = errors.New("graphics: no active bbox scope")

	// ErrStateStackUnderflow reports a Pop on the bottom state frame.
	ErrStateStackUnderflow = errors.New("graphics: render state stack underflow")
)

// Renderer is the drawing contract painters target. All draw calls must
// happen between StartLayer and EndLayer; coordinates are transformed by
// the current state matrix before being buffered, and drawables carrying
// a zero color inherit the state's fill or stroke color.
type Renderer interface {
	// StartLayer begins command accumulation for one named depth slot.
	StartLayer(name string)

	// EndLayer commits the accumulated commands and returns the
	// compiled layer. Backend-specific finalization (tesselation,
	// buffer upload) happens here.
	EndLayer() RenderLayer

	// Circle draws a filled circle.
	Circle(circle Circle)

	// Arc draws a stroked arc.
	Arc(arc Arc)

	// Line draws a stroked polyline with round caps.
	Line(line Polyline)

	// Polygon draws a filled polygon.
	Polygon(poly Polygon)

	// StartBBox opens a bounding-box accumulation scope. Every draw
	// call until EndBBox grows the scope's box.
	StartBBox()

	// AddBBox grows the open scope by an explicit box. It is a no-op
	// when no scope is open.
	AddBBox(bb geom.BBox)

	// EndBBox closes the scope and returns the accumulated box with
	// the given context attached.
	EndBBox(context any) geom.BBox

	// State returns the render state stack.
	State() *StateStack

	// Dispose releases all resources held by the renderer and its
	// layers. The renderer must not be used afterwards.
	Dispose()
}

// RenderLayer is a compiled, backend-specific drawing list for one named
// layer. A committed layer is immutable: Render only re-issues the
// transform and replays the stored commands.
type RenderLayer interface {
	// Render replays the layer under the given transform.
	Render(transform geom.Matrix3)

	// Clear discards the layer's contents, keeping it reusable.
	Clear()

	// Dispose releases the layer's resources.
	Dispose()
}
