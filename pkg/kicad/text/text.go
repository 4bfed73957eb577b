// Package text is the seam between painters and whatever shapes text
// into strokes. Painters never rasterize glyphs themselves; they hand a
// span to a Shaper and draw the polylines it returns.
package text

import (
	"image/color"

	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/geom"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/graphics"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/logging"
)

// Span is one run of text to shape.
type Span struct {
	Text  string
	At    geom.Vec2
	Size  float64
	Angle geom.Angle
	Color color.NRGBA
}

// Shaper converts a span into stroke polylines in document coordinates.
type Shaper interface {
	Shape(span Span) []graphics.Polyline
}

// Paint shapes the span and draws it. A nil shaper skips the span; the
// rest of the item still paints.
func Paint(r graphics.Renderer, sh Shaper, span Span) {
	if sh == nil {
		logging.Logger().Debug("no text shaper, skipping span", "text", span.Text)
		return
	}
	for _, pl := range sh.Shape(span) {
		r.Line(pl)
	}
}
