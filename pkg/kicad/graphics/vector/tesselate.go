package vector

import (
	"image/color"

	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/geom"
)

// strokeBuffer accumulates pill-shaped quads for stroked geometry.
// Circles and line segments share the buffer (and the shader): a circle
// is a zero-length segment whose round caps meet in the middle. Each
// vertex carries a cap-region scalar, the fraction of the quad occupied
// by its rounded end caps, which the fragment shader uses to mask the
// corners.
type strokeBuffer struct {
	positions []float32 // x, y per vertex
	colors    []float32 // r, g, b, a per vertex
	caps      []float32 // cap-region scalar per vertex
}

// addSegment appends one tesselated segment quad. Zero-length segments
// are skipped: they would normalize a zero vector into NaN corners, and
// a single NaN vertex corrupts the whole draw call.
func (b *strokeBuffer) addSegment(p1, p2 geom.Vec2, width float64, c color.NRGBA) {
	line := p2.Sub(p1)
	length := line.Magnitude()
	if length == 0 || width <= 0 {
		return
	}

	dir := line.Div(length)
	norm := dir.Perp().Mul(width / 2.0)
	ext := dir.Mul(width / 2.0)

	// Quad corners, extended by the half-width along the segment so the
	// round caps have room.
	a := p1.Add(norm).Sub(ext)
	bb := p1.Sub(norm).Sub(ext)
	cc := p2.Add(norm).Add(ext)
	d := p2.Sub(norm).Add(ext)

	capRegion := float32(width / (length + width))
	b.addQuad(a, bb, cc, d, capRegion, c)
}

// addCircle appends a filled circle as a fully cap-masked quad.
func (b *strokeBuffer) addCircle(center geom.Vec2, radius float64, c color.NRGBA) {
	if radius <= 0 {
		return
	}
	a := geom.Vec2{X: center.X - radius, Y: center.Y - radius}
	bb := geom.Vec2{X: center.X - radius, Y: center.Y + radius}
	cc := geom.Vec2{X: center.X + radius, Y: center.Y - radius}
	d := geom.Vec2{X: center.X + radius, Y: center.Y + radius}
	b.addQuad(a, bb, cc, d, 1.0, c)
}

// addPolyline appends one quad per segment. Segments are tesselated
// independently; the half-width cap extension makes adjacent segments
// meet in a round joint.
func (b *strokeBuffer) addPolyline(points []geom.Vec2, width float64, c color.NRGBA) {
	for i := 1; i < len(points); i++ {
		b.addSegment(points[i-1], points[i], width, c)
	}
}

func (b *strokeBuffer) addQuad(a, bb, cc, d geom.Vec2, capRegion float32, c color.NRGBA) {
	for _, v := range [6]geom.Vec2{a, bb, cc, bb, cc, d} {
		b.positions = append(b.positions, float32(v.X), float32(v.Y))
		b.colors = appendColor(b.colors, c)
		b.caps = append(b.caps, capRegion)
	}
}

func (b *strokeBuffer) vertexCount() int {
	return len(b.positions) / 2
}

func (b *strokeBuffer) reset() {
	b.positions = b.positions[:0]
	b.colors = b.colors[:0]
	b.caps = b.caps[:0]
}

// fillBuffer accumulates triangles for filled polygons.
type fillBuffer struct {
	positions []float32
	colors    []float32
}

// addPolygon triangulates and appends a polygon. Fewer than three points
// contributes nothing.
func (b *fillBuffer) addPolygon(points []geom.Vec2, c color.NRGBA) {
	for _, tri := range Triangulate(points) {
		for _, v := range tri {
			b.positions = append(b.positions, float32(v.X), float32(v.Y))
			b.colors = appendColor(b.colors, c)
		}
	}
}

func (b *fillBuffer) vertexCount() int {
	return len(b.positions) / 2
}

func (b *fillBuffer) reset() {
	b.positions = b.positions[:0]
	b.colors = b.colors[:0]
}

func appendColor(dst []float32, c color.NRGBA) []float32 {
	return append(dst,
		float32(c.R)/255.0,
		float32(c.G)/255.0,
		float32(c.B)/255.0,
		float32(c.A)/255.0,
	)
}
