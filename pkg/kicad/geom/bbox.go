package geom

import "math"

// BBox is an axis-aligned bounding rectangle. Context is an optional
// back-reference to the item the box was measured for; it is a lookup key
// for hit-testing only and never an ownership edge.
//
// W and H are always >= 0 after construction; a box is valid when it has
// a non-zero extent on at least one axis.
type BBox struct {
	X       float64
	Y       float64
	W       float64
	H       float64
	Context any
}

// NewBBox constructs a bounding box, flipping the origin when the given
// width or height is negative.
func NewBBox(x, y, w, h float64) BBox {
	if w < 0 {
		x += w
		w = -w
	}
	if h < 0 {
		y += h
		h = -h
	}
	return BBox{X: x, Y: y, W: w, H: h}
}

// BBoxFromCorners constructs the box spanning two opposite corners.
func BBoxFromCorners(a, b Vec2) BBox {
	return NewBBox(a.X, a.Y, b.X-a.X, b.Y-a.Y)
}

// BBoxFromPoints constructs the smallest box containing all points.
// An empty point list yields an invalid (zero) box.
func BBoxFromPoints(pts []Vec2) BBox {
	if len(pts) == 0 {
		return BBox{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return BBox{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Combine returns the union of all valid boxes. Invalid (zero-extent)
// boxes do not contribute. Combining nothing yields an invalid box.
func Combine(boxes ...BBox) BBox {
	out := BBox{}
	started := false
	for _, b := range boxes {
		if !b.Valid() {
			continue
		}
		if !started {
			out = BBox{X: b.X, Y: b.Y, W: b.W, H: b.H}
			started = true
			continue
		}
		x1 := math.Min(out.X, b.X)
		y1 := math.Min(out.Y, b.Y)
		x2 := math.Max(out.X2(), b.X2())
		y2 := math.Max(out.Y2(), b.Y2())
		out = BBox{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
	}
	return out
}

// Valid reports whether the box has extent on at least one axis.
func (b BBox) Valid() bool {
	return b.W != 0 || b.H != 0
}

// X2 returns the right edge coordinate.
func (b BBox) X2() float64 { return b.X + b.W }

// Y2 returns the bottom edge coordinate.
func (b BBox) Y2() float64 { return b.Y + b.H }

// Start returns the top-left corner.
func (b BBox) Start() Vec2 { return Vec2{X: b.X, Y: b.Y} }

// End returns the bottom-right corner.
func (b BBox) End() Vec2 { return Vec2{X: b.X2(), Y: b.Y2()} }

// Center returns the center point of the box.
func (b BBox) Center() Vec2 {
	return Vec2{X: b.X + b.W/2.0, Y: b.Y + b.H/2.0}
}

// Grow returns the box expanded by the given amount on every side.
func (b BBox) Grow(amount float64) BBox {
	out := NewBBox(b.X-amount, b.Y-amount, b.W+amount*2, b.H+amount*2)
	out.Context = b.Context
	return out
}

// Merge returns the union of b and other.
func (b BBox) Merge(other BBox) BBox {
	out := Combine(b, other)
	out.Context = b.Context
	return out
}

// ContainsPoint reports whether the point lies inside the box.
// Boundary points are inclusive.
func (b BBox) ContainsPoint(p Vec2) bool {
	return p.X >= b.X && p.X <= b.X2() && p.Y >= b.Y && p.Y <= b.Y2()
}

// Transform returns the axis-aligned box containing this box transformed
// by the given matrix.
func (b BBox) Transform(m Matrix3) BBox {
	corners := []Vec2{
		{X: b.X, Y: b.Y},
		{X: b.X2(), Y: b.Y},
		{X: b.X2(), Y: b.Y2()},
		{X: b.X, Y: b.Y2()},
	}
	out := BBoxFromPoints(m.TransformAll(corners))
	out.Context = b.Context
	return out
}

// IntersectSegment returns the point where the segment a-b first crosses
// one of the box edges. The second return value is false when the segment
// does not touch the box boundary.
func (b BBox) IntersectSegment(a, c Vec2) (Vec2, bool) {
	tl := Vec2{X: b.X, Y: b.Y}
	tr := Vec2{X: b.X2(), Y: b.Y}
	br := Vec2{X: b.X2(), Y: b.Y2()}
	bl := Vec2{X: b.X, Y: b.Y2()}

	edges := [4][2]Vec2{{tl, tr}, {tr, br}, {br, bl}, {bl, tl}}

	best := Vec2{}
	bestDist := math.Inf(1)
	found := false
	for _, e := range edges {
		p, ok := SegmentIntersect(a, c, e[0], e[1])
		if !ok {
			continue
		}
		if d := p.Sub(a).MagnitudeSq(); d < bestDist {
			best = p
			bestDist = d
			found = true
		}
	}
	return best, found
}
