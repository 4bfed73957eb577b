package graphics

import (
	"image/color"

	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/geom"
)

// Circle is a filled circle drawable.
type Circle struct {
	Center geom.Vec2
	Radius float64
	Color  color.NRGBA
}

// BBox returns the bounding box of the circle.
func (c Circle) BBox() geom.BBox {
	return geom.NewBBox(
		c.Center.X-c.Radius,
		c.Center.Y-c.Radius,
		c.Radius*2,
		c.Radius*2,
	)
}

// Arc is a stroked circular arc drawable.
type Arc struct {
	Center     geom.Vec2
	Radius     float64
	StartAngle geom.Angle
	EndAngle   geom.Angle
	Width      float64
	Color      color.NRGBA
}

// ToPolyline converts the arc into an equivalent stroked polyline.
func (a Arc) ToPolyline() Polyline {
	g := geom.Arc{
		Center:     a.Center,
		Radius:     a.Radius,
		StartAngle: a.StartAngle,
		EndAngle:   a.EndAngle,
		Width:      a.Width,
	}
	return Polyline{Points: g.ToPolyline(), Width: a.Width, Color: a.Color}
}

// Polyline is a stroked line drawable with round caps and joints.
type Polyline struct {
	Points []geom.Vec2
	Width  float64
	Color  color.NRGBA
}

// BBox returns the bounding box of the stroked outline, padded by half
// the stroke width on every side.
func (l Polyline) BBox() geom.BBox {
	return geom.BBoxFromPoints(l.Points).Grow(l.Width / 2.0)
}

// Polygon is a filled polygon drawable.
type Polygon struct {
	Points []geom.Vec2
	Color  color.NRGBA
}

// BBox returns the bounding box of the polygon.
func (p Polygon) BBox() geom.BBox {
	return geom.BBoxFromPoints(p.Points)
}
