// Package board models a KiCAD PCB document and paints it.
package board

import (
	"iter"

	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/geom"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/paint"
)

// Item kinds the board document yields.
const (
	KindTrack     paint.Kind = "track"
	KindVia       paint.Kind = "via"
	KindZone      paint.Kind = "zone"
	KindFootprint paint.Kind = "footprint"
	KindGrLine    paint.Kind = "gr_line"
	KindGrCircle  paint.Kind = "gr_circle"
	KindGrArc     paint.Kind = "gr_arc"
	KindGrRect    paint.Kind = "gr_rect"
	KindGrPoly    paint.Kind = "gr_poly"
	KindGrText    paint.Kind = "gr_text"
)

// Layer is one board layer declaration.
type Layer struct {
	Number int
	Name   string
	Type   string
}

// Net is one electrical net. Net 0 is the unconnected net.
type Net struct {
	Number int
	Name   string
}

// Track is a straight copper segment.
type Track struct {
	Start geom.Vec2
	End   geom.Vec2
	Width float64
	Layer string
	Net   int
}

func (*Track) ItemKind() paint.Kind { return KindTrack }

// Via is a plated through connection between copper layers.
type Via struct {
	At     geom.Vec2
	Size   float64
	Drill  float64
	Layers []string
	Net    int
}

func (*Via) ItemKind() paint.Kind { return KindVia }

// Zone is a filled copper area. Fills holds the solved fill polygons.
type Zone struct {
	Layer string
	Net   int
	Name  string
	Fills [][]geom.Vec2
}

func (*Zone) ItemKind() paint.Kind { return KindZone }

// Pad is one footprint pad. At and Angle are relative to the footprint.
type Pad struct {
	Number string
	Type   string
	Shape  string
	At     geom.Vec2
	Angle  geom.Angle
	Size   geom.Vec2
	Drill  float64
	Layers []string
	Net    int
}

// Footprint is a placed component. Child coordinates are in the
// footprint frame.
type Footprint struct {
	Reference string
	Value     string
	Library   string
	At        geom.Vec2
	Angle     geom.Angle
	Layer     string
	Pads      []*Pad
	Graphics  []paint.Item
}

func (*Footprint) ItemKind() paint.Kind { return KindFootprint }

// Transform returns the footprint's placement matrix.
func (f *Footprint) Transform() geom.Matrix3 {
	return geom.Translation(f.At.X, f.At.Y).Rotate(f.Angle.Neg())
}

// GrLine is a stroked board graphic line.
type GrLine struct {
	Start geom.Vec2
	End   geom.Vec2
	Width float64
	Layer string
}

func (*GrLine) ItemKind() paint.Kind { return KindGrLine }

// GrCircle is a board graphic circle; End is a point on the
// circumference.
type GrCircle struct {
	Center geom.Vec2
	End    geom.Vec2
	Width  float64
	Fill   bool
	Layer  string
}

func (*GrCircle) ItemKind() paint.Kind { return KindGrCircle }

// Radius returns the circle radius.
func (c *GrCircle) Radius() float64 {
	return c.End.Sub(c.Center).Magnitude()
}

// GrArc is a board graphic arc given by three points on the arc.
type GrArc struct {
	Start geom.Vec2
	Mid   geom.Vec2
	End   geom.Vec2
	Width float64
	Layer string
}

func (*GrArc) ItemKind() paint.Kind { return KindGrArc }

// GrRect is a board graphic rectangle.
type GrRect struct {
	Start geom.Vec2
	End   geom.Vec2
	Width float64
	Fill  bool
	Layer string
}

func (*GrRect) ItemKind() paint.Kind { return KindGrRect }

// GrPoly is a board graphic polygon.
type GrPoly struct {
	Points []geom.Vec2
	Width  float64
	Fill   bool
	Layer  string
}

func (*GrPoly) ItemKind() paint.Kind { return KindGrPoly }

// GrText is free board text.
type GrText struct {
	Text  string
	At    geom.Vec2
	Angle geom.Angle
	Size  float64
	Layer string
}

func (*GrText) ItemKind() paint.Kind { return KindGrText }

// Board is a parsed PCB document.
type Board struct {
	Version    int
	Generator  string
	Thickness  float64
	Layers     []Layer
	Nets       []Net
	Tracks     []*Track
	Vias       []*Via
	Zones      []*Zone
	Footprints []*Footprint
	Graphics   []paint.Item

	netsByNumber map[int]string
}

// NetName resolves a net number, "" for unknown or unconnected nets.
func (b *Board) NetName(num int) string {
	if b.netsByNumber == nil {
		b.netsByNumber = make(map[int]string, len(b.Nets))
		for _, n := range b.Nets {
			b.netsByNumber[n.Number] = n.Name
		}
	}
	return b.netsByNumber[num]
}

// Items yields every paintable item. Zones come first so copper fills
// paint under the tracks and footprints that share their layers.
func (b *Board) Items() iter.Seq[paint.Item] {
	return func(yield func(paint.Item) bool) {
		for _, z := range b.Zones {
			if !yield(z) {
				return
			}
		}
		for _, t := range b.Tracks {
			if !yield(t) {
				return
			}
		}
		for _, g := range b.Graphics {
			if !yield(g) {
				return
			}
		}
		for _, f := range b.Footprints {
			if !yield(f) {
				return
			}
		}
		for _, v := range b.Vias {
			if !yield(v) {
				return
			}
		}
	}
}

// BBox returns the union of all track, via, zone and edge extents.
func (b *Board) BBox() geom.BBox {
	var boxes []geom.BBox
	for _, t := range b.Tracks {
		boxes = append(boxes, geom.BBoxFromCorners(t.Start, t.End).Grow(t.Width/2))
	}
	for _, v := range b.Vias {
		r := v.Size / 2
		boxes = append(boxes, geom.NewBBox(v.At.X-r, v.At.Y-r, v.Size, v.Size))
	}
	for _, z := range b.Zones {
		for _, fill := range z.Fills {
			boxes = append(boxes, geom.BBoxFromPoints(fill))
		}
	}
	for _, g := range b.Graphics {
		switch gr := g.(type) {
		case *GrLine:
			boxes = append(boxes, geom.BBoxFromCorners(gr.Start, gr.End).Grow(gr.Width/2))
		case *GrRect:
			boxes = append(boxes, geom.BBoxFromCorners(gr.Start, gr.End))
		case *GrCircle:
			r := gr.Radius()
			boxes = append(boxes, geom.NewBBox(gr.Center.X-r, gr.Center.Y-r, 2*r, 2*r))
		case *GrPoly:
			boxes = append(boxes, geom.BBoxFromPoints(gr.Points))
		}
	}
	for _, f := range b.Footprints {
		m := f.Transform()
		for _, p := range f.Pads {
			half := p.Size.Mul(0.5)
			bb := geom.NewBBox(p.At.X-half.X, p.At.Y-half.Y, p.Size.X, p.Size.Y)
			boxes = append(boxes, bb.Transform(m))
		}
	}
	return geom.Combine(boxes...)
}
