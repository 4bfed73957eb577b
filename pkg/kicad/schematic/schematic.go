// Package schematic models a KiCAD schematic sheet and paints it.
package schematic

import (
	"iter"

	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/geom"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/paint"
)

// Item kinds the schematic document yields.
const (
	KindWire      paint.Kind = "sch_wire"
	KindBus       paint.Kind = "sch_bus"
	KindJunction  paint.Kind = "sch_junction"
	KindNoConnect paint.Kind = "sch_no_connect"
	KindLabel     paint.Kind = "sch_label"
	KindText      paint.Kind = "sch_text"
	KindSymbol    paint.Kind = "sch_symbol"
)

// Wire is one electrical connection polyline.
type Wire struct {
	Points []geom.Vec2
	Width  float64
}

func (*Wire) ItemKind() paint.Kind { return KindWire }

// Bus is a bundled-connection polyline, drawn heavier than a wire.
type Bus struct {
	Points []geom.Vec2
	Width  float64
}

func (*Bus) ItemKind() paint.Kind { return KindBus }

// Junction is a solder dot where wires meet.
type Junction struct {
	At       geom.Vec2
	Diameter float64
}

func (*Junction) ItemKind() paint.Kind { return KindJunction }

// NoConnect is the X marker on an intentionally open pin.
type NoConnect struct {
	At geom.Vec2
}

func (*NoConnect) ItemKind() paint.Kind { return KindNoConnect }

// LabelKind distinguishes local, global and hierarchical labels.
type LabelKind int

const (
	LabelLocal LabelKind = iota
	LabelGlobal
	LabelHier
)

// Label names a net at a point.
type Label struct {
	Text  string
	Kind  LabelKind
	At    geom.Vec2
	Angle geom.Angle
	Size  float64
}

func (*Label) ItemKind() paint.Kind { return KindLabel }

// Text is free sheet annotation.
type Text struct {
	Text  string
	At    geom.Vec2
	Angle geom.Angle
	Size  float64
}

func (*Text) ItemKind() paint.Kind { return KindText }

// PinShape is a library pin stub.
type PinShape struct {
	At     geom.Vec2
	Angle  geom.Angle
	Length float64
}

// LibSymbol is a library symbol body: the graphics shared by every
// instance, in symbol coordinates.
type LibSymbol struct {
	Name     string
	Graphics []BodyGraphic
	Pins     []PinShape
}

// BodyGraphic is one drawable element of a symbol body.
type BodyGraphic struct {
	// Kind is rectangle, polyline, circle or arc.
	Kind string

	Start  geom.Vec2
	End    geom.Vec2
	Mid    geom.Vec2
	Center geom.Vec2
	Radius float64
	Points []geom.Vec2
	Width  float64
	Fill   bool
}

// Symbol is one placed instance of a library symbol.
type Symbol struct {
	LibID     string
	Reference string
	Value     string
	At        geom.Vec2
	Angle     geom.Angle
	Mirror    string
	Lib       *LibSymbol
}

func (*Symbol) ItemKind() paint.Kind { return KindSymbol }

// Transform returns the symbol's placement matrix. Schematic symbol
// rotation is counterclockwise while sheet Y grows downward, so the
// angle is negated; mirroring applies before rotation.
func (s *Symbol) Transform() geom.Matrix3 {
	m := geom.Translation(s.At.X, s.At.Y).Rotate(s.Angle.Neg())
	switch s.Mirror {
	case "x":
		m = m.Scale(1, -1)
	case "y":
		m = m.Scale(-1, 1)
	}
	return m
}

// Schematic is a parsed sheet.
type Schematic struct {
	Version    int
	Generator  string
	Title      string
	LibSymbols map[string]*LibSymbol
	Wires      []*Wire
	Buses      []*Bus
	Junctions  []*Junction
	NoConnects []*NoConnect
	Labels     []*Label
	Texts      []*Text
	Symbols    []*Symbol
}

// Items yields every paintable item, symbols first so wires draw over
// symbol bodies they touch.
func (s *Schematic) Items() iter.Seq[paint.Item] {
	return func(yield func(paint.Item) bool) {
		for _, sym := range s.Symbols {
			if !yield(sym) {
				return
			}
		}
		for _, w := range s.Wires {
			if !yield(w) {
				return
			}
		}
		for _, b := range s.Buses {
			if !yield(b) {
				return
			}
		}
		for _, j := range s.Junctions {
			if !yield(j) {
				return
			}
		}
		for _, nc := range s.NoConnects {
			if !yield(nc) {
				return
			}
		}
		for _, l := range s.Labels {
			if !yield(l) {
				return
			}
		}
		for _, t := range s.Texts {
			if !yield(t) {
				return
			}
		}
	}
}

// BBox returns the sheet extent covered by wires, buses and symbols.
func (s *Schematic) BBox() geom.BBox {
	var boxes []geom.BBox
	for _, w := range s.Wires {
		boxes = append(boxes, geom.BBoxFromPoints(w.Points).Grow(w.Width/2))
	}
	for _, b := range s.Buses {
		boxes = append(boxes, geom.BBoxFromPoints(b.Points).Grow(b.Width/2))
	}
	for _, sym := range s.Symbols {
		if sym.Lib == nil {
			continue
		}
		m := sym.Transform()
		for _, g := range sym.Lib.Graphics {
			if bb := g.bbox(); bb.Valid() {
				boxes = append(boxes, bb.Transform(m))
			}
		}
		for _, p := range sym.Lib.Pins {
			tip := p.At.Add(geom.Vec2{X: p.Length}.Rotate(p.Angle))
			boxes = append(boxes, geom.BBoxFromCorners(p.At, tip).Transform(m))
		}
	}
	return geom.Combine(boxes...)
}

func (g BodyGraphic) bbox() geom.BBox {
	switch g.Kind {
	case "rectangle":
		return geom.BBoxFromCorners(g.Start, g.End)
	case "polyline":
		return geom.BBoxFromPoints(g.Points)
	case "circle":
		return geom.NewBBox(g.Center.X-g.Radius, g.Center.Y-g.Radius, 2*g.Radius, 2*g.Radius)
	case "arc":
		return geom.BBoxFromPoints([]geom.Vec2{g.Start, g.Mid, g.End})
	}
	return geom.BBox{}
}
