package schematic

import (
	"image/color"

	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/geom"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/graphics"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/paint"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/text"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/theme"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/view"
)

// Slot names for schematic sheets, front to back.
const (
	LayerLabels     = "Labels"
	LayerJunctions  = "Junctions"
	LayerNoConnects = "NoConnects"
	LayerWires      = "Wires"
	LayerBuses      = "Buses"
	LayerSymbols    = "Symbols"
	LayerNotes      = "Notes"
)

// KiCad defaults in mm.
const (
	defaultWireWidth   = 0.1524
	defaultBusWidth    = 0.3048
	defaultJunctionDia = 0.9144
	noConnectHalfSize  = 0.635
)

// Options configures the schematic painters.
type Options struct {
	Theme  *theme.Theme
	Shaper text.Shaper
}

// Painters returns the full painter set for a sheet.
func Painters(opts Options) []paint.ItemPainter {
	if opts.Theme == nil {
		opts.Theme = theme.SchematicLight()
	}
	return []paint.ItemPainter{
		&connectionPainter{opts: opts},
		&markerPainter{opts: opts},
		&labelPainter{opts: opts},
		&symbolPainter{opts: opts},
	}
}

// NewDocumentPainter wires the painter set into a dispatcher.
func NewDocumentPainter(opts Options) *paint.DocumentPainter {
	return paint.NewDocumentPainter(Painters(opts)...)
}

// BuildLayerSet creates the slot stack for a sheet.
func BuildLayerSet(th *theme.Theme) *view.LayerSet {
	names := []string{
		LayerLabels,
		LayerJunctions,
		LayerNoConnects,
		LayerWires,
		LayerBuses,
		LayerSymbols,
		LayerNotes,
	}
	interactive := map[string]bool{
		LayerLabels:  true,
		LayerWires:   true,
		LayerSymbols: true,
	}
	set := view.NewLayerSet()
	for _, name := range names {
		set.Add(view.NewViewLayer(name, interactive[name], th.Background))
	}
	return set
}

type connectionPainter struct {
	opts Options
}

func (*connectionPainter) Kinds() []paint.Kind {
	return []paint.Kind{KindWire, KindBus}
}

func (p *connectionPainter) LayersFor(item paint.Item) []string {
	if item.ItemKind() == KindBus {
		return []string{LayerBuses}
	}
	return []string{LayerWires}
}

func (p *connectionPainter) Paint(r graphics.Renderer, layerName string, item paint.Item) {
	switch it := item.(type) {
	case *Wire:
		w := it.Width
		if w == 0 {
			w = defaultWireWidth
		}
		r.Line(graphics.Polyline{Points: it.Points, Width: w, Color: p.opts.Theme.Wire})
	case *Bus:
		w := it.Width
		if w == 0 {
			w = defaultBusWidth
		}
		r.Line(graphics.Polyline{Points: it.Points, Width: w, Color: p.opts.Theme.Bus})
	}
}

type markerPainter struct {
	opts Options
}

func (*markerPainter) Kinds() []paint.Kind {
	return []paint.Kind{KindJunction, KindNoConnect}
}

func (p *markerPainter) LayersFor(item paint.Item) []string {
	if item.ItemKind() == KindJunction {
		return []string{LayerJunctions}
	}
	return []string{LayerNoConnects}
}

func (p *markerPainter) Paint(r graphics.Renderer, layerName string, item paint.Item) {
	switch it := item.(type) {
	case *Junction:
		d := it.Diameter
		if d == 0 {
			d = defaultJunctionDia
		}
		r.Circle(graphics.Circle{Center: it.At, Radius: d / 2, Color: p.opts.Theme.Junction})
	case *NoConnect:
		h := noConnectHalfSize
		c := p.opts.Theme.NoConnect
		r.Line(graphics.Polyline{
			Points: []geom.Vec2{
				{X: it.At.X - h, Y: it.At.Y - h},
				{X: it.At.X + h, Y: it.At.Y + h},
			},
			Width: defaultWireWidth,
			Color: c,
		})
		r.Line(graphics.Polyline{
			Points: []geom.Vec2{
				{X: it.At.X - h, Y: it.At.Y + h},
				{X: it.At.X + h, Y: it.At.Y - h},
			},
			Width: defaultWireWidth,
			Color: c,
		})
	}
}

type labelPainter struct {
	opts Options
}

func (*labelPainter) Kinds() []paint.Kind {
	return []paint.Kind{KindLabel, KindText}
}

func (p *labelPainter) LayersFor(item paint.Item) []string {
	if item.ItemKind() == KindText {
		return []string{LayerNotes}
	}
	return []string{LayerLabels}
}

func (p *labelPainter) Paint(r graphics.Renderer, layerName string, item paint.Item) {
	switch it := item.(type) {
	case *Label:
		text.Paint(r, p.opts.Shaper, text.Span{
			Text:  it.Text,
			At:    it.At,
			Size:  it.Size,
			Angle: it.Angle,
			Color: p.opts.Theme.Label,
		})
	case *Text:
		text.Paint(r, p.opts.Shaper, text.Span{
			Text:  it.Text,
			At:    it.At,
			Size:  it.Size,
			Angle: it.Angle,
			Color: p.opts.Theme.Label,
		})
	}
}

type symbolPainter struct {
	opts Options
}

func (*symbolPainter) Kinds() []paint.Kind { return []paint.Kind{KindSymbol} }

func (p *symbolPainter) LayersFor(paint.Item) []string {
	return []string{LayerSymbols}
}

func (p *symbolPainter) Paint(r graphics.Renderer, layerName string, item paint.Item) {
	sym := item.(*Symbol)
	if sym.Lib == nil {
		return
	}

	st := r.State()
	st.Push()
	defer st.Pop()
	st.Multiply(sym.Transform())

	outline := p.opts.Theme.SymbolOutline
	fill := p.opts.Theme.SymbolFill

	for _, g := range sym.Lib.Graphics {
		p.paintBody(r, g, outline, fill)
	}
	for _, pin := range sym.Lib.Pins {
		tip := pin.At.Add(geom.Vec2{X: pin.Length}.Rotate(pin.Angle))
		r.Line(graphics.Polyline{
			Points: []geom.Vec2{pin.At, tip},
			Width:  defaultWireWidth,
			Color:  outline,
		})
	}
}

func (p *symbolPainter) paintBody(r graphics.Renderer, g BodyGraphic, outline, fill color.NRGBA) {
	w := g.Width
	if w == 0 {
		w = defaultWireWidth
	}
	switch g.Kind {
	case "rectangle":
		corners := []geom.Vec2{
			g.Start,
			{X: g.End.X, Y: g.Start.Y},
			g.End,
			{X: g.Start.X, Y: g.End.Y},
		}
		if g.Fill {
			r.Polygon(graphics.Polygon{Points: corners, Color: fill})
		}
		r.Line(graphics.Polyline{
			Points: append(corners, g.Start),
			Width:  w,
			Color:  outline,
		})
	case "polyline":
		if len(g.Points) < 2 {
			return
		}
		if g.Fill {
			r.Polygon(graphics.Polygon{Points: g.Points, Color: fill})
		}
		r.Line(graphics.Polyline{Points: g.Points, Width: w, Color: outline})
	case "circle":
		if g.Fill {
			r.Circle(graphics.Circle{Center: g.Center, Radius: g.Radius, Color: fill})
		}
		r.Arc(graphics.Arc{
			Center:     g.Center,
			Radius:     g.Radius,
			StartAngle: geom.Degrees(0),
			EndAngle:   geom.Degrees(360),
			Width:      w,
			Color:      outline,
		})
	case "arc":
		arc := geom.ArcFromThreePoints(g.Start, g.Mid, g.End, w)
		r.Arc(graphics.Arc{
			Center:     arc.Center,
			Radius:     arc.Radius,
			StartAngle: arc.StartAngle,
			EndAngle:   arc.EndAngle,
			Width:      w,
			Color:      outline,
		})
	}
}
