package board

import (
	"image/color"

	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/geom"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/graphics"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/paint"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/text"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/theme"
)

// LayerVias is the synthetic slot vias paint onto, above all copper.
const LayerVias = "Via"

// Options configures the board painters.
type Options struct {
	Theme  *theme.Theme
	Shaper text.Shaper

	// HighlightNet dims every item not on the named net and paints
	// matching items in the theme highlight color.
	HighlightNet string

	// CopperLayers overrides the *.Cu pad wildcard expansion. Empty
	// means the board's declared copper layers.
	CopperLayers []string
}

const dimAlpha = 60

// colorFor resolves an item color, applying net highlighting.
func (o *Options) colorFor(b *Board, base color.NRGBA, net int) color.NRGBA {
	if o.HighlightNet == "" {
		return base
	}
	if b.NetName(net) == o.HighlightNet {
		return o.Theme.Highlight
	}
	base.A = dimAlpha
	return base
}

// Painters returns the full painter set for a board document.
func Painters(b *Board, opts Options) []paint.ItemPainter {
	if opts.Theme == nil {
		opts.Theme = theme.Classic()
	}
	if len(opts.CopperLayers) == 0 {
		opts.CopperLayers = copperLayers(b)
	}
	return []paint.ItemPainter{
		&trackPainter{board: b, opts: opts},
		&viaPainter{board: b, opts: opts},
		&zonePainter{board: b, opts: opts},
		&graphicsPainter{opts: opts},
		&textPainter{opts: opts},
		&footprintPainter{board: b, opts: opts},
	}
}

// NewDocumentPainter wires the painter set into a dispatcher.
func NewDocumentPainter(b *Board, opts Options) *paint.DocumentPainter {
	return paint.NewDocumentPainter(Painters(b, opts)...)
}

func copperLayers(b *Board) []string {
	var out []string
	for _, l := range b.Layers {
		switch l.Type {
		case "signal", "power", "mixed":
			out = append(out, l.Name)
		}
	}
	if len(out) == 0 {
		out = []string{"F.Cu", "B.Cu"}
	}
	return out
}

type trackPainter struct {
	board *Board
	opts  Options
}

func (*trackPainter) Kinds() []paint.Kind { return []paint.Kind{KindTrack} }

func (p *trackPainter) LayersFor(item paint.Item) []string {
	return []string{item.(*Track).Layer}
}

func (p *trackPainter) Paint(r graphics.Renderer, layerName string, item paint.Item) {
	t := item.(*Track)
	r.Line(graphics.Polyline{
		Points: []geom.Vec2{t.Start, t.End},
		Width:  t.Width,
		Color:  p.opts.colorFor(p.board, p.opts.Theme.ColorFor(t.Layer), t.Net),
	})
}

type viaPainter struct {
	board *Board
	opts  Options
}

func (*viaPainter) Kinds() []paint.Kind { return []paint.Kind{KindVia} }

func (p *viaPainter) LayersFor(paint.Item) []string {
	return []string{LayerVias}
}

func (p *viaPainter) Paint(r graphics.Renderer, layerName string, item paint.Item) {
	v := item.(*Via)
	r.Circle(graphics.Circle{
		Center: v.At,
		Radius: v.Size / 2,
		Color:  p.opts.colorFor(p.board, p.opts.Theme.Via, v.Net),
	})
	if v.Drill > 0 && v.Drill < v.Size {
		r.Circle(graphics.Circle{
			Center: v.At,
			Radius: v.Drill / 2,
			Color:  p.opts.Theme.ViaDrill,
		})
	}
}

type zonePainter struct {
	board *Board
	opts  Options
}

func (*zonePainter) Kinds() []paint.Kind { return []paint.Kind{KindZone} }

func (p *zonePainter) LayersFor(item paint.Item) []string {
	return []string{item.(*Zone).Layer}
}

func (p *zonePainter) Paint(r graphics.Renderer, layerName string, item paint.Item) {
	z := item.(*Zone)
	c := p.opts.Theme.ColorFor(z.Layer)
	c.A = 180
	c = p.opts.colorFor(p.board, c, z.Net)
	for _, fill := range z.Fills {
		if len(fill) < 3 {
			continue
		}
		r.Polygon(graphics.Polygon{Points: fill, Color: c})
	}
}

type graphicsPainter struct {
	opts Options
}

func (*graphicsPainter) Kinds() []paint.Kind {
	return []paint.Kind{KindGrLine, KindGrCircle, KindGrArc, KindGrRect, KindGrPoly}
}

func (p *graphicsPainter) LayersFor(item paint.Item) []string {
	return []string{graphicLayer(item)}
}

func (p *graphicsPainter) Paint(r graphics.Renderer, layerName string, item paint.Item) {
	paintGraphic(r, item, p.opts.Theme.ColorFor(graphicLayer(item)))
}

func graphicLayer(item paint.Item) string {
	switch g := item.(type) {
	case *GrLine:
		return g.Layer
	case *GrCircle:
		return g.Layer
	case *GrArc:
		return g.Layer
	case *GrRect:
		return g.Layer
	case *GrPoly:
		return g.Layer
	case *GrText:
		return g.Layer
	}
	return ""
}

// paintGraphic draws one graphic item; footprint children reuse it
// under the footprint's transform.
func paintGraphic(r graphics.Renderer, item paint.Item, c color.NRGBA) {
	switch g := item.(type) {
	case *GrLine:
		r.Line(graphics.Polyline{
			Points: []geom.Vec2{g.Start, g.End},
			Width:  g.Width,
			Color:  c,
		})
	case *GrCircle:
		if g.Fill {
			r.Circle(graphics.Circle{Center: g.Center, Radius: g.Radius(), Color: c})
			return
		}
		r.Arc(graphics.Arc{
			Center:     g.Center,
			Radius:     g.Radius(),
			StartAngle: geom.Degrees(0),
			EndAngle:   geom.Degrees(360),
			Width:      g.Width,
			Color:      c,
		})
	case *GrArc:
		arc := geom.ArcFromThreePoints(g.Start, g.Mid, g.End, g.Width)
		r.Arc(graphics.Arc{
			Center:     arc.Center,
			Radius:     arc.Radius,
			StartAngle: arc.StartAngle,
			EndAngle:   arc.EndAngle,
			Width:      g.Width,
			Color:      c,
		})
	case *GrRect:
		corners := []geom.Vec2{
			g.Start,
			{X: g.End.X, Y: g.Start.Y},
			g.End,
			{X: g.Start.X, Y: g.End.Y},
		}
		if g.Fill {
			r.Polygon(graphics.Polygon{Points: corners, Color: c})
			return
		}
		r.Line(graphics.Polyline{
			Points: append(corners, g.Start),
			Width:  g.Width,
			Color:  c,
		})
	case *GrPoly:
		if len(g.Points) < 2 {
			return
		}
		if g.Fill {
			r.Polygon(graphics.Polygon{Points: g.Points, Color: c})
			return
		}
		r.Line(graphics.Polyline{
			Points: append(append([]geom.Vec2{}, g.Points...), g.Points[0]),
			Width:  g.Width,
			Color:  c,
		})
	}
}

type textPainter struct {
	opts Options
}

func (*textPainter) Kinds() []paint.Kind { return []paint.Kind{KindGrText} }

func (p *textPainter) LayersFor(item paint.Item) []string {
	return []string{item.(*GrText).Layer}
}

func (p *textPainter) Paint(r graphics.Renderer, layerName string, item paint.Item) {
	t := item.(*GrText)
	text.Paint(r, p.opts.Shaper, text.Span{
		Text:  t.Text,
		At:    t.At,
		Size:  t.Size,
		Angle: t.Angle,
		Color: p.opts.Theme.ColorFor(t.Layer),
	})
}

type footprintPainter struct {
	board *Board
	opts  Options
}

func (*footprintPainter) Kinds() []paint.Kind { return []paint.Kind{KindFootprint} }

func (p *footprintPainter) LayersFor(item paint.Item) []string {
	f := item.(*Footprint)
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
	}
	for _, pad := range f.Pads {
		for _, l := range p.expandPadLayer(pad) {
			add(l)
		}
	}
	for _, g := range f.Graphics {
		add(graphicLayer(g))
	}
	return out
}

// expandPadLayer resolves the *.Cu wildcard against the board's copper
// stack; non-copper entries pass through.
func (p *footprintPainter) expandPadLayer(pad *Pad) []string {
	var out []string
	for _, l := range pad.Layers {
		if l == "*.Cu" {
			out = append(out, p.opts.CopperLayers...)
			continue
		}
		out = append(out, l)
	}
	return out
}

func (p *footprintPainter) Paint(r graphics.Renderer, layerName string, item paint.Item) {
	f := item.(*Footprint)

	st := r.State()
	st.Push()
	defer st.Pop()
	st.Multiply(f.Transform())

	for _, g := range f.Graphics {
		if graphicLayer(g) != layerName {
			continue
		}
		paintGraphic(r, g, p.opts.Theme.ColorFor(layerName))
	}

	for _, pad := range f.Pads {
		layers := p.expandPadLayer(pad)
		if !contains(layers, layerName) {
			continue
		}
		p.paintPad(r, pad, layerName == layers[0])
	}
}

func (p *footprintPainter) paintPad(r graphics.Renderer, pad *Pad, topmost bool) {
	st := r.State()
	st.Push()
	defer st.Pop()
	st.Multiply(geom.Translation(pad.At.X, pad.At.Y).Rotate(pad.Angle.Neg()))

	c := p.opts.colorFor(p.board, p.opts.Theme.Pad, pad.Net)

	switch pad.Shape {
	case "circle":
		r.Circle(graphics.Circle{Radius: pad.Size.X / 2, Color: c})
	case "oval":
		p.paintOvalPad(r, pad, c)
	default: // rect, roundrect, trapezoid and anything unrecognized
		half := pad.Size.Mul(0.5)
		r.Polygon(graphics.Polygon{
			Points: []geom.Vec2{
				{X: -half.X, Y: -half.Y},
				{X: half.X, Y: -half.Y},
				{X: half.X, Y: half.Y},
				{X: -half.X, Y: half.Y},
			},
			Color: c,
		})
	}

	// The drill belongs to the pad, not a layer; paint it once on the
	// pad's first layer so stacked copper does not redraw it.
	if topmost && pad.Drill > 0 {
		r.Circle(graphics.Circle{Radius: pad.Drill / 2, Color: p.opts.Theme.Drill})
	}
}

// paintOvalPad draws a stadium shape as a single fully-capped stroke
// along the major axis.
func (p *footprintPainter) paintOvalPad(r graphics.Renderer, pad *Pad, c color.NRGBA) {
	w, h := pad.Size.X, pad.Size.Y
	if w == h {
		r.Circle(graphics.Circle{Radius: w / 2, Color: c})
		return
	}
	if w > h {
		half := (w - h) / 2
		r.Line(graphics.Polyline{
			Points: []geom.Vec2{{X: -half}, {X: half}},
			Width:  h,
			Color:  c,
		})
		return
	}
	half := (h - w) / 2
	r.Line(graphics.Polyline{
		Points: []geom.Vec2{{Y: -half}, {Y: half}},
		Width:  w,
		Color:  c,
	})
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
