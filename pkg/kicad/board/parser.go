package board

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/geom"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/logging"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/paint"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/sexp"
)

// Parse reads a kicad_pcb document.
func Parse(r io.Reader) (*Board, error) {
	p, err := sexp.NewParser()
	if err != nil {
		return nil, err
	}
	doc, err := p.Parse(r)
	if err != nil {
		return nil, err
	}
	return fromSexp(doc)
}

// ParseFile reads a kicad_pcb document from a file path.
func ParseFile(filename string) (*Board, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open board: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

func fromSexp(doc *sexp.List) (*Board, error) {
	if doc.Name() != "kicad_pcb" {
		return nil, fmt.Errorf("not a board document: head is %q", doc.Name())
	}

	b := &Board{}
	if v := doc.Get("version"); v != nil {
		b.Version = int(v.Float(1))
	}
	if g := doc.Get("generator"); g != nil {
		b.Generator = g.Text(1)
	}
	if gen := doc.Get("general"); gen != nil {
		if th := gen.Get("thickness"); th != nil {
			b.Thickness = th.Float(1)
		}
	}

	if layers := doc.Get("layers"); layers != nil {
		for _, l := range layers.Lists() {
			b.Layers = append(b.Layers, Layer{
				Number: int(l.Float(0)),
				Name:   l.Text(1),
				Type:   l.Text(2),
			})
		}
	}

	for _, n := range doc.GetAll("net") {
		b.Nets = append(b.Nets, Net{Number: int(n.Float(1)), Name: n.Text(2)})
	}

	for _, s := range doc.GetAll("segment") {
		b.Tracks = append(b.Tracks, &Track{
			Start: xy(s.Get("start")),
			End:   xy(s.Get("end")),
			Width: floatOf(s.Get("width")),
			Layer: textOf(s.Get("layer")),
			Net:   int(floatOf(s.Get("net"))),
		})
	}

	for _, v := range doc.GetAll("via") {
		via := &Via{
			At:    xy(v.Get("at")),
			Size:  floatOf(v.Get("size")),
			Drill: floatOf(v.Get("drill")),
			Net:   int(floatOf(v.Get("net"))),
		}
		if ls := v.Get("layers"); ls != nil {
			for i := 1; i < ls.Len(); i++ {
				via.Layers = append(via.Layers, ls.Text(i))
			}
		}
		b.Vias = append(b.Vias, via)
	}

	for _, z := range doc.GetAll("zone") {
		zone := &Zone{
			Layer: textOf(z.Get("layer")),
			Net:   int(floatOf(z.Get("net"))),
			Name:  textOf(z.Get("net_name")),
		}
		for _, fp := range z.GetAll("filled_polygon") {
			if pts := fp.Get("pts"); pts != nil {
				zone.Fills = append(zone.Fills, points(pts))
			}
		}
		b.Zones = append(b.Zones, zone)
	}

	for _, f := range doc.GetAll("footprint") {
		b.Footprints = append(b.Footprints, parseFootprint(f))
	}

	b.Graphics = parseGraphics(doc, "gr_")
	return b, nil
}

func parseFootprint(f *sexp.List) *Footprint {
	fp := &Footprint{
		Library: f.Text(1),
		Layer:   textOf(f.Get("layer")),
	}
	if at := f.Get("at"); at != nil {
		fp.At = xy(at)
		fp.Angle = geom.Degrees(at.Float(3))
	}

	for _, prop := range f.GetAll("property") {
		switch prop.Text(1) {
		case "Reference":
			fp.Reference = prop.Text(2)
		case "Value":
			fp.Value = prop.Text(2)
		}
	}
	// Older format carries fp_text reference/value instead of properties.
	for _, txt := range f.GetAll("fp_text") {
		switch txt.Text(1) {
		case "reference":
			if fp.Reference == "" {
				fp.Reference = txt.Text(2)
			}
		case "value":
			if fp.Value == "" {
				fp.Value = txt.Text(2)
			}
		}
	}

	for _, p := range f.GetAll("pad") {
		pad := &Pad{
			Number: p.Text(1),
			Type:   p.Text(2),
			Shape:  p.Text(3),
			Net:    int(floatOf(p.Get("net"))),
		}
		if at := p.Get("at"); at != nil {
			pad.At = xy(at)
			pad.Angle = geom.Degrees(at.Float(3))
		}
		if sz := p.Get("size"); sz != nil {
			pad.Size = geom.Vec2{X: sz.Float(1), Y: sz.Float(2)}
		}
		if dr := p.Get("drill"); dr != nil {
			pad.Drill = dr.Float(1)
		}
		if ls := p.Get("layers"); ls != nil {
			for i := 1; i < ls.Len(); i++ {
				pad.Layers = append(pad.Layers, ls.Text(i))
			}
		}
		fp.Pads = append(fp.Pads, pad)
	}

	fp.Graphics = parseGraphics(f, "fp_")
	return fp
}

// parseGraphics decodes the graphic children with the given prefix,
// gr_ at board level and fp_ inside footprints.
func parseGraphics(l *sexp.List, prefix string) []paint.Item {
	var items []paint.Item
	for _, child := range l.Lists() {
		name, ok := strings.CutPrefix(child.Name(), prefix)
		if !ok {
			continue
		}
		switch name {
		case "line":
			items = append(items, &GrLine{
				Start: xy(child.Get("start")),
				End:   xy(child.Get("end")),
				Width: strokeWidth(child),
				Layer: textOf(child.Get("layer")),
			})
		case "circle":
			items = append(items, &GrCircle{
				Center: xy(child.Get("center")),
				End:    xy(child.Get("end")),
				Width:  strokeWidth(child),
				Fill:   filled(child),
				Layer:  textOf(child.Get("layer")),
			})
		case "arc":
			items = append(items, &GrArc{
				Start: xy(child.Get("start")),
				Mid:   xy(child.Get("mid")),
				End:   xy(child.Get("end")),
				Width: strokeWidth(child),
				Layer: textOf(child.Get("layer")),
			})
		case "rect":
			items = append(items, &GrRect{
				Start: xy(child.Get("start")),
				End:   xy(child.Get("end")),
				Width: strokeWidth(child),
				Fill:  filled(child),
				Layer: textOf(child.Get("layer")),
			})
		case "poly":
			var pts []geom.Vec2
			if p := child.Get("pts"); p != nil {
				pts = points(p)
			}
			items = append(items, &GrPoly{
				Points: pts,
				Width:  strokeWidth(child),
				Fill:   filled(child),
				Layer:  textOf(child.Get("layer")),
			})
		case "text":
			gt := &GrText{
				Text:  child.Text(1),
				Layer: textOf(child.Get("layer")),
				Size:  1.0,
			}
			if at := child.Get("at"); at != nil {
				gt.At = xy(at)
				gt.Angle = geom.Degrees(at.Float(3))
			}
			if eff := child.Get("effects"); eff != nil {
				if font := eff.Get("font"); font != nil {
					if sz := font.Get("size"); sz != nil {
						gt.Size = sz.Float(1)
					}
				}
			}
			items = append(items, gt)
		default:
			logging.Logger().Debug("skipping unsupported graphic", "form", child.Name())
		}
	}
	return items
}

func xy(l *sexp.List) geom.Vec2 {
	if l == nil {
		return geom.Vec2{}
	}
	return geom.Vec2{X: l.Float(1), Y: l.Float(2)}
}

func points(pts *sexp.List) []geom.Vec2 {
	var out []geom.Vec2
	for _, p := range pts.GetAll("xy") {
		out = append(out, geom.Vec2{X: p.Float(1), Y: p.Float(2)})
	}
	return out
}

func floatOf(l *sexp.List) float64 {
	if l == nil {
		return 0
	}
	return l.Float(1)
}

func textOf(l *sexp.List) string {
	if l == nil {
		return ""
	}
	return l.Text(1)
}

// strokeWidth reads both the modern (stroke (width w)) and the legacy
// (width w) forms.
func strokeWidth(l *sexp.List) float64 {
	if s := l.Get("stroke"); s != nil {
		return floatOf(s.Get("width"))
	}
	return floatOf(l.Get("width"))
}

func filled(l *sexp.List) bool {
	f := l.Get("fill")
	if f == nil {
		return false
	}
	switch f.Text(1) {
	case "yes", "solid":
		return true
	}
	return false
}
