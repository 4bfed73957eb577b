package schematic

import (
	"fmt"
	"io"
	"os"

	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/geom"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/logging"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/sexp"
)

// Parse reads a kicad_sch document.
func Parse(r io.Reader) (*Schematic, error) {
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

// ParseFile reads a kicad_sch document from a file path.
func ParseFile(filename string) (*Schematic, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open schematic: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

func fromSexp(doc *sexp.List) (*Schematic, error) {
	if doc.Name() != "kicad_sch" {
		return nil, fmt.Errorf("not a schematic document: head is %q", doc.Name())
	}

	s := &Schematic{LibSymbols: make(map[string]*LibSymbol)}
	if v := doc.Get("version"); v != nil {
		s.Version = int(v.Float(1))
	}
	if g := doc.Get("generator"); g != nil {
		s.Generator = g.Text(1)
	}
	if tb := doc.Get("title_block"); tb != nil {
		if ti := tb.Get("title"); ti != nil {
			s.Title = ti.Text(1)
		}
	}

	if libs := doc.Get("lib_symbols"); libs != nil {
		for _, l := range libs.GetAll("symbol") {
			lib := parseLibSymbol(l)
			s.LibSymbols[lib.Name] = lib
		}
	}

	for _, w := range doc.GetAll("wire") {
		s.Wires = append(s.Wires, &Wire{
			Points: pts(w),
			Width:  strokeWidth(w),
		})
	}
	for _, b := range doc.GetAll("bus") {
		s.Buses = append(s.Buses, &Bus{
			Points: pts(b),
			Width:  strokeWidth(b),
		})
	}
	for _, j := range doc.GetAll("junction") {
		jn := &Junction{At: xy(j.Get("at"))}
		if d := j.Get("diameter"); d != nil {
			jn.Diameter = d.Float(1)
		}
		s.Junctions = append(s.Junctions, jn)
	}
	for _, nc := range doc.GetAll("no_connect") {
		s.NoConnects = append(s.NoConnects, &NoConnect{At: xy(nc.Get("at"))})
	}

	for _, l := range doc.GetAll("label") {
		s.Labels = append(s.Labels, parseLabel(l, LabelLocal))
	}
	for _, l := range doc.GetAll("global_label") {
		s.Labels = append(s.Labels, parseLabel(l, LabelGlobal))
	}
	for _, l := range doc.GetAll("hierarchical_label") {
		s.Labels = append(s.Labels, parseLabel(l, LabelHier))
	}

	for _, tx := range doc.GetAll("text") {
		t := &Text{Text: tx.Text(1), Size: 1.27}
		if at := tx.Get("at"); at != nil {
			t.At = xy(at)
			t.Angle = geom.Degrees(at.Float(3))
		}
		if sz := fontSize(tx); sz > 0 {
			t.Size = sz
		}
		s.Texts = append(s.Texts, t)
	}

	for _, sy := range doc.GetAll("symbol") {
		sym := &Symbol{LibID: textOf(sy.Get("lib_id"))}
		if at := sy.Get("at"); at != nil {
			sym.At = xy(at)
			sym.Angle = geom.Degrees(at.Float(3))
		}
		if m := sy.Get("mirror"); m != nil {
			sym.Mirror = m.Text(1)
		}
		for _, prop := range sy.GetAll("property") {
			switch prop.Text(1) {
			case "Reference":
				sym.Reference = prop.Text(2)
			case "Value":
				sym.Value = prop.Text(2)
			}
		}
		sym.Lib = s.LibSymbols[sym.LibID]
		if sym.Lib == nil {
			logging.Logger().Warn("symbol instance without library body",
				"lib_id", sym.LibID, "ref", sym.Reference)
		}
		s.Symbols = append(s.Symbols, sym)
	}

	return s, nil
}

// parseLibSymbol flattens a library symbol: unit sub-symbols contribute
// their graphics and pins to one body.
func parseLibSymbol(l *sexp.List) *LibSymbol {
	lib := &LibSymbol{Name: l.Text(1)}
	collectBody(l, lib)
	for _, unit := range l.GetAll("symbol") {
		collectBody(unit, lib)
	}
	return lib
}

func collectBody(l *sexp.List, lib *LibSymbol) {
	for _, g := range l.GetAll("rectangle") {
		lib.Graphics = append(lib.Graphics, BodyGraphic{
			Kind:  "rectangle",
			Start: xy(g.Get("start")),
			End:   xy(g.Get("end")),
			Width: strokeWidth(g),
			Fill:  filled(g),
		})
	}
	for _, g := range l.GetAll("polyline") {
		lib.Graphics = append(lib.Graphics, BodyGraphic{
			Kind:   "polyline",
			Points: pts(g),
			Width:  strokeWidth(g),
			Fill:   filled(g),
		})
	}
	for _, g := range l.GetAll("circle") {
		bg := BodyGraphic{
			Kind:   "circle",
			Center: xy(g.Get("center")),
			Width:  strokeWidth(g),
			Fill:   filled(g),
		}
		if r := g.Get("radius"); r != nil {
			bg.Radius = r.Float(1)
		}
		lib.Graphics = append(lib.Graphics, bg)
	}
	for _, g := range l.GetAll("arc") {
		lib.Graphics = append(lib.Graphics, BodyGraphic{
			Kind:  "arc",
			Start: xy(g.Get("start")),
			Mid:   xy(g.Get("mid")),
			End:   xy(g.Get("end")),
			Width: strokeWidth(g),
		})
	}
	for _, p := range l.GetAll("pin") {
		pin := PinShape{}
		if at := p.Get("at"); at != nil {
			pin.At = xy(at)
			pin.Angle = geom.Degrees(at.Float(3))
		}
		if ln := p.Get("length"); ln != nil {
			pin.Length = ln.Float(1)
		}
		lib.Pins = append(lib.Pins, pin)
	}
}

func parseLabel(l *sexp.List, kind LabelKind) *Label {
	lb := &Label{Text: l.Text(1), Kind: kind, Size: 1.27}
	if at := l.Get("at"); at != nil {
		lb.At = xy(at)
		lb.Angle = geom.Degrees(at.Float(3))
	}
	if sz := fontSize(l); sz > 0 {
		lb.Size = sz
	}
	return lb
}

func fontSize(l *sexp.List) float64 {
	eff := l.Get("effects")
	if eff == nil {
		return 0
	}
	font := eff.Get("font")
	if font == nil {
		return 0
	}
	sz := font.Get("size")
	if sz == nil {
		return 0
	}
	return sz.Float(1)
}

func xy(l *sexp.List) geom.Vec2 {
	if l == nil {
		return geom.Vec2{}
	}
	return geom.Vec2{X: l.Float(1), Y: l.Float(2)}
}

func pts(l *sexp.List) []geom.Vec2 {
	p := l.Get("pts")
	if p == nil {
		return nil
	}
	var out []geom.Vec2
	for _, v := range p.GetAll("xy") {
		out = append(out, geom.Vec2{X: v.Float(1), Y: v.Float(2)})
	}
	return out
}

func textOf(l *sexp.List) string {
	if l == nil {
		return ""
	}
	return l.Text(1)
}

func strokeWidth(l *sexp.List) float64 {
	if s := l.Get("stroke"); s != nil {
		if w := s.Get("width"); w != nil {
			return w.Float(1)
		}
	}
	return 0
}

func filled(l *sexp.List) bool {
	f := l.Get("fill")
	if f == nil {
		return false
	}
	t := f.Get("type")
	if t == nil {
		return false
	}
	switch t.Text(1) {
	case "background", "outline":
		return true
	}
	return false
}
