package schematic

import (
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/geom"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/graphics/vector"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/theme"
)

const sampleSheet = `(kicad_sch (version 20230121) (generator eeschema)
  (title_block (title "Power supply"))
  (lib_symbols
    (symbol "Device:R"
      (symbol "R_0_1"
        (rectangle (start -1.016 -2.54) (end 1.016 2.54)
          (stroke (width 0.254)) (fill (type background)))
      )
      (symbol "R_1_1"
        (pin passive line (at 0 3.81 270) (length 1.27))
        (pin passive line (at 0 -3.81 90) (length 1.27))
      )
    )
  )
  (junction (at 100 50) (diameter 0.9144))
  (no_connect (at 110 50))
  (wire (pts (xy 90 50) (xy 100 50)) (stroke (width 0)))
  (wire (pts (xy 100 50) (xy 100 60)))
  (bus (pts (xy 80 40) (xy 80 70)) (stroke (width 0.3048)))
  (label "VCC" (at 95 50 0) (effects (font (size 1.27 1.27))))
  (global_label "MCU_RST" (at 100 60 180))
  (text "fit before flight" (at 120 80 0))
  (symbol (lib_id "Device:R") (at 100 55 90)
    (property "Reference" "R1" (at 0 0 0))
    (property "Value" "4.7k" (at 0 0 0))
  )
)`

func parseSheet(t *testing.T) *Schematic {
	t.Helper()
	s, err := Parse(strings.NewReader(sampleSheet))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return s
}

func TestParseSheet(t *testing.T) {
	s := parseSheet(t)

	if s.Title != "Power supply" {
		t.Fatalf("title = %q", s.Title)
	}
	if len(s.Wires) != 2 || len(s.Buses) != 1 {
		t.Fatalf("wires/buses = %d/%d", len(s.Wires), len(s.Buses))
	}
	if s.Wires[0].Points[1] != (geom.Vec2{X: 100, Y: 50}) {
		t.Fatalf("wire end = %v", s.Wires[0].Points[1])
	}
	if len(s.Junctions) != 1 || s.Junctions[0].Diameter != 0.9144 {
		t.Fatalf("junctions = %+v", s.Junctions)
	}
	if len(s.Labels) != 2 {
		t.Fatalf("labels = %d, want 2", len(s.Labels))
	}
	if s.Labels[1].Kind != LabelGlobal {
		t.Fatal("global label kind lost")
	}

	lib, ok := s.LibSymbols["Device:R"]
	if !ok {
		t.Fatal("lib symbol not indexed")
	}
	if len(lib.Graphics) != 1 || lib.Graphics[0].Kind != "rectangle" || !lib.Graphics[0].Fill {
		t.Fatalf("lib body = %+v", lib.Graphics)
	}
	if len(lib.Pins) != 2 || lib.Pins[0].Length != 1.27 {
		t.Fatalf("lib pins = %+v", lib.Pins)
	}

	sym := s.Symbols[0]
	if sym.Reference != "R1" || sym.Value != "4.7k" {
		t.Fatalf("symbol identity = %q/%q", sym.Reference, sym.Value)
	}
	if sym.Lib != lib {
		t.Fatal("instance not linked to its library body")
	}
}

func TestParseRejectsNonSchematic(t *testing.T) {
	if _, err := Parse(strings.NewReader(`(kicad_pcb (version 1))`)); err == nil {
		t.Fatal("expected an error for a non-schematic document")
	}
}

type nullDevice struct{}

func (nullDevice) DrawStroke(geom.Matrix3, []float32, []float32, []float32) {}
func (nullDevice) DrawTriangles(geom.Matrix3, []float32, []float32)         {}

func TestPaintSheet(t *testing.T) {
	s := parseSheet(t)
	th := theme.SchematicLight()
	layers := BuildLayerSet(th)
	dp := NewDocumentPainter(Options{Theme: th})

	r := vector.NewRenderer(nullDevice{})
	dp.PaintDocument(r, s, layers)

	if got := len(layers.Get(LayerWires).Items()); got != 2 {
		t.Fatalf("wire slot holds %d items, want 2", got)
	}
	if layers.Get(LayerSymbols).Graphics() == nil {
		t.Fatal("symbol slot not committed")
	}

	// The junction dot sits at (100, 50).
	hit, ok := layers.QueryPoint(geom.Vec2{X: 100, Y: 50})
	if !ok {
		t.Fatal("expected a hit at the junction")
	}
	// Junction slot is not interactive, so the wire underneath wins.
	if _, isWire := hit.Item.(*Wire); !isWire {
		t.Fatalf("hit %T, want *Wire", hit.Item)
	}

	// Symbol body: rectangle x in [-1.016, 1.016], y in [-2.54, 2.54],
	// rotated 90 degrees about (100, 55).
	hit, ok = layers.QueryPoint(geom.Vec2{X: 102, Y: 55})
	if !ok {
		t.Fatal("expected a hit on the symbol body")
	}
	if _, isSym := hit.Item.(*Symbol); !isSym {
		t.Fatalf("hit %T, want *Symbol", hit.Item)
	}
}

func TestSheetBBox(t *testing.T) {
	s := parseSheet(t)
	bb := s.BBox()
	if !bb.Valid() {
		t.Fatal("sheet bbox invalid")
	}
	if !bb.ContainsPoint(geom.Vec2{X: 80, Y: 40}) || !bb.ContainsPoint(geom.Vec2{X: 100, Y: 60}) {
		t.Fatalf("bbox %+v misses sheet content", bb)
	}
}
