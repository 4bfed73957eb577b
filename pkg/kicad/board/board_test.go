package board

import (
	"math"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/geom"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/graphics/vector"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/theme"
)

const sampleBoard = `(kicad_pcb (version 20221018) (generator pcbnew)
  (general (thickness 1.6))
  (layers
    (0 "F.Cu" signal)
    (31 "B.Cu" signal)
    (37 "F.SilkS" user)
    (44 "Edge.Cuts" user)
  )
  (net 0 "")
  (net 1 "GND")
  (net 2 "/SWDIO")
  (footprint "Resistor_SMD:R_0402" (layer "F.Cu") (at 10 10 90)
    (property "Reference" "R1")
    (property "Value" "10k")
    (fp_line (start -1 0) (end 1 0) (stroke (width 0.12) (type solid)) (layer "F.SilkS"))
    (pad "1" smd rect (at -0.5 0) (size 0.6 0.5) (layers "F.Cu" "F.Mask") (net 1))
    (pad "2" smd rect (at 0.5 0) (size 0.6 0.5) (layers "F.Cu" "F.Mask") (net 2))
  )
  (segment (start 0 0) (end 10 0) (width 0.25) (layer "F.Cu") (net 1))
  (segment (start 0 5) (end 10 5) (width 0.25) (layer "F.Cu") (net 2))
  (via (at 10 0) (size 0.8) (drill 0.4) (layers "F.Cu" "B.Cu") (net 1))
  (zone (net 1) (net_name "GND") (layer "B.Cu")
    (filled_polygon (layer "B.Cu") (pts (xy 0 0) (xy 20 0) (xy 20 20) (xy 0 20)))
  )
  (gr_line (start 0 -2) (end 20 -2) (stroke (width 0.1)) (layer "Edge.Cuts"))
  (gr_text "Rev A" (at 5 5) (layer "F.SilkS") (effects (font (size 1 1))))
)`

type nullDevice struct{}

func (nullDevice) DrawStroke(geom.Matrix3, []float32, []float32, []float32) {}
func (nullDevice) DrawTriangles(geom.Matrix3, []float32, []float32)         {}

func parseSample(t *testing.T) *Board {
	t.Helper()
	b, err := Parse(strings.NewReader(sampleBoard))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return b
}

func TestParseBoard(t *testing.T) {
	b := parseSample(t)

	if b.Version != 20221018 {
		t.Fatalf("version = %d", b.Version)
	}
	if b.Thickness != 1.6 {
		t.Fatalf("thickness = %v", b.Thickness)
	}
	if len(b.Layers) != 4 || b.Layers[1].Name != "B.Cu" || b.Layers[1].Number != 31 {
		t.Fatalf("layers = %+v", b.Layers)
	}
	if b.NetName(1) != "GND" || b.NetName(2) != "/SWDIO" || b.NetName(9) != "" {
		t.Fatal("net lookup broken")
	}
	if len(b.Tracks) != 2 || b.Tracks[0].Width != 0.25 {
		t.Fatalf("tracks = %+v", b.Tracks)
	}
	if len(b.Vias) != 1 || b.Vias[0].Drill != 0.4 || len(b.Vias[0].Layers) != 2 {
		t.Fatalf("vias = %+v", b.Vias[0])
	}
	if len(b.Zones) != 1 || len(b.Zones[0].Fills[0]) != 4 {
		t.Fatalf("zones = %+v", b.Zones)
	}
	if len(b.Graphics) != 2 {
		t.Fatalf("got %d board graphics, want 2", len(b.Graphics))
	}

	fp := b.Footprints[0]
	if fp.Reference != "R1" || fp.Value != "10k" {
		t.Fatalf("footprint identity = %q/%q", fp.Reference, fp.Value)
	}
	if !fp.Angle.Equal(geom.Degrees(90)) {
		t.Fatalf("footprint angle = %v", fp.Angle.Degrees())
	}
	if len(fp.Pads) != 2 || fp.Pads[0].Shape != "rect" || fp.Pads[0].Net != 1 {
		t.Fatalf("pads = %+v", fp.Pads[0])
	}
	if len(fp.Graphics) != 1 {
		t.Fatalf("got %d footprint graphics, want 1", len(fp.Graphics))
	}
}

func TestParseRejectsNonBoard(t *testing.T) {
	if _, err := Parse(strings.NewReader(`(kicad_sch (version 1))`)); err == nil {
		t.Fatal("expected an error for a non-board document")
	}
}

func TestPaintPipeline(t *testing.T) {
	b := parseSample(t)
	th := theme.Classic()
	layers := BuildLayerSet(b, th)
	dp := NewDocumentPainter(b, Options{Theme: th})

	r := vector.NewRenderer(nullDevice{})
	dp.PaintDocument(r, b, layers)

	front := layers.Get("F.Cu")
	if front == nil {
		t.Fatal("F.Cu slot missing")
	}
	// Two tracks and the footprint land on front copper.
	if got := len(front.Items()); got != 3 {
		t.Fatalf("front copper holds %d items, want 3", got)
	}
	if front.Graphics() == nil {
		t.Fatal("front copper not committed")
	}
	if layers.Get(LayerVias) == nil || len(layers.Get(LayerVias).Items()) != 1 {
		t.Fatal("via slot not populated")
	}

	// The via slot is in front of copper, so the via wins at its center.
	hit, ok := layers.QueryPoint(geom.Vec2{X: 10, Y: 0})
	if !ok {
		t.Fatal("expected a hit at the via")
	}
	if _, isVia := hit.Item.(*Via); !isVia {
		t.Fatalf("hit %T, want *Via", hit.Item)
	}

	hit, ok = layers.QueryPoint(geom.Vec2{X: 5, Y: 0})
	if !ok {
		t.Fatal("expected a hit on the track")
	}
	if tr, isTrack := hit.Item.(*Track); !isTrack || tr.Net != 1 {
		t.Fatalf("hit %T, want the GND track", hit.Item)
	}

	if _, ok := layers.QueryPoint(geom.Vec2{X: 100, Y: 100}); ok {
		t.Fatal("hit in empty space")
	}
}

func TestFootprintTransformPlacesPads(t *testing.T) {
	b := parseSample(t)
	th := theme.Classic()
	layers := BuildLayerSet(b, th)
	dp := NewDocumentPainter(b, Options{Theme: th})

	r := vector.NewRenderer(nullDevice{})
	dp.PaintDocument(r, b, layers)

	fp := b.Footprints[0]
	bb, ok := layers.Get("F.Cu").BBoxOf(fp)
	if !ok {
		t.Fatal("no bbox recorded for the footprint")
	}
	// Pads at x = ±0.5 in the footprint frame rotate onto the y axis
	// around (10, 10).
	if !bb.ContainsPoint(geom.Vec2{X: 10, Y: 10.5}) || !bb.ContainsPoint(geom.Vec2{X: 10, Y: 9.5}) {
		t.Fatalf("footprint bbox %+v does not cover rotated pads", bb)
	}
	if bb.W > 2 || bb.H > 2 {
		t.Fatalf("footprint bbox %+v is implausibly large", bb)
	}
}

func TestHighlightDimsOtherNets(t *testing.T) {
	b := parseSample(t)
	opts := Options{Theme: theme.Classic(), HighlightNet: "GND"}
	opts.CopperLayers = copperLayers(b)

	base := opts.Theme.ColorFor("F.Cu")
	if got := opts.colorFor(b, base, 1); got != opts.Theme.Highlight {
		t.Fatalf("GND color = %+v, want highlight", got)
	}
	if got := opts.colorFor(b, base, 2); got.A != dimAlpha {
		t.Fatalf("other net alpha = %d, want %d", got.A, dimAlpha)
	}

	opts.HighlightNet = ""
	if got := opts.colorFor(b, base, 2); got != base {
		t.Fatal("no-highlight mode must not alter colors")
	}
}

func TestBoardBBox(t *testing.T) {
	b := parseSample(t)
	bb := b.BBox()
	if !bb.Valid() {
		t.Fatal("board bbox invalid")
	}
	// The zone fill spans (0,0)-(20,20); the edge line sits at y=-2.
	if bb.X2() < 20 || bb.Y2() < 20 {
		t.Fatalf("bbox %+v too small", bb)
	}
	if math.Abs(bb.Y-(-2.05)) > 0.2 {
		t.Fatalf("bbox top %v, want near -2", bb.Y)
	}
}
