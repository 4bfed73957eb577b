// Package paint dispatches document items to the painters that know how
// to draw them. A DocumentPainter owns a kind-to-painter registry and
// drives the two-pass paint: assign every item to its named layers, then
// paint each layer into one committed render layer.
package paint

import (
	"iter"

	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/geom"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/graphics"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/logging"
)

// Kind discriminates item types without reflection.
type Kind string

// Item is anything a painter can draw.
type Item interface {
	ItemKind() Kind
}

// Document yields the items to paint, in document order.
type Document interface {
	Items() iter.Seq[Item]
}

// ItemPainter draws one family of item kinds.
type ItemPainter interface {
	// Kinds lists the item kinds this painter claims.
	Kinds() []Kind

	// LayersFor names the layers the item appears on.
	LayersFor(item Item) []string

	// Paint draws the item's contribution to one named layer.
	Paint(r graphics.Renderer, layerName string, item Item)
}

// Layer is the slot a painted layer accumulates into. view.ViewLayer
// implements it.
type Layer interface {
	Name() string
	AddItem(item Item)
	Items() []Item
	RecordBBox(item Item, bb geom.BBox)
	SetGraphics(layer graphics.RenderLayer)
}

// LayerSet resolves named layers and orders them for painting.
type LayerSet interface {
	// ByName returns the named layer, or nil if the set has no such slot.
	ByName(name string) Layer

	// InDisplayOrder yields layers back to front, the order they are
	// painted in.
	InDisplayOrder() iter.Seq[Layer]
}

// DocumentPainter routes items to painters by kind.
type DocumentPainter struct {
	painters map[Kind]ItemPainter
}

// NewDocumentPainter builds the kind registry. A later painter claiming
// an already-registered kind wins.
func NewDocumentPainter(painters ...ItemPainter) *DocumentPainter {
	registry := make(map[Kind]ItemPainter)
	for _, p := range painters {
		for _, k := range p.Kinds() {
			registry[k] = p
		}
	}
	return &DocumentPainter{painters: registry}
}

// PainterFor returns the painter registered for the item's kind, or nil.
func (dp *DocumentPainter) PainterFor(item Item) ItemPainter {
	return dp.painters[item.ItemKind()]
}

// LayersFor names the layers the item appears on. Items with no
// registered painter appear on no layers.
func (dp *DocumentPainter) LayersFor(item Item) []string {
	p := dp.PainterFor(item)
	if p == nil {
		return nil
	}
	return p.LayersFor(item)
}

// PaintItem draws one item onto one named layer.
func (dp *DocumentPainter) PaintItem(r graphics.Renderer, layerName string, item Item) {
	p := dp.PainterFor(item)
	if p == nil {
		logging.Logger().Warn("no painter for item", "kind", item.ItemKind())
		return
	}
	p.Paint(r, layerName, item)
}

// PaintDocument assigns every document item to its layers, then paints
// each layer into a committed render layer attached to the slot. Each
// item is painted inside its own bbox scope so the slot can answer
// hit queries afterwards.
func (dp *DocumentPainter) PaintDocument(r graphics.Renderer, doc Document, layers LayerSet) {
	for item := range doc.Items() {
		p := dp.PainterFor(item)
		if p == nil {
			logging.Logger().Warn("no painter for item", "kind", item.ItemKind())
			continue
		}
		for _, name := range p.LayersFor(item) {
			layer := layers.ByName(name)
			if layer == nil {
				logging.Logger().Warn("item targets unknown layer",
					"kind", item.ItemKind(), "layer", name)
				continue
			}
			layer.AddItem(item)
		}
	}

	for layer := range layers.InDisplayOrder() {
		r.StartLayer(layer.Name())
		for _, item := range layer.Items() {
			r.StartBBox()
			dp.PaintItem(r, layer.Name(), item)
			bb := r.EndBBox(item)
			if bb.Valid() {
				layer.RecordBBox(item, bb)
			}
		}
		layer.SetGraphics(r.EndLayer())
	}
}
