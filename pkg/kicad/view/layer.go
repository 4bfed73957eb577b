// Package view holds the ordered layer slots a painted document lives
// in: each ViewLayer pairs a committed render layer with the items that
// produced it and their hit-test boxes.
package view

import (
	"image/color"
	"iter"

	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/geom"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/graphics"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/paint"
)

// ViewLayer is one named depth slot.
type ViewLayer struct {
	name string

	// Color tints the layer in the UI layer list.
	Color color.NRGBA

	// Visible gates rendering and hit-testing. Nil means always visible.
	Visible func() bool

	// Interactive layers participate in point queries.
	Interactive bool

	items    []paint.Item
	bboxes   map[paint.Item]geom.BBox
	graphics graphics.RenderLayer
}

var _ paint.Layer = (*ViewLayer)(nil)

// NewViewLayer creates an empty slot.
func NewViewLayer(name string, interactive bool, c color.NRGBA) *ViewLayer {
	return &ViewLayer{
		name:        name,
		Color:       c,
		Interactive: interactive,
		bboxes:      make(map[paint.Item]geom.BBox),
	}
}

// Name returns the slot name.
func (l *ViewLayer) Name() string {
	return l.name
}

// IsVisible evaluates the visibility predicate.
func (l *ViewLayer) IsVisible() bool {
	return l.Visible == nil || l.Visible()
}

// AddItem appends an item to the slot in paint order.
func (l *ViewLayer) AddItem(item paint.Item) {
	l.items = append(l.items, item)
}

// Items returns the layer's items in insertion order.
func (l *ViewLayer) Items() []paint.Item {
	return l.items
}

// RecordBBox stores the item's painted extent for hit queries.
func (l *ViewLayer) RecordBBox(item paint.Item, bb geom.BBox) {
	l.bboxes[item] = bb
}

// BBoxOf returns the recorded extent of an item on this layer.
func (l *ViewLayer) BBoxOf(item paint.Item) (geom.BBox, bool) {
	bb, ok := l.bboxes[item]
	return bb, ok
}

// SetGraphics attaches the committed render layer, disposing any
// previous commit.
func (l *ViewLayer) SetGraphics(g graphics.RenderLayer) {
	if l.graphics != nil {
		l.graphics.Dispose()
	}
	l.graphics = g
}

// Graphics returns the committed render layer, or nil before painting.
func (l *ViewLayer) Graphics() graphics.RenderLayer {
	return l.graphics
}

// Clear empties the slot and disposes its committed graphics.
func (l *ViewLayer) Clear() {
	l.items = nil
	l.bboxes = make(map[paint.Item]geom.BBox)
	if l.graphics != nil {
		l.graphics.Dispose()
		l.graphics = nil
	}
}

// LayerSet is an ordered collection of slots, declared front to back.
type LayerSet struct {
	layers []*ViewLayer
	byName map[string]*ViewLayer
}

var _ paint.LayerSet = (*LayerSet)(nil)

// NewLayerSet builds a set from slots listed front to back.
func NewLayerSet(layers ...*ViewLayer) *LayerSet {
	s := &LayerSet{byName: make(map[string]*ViewLayer)}
	for _, l := range layers {
		s.Add(l)
	}
	return s
}

// Add appends a slot behind the existing ones.
func (s *LayerSet) Add(l *ViewLayer) {
	s.layers = append(s.layers, l)
	s.byName[l.name] = l
}

// Len returns the number of slots.
func (s *LayerSet) Len() int {
	return len(s.layers)
}

// Get returns the named slot, or nil.
func (s *LayerSet) Get(name string) *ViewLayer {
	return s.byName[name]
}

// ByName resolves a slot for the painter. Missing names yield nil.
func (s *LayerSet) ByName(name string) paint.Layer {
	if l, ok := s.byName[name]; ok {
		return l
	}
	return nil
}

// InOrder yields slots front to back.
func (s *LayerSet) InOrder() iter.Seq[*ViewLayer] {
	return func(yield func(*ViewLayer) bool) {
		for _, l := range s.layers {
			if !yield(l) {
				return
			}
		}
	}
}

// InDisplayOrder yields slots back to front, the order they are painted
// in so front slots draw on top.
func (s *LayerSet) InDisplayOrder() iter.Seq[paint.Layer] {
	return func(yield func(paint.Layer) bool) {
		for i := len(s.layers) - 1; i >= 0; i-- {
			if !yield(s.layers[i]) {
				return
			}
		}
	}
}

// Visible yields visible slots front to back.
func (s *LayerSet) Visible() iter.Seq[*ViewLayer] {
	return func(yield func(*ViewLayer) bool) {
		for _, l := range s.layers {
			if !l.IsVisible() {
				continue
			}
			if !yield(l) {
				return
			}
		}
	}
}

// Clear empties every slot.
func (s *LayerSet) Clear() {
	for _, l := range s.layers {
		l.Clear()
	}
}

// Dispose releases every slot's committed graphics.
func (s *LayerSet) Dispose() {
	s.Clear()
}

// Hit is one point-query result.
type Hit struct {
	Item  paint.Item
	Layer *ViewLayer
	BBox  geom.BBox
}

// QueryPoint returns the frontmost interactive item whose painted bbox
// contains the point. Within a layer, the earliest-painted match wins.
func (s *LayerSet) QueryPoint(p geom.Vec2) (Hit, bool) {
	for _, l := range s.layers {
		if !l.Interactive || !l.IsVisible() {
			continue
		}
		for _, item := range l.items {
			bb, ok := l.bboxes[item]
			if ok && bb.ContainsPoint(p) {
				return Hit{Item: item, Layer: l, BBox: bb}, true
			}
		}
	}
	return Hit{}, false
}

// QueryPointAll returns every interactive item whose painted bbox
// contains the point, front to back.
func (s *LayerSet) QueryPointAll(p geom.Vec2) []Hit {
	var hits []Hit
	for _, l := range s.layers {
		if !l.Interactive || !l.IsVisible() {
			continue
		}
		for _, item := range l.items {
			bb, ok := l.bboxes[item]
			if ok && bb.ContainsPoint(p) {
				hits = append(hits, Hit{Item: item, Layer: l, BBox: bb})
			}
		}
	}
	return hits
}
