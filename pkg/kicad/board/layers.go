package board

import (
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/theme"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/view"
)

// displayOrder lists slot names front to back. Copper and vias are the
// interactive depth band; fabrication and user layers sit around it.
var displayOrder = []string{
	"Edge.Cuts",
	LayerVias,
	"F.CrtYd",
	"F.Fab",
	"F.SilkS",
	"F.Paste",
	"F.Mask",
	"F.Adhes",
	"F.Cu",
	"In1.Cu",
	"In2.Cu",
	"In3.Cu",
	"In4.Cu",
	"B.Cu",
	"B.Adhes",
	"B.Mask",
	"B.Paste",
	"B.SilkS",
	"B.Fab",
	"B.CrtYd",
	"Dwgs.User",
	"Cmts.User",
	"Eco1.User",
	"Eco2.User",
	"Margin",
}

func interactive(name string) bool {
	if name == LayerVias {
		return true
	}
	return len(name) > 3 && name[len(name)-3:] == ".Cu"
}

// BuildLayerSet creates the slot stack for a board: every declared
// layer in canonical display order, plus the synthetic via slot.
// Undeclared canonical names are skipped; declared names outside the
// canonical list go behind everything.
func BuildLayerSet(b *Board, th *theme.Theme) *view.LayerSet {
	declared := make(map[string]bool, len(b.Layers)+1)
	for _, l := range b.Layers {
		declared[l.Name] = true
	}
	declared[LayerVias] = true

	set := view.NewLayerSet()
	inOrder := make(map[string]bool, len(displayOrder))
	for _, name := range displayOrder {
		inOrder[name] = true
		if !declared[name] {
			continue
		}
		set.Add(view.NewViewLayer(name, interactive(name), th.ColorFor(name)))
	}
	for _, l := range b.Layers {
		if inOrder[l.Name] {
			continue
		}
		set.Add(view.NewViewLayer(l.Name, interactive(l.Name), th.ColorFor(l.Name)))
	}
	return set
}
