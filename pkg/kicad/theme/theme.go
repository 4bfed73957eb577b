// Package theme holds the color palettes painters draw with.
package theme

import "image/color"

// Theme is one named palette. Painters resolve layer colors through
// ColorFor; the special colors cover items that are not tied to a
// single board layer.
type Theme struct {
	Name string

	Background color.NRGBA
	Substrate  color.NRGBA

	// Board specials.
	Pad       color.NRGBA
	Via       color.NRGBA
	ViaDrill  color.NRGBA
	Drill     color.NRGBA
	Highlight color.NRGBA

	// Schematic specials.
	Wire          color.NRGBA
	Bus           color.NRGBA
	Junction      color.NRGBA
	Label         color.NRGBA
	SymbolOutline color.NRGBA
	SymbolFill    color.NRGBA
	NoConnect     color.NRGBA

	layers map[string]color.NRGBA
}

// ColorFor resolves a layer name. Unknown layers get opaque white so a
// missing palette entry is visible rather than invisible.
func (t *Theme) ColorFor(layer string) color.NRGBA {
	if c, ok := t.layers[layer]; ok {
		return c
	}
	return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
}

// Has reports whether the palette defines the layer.
func (t *Theme) Has(layer string) bool {
	_, ok := t.layers[layer]
	return ok
}

// ByName resolves a registered theme.
func ByName(name string) (*Theme, bool) {
	switch name {
	case "classic":
		return Classic(), true
	case "kicad2020":
		return KiCad2020(), true
	case "schematic-light":
		return SchematicLight(), true
	case "schematic-dark":
		return SchematicDark(), true
	}
	return nil, false
}

// Names lists the registered theme names.
func Names() []string {
	return []string{"classic", "kicad2020", "schematic-light", "schematic-dark"}
}

var boardSpecials = struct {
	pad, via, viaDrill, drill, highlight color.NRGBA
}{
	pad:       color.NRGBA{R: 227, G: 183, B: 46, A: 255},
	via:       color.NRGBA{R: 236, G: 236, B: 236, A: 255},
	viaDrill:  color.NRGBA{R: 227, G: 183, B: 46, A: 255},
	drill:     color.NRGBA{R: 227, G: 183, B: 46, A: 255},
	highlight: color.NRGBA{R: 255, G: 255, B: 0, A: 255},
}

// Classic is the traditional KiCad board palette.
func Classic() *Theme {
	return &Theme{
		Name:       "classic",
		Background: color.NRGBA{R: 0, G: 16, B: 35, A: 255},
		Substrate:  color.NRGBA{R: 20, G: 90, B: 50, A: 255},
		Pad:        boardSpecials.pad,
		Via:        boardSpecials.via,
		ViaDrill:   boardSpecials.viaDrill,
		Drill:      boardSpecials.drill,
		Highlight:  boardSpecials.highlight,
		layers: map[string]color.NRGBA{
			"F.Cu":   {R: 200, G: 52, B: 52, A: 255},
			"B.Cu":   {R: 77, G: 127, B: 196, A: 255},
			"In1.Cu": {R: 127, G: 200, B: 127, A: 255},
			"In2.Cu": {R: 206, G: 125, B: 44, A: 255},

			"F.SilkS": {R: 242, G: 237, B: 161, A: 255},
			"B.SilkS": {R: 232, G: 178, B: 167, A: 255},

			"F.Mask": {R: 216, G: 100, B: 255, A: 102},
			"B.Mask": {R: 2, G: 255, B: 238, A: 102},

			"F.Paste": {R: 180, G: 160, B: 154, A: 230},
			"B.Paste": {R: 0, G: 194, B: 194, A: 230},

			"F.Fab": {R: 175, G: 175, B: 175, A: 255},
			"B.Fab": {R: 88, G: 93, B: 132, A: 255},

			"F.CrtYd": {R: 255, G: 38, B: 226, A: 255},
			"B.CrtYd": {R: 38, G: 233, B: 255, A: 255},

			"F.Adhes": {R: 132, G: 0, B: 132, A: 255},
			"B.Adhes": {R: 0, G: 0, B: 132, A: 255},

			"Dwgs.User": {R: 194, G: 194, B: 194, A: 255},
			"Cmts.User": {R: 89, G: 148, B: 220, A: 255},
			"Eco1.User": {R: 180, G: 219, B: 210, A: 255},
			"Eco2.User": {R: 216, G: 200, B: 82, A: 255},
			"Edge.Cuts": {R: 208, G: 210, B: 205, A: 255},
			"Margin":    {R: 255, G: 38, B: 226, A: 255},
		},
	}
}

// KiCad2020 is the modern higher-contrast board palette.
func KiCad2020() *Theme {
	return &Theme{
		Name:       "kicad2020",
		Background: color.NRGBA{R: 0, G: 16, B: 35, A: 255},
		Substrate:  color.NRGBA{R: 25, G: 95, B: 55, A: 255},
		Pad:        boardSpecials.pad,
		Via:        boardSpecials.via,
		ViaDrill:   boardSpecials.viaDrill,
		Drill:      boardSpecials.drill,
		Highlight:  boardSpecials.highlight,
		layers: map[string]color.NRGBA{
			"F.Cu":      {R: 179, G: 31, B: 31, A: 255},
			"B.Cu":      {R: 12, G: 98, B: 179, A: 255},
			"In1.Cu":    {R: 194, G: 194, B: 0, A: 255},
			"In2.Cu":    {R: 194, G: 0, B: 194, A: 255},
			"F.SilkS":   {R: 242, G: 237, B: 161, A: 255},
			"B.SilkS":   {R: 232, G: 178, B: 167, A: 255},
			"F.Mask":    {R: 132, G: 0, B: 132, A: 102},
			"B.Mask":    {R: 2, G: 132, B: 132, A: 102},
			"Edge.Cuts": {R: 255, G: 255, B: 0, A: 255},
			"F.CrtYd":   {R: 255, G: 0, B: 255, A: 255},
			"B.CrtYd":   {R: 0, G: 255, B: 255, A: 255},
			"F.Fab":     {R: 128, G: 128, B: 128, A: 255},
			"B.Fab":     {R: 64, G: 64, B: 128, A: 255},
			"Dwgs.User": {R: 255, G: 255, B: 255, A: 255},
			"Cmts.User": {R: 0, G: 150, B: 255, A: 255},
			"Eco1.User": {R: 0, G: 255, B: 0, A: 255},
			"Eco2.User": {R: 255, G: 255, B: 0, A: 255},
		},
	}
}

// SchematicLight is the white-sheet schematic palette.
func SchematicLight() *Theme {
	return &Theme{
		Name:          "schematic-light",
		Background:    color.NRGBA{R: 245, G: 244, B: 239, A: 255},
		Wire:          color.NRGBA{R: 0, G: 132, B: 0, A: 255},
		Bus:           color.NRGBA{R: 0, G: 0, B: 132, A: 255},
		Junction:      color.NRGBA{R: 0, G: 132, B: 0, A: 255},
		Label:         color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		SymbolOutline: color.NRGBA{R: 132, G: 0, B: 0, A: 255},
		SymbolFill:    color.NRGBA{R: 255, G: 255, B: 194, A: 255},
		NoConnect:     color.NRGBA{R: 0, G: 0, B: 132, A: 255},
		layers:        map[string]color.NRGBA{},
	}
}

// SchematicDark is the dark schematic palette.
func SchematicDark() *Theme {
	return &Theme{
		Name:          "schematic-dark",
		Background:    color.NRGBA{R: 30, G: 30, B: 32, A: 255},
		Wire:          color.NRGBA{R: 98, G: 217, B: 98, A: 255},
		Bus:           color.NRGBA{R: 129, G: 161, B: 193, A: 255},
		Junction:      color.NRGBA{R: 98, G: 217, B: 98, A: 255},
		Label:         color.NRGBA{R: 236, G: 239, B: 244, A: 255},
		SymbolOutline: color.NRGBA{R: 235, G: 110, B: 110, A: 255},
		SymbolFill:    color.NRGBA{R: 50, G: 50, B: 54, A: 255},
		NoConnect:     color.NRGBA{R: 129, G: 161, B: 193, A: 255},
		layers:        map[string]color.NRGBA{},
	}
}
