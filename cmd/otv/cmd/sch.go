package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceView/internal/ui"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/schematic"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/theme"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/view"
)

var schCmd = &cobra.Command{
	Use:   "sch",
	Short: "KiCad schematic file operations",
	Long:  `Commands for working with KiCad schematic files (.kicad_sch)`,
}

var schViewCmd = &cobra.Command{
	Use:   "view <schematic_file>",
	Short: "View schematic in interactive viewer",
	Long: `Opens a schematic sheet in an interactive Gio-based viewer.

Controls:
  Drag              - Pan
  Scroll Wheel      - Zoom at cursor
  Left Click        - Select item under cursor
  F                 - Fit sheet to window
  Ctrl+L            - Reload file
  Q / Escape        - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runSchView,
}

var schInfoCmd = &cobra.Command{
	Use:   "info <schematic_file>",
	Short: "Show schematic information",
	Long:  `Display a summary of a KiCad schematic file.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSchInfo,
}

func init() {
	rootCmd.AddCommand(schCmd)
	schCmd.AddCommand(schViewCmd)
	schCmd.AddCommand(schInfoCmd)
}

func runSchView(cmd *cobra.Command, args []string) error {
	filename := args[0]

	sch, err := schematic.ParseFile(filename)
	if err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}
	printSchSummary(sch, filename)

	th, err := resolveTheme(theme.SchematicLight())
	if err != nil {
		return err
	}

	load := func() (*ui.Scene, error) {
		sch, err := schematic.ParseFile(filename)
		if err != nil {
			return nil, err
		}
		return &ui.Scene{
			Doc:     sch,
			Layers:  schematic.BuildLayerSet(th),
			Painter: schematic.NewDocumentPainter(schematic.Options{Theme: th}),
			Bounds:  sch.BBox(),
		}, nil
	}

	return ui.Run(ui.Config{
		Title:      "OpenTraceView - " + filename,
		Background: th.Background,
		Highlight:  th.Label,
		Load:       load,
		Describe:   describeSchItem,
	})
}

func describeSchItem(hit view.Hit) string {
	switch item := hit.Item.(type) {
	case *schematic.Symbol:
		return fmt.Sprintf("%s (%s) %s at (%.2f, %.2f)",
			item.Reference, item.Value, item.LibID, item.At.X, item.At.Y)
	case *schematic.Wire:
		return fmt.Sprintf("wire from (%.2f, %.2f) to (%.2f, %.2f)",
			item.Points[0].X, item.Points[0].Y,
			item.Points[len(item.Points)-1].X, item.Points[len(item.Points)-1].Y)
	case *schematic.Label:
		return fmt.Sprintf("label %q at (%.2f, %.2f)", item.Text, item.At.X, item.At.Y)
	default:
		return fmt.Sprintf("%s on layer %s", hit.Item.ItemKind(), hit.Layer.Name())
	}
}

func runSchInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]
	sch, err := schematic.ParseFile(filename)
	if err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}
	printSchSummary(sch, filename)

	if len(sch.Symbols) == 0 {
		return nil
	}

	// Group references by prefix (R, C, U, ...).
	byPrefix := make(map[string][]string)
	for _, sym := range sch.Symbols {
		prefix := strings.TrimRight(sym.Reference, "0123456789")
		byPrefix[prefix] = append(byPrefix[prefix], sym.Reference)
	}
	prefixes := make([]string, 0, len(byPrefix))
	for p := range byPrefix {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)

	fmt.Println("Components:")
	for _, p := range prefixes {
		refs := byPrefix[p]
		sort.Strings(refs)
		fmt.Printf("  %s (%d): %s\n", p, len(refs), strings.Join(refs, ", "))
	}
	return nil
}

func printSchSummary(sch *schematic.Schematic, filename string) {
	fmt.Printf("Schematic: %s\n", filename)
	fmt.Printf("  Version: %d\n", sch.Version)
	fmt.Printf("  Generator: %s\n", sch.Generator)
	if sch.Title != "" {
		fmt.Printf("  Title: %s\n", sch.Title)
	}
	fmt.Printf("  Components: %d\n", len(sch.Symbols))
	fmt.Printf("  Library symbols: %d\n", len(sch.LibSymbols))
	fmt.Printf("  Wires: %d\n", len(sch.Wires))
	fmt.Printf("  Buses: %d\n", len(sch.Buses))
	fmt.Printf("  Junctions: %d\n", len(sch.Junctions))
	fmt.Printf("  Labels: %d\n", len(sch.Labels))
	fmt.Printf("  No-connects: %d\n", len(sch.NoConnects))
}
