package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceView/internal/ui"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/board"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/theme"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/view"
)

var highlightNet string

var pcbCmd = &cobra.Command{
	Use:   "pcb",
	Short: "KiCad PCB file operations",
	Long:  `Commands for working with KiCad PCB files (.kicad_pcb)`,
}

var pcbViewCmd = &cobra.Command{
	Use:   "view <board_file>",
	Short: "View PCB file in interactive viewer",
	Long: `Opens a PCB file in an interactive Gio-based viewer.

Controls:
  Drag              - Pan
  Scroll Wheel      - Zoom at cursor
  Left Click        - Select item under cursor
  R                 - Rotate 90°
  M                 - Flip board
  F                 - Fit board to window
  Ctrl+L            - Reload file
  Q / Escape        - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runPCBView,
}

var pcbNetsCmd = &cobra.Command{
	Use:   "nets <board_file>",
	Short: "Show PCB net information",
	Long:  `Lists the nets in a PCB file with their track and via counts.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPCBNets,
}

func init() {
	rootCmd.AddCommand(pcbCmd)
	pcbCmd.AddCommand(pcbViewCmd)
	pcbCmd.AddCommand(pcbNetsCmd)
	pcbViewCmd.Flags().StringVar(&highlightNet, "highlight", "", "net name to highlight")
}

func runPCBView(cmd *cobra.Command, args []string) error {
	filename := args[0]

	// Parse once up front so bad files fail before a window opens.
	b, err := board.ParseFile(filename)
	if err != nil {
		return fmt.Errorf("error parsing board: %w", err)
	}
	printBoardSummary(b, filename)

	th, err := resolveTheme(theme.Classic())
	if err != nil {
		return err
	}

	load := func() (*ui.Scene, error) {
		b, err := board.ParseFile(filename)
		if err != nil {
			return nil, err
		}
		painter := board.NewDocumentPainter(b, board.Options{
			Theme:        th,
			HighlightNet: highlightNet,
		})
		return &ui.Scene{
			Doc:     b,
			Layers:  board.BuildLayerSet(b, th),
			Painter: painter,
			Bounds:  b.BBox(),
		}, nil
	}

	return ui.Run(ui.Config{
		Title:      "OpenTraceView - " + filename,
		Background: th.Background,
		Highlight:  th.Highlight,
		InvertY:    true,
		Load:       load,
		Describe:   describeBoardItem,
	})
}

func printBoardSummary(b *board.Board, filename string) {
	fmt.Printf("Loaded board: %s\n", filename)
	fmt.Printf("  Version: %d\n", b.Version)
	fmt.Printf("  Generator: %s\n", b.Generator)
	fmt.Printf("  Layers: %d\n", len(b.Layers))
	fmt.Printf("  Nets: %d\n", len(b.Nets))
	fmt.Printf("  Footprints: %d\n", len(b.Footprints))
	fmt.Printf("  Tracks: %d\n", len(b.Tracks))
	fmt.Printf("  Vias: %d\n", len(b.Vias))
	fmt.Printf("  Zones: %d\n", len(b.Zones))

	bb := b.BBox()
	if bb.Valid() {
		fmt.Printf("  Board size: %.2f x %.2f mm\n", bb.W, bb.H)
		fmt.Printf("  Board center: (%.2f, %.2f) mm\n", bb.Center().X, bb.Center().Y)
	}
}

func describeBoardItem(hit view.Hit) string {
	switch item := hit.Item.(type) {
	case *board.Track:
		return fmt.Sprintf("track on %s: %.2f mm wide from (%.2f, %.2f) to (%.2f, %.2f)",
			item.Layer, item.Width, item.Start.X, item.Start.Y, item.End.X, item.End.Y)
	case *board.Via:
		return fmt.Sprintf("via at (%.2f, %.2f): %.2f mm diameter, %.2f mm drill",
			item.At.X, item.At.Y, item.Size, item.Drill)
	case *board.Footprint:
		return fmt.Sprintf("%s (%s) at (%.2f, %.2f) on %s",
			item.Reference, item.Value, item.At.X, item.At.Y, item.Layer)
	case *board.Zone:
		return fmt.Sprintf("zone %q on %s", item.Name, item.Layer)
	default:
		return fmt.Sprintf("%s on layer %s", hit.Item.ItemKind(), hit.Layer.Name())
	}
}

func runPCBNets(cmd *cobra.Command, args []string) error {
	b, err := board.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("error parsing board: %w", err)
	}

	tracks := make(map[int]int)
	vias := make(map[int]int)
	pads := make(map[int]int)
	for _, t := range b.Tracks {
		tracks[t.Net]++
	}
	for _, v := range b.Vias {
		vias[v.Net]++
	}
	for _, fp := range b.Footprints {
		for _, p := range fp.Pads {
			pads[p.Net]++
		}
	}

	nets := make([]board.Net, len(b.Nets))
	copy(nets, b.Nets)
	sort.Slice(nets, func(i, j int) bool { return nets[i].Name < nets[j].Name })

	fmt.Printf("Board: %d nets\n\n", len(nets))
	fmt.Printf("%-30s %6s %6s %6s\n", "Net Name", "Pads", "Tracks", "Vias")
	fmt.Println("─────────────────────────────────────────────────────────")
	for _, n := range nets {
		name := n.Name
		if name == "" {
			name = "<unconnected>"
		}
		fmt.Printf("%-30s %6d %6d %6d\n", name, pads[n.Number], tracks[n.Number], vias[n.Number])
	}
	return nil
}
