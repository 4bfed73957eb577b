package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/logging"
	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/theme"
)

var (
	// Global flags
	verbose   bool
	themeName string
)

var rootCmd = &cobra.Command{
	Use:   "otv",
	Short: "OpenTraceView - KiCad PCB and schematic viewer",
	Long: `OpenTraceView (otv) renders KiCad design files:
  - KiCad PCB file analysis and visualization
  - KiCad schematic file analysis and visualization

Examples:
  otv pcb view board.kicad_pcb          # View PCB file
  otv pcb view board.kicad_pcb --highlight GND
  otv pcb nets board.kicad_pcb          # List board nets
  otv sch view schematic.kicad_sch      # View schematic
  otv sch info schematic.kicad_sch      # Show schematic info`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "",
		"color theme ("+strings.Join(theme.Names(), ", ")+")")
}

// resolveTheme maps the --theme flag to a palette, with a per-command
// default when the flag is unset.
func resolveTheme(fallback *theme.Theme) (*theme.Theme, error) {
	if themeName == "" {
		return fallback, nil
	}
	th, ok := theme.ByName(themeName)
	if !ok {
		return nil, fmt.Errorf("unknown theme %q (have: %s)", themeName, strings.Join(theme.Names(), ", "))
	}
	return th, nil
}
