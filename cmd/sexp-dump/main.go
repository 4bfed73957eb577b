// sexp-dump is a diagnostic tool for KiCad files. It compares the
// chewxy/sexp generic reader against the project parser, which helps
// narrow down whether a load failure is a lexing problem or a document
// model problem.
package main

import (
	"fmt"
	"os"

	"github.com/chewxy/sexp"

	kicadsexp "github.com/OpenTraceLab/OpenTraceView/pkg/kicad/sexp"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: sexp-dump <kicad_file>")
		os.Exit(1)
	}

	filename := os.Args[1]
	file, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	info, _ := file.Stat()
	fmt.Printf("File size: %d bytes (%.2f MB)\n", info.Size(), float64(info.Size())/1024/1024)

	fmt.Println("\nGeneric reader (chewxy/sexp):")
	sexps, err := sexp.Parse(file)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
	} else {
		fmt.Printf("  Parsed %d s-expressions\n", len(sexps))
		if len(sexps) > 0 && !sexps[0].IsLeaf() {
			fmt.Printf("  Leaf count: %d\n", sexps[0].LeafCount())
		}
	}

	fmt.Println("\nProject parser:")
	parser, err := kicadsexp.NewParser()
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		os.Exit(1)
	}
	doc, err := parser.ParseFile(filename)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  Document head: %s\n", doc.Name())
	fmt.Printf("  Top-level children: %d\n", doc.Len())

	// A shallow histogram of the document's structure.
	counts := make(map[string]int)
	for _, sub := range doc.Lists() {
		counts[sub.Name()]++
	}
	fmt.Println("  Children by head symbol:")
	for name, n := range counts {
		fmt.Printf("    %-20s %d\n", name, n)
	}
}
