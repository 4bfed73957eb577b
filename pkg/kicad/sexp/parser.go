// Package sexp parses the s-expression syntax KiCAD writes its board
// and schematic files in, and gives callers typed access to the tree.
package sexp

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

// Node is one value in a list: a quoted string, a number, a bare
// symbol, or a nested list.
type Node struct {
	Str    *string  `parser:"  @String"`
	Number *float64 `parser:"| @Number"`
	Symbol *string  `parser:"| @Symbol"`
	List   *List    `parser:"| @@"`
}

// List is a parenthesized sequence of nodes. KiCAD lists start with a
// symbol naming the form, e.g. (via (at 12.7 25.4) (size 0.8)).
type List struct {
	Nodes []*Node `parser:"'(' @@* ')'"`
}

// Parser parses s-expression documents.
type Parser struct {
	parser *participle.Parser[List]
}

// NewParser builds the grammar.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[List](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace"),
		participle.Unquote("String"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	return &Parser{parser: parser}, nil
}

// Parse parses one document from a reader.
func (p *Parser) Parse(r io.Reader) (*List, error) {
	doc, err := p.parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return doc, nil
}

// ParseString parses one document from a string.
func (p *Parser) ParseString(input string) (*List, error) {
	doc, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return doc, nil
}

// ParseFile parses one document from a file path.
func (p *Parser) ParseFile(filename string) (*List, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}

// Name returns the list's head symbol, or "" for anonymous lists such
// as coordinate pair groups.
func (l *List) Name() string {
	if len(l.Nodes) == 0 || l.Nodes[0].Symbol == nil {
		return ""
	}
	return *l.Nodes[0].Symbol
}

// Len returns the number of nodes including the head.
func (l *List) Len() int {
	return len(l.Nodes)
}

// At returns the i-th node, or nil when out of range.
func (l *List) At(i int) *Node {
	if i < 0 || i >= len(l.Nodes) {
		return nil
	}
	return l.Nodes[i]
}

// Get returns the first child list with the given head symbol.
func (l *List) Get(name string) *List {
	for _, n := range l.Nodes {
		if n.List != nil && n.List.Name() == name {
			return n.List
		}
	}
	return nil
}

// GetAll returns every child list with the given head symbol, in file
// order.
func (l *List) GetAll(name string) []*List {
	var out []*List
	for _, n := range l.Nodes {
		if n.List != nil && n.List.Name() == name {
			out = append(out, n.List)
		}
	}
	return out
}

// Lists returns every child list regardless of head symbol.
func (l *List) Lists() []*List {
	var out []*List
	for _, n := range l.Nodes {
		if n.List != nil {
			out = append(out, n.List)
		}
	}
	return out
}

// Float returns the i-th node as a number, or 0 when absent or not
// numeric.
func (l *List) Float(i int) float64 {
	n := l.At(i)
	if n == nil || n.Number == nil {
		return 0
	}
	return *n.Number
}

// Text returns the i-th node as a string or symbol, or "".
func (l *List) Text(i int) string {
	n := l.At(i)
	if n == nil {
		return ""
	}
	switch {
	case n.Str != nil:
		return *n.Str
	case n.Symbol != nil:
		return *n.Symbol
	}
	return ""
}

// HasSymbol reports whether the list contains the bare symbol anywhere
// after its head, e.g. (fill yes) or the "locked" marker on tracks.
func (l *List) HasSymbol(sym string) bool {
	for _, n := range l.Nodes[min(1, len(l.Nodes)):] {
		if n.Symbol != nil && *n.Symbol == sym {
			return true
		}
	}
	return false
}
