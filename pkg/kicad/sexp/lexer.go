package sexp

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes KiCAD s-expression files. KiCAD writes quoted strings
// with backslash escapes, bare symbols, and decimal numbers; there is no
// comment syntax inside board or schematic files.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},

	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},

	// The trailing boundary keeps digit-led symbols such as bare UUIDs
	// (3db55b6e-...) from splitting into a number and a symbol.
	{Name: "Number", Pattern: `[-+]?[0-9]+(\.[0-9]+)?([eE][-+]?[0-9]+)?\b`},

	// Symbols cover layer names (F.Cu), UUIDs, and bare words.
	{Name: "Symbol", Pattern: `[^\s()"]+`},
})
