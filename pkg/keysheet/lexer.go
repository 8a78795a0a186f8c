package keysheet

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// KeySheetLexer tokenises daily key sheets. Words are never reserved: a
// directive is named by the first word on its line, so a value such as UKW
// or KEY is just another value. Directives end at a newline or a semicolon.
var KeySheetLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments run from # to end of line
	{Name: "Comment", Pattern: `#[^\n]*`},

	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Newline", Pattern: `\n`},
	{Name: "Semicolon", Pattern: `;`},

	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},

	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Integer", Pattern: `[0-9]+`},

	// Model, rotor and reflector names carry dashes (Enigma-M4, B-thin)
	{Name: "Ident", Pattern: `[a-zA-Z][a-zA-Z0-9_\-]*`},
})
