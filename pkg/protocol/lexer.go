package protocol

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// descLexer defines the lexical structure of protocol description files.
// The format borrows BSDL's declaration flavor: keyword-framed blocks,
// semicolon-terminated attributes, and `--` comments.
var descLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `--[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	{Name: "KwProtocol", Pattern: `(?i)\bPROTOCOL\b`},
	{Name: "KwIs", Pattern: `(?i)\bIS\b`},
	{Name: "KwEnd", Pattern: `(?i)\bEND\b`},

	{Name: "Semicolon", Pattern: `;`},

	{Name: "Integer", Pattern: `[0-9]+`},

	// Identifiers come after keywords so keywords win.
	{Name: "Ident", Pattern: `[a-zA-Z][a-zA-Z0-9_]*`},
})
