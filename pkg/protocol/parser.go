package protocol

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

// DescFile is the parsed form of a protocol description file.
//
// Example:
//
//	protocol memory_bank is
//	  bl_width 6;
//	  wl_width 6;
//	end protocol;
type DescFile struct {
	Name  string      `parser:"KwProtocol @Ident KwIs"`
	Attrs []*DescAttr `parser:"@@* KwEnd KwProtocol Semicolon"`
}

// DescAttr is a single `name value;` attribute inside a protocol block.
type DescAttr struct {
	Name  string `parser:"@Ident"`
	Value int    `parser:"@Integer Semicolon"`
}

// Parser parses protocol description files.
type Parser struct {
	parser *participle.Parser[DescFile]
}

// NewParser creates a protocol description parser.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[DescFile](
		participle.Lexer(descLexer),
		participle.Elide("Comment", "Whitespace"),
	)
	if err != nil {
		return nil, fmt.Errorf("protocol: failed to build parser: %w", err)
	}
	return &Parser{parser: parser}, nil
}

// Parse parses a protocol description from a reader and resolves it to a
// validated Config.
func (p *Parser) Parse(r io.Reader) (Config, error) {
	file, err := p.parser.Parse("", r)
	if err != nil {
		return Config{}, fmt.Errorf("protocol: parse error: %w", err)
	}
	return file.Config()
}

// ParseString parses a protocol description from a string.
func (p *Parser) ParseString(input string) (Config, error) {
	file, err := p.parser.ParseString("", input)
	if err != nil {
		return Config{}, fmt.Errorf("protocol: parse error: %w", err)
	}
	return file.Config()
}

// ParseFile parses a protocol description from a file path.
func (p *Parser) ParseFile(filename string) (Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Config{}, fmt.Errorf("protocol: failed to open file: %w", err)
	}
	defer f.Close()

	return p.Parse(f)
}

// Config resolves the parsed description to a validated Config. Unknown
// attributes, attributes that do not belong to the declared protocol, and
// duplicate attributes are errors.
func (f *DescFile) Config() (Config, error) {
	kind, err := ParseKind(f.Name)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{Kind: kind, NumRegions: 1}
	seen := make(map[string]bool)
	for _, attr := range f.Attrs {
		if seen[attr.Name] {
			return Config{}, fmt.Errorf("protocol: duplicate attribute %q", attr.Name)
		}
		seen[attr.Name] = true

		switch attr.Name {
		case "regions":
			if kind != ScanChain {
				return Config{}, fmt.Errorf("protocol: attribute %q not valid for %v", attr.Name, kind)
			}
			cfg.NumRegions = attr.Value
		case "addr_width":
			if kind != FrameBased {
				return Config{}, fmt.Errorf("protocol: attribute %q not valid for %v", attr.Name, kind)
			}
			cfg.AddrWidth = attr.Value
		case "bl_width":
			if kind != MemoryBank {
				return Config{}, fmt.Errorf("protocol: attribute %q not valid for %v", attr.Name, kind)
			}
			cfg.BLWidth = attr.Value
		case "wl_width":
			if kind != MemoryBank {
				return Config{}, fmt.Errorf("protocol: attribute %q not valid for %v", attr.Name, kind)
			}
			cfg.WLWidth = attr.Value
		default:
			return Config{}, fmt.Errorf("protocol: unknown attribute %q", attr.Name)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
