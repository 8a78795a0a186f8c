package keysheet

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

// Parser reads key sheets.
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser creates a new key sheet parser instance
func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(KeySheetLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.CaseInsensitive("Ident"),
		participle.Unquote("String"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("keysheet: failed to build parser: %w", err)
	}

	return &Parser{parser: parser}, nil
}

// Parse parses a key sheet from a reader
func (p *Parser) Parse(r io.Reader) (*File, error) {
	file, err := p.parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("keysheet: parse error: %w", err)
	}
	if err := checkNames(file); err != nil {
		return nil, err
	}
	return file, nil
}

// ParseString parses a key sheet from a string
func (p *Parser) ParseString(input string) (*File, error) {
	file, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("keysheet: parse error: %w", err)
	}
	if err := checkNames(file); err != nil {
		return nil, err
	}
	return file, nil
}

// ParseFile parses a key sheet from a file path
func (p *Parser) ParseFile(filename string) (*File, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("keysheet: failed to open file: %w", err)
	}
	defer f.Close()

	file, err := p.parser.Parse(filename, f)
	if err != nil {
		return nil, fmt.Errorf("keysheet: parse error: %w", err)
	}
	if err := checkNames(file); err != nil {
		return nil, err
	}
	return file, nil
}

func checkNames(file *File) error {
	seen := make(map[string]bool, len(file.Keys))
	for _, k := range file.Keys {
		if k.Name == "" {
			return fmt.Errorf("keysheet: %s: %w", k.Pos, ErrEmptyName)
		}
		if seen[k.Name] {
			return fmt.Errorf("keysheet: %s: %w %q", k.Pos, ErrDuplicateKey, k.Name)
		}
		seen[k.Name] = true
	}
	return nil
}
