package keysheet

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// File is a parsed key sheet: any number of named keys.
type File struct {
	Keys []*Key `( @@ | Newline )*`
}

// Key is one named block of machine settings.
// Example: key "1930-manual" { model Enigma-I; rotors II I III }
type Key struct {
	Pos lexer.Position

	Name       string       `"key":Ident @String Newline* LBrace`
	Directives []*Directive `( @@ | Newline | Semicolon )* RBrace`
}

// Directive is a single setting inside a key block: a name followed by its
// values up to the end of the line.
type Directive struct {
	Pos lexer.Position

	Name   string   `@Ident`
	Values []string `@( Ident | Integer )*`
}

// Kind returns the canonical directive name, folding the German aliases.
func (d *Directive) Kind() string {
	switch strings.ToLower(d.Name) {
	case "ukw":
		return "reflector"
	case "walzenlage":
		return "rotors"
	case "ringstellung":
		return "rings"
	case "grundstellung":
		return "positions"
	case "stecker":
		return "plugs"
	}
	return strings.ToLower(d.Name)
}

var directiveKinds = []string{"model", "reflector", "rotors", "rings", "positions", "plugs"}

// Key returns the key with the given name.
func (f *File) Key(name string) (*Key, bool) {
	for _, k := range f.Keys {
		if k.Name == name {
			return k, true
		}
	}
	return nil, false
}

// Names lists the keys in file order.
func (f *File) Names() []string {
	names := make([]string, len(f.Keys))
	for i, k := range f.Keys {
		names[i] = k.Name
	}
	return names
}
