// Package textnorm turns free text into the 26-letter stream a cipher
// machine accepts, and formats machine output for transmission.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/alphabet"
)

// Options controls Normalize.
type Options struct {
	// FoldUmlauts writes Ä, Ö, Ü as AE, OE, UE instead of stripping the
	// diaeresis.
	FoldUmlauts bool
	// SpaceFiller, when a letter, replaces each run of whitespace between
	// words. Operators commonly used X.
	SpaceFiller rune
}

var umlauts = strings.NewReplacer("Ä", "AE", "Ö", "OE", "Ü", "UE")

// Normalize uppercases s with German casing rules (ß becomes SS), strips
// diacritics and drops everything outside A-Z.
func Normalize(s string, opts Options) string {
	filler := unicode.ToUpper(opts.SpaceFiller)
	if filler < 'A' || filler > 'Z' {
		filler = 0
	}

	s = cases.Upper(language.German).String(norm.NFC.String(s))
	if opts.FoldUmlauts {
		s = umlauts.Replace(s)
	}
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))), s)
	if err == nil {
		s = stripped
	}

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			if space && b.Len() > 0 {
				b.WriteRune(filler)
			}
			space = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			space = filler != 0
		}
	}
	return b.String()
}

// Letters normalizes s and converts it to machine letters.
func Letters(s string, opts Options) []alphabet.Letter {
	letters, err := alphabet.ParseLetters(Normalize(s, opts))
	if err != nil {
		return nil
	}
	return letters
}

// Group splits s into blocks of n characters separated by single spaces.
// n <= 0 returns s unchanged.
func Group(s string, n int) string {
	if n <= 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/n)
	i := 0
	for _, r := range s {
		if i > 0 && i%n == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		i++
	}
	return b.String()
}
