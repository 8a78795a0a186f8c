// Package alphabet holds the 26-letter alphabet shared by every part of the
// machine: typed letters and permutations over them.
package alphabet

import (
	"errors"
	"fmt"
	"strings"
)

// Size is the number of letters on every wheel, ring and socket row.
const Size = 26

// ErrInvalidLetter is returned when a rune or byte is outside A-Z.
var ErrInvalidLetter = errors.New("alphabet: letter outside A-Z")

// Letter is an alphabet index, A=0 through Z=25.
type Letter uint8

// ParseLetter converts an uppercase rune A-Z into a Letter.
func ParseLetter(r rune) (Letter, error) {
	if r < 'A' || r > 'Z' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLetter, r)
	}
	return Letter(r - 'A'), nil
}

// MustLetter is ParseLetter for constants; it panics on invalid input.
func MustLetter(r rune) Letter {
	l, err := ParseLetter(r)
	if err != nil {
		panic(err)
	}
	return l
}

// ParseLetters converts a string of uppercase letters into Letters.
func ParseLetters(s string) ([]Letter, error) {
	out := make([]Letter, 0, len(s))
	for _, r := range s {
		l, err := ParseLetter(r)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// Rune returns the uppercase rune for the letter.
func (l Letter) Rune() rune {
	return 'A' + rune(l%Size)
}

func (l Letter) String() string {
	return string(l.Rune())
}

// Add shifts the letter by n places around the alphabet; n may be negative.
func (l Letter) Add(n int) Letter {
	v := (int(l) + n) % Size
	if v < 0 {
		v += Size
	}
	return Letter(v)
}

// Sub returns the distance l - o modulo 26 as a shift amount.
func (l Letter) Sub(o Letter) int {
	return (int(l) - int(o) + Size) % Size
}

// String renders a slice of letters as text.
func String(letters []Letter) string {
	var b strings.Builder
	b.Grow(len(letters))
	for _, l := range letters {
		b.WriteRune(l.Rune())
	}
	return b.String()
}
