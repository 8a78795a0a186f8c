// Package plugboard implements the Steckerbrett: a symmetric letter-pair
// substitution applied once on the way into the rotors and once on the way
// out.
package plugboard

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/alphabet"
)

var (
	// ErrSelfPair is returned for a cable with both ends in the same socket.
	ErrSelfPair = errors.New("plugboard: letter paired with itself")
	// ErrLetterReused is returned when a letter appears in more than one pair.
	ErrLetterReused = errors.New("plugboard: letter already connected")
)

// Pair is one cable. Pairs are unordered: {A,B} and {B,A} are the same cable.
type Pair struct {
	A, B alphabet.Letter
}

// Normalize orders the pair so that A < B.
func (p Pair) Normalize() Pair {
	if p.B < p.A {
		return Pair{A: p.B, B: p.A}
	}
	return p
}

func (p Pair) String() string {
	return p.A.String() + p.B.String()
}

// ParsePair reads a two-letter pair such as "AM".
func ParsePair(s string) (Pair, error) {
	letters, err := alphabet.ParseLetters(strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return Pair{}, fmt.Errorf("plugboard: pair %q: %w", s, err)
	}
	if len(letters) != 2 {
		return Pair{}, fmt.Errorf("plugboard: pair %q must have two letters", s)
	}
	return Pair{A: letters[0], B: letters[1]}, nil
}

// ParsePairs reads whitespace- or comma-separated pairs such as
// "AM FI NV PS TU WZ".
func ParsePairs(s string) ([]Pair, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	pairs := make([]Pair, 0, len(fields))
	for _, f := range fields {
		p, err := ParsePair(f)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// Plugboard is an immutable set of cables. The zero value has every socket
// unconnected.
type Plugboard struct {
	wired [alphabet.Size]alphabet.Letter
	set   bool
	pairs []Pair
}

// New connects the given pairs. Each letter may take part in at most one pair.
func New(pairs ...Pair) (*Plugboard, error) {
	pb := &Plugboard{}
	for i := range pb.wired {
		pb.wired[i] = alphabet.Letter(i)
	}
	pb.set = true

	var used [alphabet.Size]bool
	for _, p := range pairs {
		if p.A >= alphabet.Size || p.B >= alphabet.Size {
			return nil, fmt.Errorf("plugboard: %w: pair %d-%d", alphabet.ErrInvalidLetter, p.A, p.B)
		}
		if p.A == p.B {
			return nil, fmt.Errorf("%w: %s", ErrSelfPair, p.A)
		}
		for _, l := range []alphabet.Letter{p.A, p.B} {
			if used[l] {
				return nil, fmt.Errorf("%w: %s", ErrLetterReused, l)
			}
			used[l] = true
		}
		pb.wired[p.A] = p.B
		pb.wired[p.B] = p.A
		pb.pairs = append(pb.pairs, p.Normalize())
	}
	sort.Slice(pb.pairs, func(i, j int) bool { return pb.pairs[i].A < pb.pairs[j].A })
	return pb, nil
}

// Parse builds a plugboard from text such as "AM FI NV".
func Parse(s string) (*Plugboard, error) {
	pairs, err := ParsePairs(s)
	if err != nil {
		return nil, err
	}
	return New(pairs...)
}

// Apply returns the partner of l, or l when its socket is empty.
func (pb *Plugboard) Apply(l alphabet.Letter) alphabet.Letter {
	if pb == nil || !pb.set {
		return l
	}
	return pb.wired[l]
}

// Pairs returns the cables with each pair ordered and sorted.
func (pb *Plugboard) Pairs() []Pair {
	if pb == nil {
		return nil
	}
	return append([]Pair(nil), pb.pairs...)
}

// Len returns the number of cables.
func (pb *Plugboard) Len() int {
	if pb == nil {
		return 0
	}
	return len(pb.pairs)
}

func (pb *Plugboard) String() string {
	pairs := pb.Pairs()
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}
