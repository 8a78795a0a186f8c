package alphabet

import (
	"errors"
	"fmt"
)

var (
	// ErrNotBijection means a wiring string does not use every letter exactly once.
	ErrNotBijection = errors.New("alphabet: permutation is not a bijection")
	// ErrNotInvolution means a permutation is not its own inverse, or maps a
	// letter onto itself.
	ErrNotInvolution = errors.New("alphabet: permutation is not a fixed-point-free involution")
)

// Permutation maps each input letter (by index) to an output letter.
type Permutation [Size]Letter

// Identity returns the permutation that maps every letter to itself.
func Identity() Permutation {
	var p Permutation
	for i := range p {
		p[i] = Letter(i)
	}
	return p
}

// ParsePermutation reads a 26-letter wiring string such as
// "EKMFLGDQVZNTOWYHXUSPAIBRCJ", where position i holds the image of letter i.
func ParsePermutation(s string) (Permutation, error) {
	var p Permutation
	if len(s) != Size {
		return p, fmt.Errorf("%w: %d letters, want %d", ErrNotBijection, len(s), Size)
	}
	var seen [Size]bool
	for i, r := range s {
		l, err := ParseLetter(r)
		if err != nil {
			return p, err
		}
		if seen[l] {
			return p, fmt.Errorf("%w: %s appears twice", ErrNotBijection, l)
		}
		seen[l] = true
		p[i] = l
	}
	return p, nil
}

// Apply returns the image of l.
func (p Permutation) Apply(l Letter) Letter {
	return p[l]
}

// Inverse returns the permutation q with q[p[i]] == i.
func (p Permutation) Inverse() Permutation {
	var q Permutation
	for i, l := range p {
		q[l] = Letter(i)
	}
	return q
}

// IsIdentity reports whether every letter maps to itself.
func (p Permutation) IsIdentity() bool {
	for i, l := range p {
		if l != Letter(i) {
			return false
		}
	}
	return true
}

// CheckReflector verifies that p is a fixed-point-free involution, the
// property that keeps a letter from ever enciphering to itself.
func (p Permutation) CheckReflector() error {
	for i, l := range p {
		if l == Letter(i) {
			return fmt.Errorf("%w: %s maps to itself", ErrNotInvolution, l)
		}
		if p[l] != Letter(i) {
			return fmt.Errorf("%w: %s->%s but %s->%s", ErrNotInvolution, Letter(i), l, l, p[l])
		}
	}
	return nil
}

func (p Permutation) String() string {
	return String(p[:])
}
