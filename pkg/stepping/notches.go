package stepping

import (
	"strings"

	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/alphabet"
)

// Notches is the set of ring positions at which a rotor carries into its left
// neighbour. Bit i is set when letter i carries.
type Notches uint32

// ParseNotches reads a string of notch letters such as "Q" or "ZM". An empty
// string is a rotor that never carries.
func ParseNotches(s string) (Notches, error) {
	var n Notches
	for _, r := range strings.TrimSpace(s) {
		l, err := alphabet.ParseLetter(r)
		if err != nil {
			return 0, err
		}
		n |= 1 << uint(l)
	}
	return n, nil
}

// NotchesOf builds a set from letters.
func NotchesOf(letters ...alphabet.Letter) Notches {
	var n Notches
	for _, l := range letters {
		n |= 1 << uint(l)
	}
	return n
}

// Has reports whether the letter is a notch position.
func (n Notches) Has(l alphabet.Letter) bool {
	return n&(1<<uint(l)) != 0
}

// Letters lists the notch positions in alphabetical order.
func (n Notches) Letters() []alphabet.Letter {
	var out []alphabet.Letter
	for i := 0; i < alphabet.Size; i++ {
		if n.Has(alphabet.Letter(i)) {
			out = append(out, alphabet.Letter(i))
		}
	}
	return out
}

func (n Notches) String() string {
	return alphabet.String(n.Letters())
}
