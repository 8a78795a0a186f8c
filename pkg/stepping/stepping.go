package stepping

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/alphabet"
)

// Policy represents one of the rotor-advance mechanisms found across the
// modelled machines.
type Policy uint8

const (
	// PolicyStandard is the ratchet-and-pawl drive of the Enigma I and M3,
	// including the middle-rotor double step.
	PolicyStandard Policy = iota
	// PolicyNavy is PolicyStandard on the three rightmost rotors with a fourth,
	// leftmost rotor that never turns (M4).
	PolicyNavy
	// PolicyTirpitz is the gear-driven odometer carry of the Enigma T.
	PolicyTirpitz
	// PolicyFixed applies the odometer carry to the remaining commercial and
	// railway machines.
	PolicyFixed
)

var policyNames = map[Policy]string{
	PolicyStandard: "STANDARD",
	PolicyNavy:     "NAVY",
	PolicyTirpitz:  "TIRPITZ",
	PolicyFixed:    "FIXED",
}

// CUSTOM is accepted as a spelling of FIXED.
var policyAliases = map[string]Policy{
	"STANDARD": PolicyStandard,
	"NAVY":     PolicyNavy,
	"TIRPITZ":  PolicyTirpitz,
	"FIXED":    PolicyFixed,
	"CUSTOM":   PolicyFixed,
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Policy(%d)", p)
}

// ParsePolicy resolves a policy identifier, ignoring case.
func ParsePolicy(s string) (Policy, error) {
	if p, ok := policyAliases[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("stepping: unknown policy %q", s)
}

// Policies lists every policy in declaration order.
func Policies() []Policy {
	return []Policy{PolicyStandard, PolicyNavy, PolicyTirpitz, PolicyFixed}
}

// MarshalText implements encoding.TextMarshaler so policies round-trip
// through table documents by name.
func (p Policy) MarshalText() ([]byte, error) {
	if _, ok := policyNames[p]; !ok {
		return nil, fmt.Errorf("stepping: invalid policy %d", p)
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(text []byte) error {
	v, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Movement records which rotor slots advanced during one step. Bit i is set
// when slot i (0 = leftmost) moved.
type Movement uint8

// Advanced reports whether the given slot moved.
func (m Movement) Advanced(slot int) bool {
	return slot >= 0 && slot < 8 && m&(1<<uint(slot)) != 0
}

// Count returns the number of slots that moved.
func (m Movement) Count() int {
	n := 0
	for v := m; v != 0; v &= v - 1 {
		n++
	}
	return n
}

func (m Movement) mark(slot int) Movement {
	return m | 1<<uint(slot)
}

// Step advances positions in place according to the policy and returns the
// slots that moved. positions and notches are indexed left to right, so the
// last entry is the fast rotor. Notch conditions are sampled before any rotor
// turns. It panics if an invalid policy is supplied, which cannot happen for
// values obtained through ParsePolicy.
func Step(p Policy, positions []alphabet.Letter, notches []Notches) Movement {
	if len(positions) != len(notches) {
		panic(fmt.Sprintf("stepping: %d positions but %d notch sets", len(positions), len(notches)))
	}
	n := len(positions)
	if n == 0 {
		return 0
	}

	right, middle, left := n-1, n-2, n-3
	rightNotch := notches[right].Has(positions[right])
	middleNotch := middle >= 0 && notches[middle].Has(positions[middle])

	var advanceMiddle, advanceLeft bool
	switch p {
	case PolicyStandard, PolicyNavy:
		// The middle pawl also engages the middle rotor's own notch, which is
		// what produces the double step.
		advanceMiddle = rightNotch || middleNotch
		advanceLeft = middleNotch
	case PolicyTirpitz, PolicyFixed:
		advanceMiddle = rightNotch
		advanceLeft = middleNotch && advanceMiddle
	default:
		panic(fmt.Sprintf("stepping: unhandled policy %d", p))
	}

	var moved Movement
	if advanceLeft && left >= 0 {
		positions[left] = positions[left].Add(1)
		moved = moved.mark(left)
	}
	if advanceMiddle && middle >= 0 {
		positions[middle] = positions[middle].Add(1)
		moved = moved.mark(middle)
	}
	positions[right] = positions[right].Add(1)
	return moved.mark(right)
}
