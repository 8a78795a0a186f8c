package wiring

import (
	"slices"

	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/alphabet"
	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/stepping"
)

// RotorType is one wheel design: its fixed internal wiring and the ring
// positions at which it carries. Values are immutable once loaded and may be
// shared by any number of machines.
type RotorType struct {
	ID      string
	Notches stepping.Notches

	forward  alphabet.Permutation
	backward alphabet.Permutation
}

// Forward maps a contact on the right-hand side to the left-hand side.
func (r *RotorType) Forward(l alphabet.Letter) alphabet.Letter {
	return r.forward[l]
}

// Backward is the inverse of Forward, used on the return path.
func (r *RotorType) Backward(l alphabet.Letter) alphabet.Letter {
	return r.backward[l]
}

// Wiring returns the forward permutation.
func (r *RotorType) Wiring() alphabet.Permutation {
	return r.forward
}

// ReflectorType is a fixed, non-rotating reversing wheel (UKW).
type ReflectorType struct {
	ID string

	wiring alphabet.Permutation
}

// Reflect sends the letter back through the rotor stack.
func (r *ReflectorType) Reflect(l alphabet.Letter) alphabet.Letter {
	return r.wiring[l]
}

// Wiring returns the reflector permutation.
func (r *ReflectorType) Wiring() alphabet.Permutation {
	return r.wiring
}

// Model describes one machine variant. Models are shared by every machine
// built from the same tables, so the selectable components and the entry
// wheel are only reachable through accessors that return copies.
type Model struct {
	ID         string
	Name       string
	RotorCount int
	Policy     stepping.Policy
	Plugboard  bool

	rotors       []string
	fixedRotors  []string
	reflectors   []string
	entry        alphabet.Permutation
	entryInverse alphabet.Permutation
}

// Rotors lists the wheels selectable for any stepping slot.
func (m *Model) Rotors() []string {
	return slices.Clone(m.rotors)
}

// FixedRotors lists the only wheels allowed in the leftmost, non-stepping
// slot of a four-rotor machine. It is empty for every other model.
func (m *Model) FixedRotors() []string {
	return slices.Clone(m.fixedRotors)
}

// Reflectors lists the selectable reflectors. The first is the default.
func (m *Model) Reflectors() []string {
	return slices.Clone(m.reflectors)
}

// Entry returns the entry wheel (ETW). Identity on military machines.
func (m *Model) Entry() alphabet.Permutation {
	return m.entry
}

// EntryIn maps a keyboard letter to the rotor-side contact.
func (m *Model) EntryIn(l alphabet.Letter) alphabet.Letter {
	return m.entryInverse[l]
}

// EntryOut maps a rotor-side contact back to the lamp letter.
func (m *Model) EntryOut(l alphabet.Letter) alphabet.Letter {
	return m.entry[l]
}

// HasEntryWheel reports whether the entry wheel scrambles the keyboard.
func (m *Model) HasEntryWheel() bool {
	return !m.entry.IsIdentity()
}

// AllowsRotor reports whether the rotor id may be placed in the given slot
// (0 = leftmost).
func (m *Model) AllowsRotor(id string, slot int) bool {
	if len(m.fixedRotors) > 0 && m.RotorCount == 4 && slot == 0 {
		return slices.Contains(m.fixedRotors, id)
	}
	return slices.Contains(m.rotors, id)
}

// AllowsReflector reports whether the reflector id is selectable.
func (m *Model) AllowsReflector(id string) bool {
	return slices.Contains(m.reflectors, id)
}
