package machine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/alphabet"
	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/plugboard"
	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/stepping"
	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/wiring"
)

// State is the only part of a machine that changes while it runs. It is a
// plain value: copy it to snapshot, pass it to Restore to rewind.
type State struct {
	Positions [MaxRotors]alphabet.Letter
	Rotors    int
	Count     uint64
}

// Window returns the visible rotor letters, left to right.
func (s State) Window() []alphabet.Letter {
	return append([]alphabet.Letter(nil), s.Positions[:s.Rotors]...)
}

func (s State) String() string {
	return alphabet.String(s.Positions[:s.Rotors])
}

type slot struct {
	rotor *wiring.RotorType
	ring  alphabet.Letter
}

// Machine is one configured cipher machine. It is not safe for concurrent
// use; callers sharing a machine between goroutines must serialise calls.
// The tables it was built from are only read and may be shared freely.
type Machine struct {
	cfg       Config
	model     *wiring.Model
	reflector *wiring.ReflectorType
	plugboard *plugboard.Plugboard
	slots     []slot
	notches   []stepping.Notches

	initial State
	state   State
}

// New validates cfg against tables and builds a machine at the configured
// start positions. A nil tables uses wiring.Default. Nothing is partially
// applied: on error no machine is returned.
//
// Each rotor type exists once per set, so naming the same rotor in two slots
// is rejected with ErrDuplicateRotor even where the model would otherwise
// accept it.
func New(tables *wiring.Tables, cfg Config) (*Machine, error) {
	if tables == nil {
		tables = wiring.Default()
	}
	cfg = cfg.Clone()

	model, ok := tables.Model(cfg.Model)
	if !ok {
		return nil, configErr("model", cfg.Model, ErrUnknownModel)
	}

	n := model.RotorCount
	if cfg.Rings == nil {
		cfg.Rings = make([]alphabet.Letter, n)
	}
	if cfg.Positions == nil {
		cfg.Positions = make([]alphabet.Letter, n)
	}
	if len(cfg.Rotors) != n {
		return nil, configErr("rotors", strings.Join(cfg.Rotors, " "),
			fmt.Errorf("%w: got %d, want %d", ErrRotorCount, len(cfg.Rotors), n))
	}
	if len(cfg.Rings) != n {
		return nil, configErr("rings", alphabet.String(cfg.Rings),
			fmt.Errorf("%w: got %d, want %d", ErrRotorCount, len(cfg.Rings), n))
	}
	if len(cfg.Positions) != n {
		return nil, configErr("positions", alphabet.String(cfg.Positions),
			fmt.Errorf("%w: got %d, want %d", ErrRotorCount, len(cfg.Positions), n))
	}
	for i := 0; i < n; i++ {
		if cfg.Rings[i] >= alphabet.Size {
			return nil, configErr("rings", fmt.Sprint(int(cfg.Rings[i])), alphabet.ErrInvalidLetter)
		}
		if cfg.Positions[i] >= alphabet.Size {
			return nil, configErr("positions", fmt.Sprint(int(cfg.Positions[i])), alphabet.ErrInvalidLetter)
		}
	}

	m := &Machine{
		cfg:     cfg,
		model:   model,
		slots:   make([]slot, n),
		notches: make([]stepping.Notches, n),
	}

	seen := make(map[string]bool, n)
	for i, id := range cfg.Rotors {
		rotor, ok := tables.Rotor(id)
		if !ok {
			return nil, configErr("rotor", id, ErrUnknownRotor)
		}
		if seen[id] {
			return nil, configErr("rotor", id, ErrDuplicateRotor)
		}
		seen[id] = true
		if !model.AllowsRotor(id, i) {
			return nil, configErr("rotor", id, rotorPlacementErr(model, id, i))
		}
		m.slots[i] = slot{rotor: rotor, ring: cfg.Rings[i]}
		m.notches[i] = rotor.Notches
	}

	reflector, ok := tables.Reflector(cfg.Reflector)
	if !ok {
		return nil, configErr("reflector", cfg.Reflector, ErrUnknownReflector)
	}
	if !model.AllowsReflector(cfg.Reflector) {
		return nil, configErr("reflector", cfg.Reflector, ErrReflectorNotSelectable)
	}
	m.reflector = reflector

	if len(cfg.Plugboard) > 0 && !model.Plugboard {
		return nil, configErr("plugboard", "", fmt.Errorf("%w: %s", ErrPlugboardUnsupported, model.ID))
	}
	pb, err := plugboard.New(cfg.Plugboard...)
	if err != nil {
		return nil, configErr("plugboard", "", err)
	}
	m.plugboard = pb

	m.initial.Rotors = n
	copy(m.initial.Positions[:], cfg.Positions)
	m.state = m.initial
	return m, nil
}

func rotorPlacementErr(model *wiring.Model, id string, slot int) error {
	fixed := model.FixedRotors()
	if len(fixed) == 0 || model.RotorCount != 4 {
		return ErrRotorNotSelectable
	}
	inFixed := slices.Contains(fixed, id)
	inStepping := slices.Contains(model.Rotors(), id)
	if (slot == 0 && inStepping) || (slot != 0 && inFixed) {
		return fmt.Errorf("%w: %s cannot sit in slot %d", ErrFixedRotorPlacement, id, slot)
	}
	return ErrRotorNotSelectable
}

// EncodeChar steps the rotors and passes one letter through the machine. The
// same call deciphers: running ciphertext through a machine reset to the
// same start positions yields the plaintext.
func (m *Machine) EncodeChar(l alphabet.Letter) alphabet.Letter {
	return m.encode(l, nil)
}

// EncodeTrace is EncodeChar that also reports the rotor movement and the
// letter after every stage of the signal path.
func (m *Machine) EncodeTrace(l alphabet.Letter) Trace {
	tr := Trace{Input: l, Before: m.state}
	tr.Output = m.encode(l, &tr)
	tr.After = m.state
	return tr
}

func (m *Machine) encode(l alphabet.Letter, tr *Trace) alphabet.Letter {
	n := len(m.slots)

	x := m.plugboard.Apply(l)
	tr.record(StagePlugboard, -1, x)

	pos := m.state.Positions[:n]
	moved := stepping.Step(m.model.Policy, pos, m.notches)
	if tr != nil {
		tr.Movement = moved
	}

	x = m.model.EntryIn(x)
	tr.record(StageEntry, -1, x)

	for i := n - 1; i >= 0; i-- {
		s := m.slots[i]
		offset := pos[i].Sub(s.ring)
		x = s.rotor.Forward(x.Add(offset)).Add(-offset)
		tr.record(StageRotorForward, i, x)
	}

	x = m.reflector.Reflect(x)
	tr.record(StageReflector, -1, x)

	for i := 0; i < n; i++ {
		s := m.slots[i]
		offset := pos[i].Sub(s.ring)
		x = s.rotor.Backward(x.Add(offset)).Add(-offset)
		tr.record(StageRotorBackward, i, x)
	}

	x = m.model.EntryOut(x)
	tr.record(StageEntryReturn, -1, x)

	x = m.plugboard.Apply(x)
	tr.record(StagePlugboardReturn, -1, x)

	m.state.Count++
	return x
}

// EncodeLetters runs EncodeChar over a slice in order.
func (m *Machine) EncodeLetters(in []alphabet.Letter) []alphabet.Letter {
	out := make([]alphabet.Letter, len(in))
	for i, l := range in {
		out[i] = m.EncodeChar(l)
	}
	return out
}

// EncodeRune accepts an uppercase letter A-Z. Anything else is rejected with
// alphabet.ErrInvalidLetter and leaves the rotors untouched.
func (m *Machine) EncodeRune(r rune) (rune, error) {
	l, err := alphabet.ParseLetter(r)
	if err != nil {
		return 0, err
	}
	return m.EncodeChar(l).Rune(), nil
}

// EncodeString checks that s contains only A-Z before touching the rotors,
// then encodes it.
func (m *Machine) EncodeString(s string) (string, error) {
	letters, err := alphabet.ParseLetters(s)
	if err != nil {
		return "", err
	}
	return alphabet.String(m.EncodeLetters(letters)), nil
}

// Snapshot returns a copy of the current state.
func (m *Machine) Snapshot() State {
	return m.state
}

// Restore rewinds or fast-forwards the machine to a state taken from a
// machine of the same shape.
func (m *Machine) Restore(s State) error {
	if s.Rotors != len(m.slots) {
		return fmt.Errorf("machine: %w: %d rotors, machine has %d", ErrStateMismatch, s.Rotors, len(m.slots))
	}
	for _, p := range s.Positions[:s.Rotors] {
		if p >= alphabet.Size {
			return fmt.Errorf("machine: %w: position %d", ErrStateMismatch, int(p))
		}
	}
	m.state = s
	return nil
}

// Reset returns the rotors to the configured start positions.
func (m *Machine) Reset() {
	m.state = m.initial
}

// Window returns the visible rotor letters, left to right.
func (m *Machine) Window() []alphabet.Letter {
	return m.state.Window()
}

// Model returns the model the machine was built for.
func (m *Machine) Model() *wiring.Model {
	return m.model
}

// Config returns a copy of the configuration, with the configured start
// positions rather than the current ones.
func (m *Machine) Config() Config {
	return m.cfg.Clone()
}

// Plugboard returns the cables in use.
func (m *Machine) Plugboard() *plugboard.Plugboard {
	return m.plugboard
}

// Clone returns an independent machine with the same configuration and the
// same current state.
func (m *Machine) Clone() *Machine {
	c := *m
	c.cfg = m.cfg.Clone()
	c.slots = append([]slot(nil), m.slots...)
	c.notches = append([]stepping.Notches(nil), m.notches...)
	return &c
}
