package wiring

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/alphabet"
	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/stepping"
	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTables []byte

var (
	// ErrInvalidRotor marks a rotor entry with bad wiring or notches.
	ErrInvalidRotor = errors.New("wiring: invalid rotor")
	// ErrInvalidReflector marks a reflector that is not a fixed-point-free
	// involution.
	ErrInvalidReflector = errors.New("wiring: invalid reflector")
	// ErrInvalidModel marks a model entry that cannot be built.
	ErrInvalidModel = errors.New("wiring: invalid model")
)

// Document is the YAML layout of a table file.
type Document struct {
	Rotors     map[string]RotorYAML `yaml:"rotors"`
	Reflectors map[string]string    `yaml:"reflectors"`
	Models     []ModelYAML          `yaml:"models"`
}

// RotorYAML is one rotor entry.
type RotorYAML struct {
	Wiring  string `yaml:"wiring"`
	Notches string `yaml:"notches,omitempty"`
}

// ModelYAML is one machine entry.
type ModelYAML struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name,omitempty"`
	RotorCount  int      `yaml:"rotor_count"`
	Stepping    string   `yaml:"stepping"`
	Rotors      []string `yaml:"rotors"`
	FixedRotors []string `yaml:"fixed_rotors,omitempty"`
	Reflectors  []string `yaml:"reflectors"`
	Plugboard   bool     `yaml:"plugboard"`
	Entry       string   `yaml:"entry,omitempty"`
}

// Tables is a validated, read-only set of rotors, reflectors and models. It
// is safe for concurrent use without locking because nothing in it changes
// after Parse returns.
type Tables struct {
	rotors     map[string]*RotorType
	reflectors map[string]*ReflectorType
	models     map[string]*Model
	order      []string
	source     []byte
}

var defaultOnce = sync.OnceValue(func() *Tables {
	t, err := Parse(defaultTables)
	if err != nil {
		panic(fmt.Sprintf("wiring: embedded tables: %v", err))
	}
	return t
})

// Default returns the built-in tables. They are parsed and validated on first
// use.
func Default() *Tables {
	return defaultOnce()
}

// LoadFile parses a table document from disk.
func LoadFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("wiring: failed to read file: %w", err)
	}
	return Parse(data)
}

// Load parses a table document from a reader.
func Load(r io.Reader) (*Tables, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("wiring: failed to read tables: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML table document. Every structural check
// happens here so that machines built from the result never need to repeat
// them.
func Parse(data []byte) (*Tables, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("wiring: failed to parse YAML: %w", err)
	}
	t, err := build(&doc)
	if err != nil {
		return nil, err
	}
	t.source = append([]byte(nil), data...)
	return t, nil
}

func build(doc *Document) (*Tables, error) {
	t := &Tables{
		rotors:     make(map[string]*RotorType, len(doc.Rotors)),
		reflectors: make(map[string]*ReflectorType, len(doc.Reflectors)),
		models:     make(map[string]*Model, len(doc.Models)),
	}

	for id, entry := range doc.Rotors {
		rotor, err := buildRotor(id, entry)
		if err != nil {
			return nil, err
		}
		t.rotors[id] = rotor
	}

	for id, wiring := range doc.Reflectors {
		perm, err := alphabet.ParsePermutation(wiring)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidReflector, id, err)
		}
		if err := perm.CheckReflector(); err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidReflector, id, err)
		}
		t.reflectors[id] = &ReflectorType{ID: id, wiring: perm}
	}

	for _, entry := range doc.Models {
		model, err := t.buildModel(entry)
		if err != nil {
			return nil, err
		}
		if _, dup := t.models[model.ID]; dup {
			return nil, fmt.Errorf("%w %q: duplicate id", ErrInvalidModel, model.ID)
		}
		t.models[model.ID] = model
		t.order = append(t.order, model.ID)
	}

	return t, nil
}

func buildRotor(id string, entry RotorYAML) (*RotorType, error) {
	perm, err := alphabet.ParsePermutation(entry.Wiring)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidRotor, id, err)
	}
	notches, err := stepping.ParseNotches(entry.Notches)
	if err != nil {
		return nil, fmt.Errorf("%w %q: notches: %w", ErrInvalidRotor, id, err)
	}
	return &RotorType{
		ID:       id,
		Notches:  notches,
		forward:  perm,
		backward: perm.Inverse(),
	}, nil
}

func (t *Tables) buildModel(entry ModelYAML) (*Model, error) {
	if entry.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidModel)
	}
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w %q: %s", ErrInvalidModel, entry.ID, fmt.Sprintf(format, args...))
	}

	if entry.RotorCount != 3 && entry.RotorCount != 4 {
		return nil, fail("rotor_count %d, want 3 or 4", entry.RotorCount)
	}
	policy, err := stepping.ParsePolicy(entry.Stepping)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidModel, entry.ID, err)
	}
	if len(entry.Rotors) == 0 {
		return nil, fail("no selectable rotors")
	}
	if len(entry.Reflectors) == 0 {
		return nil, fail("no selectable reflectors")
	}
	for _, id := range append(append([]string(nil), entry.Rotors...), entry.FixedRotors...) {
		if _, ok := t.rotors[id]; !ok {
			return nil, fail("unknown rotor %q", id)
		}
	}
	for _, id := range entry.Reflectors {
		if _, ok := t.reflectors[id]; !ok {
			return nil, fail("unknown reflector %q", id)
		}
	}
	if len(entry.FixedRotors) > 0 && entry.RotorCount != 4 {
		return nil, fail("fixed_rotors need rotor_count 4")
	}
	stepSlots := entry.RotorCount
	if len(entry.FixedRotors) > 0 {
		stepSlots--
	}
	if len(entry.Rotors) < stepSlots {
		return nil, fail("%d rotors cannot fill %d slots", len(entry.Rotors), stepSlots)
	}

	model := &Model{
		ID:          entry.ID,
		Name:        entry.Name,
		RotorCount:  entry.RotorCount,
		Policy:      policy,
		Plugboard:   entry.Plugboard,
		rotors:      append([]string(nil), entry.Rotors...),
		fixedRotors: append([]string(nil), entry.FixedRotors...),
		reflectors:  append([]string(nil), entry.Reflectors...),
		entry:       alphabet.Identity(),
	}
	if model.Name == "" {
		model.Name = model.ID
	}
	if entry.Entry != "" {
		perm, err := alphabet.ParsePermutation(entry.Entry)
		if err != nil {
			return nil, fmt.Errorf("%w %q: entry: %w", ErrInvalidModel, entry.ID, err)
		}
		model.entry = perm
	}
	model.entryInverse = model.entry.Inverse()
	return model, nil
}

// Rotor looks up a rotor type by id.
func (t *Tables) Rotor(id string) (*RotorType, bool) {
	r, ok := t.rotors[id]
	return r, ok
}

// Reflector looks up a reflector type by id.
func (t *Tables) Reflector(id string) (*ReflectorType, bool) {
	r, ok := t.reflectors[id]
	return r, ok
}

// Model looks up a machine model by id.
func (t *Tables) Model(id string) (*Model, bool) {
	m, ok := t.models[id]
	return m, ok
}

// Models returns every model in document order.
func (t *Tables) Models() []*Model {
	out := make([]*Model, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.models[id])
	}
	return out
}

// RotorIDs returns all rotor ids, sorted.
func (t *Tables) RotorIDs() []string {
	return sortedKeys(t.rotors)
}

// ReflectorIDs returns all reflector ids, sorted.
func (t *Tables) ReflectorIDs() []string {
	return sortedKeys(t.reflectors)
}

// Source returns the YAML the tables were parsed from.
func (t *Tables) Source() []byte {
	return append([]byte(nil), t.source...)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
