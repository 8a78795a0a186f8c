package wiring

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/alphabet"
	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/stepping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalTables = `
rotors:
  "I":   { wiring: EKMFLGDQVZNTOWYHXUSPAIBRCJ, notches: Q }
  "II":  { wiring: AJDKSIRUXBLHWTMCQGZNPYFVOE, notches: E }
  "III": { wiring: BDFHJLCPRTXVZNYEIWGAKMUSQO, notches: V }
reflectors:
  "B": YRUHQSLDPXNGOKMIEBFZCWVJAT
models:
  - id: Test
    rotor_count: 3
    stepping: standard
    rotors: ["I", "II", "III"]
    reflectors: ["B"]
    plugboard: true
`

func TestDefaultTables(t *testing.T) {
	tables := Default()

	ids := make([]string, 0)
	for _, m := range tables.Models() {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{
		"Enigma-I", "Enigma-M3", "Enigma-M4", "Enigma-Norway",
		"Enigma-T", "Enigma-K", "Swiss-K", "Enigma-Railway",
	}, ids)

	m4, ok := tables.Model("Enigma-M4")
	require.True(t, ok)
	assert.Equal(t, 4, m4.RotorCount)
	assert.Equal(t, stepping.PolicyNavy, m4.Policy)
	assert.True(t, m4.AllowsRotor("Beta", 0))
	assert.False(t, m4.AllowsRotor("I", 0))
	assert.True(t, m4.AllowsRotor("I", 1))
	assert.False(t, m4.AllowsRotor("Gamma", 2))
	assert.False(t, m4.HasEntryWheel())

	tirpitz, ok := tables.Model("Enigma-T")
	require.True(t, ok)
	assert.Equal(t, stepping.PolicyTirpitz, tirpitz.Policy)
	assert.False(t, tirpitz.Plugboard)
	assert.True(t, tirpitz.HasEntryWheel())

	k, ok := tables.Model("Enigma-K")
	require.True(t, ok)
	assert.Equal(t, stepping.PolicyFixed, k.Policy)

	assert.Same(t, tables, Default(), "Default must be parsed once")
}

func TestDefaultReflectorsAreInvolutions(t *testing.T) {
	tables := Default()
	for _, id := range tables.ReflectorIDs() {
		ref, ok := tables.Reflector(id)
		require.True(t, ok)
		for i := 0; i < alphabet.Size; i++ {
			l := alphabet.Letter(i)
			out := ref.Reflect(l)
			assert.NotEqual(t, l, out, "reflector %s maps %s to itself", id, l)
			assert.Equal(t, l, ref.Reflect(out), "reflector %s is not an involution at %s", id, l)
		}
	}
}

func TestModelAccessorsReturnCopies(t *testing.T) {
	tables := Default()
	m4, ok := tables.Model("Enigma-M4")
	require.True(t, ok)

	rotors := m4.Rotors()
	rotors[0] = "Beta"
	fixed := m4.FixedRotors()
	fixed[0] = "I"
	reflectors := m4.Reflectors()
	reflectors[0] = "B"

	again, _ := tables.Model("Enigma-M4")
	assert.Equal(t, "I", again.Rotors()[0])
	assert.Equal(t, "Beta", again.FixedRotors()[0])
	assert.Equal(t, "B-thin", again.Reflectors()[0])
	assert.False(t, again.AllowsRotor("Beta", 1))
	assert.False(t, again.AllowsRotor("I", 0))

	k, ok := tables.Model("Enigma-K")
	require.True(t, ok)
	entry := k.Entry()
	entry[0] = entry[1]
	assert.Equal(t, "QWERTZUIOPASDFGHJKLYXCVBNM", k.Entry().String())
	assert.Equal(t, alphabet.MustLetter('Q'), k.EntryOut(alphabet.MustLetter('A')))
	assert.Equal(t, alphabet.MustLetter('A'), k.EntryIn(alphabet.MustLetter('Q')))
}

func TestRotorForwardBackwardAreInverse(t *testing.T) {
	tables := Default()
	for _, id := range tables.RotorIDs() {
		rotor, ok := tables.Rotor(id)
		require.True(t, ok)
		for i := 0; i < alphabet.Size; i++ {
			l := alphabet.Letter(i)
			assert.Equal(t, l, rotor.Backward(rotor.Forward(l)), "rotor %s at %s", id, l)
		}
	}

	rotorI, _ := tables.Rotor("I")
	assert.Equal(t, alphabet.MustLetter('E'), rotorI.Forward(alphabet.MustLetter('A')))
	assert.Equal(t, alphabet.MustLetter('U'), rotorI.Backward(alphabet.MustLetter('A')))
	assert.Equal(t, "Q", rotorI.Notches.String())

	rotorVI, _ := tables.Rotor("VI")
	assert.Equal(t, "MZ", rotorVI.Notches.String())

	beta, _ := tables.Rotor("Beta")
	assert.Zero(t, beta.Notches)
}

func TestParseMinimal(t *testing.T) {
	tables, err := Parse([]byte(minimalTables))
	require.NoError(t, err)

	m, ok := tables.Model("Test")
	require.True(t, ok)
	assert.Equal(t, "Test", m.Name, "name defaults to id")
	assert.True(t, m.AllowsReflector("B"))
	assert.False(t, m.AllowsReflector("A"))
	assert.Equal(t, []string{"I", "II", "III"}, tables.RotorIDs())
	assert.Equal(t, minimalTables, string(tables.Source()))

	_, ok = tables.Model("Enigma-I")
	assert.False(t, ok)
}

func TestParseRejectsBrokenTables(t *testing.T) {
	cases := []struct {
		name    string
		replace [2]string
		wantErr error
	}{
		{
			name:    "rotor wiring repeats a letter",
			replace: [2]string{"EKMFLGDQVZNTOWYHXUSPAIBRCJ", "EKMFLGDQVZNTOWYHXUSPAIBRCE"},
			wantErr: ErrInvalidRotor,
		},
		{
			name:    "rotor notch lowercase",
			replace: [2]string{"notches: Q", "notches: q"},
			wantErr: ErrInvalidRotor,
		},
		{
			name:    "reflector with fixed point",
			replace: [2]string{"YRUHQSLDPXNGOKMIEBFZCWVJAT", "ABCDEFGHIJKLMNOPQRSTUVWXYZ"},
			wantErr: ErrInvalidReflector,
		},
		{
			name:    "reflector not an involution",
			replace: [2]string{"YRUHQSLDPXNGOKMIEBFZCWVJAT", "EKMFLGDQVZNTOWYHXUSPAIBRCJ"},
			wantErr: alphabet.ErrNotInvolution,
		},
		{
			name:    "unknown policy",
			replace: [2]string{"stepping: standard", "stepping: odometer"},
			wantErr: ErrInvalidModel,
		},
		{
			name:    "bad rotor count",
			replace: [2]string{"rotor_count: 3", "rotor_count: 5"},
			wantErr: ErrInvalidModel,
		},
		{
			name:    "unknown rotor reference",
			replace: [2]string{`rotors: ["I", "II", "III"]`, `rotors: ["I", "II", "IX"]`},
			wantErr: ErrInvalidModel,
		},
		{
			name:    "unknown reflector reference",
			replace: [2]string{`reflectors: ["B"]`, `reflectors: ["Z"]`},
			wantErr: ErrInvalidModel,
		},
		{
			name:    "not enough rotors for the slots",
			replace: [2]string{`rotors: ["I", "II", "III"]`, `rotors: ["I", "II"]`},
			wantErr: ErrInvalidModel,
		},
		{
			name:    "fixed rotors on a three-rotor model",
			replace: [2]string{"plugboard: true", "plugboard: true\n    fixed_rotors: [\"I\"]"},
			wantErr: ErrInvalidModel,
		},
		{
			name:    "bad entry wheel",
			replace: [2]string{"plugboard: true", "plugboard: true\n    entry: QWERTY"},
			wantErr: alphabet.ErrNotBijection,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := strings.Replace(minimalTables, tc.replace[0], tc.replace[1], 1)
			require.NotEqual(t, minimalTables, doc, "replacement did not apply")
			_, err := Parse([]byte(doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestParseRejectsDuplicateModel(t *testing.T) {
	doc := minimalTables + `
  - id: Test
    rotor_count: 3
    stepping: FIXED
    rotors: ["I", "II", "III"]
    reflectors: ["B"]
`
	_, err := Parse([]byte(doc))
	assert.ErrorIs(t, err, ErrInvalidModel)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("rotors: [unterminated"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalTables), 0o644))

	tables, err := LoadFile(path)
	require.NoError(t, err)
	_, ok := tables.Model("Test")
	assert.True(t, ok)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	fromReader, err := Load(strings.NewReader(minimalTables))
	require.NoError(t, err)
	assert.Len(t, fromReader.Models(), 1)
}
