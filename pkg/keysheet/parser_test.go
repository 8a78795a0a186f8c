package keysheet

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/alphabet"
	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/plugboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string) (*File, error) {
	t.Helper()
	p, err := NewParser()
	require.NoError(t, err)
	return p.ParseString(input)
}

func TestParseSingleKey(t *testing.T) {
	file, err := parse(t, `
	key "minimal" {
		model Enigma-I
		rotors I II III
		reflector B
	}`)
	require.NoError(t, err)
	require.Len(t, file.Keys, 1)

	k := file.Keys[0]
	assert.Equal(t, "minimal", k.Name)
	require.Len(t, k.Directives, 3)
	assert.Equal(t, "rotors", k.Directives[1].Kind())
	assert.Equal(t, []string{"I", "II", "III"}, k.Directives[1].Values)

	cfg, err := k.Config()
	require.NoError(t, err)
	assert.Equal(t, "Enigma-I", cfg.Model)
	assert.Equal(t, "B", cfg.Reflector)
	assert.Nil(t, cfg.Rings)
	assert.Empty(t, cfg.Plugboard)
}

func TestParseFileWithAliases(t *testing.T) {
	p, err := NewParser()
	require.NoError(t, err)
	file, err := p.ParseFile(filepath.Join("testdata", "daily.keys"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1930-manual", "u534"}, file.Names())

	manual, ok := file.Key("1930-manual")
	require.True(t, ok)
	cfg, err := manual.Config()
	require.NoError(t, err)
	assert.Equal(t, []string{"II", "I", "III"}, cfg.Rotors)
	assert.Equal(t, "XMV", alphabet.String(cfg.Rings))
	assert.Equal(t, "ABL", alphabet.String(cfg.Positions))
	assert.Len(t, cfg.Plugboard, 6)

	m, err := manual.Machine(nil)
	require.NoError(t, err)
	out, err := m.EncodeString("GCDSEAHUGWTQGRKVLFGXUCALXVYMIGMMNMFDXTGNVHVRMMEVOUYFZSLRHDRRXFJWCFHUHMUNZEFRDISIKBGPMYVXUZ")
	require.NoError(t, err)
	assert.Equal(t, "FEINDLIQEINFANTERIEKOLONNEBEOBAQTETXANFANGSUEDAUSGANGBAERWALDEXENDEDREIKMOSTWAERTSNEUSTADT", out)

	u534, err := file.Lookup("u534")
	require.NoError(t, err)
	cfg, err = u534.Config()
	require.NoError(t, err)
	assert.Equal(t, "B-thin", cfg.Reflector)
	assert.Equal(t, []string{"Beta", "II", "IV", "I"}, cfg.Rotors)
	assert.Equal(t, "AAAV", alphabet.String(cfg.Rings))
	assert.Equal(t, "VJNA", alphabet.String(cfg.Positions))

	m, err = u534.Machine(nil)
	require.NoError(t, err)
	out, err = m.EncodeString("NCZWVUSXPNYMINHZXMQX")
	require.NoError(t, err)
	assert.Equal(t, "VONVONJLOOKSJHFFTTTE", out)
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	file, err := parse(t, `KEY "loud" { MODEL Enigma-I; Rotors I II III; UKW b }`)
	require.NoError(t, err)
	cfg, err := file.Keys[0].Config()
	require.NoError(t, err)
	assert.Equal(t, "b", cfg.Reflector)
}

func TestDirectiveNamesAreValidValues(t *testing.T) {
	cases := map[string]string{
		"positions UKW": `
key "ukw-start" {
  model Enigma-I
  rotors I II III
  positions UKW
  reflector B
}`,
		"positions KEY": `
key "key-start"
{
  model Enigma-I; rotors I II III
  positions KEY   # spells the window
  reflector B
}`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			file, err := parse(t, input)
			require.NoError(t, err)
			require.Len(t, file.Keys, 1)
			require.Len(t, file.Keys[0].Directives, 4)

			cfg, err := file.Keys[0].Config()
			require.NoError(t, err)
			assert.Equal(t, strings.Fields(name)[1], alphabet.String(cfg.Positions))
			assert.Equal(t, "B", cfg.Reflector)
			assert.Equal(t, []string{"I", "II", "III"}, cfg.Rotors)

			m, err := file.Keys[0].Machine(nil)
			require.NoError(t, err)
			assert.Equal(t, cfg.Positions, m.Window())
		})
	}
}

func TestDirectivesOnOneLine(t *testing.T) {
	file, err := parse(t, `key "k" { model Enigma-I; rotors I II III; reflector B; plugs AB CD }`)
	require.NoError(t, err)
	require.Len(t, file.Keys[0].Directives, 4)

	// Without a separator the second directive name is read as a value.
	file, err = parse(t, `key "k" { model Enigma-I rotors I II III }`)
	require.NoError(t, err)
	require.Len(t, file.Keys[0].Directives, 1)
	_, err = file.Keys[0].Config()
	assert.ErrorIs(t, err, ErrTooManyValues)
}

func TestSyntaxErrors(t *testing.T) {
	cases := map[string]string{
		"unterminated block": `key "a" { model Enigma-I`,
		"missing name":       `key { model Enigma-I }`,
		"value before name":  `key "a" { 42 }`,
		"unquoted name":      `key a { model Enigma-I }`,
		"unopened block":     `key "a" model Enigma-I }`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parse(t, input)
			assert.Error(t, err)
		})
	}
}

func TestFileErrors(t *testing.T) {
	_, err := parse(t, `key "a" { model Enigma-I } key "a" { model Enigma-I }`)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	_, err = parse(t, `key "" { model Enigma-I }`)
	assert.ErrorIs(t, err, ErrEmptyName)

	p, err := NewParser()
	require.NoError(t, err)
	_, err = p.ParseFile(filepath.Join("testdata", "missing.keys"))
	assert.Error(t, err)
}

func TestConfigErrors(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"missing model", `rotors I II III; reflector B`, ErrMissingDirective},
		{"missing rotors", `model Enigma-I; reflector B`, ErrMissingDirective},
		{"missing reflector", `model Enigma-I; rotors I II III`, ErrMissingDirective},
		{"duplicate directive", `model Enigma-I; rotors I II III; reflector B; ukw C`, ErrDuplicateDirective},
		{"two models", `model Enigma-I Enigma-M3; rotors I II III; reflector B`, ErrTooManyValues},
		{"empty rotors", `model Enigma-I; rotors; reflector B`, ErrMissingValue},
		{"unknown directive", `model Enigma-I; colour red; rotors I II III; reflector B`, ErrUnknownDirective},
		{"value as directive", `Enigma-I; rotors I II III; reflector B`, ErrUnknownDirective},
		{"ring out of range", `model Enigma-I; rotors I II III; reflector B; rings 1 27 3`, nil},
		{"self plug", `model Enigma-I; rotors I II III; reflector B; plugs AA`, plugboard.ErrSelfPair},
		{"plug reused", `model Enigma-I; rotors I II III; reflector B; stecker AB BC`, plugboard.ErrLetterReused},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			file, err := parse(t, `key "k" { `+tc.body+` }`)
			require.NoError(t, err)
			_, err = file.Keys[0].Config()
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	file, err := parse(t, `key "only" { model Enigma-I; rotors I II III; reflector B }`)
	require.NoError(t, err)

	k, err := file.Lookup("")
	require.NoError(t, err)
	assert.Equal(t, "only", k.Name)

	_, err = file.Lookup("other")
	assert.ErrorIs(t, err, ErrUnknownKey)

	file, err = parse(t, `key "a" { model Enigma-I } key "b" { model Enigma-I }`)
	require.NoError(t, err)
	_, err = file.Lookup("")
	assert.Error(t, err)
}

func TestMachineReportsTableErrors(t *testing.T) {
	file, err := parse(t, `key "k" { model Enigma-I; rotors I II IX; reflector B }`)
	require.NoError(t, err)
	_, err = file.Keys[0].Machine(nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `key "k"`)
}
