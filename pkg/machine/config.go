package machine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/alphabet"
	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/plugboard"
	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/wiring"
)

// MaxRotors is the largest rotor stack any model uses.
const MaxRotors = 4

// Config holds every caller-supplied machine setting. Lists are ordered left
// to right, so index 0 is the slow rotor.
type Config struct {
	Model     string
	Rotors    []string
	Reflector string
	Rings     []alphabet.Letter
	Positions []alphabet.Letter
	Plugboard []plugboard.Pair
}

// DefaultConfig returns a Config for model with the first selectable rotors
// and reflector, rings and positions at A, and no cables. It is a starting
// point for callers that only want to override a few fields.
func DefaultConfig(tables *wiring.Tables, model string) (Config, error) {
	if tables == nil {
		tables = wiring.Default()
	}
	m, ok := tables.Model(model)
	if !ok {
		return Config{}, configErr("model", model, ErrUnknownModel)
	}
	cfg := Config{
		Model:     m.ID,
		Reflector: m.Reflectors()[0],
		Rings:     make([]alphabet.Letter, m.RotorCount),
		Positions: make([]alphabet.Letter, m.RotorCount),
	}
	rotors := m.Rotors()
	if fixed := m.FixedRotors(); len(fixed) > 0 {
		cfg.Rotors = append(cfg.Rotors, fixed[0])
	}
	cfg.Rotors = append(cfg.Rotors, rotors[:m.RotorCount-len(cfg.Rotors)]...)
	return cfg, nil
}

// Clone returns a deep copy.
func (c Config) Clone() Config {
	out := c
	out.Rotors = append([]string(nil), c.Rotors...)
	out.Rings = append([]alphabet.Letter(nil), c.Rings...)
	out.Positions = append([]alphabet.Letter(nil), c.Positions...)
	out.Plugboard = append([]plugboard.Pair(nil), c.Plugboard...)
	return out
}

func (c Config) String() string {
	pairs := make([]string, len(c.Plugboard))
	for i, p := range c.Plugboard {
		pairs[i] = p.String()
	}
	return fmt.Sprintf("%s UKW %s rotors %s rings %s positions %s plugs %s",
		c.Model, c.Reflector, strings.Join(c.Rotors, " "),
		alphabet.String(c.Rings), alphabet.String(c.Positions), strings.Join(pairs, " "))
}

// ParseSettings reads ring or position settings written as letters ("XMV",
// "X M V") or as 1-based numbers ("24 13 22", "24-13-22"), as they appear
// on key sheets.
func ParseSettings(s string) ([]alphabet.Letter, error) {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == ' ' || r == ',' || r == '-' || r == '\t'
	})
	var out []alphabet.Letter
	for _, f := range fields {
		letters, err := ParseSetting(f)
		if err != nil {
			return nil, err
		}
		out = append(out, letters...)
	}
	return out, nil
}

// ParseSetting reads one token of a settings list: a number 1..26 yields one
// letter, a run of letters yields one letter each.
func ParseSetting(tok string) ([]alphabet.Letter, error) {
	if n, err := strconv.Atoi(tok); err == nil {
		if n < 1 || n > alphabet.Size {
			return nil, fmt.Errorf("machine: setting %d out of range 1..%d", n, alphabet.Size)
		}
		return []alphabet.Letter{alphabet.Letter(n - 1)}, nil
	}
	letters, err := alphabet.ParseLetters(strings.ToUpper(tok))
	if err != nil {
		return nil, fmt.Errorf("machine: setting %q: %w", tok, err)
	}
	return letters, nil
}
