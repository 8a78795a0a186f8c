package keysheet

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/machine"
	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/plugboard"
	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/wiring"
)

var (
	ErrEmptyName          = errors.New("key name is empty")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrUnknownKey         = errors.New("unknown key")
	ErrUnknownDirective   = errors.New("unknown directive")
	ErrDuplicateDirective = errors.New("directive given twice")
	ErrMissingDirective   = errors.New("missing directive")
	ErrMissingValue       = errors.New("directive has no value")
	ErrTooManyValues      = errors.New("directive takes a single value")
)

// Config resolves the key into a machine configuration. Rings and positions
// default to A on every rotor when absent. The result is not checked against
// any wiring tables; machine.New does that.
func (k *Key) Config() (machine.Config, error) {
	var cfg machine.Config
	seen := make(map[string]*Directive, len(k.Directives))

	for _, d := range k.Directives {
		kind := d.Kind()
		if !slices.Contains(directiveKinds, kind) {
			return machine.Config{}, k.errorf(d, "%w %q", ErrUnknownDirective, d.Name)
		}
		if prev, ok := seen[kind]; ok {
			return machine.Config{}, k.errorf(d, "%w: %s (first at %s)", ErrDuplicateDirective, kind, prev.Pos)
		}
		seen[kind] = d
		if len(d.Values) == 0 && kind != "plugs" {
			return machine.Config{}, k.errorf(d, "%w: %s", ErrMissingValue, kind)
		}

		var err error
		switch kind {
		case "model":
			cfg.Model, err = single(d)
		case "reflector":
			cfg.Reflector, err = single(d)
		case "rotors":
			cfg.Rotors = append([]string(nil), d.Values...)
		case "rings":
			cfg.Rings, err = machine.ParseSettings(strings.Join(d.Values, " "))
		case "positions":
			cfg.Positions, err = machine.ParseSettings(strings.Join(d.Values, " "))
		case "plugs":
			cfg.Plugboard, err = plugboard.ParsePairs(strings.Join(d.Values, " "))
			if err == nil {
				_, err = plugboard.New(cfg.Plugboard...)
			}
		}
		if err != nil {
			return machine.Config{}, k.errorf(d, "%s: %w", kind, err)
		}
	}

	for _, required := range []string{"model", "rotors", "reflector"} {
		if _, ok := seen[required]; !ok {
			return machine.Config{}, fmt.Errorf("keysheet: key %q: %w: %s", k.Name, ErrMissingDirective, required)
		}
	}
	return cfg, nil
}

// Machine resolves the key and builds a machine from it.
func (k *Key) Machine(tables *wiring.Tables) (*machine.Machine, error) {
	cfg, err := k.Config()
	if err != nil {
		return nil, err
	}
	m, err := machine.New(tables, cfg)
	if err != nil {
		return nil, fmt.Errorf("keysheet: key %q: %w", k.Name, err)
	}
	return m, nil
}

// Lookup returns the named key, or the only key when name is empty and the
// file holds exactly one.
func (f *File) Lookup(name string) (*Key, error) {
	if name == "" {
		if len(f.Keys) == 1 {
			return f.Keys[0], nil
		}
		return nil, fmt.Errorf("keysheet: %d keys in file, choose one of %s", len(f.Keys), strings.Join(f.Names(), ", "))
	}
	k, ok := f.Key(name)
	if !ok {
		return nil, fmt.Errorf("keysheet: %w %q", ErrUnknownKey, name)
	}
	return k, nil
}

func single(d *Directive) (string, error) {
	if len(d.Values) != 1 {
		return "", fmt.Errorf("%w, got %d", ErrTooManyValues, len(d.Values))
	}
	return d.Values[0], nil
}

func (k *Key) errorf(d *Directive, format string, args ...any) error {
	return fmt.Errorf("keysheet: key %q at %s: %w", k.Name, d.Pos, fmt.Errorf(format, args...))
}
