package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/keysheet"
	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/machine"
	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/plugboard"
	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/wiring"
)

// machineFlags are the key settings shared by encode and trace. Empty
// strings mean "not given".
type machineFlags struct {
	model     string
	rotors    string
	reflector string
	rings     string
	positions string
	plugs     string
	sheet     string
	key       string
}

func (f *machineFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.model, "model", "m", "", "machine model (default from ENIGMA_MODEL)")
	fs.StringVarP(&f.rotors, "rotors", "r", "", `rotor order, left to right, e.g. "II I III"`)
	fs.StringVarP(&f.reflector, "reflector", "u", "", "reflector (UKW)")
	fs.StringVar(&f.rings, "rings", "", `ring settings as letters or 1-26, e.g. "XMV" or "24 13 22"`)
	fs.StringVarP(&f.positions, "positions", "p", "", `start positions, e.g. "ABL"`)
	fs.StringVar(&f.plugs, "plugs", "", `plugboard pairs, e.g. "AM FI NV"`)
	fs.StringVar(&f.sheet, "sheet", "", "key sheet file")
	fs.StringVar(&f.key, "key", "", "key name within --sheet")
}

func (f *machineFlags) reset() {
	*f = machineFlags{}
}

// config merges the key sheet entry, if any, with the explicit flags.
// Flags win.
func (f *machineFlags) config(tables *wiring.Tables) (machine.Config, error) {
	var (
		cfg machine.Config
		err error
	)
	switch {
	case f.sheet != "":
		cfg, err = sheetConfig(f.sheet, f.key)
		if err != nil {
			return machine.Config{}, err
		}
		if f.model != "" {
			cfg.Model = f.model
		}
	case f.key != "":
		return machine.Config{}, errors.New("--key needs --sheet")
	default:
		model := f.model
		if model == "" {
			model = env.Model
		}
		cfg, err = machine.DefaultConfig(tables, model)
		if err != nil {
			return machine.Config{}, err
		}
	}

	if f.rotors != "" {
		cfg.Rotors = splitList(f.rotors)
	}
	if f.reflector != "" {
		cfg.Reflector = f.reflector
	}
	if f.rings != "" {
		if cfg.Rings, err = machine.ParseSettings(f.rings); err != nil {
			return machine.Config{}, err
		}
	}
	if f.positions != "" {
		if cfg.Positions, err = machine.ParseSettings(f.positions); err != nil {
			return machine.Config{}, err
		}
	}
	if f.plugs != "" {
		if cfg.Plugboard, err = plugboard.ParsePairs(f.plugs); err != nil {
			return machine.Config{}, err
		}
	}
	return cfg, nil
}

func (f *machineFlags) machine() (*machine.Machine, error) {
	tables, err := loadTables()
	if err != nil {
		return nil, err
	}
	cfg, err := f.config(tables)
	if err != nil {
		return nil, err
	}
	m, err := machine.New(tables, cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("machine ready", "model", cfg.Model, "rotors", strings.Join(cfg.Rotors, " "),
		"reflector", cfg.Reflector, "window", m.Snapshot().String(), "plugs", m.Plugboard().String())
	return m, nil
}

func sheetConfig(path, name string) (machine.Config, error) {
	parser, err := keysheet.NewParser()
	if err != nil {
		return machine.Config{}, err
	}
	file, err := parser.ParseFile(path)
	if err != nil {
		return machine.Config{}, err
	}
	key, err := file.Lookup(name)
	if err != nil {
		return machine.Config{}, err
	}
	logger.Debug("key sheet entry selected", "file", path, "key", key.Name)
	return key.Config()
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
}
