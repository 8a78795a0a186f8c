package machine

import (
	"errors"
	"fmt"
)

// Configuration errors. They are returned from New, wrapped in a
// *ConfigError, and are never raised while characters are processed.
var (
	ErrUnknownModel           = errors.New("unknown model")
	ErrUnknownRotor           = errors.New("unknown rotor")
	ErrUnknownReflector       = errors.New("unknown reflector")
	ErrRotorCount             = errors.New("wrong number of entries for model")
	ErrRotorNotSelectable     = errors.New("rotor not available on model")
	ErrReflectorNotSelectable = errors.New("reflector not available on model")
	ErrDuplicateRotor         = errors.New("rotor used twice")
	ErrFixedRotorPlacement    = errors.New("fixed rotor placement")
	ErrPlugboardUnsupported   = errors.New("model has no plugboard")
	ErrStateMismatch          = errors.New("state does not fit machine")
)

// ConfigError reports which part of a Config was rejected.
type ConfigError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("machine: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("machine: %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErr(field, value string, err error) error {
	return &ConfigError{Field: field, Value: value, Err: err}
}
