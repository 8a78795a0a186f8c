// Package config reads the environment defaults shared by the enigma
// commands. Command-line flags override every value here.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/wiring"
)

// Config is the environment-level configuration.
type Config struct {
	// Tables is a YAML file replacing the embedded wiring tables.
	Tables    string `env:"ENIGMA_TABLES"`
	LogLevel  string `env:"ENIGMA_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"ENIGMA_LOG_FORMAT" envDefault:"text"`
	GroupSize int    `env:"ENIGMA_GROUP_SIZE" envDefault:"5"`
	Model     string `env:"ENIGMA_MODEL" envDefault:"Enigma-I"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.GroupSize < 0 {
		return Config{}, fmt.Errorf("config: ENIGMA_GROUP_SIZE must not be negative, got %d", cfg.GroupSize)
	}
	return cfg, nil
}

// LoadTables returns the wiring tables named by Tables, or the embedded
// tables when it is empty.
func (c Config) LoadTables() (*wiring.Tables, error) {
	if c.Tables == "" {
		return wiring.Default(), nil
	}
	t, err := wiring.LoadFile(c.Tables)
	if err != nil {
		return nil, fmt.Errorf("config: tables %s: %w", c.Tables, err)
	}
	return t, nil
}
