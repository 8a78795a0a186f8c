// Package logging builds the leveled logger used by the command-line tools.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w. level is one of debug, info, warn,
// error; format is text, json or logfmt.
func New(w io.Writer, level, format string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	formatter, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:     lvl,
		Formatter: formatter,
		Prefix:    "enigma",
	}), nil
}

// ParseFormat maps a format name to a log formatter.
func ParseFormat(format string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	}
	return 0, fmt.Errorf("logging: unknown format %q", format)
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
