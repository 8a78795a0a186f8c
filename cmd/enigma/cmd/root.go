package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceEnigma/internal/config"
	"github.com/OpenTraceLab/OpenTraceEnigma/internal/logging"
	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/wiring"
)

var (
	// Global flags
	verbose    bool
	tablesFile string
	logFormat  string

	env    config.Config
	logger = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "enigma",
	Short: "Rotor cipher machine simulator",
	Long: `Simulate Enigma cipher machines: the Wehrmacht and Navy models, the
Tirpitz, the commercial K family and the Railway machine.

Encryption and decryption are the same operation: run the ciphertext
through a machine set up with the same key.

Examples:
  enigma encode --rotors "I II III" --reflector B HELLOWORLD
  enigma encode --sheet keys.txt --key 1930-manual < message.txt
  enigma trace --positions ADU AAAA             # Watch the double step
  enigma models                                  # List the machine catalogue

Environment:
  ENIGMA_TABLES      YAML wiring tables replacing the built-in ones
  ENIGMA_LOG_LEVEL   debug, info, warn or error (default warn)
  ENIGMA_LOG_FORMAT  text, json or logfmt (default text)
  ENIGMA_GROUP_SIZE  output block length (default 5)
  ENIGMA_MODEL       model used when --model is not given (default Enigma-I)`,
	Version:           "0.3.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&tablesFile, "tables", "",
		"wiring tables YAML file (overrides ENIGMA_TABLES)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"log format: text, json or logfmt (overrides ENIGMA_LOG_FORMAT)")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	env, err = config.Load()
	if err != nil {
		return err
	}
	if tablesFile != "" {
		env.Tables = tablesFile
	}
	if logFormat != "" {
		env.LogFormat = logFormat
	}
	level := env.LogLevel
	if verbose {
		level = log.DebugLevel.String()
	}
	logger, err = logging.New(os.Stderr, level, env.LogFormat)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded", "tables", env.Tables, "model", env.Model, "group", env.GroupSize)
	return nil
}

func loadTables() (*wiring.Tables, error) {
	tables, err := env.LoadTables()
	if err != nil {
		return nil, err
	}
	if env.Tables != "" {
		logger.Info("using external tables", "file", env.Tables, "models", len(tables.Models()))
	}
	return tables, nil
}
