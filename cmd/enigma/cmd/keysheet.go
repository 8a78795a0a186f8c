package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/keysheet"
)

var keysheetCmd = &cobra.Command{
	Use:   "keysheet <file>",
	Short: "List and check the keys in a key sheet",
	Long: `Parse a key sheet and resolve every key against the wiring tables.
Each directive takes the rest of its line; use ";" to put several on one
line.

Example sheet:
  key "1930-manual" {
    model Enigma-I
    reflector A
    rotors II I III
    rings 24 13 22
    positions ABL
    plugs AM FI NV PS TU WZ
  }`,
	Args: cobra.ExactArgs(1),
	RunE: runKeysheet,
}

func init() {
	rootCmd.AddCommand(keysheetCmd)
}

func runKeysheet(cmd *cobra.Command, args []string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}
	parser, err := keysheet.NewParser()
	if err != nil {
		return err
	}
	file, err := parser.ParseFile(args[0])
	if err != nil {
		return err
	}

	bad := 0
	for _, key := range file.Keys {
		m, err := key.Machine(tables)
		if err != nil {
			bad++
			fmt.Printf("%-16s INVALID  %v\n", key.Name, err)
			continue
		}
		fmt.Printf("%-16s %s\n", key.Name, m.Config())
	}
	if bad > 0 {
		return fmt.Errorf("%d of %d keys invalid", bad, len(file.Keys))
	}
	fmt.Printf("%d keys OK\n", len(file.Keys))
	return nil
}
